// Command marquee opens a window running the scroll-driven banner sketch.
//
// Configuration is layered: a variant preset, then an optional config file
// (--config, any format viper reads), then MARQUEE_* environment variables,
// then flags.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/marquee"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "marquee",
		Short:         "Scroll-driven 3D text banner over a warped slide",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(cmd.Flags())
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "config file (yaml, json, toml)")
	f.String("variant", "sphere", "preset: sphere or cylinder")
	f.String("assets", "", "asset directory")
	f.String("asset-url", "", "asset base URL, used when --assets is empty")
	f.String("font", "font.json", "MSDF font descriptor")
	f.String("atlas", "font.png", "MSDF atlas page")
	f.StringArray("texture", nil, "slide image (repeatable)")
	f.StringArray("line", nil, "banner line (repeatable, replaces the preset lines)")
	f.Int("width", 1280, "window width")
	f.Int("height", 720, "window height")
	f.String("title", "marquee", "window title")
	f.Bool("fps", false, "show the FPS overlay")
	f.Bool("debug", false, "log per-frame render stats")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("script", "", "JSON test script; the window closes when it finishes")
	f.String("screenshots", "screenshots", "screenshot directory")
	return cmd
}

func run(opts options) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.LogLevel}))
	marquee.SetLogger(logger)

	sk, err := marquee.New(opts.Variant, opts.Assets)
	if err != nil {
		return err
	}
	sk.ScreenshotDir = opts.ScreenshotDir

	rc := marquee.RunConfig{
		Title:     opts.Title,
		Width:     opts.Width,
		Height:    opts.Height,
		ShowFPS:   opts.ShowFPS,
		Resizable: true,
	}
	if opts.Script != "" {
		data, err := os.ReadFile(opts.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := marquee.LoadTestScript(data)
		if err != nil {
			return err
		}
		rc.Runner = runner
		rc.ExitWhenDone = true
	}

	logger.Info("starting",
		slog.String("variant", opts.Variant.Name),
		slog.Int("width", rc.Width),
		slog.Int("height", rc.Height),
	)
	return marquee.Run(sk, rc)
}
