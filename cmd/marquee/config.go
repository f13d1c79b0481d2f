package main

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phanxgames/marquee"
)

// options is the resolved command configuration.
type options struct {
	Variant       marquee.Variant
	Assets        marquee.Assets
	Title         string
	Width         int
	Height        int
	ShowFPS       bool
	LogLevel      slog.Level
	Script        string
	ScreenshotDir string
}

// loadOptions layers the config file, MARQUEE_* environment and flags over
// the selected preset.
func loadOptions(flags *pflag.FlagSet) (options, error) {
	v := viper.New()
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return options{}, err
	}
	// AutomaticEnv only answers keys viper already knows, so nested
	// variant fields are bound explicitly (MARQUEE_PLANE_RADIUS).
	for _, key := range variantKeys(reflect.TypeOf(marquee.Variant{}), "") {
		if err := v.BindEnv(key); err != nil {
			return options{}, err
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return options{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return resolveOptions(v)
}

func resolveOptions(v *viper.Viper) (options, error) {
	variant, err := marquee.VariantByName(v.GetString("variant"))
	if err != nil {
		return options{}, err
	}
	if err := v.Unmarshal(&variant, viper.DecodeHook(decodeHook())); err != nil {
		return options{}, fmt.Errorf("decode config: %w", err)
	}
	if lines := v.GetStringSlice("line"); len(lines) > 0 {
		variant.Banner.Lines = lines
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return options{}, fmt.Errorf("log level: %w", err)
	}

	opts := options{
		Variant:       variant,
		Title:         v.GetString("title"),
		Width:         v.GetInt("width"),
		Height:        v.GetInt("height"),
		ShowFPS:       v.GetBool("fps"),
		LogLevel:      level,
		Script:        v.GetString("script"),
		ScreenshotDir: v.GetString("screenshots"),
		Assets: marquee.Assets{
			Font:     v.GetString("font"),
			Atlas:    v.GetString("atlas"),
			Textures: v.GetStringSlice("texture"),
		},
	}
	switch {
	case v.GetString("assets") != "":
		opts.Assets.Loader = marquee.FSLoader{FS: os.DirFS(v.GetString("assets"))}
	case v.GetString("asset-url") != "":
		opts.Assets.Loader = marquee.HTTPLoader{BaseURL: v.GetString("asset-url")}
	}
	return opts, nil
}

// variantKeys lists the dotted config keys of every leaf field of t, named
// by mapstructure tag or lowercased field name.
func variantKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("mapstructure")
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name
		if f.Type.Kind() == reflect.Struct {
			keys = append(keys, variantKeys(f.Type, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// decodeHook lets config files name enum values ("sphere", "cubic",
// "layout_uv") and split comma-separated lists.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		func(from, to reflect.Type, data any) (any, error) {
			if from.Kind() != reflect.String {
				return data, nil
			}
			s := data.(string)
			switch to {
			case reflect.TypeOf(marquee.ShellKind(0)):
				return marquee.ParseShell(s)
			case reflect.TypeOf(marquee.BendKind(0)):
				return marquee.ParseBend(s)
			case reflect.TypeOf(marquee.ColorMode(0)):
				return marquee.ParseColorMode(s)
			}
			return data, nil
		},
	)
}
