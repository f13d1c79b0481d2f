package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/phanxgames/marquee"
)

func parseOptions(t *testing.T, args ...string) (options, error) {
	t.Helper()
	cmd := newRootCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return loadOptions(cmd.Flags())
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(t)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Variant.Name != "sphere" {
		t.Errorf("variant = %q, want sphere", opts.Variant.Name)
	}
	if opts.Width != 1280 || opts.Height != 720 {
		t.Errorf("size = %dx%d, want 1280x720", opts.Width, opts.Height)
	}
	if opts.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v, want info", opts.LogLevel)
	}
	if opts.Assets.Loader != nil {
		t.Error("loader set without --assets or --asset-url")
	}
	if len(opts.Variant.Banner.Lines) != len(marquee.DefaultLines) {
		t.Errorf("lines = %d, want %d", len(opts.Variant.Banner.Lines), len(marquee.DefaultLines))
	}
}

func TestLoadOptionsFlags(t *testing.T) {
	dir := t.TempDir()
	opts, err := parseOptions(t,
		"--variant", "cylinder",
		"--assets", dir,
		"--line", "one", "--line", "two",
		"--texture", "a.png", "--texture", "b.png",
		"--log-level", "debug",
		"--debug",
	)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Variant.Name != "cylinder" {
		t.Errorf("variant = %q, want cylinder", opts.Variant.Name)
	}
	if _, ok := opts.Assets.Loader.(marquee.FSLoader); !ok {
		t.Errorf("loader = %T, want FSLoader", opts.Assets.Loader)
	}
	if got := opts.Variant.Banner.Lines; len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("lines = %v, want [one two]", got)
	}
	if got := opts.Assets.Textures; len(got) != 2 || got[1] != "b.png" {
		t.Errorf("textures = %v", got)
	}
	if opts.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", opts.LogLevel)
	}
	if !opts.Variant.Debug {
		t.Error("--debug not applied to variant")
	}
}

func TestLoadOptionsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.yaml")
	cfg := []byte(`
variant: cylinder
plane:
  shell: sphere
  radius: 2
banner:
  bend: cubic
  color_mode: flat
camera:
  z: 3
`)
	if err := os.WriteFile(path, cfg, 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := parseOptions(t, "--config", path, "--asset-url", "http://localhost/assets/")
	if err != nil {
		t.Fatal(err)
	}
	v := opts.Variant
	if v.Name != "cylinder" {
		t.Errorf("variant = %q, want cylinder", v.Name)
	}
	if v.Plane.Shell != marquee.ShellSphere || v.Plane.Radius != 2 {
		t.Errorf("plane = %v r=%v, want sphere r=2", v.Plane.Shell, v.Plane.Radius)
	}
	if v.Banner.Bend != marquee.BendCubic || v.Banner.ColorMode != marquee.ColorFlat {
		t.Errorf("banner bend/color = %v/%v", v.Banner.Bend, v.Banner.ColorMode)
	}
	if v.Camera.Z != 3 {
		t.Errorf("camera z = %v, want 3", v.Camera.Z)
	}
	// Fields the file leaves out keep the preset values.
	if v.Plane.Segments != 30 || v.Camera.FOV != 70 {
		t.Errorf("preset fields lost: segments=%d fov=%v", v.Plane.Segments, v.Camera.FOV)
	}
	if _, ok := opts.Assets.Loader.(marquee.HTTPLoader); !ok {
		t.Errorf("loader = %T, want HTTPLoader", opts.Assets.Loader)
	}
}

func TestLoadOptionsNestedEnv(t *testing.T) {
	t.Setenv("MARQUEE_PLANE_RADIUS", "2.5")
	t.Setenv("MARQUEE_BANNER_BEND", "linear")
	t.Setenv("MARQUEE_CLEAR_COLOR_R", "0.5")
	opts, err := parseOptions(t)
	if err != nil {
		t.Fatal(err)
	}
	v := opts.Variant
	if v.Plane.Radius != 2.5 {
		t.Errorf("plane radius = %v, want 2.5", v.Plane.Radius)
	}
	if v.Banner.Bend != marquee.BendLinear {
		t.Errorf("banner bend = %v, want linear", v.Banner.Bend)
	}
	if v.ClearColor.R != 0.5 {
		t.Errorf("clear color r = %v, want 0.5", v.ClearColor.R)
	}
	// Unset variables keep the preset.
	if v.Plane.Segments != 30 || v.Camera.Z != 2.5 {
		t.Errorf("preset fields lost: segments=%d z=%v", v.Plane.Segments, v.Camera.Z)
	}
}

func TestVariantKeys(t *testing.T) {
	keys := variantKeys(reflect.TypeOf(marquee.Variant{}), "")
	want := map[string]bool{"plane.radius": false, "banner.lines": false, "clear_color.a": false, "frame_step": false}
	for _, k := range keys {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("missing key %q", k)
		}
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	if _, err := parseOptions(t, "--variant", "cube"); !errors.Is(err, marquee.ErrUnknownVariant) {
		t.Errorf("unknown variant err = %v, want ErrUnknownVariant", err)
	}
	if _, err := parseOptions(t, "--log-level", "loud"); err == nil {
		t.Error("expected error for bad log level")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("plane:\n  shell: torus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := parseOptions(t, "--config", path); err == nil {
		t.Error("expected error for unknown shell")
	}
}
