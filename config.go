package marquee

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ScrollConfig tunes the scroll input.
type ScrollConfig struct {
	PositionDivisor float64 `mapstructure:"position_divisor"`
	VelocityDivisor float64 `mapstructure:"velocity_divisor"`
	Decay           float64 `mapstructure:"decay"`
	Smoothing       float64 `mapstructure:"smoothing"`
	WheelScale      float64 `mapstructure:"wheel_scale"`
	DragScale       float64 `mapstructure:"drag_scale"`
}

// BannerConfig describes the text banner.
type BannerConfig struct {
	// Lines are the banner strings in declaration order. The first line is
	// placed lowest.
	Lines     []string `mapstructure:"lines"`
	Uppercase bool     `mapstructure:"uppercase"`
	// LineHeight is the world-space distance between banner lines.
	LineHeight float64 `mapstructure:"line_height"`
	// Scale converts font units to world units. Y is flipped.
	Scale   float64 `mapstructure:"scale"`
	OffsetX float64 `mapstructure:"offset_x"`
	// OffsetY is added to the scrolled group position.
	OffsetY float64 `mapstructure:"offset_y"`
	// ScrollScale is the group travel per unit of scroll position. Zero
	// falls back to LineHeight, one line per unit.
	ScrollScale float64   `mapstructure:"scroll_scale"`
	Bend        BendKind  `mapstructure:"bend"`
	BendScale   float64   `mapstructure:"bend_scale"`
	ColorMode   ColorMode `mapstructure:"color_mode"`
	Color       Color     `mapstructure:"color"`
	// Overlay clones every line into the overlay layer and shows only the
	// clone matching the active slide.
	Overlay bool `mapstructure:"overlay"`
}

// PlaneConfig describes the warped plane.
type PlaneConfig struct {
	Width    float64   `mapstructure:"width"`
	Height   float64   `mapstructure:"height"`
	Segments int       `mapstructure:"segments"`
	OffsetZ  float64   `mapstructure:"offset_z"`
	Shell    ShellKind `mapstructure:"shell"`
	Radius   float64   `mapstructure:"radius"`
	// SpinPerUnit is the plane's Y rotation per unit of scroll position.
	SpinPerUnit float64 `mapstructure:"spin_per_unit"`
	// Tilt is the amplitude of the group's Z rotation, sin(position/2)*Tilt.
	Tilt float64 `mapstructure:"tilt"`
	// CycleTextures selects the slide from the rounded scroll position.
	CycleTextures bool `mapstructure:"cycle_textures"`
	// FadeDuration is the slide crossfade length in seconds. 0 snaps.
	FadeDuration float64 `mapstructure:"fade_duration"`
	// TextureWidth and TextureHeight are the size slides are resampled to.
	TextureWidth  int  `mapstructure:"texture_width"`
	TextureHeight int  `mapstructure:"texture_height"`
	ShowGuide     bool `mapstructure:"show_guide"`
}

// CameraConfig describes the perspective camera.
type CameraConfig struct {
	FOV           float64 `mapstructure:"fov"`
	Near          float64 `mapstructure:"near"`
	Far           float64 `mapstructure:"far"`
	Z             float64 `mapstructure:"z"`
	IntroDistance float64 `mapstructure:"intro_distance"`
	IntroDuration float64 `mapstructure:"intro_duration"`
}

// Variant is a complete sketch configuration.
type Variant struct {
	Name       string       `mapstructure:"name"`
	Scroll     ScrollConfig `mapstructure:"scroll"`
	Banner     BannerConfig `mapstructure:"banner"`
	Plane      PlaneConfig  `mapstructure:"plane"`
	Camera     CameraConfig `mapstructure:"camera"`
	ClearColor Color        `mapstructure:"clear_color"`
	// FrameStep is added to the sketch clock every frame.
	FrameStep float64 `mapstructure:"frame_step"`
	Debug     bool    `mapstructure:"debug"`
}

// DefaultLines is the banner line list shipped with the presets.
var DefaultLines = []string{
	"synistr_motives",
	"STLfromHell67",
	"Reddshinobi",
	"riskyumbrella",
	"DAFFODILRAT",
	"fayze",
	"MATTAKAICEMAN",
	"QUBX",
	"The Treemiester",
	"ZooKaH",
}

// VariantSphere returns the sphere preset: cubic bend, flat red text,
// slide cycling with an overlay copy of the active line.
func VariantSphere() Variant {
	return Variant{
		Name: "sphere",
		Scroll: ScrollConfig{
			PositionDivisor: -3000,
			VelocityDivisor: -2000,
			Decay:           DefaultDecay,
			Smoothing:       DefaultSmoothing,
			WheelScale:      defaultWheelScale,
			DragScale:       defaultDragScale,
		},
		Banner: BannerConfig{
			Lines:       append([]string(nil), DefaultLines...),
			Uppercase:   true,
			LineHeight:  0.2,
			Scale:       0.006,
			OffsetX:     -0.9,
			OffsetY:     0.1,
			ScrollScale: 0.2,
			Bend:        BendCubic,
			BendScale:   0.004,
			ColorMode:   ColorFlat,
			Color:       Color{R: 1, A: 1},
			Overlay:     true,
		},
		Plane: PlaneConfig{
			Width:         1.77 / 2,
			Height:        1.0 / 2,
			Segments:      30,
			OffsetZ:       1,
			Shell:         ShellSphere,
			Radius:        1.5,
			SpinPerUnit:   2 * math.Pi,
			CycleTextures: true,
			TextureWidth:  1280,
			TextureHeight: 853,
			ShowGuide:     true,
		},
		Camera: CameraConfig{
			FOV:  70,
			Near: 0.001,
			Far:  1000,
			Z:    2.5,
		},
		ClearColor: Color{R: 0xee / 255.0, G: 0xee / 255.0, B: 0xee / 255.0, A: 1},
		FrameStep:  0.05,
	}
}

// VariantCylinder returns the cylinder preset: linear bend, layout-UV
// debug colored text, a single slide.
func VariantCylinder() Variant {
	v := VariantSphere()
	v.Name = "cylinder"
	v.Scroll.PositionDivisor = 4000
	v.Scroll.VelocityDivisor = 2000
	v.Scroll.Smoothing = 1
	v.Banner.Lines = []string{
		"ZooKaH",
		"fayze",
		"MATTAKAICEMAN",
		"The Treemiester",
		"DAFFODILRAT",
		"Reddshinobi",
		"QUBX",
		"STLfromHell67",
	}
	v.Banner.Scale = 0.003
	v.Banner.OffsetX = -0.5
	v.Banner.OffsetY = -0.9
	v.Banner.ScrollScale = 1
	v.Banner.Bend = BendLinear
	v.Banner.ColorMode = ColorLayoutUV
	v.Banner.Overlay = false
	v.Plane.Width = 1.77 / 3
	v.Plane.Height = 1.0 / 3
	v.Plane.Shell = ShellCylinder
	v.Plane.Radius = 1.3
	v.Plane.SpinPerUnit = 1
	v.Plane.CycleTextures = false
	v.Plane.ShowGuide = false
	v.Camera.Far = 100
	v.Camera.Z = 2
	v.ClearColor = Color{A: 1}
	return v
}

// VariantByName returns the named preset.
func VariantByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sphere":
		return VariantSphere(), nil
	case "cylinder":
		return VariantCylinder(), nil
	default:
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// ParseShell parses "cylinder" or "sphere".
func ParseShell(s string) (ShellKind, error) {
	switch strings.ToLower(s) {
	case "cylinder":
		return ShellCylinder, nil
	case "sphere":
		return ShellSphere, nil
	default:
		return 0, fmt.Errorf("%w: unknown shell %q", ErrInvalidConfig, s)
	}
}

// Validate checks the variant for values the sketch cannot run with. All
// problems are reported together.
func (v Variant) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if v.Scroll.Decay < 0 || v.Scroll.Decay >= 1 {
		bad("scroll.decay %v must be in [0, 1)", v.Scroll.Decay)
	}
	if v.Scroll.Smoothing <= 0 || v.Scroll.Smoothing > 1 {
		bad("scroll.smoothing %v must be in (0, 1]", v.Scroll.Smoothing)
	}
	if v.Scroll.PositionDivisor == 0 || v.Scroll.VelocityDivisor == 0 {
		bad("scroll divisors must be non-zero")
	}
	if v.Banner.LineHeight <= 0 {
		bad("banner.line_height %v must be positive", v.Banner.LineHeight)
	}
	if v.Banner.ScrollScale < 0 {
		bad("banner.scroll_scale %v must not be negative", v.Banner.ScrollScale)
	}
	if v.Banner.Scale <= 0 {
		bad("banner.scale %v must be positive", v.Banner.Scale)
	}
	if v.Banner.Bend > BendCubic {
		bad("banner.bend %d unknown", v.Banner.Bend)
	}
	if v.Plane.Width <= 0 || v.Plane.Height <= 0 {
		bad("plane size %vx%v must be positive", v.Plane.Width, v.Plane.Height)
	}
	if v.Plane.Segments < 1 || (v.Plane.Segments+1)*(v.Plane.Segments+1) > math.MaxUint16 {
		bad("plane.segments %d out of range", v.Plane.Segments)
	}
	if v.Plane.Radius <= 0 {
		bad("plane.radius %v must be positive", v.Plane.Radius)
	}
	if v.Plane.Shell > ShellSphere {
		bad("plane.shell %d unknown", v.Plane.Shell)
	}
	if v.Plane.FadeDuration < 0 {
		bad("plane.fade_duration %v must not be negative", v.Plane.FadeDuration)
	}
	if v.Plane.TextureWidth <= 0 || v.Plane.TextureHeight <= 0 {
		bad("plane texture size %dx%d must be positive", v.Plane.TextureWidth, v.Plane.TextureHeight)
	}
	if v.Camera.FOV <= 0 || v.Camera.FOV >= 180 {
		bad("camera.fov %v must be in (0, 180)", v.Camera.FOV)
	}
	if v.Camera.Near <= 0 || v.Camera.Far <= v.Camera.Near {
		bad("camera clip range (%v, %v) invalid", v.Camera.Near, v.Camera.Far)
	}
	if v.Camera.IntroDuration < 0 {
		bad("camera.intro_duration %v must not be negative", v.Camera.IntroDuration)
	}
	return errors.Join(errs...)
}

// ParseBend parses "linear" or "cubic".
func ParseBend(s string) (BendKind, error) {
	switch strings.ToLower(s) {
	case "linear":
		return BendLinear, nil
	case "cubic":
		return BendCubic, nil
	default:
		return 0, fmt.Errorf("%w: unknown bend %q", ErrInvalidConfig, s)
	}
}

// ParseColorMode parses "flat" or "layout_uv".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "flat":
		return ColorFlat, nil
	case "layout_uv", "layoutuv":
		return ColorLayoutUV, nil
	default:
		return 0, fmt.Errorf("%w: unknown color mode %q", ErrInvalidConfig, s)
	}
}
