package marquee

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sentinel errors. Wrapped errors returned by this package match them with
// errors.Is.
var (
	ErrUnknownVariant = errors.New("marquee: unknown variant")
	ErrInvalidConfig  = errors.New("marquee: invalid config")
	ErrNoGlyphs       = errors.New("marquee: font has no glyphs")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// vec4 returns the color as a premultiplied Kage vec4 uniform.
func (c Color) vec4() []float32 {
	return []float32{float32(c.R * c.A), float32(c.G * c.A), float32(c.B * c.A), float32(c.A)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector, used for texture and layout coordinates.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for positions throughout the scene graph.
type Vec3 struct {
	X, Y, Z float64
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMesh                      // renders triangles via DrawTrianglesShader
	NodeTypeWireframe                 // strokes geometry edges
)

// ShellKind selects the surface a WarpedPlane is bent onto.
type ShellKind uint8

const (
	ShellCylinder ShellKind = iota // (x, z) projected onto a circle in the XZ plane
	ShellSphere                    // (x, y, z) projected onto a sphere
)

// String implements fmt.Stringer.
func (k ShellKind) String() string {
	switch k {
	case ShellCylinder:
		return "cylinder"
	case ShellSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// BendKind selects the falloff used by the banner's velocity bend.
type BendKind uint8

const (
	BendLinear BendKind = iota // angle = speed * x
	BendCubic                  // angle = speed * (k*x)^3
)

// ColorMode selects the banner's fragment output.
type ColorMode uint8

const (
	ColorFlat     ColorMode = iota // BannerConfig.Color
	ColorLayoutUV                  // (layoutU, layoutV, 1) debug gradient
)
