package marquee

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Ebitengine uses premultiplied alpha;
// outputs are premultiplied.

// msdfTextShaderSrc renders MSDF glyph quads. custom.xy carries the layout
// UV of the vertex inside the whole text block. The velocity bend is
// applied to vertices before submission.
const msdfTextShaderSrc = `//kage:unit pixels
package main

var Color vec4
var DistanceRange float
var LayoutUV float

func median(r, g, b float) float {
	return max(min(r, g), min(max(r, g), b))
}

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	s := imageSrc0At(src)
	sd := median(s.r, s.g, s.b) - 0.5
	// Screen pixels covered by one distance range unit.
	w := fwidth(src)
	spr := max(DistanceRange/max(0.5*(w.x+w.y), 0.0001), 1.0)
	a := clamp(sd*spr+0.5, 0.0, 1.0) * color.a
	if a < 0.0001 {
		discard()
	}
	rgb := Color.rgb
	if Color.a > 0 {
		rgb /= Color.a
	}
	if LayoutUV > 0.5 {
		rgb = vec3(custom.x, custom.y, 1.0)
	}
	return vec4(rgb*a, a) * Color.a
}
`

// texturedPlaneShaderSrc crossfades between two slide images.
const texturedPlaneShaderSrc = `//kage:unit pixels
package main

var Mix float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	a := imageSrc0At(src)
	b := imageSrc1At(src)
	return mix(a, b, clamp(Mix, 0.0, 1.0)) * color.a
}
`

// ShaderProgram identifies one of the built-in Kage programs. Materials
// refer to programs by ID so that building scene nodes never compiles
// shaders; compilation happens lazily on first draw.
type ShaderProgram uint8

const (
	ProgramNone          ShaderProgram = iota // plain DrawTriangles with Images[0]
	ProgramMSDFText                           // msdfTextShaderSrc
	ProgramTexturedPlane                      // texturedPlaneShaderSrc
)

// --- Lazy shader compilation (no sync.Once; shaders are only touched from the game loop) ---

var (
	msdfTextShader      *ebiten.Shader
	texturedPlaneShader *ebiten.Shader
)

func ensureShader(p ShaderProgram) *ebiten.Shader {
	switch p {
	case ProgramMSDFText:
		if msdfTextShader == nil {
			msdfTextShader = mustCompile("msdf text", msdfTextShaderSrc)
		}
		return msdfTextShader
	case ProgramTexturedPlane:
		if texturedPlaneShader == nil {
			texturedPlaneShader = mustCompile("textured plane", texturedPlaneShaderSrc)
		}
		return texturedPlaneShader
	default:
		return nil
	}
}

func mustCompile(name, src string) *ebiten.Shader {
	s, err := ebiten.NewShader([]byte(src))
	if err != nil {
		panic("marquee: failed to compile " + name + " shader: " + err.Error())
	}
	return s
}
