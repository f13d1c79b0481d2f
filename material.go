package marquee

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Material describes how a mesh is shaded: the Kage program, its source
// images, and its uniforms. Materials are shared between a mesh and its
// clones, so a uniform change is seen by every mesh using the material.
type Material struct {
	Program ShaderProgram
	// Images are bound as imageSrc0..3. Images[0] also defines the pixel
	// size UVs are scaled to. A nil Images[0] skips drawing.
	Images    [4]*ebiten.Image
	Uniforms  map[string]any
	BlendMode BlendMode
	// DoubleSided draws back-facing triangles too.
	DoubleSided bool
}

// NewMaterial creates a material for the given program with an empty
// uniform map. Meshes are double sided by default.
func NewMaterial(p ShaderProgram) *Material {
	return &Material{
		Program:     p,
		Uniforms:    make(map[string]any, 4),
		DoubleSided: true,
	}
}

// SetFloat stores a float uniform.
func (m *Material) SetFloat(name string, v float64) {
	m.Uniforms[name] = float32(v)
}

// Float returns a float uniform, or 0 when unset.
func (m *Material) Float(name string) float64 {
	if v, ok := m.Uniforms[name].(float32); ok {
		return float64(v)
	}
	return 0
}

// SetColor stores a premultiplied vec4 uniform.
func (m *Material) SetColor(name string, c Color) {
	m.Uniforms[name] = c.vec4()
}

// imageSize returns the pixel size UVs are scaled to.
func (m *Material) imageSize() (w, h float64) {
	if m.Images[0] == nil {
		return 1, 1
	}
	b := m.Images[0].Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
