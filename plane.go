package marquee

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// slideOffset keeps the rounded position positive for ordinary scroll
// ranges before the modulo.
const slideOffset = 10000

// WarpedPlane is a subdivided plane bent onto a cylinder or sphere shell
// and textured with the active slide.
type WarpedPlane struct {
	cfg PlaneConfig

	group    *Node
	mesh     *Node
	guide    *Node
	material *Material
	geometry *Geometry

	current *ebiten.Image
	fade    *UniformTween
}

// NewWarpedPlane builds the plane geometry, translated to z = OffsetZ and
// remapped onto the configured shell. The geometry is not modified
// afterwards.
func NewWarpedPlane(cfg PlaneConfig) *WarpedPlane {
	geo := NewPlaneGeometry(cfg.Width, cfg.Height, cfg.Segments, cfg.Segments).Translate(0, 0, cfg.OffsetZ)
	WarpToShell(geo.Positions, cfg.Shell, cfg.Radius)

	mat := NewMaterial(ProgramTexturedPlane)
	mat.SetFloat("Mix", 0)

	p := &WarpedPlane{
		cfg:      cfg,
		group:    NewContainer("plane_group"),
		material: mat,
		geometry: geo,
	}
	p.mesh = NewMesh("plane", geo, mat)
	p.mesh.SortTriangles = true
	p.group.AddChild(p.mesh)

	if cfg.ShowGuide {
		p.guide = NewWireframe("plane_guide", NewSphereGeometry(cfg.Radius, 32, 32), Color{R: 1, A: 0.1})
	}
	return p
}

// Group returns the container holding the plane mesh.
func (p *WarpedPlane) Group() *Node { return p.group }

// Mesh returns the plane mesh node.
func (p *WarpedPlane) Mesh() *Node { return p.mesh }

// Guide returns the wireframe guide sphere, or nil when disabled.
func (p *WarpedPlane) Guide() *Node { return p.guide }

// Geometry returns the warped geometry.
func (p *WarpedPlane) Geometry() *Geometry { return p.geometry }

// Material returns the plane material.
func (p *WarpedPlane) Material() *Material { return p.material }

// Texture returns the slide currently shown (the crossfade target while
// fading).
func (p *WarpedPlane) Texture() *ebiten.Image { return p.current }

// SetTexture shows img. With a FadeDuration and a previous slide the plane
// crossfades from the previous slide; otherwise it switches immediately.
// A change during a fade continues from the current blend.
// All slides must share one size.
func (p *WarpedPlane) SetTexture(img *ebiten.Image) {
	if img == p.current {
		return
	}
	prev := p.current
	p.current = img
	if prev == nil || img == nil || p.cfg.FadeDuration <= 0 {
		p.material.Images[0] = img
		p.material.Images[1] = img
		p.material.SetFloat("Mix", 0)
		p.fade = nil
		return
	}
	d := float32(p.cfg.FadeDuration)
	if p.fade != nil {
		// Mid-fade: the slide fully shown before the fade stays the source.
		// Returning to it fades back; any other slide replaces the target.
		if img == p.material.Images[0] {
			p.fade = TweenUniform(p.material, "Mix", 0, d, ease.InOutQuad)
			return
		}
		p.material.Images[1] = img
		p.fade = TweenUniform(p.material, "Mix", 1, d, ease.InOutQuad)
		return
	}
	p.material.Images[0] = prev
	p.material.Images[1] = img
	p.material.SetFloat("Mix", 0)
	p.fade = TweenUniform(p.material, "Mix", 1, d, ease.InOutQuad)
}

// Fading reports whether a crossfade is in progress.
func (p *WarpedPlane) Fading() bool { return p.fade != nil }

// SetScroll spins the plane by position*SpinPerUnit about Y and tilts the
// group by sin(position/2)*Tilt about Z.
func (p *WarpedPlane) SetScroll(position float64) {
	p.mesh.SetRotation(0, position*p.cfg.SpinPerUnit, 0)
	p.group.SetRotation(0, 0, p.cfg.Tilt*math.Sin(position*0.5))
}

// Update advances the crossfade by dt seconds.
func (p *WarpedPlane) Update(dt float32) {
	if p.fade == nil {
		return
	}
	p.fade.Update(dt)
	if p.fade.Done {
		p.fade = nil
		p.material.Images[0] = p.current
		p.material.SetFloat("Mix", 0)
	}
}

// SlideIndex returns round(position + 10000) mod n, always in [0, n) for
// finite positions. Halves round up. Returns -1 when n <= 0 and 0 for a
// non-finite position.
func SlideIndex(position float64, n int) int {
	if n <= 0 {
		return -1
	}
	k := math.Floor(position + slideOffset + 0.5)
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0
	}
	idx := math.Mod(k, float64(n))
	if idx < 0 {
		idx += float64(n)
	}
	// Mod of huge values can land exactly on n after the adjustment.
	if idx >= float64(n) {
		idx = 0
	}
	return int(idx)
}
