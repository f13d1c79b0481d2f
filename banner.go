package marquee

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextBanner is a vertical stack of MSDF text meshes, one per line, bent
// by scroll velocity. The groups exist from construction; meshes are added
// when Attach is called with the resolved font.
type TextBanner struct {
	cfg BannerConfig

	group     *Node
	copyGroup *Node
	meshes    []*Node
	copies    []*Node
	material  *Material
	speed     float64
	attached  bool
}

// NewTextBanner creates an empty banner. Add Group to the main tree and
// CopyGroup to the overlay tree.
func NewTextBanner(cfg BannerConfig) *TextBanner {
	b := &TextBanner{
		cfg:       cfg,
		group:     NewContainer("banner"),
		copyGroup: NewContainer("banner_copy"),
		material:  NewMaterial(ProgramMSDFText),
	}
	b.material.BlendMode = BlendNormal
	b.material.SetColor("Color", cfg.Color)
	if cfg.ColorMode == ColorLayoutUV {
		b.material.SetFloat("LayoutUV", 1)
	} else {
		b.material.SetFloat("LayoutUV", 0)
	}
	b.SetScroll(0)
	return b
}

// Group returns the main-layer container holding the line meshes.
func (b *TextBanner) Group() *Node { return b.group }

// CopyGroup returns the overlay-layer container holding the line clones.
// It stays empty unless BannerConfig.Overlay is set.
func (b *TextBanner) CopyGroup() *Node { return b.copyGroup }

// Material returns the shared text material.
func (b *TextBanner) Material() *Material { return b.material }

// Ready reports whether Attach has built the meshes.
func (b *TextBanner) Ready() bool { return b.attached }

// Meshes returns the line meshes in rendering order: index 0 is the last
// declared line, placed lowest.
func (b *TextBanner) Meshes() []*Node { return b.meshes }

// Copies returns the overlay clones, in the same order as Meshes.
func (b *TextBanner) Copies() []*Node { return b.copies }

// Attach builds one mesh per line from font and binds atlas to the shared
// material. Lines are placed in reverse declaration order at
// y = LineHeight * index. Calling Attach again is a no-op.
func (b *TextBanner) Attach(font *MSDFFont, atlas *ebiten.Image) error {
	if b.attached {
		return nil
	}
	if font == nil {
		return fmt.Errorf("marquee: attach banner: nil font")
	}

	b.material.Images[0] = atlas
	b.material.SetFloat("DistanceRange", font.DistanceRange())

	lines := ReverseLines(b.cfg.Lines)
	meshes := make([]*Node, 0, len(lines))
	for i, line := range lines {
		if b.cfg.Uppercase {
			line = strings.ToUpper(line)
		}
		geo, _, err := BuildTextGeometry(font, line)
		if err != nil {
			return fmt.Errorf("marquee: attach banner line %d: %w", i, err)
		}
		mesh := NewMesh("line_"+line, geo, b.material)
		mesh.SetScale(b.cfg.Scale, -b.cfg.Scale, b.cfg.Scale)
		mesh.SetPosition(b.cfg.OffsetX, b.cfg.LineHeight*float64(i), 0)
		mesh.Deform = b.bend
		mesh.UserData = line
		meshes = append(meshes, mesh)
	}

	for _, mesh := range meshes {
		b.group.AddChild(mesh)
		if b.cfg.Overlay {
			c := mesh.Clone()
			b.copyGroup.AddChild(c)
			b.copies = append(b.copies, c)
		}
	}
	b.meshes = meshes
	b.attached = true
	return nil
}

// SetSpeed sets the bend amount, normally the smoothed scroll velocity.
func (b *TextBanner) SetSpeed(v float64) {
	b.speed = v
}

// Speed returns the current bend amount.
func (b *TextBanner) Speed() float64 { return b.speed }

// SetScroll moves both groups to y = -position*ScrollScale + OffsetY.
// ScrollScale falls back to LineHeight when zero.
func (b *TextBanner) SetScroll(position float64) {
	k := b.cfg.ScrollScale
	if k == 0 {
		k = b.cfg.LineHeight
	}
	y := -position*k + b.cfg.OffsetY
	b.group.SetY(y)
	b.copyGroup.SetY(y)
}

// ShowOnly makes the overlay clone at index visible and hides the rest.
// An index outside the range hides every clone.
func (b *TextBanner) ShowOnly(index int) {
	for i, c := range b.copies {
		c.Visible = i == index
	}
}

// bend rotates a local vertex about Z, clockwise for positive speed, by
// speed * falloff(x). Far-from-origin glyphs bend more.
func (b *TextBanner) bend(p Vec3) Vec3 {
	if b.speed == 0 {
		return p
	}
	return rotateZ(p, -b.speed*BendFalloff(b.cfg.Bend, b.cfg.BendScale, p.X))
}

// BendFalloff returns the bend angle per unit speed at local x: x for
// BendLinear, (k*x)^3 for BendCubic.
func BendFalloff(kind BendKind, k, x float64) float64 {
	switch kind {
	case BendCubic:
		xx := x * k
		return xx * xx * xx
	default:
		return x
	}
}

// ReverseLines returns a reversed copy of lines. Rendering index i holds
// the i-th line from the end of the declaration list.
func ReverseLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[len(lines)-1-i] = l
	}
	return out
}
