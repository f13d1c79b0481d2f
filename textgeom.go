package marquee

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// maxGlyphQuads is the largest text mesh addressable with uint16 indices.
const maxGlyphQuads = math.MaxUint16 / 4

// TextMetrics describes the laid-out size of a text mesh in font units.
type TextMetrics struct {
	Width, Height float64
	Lines         int
	Glyphs        int // drawn quads (whitespace advances without a quad)
}

// BuildTextGeometry lays out s with font f and returns one quad per
// drawable glyph. Positions are in font units with Y growing downward from
// the top of the first line; UVs address the atlas page; LayoutUVs give each
// vertex's position inside the whole text block. Newlines start a new line.
// Runes missing from the font are skipped.
func BuildTextGeometry(f *MSDFFont, s string) (*Geometry, TextMetrics, error) {
	var m TextMetrics
	g := &Geometry{}

	var cursorX, maxW float64
	var prevRune rune
	var hasPrev bool
	line := 0

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\n' {
			maxW = math.Max(maxW, cursorX)
			cursorX = 0
			line++
			hasPrev = false
			continue
		}

		gl := f.glyph(r)
		if gl == nil {
			hasPrev = false
			continue
		}
		if hasPrev {
			cursorX += f.kern(prevRune, r)
		}

		if gl.width > 0 && gl.height > 0 {
			if m.Glyphs >= maxGlyphQuads {
				return nil, m, fmt.Errorf("marquee: text exceeds %d glyphs", maxGlyphQuads)
			}
			x0 := cursorX + gl.xOffset
			y0 := float64(line)*f.lineHeight + gl.yOffset
			x1 := x0 + gl.width
			y1 := y0 + gl.height

			u0 := gl.x / f.scaleW
			v0 := gl.y / f.scaleH
			u1 := (gl.x + gl.width) / f.scaleW
			v1 := (gl.y + gl.height) / f.scaleH

			base := uint16(len(g.Positions))
			g.Positions = append(g.Positions,
				Vec3{X: x0, Y: y0},
				Vec3{X: x0, Y: y1},
				Vec3{X: x1, Y: y1},
				Vec3{X: x1, Y: y0},
			)
			g.UVs = append(g.UVs,
				Vec2{X: u0, Y: v0},
				Vec2{X: u0, Y: v1},
				Vec2{X: u1, Y: v1},
				Vec2{X: u1, Y: v0},
			)
			g.Indices = append(g.Indices, base, base+1, base+3, base+1, base+2, base+3)
			m.Glyphs++
		}

		cursorX += gl.xAdvance
		prevRune = r
		hasPrev = true
	}

	maxW = math.Max(maxW, cursorX)
	m.Lines = line + 1
	m.Width = maxW
	m.Height = float64(m.Lines) * f.lineHeight

	g.LayoutUVs = make([]Vec2, len(g.Positions))
	for i, p := range g.Positions {
		var lu, lv float64
		if m.Width > 0 {
			lu = clamp01(p.X / m.Width)
		}
		if m.Height > 0 {
			lv = clamp01(p.Y / m.Height)
		}
		g.LayoutUVs[i] = Vec2{X: lu, Y: lv}
	}
	return g, m, nil
}
