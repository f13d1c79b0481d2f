package marquee

import (
	"encoding/json"
	"fmt"
)

// --- glyph (internal) ---

type glyph struct {
	id       rune
	x, y     float64 // atlas pixel rect
	width    float64
	height   float64
	xOffset  float64
	yOffset  float64
	xAdvance float64
	page     int
}

const asciiGlyphCount = 128

// defaultDistanceRange is the msdfgen default pixel range.
const defaultDistanceRange = 4

// MSDFFont holds glyph metrics for a multichannel signed-distance-field
// atlas in the msdf-bmfont JSON format. The atlas image itself is loaded
// separately and bound to the text material.
type MSDFFont struct {
	lineHeight    float64
	base          float64
	scaleW        float64
	scaleH        float64
	distanceRange float64
	fieldType     string

	asciiGlyphs [asciiGlyphCount]glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool  // which ASCII entries are populated
	extGlyphs   map[rune]*glyph        // extended Unicode (pointer avoids per-lookup alloc)

	kernings map[[2]rune]float64
}

// --- JSON structure types ---

type jsonFontChar struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	XOffset  float64 `json:"xoffset"`
	YOffset  float64 `json:"yoffset"`
	XAdvance float64 `json:"xadvance"`
	Page     int     `json:"page"`
}

type jsonFontCommon struct {
	LineHeight float64 `json:"lineHeight"`
	Base       float64 `json:"base"`
	ScaleW     float64 `json:"scaleW"`
	ScaleH     float64 `json:"scaleH"`
}

type jsonDistanceField struct {
	FieldType     string  `json:"fieldType"`
	DistanceRange float64 `json:"distanceRange"`
}

type jsonKerning struct {
	First  int     `json:"first"`
	Second int     `json:"second"`
	Amount float64 `json:"amount"`
}

type jsonFont struct {
	Pages         []string           `json:"pages"`
	Chars         []jsonFontChar     `json:"chars"`
	Common        jsonFontCommon     `json:"common"`
	DistanceField *jsonDistanceField `json:"distanceField"`
	Kernings      []jsonKerning      `json:"kernings"`
}

// ParseMSDFFont parses an msdf-bmfont JSON descriptor.
func ParseMSDFFont(data []byte) (*MSDFFont, error) {
	var raw jsonFont
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("marquee: failed to parse font JSON: %w", err)
	}
	if raw.Common.LineHeight <= 0 {
		return nil, fmt.Errorf("marquee: font JSON missing common.lineHeight: %w", ErrInvalidConfig)
	}
	if len(raw.Chars) == 0 {
		return nil, fmt.Errorf("marquee: font JSON: %w", ErrNoGlyphs)
	}

	f := &MSDFFont{
		lineHeight:    raw.Common.LineHeight,
		base:          raw.Common.Base,
		scaleW:        raw.Common.ScaleW,
		scaleH:        raw.Common.ScaleH,
		distanceRange: defaultDistanceRange,
		fieldType:     "msdf",
	}
	if raw.DistanceField != nil {
		if raw.DistanceField.DistanceRange > 0 {
			f.distanceRange = raw.DistanceField.DistanceRange
		}
		if raw.DistanceField.FieldType != "" {
			f.fieldType = raw.DistanceField.FieldType
		}
	}

	// Older exports omit the atlas size; infer the smallest fit.
	inferW, inferH := f.scaleW <= 0, f.scaleH <= 0
	for _, c := range raw.Chars {
		g := glyph{
			id:       rune(c.ID),
			x:        c.X,
			y:        c.Y,
			width:    c.Width,
			height:   c.Height,
			xOffset:  c.XOffset,
			yOffset:  c.YOffset,
			xAdvance: c.XAdvance,
			page:     c.Page,
		}
		if inferW {
			f.scaleW = max(f.scaleW, c.X+c.Width)
		}
		if inferH {
			f.scaleH = max(f.scaleH, c.Y+c.Height)
		}
		if g.id >= 0 && g.id < asciiGlyphCount {
			f.asciiGlyphs[g.id] = g
			f.asciiSet[g.id] = true
			continue
		}
		if f.extGlyphs == nil {
			f.extGlyphs = make(map[rune]*glyph)
		}
		f.extGlyphs[g.id] = &g
	}

	for _, k := range raw.Kernings {
		if f.kernings == nil {
			f.kernings = make(map[[2]rune]float64, len(raw.Kernings))
		}
		f.kernings[[2]rune{rune(k.First), rune(k.Second)}] = k.Amount
	}
	return f, nil
}

// LineHeight returns the vertical distance between baselines in font units.
func (f *MSDFFont) LineHeight() float64 {
	return f.lineHeight
}

// DistanceRange returns the atlas distance field range in atlas pixels.
func (f *MSDFFont) DistanceRange() float64 {
	return f.distanceRange
}

// AtlasSize returns the atlas page size the glyph rects refer to.
func (f *MSDFFont) AtlasSize() (w, h float64) {
	return f.scaleW, f.scaleH
}

// HasGlyph reports whether the font can draw r.
func (f *MSDFFont) HasGlyph(r rune) bool {
	return f.glyph(r) != nil
}

// glyph returns the glyph for the given rune, or nil if not found.
func (f *MSDFFont) glyph(r rune) *glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	if g, ok := f.extGlyphs[r]; ok {
		return g
	}
	return nil
}

// kern returns the kerning amount for the given rune pair.
func (f *MSDFFont) kern(first, second rune) float64 {
	if f.kernings == nil {
		return 0
	}
	return f.kernings[[2]rune{first, second}]
}
