package marquee

import "math"

// Geometry holds vertex data for a mesh or wireframe node. UVs are
// normalized to [0, 1] with V growing downward (image space) and are scaled
// to the bound image's size at draw time.
type Geometry struct {
	Positions []Vec3
	UVs       []Vec2
	// LayoutUVs carry a second, geometry-wide coordinate (the position
	// inside the whole text block for glyph meshes). Optional.
	LayoutUVs []Vec2
	Indices   []uint16
	// Edges lists vertex index pairs for wireframe rendering.
	Edges [][2]uint16
}

// NumVertices returns the vertex count.
func (g *Geometry) NumVertices() int {
	return len(g.Positions)
}

// Translate offsets every position in place and returns g.
func (g *Geometry) Translate(dx, dy, dz float64) *Geometry {
	for i := range g.Positions {
		g.Positions[i].X += dx
		g.Positions[i].Y += dy
		g.Positions[i].Z += dz
	}
	return g
}

// Bounds returns the axis-aligned min and max corners of the positions.
func (g *Geometry) Bounds() (lo, hi Vec3) {
	if len(g.Positions) == 0 {
		return Vec3{}, Vec3{}
	}
	lo, hi = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}
	return lo, hi
}

// NewPlaneGeometry creates a width x height rectangle in the XY plane,
// centered on the origin, subdivided into segX x segY quads. Vertices are
// laid out row by row from the top edge (y = +height/2) down. For
// (segX+1)*(segY+1) vertices: 6*segX*segY indices.
func NewPlaneGeometry(width, height float64, segX, segY int) *Geometry {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}
	cols := segX + 1
	rows := segY + 1
	g := &Geometry{
		Positions: make([]Vec3, 0, cols*rows),
		UVs:       make([]Vec2, 0, cols*rows),
		Indices:   make([]uint16, 0, 6*segX*segY),
	}
	for iy := 0; iy < rows; iy++ {
		v := float64(iy) / float64(segY)
		y := height/2 - v*height
		for ix := 0; ix < cols; ix++ {
			u := float64(ix) / float64(segX)
			g.Positions = append(g.Positions, Vec3{X: u*width - width/2, Y: y})
			g.UVs = append(g.UVs, Vec2{X: u, Y: v})
		}
	}
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint16(iy*cols + ix)
			b := uint16((iy+1)*cols + ix)
			c := uint16((iy+1)*cols + ix + 1)
			d := uint16(iy*cols + ix + 1)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// NewSphereGeometry creates a UV sphere of the given radius with widthSeg
// longitudinal and heightSeg latitudinal segments. Only positions and edges
// are generated; the result is meant for wireframe guides.
func NewSphereGeometry(radius float64, widthSeg, heightSeg int) *Geometry {
	if widthSeg < 3 {
		widthSeg = 3
	}
	if heightSeg < 2 {
		heightSeg = 2
	}
	cols := widthSeg + 1
	g := &Geometry{}
	for iy := 0; iy <= heightSeg; iy++ {
		theta := float64(iy) / float64(heightSeg) * math.Pi
		st, ct := math.Sincos(theta)
		for ix := 0; ix <= widthSeg; ix++ {
			phi := float64(ix) / float64(widthSeg) * 2 * math.Pi
			sp, cp := math.Sincos(phi)
			g.Positions = append(g.Positions, Vec3{
				X: -radius * cp * st,
				Y: radius * ct,
				Z: radius * sp * st,
			})
		}
	}
	for iy := 0; iy <= heightSeg; iy++ {
		for ix := 0; ix < widthSeg; ix++ {
			a := uint16(iy*cols + ix)
			// Rings at the poles collapse to a point; skip them.
			if iy > 0 && iy < heightSeg {
				g.Edges = append(g.Edges, [2]uint16{a, a + 1})
			}
			if iy < heightSeg {
				g.Edges = append(g.Edges, [2]uint16{a, a + uint16(cols)})
			}
		}
	}
	return g
}
