package marquee

import (
	"math"
	"testing"
)

func TestNewPlaneGeometryCounts(t *testing.T) {
	tests := []struct {
		segX, segY int
		verts      int
		inds       int
	}{
		{1, 1, 4, 6},
		{2, 3, 12, 36},
		{30, 30, 961, 5400},
		{0, 0, 4, 6}, // clamped to one segment
	}
	for _, tt := range tests {
		g := NewPlaneGeometry(2, 1, tt.segX, tt.segY)
		if g.NumVertices() != tt.verts || len(g.UVs) != tt.verts {
			t.Errorf("%dx%d: vertices = %d, want %d", tt.segX, tt.segY, g.NumVertices(), tt.verts)
		}
		if len(g.Indices) != tt.inds {
			t.Errorf("%dx%d: indices = %d, want %d", tt.segX, tt.segY, len(g.Indices), tt.inds)
		}
		for _, i := range g.Indices {
			if int(i) >= g.NumVertices() {
				t.Fatalf("%dx%d: index %d out of range", tt.segX, tt.segY, i)
			}
		}
	}
}

func TestNewPlaneGeometryLayout(t *testing.T) {
	g := NewPlaneGeometry(2, 1, 2, 2)
	lo, hi := g.Bounds()
	if lo != (Vec3{X: -1, Y: -0.5}) || hi != (Vec3{X: 1, Y: 0.5}) {
		t.Errorf("Bounds = %v..%v, want (-1,-0.5)..(1,0.5)", lo, hi)
	}
	// First vertex is the top-left corner with UV (0, 0).
	if g.Positions[0] != (Vec3{X: -1, Y: 0.5}) || g.UVs[0] != (Vec2{}) {
		t.Errorf("first vertex = %v uv %v", g.Positions[0], g.UVs[0])
	}
	last := g.NumVertices() - 1
	if g.Positions[last] != (Vec3{X: 1, Y: -0.5}) || g.UVs[last] != (Vec2{X: 1, Y: 1}) {
		t.Errorf("last vertex = %v uv %v", g.Positions[last], g.UVs[last])
	}
}

func TestGeometryTranslate(t *testing.T) {
	g := NewPlaneGeometry(1, 1, 1, 1).Translate(0, 0, 1)
	for i, p := range g.Positions {
		if p.Z != 1 {
			t.Errorf("vertex %d z = %v, want 1", i, p.Z)
		}
	}
}

func TestGeometryBoundsEmpty(t *testing.T) {
	lo, hi := (&Geometry{}).Bounds()
	if lo != (Vec3{}) || hi != (Vec3{}) {
		t.Errorf("empty Bounds = %v %v", lo, hi)
	}
}

func TestNewSphereGeometry(t *testing.T) {
	g := NewSphereGeometry(1.5, 8, 4)
	if g.NumVertices() != 9*5 {
		t.Fatalf("vertices = %d, want 45", g.NumVertices())
	}
	for i, p := range g.Positions {
		if !approxEqual(p.Length(), 1.5, 1e-9) {
			t.Fatalf("vertex %d length = %v, want 1.5", i, p.Length())
		}
	}
	// 3 inner rings of 8 segments + 4 bands of 8 meridian segments.
	if len(g.Edges) != 3*8+4*8 {
		t.Errorf("edges = %d, want %d", len(g.Edges), 3*8+4*8)
	}
	for _, e := range g.Edges {
		if int(e[0]) >= g.NumVertices() || int(e[1]) >= g.NumVertices() {
			t.Fatalf("edge %v out of range", e)
		}
	}
}

func TestWarpToShellCylinder(t *testing.T) {
	g := NewPlaneGeometry(1.77/3, 1.0/3, 30, 30).Translate(0, 0, 1)
	orig := append([]Vec3(nil), g.Positions...)
	WarpToShell(g.Positions, ShellCylinder, 1.3)
	for i, p := range g.Positions {
		if r := math.Hypot(p.X, p.Z); !approxEqual(r, 1.3, 1e-9) {
			t.Fatalf("vertex %d: radius %v, want 1.3", i, r)
		}
		if p.Y != orig[i].Y {
			t.Fatalf("vertex %d: y changed from %v to %v", i, orig[i].Y, p.Y)
		}
	}
}

func TestWarpToShellSphere(t *testing.T) {
	g := NewPlaneGeometry(1.77/2, 1.0/2, 30, 30).Translate(0, 0, 1)
	WarpToShell(g.Positions, ShellSphere, 1.5)
	for i, p := range g.Positions {
		if !approxEqual(p.Length(), 1.5, 1e-9) {
			t.Fatalf("vertex %d: radius %v, want 1.5", i, p.Length())
		}
		if p.Z <= 0 {
			t.Fatalf("vertex %d: z = %v, want in front of origin", i, p.Z)
		}
	}
}

func TestWarpToShellZeroDirection(t *testing.T) {
	pts := []Vec3{{}, {Y: 0.25}}
	WarpToShell(pts[:1], ShellSphere, 2)
	if pts[0] != (Vec3{Z: 2}) {
		t.Errorf("sphere zero = %v, want (0,0,2)", pts[0])
	}
	WarpToShell(pts[1:], ShellCylinder, 2)
	if pts[1] != (Vec3{Y: 0.25, Z: 2}) {
		t.Errorf("cylinder zero = %v, want (0,0.25,2)", pts[1])
	}
}

func TestWarpedPlaneGeometry(t *testing.T) {
	for _, v := range []Variant{VariantSphere(), VariantCylinder()} {
		p := NewWarpedPlane(v.Plane)
		want := (v.Plane.Segments + 1) * (v.Plane.Segments + 1)
		if p.Geometry().NumVertices() != want {
			t.Errorf("%s: vertices = %d, want %d", v.Name, p.Geometry().NumVertices(), want)
		}
		for i, pos := range p.Geometry().Positions {
			var r float64
			if v.Plane.Shell == ShellSphere {
				r = pos.Length()
			} else {
				r = math.Hypot(pos.X, pos.Z)
			}
			if !approxEqual(r, v.Plane.Radius, 1e-9) {
				t.Fatalf("%s: vertex %d radius %v, want %v", v.Name, i, r, v.Plane.Radius)
			}
		}
	}
}
