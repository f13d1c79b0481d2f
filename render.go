package marquee

import (
	"cmp"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawCommand is one drawable node collected during traversal.
type drawCommand struct {
	node      *Node
	depth     float64 // mean view depth of the node's visible vertices
	treeOrder int     // traversal order, for stable sorting
}

// triDepth pairs a triangle's first index with its mean view depth.
type triDepth struct {
	first int
	depth float64
}

// drawLayer traverses one tree, projects its meshes, orders them
// far-to-near, and submits them to target.
func (s *Scene) drawLayer(target *ebiten.Image, layer *Node) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	updateWorldTransform(layer, identityTransform, false)

	b := target.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	view := s.camera.viewMatrix()
	f := s.camera.focal()

	s.commands = s.commands[:0]
	treeOrder := 0
	s.collect(layer, &treeOrder)

	// Project in place; drop nodes with nothing in view.
	kept := s.commands[:0]
	for _, cmd := range s.commands {
		depth, ok := s.project(cmd.node, view, w, h, f)
		if !ok {
			stats.culledCount++
			continue
		}
		cmd.depth = depth
		kept = append(kept, cmd)
	}
	s.commands = kept

	if s.debug {
		stats.projectTime = time.Since(t0)
		t0 = time.Now()
	}

	slices.SortStableFunc(s.commands, func(a, b drawCommand) int {
		if c := cmp.Compare(b.depth, a.depth); c != 0 {
			return c
		}
		return cmp.Compare(a.treeOrder, b.treeOrder)
	})

	for i := range s.commands {
		n := s.commands[i].node
		switch n.Type {
		case NodeTypeMesh:
			stats.triangleCount += len(n.drawInds) / 3
			submitMesh(target, n)
		case NodeTypeWireframe:
			stats.triangleCount += submitWireframe(target, n)
		}
	}

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.layer = layer.Name
		stats.commandCount = len(s.commands)
		s.debugLog(stats)
	}
}

// collect appends every visible drawable node under n in tree order.
func (s *Scene) collect(n *Node, treeOrder *int) {
	if !n.Visible {
		return
	}
	if (n.Type == NodeTypeMesh || n.Type == NodeTypeWireframe) && n.Geometry != nil && len(n.Geometry.Positions) > 0 {
		*treeOrder++
		s.commands = append(s.commands, drawCommand{node: n, treeOrder: *treeOrder})
	}
	for _, child := range n.children {
		s.collect(child, treeOrder)
	}
}

// ensureBuffers grows the node's per-frame buffers to hold nv vertices,
// using a high-water-mark strategy (never shrinks).
func ensureBuffers(n *Node, nv int) {
	if cap(n.projected) < nv {
		n.projected = make([]ebiten.Vertex, nv)
		n.viewDepth = make([]float64, nv)
		n.inView = make([]bool, nv)
	}
	n.projected = n.projected[:nv]
	n.viewDepth = n.viewDepth[:nv]
	n.inView = n.inView[:nv]
}

// project runs the deform hook and the model-view-projection transform for
// every vertex of n, then builds the visible triangle list. Returns the mean
// view depth and false when nothing is in view.
func (s *Scene) project(n *Node, view Mat4, w, h, f float64) (float64, bool) {
	geo := n.Geometry
	nv := len(geo.Positions)
	ensureBuffers(n, nv)

	mv := view.Mul(n.worldTransform)
	imgW, imgH := 1.0, 1.0
	if n.Material != nil {
		imgW, imgH = n.Material.imageSize()
	}
	ca := float32(n.Color.A)
	cr := float32(n.Color.R) * ca
	cg := float32(n.Color.G) * ca
	cb := float32(n.Color.B) * ca

	var sum float64
	var count int
	for i, p := range geo.Positions {
		if n.Deform != nil {
			p = n.Deform(p)
		}
		sx, sy, d, ok := s.camera.projectView(mv.Apply(p), w, h, f)
		n.viewDepth[i] = d
		n.inView[i] = ok
		vert := ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
		if i < len(geo.UVs) {
			vert.SrcX = float32(geo.UVs[i].X * imgW)
			vert.SrcY = float32(geo.UVs[i].Y * imgH)
		}
		if i < len(geo.LayoutUVs) {
			vert.Custom0 = float32(geo.LayoutUVs[i].X)
			vert.Custom1 = float32(geo.LayoutUVs[i].Y)
		}
		n.projected[i] = vert
		if ok {
			sum += d
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	if n.Type == NodeTypeMesh {
		buildTriangles(n)
	}
	return sum / float64(count), true
}

// buildTriangles fills n.drawInds with the triangles whose three vertices
// are in view, culling back faces for single-sided materials and sorting
// far-to-near when n.SortTriangles is set.
func buildTriangles(n *Node) {
	inds := n.Geometry.Indices
	doubleSided := n.Material == nil || n.Material.DoubleSided
	n.triOrder = n.triOrder[:0]
	for t := 0; t+2 < len(inds); t += 3 {
		a, b, c := inds[t], inds[t+1], inds[t+2]
		if !n.inView[a] || !n.inView[b] || !n.inView[c] {
			continue
		}
		if !doubleSided && !frontFacing(n.projected[a], n.projected[b], n.projected[c]) {
			continue
		}
		n.triOrder = append(n.triOrder, triDepth{
			first: t,
			depth: (n.viewDepth[a] + n.viewDepth[b] + n.viewDepth[c]) / 3,
		})
	}
	if n.SortTriangles {
		slices.SortStableFunc(n.triOrder, func(x, y triDepth) int {
			return cmp.Compare(y.depth, x.depth)
		})
	}
	n.drawInds = n.drawInds[:0]
	for _, td := range n.triOrder {
		n.drawInds = append(n.drawInds, inds[td.first], inds[td.first+1], inds[td.first+2])
	}
}

// frontFacing reports whether a projected triangle winds counter-clockwise
// in y-up space (clockwise on the y-down surface).
func frontFacing(a, b, c ebiten.Vertex) bool {
	area := (b.DstX-a.DstX)*(c.DstY-a.DstY) - (c.DstX-a.DstX)*(b.DstY-a.DstY)
	return area < 0
}

// submitMesh draws a projected mesh with its material.
func submitMesh(target *ebiten.Image, n *Node) {
	mat := n.Material
	if mat == nil || mat.Images[0] == nil || len(n.drawInds) == 0 {
		return
	}
	shader := ensureShader(mat.Program)
	if shader == nil {
		op := &ebiten.DrawTrianglesOptions{Blend: mat.BlendMode.EbitenBlend()}
		target.DrawTriangles(n.projected, n.drawInds, mat.Images[0], op)
		return
	}
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: mat.Uniforms,
		Images:   mat.Images,
		Blend:    mat.BlendMode.EbitenBlend(),
	}
	target.DrawTrianglesShader(n.projected, n.drawInds, shader, op)
}

// submitWireframe strokes every edge whose endpoints are both in view.
// Returns the number of strokes.
func submitWireframe(target *ebiten.Image, n *Node) int {
	clr := n.Color.toRGBA()
	strokes := 0
	for _, e := range n.Geometry.Edges {
		a, b := e[0], e[1]
		if !n.inView[a] || !n.inView[b] {
			continue
		}
		pa, pb := n.projected[a], n.projected[b]
		vector.StrokeLine(target, pa.DstX, pa.DstY, pb.DstX, pb.DstY, 1, clr, true)
		strokes++
	}
	return strokes
}
