package marquee

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter (no atomic; the scene graph is only
// touched from the game loop).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// DeformFunc maps a local-space vertex position to a new local-space
// position. It runs for every vertex of a mesh on every frame before the
// model transform, playing the role of a vertex shader.
type DeformFunc func(p Vec3) Vec3

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y, Z                         float64
	ScaleX, ScaleY, ScaleZ          float64
	RotationX, RotationY, RotationZ float64

	// Computed during traversal
	worldTransform Mat4
	transformDirty bool

	Visible bool

	// Mesh and wireframe fields
	Geometry *Geometry
	Material *Material
	Deform   DeformFunc
	// Color tints mesh vertices and colors wireframe strokes.
	Color Color
	// SortTriangles orders this mesh's triangles far-to-near before
	// submission. Needed for meshes that can overlap themselves.
	SortTriangles bool

	// Metadata
	UserData any

	// Per-frame buffers (high-water mark, never shrink)
	projected []ebiten.Vertex
	viewDepth []float64
	inView    []bool
	drawInds  []uint16
	triOrder  []triDepth

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.ScaleZ = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.worldTransform = identityTransform
}

// NewContainer creates a group node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node drawing geo with the given material.
func NewMesh(name string, geo *Geometry, mat *Material) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Geometry: geo, Material: mat}
	nodeDefaults(n)
	return n
}

// NewWireframe creates a node that strokes the edges of geo in the given color.
func NewWireframe(name string, geo *Geometry, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeWireframe, Geometry: geo}
	nodeDefaults(n)
	n.Color = c
	return n
}

// Clone returns a detached copy of n and its subtree. Geometry, Material and
// Deform are shared with the original; transforms and visibility are copied.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:          n.Name,
		Type:          n.Type,
		X:             n.X,
		Y:             n.Y,
		Z:             n.Z,
		ScaleX:        n.ScaleX,
		ScaleY:        n.ScaleY,
		ScaleZ:        n.ScaleZ,
		RotationX:     n.RotationX,
		RotationY:     n.RotationY,
		RotationZ:     n.RotationZ,
		Visible:       n.Visible,
		Geometry:      n.Geometry,
		Material:      n.Material,
		Deform:        n.Deform,
		Color:         n.Color,
		SortTriangles: n.SortTriangles,
		UserData:      n.UserData,
	}
	c.ID = nextNodeID()
	c.transformDirty = true
	c.worldTransform = identityTransform
	for _, child := range n.children {
		c.AddChild(child.Clone())
	}
	return c
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("marquee: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("marquee: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("marquee: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Geometry = nil
	n.Material = nil
	n.Deform = nil
	n.UserData = nil
	n.projected = nil
	n.viewDepth = nil
	n.inView = nil
	n.drawInds = nil
	n.triOrder = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
