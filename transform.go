package marquee

import "math"

// Mat4 is a row-major 4x4 affine matrix. m[row*4+col].
//
//	| m0  m1  m2  m3  |   x' = m0*x + m1*y + m2*z + m3
//	| m4  m5  m6  m7  |   y' = m4*x + m5*y + m6*z + m7
//	| m8  m9  m10 m11 |   z' = m8*x + m9*y + m10*z + m11
//	| 0   0   0   1   |
type Mat4 [16]float64

// identityTransform is the identity matrix.
var identityTransform = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Apply transforms point p (w = 1).
func (m Mat4) Apply(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

func translateMat(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

func scaleMat(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func rotateXMat(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

func rotateYMat(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func rotateZMat(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// rotateZ rotates p about the Z axis by angle radians.
func rotateZ(p Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
}

// computeLocalTransform composes the node's local matrix.
//
//	Translate(X, Y, Z) * RotateX * RotateY * RotateZ * Scale
//
// The rotation order matches an XYZ Euler angle.
func computeLocalTransform(n *Node) Mat4 {
	m := translateMat(n.X, n.Y, n.Z)
	if n.RotationX != 0 {
		m = m.Mul(rotateXMat(n.RotationX))
	}
	if n.RotationY != 0 {
		m = m.Mul(rotateYMat(n.RotationY))
	}
	if n.RotationZ != 0 {
		m = m.Mul(rotateZMat(n.RotationZ))
	}
	if n.ScaleX != 1 || n.ScaleY != 1 || n.ScaleZ != 1 {
		m = m.Mul(scaleMat(n.ScaleX, n.ScaleY, n.ScaleZ))
	}
	return m
}

// updateWorldTransform recomputes a node's worldTransform and those of its
// descendants. parentRecomputed forces recomputation of clean children.
func updateWorldTransform(n *Node, parent Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parent.Mul(computeLocalTransform(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.X, n.Y, n.Z = x, y, z
	n.transformDirty = true
}

// SetY sets only the local Y coordinate and marks the node dirty.
func (n *Node) SetY(y float64) {
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's per-axis scale and marks it dirty.
func (n *Node) SetScale(x, y, z float64) {
	n.ScaleX, n.ScaleY, n.ScaleZ = x, y, z
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians) and marks it dirty.
func (n *Node) SetRotation(x, y, z float64) {
	n.RotationX, n.RotationY, n.RotationZ = x, y, z
	n.transformDirty = true
}
