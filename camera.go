package marquee

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is a perspective camera looking down -Z from its position.
type Camera struct {
	// X, Y and Z are the world-space camera position.
	X, Y, Z float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the visible view depth.
	Near, Far float64
	// Aspect is width / height of the surface. Updated on resize.
	Aspect float64

	dolly *gween.Tween
}

// NewCamera creates a camera at (0, 0, z) with the given vertical field of
// view in degrees and clip distances.
func NewCamera(fov, near, far, z float64) *Camera {
	return &Camera{Z: z, FOV: fov, Near: near, Far: far, Aspect: 1}
}

// DollyTo animates the camera's Z position to z over duration seconds.
// A non-positive duration jumps immediately.
func (c *Camera) DollyTo(z float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.Z = z
		c.dolly = nil
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	c.dolly = gween.New(float32(c.Z), float32(z), duration, easeFn)
}

// Dollying reports whether a dolly animation is in progress.
func (c *Camera) Dollying() bool {
	return c.dolly != nil
}

// update advances the dolly tween by dt seconds.
func (c *Camera) update(dt float32) {
	if c.dolly == nil {
		return
	}
	z, done := c.dolly.Update(dt)
	c.Z = float64(z)
	if done {
		c.dolly = nil
	}
}

// SetSize updates the aspect ratio for a surface of w x h pixels.
func (c *Camera) SetSize(w, h int) {
	if w > 0 && h > 0 {
		c.Aspect = float64(w) / float64(h)
	}
}

// viewMatrix returns the world-to-view transform. The camera never
// rotates, so this is a translation by the negated position.
func (c *Camera) viewMatrix() Mat4 {
	return translateMat(-c.X, -c.Y, -c.Z)
}

// focal returns the projection scale for the vertical field of view.
func (c *Camera) focal() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}

// projectView maps a view-space point to surface pixels. depth is the
// distance along the view axis; ok is false outside (Near, Far).
func (c *Camera) projectView(v Vec3, w, h, f float64) (sx, sy, depth float64, ok bool) {
	depth = -v.Z
	if depth <= c.Near || depth >= c.Far {
		return 0, 0, depth, false
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	ndcX := f / aspect * v.X / depth
	ndcY := f * v.Y / depth
	sx = (ndcX + 1) / 2 * w
	sy = (1 - ndcY) / 2 * h
	return sx, sy, depth, true
}

// Project maps a world-space point to pixel coordinates on a w x h surface.
func (c *Camera) Project(p Vec3, w, h int) (sx, sy, depth float64, ok bool) {
	v := c.viewMatrix().Apply(p)
	return c.projectView(v, float64(w), float64(h), c.focal())
}
