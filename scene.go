package marquee

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 64

// Scene owns the node trees, the camera, and the render buffers. The main
// tree is drawn first with depth ordering; the overlay tree is drawn on top
// of it, ordered only among itself.
type Scene struct {
	root    *Node
	overlay *Node
	camera  *Camera
	debug   bool

	// ClearColor fills the target before drawing when its alpha is non-zero.
	ClearColor Color

	commands []drawCommand
}

// NewScene creates a scene with empty root and overlay containers viewed
// through cam.
func NewScene(cam *Camera) *Scene {
	return &Scene{
		root:     NewContainer("root"),
		overlay:  NewContainer("overlay"),
		camera:   cam,
		commands: make([]drawCommand, 0, defaultCommandCap),
	}
}

// Root returns the main tree's root container.
func (s *Scene) Root() *Node {
	return s.root
}

// Overlay returns the overlay tree's root container.
func (s *Scene) Overlay() *Node {
	return s.overlay
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Update advances camera animations by dt seconds and refreshes world
// transforms.
func (s *Scene) Update(dt float32) {
	s.camera.update(dt)
	updateWorldTransform(s.root, identityTransform, false)
	updateWorldTransform(s.overlay, identityTransform, false)
}

// Dispose disposes both trees. The scene must not be drawn afterwards.
func (s *Scene) Dispose() {
	s.root.Dispose()
	s.overlay.Dispose()
}

// SetDebugMode enables or disables per-frame render stats, logged at
// Debug level through Logger.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Draw renders both trees into target.
func (s *Scene) Draw(target *ebiten.Image) {
	if s.ClearColor.A > 0 {
		target.Fill(s.ClearColor.toRGBA())
	}
	s.drawLayer(target, s.root)
	s.drawLayer(target, s.overlay)
}
