package marquee

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// defaultWheelScale converts one wheel notch into a DOM-sized delta.
	defaultWheelScale = 120.0
	// defaultDragScale multiplies drag deltas in pixels.
	defaultDragScale = 2.0
)

// ScrollSource polls Ebitengine wheel, mouse-drag and touch-drag input and
// feeds vertical deltas into a ScrollInput. Injected deltas take priority:
// while the inject queue is non-empty one injected delta is consumed per
// poll and real input is ignored.
type ScrollSource struct {
	input *ScrollInput

	WheelScale float64
	DragScale  float64

	// Drag state. Pointer 0 is the mouse, touches are tracked by ID.
	mouseDown  bool
	lastMouseY int
	touchID    ebiten.TouchID
	touchDown  bool
	lastTouchY int
	touchBuf   []ebiten.TouchID

	injectQueue []float64
}

// NewScrollSource creates a source feeding input.
func NewScrollSource(input *ScrollInput, cfg ScrollConfig) *ScrollSource {
	src := &ScrollSource{
		input:      input,
		WheelScale: cfg.WheelScale,
		DragScale:  cfg.DragScale,
	}
	if src.WheelScale == 0 {
		src.WheelScale = defaultWheelScale
	}
	if src.DragScale == 0 {
		src.DragScale = defaultDragScale
	}
	return src
}

// Poll reads this frame's input. Call once per game-loop update.
func (s *ScrollSource) Poll() {
	if s.processInjected() {
		return
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		s.input.Apply(dy * s.WheelScale)
	}

	s.pollMouseDrag()
	s.pollTouchDrag()
}

// pollMouseDrag applies the vertical cursor delta while the left button is held.
func (s *ScrollSource) pollMouseDrag() {
	_, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
	case pressed && s.mouseDown:
		if dy := y - s.lastMouseY; dy != 0 {
			s.input.Apply(float64(dy) * s.DragScale)
		}
	default:
		s.mouseDown = false
	}
	s.lastMouseY = y
}

// pollTouchDrag follows the first touch that went down until it lifts.
func (s *ScrollSource) pollTouchDrag() {
	if s.touchDown && inpututil.IsTouchJustReleased(s.touchID) {
		s.touchDown = false
	}
	if !s.touchDown {
		s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
		if len(s.touchBuf) == 0 {
			return
		}
		s.touchID = s.touchBuf[0]
		s.touchDown = true
		_, s.lastTouchY = ebiten.TouchPosition(s.touchID)
		return
	}
	_, y := ebiten.TouchPosition(s.touchID)
	if dy := y - s.lastTouchY; dy != 0 {
		s.input.Apply(float64(dy) * s.DragScale)
	}
	s.lastTouchY = y
}
