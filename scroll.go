package marquee

import "math"

const (
	// DefaultDecay is the per-frame velocity multiplier.
	DefaultDecay = 0.9
	// DefaultSmoothing is the per-frame low-pass factor pulling Target
	// toward Velocity. 1 disables the filter.
	DefaultSmoothing = 0.1
	// RestEpsilon is the magnitude below which velocity and target snap to
	// zero. Repeated float multiplication by 0.9 stalls at a few subnormal
	// ulps instead of reaching zero.
	RestEpsilon = 1e-9
)

// ScrollState is the scroll snapshot consumed by the render loop.
type ScrollState struct {
	// Position accumulates scroll deltas. Never clamped.
	Position float64
	// Velocity is the latest delta, damped every frame.
	Velocity float64
	// Target is Velocity low-pass filtered; it drives the text bend.
	Target float64
}

// ScrollInput turns raw vertical deltas into a ScrollState. Not safe for
// concurrent use; feed it from the game loop.
type ScrollInput struct {
	state ScrollState

	// PositionDivisor and VelocityDivisor scale a delta into position and
	// velocity units. Negative divisors invert the direction.
	PositionDivisor float64
	VelocityDivisor float64
	Decay           float64
	Smoothing       float64
}

// NewScrollInput creates a scroll input from cfg.
func NewScrollInput(cfg ScrollConfig) *ScrollInput {
	return &ScrollInput{
		PositionDivisor: cfg.PositionDivisor,
		VelocityDivisor: cfg.VelocityDivisor,
		Decay:           cfg.Decay,
		Smoothing:       cfg.Smoothing,
	}
}

// Apply feeds one input delta: position += deltaY/PositionDivisor and
// velocity = deltaY/VelocityDivisor. A zero divisor leaves that field as is.
func (s *ScrollInput) Apply(deltaY float64) {
	if s.PositionDivisor != 0 {
		s.state.Position += deltaY / s.PositionDivisor
	}
	if s.VelocityDivisor != 0 {
		s.state.Velocity = settle(deltaY / s.VelocityDivisor)
	}
}

// Tick advances one frame: velocity decays, target moves toward velocity,
// and both snap to zero once they fall below RestEpsilon.
func (s *ScrollInput) Tick() {
	s.state.Velocity = settle(s.state.Velocity * s.Decay)
	s.state.Target = settle(s.state.Target + (s.state.Velocity-s.state.Target)*s.Smoothing)
}

// State returns the current scroll state.
func (s *ScrollInput) State() ScrollState {
	return s.state
}

// Position returns the accumulated scroll position.
func (s *ScrollInput) Position() float64 {
	return s.state.Position
}

// AtRest reports whether velocity and target are both zero.
func (s *ScrollInput) AtRest() bool {
	return s.state.Velocity == 0 && s.state.Target == 0
}

// Reset returns the input to the zero state.
func (s *ScrollInput) Reset() {
	s.state = ScrollState{}
}

// settle snaps tiny and non-finite values to zero.
func settle(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) < RestEpsilon {
		return 0
	}
	return v
}
