package marquee

import (
	"math"
	"testing"
)

func newTestScroll() *ScrollInput {
	return NewScrollInput(VariantSphere().Scroll)
}

func TestScrollApply(t *testing.T) {
	s := newTestScroll()
	s.Apply(300)
	st := s.State()
	if !approxEqual(st.Position, -0.1, epsilon) {
		t.Errorf("Position = %v, want -0.1", st.Position)
	}
	if !approxEqual(st.Velocity, -0.15, epsilon) {
		t.Errorf("Velocity = %v, want -0.15", st.Velocity)
	}
	if st.Target != 0 {
		t.Errorf("Target = %v, want 0 before the first tick", st.Target)
	}

	s.Apply(300)
	if !approxEqual(s.Position(), -0.2, epsilon) {
		t.Errorf("Position accumulates: got %v, want -0.2", s.Position())
	}
	if !approxEqual(s.State().Velocity, -0.15, epsilon) {
		t.Errorf("Velocity is replaced, not accumulated: got %v", s.State().Velocity)
	}
}

func TestScrollCylinderDirection(t *testing.T) {
	s := NewScrollInput(VariantCylinder().Scroll)
	s.Apply(400)
	if !approxEqual(s.Position(), 0.1, epsilon) {
		t.Errorf("Position = %v, want 0.1", s.Position())
	}
	if !approxEqual(s.State().Velocity, 0.2, epsilon) {
		t.Errorf("Velocity = %v, want 0.2", s.State().Velocity)
	}
}

func TestScrollTickDecayAndSmoothing(t *testing.T) {
	s := newTestScroll()
	s.Apply(-2000) // velocity 1
	s.Tick()
	st := s.State()
	if !approxEqual(st.Velocity, 0.9, epsilon) {
		t.Errorf("Velocity after 1 tick = %v, want 0.9", st.Velocity)
	}
	if !approxEqual(st.Target, 0.09, epsilon) {
		t.Errorf("Target after 1 tick = %v, want 0.09", st.Target)
	}
	s.Tick()
	st = s.State()
	if !approxEqual(st.Velocity, 0.81, epsilon) {
		t.Errorf("Velocity after 2 ticks = %v, want 0.81", st.Velocity)
	}
	if !approxEqual(st.Target, 0.09+(0.81-0.09)*0.1, epsilon) {
		t.Errorf("Target after 2 ticks = %v", st.Target)
	}
}

func TestScrollCylinderUnfiltered(t *testing.T) {
	s := NewScrollInput(VariantCylinder().Scroll)
	s.Apply(2000)
	s.Tick()
	// Target follows the decayed velocity with no low-pass lag.
	if st := s.State(); !approxEqual(st.Target, 0.9, epsilon) {
		t.Errorf("Target = %v, want 0.9", st.Target)
	}
}

func TestScrollDecayRatio(t *testing.T) {
	s := newTestScroll()
	s.Apply(-2000 * 5)
	for i := 0; i < 50; i++ {
		before := s.State().Velocity
		s.Tick()
		after := s.State().Velocity
		if !approxEqual(after/before, DefaultDecay, 1e-12) {
			t.Fatalf("tick %d: ratio = %v, want %v", i, after/before, DefaultDecay)
		}
	}
}

func TestScrollSmoothingDisabled(t *testing.T) {
	s := newTestScroll()
	s.Smoothing = 1
	s.Apply(-2000)
	s.Tick()
	st := s.State()
	if st.Target != st.Velocity {
		t.Errorf("Target = %v, want Velocity %v with smoothing 1", st.Target, st.Velocity)
	}
}

func TestScrollReachesRest(t *testing.T) {
	tests := []struct {
		name string
		v    float64
	}{
		{"small", 1e-3},
		{"one", 1},
		{"negative", -42},
		{"max float", math.MaxFloat64},
		{"min float", -math.MaxFloat64},
		{"smallest positive", math.SmallestNonzeroFloat64},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"-inf", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScroll()
			s.state.Velocity = tt.v
			s.state.Target = tt.v
			frames := 0
			for !s.AtRest() && frames < 10000 {
				s.Tick()
				frames++
			}
			if !s.AtRest() {
				t.Fatalf("not at rest after %d frames: %+v", frames, s.State())
			}
			st := s.State()
			if st.Velocity != 0 || st.Target != 0 {
				t.Errorf("state = %+v, want exact zeros", st)
			}
		})
	}
}

func TestScrollNonFiniteDelta(t *testing.T) {
	s := newTestScroll()
	s.Apply(math.Inf(1))
	if v := s.State().Velocity; v != 0 {
		t.Errorf("Velocity = %v, want 0 for infinite delta", v)
	}
}

func TestScrollPositionUnbounded(t *testing.T) {
	s := newTestScroll()
	for i := 0; i < 1000; i++ {
		s.Apply(-3000 * 100)
	}
	if !approxEqual(s.Position(), 100000, 1e-6) {
		t.Errorf("Position = %v, want 100000", s.Position())
	}
}

func TestScrollReset(t *testing.T) {
	s := newTestScroll()
	s.Apply(500)
	s.Tick()
	s.Reset()
	if s.State() != (ScrollState{}) {
		t.Errorf("State after Reset = %+v", s.State())
	}
}
