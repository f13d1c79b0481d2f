package marquee

import "testing"

func TestInjectScroll(t *testing.T) {
	in := newTestScroll()
	src := NewScrollSource(in, ScrollConfig{})
	src.InjectScroll(300)
	src.InjectScroll(-600)
	if src.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", src.Pending())
	}
	src.Poll()
	if src.Pending() != 1 || !approxEqual(in.Position(), -0.1, epsilon) {
		t.Errorf("after one poll: pending=%d position=%v", src.Pending(), in.Position())
	}
	src.Poll()
	if src.Pending() != 0 || !approxEqual(in.Position(), 0.1, epsilon) {
		t.Errorf("after two polls: pending=%d position=%v", src.Pending(), in.Position())
	}
}

func TestInjectFling(t *testing.T) {
	in := newTestScroll()
	src := NewScrollSource(in, ScrollConfig{})
	src.InjectFling(-3000, 4)
	if src.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", src.Pending())
	}
	for src.Pending() > 0 {
		src.Poll()
		if !approxEqual(in.State().Velocity, -750.0/-2000, epsilon) {
			t.Errorf("velocity during fling = %v", in.State().Velocity)
		}
	}
	if !approxEqual(in.Position(), 1, epsilon) {
		t.Errorf("Position = %v, want 1", in.Position())
	}

	src.InjectFling(100, 0)
	if src.Pending() != 1 {
		t.Errorf("InjectFling with 0 frames queued %d events, want 1", src.Pending())
	}
}

func TestNewScrollSourceDefaults(t *testing.T) {
	src := NewScrollSource(newTestScroll(), ScrollConfig{})
	if src.WheelScale != defaultWheelScale || src.DragScale != defaultDragScale {
		t.Errorf("scales = %v/%v", src.WheelScale, src.DragScale)
	}
}

