package marquee

// InjectScroll queues a synthetic vertical delta, in the same units as
// scaled wheel input. The event is consumed on the next Poll.
func (s *ScrollSource) InjectScroll(deltaY float64) {
	s.injectQueue = append(s.injectQueue, deltaY)
}

// InjectFling queues a scroll gesture spread over frames polls: total is
// split evenly so the position moves by the same amount as one event of
// size total, while velocity stays at total/frames for the gesture.
func (s *ScrollSource) InjectFling(total float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := total / float64(frames)
	for i := 0; i < frames; i++ {
		s.InjectScroll(step)
	}
}

// Pending returns the number of queued synthetic events.
func (s *ScrollSource) Pending() int {
	return len(s.injectQueue)
}

// processInjected pops one injected delta and applies it. Returns true if
// an event was consumed (real input should be skipped).
func (s *ScrollSource) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	d := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.input.Apply(d)
	return true
}
