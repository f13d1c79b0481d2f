package marquee

import (
	"encoding/json"
	"fmt"
)

// testStep is one action of a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted sequence of scroll gestures, loop control and
// screenshots, one step per frame. Actions:
//
//	scroll      inject deltaY, spread over frames when frames > 1
//	wait        idle for frames frames
//	stop, play  control the render loop
//	screenshot  capture the next presented frame under label
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("marquee: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("marquee: parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "wait", "stop", "play", "screenshot":
		default:
			return nil, fmt.Errorf("marquee: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run and injected input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *TestRunner) step(s *Sketch) {
	if r.done {
		return
	}
	if s.source.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		if st.Frames > 1 {
			s.source.InjectFling(st.DeltaY, st.Frames)
		} else {
			s.source.InjectScroll(st.DeltaY)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "stop":
		s.Stop()
	case "play":
		s.Play()
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && s.source.Pending() == 0 {
		r.done = true
	}
}
