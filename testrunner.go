package engine2000

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`

	key Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected key events and screenshots across frames
// for automated play-testing. Attach to an Engine via SetTestRunner.
//
//	{"steps": [
//	  {"action": "tap", "key": "space", "frames": 2},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "after-shot"},
//	  {"action": "quit"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("engine2000: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			k, ok := ParseKey(st.Key)
			if !ok {
				return nil, fmt.Errorf("engine2000: parse test script: step %d: unknown key %q", i, st.Key)
			}
			st.key = k
		case "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("engine2000: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Engine.Frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	in := e.input
	// Wait for pending injections to drain before advancing.
	if in.PendingInjections() > 0 {
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
	case "press":
		in.InjectKeyDown(st.key)
	case "release":
		in.InjectKeyUp(st.key)
	case "tap":
		in.InjectKeyTap(st.key, st.Frames)
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		e.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.PendingInjections() == 0 {
		r.done = true
	}
}
