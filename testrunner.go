package bramble

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Screen string  `json:"screen,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, screen changes and screenshots
// across frames for automated visual testing. Attach it to an Engine with
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script. Actions are "tap", "drag",
// "key", "screen", "wait" and "screenshot".
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("bramble: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("bramble: parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the engine. Its step method runs
// from Engine.Update before input each frame.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps of the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Let pending injections drain first.
	if len(e.injectQueue) > 0 || len(e.keyQueue) > 0 {
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
	case "screenshot":
		e.Screenshot(st.Label)
	case "tap", "click":
		e.InjectTap(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		e.InjectKey(keyFromName(st.Key))
	case "screen":
		if s := e.ScreenNamed(st.Screen); s != nil {
			e.ChangeActiveScreen(s)
		} else {
			warnf(nil, "test script: no screen %q", st.Screen)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		warnf(nil, "test script: unknown action %q", st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 && len(e.keyQueue) == 0 {
		r.done = true
	}
}

// keyFromName maps a script key name to a Key. Single characters are
// printable keys.
func keyFromName(name string) Key {
	switch name {
	case "enter":
		return KeyEnter
	case "escape":
		return KeyEscape
	case "backspace":
		return KeyBackspace
	case "space":
		return KeySpace
	case "up":
		return KeyArrowUp
	case "down":
		return KeyArrowDown
	case "left":
		return KeyArrowLeft
	case "right":
		return KeyArrowRight
	}
	if r := []rune(name); len(r) == 1 {
		return KeyForRune(r[0])
	}
	return KeyUnknown
}

// ScreenNamed returns the screen under the root with the given name, or nil.
func (e *Engine) ScreenNamed(name string) *Node {
	for c := e.root.firstChild; c != nil; c = c.littleBro {
		if c.ContainsAFlag(FlagIsScreen) && c.Name == name {
			return c
		}
	}
	return nil
}
