package bramble

// syntheticPointerEvent represents a single injected pointer event. Window
// pixel coordinates are used, as for the real pointer, so scripted taps
// land where a screenshot shows the node.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// syntheticKeyEvent is an injected key press or release.
type syntheticKeyEvent struct {
	key  Key
	down bool
}

// InjectPress queues a pointer press at the given window coordinates. The
// event is consumed on the next frame's processInput call.
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the pointer held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given window coordinates.
func (e *Engine) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: false})
}

// InjectTap queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (e *Engine) InjectTap(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), frames-2
// linearly interpolated moves, and release at (toX, toY). The sequence
// consumes frames frames, at least 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// InjectKey queues a press and a release of key, handled on the next frame.
func (e *Engine) InjectKey(key Key) {
	e.keyQueue = append(e.keyQueue, syntheticKeyEvent{key: key, down: true}, syntheticKeyEvent{key: key})
}

// processInjectedInput pops one pointer event from the inject queue and
// feeds it to processPointer. It reports whether an event was consumed, in
// which case the real pointer is skipped.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	e.processPointer(evt.screenX, evt.screenY, evt.pressed)
	return true
}
