package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // pixels
	// flingWindowMS is how long the pointer may rest before release and
	// still throw the dragged node.
	flingWindowMS = 100
	// velocitySmoothing weights the newest sample of the release velocity.
	velocitySmoothing = 0.6
)

// --- Pointer state ---

// pointerState follows the single pointer the engine listens to: the left
// mouse button, or the first touch while no mouse press is in progress.
// Positions are window pixels.
type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	dragging  bool
	fromTouch bool
	touchID   ebiten.TouchID

	// Release velocity estimate, pixels per second.
	velX, velY float64
	lastMoveMS int64
}

// --- Input contract ---

// SingleTap selects the node of the active screen under pos, in the root
// referential, and runs its OnJustTap hook, or OnAction when it has none.
func (e *Engine) SingleTap(pos Vec2) {
	if e.activeScreen == nil {
		return
	}
	n := e.activeScreen.SearchNodeToSelect(pos, nil)
	if n == nil {
		return
	}
	switch {
	case n.OnJustTap != nil:
		n.OnJustTap()
	case n.OnAction != nil:
		n.OnAction()
	}
	e.emitEvent(InteractionEvent{Type: EventSingleTap, Pos: pos}, n)
}

// InitTouchDrag starts a drag at pos. The node under pos is grabbed if it
// has an OnGrab hook; otherwise its grandparent is, if it has one. The hook
// receives pos in the referential of the grabbed node's children.
func (e *Engine) InitTouchDrag(pos Vec2) {
	e.selected = nil
	if e.activeScreen == nil {
		return
	}
	n := e.activeScreen.SearchNodeToSelect(pos, nil)
	if n == nil {
		return
	}
	if n.OnGrab == nil {
		n = n.parent
		if n != nil {
			n = n.parent
		}
		if n == nil || n.OnGrab == nil {
			return
		}
	}
	e.selected = n
	rel := n.RelativePosOf(pos)
	n.OnGrab(rel)
	e.emitEvent(InteractionEvent{Type: EventTouchDragInit, Pos: pos, RelPos: rel}, n)
}

// TouchDrag moves the grabbed node's drag to pos.
func (e *Engine) TouchDrag(pos Vec2) {
	n := e.selected
	if n == nil {
		return
	}
	rel := n.RelativePosOf(pos)
	if n.OnDrag != nil {
		n.OnDrag(rel)
	}
	e.emitEvent(InteractionEvent{Type: EventTouchDrag, Pos: pos, RelPos: rel}, n)
}

// LetTouchDrag ends the drag. vel is the release velocity in root units per
// second, nil when the pointer was still; the grabbed node receives it in
// the referential of its children.
func (e *Engine) LetTouchDrag(vel *Vec2) {
	n := e.selected
	if n == nil {
		return
	}
	e.selected = nil
	ev := InteractionEvent{Type: EventTouchDragEnd}
	var rel *Vec2
	if vel != nil {
		v := n.RelativeDeltaOf(*vel)
		rel = &v
		ev.Velocity = v
		ev.HasVelocity = true
	}
	if n.OnLetGo != nil {
		n.OnLetGo(rel)
	}
	e.emitEvent(ev, n)
}

// Scroll sends a wheel step at pos to the nearest node with an OnScroll
// hook, from the node of the active screen under pos up to the screen.
func (e *Engine) Scroll(pos Vec2, up bool) {
	if e.activeScreen == nil {
		return
	}
	for n := e.activeScreen.SearchNodeToSelect(pos, nil); n != nil; n = n.parent {
		if n.OnScroll != nil {
			n.OnScroll(up)
			return
		}
		if n == e.activeScreen {
			return
		}
	}
}

// KeyDown sends Enter to the active screen's OnEnter, Escape to its
// OnEscape and any other key to its OnKeyDown.
func (e *Engine) KeyDown(key Key) {
	s := e.activeScreen
	if s == nil {
		return
	}
	switch {
	case key == KeyEnter && s.OnEnter != nil:
		s.OnEnter()
	case key == KeyEscape && s.OnEscape != nil:
		s.OnEscape()
	case key != KeyEnter && key != KeyEscape && s.OnKeyDown != nil:
		s.OnKeyDown(key)
	}
	e.emitEvent(InteractionEvent{Type: EventKeyDown, Key: key}, s)
}

// KeyUp sends the key to the active screen's OnKeyUp.
func (e *Engine) KeyUp(key Key) {
	s := e.activeScreen
	if s == nil {
		return
	}
	if s.OnKeyUp != nil {
		s.OnKeyUp(key)
	}
	e.emitEvent(InteractionEvent{Type: EventKeyUp, Key: key}, s)
}

// --- Input processing ---

// processInput is called from Engine.Update. Injected pointer events replace
// the real pointer for the frame they are consumed in.
func (e *Engine) processInput() {
	if !e.processInjectedInput() {
		x, y, pressed := e.pollPointer()
		e.processPointer(x, y, pressed)
		if _, dy := ebiten.Wheel(); dy != 0 {
			e.Scroll(e.viewport.PositionFrom(x, y, true), dy > 0)
		}
	}
	e.processKeys()
}

// pollPointer reads the pointer in window pixels.
func (e *Engine) pollPointer() (x, y float64, pressed bool) {
	ps := &e.pointer
	e.touchBuf = ebiten.AppendTouchIDs(e.touchBuf[:0])
	if ps.down && ps.fromTouch {
		for _, id := range e.touchBuf {
			if id == ps.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true
			}
		}
		return ps.lastX, ps.lastY, false
	}
	if !ps.down {
		ps.fromTouch = false
		if len(e.touchBuf) > 0 {
			ps.fromTouch = true
			ps.touchID = e.touchBuf[0]
			tx, ty := ebiten.TouchPosition(ps.touchID)
			return float64(tx), float64(ty), true
		}
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// processPointer runs the tap and drag state machine. A press released
// without leaving the dead zone is a tap; otherwise the press becomes a
// drag, thrown with the release velocity if the pointer was still moving.
func (e *Engine) processPointer(x, y float64, pressed bool) {
	ps := &e.pointer
	now := e.clock.ElapsedMS()

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.velX, ps.velY = 0, 0
		ps.lastMoveMS = now

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging {
			dx, dy := x-ps.startX, y-ps.startY
			if math.Sqrt(dx*dx+dy*dy) <= defaultDragDeadZone {
				return
			}
			ps.dragging = true
			e.InitTouchDrag(e.viewport.PositionFrom(ps.startX, ps.startY, true))
		}
		dtMS := now - ps.lastMoveMS
		if dtMS <= 0 {
			dtMS = int64(1000 / ebiten.DefaultTPS)
		}
		sec := float64(dtMS) / 1000
		vx, vy := (x-ps.lastX)/sec, (y-ps.lastY)/sec
		ps.velX = velocitySmoothing*vx + (1-velocitySmoothing)*ps.velX
		ps.velY = velocitySmoothing*vy + (1-velocitySmoothing)*ps.velY
		ps.lastX, ps.lastY = x, y
		ps.lastMoveMS = now
		e.TouchDrag(e.viewport.PositionFrom(x, y, true))

	case !pressed && ps.down:
		ps.down = false
		if !ps.dragging {
			e.SingleTap(e.viewport.PositionFrom(x, y, true))
			return
		}
		ps.dragging = false
		if now-ps.lastMoveMS > flingWindowMS {
			e.LetTouchDrag(nil)
			return
		}
		vel := e.viewport.DeltaFrom(ps.velX, ps.velY, true)
		e.LetTouchDrag(&vel)
	}
}

// processKeys forwards the keys pressed and released this frame.
func (e *Engine) processKeys() {
	for len(e.keyQueue) > 0 {
		k := e.keyQueue[0]
		e.keyQueue = e.keyQueue[1:]
		if k.down {
			e.KeyDown(k.key)
		} else {
			e.KeyUp(k.key)
		}
	}
	e.keysBuf = inpututil.AppendJustPressedKeys(e.keysBuf[:0])
	for _, k := range e.keysBuf {
		if key := keyFromEbiten(k); key != KeyUnknown {
			e.KeyDown(key)
		}
	}
	e.keysBuf = inpututil.AppendJustReleasedKeys(e.keysBuf[:0])
	for _, k := range e.keysBuf {
		if key := keyFromEbiten(k); key != KeyUnknown {
			e.KeyUp(key)
		}
	}
}

// keyFromEbiten maps an ebiten key to a Key. Letters map to their lower
// case rune, digits to theirs.
func keyFromEbiten(k ebiten.Key) Key {
	switch {
	case k == ebiten.KeyEnter || k == ebiten.KeyNumpadEnter:
		return KeyEnter
	case k == ebiten.KeyEscape:
		return KeyEscape
	case k == ebiten.KeyBackspace:
		return KeyBackspace
	case k == ebiten.KeySpace:
		return KeySpace
	case k == ebiten.KeyArrowUp:
		return KeyArrowUp
	case k == ebiten.KeyArrowDown:
		return KeyArrowDown
	case k == ebiten.KeyArrowLeft:
		return KeyArrowLeft
	case k == ebiten.KeyArrowRight:
		return KeyArrowRight
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return KeyForRune('a' + rune(k-ebiten.KeyA))
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return KeyForRune('0' + rune(k-ebiten.KeyDigit0))
	case k >= ebiten.KeyNumpad0 && k <= ebiten.KeyNumpad9:
		return KeyForRune('0' + rune(k-ebiten.KeyNumpad0))
	}
	return KeyUnknown
}

// --- ECS bridge ---

// emitEvent completes ev with the identity of n and forwards it to the
// event store, if any.
func (e *Engine) emitEvent(ev InteractionEvent, n *Node) {
	if e.store == nil {
		return
	}
	if n != nil {
		ev.NodeID = n.ID
		ev.NodeName = n.Name
	}
	e.store.EmitEvent(ev)
}
