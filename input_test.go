package bramble

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// eventRecorder is an EventStore keeping every event.
type eventRecorder struct {
	events []InteractionEvent
}

func (r *eventRecorder) EmitEvent(ev InteractionEvent) { r.events = append(r.events, ev) }

// inputScene is an active screen with a button, a draggable pad and a list
// whose items hand drags to the list.
type inputScene struct {
	e      *Engine
	clock  *FrameClock
	screen *Node
	button *Node
	pad    *Node
	list   *Node
	item   *Node
	log    []string
	grab   Vec2
	letGo  *Vec2
	drags  int
}

func newInputScene(t *testing.T) *inputScene {
	t.Helper()
	e, clock := newTestEngine(t)
	sc := &inputScene{e: e, clock: clock}
	sc.screen = NewScreen(e.Root(), "s", FlagDontAlignScreenElements)
	sc.button = NewNode(sc.screen, "button", -0.8, 0, 0.4, 0.4, 0, FlagSelectable)
	sc.pad = NewNode(sc.screen, "pad", -0.8, 0.7, 0.4, 0.4, 0, FlagSelectable)
	sc.list = NewNode(sc.screen, "list", 0.6, 0, 1, 1, 0, FlagSelectableRoot)
	row := NewNode(sc.list, "row", 0, 0, 1, 0.4, 0, FlagSelectableRoot)
	sc.item = NewNode(row, "item", 0, 0, 0.8, 0.3, 0, FlagSelectable)

	sc.button.OnAction = func() { sc.log = append(sc.log, "action") }
	sc.pad.OnGrab = func(p Vec2) {
		sc.grab = p
		sc.log = append(sc.log, "grab pad")
	}
	sc.pad.OnDrag = func(Vec2) { sc.drags++ }
	sc.pad.OnLetGo = func(v *Vec2) {
		sc.letGo = v
		sc.log = append(sc.log, "let go pad")
	}
	sc.list.OnGrab = func(Vec2) { sc.log = append(sc.log, "grab list") }
	e.ChangeActiveScreen(sc.screen)
	return sc
}

// press, move and release drive the pointer state machine in pixels.
func (sc *inputScene) press(x, y float64) { sc.e.processPointer(x, y, true) }
func (sc *inputScene) move(x, y float64) { sc.e.processPointer(x, y, true) }
func (sc *inputScene) release(x, y float64) { sc.e.processPointer(x, y, false) }

func (sc *inputScene) at(n *Node) (float64, float64) {
	return pixelOf(sc.e, n.AbsPos())
}

// --- Taps ---

func TestSingleTap(t *testing.T) {
	sc := newInputScene(t)
	x, y := sc.at(sc.button)
	sc.press(x, y)
	sc.release(x, y)
	if len(sc.log) != 1 || sc.log[0] != "action" {
		t.Errorf("log = %v", sc.log)
	}
}

func TestJustTapTakesPrecedence(t *testing.T) {
	sc := newInputScene(t)
	sc.button.OnJustTap = func() { sc.log = append(sc.log, "just tap") }
	sc.e.SingleTap(sc.button.AbsPos())
	if len(sc.log) != 1 || sc.log[0] != "just tap" {
		t.Errorf("log = %v", sc.log)
	}
}

func TestTapInsideDeadZone(t *testing.T) {
	sc := newInputScene(t)
	x, y := sc.at(sc.button)
	sc.press(x, y)
	advance(sc.clock, 16)
	sc.move(x+3, y)
	advance(sc.clock, 16)
	sc.release(x+3, y)
	if len(sc.log) != 1 || sc.log[0] != "action" {
		t.Errorf("log = %v", sc.log)
	}
}

func TestTapOnNothing(t *testing.T) {
	sc := newInputScene(t)
	sc.e.SingleTap(Vec2{X: 0, Y: -0.9})
	if len(sc.log) != 0 {
		t.Errorf("log = %v", sc.log)
	}
	sc.e.ChangeActiveScreen(nil)
	sc.e.SingleTap(sc.button.AbsPos())
	if len(sc.log) != 0 {
		t.Error("no screen, no tap")
	}
}

// --- Drags ---

func TestDragWithFling(t *testing.T) {
	sc := newInputScene(t)
	x, y := sc.at(sc.pad)
	sc.press(x, y)
	advance(sc.clock, 16)
	sc.move(x+10, y)
	sc.release(x+10, y)

	if want := []string{"grab pad", "let go pad"}; len(sc.log) != 2 || sc.log[0] != want[0] || sc.log[1] != want[1] {
		t.Fatalf("log = %v, want %v", sc.log, want)
	}
	assertNear(t, "grab X", sc.grab.X, 0)
	assertNear(t, "grab Y", sc.grab.Y, 0)
	if sc.drags != 1 {
		t.Errorf("drags = %d", sc.drags)
	}
	if sc.letGo == nil {
		t.Fatal("release while moving should throw")
	}
	want := sc.e.viewport.DeltaFrom(375, 0, true)
	assertNear(t, "vel X", sc.letGo.X, want.X)
	assertNear(t, "vel Y", sc.letGo.Y, 0)
	if sc.e.SelectedNode() != nil {
		t.Error("release clears the selection")
	}
}

func TestDragStillRelease(t *testing.T) {
	sc := newInputScene(t)
	x, y := sc.at(sc.pad)
	sc.press(x, y)
	advance(sc.clock, 16)
	sc.move(x+10, y)
	advance(sc.clock, 200)
	sc.release(x+10, y)
	if sc.letGo != nil {
		t.Errorf("vel = %v, want nil", *sc.letGo)
	}
	if len(sc.log) != 2 {
		t.Errorf("log = %v", sc.log)
	}
}

func TestDragGrabsGrandparent(t *testing.T) {
	sc := newInputScene(t)
	sc.e.InitTouchDrag(sc.item.AbsPos())
	if sc.e.SelectedNode() != sc.list {
		t.Fatalf("selected = %v", sc.e.SelectedNode())
	}
	if len(sc.log) != 1 || sc.log[0] != "grab list" {
		t.Errorf("log = %v", sc.log)
	}
}

func TestDragWithoutGrabber(t *testing.T) {
	sc := newInputScene(t)
	sc.e.InitTouchDrag(sc.button.AbsPos())
	if sc.e.SelectedNode() != nil {
		t.Error("button has no grab hook and no grandparent with one")
	}
	sc.e.TouchDrag(Vec2{})
	sc.e.LetTouchDrag(nil)
	if len(sc.log) != 0 {
		t.Errorf("log = %v", sc.log)
	}
}

// --- Scroll ---

func TestScroll(t *testing.T) {
	sc := newInputScene(t)
	var got []string
	sc.list.OnScroll = func(up bool) {
		if up {
			got = append(got, "list up")
		} else {
			got = append(got, "list down")
		}
	}
	sc.screen.OnScroll = func(bool) { got = append(got, "screen") }
	sc.e.Scroll(sc.item.AbsPos(), true)
	sc.e.Scroll(sc.item.AbsPos(), false)
	sc.e.Scroll(sc.button.AbsPos(), true)
	want := []string{"list up", "list down", "screen"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

// --- Keys ---

func TestKeyDispatch(t *testing.T) {
	sc := newInputScene(t)
	var got []string
	sc.screen.OnEnter = func() { got = append(got, "enter") }
	sc.screen.OnEscape = func() { got = append(got, "escape") }
	sc.screen.OnKeyDown = func(k Key) {
		r, _ := k.Rune()
		got = append(got, "down "+string(r))
	}
	sc.screen.OnKeyUp = func(k Key) {
		r, _ := k.Rune()
		got = append(got, "up "+string(r))
	}
	sc.e.KeyDown(KeyEnter)
	sc.e.KeyDown(KeyEscape)
	sc.e.KeyDown(KeyForRune('q'))
	sc.e.KeyUp(KeyForRune('q'))
	want := []string{"enter", "escape", "down q", "up q"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestEnterWithoutHookIsNotAKeyDown(t *testing.T) {
	sc := newInputScene(t)
	downs := 0
	sc.screen.OnKeyDown = func(Key) { downs++ }
	sc.e.KeyDown(KeyEnter)
	sc.e.KeyDown(KeyEscape)
	if downs != 0 {
		t.Errorf("OnKeyDown ran %d times", downs)
	}
}

func TestKeyFromEbiten(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		want Key
	}{
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyNumpadEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeyBackspace, KeyBackspace},
		{ebiten.KeySpace, KeySpace},
		{ebiten.KeyArrowLeft, KeyArrowLeft},
		{ebiten.KeyA, KeyForRune('a')},
		{ebiten.KeyZ, KeyForRune('z')},
		{ebiten.KeyDigit7, KeyForRune('7')},
		{ebiten.KeyNumpad3, KeyForRune('3')},
		{ebiten.KeyF1, KeyUnknown},
	}
	for _, tt := range tests {
		if got := keyFromEbiten(tt.in); got != tt.want {
			t.Errorf("keyFromEbiten(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// --- Events ---

func TestEventsReachStore(t *testing.T) {
	sc := newInputScene(t)
	rec := &eventRecorder{}
	sc.e.SetEventStore(rec)

	sc.e.SingleTap(sc.button.AbsPos())
	x, y := sc.at(sc.pad)
	sc.press(x, y)
	advance(sc.clock, 16)
	sc.move(x+10, y)
	sc.release(x+10, y)
	sc.e.KeyDown(KeyForRune('a'))

	want := []struct {
		typ  EventType
		node *Node
	}{
		{EventSingleTap, sc.button},
		{EventTouchDragInit, sc.pad},
		{EventTouchDrag, sc.pad},
		{EventTouchDragEnd, sc.pad},
		{EventKeyDown, sc.screen},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("%d events, want %d", len(rec.events), len(want))
	}
	for i, w := range want {
		ev := rec.events[i]
		if ev.Type != w.typ || ev.NodeID != w.node.ID || ev.NodeName != w.node.Name {
			t.Errorf("event %d = %+v, want type %d on %s", i, ev, w.typ, w.node.Name)
		}
	}
	if !rec.events[3].HasVelocity {
		t.Error("drag end should carry the velocity")
	}
}
