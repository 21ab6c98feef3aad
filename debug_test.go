package bramble

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLog sends the package diagnostics to a buffer until the test ends.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logLevel})))
	t.Cleanup(func() {
		SetLogger(nil)
		setGlobalDebug(false)
	})
	return &buf
}

func TestWarnfNamesTheNode(t *testing.T) {
	buf := captureLog(t)
	_, root := newTestTree()
	empty := NewNode(root, "lonely", 0, 0, 1, 1, 0, 0)
	if n := empty.AlignTheChildren(0, 0, 1); n != 0 {
		t.Errorf("aligned %d", n)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "node=lonely") {
		t.Errorf("log = %q", out)
	}
}

func TestDebugModeLevels(t *testing.T) {
	buf := captureLog(t)
	logger.Debug("hidden")
	setGlobalDebug(true)
	logger.Debug("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Errorf("log = %q", out)
	}
}

func TestDebugTreeDepth(t *testing.T) {
	buf := captureLog(t)
	setGlobalDebug(true)
	_, root := newTestTree()
	n := root
	for i := 0; i < debugMaxTreeDepth; i++ {
		n = NewNode(n, "deep", 0, 0, 1, 1, 0, 0)
	}
	if !strings.Contains(buf.String(), "tree depth") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestEngineDebugMode(t *testing.T) {
	buf := captureLog(t)
	e, _ := newTestEngine(t)
	e.SetDebugMode(true)
	e.debugLog(debugStats{drawableCount: 3})
	if !strings.Contains(buf.String(), "drawables=3") {
		t.Errorf("log = %q", buf.String())
	}
}

// --- FPS ---

func TestShowFPS(t *testing.T) {
	e, clock := newTestEngine(t)
	e.ShowFPS()
	n := e.fps.node
	e.ShowFPS()
	if e.Root().ChildCount() != 1 {
		t.Error("ShowFPS is idempotent")
	}
	if !n.ContainsAFlag(FlagExposed | FlagShow) {
		t.Errorf("flags = %b", n.Flags())
	}
	assertNear(t, "top", n.Y.RealPos(), 1-fpsHeight/2)
	assertNear(t, "left", n.X.RealPos(), -4.0/3+n.Width.RealPos()/2)

	before := n.Texture.Name
	e.fps.update()
	if n.Texture.Name != before {
		t.Error("refreshed too early")
	}
	advance(clock, fpsRefreshMS)
	e.fps.update()
	if !strings.HasPrefix(n.Texture.Name, "FPS ") || n.Texture.Name == before {
		t.Errorf("text = %q", n.Texture.Name)
	}
	assertNear(t, "left after refresh", n.X.RealPos(), -4.0/3+n.Width.RealPos()/2)

	e.ChangeActiveScreen(NewScreen(e.Root(), "s", 0))
	e.ChangeActiveScreen(nil)
	if !n.ContainsAFlag(FlagShow) {
		t.Error("the counter survives screen changes")
	}
}
