package bramble

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// logLevel controls the package logger. Info by default, Debug when an
// Engine is put in debug mode.
var logLevel = new(slog.LevelVar)

// logger receives every diagnostic of the package. Structural misuse and
// missing resources are reported here as warnings instead of panicking.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetLogger redirects package diagnostics. A nil logger restores the default
// stderr text handler.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}
	logger = l
}

// globalDebug mirrors the most recently set Engine debug flag so that node
// operations (which lack an Engine pointer) can check it cheaply.
var globalDebug bool

func setGlobalDebug(enabled bool) {
	globalDebug = enabled
	if enabled {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// warnf reports a non-fatal misuse. The node name, when known, is attached
// so the offending branch can be found.
func warnf(n *Node, format string, args ...any) {
	if n != nil {
		logger.Warn(fmt.Sprintf(format, args...), "node", n.Name, "id", n.ID)
		return
	}
	logger.Warn(fmt.Sprintf(format, args...))
}

// --- Debug checks ---

// debugStats holds per-frame timing and draw metrics.
// Only populated when the engine is in debug mode.
type debugStats struct {
	updateTime    time.Duration
	collectTime   time.Duration
	submitTime    time.Duration
	drawableCount int
	vertexCount   int
}

func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	logger.Debug("frame",
		"update", stats.updateTime,
		"collect", stats.collectTime,
		"submit", stats.submitTime,
		"drawables", stats.drawableCount,
		"vertices", stats.vertexCount)
}

// debugMaxTreeDepth is the depth above which a connect emits a warning.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		warnf(n, "tree depth %d exceeds %d", depth, debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the sibling count above which a connect warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(parent *Node) {
	count := parent.ChildCount()
	if count > debugMaxChildCount {
		warnf(parent, "node has %d children (threshold %d)", count, debugMaxChildCount)
	}
}
