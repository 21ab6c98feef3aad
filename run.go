package bramble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS overrides ebiten's ticks per second when above 0.
	TPS int
	// ShowFPS adds the FPS counter to the root.
	ShowFPS bool
	// FixedSize forbids resizing the window.
	FixedSize bool
	// SuspendWhenUnfocused pauses the clock and releases textures while the
	// window has no focus.
	SuspendWhenUnfocused bool
	// Debug turns the engine debug mode on.
	Debug bool
	// ClearColor, when not transparent, replaces the engine clear color.
	ClearColor Color
}

// Run opens a window and runs e as the game until the window closes.
//
// For full control, run the Engine yourself with ebiten.RunGame: it
// implements ebiten.Game.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if !cfg.FixedSize {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		e.ShowFPS()
	}
	if cfg.Debug {
		e.SetDebugMode(true)
	}
	if cfg.ClearColor.A > 0 {
		e.InitClearColor(cfg.ClearColor.R, cfg.ClearColor.G, cfg.ClearColor.B)
	}
	var game ebiten.Game = e
	if cfg.SuspendWhenUnfocused {
		game = &focusGame{Engine: e}
	}
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("bramble: run: %w", err)
	}
	return nil
}

// focusGame suspends its engine while the window is unfocused.
type focusGame struct {
	*Engine
	suspended bool
}

func (g *focusGame) Update() error {
	focused := ebiten.IsFocused()
	switch {
	case !focused && !g.suspended:
		g.suspended = true
		g.Suspend()
		logger.Debug("suspended")
	case focused && g.suspended:
		g.suspended = false
		g.Resume()
		logger.Debug("resumed")
	}
	if g.suspended {
		return nil
	}
	return g.Engine.Update()
}
