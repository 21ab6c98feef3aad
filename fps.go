package bramble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	fpsRefreshMS = 500
	fpsHeight    = 0.08
)

// fpsCounter is a string surface in the top left corner of the usable frame
// showing the measured FPS and TPS.
type fpsCounter struct {
	node   *Node
	chrono *Chrono
}

// ShowFPS adds the FPS counter to the root. It stays shown across screen
// changes and is refreshed twice a second.
func (e *Engine) ShowFPS() {
	if e.fps != nil {
		return
	}
	tex := e.textures.NewMutableString("FPS")
	n := NewStringSurface(e.root, "fps", tex, 0, 0, fpsHeight, 0, FlagShow|FlagExposed, 0)
	n.Uniforms.Color = ColorWhite
	n.OnReshape = func() bool {
		n.X.Snap(-e.root.Width.RealPos()/2 + n.Width.RealPos()/2)
		n.Y.Snap(e.root.Height.RealPos()/2 - fpsHeight/2)
		return false
	}
	n.OnReshape()
	chrono := NewChrono(e.clock)
	chrono.Start()
	e.fps = &fpsCounter{node: n, chrono: chrono}
}

// update refreshes the counter text when due.
func (f *fpsCounter) update() {
	if f.chrono.ElapsedMS() < fpsRefreshMS {
		return
	}
	f.chrono.Start()
	f.node.UpdateAsMutableString(fmt.Sprintf("FPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	f.node.UpdateRatio(true)
	f.node.OnReshape()
}
