package bramble

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTransitionDuration is the time a surface takes to fade fully in or
// out.
const DefaultTransitionDuration = 250 * time.Millisecond

// Transition is the show/hide alpha of a surface. The renderer calls
// SetAndGet every frame with the node's show flag; when the flag flips, a
// gween tween starts from the current alpha toward 0 or 1.
//
// There is no global animation manager: the transition reads the clock it
// was built with.
type Transition struct {
	Duration time.Duration
	FadeIn   ease.TweenFunc
	FadeOut  ease.TweenFunc

	clock *FrameClock
	tween *gween.Tween
	start int64
	shown bool
	alpha float64
}

// NewTransition returns a hidden transition reading clock.
func NewTransition(clock *FrameClock) Transition {
	return Transition{
		Duration: DefaultTransitionDuration,
		FadeIn:   ease.OutQuad,
		FadeOut:  ease.InQuad,
		clock:    clock,
	}
}

// SetAndGet retargets the transition to show and returns the current alpha
// in [0, 1].
func (t *Transition) SetAndGet(show bool) float64 {
	if show != t.shown {
		t.shown = show
		t.begin()
	}
	if t.tween == nil {
		return t.alpha
	}
	elapsed := float32(t.now()-t.start) / 1000
	v, done := t.tween.Set(elapsed)
	t.alpha = clamp01(float64(v))
	if done {
		t.tween = nil
	}
	return t.alpha
}

// Alpha returns the last computed alpha without advancing anything.
func (t *Transition) Alpha() float64 { return t.alpha }

// Active reports whether the surface still has something to display: it is
// shown, or it is fading out.
func (t *Transition) Active() bool {
	return t.shown || t.alpha > 0
}

// Snap ends any fade and jumps to fully shown or hidden.
func (t *Transition) Snap(show bool) {
	t.shown = show
	t.tween = nil
	if show {
		t.alpha = 1
	} else {
		t.alpha = 0
	}
}

func (t *Transition) begin() {
	target := float32(0)
	fn := t.FadeOut
	if t.shown {
		target = 1
		fn = t.FadeIn
	}
	if fn == nil {
		fn = ease.Linear
	}
	// A fade interrupted halfway only needs half the time to finish.
	dist := float64(target) - t.alpha
	if dist < 0 {
		dist = -dist
	}
	dur := float32(t.Duration.Seconds() * dist)
	if dur <= 0 {
		t.tween = nil
		t.alpha = float64(target)
		return
	}
	t.tween = gween.New(float32(t.alpha), target, dur, fn)
	t.start = t.now()
}

func (t *Transition) now() int64 {
	if t.clock == nil {
		return 0
	}
	return t.clock.ElapsedMS()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
