package bramble

import (
	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	// DefaultCameraZ is the distance from the eye to the z=0 plane.
	DefaultCameraZ = 2.0
	// cameraZLambda is the decay rate of the camera distance.
	cameraZLambda = 5.0

	defaultFollowFrequency = 6.0
	defaultFollowDamping   = 1.0
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the eye the root is drawn from. It sits at (X, Y, Z) looking
// down the z axis at (X, Y, 0), y up. The projection makes a rectangle the
// size of the viewport's full frame fill the window at distance Z.
type Camera struct {
	// X and Y are the point of the root referential the camera centers on.
	X, Y float64
	// Z animates toward its target like any node dimension.
	Z SmoothDimension

	followTarget *Node
	followOffset Vec2
	followFreq   float64
	followDamp   float64
	followFPS    int
	springX      harmonica.Spring
	springY      harmonica.Spring
	velX, velY   float64

	scrollTween *scrollAnim
}

// newCamera returns a camera at the origin, DefaultCameraZ away.
func newCamera(clock *FrameClock) *Camera {
	return &Camera{Z: NewSmoothDimension(clock, DefaultCameraZ, cameraZLambda)}
}

// Follow makes the camera track the absolute position of node, shifted by
// offset, along a damped spring. frequency is the spring's angular
// frequency and damping its damping ratio (1 is critical); zero values pick
// the defaults.
func (c *Camera) Follow(node *Node, offset Vec2, frequency, damping float64) {
	if frequency <= 0 {
		frequency = defaultFollowFrequency
	}
	if damping <= 0 {
		damping = defaultFollowDamping
	}
	c.followTarget = node
	c.followOffset = offset
	c.followFreq = frequency
	c.followDamp = damping
	c.followFPS = 0
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
	c.velX, c.velY = 0, 0
}

// Following returns the tracked node, or nil.
func (c *Camera) Following() *Node { return c.followTarget }

// ScrollTo animates the camera to (x, y) over duration seconds. Following
// stops.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.Unfollow()
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo is in progress.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// update advances follow and scroll by dt seconds. Called once per tick.
func (c *Camera) update(dt float32, tps int) {
	if c.followTarget != nil {
		if tps <= 0 {
			tps = 60
		}
		if tps != c.followFPS {
			// harmonica bakes the time step into the spring.
			c.followFPS = tps
			c.springX = harmonica.NewSpring(harmonica.FPS(tps), c.followFreq, c.followDamp)
			c.springY = c.springX
		}
		target := c.followTarget.AbsPos().Add(c.followOffset)
		c.X, c.velX = c.springX.Update(c.X, c.velX, target.X)
		c.Y, c.velY = c.springY.Update(c.Y, c.velY, target.Y)
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
}

// View returns the look-at matrix of the camera, the model matrix of the
// root.
func (c *Camera) View() Mat4 {
	return LookAt(Vec3{c.X, c.Y, c.Z.Pos()}, Vec3{c.X, c.Y, 0}, Vec3{0, 1, 0})
}
