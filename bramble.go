package bramble

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// rgba returns c premultiplied, as ebiten fills expect.
func (c Color) rgba() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default tint of string surfaces.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D vector used for positions, deltas and velocities in a node's
// referential.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Vec3 is a 3D vector used by the camera.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v×o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Dot(v)
	if l == 0 {
		return v
	}
	inv := 1 / math.Sqrt(l)
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeBranch  NodeType = iota // positions its children, draws nothing
	NodeTypeSurface                 // textured quad (plain, string, tiled)
	NodeTypeFrame                   // 9-slice frame around its parent or sibling
	NodeTypeBar                     // 3-slice horizontal bar
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeBranch:
		return "branch"
	case NodeTypeSurface:
		return "surface"
	case NodeTypeFrame:
		return "frame"
	case NodeTypeBar:
		return "bar"
	default:
		return "unknown"
	}
}

// Key identifies a keyboard key delivered through the input contract.
type Key int

const (
	KeyUnknown Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeySpace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	// KeyRuneBase plus a rune is a printable key.
	KeyRuneBase Key = 1 << 16
)

// KeyForRune returns the printable key for r.
func KeyForRune(r rune) Key { return KeyRuneBase + Key(r) }

// Rune returns the printable rune of k and whether k is printable.
func (k Key) Rune() (rune, bool) {
	if k < KeyRuneBase {
		return 0, false
	}
	return rune(k - KeyRuneBase), true
}

// EventType identifies a kind of input event forwarded to an EventStore.
type EventType uint8

const (
	EventSingleTap     EventType = iota // a tap resolved to a node
	EventTouchDragInit                  // a drag grabbed a node
	EventTouchDrag                      // the grabbed node was dragged
	EventTouchDragEnd                   // the grabbed node was let go
	EventKeyDown                        // a key was pressed
	EventKeyUp                          // a key was released
)

func (t EventType) String() string {
	switch t {
	case EventSingleTap:
		return "tap"
	case EventTouchDragInit:
		return "drag-init"
	case EventTouchDrag:
		return "drag"
	case EventTouchDragEnd:
		return "drag-end"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	default:
		return "unknown"
	}
}

// InteractionEvent is the inert record of an input event after it has been
// resolved against the tree. It holds the node ID only, never the node.
type InteractionEvent struct {
	Type        EventType
	NodeID      uint32
	NodeName    string
	Pos         Vec2 // position in the root referential
	RelPos      Vec2 // position in the target's children referential
	Velocity    Vec2 // valid for EventTouchDragEnd when HasVelocity
	HasVelocity bool
	Key         Key // valid for key events
}

// EventStore is the interface for optional ECS integration.
// When set on an Engine, resolved input events are forwarded to it.
type EventStore interface {
	EmitEvent(event InteractionEvent)
}
