package bramble

import "math"

// MakeSelectable marks the node hit-testable and lets the hit search reach
// it from the root.
func (n *Node) MakeSelectable() {
	n.AddFlags(FlagSelectable)
	n.AddRootFlag(FlagSelectableRoot)
}

// --- Button ---

// NewButton creates a square selectable node of side height running action
// when tapped. It draws nothing by itself; add surfaces under it.
func NewButton(parent *Node, name string, x, y, height, lambda float64, flags Flags, action func()) *Node {
	n := NewNode(parent, name, x, y, height, height, lambda, flags)
	n.MakeSelectable()
	n.OnAction = action
	return n
}

// --- SwitchButton ---

// switchNubX is the nub position of a switch at rest, in its referential.
const switchNubX = 0.375

// Switch colors of the back surface.
var (
	switchOnColor  = Color{0.2, 1, 0.5, 1}
	switchOffColor = Color{1, 0.3, 0.1, 1}
)

// SwitchButton is an on/off switch: a back surface and a nub that can be
// tapped or dragged from one side to the other.
type SwitchButton struct {
	Node *Node
	IsOn bool
	// Action runs every time the state flips, with the new state.
	Action func(isOn bool)

	back *Node
	nub  *Node
}

// NewSwitchButton creates a switch of the given height. backTex and nubTex
// are the back and the nub textures.
func NewSwitchButton(parent *Node, name string, isOn bool, backTex, nubTex *Texture, x, y, height, lambda float64, flags Flags, action func(bool)) *SwitchButton {
	n := NewNode(parent, name, x, y, height, height, lambda, flags)
	n.MakeSelectable()
	n.ScaleX.Snap(height)
	n.ScaleY.Snap(height)
	n.Height.Snap(1)
	n.Width.Snap(2)
	s := &SwitchButton{Node: n, IsOn: isOn, Action: action}
	s.back = NewTiledSurface(n, "back", backTex, 0, 0, 1, 0, 0, 0, 0)
	s.nub = NewTiledSurface(n, "nub", nubTex, s.restX(), 0, 1, 10, 0, 0, 0)
	s.setBackColor()

	n.OnJustTap = s.justTap
	n.OnGrab = func(Vec2) {}
	n.OnDrag = s.drag
	n.OnLetGo = s.letGo
	return s
}

// Fix sets the state without running the action.
func (s *SwitchButton) Fix(isOn bool) {
	s.IsOn = isOn
	s.nub.X.Snap(s.restX())
	s.setBackColor()
}

// justTap flips the state and runs the action.
func (s *SwitchButton) justTap() {
	s.IsOn = !s.IsOn
	s.setBackColor()
	s.letGo(nil)
	s.runAction()
}

// drag follows the pointer with the nub and flips the state when the
// pointer crosses the middle.
func (s *SwitchButton) drag(pos Vec2) {
	s.nub.X.SetPos(math.Min(math.Max(pos.X, -switchNubX), switchNubX))
	if on := pos.X > 0; on != s.IsOn {
		s.IsOn = on
		s.setBackColor()
		s.runAction()
	}
}

// letGo puts the nub back on the side of the state.
func (s *SwitchButton) letGo(*Vec2) {
	s.nub.X.SetPos(s.restX())
}

func (s *SwitchButton) restX() float64 {
	if s.IsOn {
		return switchNubX
	}
	return -switchNubX
}

func (s *SwitchButton) setBackColor() {
	if s.IsOn {
		s.back.Uniforms.Color = switchOnColor
	} else {
		s.back.Uniforms.Color = switchOffColor
	}
}

func (s *SwitchButton) runAction() {
	if s.Action != nil {
		s.Action(s.IsOn)
	}
}

// --- SliderButton ---

// SliderButton is a nub sliding along a bar. Value goes from 0 at the left
// end to 1 at the right end.
type SliderButton struct {
	Node  *Node
	Value float64
	// ActionAtLetGo delays the action to the release instead of every drag
	// step.
	ActionAtLetGo bool
	Action        func(value float64)

	slideWidth float64
	nub        *Node
}

// NewSliderButton creates a slider of the given height whose nub travels
// slideWidth. barTex is the bar texture, nubTex the nub's.
func NewSliderButton(parent *Node, name string, value float64, actionAtLetGo bool, barTex, nubTex *Texture, x, y, height, slideWidth, lambda float64, flags Flags, action func(float64)) *SliderButton {
	n := NewNode(parent, name, x, y, slideWidth+height, height, lambda, flags)
	n.MakeSelectable()
	s := &SliderButton{Node: n, Value: value, ActionAtLetGo: actionAtLetGo, Action: action, slideWidth: slideWidth}
	NewBar(n, "bar", FramingInside, 0.25*height, slideWidth, 0, barTex)
	s.nub = NewTiledSurface(n, "nub", nubTex, (value-0.5)*slideWidth, 0, height, 20, 0, 0, 0)

	n.OnGrab = func(Vec2) {}
	n.OnDrag = s.drag
	n.OnLetGo = s.letGo
	return s
}

func (s *SliderButton) drag(pos Vec2) {
	half := s.slideWidth / 2
	s.nub.X.SetPos(math.Min(math.Max(pos.X, -half), half))
	s.Value = s.nub.X.RealPos()/s.slideWidth + 0.5
	if !s.ActionAtLetGo && s.Action != nil {
		s.Action(s.Value)
	}
}

func (s *SliderButton) letGo(*Vec2) {
	if s.ActionAtLetGo && s.Action != nil {
		s.Action(s.Value)
	}
}
