package bramble

import "math"

// screenFlags are the flags every screen carries on top of the caller's.
const screenFlags = FlagIsScreen | FlagSelectableRoot | FlagReshapableRoot

// NewScreen creates a screen under root. Screens are placed right after the
// first one: adding 1, 2, 3, 4 gives the order 1, 4, 3, 2, so the first two
// screens are the back and the front and later ones go in between.
//
// A screen lays its children out on open and reshape: in a row in landscape,
// in a column in portrait, then scales itself to fit the root. With
// FlagDontAlignScreenElements it takes the size of the root instead.
func NewScreen(root *Node, name string, flags Flags) *Node {
	n := &Node{Name: name, Type: NodeTypeBranch}
	nodeDefaults(n, root.clock, 0, 0, 4, 4, 0)
	n.flags = flags | screenFlags
	if elder := root.firstChild; elder != nil && elder.ContainsAFlag(FlagIsScreen) {
		n.SimpleMoveToBro(elder, false)
	} else {
		n.SimpleMoveToParent(root, false)
	}
	n.OnOpen = func() { n.AlignScreenElements(true) }
	n.OnReshape = func() bool {
		n.AlignScreenElements(false)
		return true
	}
	return n
}

// AlignScreenElements lays the screen out in its parent. Opening snaps,
// reshaping animates.
func (n *Node) AlignScreenElements(isOpening bool) {
	p := n.parent
	if p == nil {
		warnf(n, "align screen: no parent")
		return
	}
	if n.ContainsAFlag(FlagDontAlignScreenElements) {
		n.ScaleX.Set(1, isOpening, true)
		n.ScaleY.Set(1, isOpening, true)
		n.Width.Set(p.Width.RealPos(), isOpening, true)
		n.Height.Set(p.Height.RealPos(), isOpening, true)
		return
	}

	ratio := p.Width.RealPos() / p.Height.RealPos()
	opts := AlignRespectRatio | AlignSetSecondaryToDefPos
	if ratio < 1 {
		opts |= AlignVertically
	}
	if isOpening {
		opts |= AlignFixPos
	}
	n.AlignTheChildren(opts, ratio, 1)

	scale := math.Min(p.Width.RealPos()/n.Width.RealPos(), p.Height.RealPos()/n.Height.RealPos())
	n.ScaleX.Set(scale, isOpening, true)
	n.ScaleY.Set(scale, isOpening, true)
}
