package bramble

import "math"

// SquirrelScaleInit selects the scale a Squirrel starts with.
type SquirrelScaleInit uint8

const (
	// SquirrelOnes starts with a unit scale: V is the node's position and
	// the accumulated scale is the one of the node's referential.
	SquirrelOnes SquirrelScaleInit = iota
	// SquirrelScales starts with the node's own scales: the accumulated
	// scale is the one of the node's children referential.
	SquirrelScales
)

// Squirrel is a cursor over the tree. It walks without recursion and without
// touching the nodes, optionally carrying a position V and a scale (SX, SY).
//
// V is always expressed in the referential of Pos's parent. The P moves
// re-express V as the cursor changes level, the PS moves also accumulate the
// scale.
type Squirrel struct {
	Pos    *Node
	V      Vec2
	SX, SY float64

	start *Node
}

// NewSquirrel returns a cursor on n with V at n's position and a unit scale.
func NewSquirrel(n *Node) *Squirrel {
	return &Squirrel{
		Pos:   n,
		V:     Vec2{n.X.RealPos(), n.Y.RealPos()},
		SX:    1,
		SY:    1,
		start: n,
	}
}

// NewSquirrelWith returns a cursor on n with V at n's position and the scale
// chosen by init.
func NewSquirrelWith(n *Node, init SquirrelScaleInit) *Squirrel {
	sq := NewSquirrel(n)
	if init == SquirrelScales {
		sq.SX = n.ScaleX.RealPos()
		sq.SY = n.ScaleY.RealPos()
	}
	return sq
}

// NewSquirrelAt returns a cursor on n carrying v, a position in the
// referential of n's parent.
func NewSquirrelAt(n *Node, v Vec2, init SquirrelScaleInit) *Squirrel {
	sq := NewSquirrelWith(n, init)
	sq.V = v
	return sq
}

// --- Plain moves ---

// GoDown moves to the eldest child.
func (sq *Squirrel) GoDown() bool {
	if sq.Pos.firstChild == nil {
		return false
	}
	sq.Pos = sq.Pos.firstChild
	return true
}

// GoRight moves to the younger sibling.
func (sq *Squirrel) GoRight() bool {
	if sq.Pos.littleBro == nil {
		return false
	}
	sq.Pos = sq.Pos.littleBro
	return true
}

// GoLeft moves to the elder sibling.
func (sq *Squirrel) GoLeft() bool {
	if sq.Pos.bigBro == nil {
		return false
	}
	sq.Pos = sq.Pos.bigBro
	return true
}

// GoUp moves to the parent.
func (sq *Squirrel) GoUp() bool {
	if sq.Pos.parent == nil {
		return false
	}
	sq.Pos = sq.Pos.parent
	return true
}

// GoDownWithout moves to the eldest child carrying none of flags.
func (sq *Squirrel) GoDownWithout(flags Flags) bool {
	c := sq.Pos.firstChild
	for c != nil && c.ContainsAFlag(flags) {
		c = c.littleBro
	}
	if c == nil {
		return false
	}
	sq.Pos = c
	return true
}

// GoRightWithout moves to the next younger sibling carrying none of flags.
func (sq *Squirrel) GoRightWithout(flags Flags) bool {
	b := sq.Pos.littleBro
	for b != nil && b.ContainsAFlag(flags) {
		b = b.littleBro
	}
	if b == nil {
		return false
	}
	sq.Pos = b
	return true
}

// GoDownForced moves to the eldest child, creating it as a copy of ref when
// there is none.
func (sq *Squirrel) GoDownForced(ref *Node) {
	if sq.Pos.firstChild == nil {
		NewNodeCopy(sq.Pos, ref, true, false)
	}
	sq.Pos = sq.Pos.firstChild
}

// GoRightForced moves to the younger sibling, creating it as a copy of ref
// when there is none.
func (sq *Squirrel) GoRightForced(ref *Node) {
	if sq.Pos.littleBro == nil {
		NewNodeCopy(sq.Pos, ref, false, false)
	}
	sq.Pos = sq.Pos.littleBro
}

// --- Moves carrying a position ---

// GoDownP moves to the eldest child and re-expresses V in its referential.
func (sq *Squirrel) GoDownP() bool {
	p := sq.Pos
	if p.firstChild == nil {
		return false
	}
	sq.V.X = (sq.V.X - p.X.RealPos()) / p.ScaleX.RealPos()
	sq.V.Y = (sq.V.Y - p.Y.RealPos()) / p.ScaleY.RealPos()
	sq.Pos = p.firstChild
	return true
}

// GoUpP moves to the parent and re-expresses V one level up.
func (sq *Squirrel) GoUpP() bool {
	p := sq.Pos.parent
	if p == nil {
		return false
	}
	sq.V.X = sq.V.X*p.ScaleX.RealPos() + p.X.RealPos()
	sq.V.Y = sq.V.Y*p.ScaleY.RealPos() + p.Y.RealPos()
	sq.Pos = p
	return true
}

// GoUpPS is GoUpP that also accumulates the parent's scale.
func (sq *Squirrel) GoUpPS() bool {
	p := sq.Pos.parent
	if p == nil {
		return false
	}
	sq.V.X = sq.V.X*p.ScaleX.RealPos() + p.X.RealPos()
	sq.V.Y = sq.V.Y*p.ScaleY.RealPos() + p.Y.RealPos()
	sq.SX *= p.ScaleX.RealPos()
	sq.SY *= p.ScaleY.RealPos()
	sq.Pos = p
	return true
}

// IsIn reports whether V falls inside the room Pos takes in its parent.
func (sq *Squirrel) IsIn() bool {
	return math.Abs(sq.V.X-sq.Pos.X.RealPos()) <= sq.Pos.DeltaX() &&
		math.Abs(sq.V.Y-sq.Pos.Y.RealPos()) <= sq.Pos.DeltaY()
}

// RelPosOf converts absPos into the referential carried by the cursor, V
// being its origin and (SX, SY) its scale.
func (sq *Squirrel) RelPosOf(absPos Vec2) Vec2 {
	return Vec2{(absPos.X - sq.V.X) / sq.SX, (absPos.Y - sq.V.Y) / sq.SY}
}

// RelDeltaOf converts a length into the referential carried by the cursor.
func (sq *Squirrel) RelDeltaOf(absDelta Vec2) Vec2 {
	return Vec2{absDelta.X / sq.SX, absDelta.Y / sq.SY}
}

// --- Display walk ---

// GoToNextToDisplay moves to the next node the renderer must visit, in
// pre-order, never leaving the branch the cursor started on. Branches are
// entered when shown or still holding fading content; a branch kept only by
// FlagBranchToDisplay loses the flag once nothing under it is active.
func (sq *Squirrel) GoToNextToDisplay() bool {
	if sq.Pos.isDisplayActive() && sq.goDownDisplayed() {
		return true
	}
	for {
		if sq.Pos == sq.start {
			return false
		}
		if sq.goRightDisplayed() {
			return true
		}
		if !sq.GoUp() {
			return false
		}
	}
}

func (sq *Squirrel) goDownDisplayed() bool {
	p := sq.Pos
	if p.firstChild == nil {
		return false
	}
	for c := p.firstChild; c != nil; c = c.littleBro {
		if c.isDisplayActive() {
			sq.Pos = c
			return true
		}
	}
	if !p.ContainsAFlag(FlagShow) {
		p.RemoveFlags(FlagBranchToDisplay)
	}
	return false
}

func (sq *Squirrel) goRightDisplayed() bool {
	for b := sq.Pos.littleBro; b != nil; b = b.littleBro {
		if b.isDisplayActive() {
			sq.Pos = b
			return true
		}
	}
	return false
}
