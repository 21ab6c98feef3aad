package bramble

import "math"

// AlignOptions control AlignTheChildren. In a horizontal alignment the
// primary coordinate of the children is X and the secondary is Y; vertically
// it is the reverse.
type AlignOptions uint8

const (
	AlignVertically    AlignOptions = 1 << iota // stack top to bottom instead of left to right
	AlignDontUpdateSizes                        // leave the parent's width and height alone
	AlignRespectRatio                           // pad so the row or column reaches the ratio
	AlignFixPos                                 // snap instead of animating
	// AlignSetAsDefPos makes the aligned values the defaults of the
	// children's primary coordinate and of the parent's size.
	AlignSetAsDefPos
	// AlignSetSecondaryToDefPos puts the secondary coordinate back to its
	// default instead of zero.
	AlignSetSecondaryToDefPos
)

// alignSkip are the flags that keep a child out of an alignment.
const alignSkip = FlagHidden | FlagNotToAlign

// AlignTheChildren lays the children out in a row (or a column with
// AlignVertically) centered on zero, and sizes the node to fit them. Each
// child takes 2*delta*spacingRef along the primary axis. With
// AlignRespectRatio the extra room needed to reach width/height == ratio is
// spread between the children. Hidden and FlagNotToAlign children are
// skipped. It returns the number of children placed.
func (n *Node) AlignTheChildren(opts AlignOptions, ratio, spacingRef float64) int {
	sq := NewSquirrel(n)
	if !sq.GoDownWithout(alignSkip) {
		warnf(n, "align: no child to align")
		return 0
	}
	fix := opts&AlignFixPos != 0
	horizontal := opts&AlignVertically == 0
	setAsDef := opts&AlignSetAsDefPos != 0
	secondaryToDef := opts&AlignSetSecondaryToDefPos != 0

	// Sum the extents.
	var w, h float64
	count := 0
	for {
		c := sq.Pos
		count++
		if horizontal {
			w += c.DeltaX() * 2 * spacingRef
			h = math.Max(h, c.DeltaY()*2)
		} else {
			h += c.DeltaY() * 2 * spacingRef
			w = math.Max(w, c.DeltaX()*2)
		}
		if !sq.GoRightWithout(alignSkip) {
			break
		}
	}

	// Pad for the ratio.
	var spacing float64
	if opts&AlignRespectRatio != 0 && h > 0 && ratio > 0 {
		if horizontal {
			if w/h < ratio {
				spacing = (ratio*h - w) / float64(count)
				w = ratio * h
			}
		} else if w/h > ratio {
			spacing = (w/ratio - h) / float64(count)
			h = w / ratio
		}
	}

	if opts&AlignDontUpdateSizes == 0 {
		n.Width.Set(w, fix, setAsDef)
		n.Height.Set(h, fix, setAsDef)
	}

	// Place.
	sq = NewSquirrel(n)
	sq.GoDownWithout(alignSkip)
	if horizontal {
		x := -w / 2
		for {
			c := sq.Pos
			x += c.DeltaX()*spacingRef + spacing/2
			c.X.Set(x, fix, setAsDef)
			if secondaryToDef {
				c.Y.SetRelToDef(0, fix)
			} else {
				c.Y.Set(0, fix, false)
			}
			x += c.DeltaX()*spacingRef + spacing/2
			if !sq.GoRightWithout(alignSkip) {
				return count
			}
		}
	}
	y := h / 2
	for {
		c := sq.Pos
		y -= c.DeltaY()*spacingRef + spacing/2
		c.Y.Set(y, fix, setAsDef)
		if secondaryToDef {
			c.X.SetRelToDef(0, fix)
		} else {
			c.X.Set(0, fix, false)
		}
		y -= c.DeltaY()*spacingRef + spacing/2
		if !sq.GoRightWithout(alignSkip) {
			return count
		}
	}
}

// AdjustWidthAndHeightFromChildren sizes the node to the smallest box,
// centered on its origin, holding every child that is not hidden.
func (n *Node) AdjustWidthAndHeightFromChildren() {
	sq := NewSquirrel(n)
	if !sq.GoDownWithout(FlagHidden) {
		return
	}
	var w, h float64
	for {
		c := sq.Pos
		h = math.Max(h, (c.DeltaY()+math.Abs(c.Y.RealPos()))*2)
		w = math.Max(w, (c.DeltaX()+math.Abs(c.X.RealPos()))*2)
		if !sq.GoRightWithout(FlagHidden) {
			break
		}
	}
	n.Width.Snap(w)
	n.Height.Snap(h)
}

// SetRelativelyToParent moves the node to its default position shifted to
// the parent's edge named by its FlagRelativeTo flags.
func (n *Node) SetRelativelyToParent(fix bool) {
	p := n.parent
	if p == nil {
		return
	}
	var xDec, yDec float64
	switch {
	case n.ContainsAFlag(FlagRelativeToRight):
		xDec = p.Width.RealPos() * 0.5
	case n.ContainsAFlag(FlagRelativeToLeft):
		xDec = -p.Width.RealPos() * 0.5
	}
	switch {
	case n.ContainsAFlag(FlagRelativeToTop):
		yDec = p.Height.RealPos() * 0.5
	case n.ContainsAFlag(FlagRelativeToBottom):
		yDec = -p.Height.RealPos() * 0.5
	}
	n.X.SetRelToDef(xDec, fix)
	n.Y.SetRelToDef(yDec, fix)
}
