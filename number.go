package bramble

// Digit is a tile of a digits texture: the ten digits then symbols, in this
// order, on a single row.
type Digit uint8

const (
	DigitZero Digit = iota
	DigitOne
	DigitTwo
	DigitThree
	DigitFour
	DigitFive
	DigitSix
	DigitSeven
	DigitEight
	DigitNine
	DigitSpace
	_
	DigitUnderscore
	DigitPlus
	DigitMinus
	DigitMult
	DigitDiv
	DigitDot
	DigitComma
	DigitSecond
	DigitPercent
	DigitEqual
	DigitQuestion
)

// NoDigit disables the extra digit of a NumberNode.
const NoDigit Digit = 0xff

const (
	defaultDigitSpacing     = 0.83
	defaultSeparatorSpacing = 0.5
)

// NumberNode displays an integer with one tiled surface per glyph. With
// UnitDecimal d above 0 the last d digits come after the separator, so 1234
// with d=2 reads 12.34.
type NumberNode struct {
	Node *Node

	Number      int
	UnitDecimal int
	Separator   Digit
	// Extra is a glyph appended after the number, NoDigit for none.
	Extra Digit
	// Spacing is the share of a glyph's width given to it when aligned;
	// SeparatorSpacing the separator's.
	Spacing          float64
	SeparatorSpacing float64
	ShowPlus         bool

	digits *Texture
}

// NewNumberNode creates a number of the given height with the digits
// texture, then lays its glyphs out.
func NewNumberNode(parent *Node, name string, number int, digits *Texture, x, y, height, lambda float64, unitDecimal int) *NumberNode {
	n := NewNode(parent, name, x, y, 1, 1, lambda, 0)
	n.ScaleX.Snap(height)
	n.ScaleY.Snap(height)
	nn := &NumberNode{
		Node:             n,
		Number:           number,
		UnitDecimal:      unitDecimal,
		Separator:        DigitDot,
		Extra:            NoDigit,
		Spacing:          defaultDigitSpacing,
		SeparatorSpacing: defaultSeparatorSpacing,
		digits:           digits,
	}
	nn.refresh()
	return nn
}

// Update displays a new number. The glyph nodes are reused, added or
// removed as needed and an open number is reopened to show the new glyphs.
func (nn *NumberNode) Update(number int) {
	nn.Number = number
	nn.refresh()
}

// UpdateWithDecimal displays a new number with another unit decimal and
// separator.
func (nn *NumberNode) UpdateWithDecimal(number, unitDecimal int, separator Digit) {
	nn.Number = number
	nn.UnitDecimal = unitDecimal
	nn.Separator = separator
	nn.refresh()
}

func (nn *NumberNode) refresh() {
	n := nn.Node
	ref := NewTiledSurface(nil, "digit", nn.digits, 0, 0, 1, 0, 0, 0, 0)
	ref.ScaleX.Snap(nn.Spacing)
	sq := NewSquirrel(n)

	value := nn.Number
	if value < 0 {
		value = -value
	}
	maxDigits := max(highestDecimal(value), nn.UnitDecimal)

	sq.GoDownForced(ref)
	if nn.Number < 0 {
		nn.setGlyph(sq.Pos, DigitMinus)
		sq.GoRightForced(ref)
	} else if nn.ShowPlus {
		nn.setGlyph(sq.Pos, DigitPlus)
		sq.GoRightForced(ref)
	}
	for i := maxDigits; i >= nn.UnitDecimal; i-- {
		nn.setGlyph(sq.Pos, Digit(digitAt(value, i)))
		if i > 0 {
			sq.GoRightForced(ref)
		}
	}
	if nn.UnitDecimal > 0 {
		nn.setGlyph(sq.Pos, nn.Separator)
		sq.Pos.ScaleX.Snap(nn.SeparatorSpacing)
		sq.GoRightForced(ref)
		for i := nn.UnitDecimal - 1; i >= 0; i-- {
			nn.setGlyph(sq.Pos, Digit(digitAt(value, i)))
			if i > 0 {
				sq.GoRightForced(ref)
			}
		}
	}
	if nn.Extra != NoDigit {
		sq.GoRightForced(ref)
		nn.setGlyph(sq.Pos, nn.Extra)
	}
	for sq.Pos.littleBro != nil {
		sq.Pos.DisconnectBro(false)
	}

	n.AlignTheChildren(0, 0, 1)
	if n.ContainsAFlag(FlagShow) {
		n.OpenBranch(nil)
	}
}

// setGlyph shows d on a reused glyph node, resetting the spacing a
// separator may have left on it.
func (nn *NumberNode) setGlyph(g *Node, d Digit) {
	g.UpdateTile(int(d), 0)
	g.ScaleX.Snap(nn.Spacing)
}

// highestDecimal returns the index of the highest decimal digit of v, 0 for
// numbers below 10.
func highestDecimal(v int) int {
	d := 0
	for v >= 10 {
		v /= 10
		d++
	}
	return d
}

// digitAt returns the decimal digit of v at index i, 0 being the units.
func digitAt(v, i int) int {
	for ; i > 0; i-- {
		v /= 10
	}
	return v % 10
}
