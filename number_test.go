package bramble

import (
	"slices"
	"testing"
	"testing/fstest"
)

// newDigitsTexture returns a 23 tile digits strip of square tiles.
func newDigitsTexture(t testing.TB) *Texture {
	t.Helper()
	fsys := fstest.MapFS{"digits.png": {Data: pngBytes(t, 230, 10)}}
	c, err := NewTextureCache(fsys, map[string]Tiling{"digits.png": {M: 23, N: 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return c.Png("digits.png")
}

func glyphs(nn *NumberNode) []Digit {
	var ds []Digit
	for c := nn.Node.firstChild; c != nil; c = c.littleBro {
		ds = append(ds, Digit(c.Uniforms.I))
	}
	return ds
}

func TestNumberNodeGlyphs(t *testing.T) {
	digits := newDigitsTexture(t)
	tests := []struct {
		name        string
		number      int
		unitDecimal int
		plus        bool
		extra       Digit
		want        []Digit
	}{
		{"zero", 0, 0, false, NoDigit, []Digit{DigitZero}},
		{"integer", 1234, 0, false, NoDigit, []Digit{1, 2, 3, 4}},
		{"decimals", 1234, 2, false, NoDigit, []Digit{1, 2, DigitDot, 3, 4}},
		{"leading zero", 5, 2, false, NoDigit, []Digit{0, DigitDot, 0, 5}},
		{"negative", -42, 0, false, NoDigit, []Digit{DigitMinus, 4, 2}},
		{"negative decimals", -105, 1, false, NoDigit, []Digit{DigitMinus, 1, 0, DigitDot, 5}},
		{"plus", 7, 0, true, NoDigit, []Digit{DigitPlus, 7}},
		{"extra", 50, 0, false, DigitPercent, []Digit{5, 0, DigitPercent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, root := newTestTree()
			nn := NewNumberNode(root, "n", 0, digits, 0, 0, 0.1, 0, tt.unitDecimal)
			nn.ShowPlus = tt.plus
			nn.Extra = tt.extra
			nn.Update(tt.number)
			if got := glyphs(nn); !slices.Equal(got, tt.want) {
				t.Errorf("glyphs = %v, want %v", got, tt.want)
			}
			checkChain(t, nn.Node)
		})
	}
}

func TestNumberNodeSpacing(t *testing.T) {
	_, root := newTestTree()
	nn := NewNumberNode(root, "n", 105, newDigitsTexture(t), 0, 0, 0.1, 0, 1)
	for c := nn.Node.firstChild; c != nil; c = c.littleBro {
		want := defaultDigitSpacing
		if Digit(c.Uniforms.I) == DigitDot {
			want = defaultSeparatorSpacing
		}
		assertNear(t, "scale of "+c.Name, c.ScaleX.RealPos(), want)
	}

	nn.UpdateWithDecimal(105, 0, DigitComma)
	if got, want := glyphs(nn), []Digit{1, 0, 5}; !slices.Equal(got, want) {
		t.Fatalf("glyphs = %v, want %v", got, want)
	}
	for c := nn.Node.firstChild; c != nil; c = c.littleBro {
		assertNear(t, "reused separator scale", c.ScaleX.RealPos(), defaultDigitSpacing)
	}
	first := nn.Node.firstChild
	assertNear(t, "first X", first.X.RealPos(), -defaultDigitSpacing)
	assertNear(t, "width", nn.Node.Width.RealPos(), 3*defaultDigitSpacing)
	assertNear(t, "height", nn.Node.ScaleY.RealPos(), 0.1)
}

func TestNumberNodeReusesGlyphs(t *testing.T) {
	_, root := newTestTree()
	nn := NewNumberNode(root, "n", 12345, newDigitsTexture(t), 0, 0, 0.1, 0, 0)
	first := nn.Node.firstChild
	nn.Update(7)
	if nn.Node.firstChild != first || first.littleBro != nil {
		t.Error("the first glyph should be kept and the rest dropped")
	}
	nn.Update(99)
	if nn.Node.firstChild != first || len(childNames(nn.Node)) != 2 {
		t.Error("glyphs should grow back from the first")
	}
}

func TestNumberNodeReopens(t *testing.T) {
	clock, root := newTestTree()
	nn := NewNumberNode(root, "n", 1, newDigitsTexture(t), 0, 0, 0.1, 0, 0)
	root.OpenBranch(nil)
	nn.Update(42)
	for c := nn.Node.firstChild; c != nil; c = c.littleBro {
		if !c.ContainsAFlag(FlagShow) {
			t.Errorf("%s not shown", c.Name)
		}
	}
	advance(clock, 1000)
	root.CloseBranch(nil)
	nn.Update(123)
	if nn.Node.lastChild.ContainsAFlag(FlagShow) {
		t.Error("a closed number stays closed")
	}
}

func TestDigitHelpers(t *testing.T) {
	tests := []struct {
		v, highest int
	}{
		{0, 0}, {9, 0}, {10, 1}, {999, 2}, {1000, 3},
	}
	for _, tt := range tests {
		if got := highestDecimal(tt.v); got != tt.highest {
			t.Errorf("highestDecimal(%d) = %d, want %d", tt.v, got, tt.highest)
		}
	}
	for i, want := range []int{4, 3, 2, 1, 0} {
		if got := digitAt(1234, i); got != want {
			t.Errorf("digitAt(1234, %d) = %d, want %d", i, got, want)
		}
	}
}

func BenchmarkNumberNodeUpdate(b *testing.B) {
	_, root := newTestTree()
	nn := NewNumberNode(root, "n", 0, newDigitsTexture(b), 0, 0, 0.1, 0, 2)
	i := 0
	for b.Loop() {
		nn.Update(i)
		i += 137
	}
}
