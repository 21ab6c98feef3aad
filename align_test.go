package bramble

import "testing"

func newAlignParent(sizes ...[2]float64) (*Node, []*Node) {
	_, root := newTestTree()
	p := NewNode(root, "p", 0, 0, 1, 1, DefaultLambda, 0)
	var kids []*Node
	for _, s := range sizes {
		kids = append(kids, NewNode(p, "c", 0.3, 0.3, s[0], s[1], DefaultLambda, 0))
	}
	return p, kids
}

func xs(kids []*Node) []float64 {
	out := make([]float64, len(kids))
	for i, k := range kids {
		out[i] = k.X.RealPos()
	}
	return out
}

func ys(kids []*Node) []float64 {
	out := make([]float64, len(kids))
	for i, k := range kids {
		out[i] = k.Y.RealPos()
	}
	return out
}

func assertAll(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len %d, want %d", name, len(got), len(want))
	}
	for i := range got {
		assertNear(t, name, got[i], want[i])
	}
}

// --- AlignTheChildren ---

func TestAlignTheChildren(t *testing.T) {
	tests := []struct {
		name         string
		opts         AlignOptions
		ratio        float64
		spacingRef   float64
		sizes        [][2]float64
		wantX, wantY []float64
		wantW, wantH float64
	}{
		{
			name:       "horizontal",
			opts:       AlignFixPos,
			spacingRef: 1,
			sizes:      [][2]float64{{1, 1}, {2, 2}, {1, 1}},
			wantX:      []float64{-1.5, 0, 1.5},
			wantY:      []float64{0, 0, 0},
			wantW:      4, wantH: 2,
		},
		{
			name:       "vertical",
			opts:       AlignFixPos | AlignVertically,
			spacingRef: 1,
			sizes:      [][2]float64{{1, 1}, {2, 2}, {1, 1}},
			wantX:      []float64{0, 0, 0},
			wantY:      []float64{1.5, 0, -1.5},
			wantW:      2, wantH: 4,
		},
		{
			name:       "spacing",
			opts:       AlignFixPos,
			spacingRef: 1.5,
			sizes:      [][2]float64{{1, 1}, {1, 1}},
			wantX:      []float64{-0.75, 0.75},
			wantY:      []float64{0, 0},
			wantW:      3, wantH: 1,
		},
		{
			name:       "respect ratio horizontally",
			opts:       AlignFixPos | AlignRespectRatio,
			ratio:      4,
			spacingRef: 1,
			sizes:      [][2]float64{{1, 1}, {1, 1}},
			wantX:      []float64{-1, 1},
			wantY:      []float64{0, 0},
			wantW:      4, wantH: 1,
		},
		{
			name:       "respect ratio vertically",
			opts:       AlignFixPos | AlignRespectRatio | AlignVertically,
			ratio:      0.25,
			spacingRef: 1,
			sizes:      [][2]float64{{1, 1}, {1, 1}},
			wantX:      []float64{0, 0},
			wantY:      []float64{1, -1},
			wantW:      1, wantH: 4,
		},
		{
			name:       "ratio already reached",
			opts:       AlignFixPos | AlignRespectRatio,
			ratio:      1,
			spacingRef: 1,
			sizes:      [][2]float64{{1, 1}, {1, 1}},
			wantX:      []float64{-0.5, 0.5},
			wantY:      []float64{0, 0},
			wantW:      2, wantH: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, kids := newAlignParent(tt.sizes...)
			if got := p.AlignTheChildren(tt.opts, tt.ratio, tt.spacingRef); got != len(kids) {
				t.Errorf("placed %d, want %d", got, len(kids))
			}
			assertAll(t, "X", xs(kids), tt.wantX)
			assertAll(t, "Y", ys(kids), tt.wantY)
			assertNear(t, "width", p.Width.RealPos(), tt.wantW)
			assertNear(t, "height", p.Height.RealPos(), tt.wantH)
			// Fixed alignments do not animate.
			assertNear(t, "shown X", kids[0].X.Pos(), tt.wantX[0])
		})
	}
}

func TestAlignIsDeterministic(t *testing.T) {
	p, kids := newAlignParent([2]float64{1, 2}, [2]float64{0.5, 1}, [2]float64{3, 1})
	p.AlignTheChildren(AlignRespectRatio, 3, 1.2)
	first := xs(kids)
	p.AlignTheChildren(AlignRespectRatio, 3, 1.2)
	assertAll(t, "second pass", xs(kids), first)
}

func TestAlignSkipsHiddenAndNotToAlign(t *testing.T) {
	p, kids := newAlignParent([2]float64{1, 1}, [2]float64{1, 1}, [2]float64{1, 1}, [2]float64{1, 1})
	kids[1].AddFlags(FlagHidden)
	kids[2].AddFlags(FlagNotToAlign)
	if got := p.AlignTheChildren(AlignFixPos, 0, 1); got != 2 {
		t.Fatalf("placed %d, want 2", got)
	}
	assertNear(t, "first", kids[0].X.RealPos(), -0.5)
	assertNear(t, "last", kids[3].X.RealPos(), 0.5)
	assertNear(t, "skipped", kids[1].X.RealPos(), 0.3)
	assertNear(t, "width", p.Width.RealPos(), 2)
}

func TestAlignWithoutChildren(t *testing.T) {
	p, _ := newAlignParent()
	if got := p.AlignTheChildren(0, 0, 1); got != 0 {
		t.Errorf("placed %d", got)
	}
	assertNear(t, "width", p.Width.RealPos(), 1)
}

func TestAlignOptions(t *testing.T) {
	t.Run("dont update sizes", func(t *testing.T) {
		p, _ := newAlignParent([2]float64{1, 1}, [2]float64{1, 1})
		p.AlignTheChildren(AlignFixPos|AlignDontUpdateSizes, 0, 1)
		assertNear(t, "width", p.Width.RealPos(), 1)
	})
	t.Run("set as def pos", func(t *testing.T) {
		p, kids := newAlignParent([2]float64{1, 1}, [2]float64{1, 1})
		p.AlignTheChildren(AlignFixPos|AlignSetAsDefPos, 0, 1)
		assertNear(t, "child def", kids[1].X.DefPos, 0.5)
		assertNear(t, "parent def", p.Width.DefPos, 2)
	})
	t.Run("secondary to def pos", func(t *testing.T) {
		p, kids := newAlignParent([2]float64{1, 1})
		p.AlignTheChildren(AlignFixPos|AlignSetSecondaryToDefPos, 0, 1)
		assertNear(t, "Y", kids[0].Y.RealPos(), 0.3)
	})
	t.Run("animated", func(t *testing.T) {
		p, kids := newAlignParent([2]float64{1, 1}, [2]float64{1, 1})
		p.AlignTheChildren(0, 0, 1)
		assertNear(t, "target", kids[0].X.RealPos(), -0.5)
		assertNear(t, "shown", kids[0].X.Pos(), 0.3)
	})
}

// --- Sizes from children ---

func TestAdjustWidthAndHeightFromChildren(t *testing.T) {
	_, root := newTestTree()
	p := NewNode(root, "p", 0, 0, 1, 1, 0, 0)
	NewNode(p, "a", 1, -0.5, 1, 1, 0, 0)
	NewNode(p, "b", -0.25, 0, 0.5, 0.5, 0, 0)
	NewNode(p, "hidden", 5, 5, 1, 1, 0, FlagHidden)
	p.AdjustWidthAndHeightFromChildren()
	assertNear(t, "width", p.Width.RealPos(), 3)
	assertNear(t, "height", p.Height.RealPos(), 2)
}

func TestSetRelativelyToParent(t *testing.T) {
	_, root := newTestTree()
	p := NewNode(root, "p", 0, 0, 4, 2, 0, 0)
	tests := []struct {
		flags      Flags
		wantX, wantY float64
	}{
		{FlagRelativeToRight | FlagRelativeToTop, 2.5, 1.25},
		{FlagRelativeToLeft | FlagRelativeToBottom, -1.5, -0.75},
		{0, 0.5, 0.25},
	}
	for _, tt := range tests {
		n := NewNode(p, "n", 0.5, 0.25, 1, 1, 0, tt.flags)
		n.SetRelativelyToParent(true)
		assertNear(t, "X", n.X.RealPos(), tt.wantX)
		assertNear(t, "Y", n.Y.RealPos(), tt.wantY)
		assertNear(t, "def X", n.X.DefPos, 0.5)
	}
}

func BenchmarkAlignTheChildren(b *testing.B) {
	sizes := make([][2]float64, 32)
	for i := range sizes {
		sizes[i] = [2]float64{1, float64(i%3 + 1)}
	}
	p, _ := newAlignParent(sizes...)
	for b.Loop() {
		p.AlignTheChildren(AlignRespectRatio, 1.5, 1.1)
	}
}
