package bramble

import (
	"slices"
	"testing"
)

// buildWalkTree returns
//
//	top
//	├── a
//	│   ├── b
//	│   └── c
//	└── d
func buildWalkTree() (top, a, b, c, d *Node) {
	_, root := newTestTree()
	top = NewNode(root, "top", 0, 0, 4, 4, 0, FlagShow)
	a = NewNode(top, "a", 0, 0, 1, 1, 0, FlagShow)
	b = NewNode(a, "b", 0, 0, 1, 1, 0, FlagShow)
	c = NewNode(a, "c", 0, 0, 1, 1, 0, 0)
	d = NewNode(top, "d", 0, 0, 1, 1, 0, FlagShow)
	return
}

// --- Plain moves ---

// preOrder lists the descendants of top with plain moves.
func preOrder(top *Node) []string {
	var got []string
	sq := NewSquirrel(top)
	for {
		if sq.GoDown() {
			got = append(got, sq.Pos.Name)
			continue
		}
		for !sq.GoRight() {
			if !sq.GoUp() || sq.Pos == top {
				return got
			}
		}
		got = append(got, sq.Pos.Name)
	}
}

func TestSquirrelPreOrder(t *testing.T) {
	top, _, _, _, _ := buildWalkTree()
	if got, want := preOrder(top), []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("pre-order = %v, want %v", got, want)
	}
}

func TestSquirrelBounds(t *testing.T) {
	top, _, b, c, d := buildWalkTree()
	sq := NewSquirrel(c)
	if !sq.GoLeft() || sq.Pos != b {
		t.Error("GoLeft from c should reach b")
	}
	if sq.GoLeft() || sq.Pos != b {
		t.Error("GoLeft from b should fail and stay")
	}
	if sq.GoDown() {
		t.Error("b has no children")
	}
	sq = NewSquirrel(d)
	if sq.GoRight() {
		t.Error("d has no younger sibling")
	}
	if !sq.GoUp() || sq.Pos != top {
		t.Error("GoUp from d should reach top")
	}
}

func TestSquirrelWithout(t *testing.T) {
	top, a, _, c, d := buildWalkTree()
	a.AddFlags(FlagNotToAlign)
	sq := NewSquirrel(top)
	if !sq.GoDownWithout(FlagNotToAlign) || sq.Pos != d {
		t.Errorf("GoDownWithout should skip a, got %s", sq.Pos.Name)
	}
	sq = NewSquirrel(a.firstChild)
	if !sq.GoRightWithout(FlagShow) || sq.Pos != c {
		t.Errorf("GoRightWithout should reach c, got %s", sq.Pos.Name)
	}
	if NewSquirrel(d).GoDownWithout(0) {
		t.Error("d has no children")
	}
}

func TestSquirrelForced(t *testing.T) {
	_, root := newTestTree()
	ref := NewNode(nil, "glyph", 0, 0, 1, 1, 0, FlagShow)
	line := NewNode(root, "line", 0, 0, 1, 1, 0, 0)

	sq := NewSquirrel(line)
	sq.GoDownForced(ref)
	sq.GoRightForced(ref)
	sq.GoRightForced(ref)
	if line.ChildCount() != 3 {
		t.Fatalf("ChildCount = %d, want 3", line.ChildCount())
	}
	if sq.Pos != line.LastChild() {
		t.Error("cursor should sit on the last copy")
	}

	// Existing nodes are reused.
	sq = NewSquirrel(line)
	sq.GoDownForced(ref)
	sq.GoRightForced(ref)
	if line.ChildCount() != 3 {
		t.Errorf("ChildCount = %d after reuse", line.ChildCount())
	}
	checkChain(t, line)
}

// --- Moves carrying a position ---

func TestSquirrelPositionRoundTrip(t *testing.T) {
	_, root := newTestTree()
	p := NewNode(root, "p", 1, -1, 2, 2, 0, 0)
	p.ScaleX.Snap(2)
	p.ScaleY.Snap(0.5)
	c := NewNode(p, "c", 0, 0, 1, 1, 0, 0)

	sq := NewSquirrelAt(p, Vec2{3, -0.5}, SquirrelOnes)
	if !sq.GoDownP() || sq.Pos != c {
		t.Fatal("GoDownP failed")
	}
	assertNear(t, "down X", sq.V.X, 1)
	assertNear(t, "down Y", sq.V.Y, 1)
	if !sq.GoUpPS() {
		t.Fatal("GoUpPS failed")
	}
	assertNear(t, "up X", sq.V.X, 3)
	assertNear(t, "up Y", sq.V.Y, -0.5)
	assertNear(t, "SX", sq.SX, 2)
	assertNear(t, "SY", sq.SY, 0.5)
}

func TestSquirrelIsIn(t *testing.T) {
	_, root := newTestTree()
	n := NewNode(root, "n", 1, 0, 2, 1, 0, 0)
	tests := []struct {
		v    Vec2
		want bool
	}{
		{Vec2{1, 0}, true},
		{Vec2{2, 0.5}, true},
		{Vec2{2.01, 0}, false},
		{Vec2{1, -0.6}, false},
	}
	for _, tt := range tests {
		if got := NewSquirrelAt(n, tt.v, SquirrelOnes).IsIn(); got != tt.want {
			t.Errorf("IsIn(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSquirrelRelPosOf(t *testing.T) {
	_, root := newTestTree()
	p := NewNode(root, "p", 1, 2, 1, 1, 0, 0)
	p.ScaleX.Snap(4)
	p.ScaleY.Snap(0.5)
	got := p.RelativePosOf(Vec2{3, 1})
	assertNear(t, "rel X", got.X, 0.5)
	assertNear(t, "rel Y", got.Y, -2)
	d := p.RelativeDeltaOf(Vec2{2, 2})
	assertNear(t, "delta X", d.X, 0.5)
	assertNear(t, "delta Y", d.Y, 4)
	abs := NewNode(p, "c", 0.5, -2, 1, 1, 0, 0).AbsPos()
	assertNear(t, "abs X", abs.X, 3)
	assertNear(t, "abs Y", abs.Y, 1)
}

// --- Display walk ---

func TestGoToNextToDisplay(t *testing.T) {
	top, _, _, _, _ := buildWalkTree()
	sq := NewSquirrel(top)
	var got []string
	for sq.GoToNextToDisplay() {
		got = append(got, sq.Pos.Name)
	}
	if want := []string{"a", "b", "d"}; !slices.Equal(got, want) {
		t.Errorf("display walk = %v, want %v", got, want)
	}
}

func TestGoToNextToDisplayClearsBranchFlag(t *testing.T) {
	top, _, _, _, d := buildWalkTree()
	e := NewNode(top, "e", 0, 0, 1, 1, 0, FlagBranchToDisplay)
	NewNode(e, "f", 0, 0, 1, 1, 0, 0)
	NewNode(d, "g", 0, 0, 1, 1, 0, 0)

	sq := NewSquirrel(top)
	var got []string
	for sq.GoToNextToDisplay() {
		got = append(got, sq.Pos.Name)
	}
	if want := []string{"a", "b", "d", "e"}; !slices.Equal(got, want) {
		t.Errorf("display walk = %v, want %v", got, want)
	}
	if e.ContainsAFlag(FlagBranchToDisplay) {
		t.Error("e should lose FlagBranchToDisplay once nothing under it shows")
	}
	if !d.ContainsAFlag(FlagShow) {
		t.Error("shown nodes keep their flag")
	}
}

func TestGoToNextToDisplayStaysInBranch(t *testing.T) {
	_, a, _, _, _ := buildWalkTree()
	sq := NewSquirrel(a)
	var got []string
	for sq.GoToNextToDisplay() {
		got = append(got, sq.Pos.Name)
	}
	if want := []string{"b"}; !slices.Equal(got, want) {
		t.Errorf("display walk from a = %v, want %v", got, want)
	}
}

func BenchmarkDisplayWalk(b *testing.B) {
	_, root := newTestTree()
	for i := 0; i < 32; i++ {
		n := NewNode(root, "n", 0, 0, 1, 1, 0, FlagShow)
		for j := 0; j < 8; j++ {
			NewNode(n, "m", 0, 0, 1, 1, 0, FlagShow)
		}
	}
	for b.Loop() {
		sq := NewSquirrel(root)
		for sq.GoToNextToDisplay() {
		}
	}
}
