package bramble

import (
	"slices"
	"testing"
)

// buildBranch returns
//
//	top
//	├── a
//	│   └── ac
//	└── h (FlagHidden)
//	    └── hc
//
// with every OnOpen and OnClose appending the node name to the logs.
func buildBranch() (top *Node, opened, closed *[]string) {
	_, root := newTestTree()
	opened, closed = new([]string), new([]string)
	top = NewNode(root, "top", 0, 0, 4, 4, 0, 0)
	a := NewNode(top, "a", 0, 0, 1, 1, 0, 0)
	NewNode(a, "ac", 0, 0, 1, 1, 0, 0)
	h := NewNode(top, "h", 0, 0, 1, 1, 0, FlagHidden)
	NewNode(h, "hc", 0, 0, 1, 1, 0, 0)
	top.walkBranch(func(n *Node) {
		name := n.Name
		n.OnOpen = func() { *opened = append(*opened, name) }
		n.OnClose = func() { *closed = append(*closed, name) }
	}, nil)
	return top, opened, closed
}

func shownNames(top *Node) []string {
	var names []string
	top.walkBranch(func(n *Node) {
		if n.ContainsAFlag(FlagShow) {
			names = append(names, n.Name)
		}
	}, nil)
	return names
}

func findNode(top *Node, name string) *Node {
	var found *Node
	top.walkBranch(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	}, nil)
	return found
}

// --- Branch flags ---

func TestBranchFlags(t *testing.T) {
	top, _, _ := buildBranch()
	top.AddBranchFlags(FlagFirstCustom)
	top.walkBranch(func(n *Node) {
		if !n.ContainsAFlag(FlagFirstCustom) {
			t.Errorf("%s missing custom flag", n.Name)
		}
	}, nil)
	top.AddRemoveBranchFlags(FlagNotToAlign, FlagFirstCustom)
	top.walkBranch(func(n *Node) {
		if n.ContainsAFlag(FlagFirstCustom) || !n.ContainsAFlag(FlagNotToAlign) {
			t.Errorf("%s flags = %b", n.Name, n.Flags())
		}
	}, nil)
	top.RemoveBranchFlags(FlagNotToAlign)
	if findNode(top, "hc").ContainsAFlag(FlagNotToAlign) {
		t.Error("RemoveBranchFlags should reach the leaves")
	}
}

func TestRemoveBroLoopFlags(t *testing.T) {
	_, root := newTestTree()
	var kids []*Node
	for _, name := range []string{"a", "b", "c"} {
		kids = append(kids, NewNode(root, name, 0, 0, 1, 1, 0, FlagSelectable))
	}
	kids[1].RemoveBroLoopFlags(FlagSelectable)
	for _, k := range kids {
		if k.ContainsAFlag(FlagSelectable) {
			t.Errorf("%s kept the flag", k.Name)
		}
	}
}

func TestAddRootFlag(t *testing.T) {
	_, root := newTestTree()
	a := NewNode(root, "a", 0, 0, 1, 1, 0, 0)
	b := NewNode(a, "b", 0, 0, 1, 1, 0, 0)
	c := NewNode(b, "c", 0, 0, 1, 1, 0, 0)
	c.AddRootFlag(FlagSelectableRoot)
	if c.ContainsAFlag(FlagSelectableRoot) {
		t.Error("the node itself is left alone")
	}
	if !b.ContainsAFlag(FlagSelectableRoot) || !a.ContainsAFlag(FlagSelectableRoot) {
		t.Error("ancestors should get the flag")
	}

	a.RemoveFlags(FlagSelectableRoot)
	c.AddRootFlag(FlagSelectableRoot)
	if a.ContainsAFlag(FlagSelectableRoot) {
		t.Error("the walk stops at the first flagged ancestor")
	}
}

// --- Open and close ---

func TestOpenBranch(t *testing.T) {
	top, opened, _ := buildBranch()
	var checked []string
	top.OpenBranch(func(n *Node) { checked = append(checked, n.Name) })

	if want := []string{"top", "a", "ac", "h"}; !slices.Equal(*opened, want) {
		t.Errorf("opened = %v, want %v", *opened, want)
	}
	if !slices.Equal(checked, *opened) {
		t.Errorf("extraCheck saw %v", checked)
	}
	if got, want := shownNames(top), []string{"top", "a", "ac"}; !slices.Equal(got, want) {
		t.Errorf("shown = %v, want %v", got, want)
	}
}

func TestOpenBranchHookCanHide(t *testing.T) {
	top, _, _ := buildBranch()
	a := findNode(top, "a")
	a.OnOpen = func() { a.AddFlags(FlagHidden) }
	top.OpenBranch(nil)
	if got, want := shownNames(top), []string{"top"}; !slices.Equal(got, want) {
		t.Errorf("shown = %v, want %v", got, want)
	}
}

func TestCloseBranch(t *testing.T) {
	top, _, closed := buildBranch()
	top.OpenBranch(nil)
	findNode(top, "ac").AddFlags(FlagExposed)
	top.CloseBranch(nil)

	if got, want := shownNames(top), []string{"ac"}; !slices.Equal(got, want) {
		t.Errorf("shown after close = %v, want %v", got, want)
	}
	if want := []string{"top", "a", "h", "hc"}; !slices.Equal(*closed, want) {
		t.Errorf("closed = %v, want %v", *closed, want)
	}
	for name, want := range map[string]bool{"top": true, "a": true, "h": false, "ac": false} {
		if got := findNode(top, name).ContainsAFlag(FlagBranchToDisplay); got != want {
			t.Errorf("%s BranchToDisplay = %v, want %v", name, got, want)
		}
	}
}

func TestOpenCloseSymmetry(t *testing.T) {
	top, _, _ := buildBranch()
	top.OpenBranch(nil)
	first := shownNames(top)
	top.CloseBranch(nil)
	if got := shownNames(top); len(got) != 0 {
		t.Errorf("shown after close = %v", got)
	}
	top.OpenBranch(nil)
	if got := shownNames(top); !slices.Equal(got, first) {
		t.Errorf("reopen shows %v, want %v", got, first)
	}
}

// --- Reshape ---

func TestReshapeBranch(t *testing.T) {
	_, root := newTestTree()
	var calls []string
	hook := func(name string, more bool) func() bool {
		return func() bool {
			calls = append(calls, name)
			return more
		}
	}
	top := NewNode(root, "top", 0, 0, 4, 4, 0, FlagShow|FlagReshapableRoot)
	top.OnReshape = hook("top", true)
	r1 := NewNode(top, "r1", 0, 0, 1, 1, 0, FlagShow|FlagReshapableRoot)
	r1.OnReshape = hook("r1", false)
	NewNode(r1, "r1c", 0, 0, 1, 1, 0, FlagShow).OnReshape = hook("r1c", true)
	r2 := NewNode(top, "r2", 0, 0, 1, 1, 0, FlagShow|FlagReshapableRoot)
	NewNode(r2, "r2c", 0, 0, 1, 1, 0, FlagShow).OnReshape = hook("r2c", true)
	NewNode(top, "r3", 0, 0, 1, 1, 0, 0).OnReshape = hook("r3", true)
	leaf := NewNode(top, "leaf", 0, 0, 1, 1, 0, FlagShow)
	NewNode(leaf, "leafc", 0, 0, 1, 1, 0, FlagShow).OnReshape = hook("leafc", true)

	top.ReshapeBranch()
	if want := []string{"top", "r1", "r2c"}; !slices.Equal(calls, want) {
		t.Errorf("reshaped = %v, want %v", calls, want)
	}

	calls = nil
	top.RemoveFlags(FlagShow)
	top.ReshapeBranch()
	if len(calls) != 0 {
		t.Errorf("hidden branch reshaped %v", calls)
	}
}

// --- Hit search ---

func buildHitTree() (screen, b1, p, q *Node) {
	_, root := newTestTree()
	screen = NewNode(root, "screen", 0, 0, 4, 4, 0, FlagShow|FlagSelectableRoot)
	b1 = NewNode(screen, "b1", 1, 0, 1, 1, 0, FlagShow|FlagSelectable)
	p = NewNode(screen, "p", -1, 0, 4, 4, 0, FlagShow|FlagSelectable|FlagSelectableRoot)
	p.ScaleX.Snap(0.5)
	p.ScaleY.Snap(0.5)
	q = NewNode(p, "q", 0.5, 0, 1, 1, 0, FlagShow|FlagSelectable)
	return
}

func TestSearchNodeToSelect(t *testing.T) {
	screen, b1, p, q := buildHitTree()
	tests := []struct {
		name  string
		pos   Vec2
		avoid *Node
		want  *Node
	}{
		{"button", Vec2{1, 0}, nil, b1},
		{"nested", Vec2{-0.75, 0}, nil, q},
		{"container", Vec2{-1.75, 0.5}, nil, p},
		{"avoid falls back to container", Vec2{-0.75, 0}, q, p},
		{"outside", Vec2{3, 3}, nil, nil},
		{"empty space", Vec2{1, 1.5}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := screen.SearchNodeToSelect(tt.pos, tt.avoid); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchNodeToSelectSkipsHidden(t *testing.T) {
	screen, b1, p, _ := buildHitTree()
	b1.RemoveFlags(FlagShow)
	if got := screen.SearchNodeToSelect(Vec2{1, 0}, nil); got != nil {
		t.Errorf("hidden button selected: %v", got.Name)
	}
	p.RemoveFlags(FlagSelectableRoot)
	if got := screen.SearchNodeToSelect(Vec2{-0.75, 0}, nil); got != p {
		t.Errorf("search should stop at p, got %v", got)
	}
}

func BenchmarkSearchNodeToSelect(b *testing.B) {
	screen, _, _, _ := buildHitTree()
	for i := 0; i < 64; i++ {
		NewNode(screen, "filler", 1.5, 1.5, 0.2, 0.2, 0, FlagShow|FlagSelectable)
	}
	for b.Loop() {
		screen.SearchNodeToSelect(Vec2{-0.75, 0}, nil)
	}
}
