package bramble

// --- Branch flags ---

// walkBranch calls fn on n then on every descendant of n in pre-order.
// descend is asked, after fn, whether to visit a node's children; nil means
// always.
func (n *Node) walkBranch(fn func(*Node), descend func(*Node) bool) {
	fn(n)
	if descend != nil && !descend(n) {
		return
	}
	if n.firstChild == nil {
		return
	}
	sq := NewSquirrel(n.firstChild)
	for {
		fn(sq.Pos)
		if descend == nil || descend(sq.Pos) {
			if sq.GoDown() {
				continue
			}
		}
		for !sq.GoRight() {
			if !sq.GoUp() {
				warnf(n, "branch walk lost its root")
				return
			}
			if sq.Pos == n {
				return
			}
		}
	}
}

// AddBranchFlags sets f on the node and all its descendants.
func (n *Node) AddBranchFlags(f Flags) {
	n.walkBranch(func(m *Node) { m.AddFlags(f) }, nil)
}

// RemoveBranchFlags clears f on the node and all its descendants.
func (n *Node) RemoveBranchFlags(f Flags) {
	n.walkBranch(func(m *Node) { m.RemoveFlags(f) }, nil)
}

// AddRemoveBranchFlags sets add then clears remove on the whole branch.
func (n *Node) AddRemoveBranchFlags(add, remove Flags) {
	n.walkBranch(func(m *Node) { m.AddRemoveFlags(add, remove) }, nil)
}

// RemoveBroLoopFlags clears f on the node and all its siblings.
func (n *Node) RemoveBroLoopFlags(f Flags) {
	n.RemoveFlags(f)
	for b := n.littleBro; b != nil; b = b.littleBro {
		b.RemoveFlags(f)
	}
	for b := n.bigBro; b != nil; b = b.bigBro {
		b.RemoveFlags(f)
	}
}

// AddRootFlag sets f on the ancestors of the node, stopping at the first
// one that already carries it. The node itself is left alone.
func (n *Node) AddRootFlag(f Flags) {
	for p := n.parent; p != nil; p = p.parent {
		if p.ContainsAFlag(f) {
			return
		}
		p.AddFlags(f)
	}
}

// --- Open, close, reshape ---

// OpenBranch shows the branch. Each node, parents first, gets its OnOpen
// hook called, then extraCheck, then FlagShow unless it is FlagHidden.
// Children of a node left without FlagShow are not visited.
func (n *Node) OpenBranch(extraCheck func(*Node)) {
	n.walkBranch(func(m *Node) {
		if m.OnOpen != nil {
			m.OnOpen()
		}
		if extraCheck != nil {
			extraCheck(m)
		}
		if !m.ContainsAFlag(FlagHidden) {
			m.AddFlags(FlagShow)
		}
	}, func(m *Node) bool {
		return m.ContainsAFlag(FlagShow)
	})
}

// CloseBranch hides the branch. Every node but the FlagExposed ones loses
// FlagShow, gets OnClose then extraCheck. Closed branches keep
// FlagBranchToDisplay until their content has faded out.
func (n *Node) CloseBranch(extraCheck func(*Node)) {
	n.walkBranch(func(m *Node) {
		if m.ContainsAFlag(FlagExposed) {
			return
		}
		if m.firstChild != nil && m.ContainsAFlag(FlagShow) {
			m.AddFlags(FlagBranchToDisplay)
		}
		m.RemoveFlags(FlagShow)
		if m.OnClose != nil {
			m.OnClose()
		}
		if extraCheck != nil {
			extraCheck(m)
		}
	}, nil)
}

// ReshapeBranch lets the shown nodes of the branch adapt to a new container
// size. A node's OnReshape runs first; its children are visited only when it
// is a FlagReshapableRoot and the hook, if any, returned true.
func (n *Node) ReshapeBranch() {
	if !n.ContainsAFlag(FlagShow) {
		return
	}
	// walkBranch asks descend right after fn on the same node.
	more := false
	n.walkBranch(func(m *Node) {
		more = false
		if !m.ContainsAFlag(FlagShow) {
			return
		}
		more = true
		if m.OnReshape != nil {
			more = m.OnReshape()
		}
	}, func(m *Node) bool {
		return more && m.ContainsAFlag(FlagReshapableRoot)
	})
}

// --- Hit search ---

// SearchNodeToSelect returns the selectable node under absPos, a position in
// the root referential, or nil. The search enters FlagSelectableRoot nodes
// only, skips nodes without FlagShow and skips avoid. The first match at a
// level wins and a deeper match overrides it.
func (n *Node) SearchNodeToSelect(absPos Vec2, avoid *Node) *Node {
	relPos := absPos
	if n.parent != nil {
		relPos = n.parent.RelativePosOf(absPos)
	}
	return n.searchNodeToSelect(relPos, avoid)
}

func (n *Node) searchNodeToSelect(relPos Vec2, avoid *Node) *Node {
	sq := NewSquirrelAt(n, relPos, SquirrelOnes)
	var candidate *Node

	// The starting node has no siblings to try.
	if !sq.IsIn() || !n.ContainsAFlag(FlagShow) || n == avoid {
		return nil
	}
	if n.ContainsAFlag(FlagSelectable) {
		candidate = n
	}
	if !n.ContainsAFlag(FlagSelectableRoot) || !sq.GoDownP() {
		return candidate
	}

	for {
		p := sq.Pos
		if sq.IsIn() && p.ContainsAFlag(FlagShow) && p != avoid {
			if p.ContainsAFlag(FlagSelectable) {
				candidate = p
				if !p.ContainsAFlag(FlagSelectableRoot) {
					return candidate
				}
			}
			if p.ContainsAFlag(FlagSelectableRoot) {
				if sq.GoDownP() {
					continue
				}
				warnf(p, "selectable root without children")
			}
		}
		for !sq.GoRight() {
			if !sq.GoUpP() {
				warnf(n, "hit search lost its root")
				return candidate
			}
			if sq.Pos == n {
				return candidate
			}
		}
	}
}
