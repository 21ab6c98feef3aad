package bramble

// Flags is the structural flag word of a Node: visibility, search markers
// and layout participation. Bits 0-31 belong to the package, bits 32-63 to
// applications (FlagFirstCustom and above).
type Flags uint64

const (
	FlagShow          Flags = 1 << iota // currently visible
	FlagHidden                          // left closed by openBranch
	FlagExposed                         // kept shown by closeBranch
	FlagNotToAlign                      // skipped by AlignTheChildren
	FlagSelectableRoot                  // hit search may descend into it
	FlagSelectable                      // hit-testable
	FlagReshapableRoot                  // reshapeBranch may descend into it
	FlagBranchToDisplay                 // subtree still has content on screen
	FlagPoping                          // scales in and out with its alpha

	FlagDontAlignScreenElements // screen takes its parent's size instead
	FlagRelativeToRight         // SetRelativelyToParent anchors on the right edge
	FlagRelativeToLeft          // ... on the left edge
	FlagRelativeToTop           // ... on the top edge
	FlagRelativeToBottom        // ... on the bottom edge
	FlagIsScreen                // direct child of the root switched by ChangeActiveScreen
)

// FlagFirstCustom is the lowest bit applications may use.
const FlagFirstCustom Flags = 1 << 32

// SurfaceFlags is the domain flag word of a Node: how a surface derives its
// size from its texture and passes it on. Bits 0-15 belong to the package,
// bits 16-63 to applications.
type SurfaceFlags uint64

const (
	SurfaceDontRespectRatio SurfaceFlags = 1 << iota // keep width, ignore texture ratio
	SurfaceWithCeiledWidth                           // width never exceeds Width.DefPos
	GiveSizesToBigBroFrame                           // resize the Frame just before it
	GiveSizesToParent                                // resize the parent to match
)

// SurfaceFirstCustom is the lowest surface bit applications may use.
const SurfaceFirstCustom SurfaceFlags = 1 << 16

// --- Node flag helpers ---

// AddFlags sets f on the node.
func (n *Node) AddFlags(f Flags) { n.flags |= f }

// RemoveFlags clears f on the node.
func (n *Node) RemoveFlags(f Flags) { n.flags &^= f }

// AddRemoveFlags sets add then clears remove.
func (n *Node) AddRemoveFlags(add, remove Flags) { n.flags = (n.flags | add) &^ remove }

// ContainsAFlag reports whether any bit of f is set.
func (n *Node) ContainsAFlag(f Flags) bool { return n.flags&f != 0 }

// Flags returns the structural flag word.
func (n *Node) Flags() Flags { return n.flags }

// AddSurfaceFlags sets f on the surface word.
func (n *Node) AddSurfaceFlags(f SurfaceFlags) { n.surfaceFlags |= f }

// RemoveSurfaceFlags clears f on the surface word.
func (n *Node) RemoveSurfaceFlags(f SurfaceFlags) { n.surfaceFlags &^= f }

// ContainsASurfaceFlag reports whether any bit of f is set on the surface word.
func (n *Node) ContainsASurfaceFlag(f SurfaceFlags) bool { return n.surfaceFlags&f != 0 }

// SurfaceFlags returns the surface flag word.
func (n *Node) SurfaceFlags() SurfaceFlags { return n.surfaceFlags }

// isDisplayActive reports whether the display walk must visit the node.
func (n *Node) isDisplayActive() bool {
	if n.Type != NodeTypeBranch && n.trShow.Active() {
		return true
	}
	return n.ContainsAFlag(FlagShow | FlagBranchToDisplay)
}
