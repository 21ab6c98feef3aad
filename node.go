package bramble

// --- ID counter ---

// nodeIDCounter is a plain counter. Bramble is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Uniforms ---

// Uniforms are the per-instance values handed to the renderer with each
// drawable.
type Uniforms struct {
	Model Mat4
	Color Color
	I, J  int // tile column and row
	Emph  float64
	Flags uint32 // shader flags, opaque to the tree
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// Every positional field is a SmoothDimension expressed in the referential of
// the parent: X and Y are the center relative to the parent's origin, in
// units of the parent's scale. A leaf expresses its size with Width/Height,
// a branch scales its children with ScaleX/ScaleY.
//
// Links are non-owning: the tree is a doubly linked list of siblings under
// each parent. Disconnect leaves the node's own links in place.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Smooth placement
	X, Y, Z        SmoothDimension
	Width, Height  SmoothDimension
	ScaleX, ScaleY SmoothDimension

	// Display
	Uniforms Uniforms

	flags        Flags
	surfaceFlags SurfaceFlags

	// Links
	parent     *Node
	firstChild *Node
	lastChild  *Node
	bigBro     *Node
	littleBro  *Node

	clock *FrameClock

	// Surface fields (every type but NodeTypeBranch)
	Texture *Texture
	Mesh    *Mesh
	trShow  Transition

	// Frame and bar fields (NodeTypeFrame, NodeTypeBar)
	framing    Framing
	frameDelta float64

	// Metadata
	UserData any

	// Capability hooks (nil by default; zero cost when unused). Set them
	// once, when the node is built.
	OnOpen    func()          // openBranch reached the node
	OnClose   func()          // closeBranch hid the node
	OnReshape func() bool     // container resized; true asks to reshape the children too
	OnAction  func()          // tapped
	OnJustTap func()          // tapped; takes precedence over OnAction
	OnGrab    func(pos Vec2)  // drag started on the node, pos in its children referential
	OnDrag    func(pos Vec2)  // drag moved
	OnLetGo   func(vel *Vec2) // drag ended; vel is nil when the release was still
	OnEnter   func()          // Enter key on the active screen
	OnEscape  func()          // Escape key on the active screen
	OnKeyDown func(key Key)   // other key pressed on the active screen
	OnKeyUp   func(key Key)   // key released on the active screen
	OnScroll  func(up bool)   // mouse wheel over the node or one of its descendants
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node, clock *FrameClock, x, y, width, height, lambda float64) {
	n.ID = nextNodeID()
	n.clock = clock
	n.X = NewSmoothDimension(clock, x, lambda)
	n.Y = NewSmoothDimension(clock, y, lambda)
	n.Z = NewSmoothDimension(clock, 0, lambda)
	n.Width = NewSmoothDimension(clock, width, lambda)
	n.Height = NewSmoothDimension(clock, height, lambda)
	n.ScaleX = NewSmoothDimension(clock, 1, lambda)
	n.ScaleY = NewSmoothDimension(clock, 1, lambda)
	n.Uniforms = Uniforms{Model: identityMat4, Color: ColorWhite}
	n.trShow = NewTransition(clock)
}

// NewRootNode creates a parentless node reading clock. Every node created
// under it shares that clock.
func NewRootNode(clock *FrameClock, name string, x, y, width, height, lambda float64, flags Flags) *Node {
	n := &Node{Name: name, Type: NodeTypeBranch}
	nodeDefaults(n, clock, x, y, width, height, lambda)
	n.flags = flags
	return n
}

// NewNode creates a branch node as the cadet of parent. A nil parent gives
// a detached node with no clock, whose dimensions never animate.
func NewNode(parent *Node, name string, x, y, width, height, lambda float64, flags Flags) *Node {
	var clock *FrameClock
	if parent != nil {
		clock = parent.clock
	}
	n := &Node{Name: name, Type: NodeTypeBranch}
	nodeDefaults(n, clock, x, y, width, height, lambda)
	n.flags = flags
	if parent != nil {
		n.ConnectToParent(parent, false)
	}
	return n
}

// NewNodeNextTo creates a branch node as a sibling of bro: just before it
// when asBigBro, just after it otherwise.
func NewNodeNextTo(bro *Node, asBigBro bool, name string, x, y, width, height, lambda float64, flags Flags) *Node {
	n := &Node{Name: name, Type: NodeTypeBranch}
	nodeDefaults(n, bro.clock, x, y, width, height, lambda)
	n.flags = flags
	n.ConnectToBro(bro, asBigBro)
	return n
}

// NewNodeCopy creates a copy of src connected to ref, as its child when
// asParent, as its sibling otherwise. Dimensions (with their motion), flags,
// uniforms and surface resources are copied; links, hooks and UserData are
// not.
func NewNodeCopy(ref, src *Node, asParent, asElder bool) *Node {
	n := &Node{
		ID:           nextNodeID(),
		Name:         src.Name,
		Type:         src.Type,
		X:            src.X,
		Y:            src.Y,
		Z:            src.Z,
		Width:        src.Width,
		Height:       src.Height,
		ScaleX:       src.ScaleX,
		ScaleY:       src.ScaleY,
		Uniforms:     src.Uniforms,
		flags:        src.flags,
		surfaceFlags: src.surfaceFlags,
		clock:        src.clock,
		Texture:      src.Texture,
		Mesh:         src.Mesh,
		trShow:       src.trShow,
		framing:      src.framing,
		frameDelta:   src.frameDelta,
	}
	if n.Type == NodeTypeFrame || n.Type == NodeTypeBar {
		// Frame meshes are edited per node.
		n.Mesh = src.Mesh.Clone()
	}
	if ref == nil {
		return n
	}
	if ref.clock != n.clock {
		n.adoptClock(ref.clock)
	}
	if asParent {
		n.ConnectToParent(ref, asElder)
	} else {
		n.ConnectToBro(ref, asElder)
	}
	return n
}

// adoptClock makes the node read clock, for copies of detached nodes
// joining a tree.
func (n *Node) adoptClock(clock *FrameClock) {
	n.clock = clock
	for _, d := range [...]*SmoothDimension{&n.X, &n.Y, &n.Z, &n.Width, &n.Height, &n.ScaleX, &n.ScaleY} {
		d.clock = clock
	}
	n.trShow.clock = clock
}

// --- Links ---

// Parent returns the parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the eldest child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the youngest child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// BigBro returns the elder sibling, or nil.
func (n *Node) BigBro() *Node { return n.bigBro }

// LittleBro returns the younger sibling, or nil.
func (n *Node) LittleBro() *Node { return n.littleBro }

// Clock returns the clock the node's dimensions read.
func (n *Node) Clock() *FrameClock { return n.clock }

// ChildCount walks the child chain and returns its length.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.littleBro {
		count++
	}
	return count
}

// Children returns the children from eldest to youngest in a new slice.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.littleBro {
		out = append(out, c)
	}
	return out
}

// DeltaX is half the horizontal room the node takes in its parent.
func (n *Node) DeltaX() float64 {
	return n.Width.RealPos() * n.ScaleX.RealPos() / 2
}

// DeltaY is half the vertical room the node takes in its parent.
func (n *Node) DeltaY() float64 {
	return n.Height.RealPos() * n.ScaleY.RealPos() / 2
}

// --- Tree manipulation ---

// ConnectToParent inserts the node as the eldest (asElder) or youngest child
// of parent. The node must be disconnected; stale sibling links are reset.
func (n *Node) ConnectToParent(parent *Node, asElder bool) {
	if parent == nil {
		warnf(n, "connect to nil parent")
		return
	}
	n.parent = parent
	n.bigBro, n.littleBro = nil, nil
	switch {
	case parent.firstChild == nil:
		parent.firstChild = n
		parent.lastChild = n
	case asElder:
		n.littleBro = parent.firstChild
		parent.firstChild.bigBro = n
		parent.firstChild = n
	default:
		n.bigBro = parent.lastChild
		parent.lastChild.littleBro = n
		parent.lastChild = n
	}
	if globalDebug {
		debugCheckTreeDepth(n)
		debugCheckChildCount(parent)
	}
}

// ConnectToBro inserts the node right before (asBigBro) or right after bro,
// under bro's parent. The node must be disconnected.
func (n *Node) ConnectToBro(bro *Node, asBigBro bool) {
	if bro == nil {
		warnf(n, "connect to nil bro")
		return
	}
	if bro.parent == nil {
		warnf(bro, "bro without parent")
	}
	n.parent = bro.parent
	if asBigBro {
		n.littleBro = bro
		n.bigBro = bro.bigBro
		bro.bigBro = n
		if n.bigBro != nil {
			n.bigBro.littleBro = n
		} else if n.parent != nil {
			n.parent.firstChild = n
		}
		return
	}
	n.littleBro = bro.littleBro
	n.bigBro = bro
	bro.littleBro = n
	if n.littleBro != nil {
		n.littleBro.bigBro = n
	} else if n.parent != nil {
		n.parent.lastChild = n
	}
}

// Disconnect splices the node out of its sibling chain in O(1). The node's
// own parent and sibling links are left as they were.
func (n *Node) Disconnect() {
	if n.bigBro != nil {
		n.bigBro.littleBro = n.littleBro
	} else if n.parent != nil && n.parent.firstChild == n {
		n.parent.firstChild = n.littleBro
	}
	if n.littleBro != nil {
		n.littleBro.bigBro = n.bigBro
	} else if n.parent != nil && n.parent.lastChild == n {
		n.parent.lastChild = n.bigBro
	}
}

// DisconnectChild disconnects the eldest (elder) or youngest child and
// reports whether there was one.
func (n *Node) DisconnectChild(elder bool) bool {
	c := n.lastChild
	if elder {
		c = n.firstChild
	}
	if c == nil {
		return false
	}
	c.Disconnect()
	return true
}

// DisconnectBro disconnects the elder (big) or younger sibling and reports
// whether there was one.
func (n *Node) DisconnectBro(big bool) bool {
	b := n.littleBro
	if big {
		b = n.bigBro
	}
	if b == nil {
		return false
	}
	b.Disconnect()
	return true
}

// MoveWithinBrosTo moves the node next to bro, a sibling, without touching
// its referential.
func (n *Node) MoveWithinBrosTo(bro *Node, asBigBro bool) bool {
	if bro == n {
		return false
	}
	parent := bro.parent
	if parent == nil {
		warnf(bro, "move within bros: bro has no parent")
		return false
	}
	if parent != n.parent {
		warnf(n, "move within bros: no common parent")
		return false
	}
	n.Disconnect()
	n.ConnectToBro(bro, asBigBro)
	return true
}

// MoveAsElderOrCadet moves the node to the front (asElder) or back of its
// siblings.
func (n *Node) MoveAsElderOrCadet(asElder bool) bool {
	if asElder && n.bigBro == nil {
		return true
	}
	if !asElder && n.littleBro == nil {
		return true
	}
	parent := n.parent
	if parent == nil {
		warnf(n, "move as elder or cadet: no parent")
		return false
	}
	n.Disconnect()
	n.ConnectToParent(parent, asElder)
	return true
}

// MoveToBro moves the node next to bro, keeping its absolute position and
// size. The animation in progress continues in the new referential.
func (n *Node) MoveToBro(bro *Node, asBigBro bool) bool {
	newParent := bro.parent
	if newParent == nil {
		warnf(bro, "move to bro: bro without parent")
		return false
	}
	n.SetInReferentialOf(newParent)
	n.Disconnect()
	n.ConnectToBro(bro, asBigBro)
	return true
}

// SimpleMoveToBro moves the node next to bro without adjusting its values.
func (n *Node) SimpleMoveToBro(bro *Node, asBigBro bool) {
	n.Disconnect()
	n.ConnectToBro(bro, asBigBro)
}

// MoveToParent moves the node under newParent, keeping its absolute
// position and size.
func (n *Node) MoveToParent(newParent *Node, asElder bool) bool {
	if newParent == nil {
		warnf(n, "move to nil parent")
		return false
	}
	n.SetInReferentialOf(newParent)
	n.Disconnect()
	n.ConnectToParent(newParent, asElder)
	return true
}

// SimpleMoveToParent moves the node under newParent without adjusting its
// values.
func (n *Node) SimpleMoveToParent(newParent *Node, asElder bool) {
	n.Disconnect()
	n.ConnectToParent(newParent, asElder)
}

// PermuteWith swaps the tree positions of the node and other, each keeping
// its absolute placement. Both need a parent.
func (n *Node) PermuteWith(other *Node) bool {
	oldParent := n.parent
	if oldParent == nil {
		warnf(n, "permute: no parent")
		return false
	}
	if other.parent == nil {
		warnf(other, "permute: other has no parent")
		return false
	}
	if other == n {
		return true
	}
	if oldParent.firstChild == n {
		if !n.MoveToBro(other, true) {
			return false
		}
		return other.MoveToParent(oldParent, true)
	}
	theBigBro := n.bigBro
	if theBigBro == other {
		// Adjacent: moving n before other already swaps them.
		return n.MoveToBro(other, true)
	}
	if !n.MoveToBro(other, true) {
		return false
	}
	return other.MoveToBro(theBigBro, false)
}

// IsAncestorOf reports whether n is other or one of its ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
