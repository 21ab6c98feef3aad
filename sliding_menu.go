package bramble

import "math"

const (
	slidingMenuLambda    = 10.0
	slidingMenuInLambda  = 20.0
	scrollBarLambda      = 30.0
	scrollBarWidthRatio  = 0.025
	flingVelocityLambda  = 4.0
	flingCoastMS         = 100
	flingDurationMS      = 1000
	flingStepMS          = 30
	trackpadFlingMinimum = 6.0
	trackpadScrollFactor = -0.015
)

// IndexRange is an inclusive range of item indices. It is empty when Last
// is below First.
type IndexRange struct {
	First, Last int
}

// Count returns the number of indices in the range.
func (r IndexRange) Count() int { return max(r.Last-r.First+1, 0) }

// Empty reports whether the range holds no index.
func (r IndexRange) Empty() bool { return r.Last < r.First }

// SlidingMenuConfig configures NewSlidingMenu.
type SlidingMenuConfig struct {
	// Displayed is the number of items visible at once.
	Displayed int
	X, Y          float64
	Width, Height float64
	// Spacing above 1 spaces the items, below 1 makes them overlap.
	Spacing float64
	// ScrollBack and ScrollFront hold three tiles on a row (top, middle,
	// bottom) for the scroll bar and its nub. Without them the menu has no
	// scroll bar.
	ScrollBack, ScrollFront *Texture

	// AddItem adds the item of index i under menu.
	AddItem func(menu *Node, i int)
	// Indices gives the range of items, asked every time the menu opens.
	// Items are rebuilt only when it changes.
	Indices func() IndexRange
	// OpenIndex gives the item to center on when the menu opens.
	OpenIndex func() int
}

// SlidingMenu is a vertical list of items scrolled by dragging, flinging or
// the mouse wheel. Items out of view get FlagHidden and are closed.
type SlidingMenu struct {
	Node *Node
	// Menu holds the items and slides inside Node.
	Menu *Node

	cfg       SlidingMenuConfig
	sched     FrameScheduler
	scrollBar *slidingMenuScrollBar
	indices   IndexRange

	grabPosY *float64
	vitY     SmoothDimension
	vitYm1   float64
	deltaT   *Chrono
	fling    *Chrono
	flinging bool
}

// NewSlidingMenu creates an empty sliding menu under parent. Its items are
// added when it opens. sched runs the fling animation.
func NewSlidingMenu(sched FrameScheduler, parent *Node, name string, cfg SlidingMenuConfig) *SlidingMenu {
	if cfg.Displayed < 1 {
		cfg.Displayed = 1
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = 1
	}
	n := NewNode(parent, name, cfg.X, cfg.Y, cfg.Width, cfg.Height, slidingMenuLambda, 0)
	n.MakeSelectable()
	n.AddFlags(FlagSelectableRoot)
	clock := n.clock
	m := &SlidingMenu{
		Node:    n,
		cfg:     cfg,
		sched:   sched,
		indices: IndexRange{0, -1},
		vitY:    NewSmoothDimension(clock, 0, flingVelocityLambda),
		deltaT:  NewChrono(clock),
		fling:   NewChrono(clock),
	}
	m.Menu = NewNode(n, "menu", 0, 0, cfg.Width, cfg.Height, slidingMenuInLambda, FlagSelectableRoot)
	if cfg.ScrollBack != nil && cfg.ScrollFront != nil {
		m.scrollBar = newSlidingMenuScrollBar(n, cfg.Width*scrollBarWidthRatio, cfg.ScrollBack, cfg.ScrollFront)
	}

	n.OnOpen = m.open
	n.OnGrab = m.grab
	n.OnDrag = m.drag
	n.OnLetGo = m.letGo
	n.OnJustTap = func() {}
	n.OnScroll = m.Scroll
	return m
}

// Indices returns the range of the items currently built.
func (m *SlidingMenu) Indices() IndexRange { return m.indices }

func (m *SlidingMenu) itemHeight() float64 {
	return m.Node.Height.RealPos() / float64(m.cfg.Displayed)
}

// menuDeltaYMax is the largest shift of the menu, 0 when every item fits.
func (m *SlidingMenu) menuDeltaYMax() float64 {
	return 0.5 * m.itemHeight() * float64(max(m.indices.Count()-m.cfg.Displayed, 0))
}

// --- Scrolling ---

// Scroll moves the menu one item up or down.
func (m *SlidingMenu) Scroll(up bool) {
	dy := m.itemHeight()
	if up {
		dy = -dy
	}
	m.setMenuY(m.Menu.Y.RealPos()+dy, true, false)
	m.checkItemsVisibility(true)
}

// TrackpadScrollBegan starts a continuous scroll.
func (m *SlidingMenu) TrackpadScrollBegan() {
	m.fling.Stop()
	m.vitYm1 = 0
	m.vitY.Snap(0)
	m.deltaT.Start()
}

// TrackpadScroll moves the menu by a trackpad delta.
func (m *SlidingMenu) TrackpadScroll(deltaY float64) {
	menuDeltaY := trackpadScrollFactor * deltaY
	m.setMenuY(m.Menu.Y.RealPos()+menuDeltaY, true, false)
	m.checkItemsVisibility(true)
	if dt := m.deltaT.ElapsedSec(); dt > 0 {
		m.vitYm1 = m.vitY.RealPos()
		m.vitY.Snap(menuDeltaY / dt)
	}
	m.deltaT.Start()
}

// TrackpadScrollEnded flings the menu if the scroll was fast enough.
func (m *SlidingMenu) TrackpadScrollEnded() {
	m.vitY.Snap((m.vitY.RealPos() + m.vitYm1) / 2)
	if math.Abs(m.vitY.RealPos()) < trackpadFlingMinimum {
		m.setMenuY(m.Menu.Y.RealPos(), true, false)
		return
	}
	m.startFling()
}

// --- Dragging ---

func (m *SlidingMenu) grab(pos Vec2) {
	m.fling.Stop()
	m.deltaT.Stop()
	y := pos.Y - m.Menu.Y.RealPos()
	m.grabPosY = &y
}

func (m *SlidingMenu) drag(pos Vec2) {
	if m.grabPosY == nil {
		warnf(m.Node, "sliding menu: drag without grab")
		return
	}
	m.setMenuY(pos.Y-*m.grabPosY, false, false)
	m.checkItemsVisibility(true)
}

func (m *SlidingMenu) letGo(vel *Vec2) {
	m.grabPosY = nil
	if vel == nil {
		m.setMenuY(m.Menu.Y.RealPos(), true, false)
		m.checkItemsVisibility(true)
		return
	}
	m.vitY.Set(vel.Y/2, true, false)
	m.startFling()
}

func (m *SlidingMenu) startFling() {
	m.fling.Start()
	m.deltaT.Start()
	if m.flinging {
		return
	}
	m.flinging = true
	if m.sched == nil {
		m.checkFling()
		m.flinging = false
		return
	}
	m.sched.AddFrameTask(func() bool {
		m.flinging = m.checkFling()
		return m.flinging
	})
}

// checkFling moves the menu along the fling and reports whether it goes
// on. The velocity coasts for a moment, then decays and the menu snaps to
// an item after a second.
func (m *SlidingMenu) checkFling() bool {
	if m.fling.ElapsedMS() > flingCoastMS {
		m.vitY.SetPos(0)
		if m.fling.ElapsedMS() > flingDurationMS {
			m.fling.Stop()
			m.deltaT.Stop()
			m.setMenuY(m.Menu.Y.RealPos(), true, false)
		}
	}
	if m.deltaT.ElapsedMS() > flingStepMS {
		m.setMenuY(m.Menu.Y.RealPos()+m.deltaT.ElapsedSec()*m.vitY.Pos(), false, false)
		m.deltaT.Start()
	}
	m.checkItemsVisibility(true)
	return m.deltaT.Active()
}

// --- Opening ---

func (m *SlidingMenu) open() {
	if !m.Menu.ContainsAFlag(FlagHidden) {
		m.Menu.AddFlags(FlagShow)
	}
	m.fling.Stop()
	m.deltaT.Stop()

	var indices IndexRange
	if m.cfg.Indices != nil {
		indices = m.cfg.Indices()
	} else {
		indices = IndexRange{0, -1}
	}
	if indices == m.indices {
		m.placeToOpenPos()
		m.checkItemsVisibility(false)
		return
	}

	m.indices = indices
	for m.Menu.firstChild != nil {
		m.Menu.DisconnectChild(true)
	}
	if indices.Empty() {
		m.scrollBar.setNubRelHeight(1)
	} else {
		m.scrollBar.setNubRelHeight(float64(m.cfg.Displayed) / math.Max(1, float64(indices.Count())))
		if m.cfg.AddItem != nil {
			for i := indices.First; i <= indices.Last; i++ {
				m.cfg.AddItem(m.Menu, i)
			}
		}
	}

	if m.Menu.firstChild == nil {
		return
	}
	small := m.itemHeight() / m.cfg.Spacing
	for c := m.Menu.firstChild; c != nil; c = c.littleBro {
		scale := small / c.Height.RealPos()
		c.ScaleX.Snap(scale)
		c.ScaleY.Snap(scale)
	}
	m.Menu.AlignTheChildren(AlignVertically|AlignFixPos, 1, m.cfg.Spacing)
	m.placeToOpenPos()
	m.checkItemsVisibility(false)
}

func (m *SlidingMenu) placeToOpenPos() {
	idx := m.indices.First
	if m.cfg.OpenIndex != nil {
		idx = m.cfg.OpenIndex()
	}
	idx = max(min(idx, m.indices.Last), m.indices.First) - m.indices.First
	m.setMenuY(m.itemHeight()*float64(idx)-m.menuDeltaYMax(), true, true)
}

// checkItemsVisibility hides the items out of the menu's height and shows
// the others. With openNode the items changing state are opened or closed.
func (m *SlidingMenu) checkItemsVisibility(openNode bool) {
	if m.Menu.firstChild == nil || !m.Menu.ContainsAFlag(FlagShow) {
		m.fling.Stop()
		m.deltaT.Stop()
		return
	}
	y := m.Menu.Y.RealPos()
	half := 0.5 * m.Node.Height.RealPos()
	for c := m.Menu.firstChild; c != nil; c = c.littleBro {
		toShow := math.Abs(y+c.Y.RealPos()) < half
		hidden := c.ContainsAFlag(FlagHidden)
		switch {
		case toShow && hidden:
			c.RemoveFlags(FlagHidden)
			if openNode {
				c.OpenBranch(nil)
			}
		case !toShow && !hidden:
			c.AddFlags(FlagHidden)
			if openNode {
				c.CloseBranch(nil)
			}
		}
	}
}

// setMenuY moves the menu to y, snapped to an item when asked, within the
// scrolling range.
func (m *SlidingMenu) setMenuY(y float64, snap, fix bool) {
	dMax := m.menuDeltaYMax()
	if snap {
		h := m.itemHeight()
		y = math.Round((y-dMax)/h)*h + dMax
	}
	y = math.Max(math.Min(y, dMax), -dMax)
	m.Menu.Y.Set(y, fix, false)
	if dMax > 0 {
		m.scrollBar.setNubRelY(y/dMax, fix)
	}
}

// --- Scroll bar ---

type slidingMenuScrollBar struct {
	node   *Node
	nub    *Node
	nubTop *Node
	nubMid *Node
	nubBot *Node
}

func newSlidingMenuScrollBar(parent *Node, width float64, backTex, frontTex *Texture) *slidingMenuScrollBar {
	parH := parent.Height.RealPos()
	n := NewNode(parent, "scroll-bar", parent.Width.RealPos()/2-width/2, 0, width, parH, 0, 0)

	NewTiledSurface(n, "back-top", backTex, 0, parH/2-width/2, width, 0, 0, 0, 0)
	mid := NewTiledSurface(n, "back-mid", backTex, 0, 0, width, 0, 1, 0, SurfaceDontRespectRatio)
	mid.Height.Snap(parH - 2*width)
	NewTiledSurface(n, "back-bottom", backTex, 0, -parH/2+width/2, width, 0, 2, 0, 0)

	sb := &slidingMenuScrollBar{node: n}
	sb.nub = NewNode(n, "nub", 0, parH/4, width, width*3, scrollBarLambda, 0)
	sb.nubTop = NewTiledSurface(sb.nub, "nub-top", frontTex, 0, width, width, 0, 0, 0, 0)
	sb.nubMid = NewTiledSurface(sb.nub, "nub-mid", frontTex, 0, 0, width, 0, 1, 0, SurfaceDontRespectRatio)
	sb.nubBot = NewTiledSurface(sb.nub, "nub-bottom", frontTex, 0, -width, width, 0, 2, 0, 0)
	return sb
}

// setNubRelHeight sizes the nub to relHeight of the bar. The bar is hidden
// when everything fits.
func (sb *slidingMenuScrollBar) setNubRelHeight(relHeight float64) {
	if sb == nil {
		return
	}
	if relHeight >= 1 || relHeight <= 0 {
		sb.node.AddFlags(FlagHidden)
		sb.node.CloseBranch(nil)
		return
	}
	sb.node.RemoveFlags(FlagHidden)
	w := sb.node.Width.RealPos()
	midH := math.Max(0, sb.node.Height.RealPos()*relHeight-2*w)
	sb.nub.Height.Snap(midH + 2*w)
	sb.nubTop.Y.Snap((midH + w) / 2)
	sb.nubBot.Y.Snap(-(midH + w) / 2)
	sb.nubMid.Height.Snap(midH)
}

// setNubRelY places the nub for a menu shift relY in [-1, 1], -1 being the
// top of the list.
func (sb *slidingMenuScrollBar) setNubRelY(relY float64, fix bool) {
	if sb == nil {
		return
	}
	deltaY := (sb.node.Height.RealPos() - sb.nub.Height.RealPos()) / 2
	sb.nub.Y.Set(-relY*deltaY, fix, false)
}
