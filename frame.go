package bramble

import "math"

// Framing places the border of a Frame or Bar relative to the size it is
// given.
type Framing uint8

const (
	FramingOutside Framing = iota // the border surrounds the size
	FramingCenter                 // the border straddles the edge
	FramingInside                 // the border stays within the size
)

// DefaultFrameRelDelta is the border thickness, relative to the height, of
// framed strings.
const DefaultFrameRelDelta = 0.2

// DefaultTiledFrameRelDelta is the border thickness, relative to the height,
// of framed tiled surfaces.
const DefaultTiledFrameRelDelta = 0.4

// smallDelta is the half-size of the stretched center of a frame given the
// half-size of the content.
func smallDelta(framing Framing, size, delta float64) float64 {
	switch framing {
	case FramingOutside:
		return math.Max(0, size/2-2*delta)
	case FramingCenter:
		return math.Max(0, size/2-delta)
	default:
		return size / 2
	}
}

// NewFrame creates a 9-slice frame of border delta around a width x height
// content. The corners of tex keep their size, the edges and center stretch.
func NewFrame(parent *Node, name string, framing Framing, delta, lambda float64, tex *Texture, width, height float64, sflags SurfaceFlags) *Node {
	n := newSurfaceNode(parent, name, tex, newFrameMesh(), 0, 0, delta*2, lambda, 0,
		SurfaceDontRespectRatio|sflags)
	n.Type = NodeTypeFrame
	n.framing = framing
	n.frameDelta = delta
	n.Width.Snap(delta * 4)
	n.UpdateFrame(width, height, true)
	return n
}

// UpdateFrame resizes the frame for a width x height content and, with
// GiveSizesToParent, resizes the parent to the frame.
func (n *Node) UpdateFrame(width, height float64, fix bool) {
	if n.Type != NodeTypeFrame {
		warnf(n, "update frame: not a frame")
		return
	}
	if width < 0 || height < 0 {
		warnf(n, "update frame: negative size %gx%g", width, height)
		return
	}
	d := n.frameDelta
	sdx := smallDelta(n.framing, width, d)
	sdy := smallDelta(n.framing, height, d)
	xPos := float32(0.5 * sdx / (sdx + 2*d))
	yPos := float32(0.5 * sdy / (sdy + 2*d))
	n.Width.Set(2*(sdx+2*d), fix, true)
	n.Height.Set(2*(sdy+2*d), fix, true)

	m := n.Mesh
	for i := 4; i < 8; i++ {
		m.SetXOfVertex(-xPos, i)
		m.SetXOfVertex(xPos, i+4)
	}
	for _, i := range [...]int{1, 5, 9, 13} {
		m.SetYOfVertex(yPos, i)
		m.SetYOfVertex(-yPos, i+1)
	}

	if p := n.parent; p != nil && n.ContainsASurfaceFlag(GiveSizesToParent) {
		p.Width.Snap(n.Width.RealPos())
		p.Height.Snap(n.Height.RealPos())
	}
}

// NewBar creates a 3-slice horizontal bar of thickness 2*delta.
func NewBar(parent *Node, name string, framing Framing, delta, width, lambda float64, tex *Texture) *Node {
	n := newSurfaceNode(parent, name, tex, newBarMesh(), 0, 0, delta*2, lambda, 0, SurfaceDontRespectRatio)
	n.Type = NodeTypeBar
	n.framing = framing
	n.frameDelta = delta
	n.Width.Snap(delta * 4)
	n.UpdateBar(width, true)
	return n
}

// UpdateBar resizes the bar for a content of the given width.
func (n *Node) UpdateBar(width float64, fix bool) {
	if n.Type != NodeTypeBar {
		warnf(n, "update bar: not a bar")
		return
	}
	if width < 0 {
		warnf(n, "update bar: negative width %g", width)
		return
	}
	d := n.frameDelta
	sdx := smallDelta(n.framing, width, d)
	xPos := float32(0.5 * sdx / (sdx + 2*d))
	n.Width.Set(2*(sdx+2*d), fix, true)

	n.Mesh.SetXOfVertex(-xPos, 2)
	n.Mesh.SetXOfVertex(-xPos, 3)
	n.Mesh.SetXOfVertex(xPos, 4)
	n.Mesh.SetXOfVertex(xPos, 5)
}

// UpdateWithLittleBro moves a frame or bar onto its younger sibling and
// resizes it around it.
func (n *Node) UpdateWithLittleBro(fix bool) {
	bro := n.littleBro
	if bro == nil {
		return
	}
	n.X.Set(bro.X.RealPos(), fix, true)
	n.Y.Set(bro.Y.RealPos(), fix, true)
	switch n.Type {
	case NodeTypeFrame:
		n.UpdateFrame(bro.DeltaX()*2, bro.DeltaY()*2, fix)
	case NodeTypeBar:
		n.UpdateBar(bro.DeltaX()*2, fix)
	default:
		warnf(n, "update with little bro: not a frame or bar")
	}
}

// FrameDelta returns the border thickness of a frame or bar.
func (n *Node) FrameDelta() float64 { return n.frameDelta }

// Framing returns the border placement of a frame or bar.
func (n *Node) Framing() Framing { return n.framing }

// --- Framed content ---

// FillWithFramedString fills an empty node with a frame of frameTex and a
// string surface of strTex inside it. The node scales its content by its
// height, the string drives the size of the frame and the frame the size of
// the node. A ceiledWidth above 0 caps the width.
func (n *Node) FillWithFramedString(strTex, frameTex *Texture, ceiledWidth, relDelta float64) *Node {
	if n.firstChild != nil {
		warnf(n, "fill with framed string: node already has children")
		return nil
	}
	h := n.Height.RealPos()
	n.ScaleX.Snap(h)
	n.ScaleY.Snap(h)
	var scaledCeil float64
	if ceiledWidth > 0 && h > 0 {
		scaledCeil = ceiledWidth / h
	}
	NewFrame(n, "frame", FramingInside, relDelta, 0, frameTex, 0, 0, GiveSizesToParent)
	s := NewStringSurface(n, "string", strTex, 0, 0, 1, 0, 0, scaledCeil)
	s.AddSurfaceFlags(GiveSizesToBigBroFrame)
	s.UpdateRatio(true)
	return s
}

// AddFramedString adds a child node at (x, y) holding strTex in a frame. It
// returns the string surface, or nil if strTex is a png.
func (n *Node) AddFramedString(strTex, frameTex *Texture, x, y, height, lambda float64, flags Flags, ceiledWidth float64) *Node {
	if strTex.Type == TexturePng {
		warnf(n, "add framed string: not a string texture")
		return nil
	}
	w := height
	if ceiledWidth > 0 {
		w = ceiledWidth
	}
	holder := NewNode(n, "framed-string", x, y, w, height, lambda, flags)
	return holder.FillWithFramedString(strTex, frameTex, ceiledWidth, DefaultFrameRelDelta)
}

// AddFramedTiledSurface adds a child node at (x, y) holding tile i of
// tiledTex in a frame. It returns the tiled surface, or nil if tiledTex is
// not a png.
func (n *Node) AddFramedTiledSurface(tiledTex, frameTex *Texture, x, y, height float64, i int, lambda float64, flags Flags) *Node {
	if tiledTex.Type != TexturePng {
		warnf(n, "add framed tiled surface: not a png texture")
		return nil
	}
	holder := NewNode(n, "framed-tile", x, y, height, height, lambda, flags)
	NewFrame(holder, "frame", FramingInside, DefaultTiledFrameRelDelta*height, 0, frameTex, 0, 0, GiveSizesToParent)
	return NewTiledSurface(holder, "tile", tiledTex, 0, 0, height, 0, i, 0, GiveSizesToBigBroFrame)
}
