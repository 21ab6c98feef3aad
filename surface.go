package bramble

import "math"

// newSurfaceNode creates a leaf drawing tex with mesh, height tall and as
// wide as it is tall until its ratio is applied.
func newSurfaceNode(parent *Node, name string, tex *Texture, mesh *Mesh, x, y, height, lambda float64, flags Flags, sflags SurfaceFlags) *Node {
	n := NewNode(parent, name, x, y, height, height, lambda, flags)
	n.Type = NodeTypeSurface
	n.Texture = tex
	n.Mesh = mesh
	n.surfaceFlags = sflags
	return n
}

// NewSurface creates a surface showing tex on the shared sprite quad. Its
// width follows the texture ratio unless SurfaceDontRespectRatio is set.
func NewSurface(parent *Node, name string, tex *Texture, x, y, height, lambda float64, flags Flags, sflags SurfaceFlags) *Node {
	n := newSurfaceNode(parent, name, tex, spriteMesh, x, y, height, lambda, flags, sflags)
	n.UpdateRatio(true)
	return n
}

// NewMeshSurface creates a surface drawing tex with a custom mesh.
func NewMeshSurface(parent *Node, name string, tex *Texture, mesh *Mesh, x, y, height, lambda float64, flags Flags, sflags SurfaceFlags) *Node {
	n := newSurfaceNode(parent, name, tex, mesh, x, y, height, lambda, flags, sflags)
	n.UpdateRatio(true)
	return n
}

// UpdateRatio sets the width from the height and the texture ratio, capped
// by Width.DefPos when SurfaceWithCeiledWidth is set. It then passes the size
// to the frame just before the node (GiveSizesToBigBroFrame) and to the
// parent (GiveSizesToParent).
func (n *Node) UpdateRatio(fix bool) {
	if n.Texture == nil {
		warnf(n, "update ratio: not a surface")
		return
	}
	if !n.ContainsASurfaceFlag(SurfaceDontRespectRatio) {
		if n.ContainsASurfaceFlag(SurfaceWithCeiledWidth) {
			n.Width.Set(math.Min(n.Height.RealPos()*n.Texture.Ratio, n.Width.DefPos), fix, false)
		} else {
			n.Width.Set(n.Height.RealPos()*n.Texture.Ratio, fix, true)
		}
	}
	if b := n.bigBro; b != nil && b.Type == NodeTypeFrame && n.ContainsASurfaceFlag(GiveSizesToBigBroFrame) {
		b.UpdateFrame(n.Width.RealPos(), n.Height.RealPos(), fix)
	}
	if p := n.parent; p != nil && n.ContainsASurfaceFlag(GiveSizesToParent) {
		p.Width.Snap(n.Width.RealPos())
		p.Height.Snap(n.Height.RealPos())
	}
}

// ShowAlpha returns the show transition alpha computed at the last draw.
func (n *Node) ShowAlpha() float64 { return n.trShow.Alpha() }

// SetShowTransition replaces the duration of the show and hide fades.
func (n *Node) SetShowTransition(t Transition) {
	t.clock = n.clock
	n.trShow = t
}

// --- String surfaces ---

// NewStringSurface creates a surface showing a string texture, black by
// default. A ceiledWidth above 0 caps the width. The ratio is refreshed every
// time the surface opens.
func NewStringSurface(parent *Node, name string, tex *Texture, x, y, height, lambda float64, flags Flags, ceiledWidth float64) *Node {
	if tex != nil && tex.Type == TexturePng {
		warnf(parent, "string surface %q given a png texture", name)
		tex = tex.cache.ConstantString("?")
	}
	var sflags SurfaceFlags
	if ceiledWidth > 0 {
		sflags = SurfaceWithCeiledWidth
	}
	n := newSurfaceNode(parent, name, tex, spriteMesh, x, y, height, lambda, flags, sflags)
	if ceiledWidth > 0 {
		n.Width.Snap(ceiledWidth)
	}
	n.Uniforms.Color = ColorBlack
	n.OnOpen = func() { n.UpdateRatio(true) }
	return n
}

// UpdateAsMutableString changes the content of the node's mutable string
// texture.
func (n *Node) UpdateAsMutableString(s string) {
	if n.Texture == nil || n.Texture.Type != TextureMutableString {
		warnf(n, "not a mutable string surface")
		return
	}
	n.Texture.UpdateAsMutableString(s)
}

// UpdateTexture swaps the texture of a surface for one of the same kind
// (png for png, string for string). The ratio is not updated.
func (n *Node) UpdateTexture(tex *Texture) {
	if n.Texture == nil || tex == nil {
		warnf(n, "update texture: not a surface")
		return
	}
	if (n.Texture.Type == TexturePng) != (tex.Type == TexturePng) {
		warnf(n, "update texture: %s texture given for a %s surface", tex.Type, n.Texture.Type)
		return
	}
	n.Texture = tex
}

// --- Tiled surfaces ---

// NewTiledSurface creates a surface showing tile i of a png texture. An
// index past the row continues on the next rows.
func NewTiledSurface(parent *Node, name string, tex *Texture, x, y, height, lambda float64, i int, flags Flags, sflags SurfaceFlags) *Node {
	n := NewSurface(parent, name, tex, x, y, height, lambda, flags, sflags)
	n.UpdateTile(i, 0)
	return n
}

// UpdateTile selects tile (i, j), wrapping i onto the following rows.
func (n *Node) UpdateTile(i, j int) {
	t := n.Texture
	if t == nil {
		return
	}
	n.Uniforms.I = i % t.M
	n.Uniforms.J = (j + i/t.M) % t.N
}

// UpdateTileI changes the column of the tile only.
func (n *Node) UpdateTileI(i int) {
	if n.Texture != nil {
		n.Uniforms.I = i % n.Texture.M
	}
}

// UpdateTileJ changes the row of the tile only.
func (n *Node) UpdateTileJ(j int) {
	if n.Texture != nil {
		n.Uniforms.J = j % n.Texture.N
	}
}

// NewLanguageSurface creates a surface whose tile is the current language
// of src, refreshed every time it opens.
func NewLanguageSurface(parent *Node, name string, tex *Texture, src LanguageSource, x, y, height, lambda float64, flags Flags) *Node {
	n := NewSurface(parent, name, tex, x, y, height, lambda, flags, 0)
	n.OnOpen = func() { n.UpdateTile(int(src.Language()), 0) }
	return n
}

// NewTestFrame adds to ref a surface outlining its size, kept in sync on
// open and reshape.
func NewTestFrame(ref *Node, tex *Texture) *Node {
	n := newSurfaceNode(ref, "test-frame", tex, spriteMesh, 0, 0, ref.Height.RealPos(), DefaultLambda,
		FlagNotToAlign, SurfaceDontRespectRatio)
	n.Width.Snap(ref.Width.RealPos())
	n.OnOpen = func() {
		p := n.parent
		if p == nil {
			warnf(n, "test frame without parent")
			return
		}
		n.Height.SetPos(p.Height.RealPos())
		n.Width.SetPos(p.Width.RealPos())
	}
	n.OnReshape = func() bool {
		n.OnOpen()
		return false
	}
	return n
}

// TryToAddTestFrame adds a test frame to n when debug mode is on.
func (n *Node) TryToAddTestFrame(tex *Texture) {
	if !globalDebug {
		return
	}
	NewTestFrame(n, tex)
}
