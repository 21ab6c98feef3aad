package bramble

import "math"

// Drawable is one surface handed to the renderer, with the uniforms
// computed for this frame.
type Drawable struct {
	Node     *Node
	Texture  *Texture
	Mesh     *Mesh
	Uniforms Uniforms
}

// shaderPeriodSec wraps the time given to animated meshes.
const shaderPeriodSec = 24.0

// NodeForDrawing prepares n for drawing and reports whether it is a surface
// to draw. It is called on every node of the display walk, parents first.
type NodeForDrawing func(n *Node, view *Mat4) bool

// CollectDrawables walks the displayed part of the tree from the root,
// prepares every node and appends the surfaces to draw to buf, back to
// front.
func (e *Engine) CollectDrawables(buf []Drawable) []Drawable {
	view := e.camera.View()
	fanRatio := 0.5 + 0.5*math.Sin(math.Mod(e.clock.ElapsedSec(), shaderPeriodSec))
	prepare := e.SetNodeForDrawing
	if prepare == nil {
		prepare = SetNodeForDrawing
	}
	sq := NewSquirrel(e.root)
	for {
		n := sq.Pos
		if prepare(n, &view) {
			if n.Mesh == e.meshes.DefaultFan {
				n.Mesh.UpdateAsAFanWith(fanRatio)
			}
			buf = append(buf, Drawable{Node: n, Texture: n.Texture, Mesh: n.Mesh, Uniforms: n.Uniforms})
		}
		if !sq.GoToNextToDisplay() {
			return buf
		}
	}
}

// SetNodeForDrawing is the default NodeForDrawing. The model matrix starts
// from the parent's, or from view for the root. A node with children
// translates and scales its children's referential. A surface applies its
// show transition to its alpha, is skipped once fully faded, and is scaled
// to its size (times its alpha with FlagPoping).
func SetNodeForDrawing(n *Node, view *Mat4) bool {
	u := &n.Uniforms
	if n.parent != nil {
		u.Model = n.parent.Uniforms.Model
	} else {
		u.Model = *view
	}

	if n.firstChild != nil {
		u.Model.Translate(n.X.Pos(), n.Y.Pos(), n.Z.Pos())
		u.Model.Scale(n.ScaleX.Pos(), n.ScaleY.Pos(), 1)
		return false
	}
	if n.Type == NodeTypeBranch || n.Texture == nil || n.Mesh == nil {
		return false
	}

	alpha := n.trShow.SetAndGet(n.ContainsAFlag(FlagShow))
	u.Color.A = alpha
	if alpha == 0 {
		return false
	}
	u.Model.Translate(n.X.Pos(), n.Y.Pos(), n.Z.Pos())
	if n.ContainsAFlag(FlagPoping) {
		u.Model.Scale(n.Width.Pos()*alpha, n.Height.Pos()*alpha, 1)
	} else {
		u.Model.Scale(n.Width.Pos(), n.Height.Pos(), 1)
	}
	return true
}
