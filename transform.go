package bramble

import "math"

// Mat4 is a column-major 4x4 matrix: element (row r, column c) is at
// index c*4+r, and the translation sits at 12, 13, 14.
type Mat4 [16]float64

// identityMat4 is the identity matrix.
var identityMat4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Identity returns the identity matrix.
func Identity() Mat4 { return identityMat4 }

// Translate post-multiplies m by a translation: points are moved by
// (tx, ty, tz) in m's local frame.
func (m *Mat4) Translate(tx, ty, tz float64) {
	m[12] += m[0]*tx + m[4]*ty + m[8]*tz
	m[13] += m[1]*tx + m[5]*ty + m[9]*tz
	m[14] += m[2]*tx + m[6]*ty + m[10]*tz
}

// Scale post-multiplies m by a scaling.
func (m *Mat4) Scale(sx, sy, sz float64) {
	for i := 0; i < 4; i++ {
		m[i] *= sx
		m[4+i] *= sy
		m[8+i] *= sz
	}
}

// RotateZ post-multiplies m by a rotation of theta around z.
func (m *Mat4) RotateZ(theta float64) {
	sin, cos := math.Sincos(theta)
	for i := 0; i < 4; i++ {
		x, y := m[i], m[4+i]
		m[i] = cos*x + sin*y
		m[4+i] = cos*y - sin*x
	}
}

// Mul returns m*o.
func (m *Mat4) Mul(o *Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * o[c*4+k]
			}
			r[c*4+row] = s
		}
	}
	return r
}

// Transform applies m to the point (x, y, z, 1) and returns the homogeneous
// result.
func (m *Mat4) Transform(x, y, z float64) (rx, ry, rz, rw float64) {
	rx = m[0]*x + m[4]*y + m[8]*z + m[12]
	ry = m[1]*x + m[5]*y + m[9]*z + m[13]
	rz = m[2]*x + m[6]*y + m[10]*z + m[14]
	rw = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

// LookAt returns the view matrix of a camera at eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	n := eye.Sub(center).Normalize()
	u := up.Cross(n).Normalize()
	v := n.Cross(u)
	return Mat4{
		u.X, v.X, n.X, 0,
		u.Y, v.Y, n.Y, 0,
		u.Z, v.Z, n.Z, 0,
		-u.Dot(eye), -v.Dot(eye), -n.Dot(eye), 1,
	}
}

// Perspective returns a projection in which a rectangle of deltaX by deltaY
// at distance middleZ from the eye fills the clip space.
func Perspective(nearZ, farZ, middleZ, deltaX, deltaY float64) Mat4 {
	return Mat4{
		2 * middleZ / deltaX, 0, 0, 0,
		0, 2 * middleZ / deltaY, 0, 0,
		0, 0, (farZ + nearZ) / (nearZ - farZ), -1,
		0, 0, 2 * farZ * nearZ / (nearZ - farZ), 0,
	}
}

// --- Referentials ---

// AbsPos returns the node's position in the root referential.
func (n *Node) AbsPos() Vec2 {
	sq := NewSquirrel(n)
	for sq.GoUpP() {
	}
	return sq.V
}

// RelativePosOf converts absPos, in the root referential, into the
// referential of n's children.
func (n *Node) RelativePosOf(absPos Vec2) Vec2 {
	sq := NewSquirrelWith(n, SquirrelScales)
	for sq.GoUpPS() {
	}
	return sq.RelPosOf(absPos)
}

// RelativeDeltaOf converts a length absDelta into the referential of n's
// children.
func (n *Node) RelativeDeltaOf(absDelta Vec2) Vec2 {
	sq := NewSquirrelWith(n, SquirrelScales)
	for sq.GoUpPS() {
	}
	return sq.RelDeltaOf(absDelta)
}

// SetInReferentialOf re-expresses the node's placement in the children
// referential of dest so that, once moved under dest, it stays where it is
// on screen. A branch keeps its size in its scales, a leaf in its width and
// height.
func (n *Node) SetInReferentialOf(dest *Node) {
	sqP := NewSquirrelWith(n, SquirrelOnes)
	for sqP.GoUpPS() {
	}
	sqQ := NewSquirrelWith(dest, SquirrelScales)
	for sqQ.GoUpPS() {
	}

	n.X.NewReferential(sqP.V.X, sqQ.V.X, sqP.SX, sqQ.SX)
	n.Y.NewReferential(sqP.V.Y, sqQ.V.Y, sqP.SY, sqQ.SY)

	if n.firstChild != nil {
		n.ScaleX.NewReferentialAsDelta(sqP.SX, sqQ.SX)
		n.ScaleY.NewReferentialAsDelta(sqP.SY, sqQ.SY)
	} else {
		n.Width.NewReferentialAsDelta(sqP.SX, sqQ.SX)
		n.Height.NewReferentialAsDelta(sqP.SY, sqQ.SY)
	}
}

// MoveUp moves the node next to its parent, one level up, keeping its
// placement.
func (n *Node) MoveUp(asBigBro bool) bool {
	p := n.parent
	if p == nil {
		warnf(n, "move up: no parent")
		return false
	}
	if p.parent == nil {
		warnf(n, "move up: parent is a root")
		return false
	}
	n.Disconnect()
	n.ConnectToBro(p, asBigBro)
	n.X.ReferentialUp(p.X.RealPos(), p.ScaleX.RealPos())
	n.Y.ReferentialUp(p.Y.RealPos(), p.ScaleY.RealPos())
	if n.firstChild == nil {
		n.Width.ReferentialUpAsDelta(p.ScaleX.RealPos())
		n.Height.ReferentialUpAsDelta(p.ScaleY.RealPos())
	} else {
		n.ScaleX.ReferentialUpAsDelta(p.ScaleX.RealPos())
		n.ScaleY.ReferentialUpAsDelta(p.ScaleY.RealPos())
	}
	return true
}

// MoveDownIn moves the node under bro, a sibling, keeping its placement.
func (n *Node) MoveDownIn(bro *Node, asElder bool) bool {
	if bro == n {
		return false
	}
	if bro.parent == nil {
		warnf(bro, "move down in: bro has no parent")
		return false
	}
	if bro.parent != n.parent {
		warnf(n, "move down in: no common parent")
		return false
	}
	n.Disconnect()
	n.ConnectToParent(bro, asElder)
	n.X.ReferentialDown(bro.X.RealPos(), bro.ScaleX.RealPos())
	n.Y.ReferentialDown(bro.Y.RealPos(), bro.ScaleY.RealPos())
	if n.firstChild == nil {
		n.Width.ReferentialDownAsDelta(bro.ScaleX.RealPos())
		n.Height.ReferentialDownAsDelta(bro.ScaleY.RealPos())
	} else {
		n.ScaleX.ReferentialDownAsDelta(bro.ScaleX.RealPos())
		n.ScaleY.ReferentialDownAsDelta(bro.ScaleY.RealPos())
	}
	return true
}
