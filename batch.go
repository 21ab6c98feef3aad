package bramble

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups drawables that can be submitted in a single draw call.
type batchKey struct {
	image  *ebiten.Image
	linear bool
}

// maxBatchVertices keeps a batch within what one DrawTriangles32 call
// accepts comfortably.
const maxBatchVertices = 1 << 16

// batcher projects drawables to window pixels and coalesces consecutive
// drawables sharing an image into one DrawTriangles32 call.
type batcher struct {
	verts []ebiten.Vertex
	inds  []uint32
	key   batchKey

	drawCalls   int
	vertexCount int
}

// submit draws ds onto target with the projection proj. Drawables whose
// mesh crosses the eye plane are skipped.
func (b *batcher) submit(target *ebiten.Image, ds []Drawable, proj *Mat4) {
	b.drawCalls, b.vertexCount = 0, 0
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	bounds := target.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	for i := range ds {
		d := &ds[i]
		img := d.Texture.Image()
		key := batchKey{image: img, linear: d.Texture.AsLinear}
		if key != b.key || len(b.verts)+d.Mesh.VertexCount() > maxBatchVertices {
			b.flush(target)
			b.key = key
		}
		b.appendDrawable(d, img, proj, w, h)
	}
	b.flush(target)
}

// appendDrawable projects the vertices of d and appends them with their
// triangle indices.
func (b *batcher) appendDrawable(d *Drawable, img *ebiten.Image, proj *Mat4, w, h float64) {
	mvp := proj.Mul(&d.Uniforms.Model)
	m := d.Mesh
	tex := d.Texture
	n := m.VertexCount()

	// Texture coordinates are in [0, 1] over one tile; the image may be a
	// placeholder of another size.
	ib := img.Bounds()
	tileW := float64(ib.Dx()) / float64(tex.M)
	tileH := float64(ib.Dy()) / float64(tex.N)
	offX := float64(ib.Min.X) + float64(d.Uniforms.I)*tileW
	offY := float64(ib.Min.Y) + float64(d.Uniforms.J)*tileH

	c := d.Uniforms.Color
	a := float32(c.A)
	cr, cg, cb := float32(c.R)*a, float32(c.G)*a, float32(c.B)*a

	start := len(b.verts)
	for i := 0; i < n; i++ {
		x, y, z, u, v := m.Vertex(i)
		cx, cy, _, cw := mvp.Transform(float64(x), float64(y), float64(z))
		if cw <= 0 {
			b.verts = b.verts[:start]
			return
		}
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32((cx/cw + 1) / 2 * w),
			DstY:   float32((1 - cy/cw) / 2 * h),
			SrcX:   float32(offX + float64(u)*tileW),
			SrcY:   float32(offY + float64(v)*tileH),
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: a,
		})
	}
	base := uint32(start)
	for _, idx := range m.TriangleIndices() {
		b.inds = append(b.inds, base+uint32(idx))
	}
}

// flush submits the accumulated vertices as a single DrawTriangles32 call.
func (b *batcher) flush(target *ebiten.Image) {
	if len(b.verts) == 0 || b.key.image == nil {
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	if b.key.linear {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	target.DrawTriangles32(b.verts, b.inds, b.key.image, &op)
	b.drawCalls++
	b.vertexCount += len(b.verts)
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}
