package bramble

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newImageTexture(w, h, m int, linear bool) *Texture {
	return &Texture{
		Tiling: Tiling{M: m, N: 1, AsLinear: linear},
		Type:   TexturePng,
		Width:  float64(w),
		Height: float64(h),
		image:  ebiten.NewImage(w, h),
	}
}

func spriteDrawable(tex *Texture) Drawable {
	return Drawable{Texture: tex, Mesh: spriteMesh, Uniforms: Uniforms{Model: Identity(), Color: ColorWhite}}
}

// --- Vertices ---

func TestAppendDrawable(t *testing.T) {
	tex := newImageTexture(64, 32, 2, true)
	d := spriteDrawable(tex)
	d.Uniforms.I = 1
	d.Uniforms.Color = Color{1, 0.5, 0, 0.5}
	proj := Identity()

	var b batcher
	b.appendDrawable(&d, tex.image, &proj, 200, 100)
	if len(b.verts) != 4 || len(b.inds) != 6 {
		t.Fatalf("got %d vertices, %d indices", len(b.verts), len(b.inds))
	}
	v := b.verts[0]
	assertNearTol(t, "dst x", float64(v.DstX), 50, 1e-4)
	assertNearTol(t, "dst y", float64(v.DstY), 25, 1e-4)
	assertNearTol(t, "src x", float64(v.SrcX), 32, 1e-4)
	assertNearTol(t, "src y", float64(v.SrcY), 0, 1e-4)
	v = b.verts[3]
	assertNearTol(t, "far dst x", float64(v.DstX), 150, 1e-4)
	assertNearTol(t, "far dst y", float64(v.DstY), 75, 1e-4)
	assertNearTol(t, "far src x", float64(v.SrcX), 64, 1e-4)
	assertNearTol(t, "far src y", float64(v.SrcY), 32, 1e-4)

	// Premultiplied.
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("color = (%v, %v, %v, %v)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}

	b.appendDrawable(&d, tex.image, &proj, 200, 100)
	if b.inds[6] != 4 {
		t.Errorf("second quad indices start at %d, want 4", b.inds[6])
	}
}

func TestAppendDrawableBehindEye(t *testing.T) {
	tex := newImageTexture(8, 8, 1, true)
	d := spriteDrawable(tex)
	proj := Identity()
	proj[15] = -1

	var b batcher
	b.appendDrawable(&d, tex.image, &proj, 100, 100)
	if len(b.verts) != 0 || len(b.inds) != 0 {
		t.Errorf("kept %d vertices, %d indices", len(b.verts), len(b.inds))
	}
}

// --- Batching ---

func TestSubmitCoalesces(t *testing.T) {
	a := newImageTexture(8, 8, 1, true)
	b2 := newImageTexture(8, 8, 1, true)
	nearest := &Texture{Tiling: Tiling{M: 1, N: 1}, Type: TexturePng, image: a.image}
	tests := []struct {
		name      string
		ds        []Drawable
		wantCalls int
	}{
		{"empty", nil, 0},
		{"same image", []Drawable{spriteDrawable(a), spriteDrawable(a), spriteDrawable(a)}, 1},
		{"image change", []Drawable{spriteDrawable(a), spriteDrawable(a), spriteDrawable(b2), spriteDrawable(a)}, 3},
		{"filter change", []Drawable{spriteDrawable(a), spriteDrawable(nearest)}, 2},
	}
	target := ebiten.NewImage(64, 64)
	proj := Identity()
	var b batcher
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.submit(target, tt.ds, &proj)
			if b.drawCalls != tt.wantCalls {
				t.Errorf("draw calls = %d, want %d", b.drawCalls, tt.wantCalls)
			}
			if b.vertexCount != 4*len(tt.ds) {
				t.Errorf("vertices = %d, want %d", b.vertexCount, 4*len(tt.ds))
			}
		})
	}
}

func BenchmarkSubmit(b *testing.B) {
	tex := newImageTexture(32, 32, 1, true)
	ds := make([]Drawable, 500)
	for i := range ds {
		ds[i] = spriteDrawable(tex)
	}
	target := ebiten.NewImage(256, 256)
	proj := Identity()
	var bt batcher
	for b.Loop() {
		bt.submit(target, ds, &proj)
	}
}
