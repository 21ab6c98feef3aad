package bramble

import "math"

// Viewport sizing.
const (
	// UsableRatioMin is the narrowest width/height ratio given to content in
	// portrait. Taller windows get empty bands.
	UsableRatioMin = 0.54
	// UsableRatioMax is the widest ratio given to content in landscape.
	UsableRatioMax = 1.85
	// DefaultBordRatio is the share of the short side left to content.
	DefaultBordRatio = 0.95

	viewportLambda = 8.0
	projectionNear = 0.1
	projectionFar  = 50.0
)

// Viewport converts between the window in pixels and the root referential.
// The short side of the window spans 2/BordRatio units; the usable frame,
// the part content is laid out in, spans 2 units on its short side and is
// capped to the UsableRatioMin..UsableRatioMax range.
type Viewport struct {
	// Width and Height are the window size in pixels.
	Width, Height float64
	Portrait      bool
	BordRatio     float64

	// FullWidth and FullHeight are the window size in root units, updated
	// every frame while the border ratios animate.
	FullWidth, FullHeight float64
	// UsableWidth and UsableHeight are the target size of the root.
	UsableWidth, UsableHeight float64

	widthRatio  SmoothDimension
	heightRatio SmoothDimension
}

// newViewport returns a square 1x1 pixel viewport.
func newViewport(clock *FrameClock) Viewport {
	return Viewport{
		Width:        1,
		Height:       1,
		BordRatio:    DefaultBordRatio,
		FullWidth:    2,
		FullHeight:   2,
		UsableWidth:  2,
		UsableHeight: 2,
		widthRatio:   NewSmoothDimension(clock, 1, viewportLambda),
		heightRatio:  NewSmoothDimension(clock, 1, viewportLambda),
	}
}

// Resize records a new window size and recomputes the usable frame. It
// reports whether the size changed.
func (v *Viewport) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		warnf(nil, "viewport resize to %gx%g", width, height)
		return false
	}
	if width == v.Width && height == v.Height {
		return false
	}
	v.Width, v.Height = width, height
	ratio := width / height
	v.Portrait = ratio < 1
	if v.Portrait {
		v.widthRatio.SetPos(v.BordRatio)
		v.heightRatio.SetPos(v.BordRatio * math.Min(1, ratio/UsableRatioMin))
		v.UsableWidth = 2
		v.UsableHeight = 2 * (v.heightRatio.RealPos() / v.widthRatio.RealPos()) / ratio
	} else {
		v.heightRatio.SetPos(v.BordRatio)
		v.widthRatio.SetPos(v.BordRatio * math.Min(1, UsableRatioMax/ratio))
		v.UsableHeight = 2
		v.UsableWidth = 2 * ratio * (v.widthRatio.RealPos() / v.heightRatio.RealPos())
	}
	v.updateFullSize()
	return true
}

// updateFullSize recomputes the full frame from the animated border ratios.
func (v *Viewport) updateFullSize() {
	if v.Width > v.Height {
		v.FullHeight = 2 / v.heightRatio.Pos()
		v.FullWidth = v.Width / v.Height * v.FullHeight
	} else {
		v.FullWidth = 2 / v.widthRatio.Pos()
		v.FullHeight = v.Height / v.Width * v.FullWidth
	}
}

// Projection returns the perspective projection for a camera at distance
// cameraZ from the content.
func (v *Viewport) Projection(cameraZ float64) Mat4 {
	return Perspective(projectionNear, projectionFar, cameraZ, v.FullWidth, v.FullHeight)
}

// PositionFrom converts a window position in pixels to the root
// referential. invertedY flips the vertical axis for windows whose y grows
// downward.
func (v *Viewport) PositionFrom(px, py float64, invertedY bool) Vec2 {
	sign := 1.0
	if invertedY {
		sign = -1
	}
	return Vec2{
		X: (px/v.Width - 0.5) * v.FullWidth,
		Y: sign * (py/v.Height - 0.5) * v.FullHeight,
	}
}

// DeltaFrom converts a window displacement or velocity in pixels to root
// units.
func (v *Viewport) DeltaFrom(dx, dy float64, invertedY bool) Vec2 {
	sign := 1.0
	if invertedY {
		sign = -1
	}
	return Vec2{X: dx / v.Width * v.FullWidth, Y: sign * dy / v.Height * v.FullHeight}
}
