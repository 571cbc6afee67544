package sandbox

// Transform padding: 8% of the content extent on each axis plus a fixed
// minimum world-space margin, so lone nodes never sit on the viewport edge.
const (
	padFraction = 0.08
	padMinimum  = 20.0
)

// Transform maps world coordinates to screen pixels and back. The x and y
// scales are computed independently so the content fills the available
// viewport; width and height proportions are not forced to match.
type Transform struct {
	scaleX float64
	scaleY float64
	offX   float64
	offY   float64
}

// fitTransform computes the transform that maps the padded content rectangle
// onto a viewport of the given pixel size.
func fitTransform(content Rect, viewW, viewH int) Transform {
	padX := content.W*padFraction + padMinimum
	padY := content.H*padFraction + padMinimum
	minX := content.MinX - padX
	minY := content.MinY - padY
	w := content.W + 2*padX
	h := content.H + 2*padY

	t := Transform{
		scaleX: float64(viewW) / w,
		scaleY: float64(viewH) / h,
	}
	t.offX = -minX * t.scaleX
	t.offY = -minY * t.scaleY
	return t
}

// ToScreen maps a world position to viewport pixels.
func (t Transform) ToScreen(wx, wy float64) (sx, sy float64) {
	return wx*t.scaleX + t.offX, wy*t.scaleY + t.offY
}

// ToWorld is the exact inverse of ToScreen.
func (t Transform) ToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - t.offX) / t.scaleX, (sy - t.offY) / t.scaleY
}

// PickRadius converts a pixel pick radius to world units, using the finer of
// the two axis scales so hit testing never feels smaller than it looks.
func (t Transform) PickRadius(px float64) float64 {
	s := t.scaleX
	if t.scaleY > s {
		s = t.scaleY
	}
	if s <= 0 {
		return px
	}
	return px / s
}
