package video

// Rect is a glyph cell in texture pixel space.
type Rect struct {
	X, Y, W, H int
}

// FontMetrics describes a fixed 16x16 ASCII glyph grid laid over a texture.
type FontMetrics struct {
	CellWidth  int
	CellHeight int
}

const fontGridSize = 16

// GridMetrics derives cell sizes from the texture dimensions.
func GridMetrics(width, height int) FontMetrics {
	return FontMetrics{CellWidth: width / fontGridSize, CellHeight: height / fontGridSize}
}

// Glyph returns the cell for r. Only the first 256 code points are mapped.
func (m FontMetrics) Glyph(r rune) (Rect, bool) {
	if r < 0 || r >= fontGridSize*fontGridSize || m.CellWidth == 0 || m.CellHeight == 0 {
		return Rect{}, false
	}
	col := int(r) % fontGridSize
	row := int(r) / fontGridSize
	return Rect{X: col * m.CellWidth, Y: row * m.CellHeight, W: m.CellWidth, H: m.CellHeight}, true
}
