package fonts

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// measurer reports rendered text extents for a single face.
type measurer struct {
	dc *gg.Context
}

// NewMeasurer wraps a face as a text measurer for the layout calculator.
// The measurer is not safe for concurrent use; the pipeline measures
// sequentially.
func NewMeasurer(face font.Face) *measurer {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return &measurer{dc: dc}
}

// MeasureString returns the rendered bounding box of s, rounded up to
// whole pixels.
func (m *measurer) MeasureString(s string) (w, h int) {
	fw, fh := m.dc.MeasureString(s)
	return int(fw + 0.5), int(fh + 0.5)
}
