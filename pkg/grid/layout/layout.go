// Package layout computes the grid geometry: label margins, per-cell pixel
// origins, and the final canvas size.
//
// Everything here is closed-form integer arithmetic; the only external
// dependency is text measurement, which is injected so that font handling
// stays out of the geometry.
package layout

import (
	"image"
	"strings"

	"github.com/ankit-kv/gridmaker/pkg/grid"
)

// labelPadding is the fixed gap reserved between label text and the grid.
const labelPadding = 15

// TextMeasurer reports the rendered bounding box of a string in some face.
type TextMeasurer interface {
	MeasureString(s string) (w, h int)
}

// Metrics is the computed geometry for one compose run.
type Metrics struct {
	TopMargin    int
	BottomMargin int
	LeftMargin   int
	RightMargin  int

	// CellExtentW/H is the pixel footprint of one cell including its
	// border ring, excluding spacing.
	CellExtentW int
	CellExtentH int

	CanvasWidth  int
	CanvasHeight int

	cols    int
	rows    int
	spacing int
}

// Compute derives the full geometry from the configuration. Text extents
// for column and row labels are measured with the respective measurers;
// a nil measurer treats that axis as unlabeled.
func Compute(cfg grid.Config, colMeasure, rowMeasure TextMeasurer) Metrics {
	g := cfg.Grid
	m := Metrics{
		CellExtentW: g.CellWidth + 2*cfg.Border.Extent(),
		CellExtentH: g.CellHeight + 2*cfg.Border.Extent(),
		cols:        g.Cols,
		rows:        g.Rows,
		spacing:     g.Spacing,
	}

	if cfg.ColumnLabels.Active() && colMeasure != nil {
		// Column margins reserve vertical space: the tallest text plus padding.
		reserve := maxExtent(cfg.ColumnLabels.Texts, colMeasure, false) + labelPadding
		switch cfg.ColumnLabels.Position {
		case grid.PositionTop:
			m.TopMargin = reserve
		case grid.PositionBottom:
			m.BottomMargin = reserve
		case grid.PositionBoth:
			m.TopMargin = reserve
			m.BottomMargin = reserve
		}
	}

	if cfg.RowLabels.Active() && rowMeasure != nil {
		// Row margins reserve horizontal space. Vertical text is rotated 90
		// degrees before compositing, so its horizontal footprint is the
		// measured text height.
		wide := cfg.RowLabels.Orientation != grid.OrientationVertical
		reserve := maxExtent(cfg.RowLabels.Texts, rowMeasure, wide) + labelPadding
		switch cfg.RowLabels.Position {
		case grid.PositionLeft:
			m.LeftMargin = reserve
		case grid.PositionRight:
			m.RightMargin = reserve
		case grid.PositionBoth:
			m.LeftMargin = reserve
			m.RightMargin = reserve
		}
	}

	m.CanvasWidth = m.LeftMargin + g.Cols*m.CellExtentW + (g.Cols-1)*g.Spacing + m.RightMargin
	m.CanvasHeight = m.TopMargin + g.Rows*m.CellExtentH + (g.Rows-1)*g.Spacing + m.BottomMargin
	return m
}

// maxExtent measures every non-blank text and returns the maximum width
// (wide=true) or height (wide=false). Blank texts contribute nothing.
func maxExtent(texts []string, tm TextMeasurer, wide bool) int {
	max := 0
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		w, h := tm.MeasureString(t)
		ext := h
		if wide {
			ext = w
		}
		if ext > max {
			max = ext
		}
	}
	return max
}

// CellAt maps a 0-indexed, row-major cell index to its grid position.
func CellAt(i, cols int) (row, col int) {
	return i / cols, i % cols
}

// Origin returns the pixel origin of the cell at (row, col).
func (m Metrics) Origin(row, col int) image.Point {
	return image.Pt(
		m.LeftMargin+col*(m.CellExtentW+m.spacing),
		m.TopMargin+row*(m.CellExtentH+m.spacing),
	)
}

// CellCenter returns the pixel center of the cell at (row, col).
func (m Metrics) CellCenter(row, col int) image.Point {
	o := m.Origin(row, col)
	return image.Pt(o.X+m.CellExtentW/2, o.Y+m.CellExtentH/2)
}

// CenteredRowStartX returns the X origin of the first cell in a final row
// holding n < cols images, re-centered within the full row width.
func (m Metrics) CenteredRowStartX(n int) int {
	fullRowWidth := m.cols*m.CellExtentW + (m.cols-1)*m.spacing
	rowImageSpan := n*m.CellExtentW + (n-1)*m.spacing
	return m.LeftMargin + (fullRowWidth-rowImageSpan)/2
}

// GridWidth returns the width of the cell area excluding margins.
func (m Metrics) GridWidth() int {
	return m.cols*m.CellExtentW + (m.cols-1)*m.spacing
}
