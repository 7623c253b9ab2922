// Package render composites the final canvas: background, axis labels, and
// the normalized cell bitmaps.
//
// The canvas is the only mutable object in the pipeline; this package owns
// it for the duration of the pass and hands it off immutable.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/grid/layout"
	"github.com/ankit-kv/gridmaker/pkg/grid/normalize"
)

// Faces carries the resolved label font faces for both axes.
type Faces struct {
	Columns font.Face
	Rows    font.Face
}

// Canvas renders the composited output. Cells are placed row-major in the
// order given; label drawing precedes cell placement.
func Canvas(cfg grid.Config, m layout.Metrics, cells []normalize.Cell, faces Faces) (*image.NRGBA, error) {
	if len(cells) > cfg.Grid.Slots() {
		return nil, fmt.Errorf("render: %d cells for %d slots", len(cells), cfg.Grid.Slots())
	}

	canvas := background(cfg.Background, m.CanvasWidth, m.CanvasHeight)

	if cfg.ColumnLabels.Active() && faces.Columns != nil {
		canvas = drawColumnLabels(canvas, cfg, m, faces.Columns)
	}
	if cfg.RowLabels.Active() && faces.Rows != nil {
		var err error
		canvas, err = drawRowLabels(canvas, cfg, m, faces.Rows)
		if err != nil {
			return nil, err
		}
	}

	return placeCells(canvas, cfg, m, cells), nil
}

// background allocates the canvas for the configured background variant.
func background(bg grid.Background, w, h int) *image.NRGBA {
	switch bg.Kind {
	case grid.BackgroundTransparent:
		return imaging.New(w, h, color.NRGBA{})
	case grid.BackgroundGradient:
		return gradient(bg, w, h)
	default:
		return imaging.New(w, h, bg.Color.NRGBA())
	}
}

// drawColumnLabels draws each non-blank column label centered over its
// column, inside the reserved top and/or bottom margin band.
func drawColumnLabels(canvas *image.NRGBA, cfg grid.Config, m layout.Metrics, face font.Face) *image.NRGBA {
	dc := gg.NewContext(m.CanvasWidth, m.CanvasHeight)
	dc.SetFontFace(face)
	dc.SetColor(cfg.ColumnLabels.Color.NRGBA())

	for col, text := range cfg.ColumnLabels.Texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		x := float64(m.Origin(0, col).X + m.CellExtentW/2)
		if cfg.ColumnLabels.Position == grid.PositionTop || cfg.ColumnLabels.Position == grid.PositionBoth {
			dc.DrawStringAnchored(text, x, float64(m.TopMargin)/2, 0.5, 0.5)
		}
		if cfg.ColumnLabels.Position == grid.PositionBottom || cfg.ColumnLabels.Position == grid.PositionBoth {
			dc.DrawStringAnchored(text, x, float64(m.CanvasHeight)-float64(m.BottomMargin)/2, 0.5, 0.5)
		}
	}

	return imaging.Overlay(canvas, dc.Image(), image.Pt(0, 0), 1.0)
}

// drawRowLabels draws each non-blank row label centered beside its row.
// Horizontal text is drawn directly; vertical text is rendered into an
// intermediate transparent buffer, rotated 90 degrees, and composited at
// the centered offset.
func drawRowLabels(canvas *image.NRGBA, cfg grid.Config, m layout.Metrics, face font.Face) (*image.NRGBA, error) {
	spec := cfg.RowLabels
	vertical := spec.Orientation == grid.OrientationVertical

	var dc *gg.Context
	if !vertical {
		dc = gg.NewContext(m.CanvasWidth, m.CanvasHeight)
		dc.SetFontFace(face)
		dc.SetColor(spec.Color.NRGBA())
	}

	for row, text := range spec.Texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		y := m.Origin(row, 0).Y + m.CellExtentH/2

		var centers []int
		if spec.Position == grid.PositionLeft || spec.Position == grid.PositionBoth {
			centers = append(centers, m.LeftMargin/2)
		}
		if spec.Position == grid.PositionRight || spec.Position == grid.PositionBoth {
			centers = append(centers, m.CanvasWidth-m.RightMargin/2)
		}

		for _, cx := range centers {
			if vertical {
				rotated, err := verticalLabel(text, spec.Color, face)
				if err != nil {
					return nil, err
				}
				b := rotated.Bounds()
				at := image.Pt(cx-b.Dx()/2, y-b.Dy()/2)
				canvas = imaging.Overlay(canvas, rotated, at, 1.0)
			} else {
				dc.DrawStringAnchored(text, float64(cx), float64(y), 0.5, 0.5)
			}
		}
	}

	if !vertical {
		canvas = imaging.Overlay(canvas, dc.Image(), image.Pt(0, 0), 1.0)
	}
	return canvas, nil
}

// verticalLabel renders text into a transparent buffer and rotates it 90
// degrees counterclockwise so it reads bottom to top.
func verticalLabel(text string, c grid.RGB, face font.Face) (*image.NRGBA, error) {
	probe := gg.NewContext(1, 1)
	probe.SetFontFace(face)
	w, h := probe.MeasureString(text)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("render: cannot measure label %q", text)
	}

	dc := gg.NewContext(int(w)+2, int(h)+2)
	dc.SetFontFace(face)
	dc.SetColor(c.NRGBA())
	dc.DrawStringAnchored(text, (w+2)/2, (h+2)/2, 0.5, 0.5)

	return imaging.Rotate90(dc.Image()), nil
}

// placeCells pastes the normalized cells at their computed origins.
// Opaque cells overwrite destination pixels; alpha cells composite.
func placeCells(canvas *image.NRGBA, cfg grid.Config, m layout.Metrics, cells []normalize.Cell) *image.NRGBA {
	cols := cfg.Grid.Cols
	spacing := cfg.Grid.Spacing

	lastRowStart := -1
	centeredX := 0
	if cfg.CenterLastRow {
		if rem := len(cells) % cols; rem != 0 {
			lastRowStart = len(cells) - rem
			centeredX = m.CenteredRowStartX(rem)
		}
	}

	for i, cell := range cells {
		row, col := layout.CellAt(i, cols)
		at := m.Origin(row, col)
		if lastRowStart >= 0 && i >= lastRowStart {
			at.X = centeredX + (i-lastRowStart)*(m.CellExtentW+spacing)
		}
		if cell.Opaque {
			canvas = imaging.Paste(canvas, cell.Image, at)
		} else {
			canvas = imaging.Overlay(canvas, cell.Image, at, 1.0)
		}
	}
	return canvas
}
