// Package normalize resizes, pads, and borders source images into uniform
// grid cells.
//
// Each source image is normalized independently and exactly once per run.
// The working color mode (alpha-preserving or opaque) is elected up front
// and carried through every subsequent step for that image.
package normalize

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ankit-kv/gridmaker/pkg/grid"
)

// Cell is one normalized grid cell: a bitmap of exactly the cell extent,
// plus whether it should be pasted opaquely or alpha-composited.
type Cell struct {
	Image  *image.NRGBA
	Name   string
	Opaque bool
}

// Image normalizes a single source image to the configured cell extent.
//
// The returned bitmap is always cellWidth+2*border by cellHeight+2*border.
// Any failure aborts the whole render; the error names the offending image.
func Image(src grid.SourceImage, cfg grid.Config) (Cell, error) {
	if src.Image == nil {
		return Cell{}, fmt.Errorf("normalize %q: no decoded bitmap", src.Name)
	}
	b := src.Image.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return Cell{}, fmt.Errorf("normalize %q: empty bitmap (%dx%d)", src.Name, b.Dx(), b.Dy())
	}

	// Color-mode election: keep alpha only when requested and present.
	keepAlpha := cfg.PreserveTransparency && src.HasAlpha

	w, h := cfg.Grid.CellWidth, cfg.Grid.CellHeight
	var cell *image.NRGBA
	if cfg.MaintainAspect {
		cell = fitAndCenter(src.Image, w, h, keepAlpha)
	} else {
		// Scale to fill: the image may be stretched.
		cell = imaging.Resize(src.Image, w, h, imaging.Lanczos)
	}

	if !keepAlpha {
		cell = flattenWhite(cell)
	}

	if bw := cfg.Border.Extent(); bw > 0 {
		ring := imaging.New(w+2*bw, h+2*bw, cfg.Border.Color.NRGBA())
		cell = imaging.Paste(ring, cell, image.Pt(bw, bw))
	}

	return Cell{Image: cell, Name: src.Name, Opaque: !keepAlpha}, nil
}

// All normalizes every source image in order, failing fast on the first
// error. Partial output is never returned.
func All(srcs []grid.SourceImage, cfg grid.Config) ([]Cell, error) {
	cells := make([]Cell, 0, len(srcs))
	for _, src := range srcs {
		c, err := Image(src, cfg)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// fitAndCenter scales the image down to fit entirely within w x h, keeping
// its aspect ratio, then centers it on a backing of the full cell size. The
// backing is transparent in alpha mode and opaque white otherwise.
func fitAndCenter(src image.Image, w, h int, keepAlpha bool) *image.NRGBA {
	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	backing := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if keepAlpha {
		backing = color.NRGBA{}
	}
	return imaging.PasteCenter(imaging.New(w, h, backing), fitted)
}

// flattenWhite composites img onto an opaque white backing, discarding any
// transparency it carried.
func flattenWhite(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	backing := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return imaging.Overlay(backing, img, image.Pt(0, 0), 1.0)
}
