// Package pipeline runs the complete image grid composition pass.
//
// This package implements the layout → normalize → render → export pipeline
// shared by the CLI and the HTTP surface. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Layout: compute label margins, cell extents, and the canvas size
//  2. Normalize: resize, pad, and border each source image to the cell size
//  3. Render: allocate the background canvas, draw labels, paste cells
//  4. Export: serialize the canvas in the requested formats
//
// Each run is a pure function of its Options: no stage keeps state across
// invocations and nothing is cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Config:  grid.Default(),
//	    Images:  images,
//	    Formats: []sink.Format{sink.FormatPNG, sink.FormatPDF},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts[sink.FormatPNG]
package pipeline

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/fonts"
	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
)

// Default values shared by the CLI and HTTP surfaces.
const (
	// DefaultJPEGQuality is the JPEG quality used when none is given.
	DefaultJPEGQuality = 90
)

// DefaultFormats is the format list used when none is requested.
var DefaultFormats = []sink.Format{sink.FormatPNG}

// Options contains all configuration for one compose run.
type Options struct {
	// Config is the full grid configuration.
	Config grid.Config

	// Images are the decoded source images in upload order.
	Images []grid.SourceImage

	// Placement optionally reorders Images: Placement[slot] is the index
	// of the image placed in that slot. Nil keeps the upload order. The
	// arrangement must be an exact permutation of the images.
	Placement []int

	// Font selects the label font: explicit TTF bytes win over a named
	// system font; the built-in face is the final fallback.
	Font fonts.Source

	// Formats are the requested output encodings.
	Formats []sink.Format

	// JPEGQuality applies to the jpeg format only (1-100).
	JPEGQuality int

	// Logger receives stage progress. Defaults to a discard logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	if _, err := o.Config.CheckImageCount(len(o.Images)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid image count")
	}
	if o.Placement != nil {
		if err := grid.ValidatePlacement(o.Placement, len(o.Images)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPlacement, err, "invalid arrangement")
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	for _, f := range o.Formats {
		if !sink.ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", f)
		}
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "jpeg quality must be 1-100, got %d", o.JPEGQuality)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// orderedImages returns the images in placement order.
func (o *Options) orderedImages() []grid.SourceImage {
	if o.Placement == nil {
		return o.Images
	}
	ordered := make([]grid.SourceImage, len(o.Images))
	for slot, idx := range o.Placement {
		ordered[slot] = o.Images[idx]
	}
	return ordered
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canvas is the composited bitmap, for on-screen preview.
	Canvas *image.NRGBA

	// Artifacts contains the encoded outputs keyed by format.
	Artifacts map[sink.Format][]byte

	// EncodeErrors holds per-format encode failures. A failed format never
	// discards artifacts that were already produced.
	EncodeErrors map[sink.Format]error

	// Warnings are non-fatal conditions: fewer images than slots, font
	// fallback.
	Warnings []string

	// FontFallback is true when the built-in face replaced the requested
	// font.
	FontFallback bool

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount     int
	CanvasWidth   int
	CanvasHeight  int
	LayoutTime    time.Duration
	NormalizeTime time.Duration
	RenderTime    time.Duration
	ExportTime    time.Duration
}
