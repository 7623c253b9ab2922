// Package sink serializes a composited canvas into the supported output
// encodings.
//
// Each encoder is an independent pass over the same immutable canvas; no
// state is shared between formats and nothing is cached. Formats without
// an alpha channel (JPEG, BMP, and the PDF's embedded raster) flatten the
// canvas onto opaque white first.
package sink

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Format identifies an output encoding.
type Format string

// Supported output formats.
const (
	FormatPNG    Format = "png"
	FormatPNGMax Format = "png-max" // best-compression PNG variant
	FormatJPEG   Format = "jpeg"
	FormatWebP   Format = "webp"
	FormatTIFF   Format = "tiff"
	FormatBMP    Format = "bmp"
	FormatPDF    Format = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[Format]bool{
	FormatPNG:    true,
	FormatPNGMax: true,
	FormatJPEG:   true,
	FormatWebP:   true,
	FormatTIFF:   true,
	FormatBMP:    true,
	FormatPDF:    true,
}

// formatAliases maps common alternate spellings to canonical formats.
var formatAliases = map[string]Format{
	"jpg": FormatJPEG,
	"tif": FormatTIFF,
}

// ParseFormat parses a format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	f := Format(name)
	if !ValidFormats[f] {
		return "", fmt.Errorf("invalid format: %q (must be one of: png, png-max, jpeg, webp, tiff, bmp, pdf)", s)
	}
	return f, nil
}

// ParseFormats parses a comma-separated format list.
func ParseFormats(s string) ([]Format, error) {
	if strings.TrimSpace(s) == "" {
		return []Format{FormatPNG}, nil
	}
	var formats []Format
	for _, part := range strings.Split(s, ",") {
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// MIME returns the media type for the format.
func (f Format) MIME() string {
	switch f {
	case FormatPNG, FormatPNGMax:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatTIFF:
		return "image/tiff"
	case FormatBMP:
		return "image/bmp"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPNGMax:
		return "png"
	case FormatJPEG:
		return "jpg"
	default:
		return string(f)
	}
}

// Filename returns a suggested download filename for the format.
func (f Format) Filename(base string) string {
	if f == FormatPNGMax {
		base += "_max"
	}
	return base + "." + f.Ext()
}

// Encode serializes the canvas in the given format.
func Encode(img image.Image, f Format, opts ...Option) ([]byte, error) {
	switch f {
	case FormatPNG:
		return EncodePNG(img)
	case FormatPNGMax:
		return EncodePNGMax(img)
	case FormatJPEG:
		return EncodeJPEG(img, opts...)
	case FormatWebP:
		return EncodeWebP(img)
	case FormatTIFF:
		return EncodeTIFF(img)
	case FormatBMP:
		return EncodeBMP(img)
	case FormatPDF:
		return EncodePDF(img, opts...)
	}
	return nil, fmt.Errorf("unsupported format: %s", f)
}

// Option configures an encode pass.
type Option func(*encodeOptions)

type encodeOptions struct {
	jpegQuality int
	pdfMarginPt float64
}

// WithJPEGQuality sets the JPEG quality (1-100, default 90).
func WithJPEGQuality(q int) Option {
	return func(o *encodeOptions) { o.jpegQuality = q }
}

// WithPDFMargin sets the PDF page margin in points (default 36).
func WithPDFMargin(pt float64) Option {
	return func(o *encodeOptions) { o.pdfMarginPt = pt }
}

func applyOptions(opts []Option) encodeOptions {
	o := encodeOptions{jpegQuality: 90, pdfMarginPt: 36}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Flatten composites the canvas onto an opaque white background, discarding
// transparency. Canvases that are already fully opaque are returned cloned.
func Flatten(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	if opaque(src) {
		return src
	}
	b := src.Bounds()
	backing := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return imaging.Overlay(backing, src, image.Pt(0, 0), 1.0)
}

func opaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}
