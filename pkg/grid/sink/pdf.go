package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"
)

// PDF page geometry, in points (1/72 inch). A4 portrait.
const (
	pdfPageW = 595.28
	pdfPageH = 841.89

	// rasterDPI converts canvas pixels to points for the embedded image.
	rasterDPI = 96.0
)

// EncodePDF wraps the canvas in a single-page PDF. The raster is embedded
// as a flattened PNG, scaled uniformly to fit inside the page margin but
// never upscaled beyond 100%, and centered on the page.
func EncodePDF(img image.Image, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)

	pngData, err := EncodePNG(Flatten(img))
	if err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}

	b := img.Bounds()
	wPt := float64(b.Dx()) * 72.0 / rasterDPI
	hPt := float64(b.Dy()) * 72.0 / rasterDPI

	availW := pdfPageW - 2*o.pdfMarginPt
	availH := pdfPageH - 2*o.pdfMarginPt
	scale := 1.0
	if s := availW / wPt; s < scale {
		scale = s
	}
	if s := availH / hPt; s < scale {
		scale = s
	}
	wPt *= scale
	hPt *= scale

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", imgOpts, bytes.NewReader(pngData))
	pdf.ImageOptions("canvas", (pdfPageW-wPt)/2, (pdfPageH-hPt)/2, wPt, hPt, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
