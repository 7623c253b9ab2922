package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// EncodePNG serializes the canvas as PNG with the default compression level.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGMax serializes the canvas as PNG with best compression. Slower
// than EncodePNG, smaller output, identical pixels.
func EncodePNGMax(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png-max: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG serializes the canvas as JPEG. The canvas is flattened onto
// white first; JPEG has no alpha channel.
func EncodeJPEG(img image.Image, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Flatten(img), &jpeg.Options{Quality: o.jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP serializes the canvas as lossless WebP.
func EncodeWebP(img image.Image) ([]byte, error) {
	enc, err := encoder.NewLosslessEncoderOptions(encoder.PresetDefault, 0)
	if err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, enc); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeTIFF serializes the canvas as deflate-compressed TIFF.
func EncodeTIFF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("encode tiff: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBMP serializes the canvas as BMP, flattened onto white; BMP output
// carries no transparency.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, Flatten(img)); err != nil {
		return nil, fmt.Errorf("encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}
