// Package imgio decodes uploaded image bytes into pipeline inputs and
// writes encoded artifacts back out.
//
// Decoding registers the formats the upload form accepts: PNG, JPEG, and
// GIF from the standard library, plus WebP, TIFF, and BMP decoders from
// golang.org/x/image.
package imgio

import (
	"bytes"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/grid"
)

// Decode sniffs and decodes one uploaded image. The error identifies the
// image by name; a decode failure aborts the whole render.
func Decode(name string, data []byte) (grid.SourceImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return grid.SourceImage{}, errors.Wrap(errors.ErrCodeDecodeImage, err, "cannot decode image %q", name)
	}
	return grid.SourceImage{
		Name:     name,
		Format:   format,
		Image:    img,
		HasAlpha: hasAlpha(img),
	}, nil
}

// DecodeFile reads and decodes an image from disk.
func DecodeFile(path string) (grid.SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.SourceImage{}, errors.Wrap(errors.ErrCodeDecodeImage, err, "cannot read image %q", path)
	}
	return Decode(path, data)
}

// hasAlpha reports whether the image carries any non-opaque pixel. Images
// whose color model has no alpha channel short-circuit to false.
func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
