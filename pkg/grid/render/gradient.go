package render

import (
	"image"
	"math"

	"github.com/ankit-kv/gridmaker/pkg/grid"
)

// gradient fills a canvas with a linear interpolation between the start and
// end colors. Each scanline (vertical) or pixel column (horizontal) gets a
// single interpolated color at ratio = position/extent.
func gradient(bg grid.Background, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	if bg.Direction == grid.GradientHorizontal {
		for x := 0; x < w; x++ {
			c := lerp(bg.Start, bg.End, float64(x)/float64(w))
			for y := 0; y < h; y++ {
				o := y*img.Stride + x*4
				img.Pix[o+0] = c.R
				img.Pix[o+1] = c.G
				img.Pix[o+2] = c.B
				img.Pix[o+3] = 0xff
			}
		}
		return img
	}

	for y := 0; y < h; y++ {
		c := lerp(bg.Start, bg.End, float64(y)/float64(h))
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = 0xff
		}
	}
	return img
}

// lerp interpolates per channel: round(c1*(1-ratio) + c2*ratio).
func lerp(c1, c2 grid.RGB, ratio float64) grid.RGB {
	return grid.RGB{
		R: channel(c1.R, c2.R, ratio),
		G: channel(c1.G, c2.G, ratio),
		B: channel(c1.B, c2.B, ratio),
	}
}

func channel(a, b uint8, ratio float64) uint8 {
	return uint8(math.Round(float64(a)*(1-ratio) + float64(b)*ratio))
}
