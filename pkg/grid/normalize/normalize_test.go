package normalize

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ankit-kv/gridmaker/pkg/grid"
)

func solidSource(name string, w, h int, c color.NRGBA) grid.SourceImage {
	return grid.SourceImage{
		Name:     name,
		Format:   "png",
		Image:    imaging.New(w, h, c),
		HasAlpha: c.A != 0xff,
	}
}

func cellConfig(w, h int) grid.Config {
	cfg := grid.Default()
	cfg.Grid.CellWidth = w
	cfg.Grid.CellHeight = h
	return cfg
}

func TestImageScaleToFill(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
	}{
		{name: "downscale", srcW: 640, srcH: 480},
		{name: "upscale", srcW: 40, srcH: 30},
		{name: "stretch wide", srcW: 500, srcH: 100},
		{name: "exact", srcW: 100, srcH: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cellConfig(100, 80)
			src := solidSource("in.png", tt.srcW, tt.srcH, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})

			cell, err := Image(src, cfg)
			if err != nil {
				t.Fatalf("Image() error: %v", err)
			}
			if got := cell.Image.Bounds(); got.Dx() != 100 || got.Dy() != 80 {
				t.Errorf("cell size = %dx%d, want 100x80", got.Dx(), got.Dy())
			}
			if !cell.Opaque {
				t.Error("opaque source should produce an opaque cell")
			}
		})
	}
}

func TestImageMaintainAspect(t *testing.T) {
	cfg := cellConfig(100, 100)
	cfg.MaintainAspect = true

	// A 200x100 source fits as 100x50, centered vertically on white.
	src := solidSource("wide.png", 200, 100, color.NRGBA{R: 0, G: 0, B: 0xff, A: 0xff})
	cell, err := Image(src, cfg)
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	if got := cell.Image.Bounds(); got.Dx() != 100 || got.Dy() != 100 {
		t.Fatalf("cell size = %dx%d, want 100x100", got.Dx(), got.Dy())
	}

	// Top rows are white padding; the middle is the (blue) image.
	if got := cell.Image.NRGBAAt(50, 5); got != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("padding pixel = %v, want white", got)
	}
	if got := cell.Image.NRGBAAt(50, 50); got != (color.NRGBA{0, 0, 0xff, 0xff}) {
		t.Errorf("center pixel = %v, want blue", got)
	}
}

func TestImageTransparencyElection(t *testing.T) {
	tests := []struct {
		name       string
		preserve   bool
		srcAlpha   uint8
		wantOpaque bool
	}{
		{name: "preserve with alpha source", preserve: true, srcAlpha: 0x80, wantOpaque: false},
		{name: "preserve with opaque source", preserve: true, srcAlpha: 0xff, wantOpaque: true},
		{name: "no preserve with alpha source", preserve: false, srcAlpha: 0x80, wantOpaque: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cellConfig(50, 50)
			cfg.PreserveTransparency = tt.preserve
			src := solidSource("a.png", 50, 50, color.NRGBA{R: 100, G: 100, B: 100, A: tt.srcAlpha})

			cell, err := Image(src, cfg)
			if err != nil {
				t.Fatalf("Image() error: %v", err)
			}
			if cell.Opaque != tt.wantOpaque {
				t.Errorf("Opaque = %v, want %v", cell.Opaque, tt.wantOpaque)
			}
			if !tt.wantOpaque {
				return
			}
			// Flattened cells must carry full alpha everywhere.
			if got := cell.Image.NRGBAAt(25, 25).A; got != 0xff {
				t.Errorf("flattened alpha = %d, want 255", got)
			}
		})
	}
}

func TestImageBorder(t *testing.T) {
	cfg := cellConfig(100, 100)
	cfg.Border = grid.BorderSpec{Enabled: true, Width: 5, Color: grid.RGB{R: 0xff}, Style: grid.BorderSolid}

	src := solidSource("b.png", 100, 100, color.NRGBA{R: 0, G: 0xff, B: 0, A: 0xff})
	cell, err := Image(src, cfg)
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}

	if got := cell.Image.Bounds(); got.Dx() != 110 || got.Dy() != 110 {
		t.Fatalf("bordered cell = %dx%d, want 110x110", got.Dx(), got.Dy())
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	green := color.NRGBA{G: 0xff, A: 0xff}
	ring := []image.Point{{0, 0}, {109, 0}, {0, 109}, {109, 109}, {2, 55}, {107, 55}, {55, 2}, {55, 107}}
	for _, p := range ring {
		if got := cell.Image.NRGBAAt(p.X, p.Y); got != red {
			t.Errorf("ring pixel %v = %v, want border red", p, got)
		}
	}
	inner := []image.Point{{5, 5}, {55, 55}, {104, 104}}
	for _, p := range inner {
		if got := cell.Image.NRGBAAt(p.X, p.Y); got != green {
			t.Errorf("inner pixel %v = %v, want source green", p, got)
		}
	}
}

func TestImageErrors(t *testing.T) {
	cfg := cellConfig(10, 10)

	if _, err := Image(grid.SourceImage{Name: "nil.png"}, cfg); err == nil {
		t.Error("nil bitmap should fail")
	}

	empty := grid.SourceImage{Name: "empty.png", Image: image.NewNRGBA(image.Rect(0, 0, 0, 0))}
	if _, err := Image(empty, cfg); err == nil {
		t.Error("empty bitmap should fail")
	}
}

func TestAllFailsFast(t *testing.T) {
	cfg := cellConfig(10, 10)
	srcs := []grid.SourceImage{
		solidSource("ok.png", 20, 20, color.NRGBA{A: 0xff}),
		{Name: "broken.png"},
	}

	cells, err := All(srcs, cfg)
	if err == nil {
		t.Fatal("All() should fail when any image fails")
	}
	if cells != nil {
		t.Error("partial output returned on failure")
	}
}
