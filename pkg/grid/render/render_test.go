package render

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/grid/layout"
	"github.com/ankit-kv/gridmaker/pkg/grid/normalize"
)

func TestGradientVertical(t *testing.T) {
	bg := grid.GradientBackground(grid.White, grid.Black, grid.GradientVertical)
	img := gradient(bg, 10, 100)

	if got := img.NRGBAAt(5, 0); got != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("row 0 = %v, want white", got)
	}
	last := img.NRGBAAt(5, 99)
	if last.R > 5 || last.G > 5 || last.B > 5 {
		t.Errorf("row 99 = %v, want near-black", last)
	}
	mid := img.NRGBAAt(5, 50)
	for _, ch := range []uint8{mid.R, mid.G, mid.B} {
		if ch < 126 || ch > 129 {
			t.Errorf("row 50 = %v, want mid-gray", mid)
		}
	}
	// Every pixel in a scanline is identical.
	if img.NRGBAAt(0, 42) != img.NRGBAAt(9, 42) {
		t.Error("scanline is not uniform")
	}
}

func TestGradientHorizontal(t *testing.T) {
	bg := grid.GradientBackground(grid.RGB{R: 0xff}, grid.RGB{B: 0xff}, grid.GradientHorizontal)
	img := gradient(bg, 100, 10)

	if got := img.NRGBAAt(0, 5); got != (color.NRGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("col 0 = %v, want red", got)
	}
	last := img.NRGBAAt(99, 5)
	if last.R > 5 || last.B < 250 {
		t.Errorf("col 99 = %v, want near-blue", last)
	}
	if img.NRGBAAt(42, 0) != img.NRGBAAt(42, 9) {
		t.Error("pixel column is not uniform")
	}
}

func TestBackgroundVariants(t *testing.T) {
	tests := []struct {
		name string
		bg   grid.Background
		want color.NRGBA
	}{
		{name: "solid", bg: grid.SolidBackground(grid.RGB{R: 1, G: 2, B: 3}), want: color.NRGBA{1, 2, 3, 0xff}},
		{name: "transparent", bg: grid.TransparentBackground(), want: color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := background(tt.bg, 20, 20)
			if got := img.NRGBAAt(10, 10); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func testConfig() grid.Config {
	cfg := grid.Default()
	cfg.Grid = grid.GridSpec{Rows: 2, Cols: 3, CellWidth: 20, CellHeight: 20, Spacing: 10}
	return cfg
}

func solidCell(c color.NRGBA, w, h int) normalize.Cell {
	return normalize.Cell{Image: imaging.New(w, h, c), Opaque: c.A == 0xff}
}

func TestCanvasCellPlacement(t *testing.T) {
	cfg := testConfig()
	m := layout.Compute(cfg, nil, nil)

	red := color.NRGBA{R: 0xff, A: 0xff}
	cells := make([]normalize.Cell, 6)
	for i := range cells {
		cells[i] = solidCell(red, 20, 20)
	}

	canvas, err := Canvas(cfg, m, cells, Faces{})
	if err != nil {
		t.Fatalf("Canvas() error: %v", err)
	}
	if got := canvas.Bounds(); got.Dx() != m.CanvasWidth || got.Dy() != m.CanvasHeight {
		t.Fatalf("canvas = %dx%d, want %dx%d", got.Dx(), got.Dy(), m.CanvasWidth, m.CanvasHeight)
	}

	// Cell interiors are red, spacing stays background white.
	if got := canvas.NRGBAAt(10, 10); got != red {
		t.Errorf("cell (0,0) pixel = %v, want red", got)
	}
	if got := canvas.NRGBAAt(10+30, 10+30); got != red {
		t.Errorf("cell (1,1) pixel = %v, want red", got)
	}
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	if got := canvas.NRGBAAt(25, 10); got != white {
		t.Errorf("spacing pixel = %v, want background white", got)
	}
}

func TestCanvasPartialLastRowGaps(t *testing.T) {
	cfg := testConfig()
	m := layout.Compute(cfg, nil, nil)

	blue := color.NRGBA{B: 0xff, A: 0xff}
	cells := []normalize.Cell{
		solidCell(blue, 20, 20), solidCell(blue, 20, 20), solidCell(blue, 20, 20),
		solidCell(blue, 20, 20),
	}

	canvas, err := Canvas(cfg, m, cells, Faces{})
	if err != nil {
		t.Fatalf("Canvas() error: %v", err)
	}

	// Unfilled trailing cells remain background-colored gaps.
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	if got := canvas.NRGBAAt(40, 40); got != white {
		t.Errorf("empty slot pixel = %v, want white", got)
	}
	if got := canvas.NRGBAAt(10, 40); got != blue {
		t.Errorf("cell (1,0) pixel = %v, want blue", got)
	}
}

func TestCanvasCenterLastRow(t *testing.T) {
	cfg := testConfig()
	cfg.CenterLastRow = true
	m := layout.Compute(cfg, nil, nil)

	blue := color.NRGBA{B: 0xff, A: 0xff}
	cells := []normalize.Cell{
		solidCell(blue, 20, 20), solidCell(blue, 20, 20), solidCell(blue, 20, 20),
		solidCell(blue, 20, 20),
	}

	canvas, err := Canvas(cfg, m, cells, Faces{})
	if err != nil {
		t.Fatalf("Canvas() error: %v", err)
	}

	// Full row width = 3*20 + 2*10 = 80; one image centered at x = 30..50.
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	if got := canvas.NRGBAAt(40, 40); got != blue {
		t.Errorf("centered cell pixel = %v, want blue", got)
	}
	if got := canvas.NRGBAAt(10, 40); got != white {
		t.Errorf("left gap pixel = %v, want white", got)
	}
	if got := canvas.NRGBAAt(70, 40); got != white {
		t.Errorf("right gap pixel = %v, want white", got)
	}
}

func TestCanvasAlphaCompositing(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = grid.GridSpec{Rows: 1, Cols: 1, CellWidth: 10, CellHeight: 10, Spacing: 0}
	cfg.Background = grid.SolidBackground(grid.Black)
	m := layout.Compute(cfg, nil, nil)

	// A half-transparent white cell over black should land mid-gray.
	cells := []normalize.Cell{solidCell(color.NRGBA{0xff, 0xff, 0xff, 0x80}, 10, 10)}
	canvas, err := Canvas(cfg, m, cells, Faces{})
	if err != nil {
		t.Fatalf("Canvas() error: %v", err)
	}
	got := canvas.NRGBAAt(5, 5)
	if got.R < 0x70 || got.R > 0x90 {
		t.Errorf("composited pixel = %v, want mid-gray blend", got)
	}
	if got.A != 0xff {
		t.Errorf("composited alpha = %d, want opaque", got.A)
	}
}

func TestCanvasTooManyCells(t *testing.T) {
	cfg := testConfig()
	m := layout.Compute(cfg, nil, nil)
	cells := make([]normalize.Cell, 7)
	for i := range cells {
		cells[i] = solidCell(color.NRGBA{A: 0xff}, 20, 20)
	}
	if _, err := Canvas(cfg, m, cells, Faces{}); err == nil {
		t.Error("more cells than slots should fail")
	}
}
