// Package pkg provides the core libraries for the gridmaker image grid compositor.
//
// # Overview
//
// Gridmaker arranges a set of images into a labeled grid and exports it in
// multiple formats. The pkg directory is organized into four main areas:
//
//  1. [grid] - Domain types and the composition stages (layout, normalize, render, sink)
//  2. [pipeline] - Orchestration (layout → normalize → render → export)
//  3. [preset] - Named grid configurations loaded from TOML
//  4. [fonts] / [imgio] - Label font resolution and image decode/write helpers
//
// # Architecture
//
// The typical data flow through gridmaker:
//
//	Source images (PNG/JPEG/WebP/TIFF/BMP/GIF)
//	         ↓
//	    [imgio] package (decode, alpha detection)
//	         ↓
//	    [grid/layout] package (label margins, cell extents, canvas size)
//	         ↓
//	    [grid/normalize] package (resize, pad, border each cell)
//	         ↓
//	    [grid/render] package (background, labels, cell placement)
//	         ↓
//	    [grid/sink] package (PNG/JPEG/WebP/TIFF/BMP/PDF output)
//
// # Quick Start
//
// Compose a grid and export it as PNG:
//
//	import (
//	    "context"
//	    "github.com/ankit-kv/gridmaker/pkg/grid"
//	    "github.com/ankit-kv/gridmaker/pkg/grid/sink"
//	    "github.com/ankit-kv/gridmaker/pkg/pipeline"
//	)
//
//	cfg := grid.Default()
//	cfg.Grid.Rows, cfg.Grid.Cols = 2, 3
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Config:  cfg,
//	    Images:  images,
//	    Formats: []sink.Format{sink.FormatPNG},
//	})
//	if err != nil {
//	    return err
//	}
//	data := result.Artifacts[sink.FormatPNG]
//
// # Main Packages
//
// [grid] - Domain types: grid geometry, label specs, borders, backgrounds,
// colors, and configuration validation.
//
// [grid/layout] - Pure layout arithmetic. Measures label text to size the
// canvas margins and computes cell origins, including centered final rows.
//
// [grid/normalize] - Per-cell image preparation: stretch or fit-and-pad to
// the cell size, alpha flattening, and border rings.
//
// [grid/render] - Canvas composition: solid, transparent, or gradient
// backgrounds, column and row labels (horizontal or rotated), cell pasting.
//
// [grid/sink] - Export encoders for png, png-max, jpeg, webp, tiff, bmp,
// and pdf. Formats without alpha support flatten onto white.
//
// [pipeline] - Complete composition pipeline used by the CLI and the HTTP
// server. Ensures consistent behavior across all entry points.
//
// [preset] - Built-in and user-supplied TOML presets mapping a name to a
// full grid configuration.
//
// [fonts] - Label font resolution: explicit TTF bytes, system font lookup,
// and the embedded fallback face, plus text measurement.
//
// [imgio] - Decoding uploads and files into source images and writing
// encoded artifacts to disk.
//
// [errors] - Structured errors with stable codes shared by the CLI and the
// HTTP server.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/grid/layout/...  # Specific package
//
// [grid]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/grid
// [grid/layout]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/grid/layout
// [grid/normalize]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/grid/normalize
// [grid/render]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/grid/render
// [grid/sink]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/grid/sink
// [pipeline]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/pipeline
// [preset]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/preset
// [fonts]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/fonts
// [imgio]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/imgio
// [errors]: https://pkg.go.dev/github.com/ankit-kv/gridmaker/pkg/errors
package pkg
