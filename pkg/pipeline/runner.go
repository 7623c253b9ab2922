package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/fonts"
	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/grid/layout"
	"github.com/ankit-kv/gridmaker/pkg/grid/normalize"
	"github.com/ankit-kv/gridmaker/pkg/grid/render"
	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
)

// Runner executes the compose pipeline. It is stateless except for the
// logger; multiple goroutines can safely share one Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → normalize → render → export pipeline.
//
// Configuration and decode problems abort before any canvas is allocated.
// Encode failures are isolated per format in Result.EncodeErrors; Execute
// returns an error for them only if every requested format failed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts:    make(map[sink.Format][]byte),
		EncodeErrors: make(map[sink.Format]error),
	}
	if warning, _ := opts.Config.CheckImageCount(len(opts.Images)); warning != "" {
		result.Warnings = append(result.Warnings, warning)
		r.Logger.Warn(warning)
	}

	faces, err := r.resolveFaces(opts, result)
	if err != nil {
		return nil, err
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	m := r.computeLayout(opts.Config, faces)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CanvasWidth = m.CanvasWidth
	result.Stats.CanvasHeight = m.CanvasHeight
	r.Logger.Debug("computed layout",
		"canvas", m.CanvasWidth, "x", m.CanvasHeight,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Normalize
	normStart := time.Now()
	cells, err := normalize.All(opts.orderedImages(), opts.Config)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeImage, err, "normalize images")
	}
	result.Stats.NormalizeTime = time.Since(normStart)
	result.Stats.CellCount = len(cells)
	r.Logger.Info("normalized images",
		"cells", len(cells),
		"duration", result.Stats.NormalizeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	canvas, err := render.Canvas(opts.Config, m, cells, faces)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render canvas")
	}
	result.Canvas = canvas
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Info("rendered canvas",
		"size", result.Stats.CanvasWidth, "x", result.Stats.CanvasHeight,
		"duration", result.Stats.RenderTime)

	// Stage 4: Export. Each format is an independent encode pass; one
	// failure does not invalidate the buffers already produced.
	exportStart := time.Now()
	for _, f := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := sink.Encode(canvas, f, sink.WithJPEGQuality(opts.JPEGQuality))
		if err != nil {
			wrapped := errors.Wrap(errors.ErrCodeEncode, err, "encode %s", f)
			result.EncodeErrors[f] = wrapped
			r.Logger.Error("encode failed", "format", f, "err", err)
			continue
		}
		result.Artifacts[f] = data
	}
	result.Stats.ExportTime = time.Since(exportStart)
	r.Logger.Info("exported artifacts",
		"formats", len(result.Artifacts),
		"duration", result.Stats.ExportTime)

	if len(result.Artifacts) == 0 && len(result.EncodeErrors) > 0 {
		for _, err := range result.EncodeErrors {
			return result, err
		}
	}
	return result, nil
}

// resolveFaces loads the label faces for both axes. Font problems degrade
// to the built-in face with a warning.
func (r *Runner) resolveFaces(opts Options, result *Result) (render.Faces, error) {
	var faces render.Faces

	if opts.Config.ColumnLabels.Active() {
		face, fallback, err := fonts.Face(opts.Font, opts.Config.ColumnLabels.FontSize)
		faces.Columns = face
		r.noteFallback(result, fallback, err)
	}
	if opts.Config.RowLabels.Active() {
		face, fallback, err := fonts.Face(opts.Font, opts.Config.RowLabels.FontSize)
		faces.Rows = face
		r.noteFallback(result, fallback, err)
	}
	return faces, nil
}

func (r *Runner) noteFallback(result *Result, fallback bool, err error) {
	if !fallback || result.FontFallback {
		return
	}
	result.FontFallback = true
	msg := "requested font unavailable, using built-in face"
	if err != nil {
		msg = errors.UserMessage(err)
	}
	result.Warnings = append(result.Warnings, msg)
	r.Logger.Warn(msg)
}

// computeLayout builds the measurers and runs the layout calculator.
func (r *Runner) computeLayout(cfg grid.Config, faces render.Faces) layout.Metrics {
	var colM, rowM layout.TextMeasurer
	if faces.Columns != nil {
		colM = fonts.NewMeasurer(faces.Columns)
	}
	if faces.Rows != nil {
		rowM = fonts.NewMeasurer(faces.Rows)
	}
	return layout.Compute(cfg, colM, rowM)
}
