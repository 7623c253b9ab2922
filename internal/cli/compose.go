package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/fonts"
	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
	"github.com/ankit-kv/gridmaker/pkg/imgio"
	"github.com/ankit-kv/gridmaker/pkg/pipeline"
	"github.com/ankit-kv/gridmaker/pkg/preset"
)

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	output  string // output directory
	name    string // artifact base filename
	formats string // comma-separated output formats

	presetName  string // preset to start from
	presetsFile string // user preset file merged over the built-ins

	rows       int
	cols       int
	cellWidth  int
	cellHeight int
	spacing    int

	maintainAspect       bool
	preserveTransparency bool
	centerLastRow        bool

	background        string
	backgroundColor   string
	gradientStart     string
	gradientEnd       string
	gradientDirection string

	border      bool
	borderWidth int
	borderColor string
	borderStyle string

	colLabels        string
	colLabelPosition string
	rowLabels        string
	rowLabelPosition string
	rowOrientation   string
	labelColor       string
	fontFile         string
	fontName         string
	colFontSize      float64
	rowFontSize      float64

	order   string // explicit placement, comma-separated image indices
	quality int
}

// composeCommand creates the compose command for building grid images.
func (c *CLI) composeCommand() *cobra.Command {
	opts := composeOpts{
		rows:        5,
		cols:        3,
		cellWidth:   256,
		cellHeight:  256,
		spacing:     10,
		colFontSize: 16,
		rowFontSize: 16,
		quality:     pipeline.DefaultJPEGQuality,
	}

	cmd := &cobra.Command{
		Use:   "compose [images...]",
		Short: "Compose images into a grid and export it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd, args, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", ".", "output directory")
	f.StringVar(&opts.name, "name", imgio.DefaultBaseName, "artifact base filename")
	f.StringVarP(&opts.formats, "format", "f", "png", "output format(s): png, png-max, jpeg, webp, tiff, bmp, pdf (comma-separated)")
	f.StringVarP(&opts.presetName, "preset", "p", "", "start from a named preset")
	f.StringVar(&opts.presetsFile, "presets-file", "", "TOML file with additional presets")

	f.IntVar(&opts.rows, "rows", opts.rows, "number of grid rows")
	f.IntVar(&opts.cols, "cols", opts.cols, "number of grid columns")
	f.IntVar(&opts.cellWidth, "cell-width", opts.cellWidth, "cell width in pixels")
	f.IntVar(&opts.cellHeight, "cell-height", opts.cellHeight, "cell height in pixels")
	f.IntVar(&opts.spacing, "spacing", opts.spacing, "spacing between cells in pixels")

	f.BoolVar(&opts.maintainAspect, "aspect", false, "preserve aspect ratio (fit and pad instead of stretch)")
	f.BoolVar(&opts.preserveTransparency, "transparency", false, "preserve source alpha channels")
	f.BoolVar(&opts.centerLastRow, "center-last-row", false, "center a partially filled final row")

	f.StringVar(&opts.background, "background", "solid", "background: solid, transparent, gradient")
	f.StringVar(&opts.backgroundColor, "background-color", "#ffffff", "solid background color")
	f.StringVar(&opts.gradientStart, "gradient-start", "#ffffff", "gradient start color")
	f.StringVar(&opts.gradientEnd, "gradient-end", "#000000", "gradient end color")
	f.StringVar(&opts.gradientDirection, "gradient-direction", "vertical", "gradient direction: vertical, horizontal")

	f.BoolVar(&opts.border, "border", false, "draw a border around each cell")
	f.IntVar(&opts.borderWidth, "border-width", 3, "border width in pixels")
	f.StringVar(&opts.borderColor, "border-color", "#000000", "border color")
	f.StringVar(&opts.borderStyle, "border-style", "solid", "border style: solid, rounded, dashed")

	f.StringVar(&opts.colLabels, "col-labels", "", "column labels (comma-separated, blanks allowed)")
	f.StringVar(&opts.colLabelPosition, "col-label-position", "top", "column label position: top, bottom, both")
	f.StringVar(&opts.rowLabels, "row-labels", "", "row labels (comma-separated, blanks allowed)")
	f.StringVar(&opts.rowLabelPosition, "row-label-position", "left", "row label position: left, right, both")
	f.StringVar(&opts.rowOrientation, "row-label-orientation", "horizontal", "row label orientation: horizontal, vertical")
	f.StringVar(&opts.labelColor, "label-color", "#000000", "label text color")
	f.StringVar(&opts.fontFile, "font", "", "path to a .ttf font file")
	f.StringVar(&opts.fontName, "font-name", "", "system font name (e.g. DejaVuSans)")
	f.Float64Var(&opts.colFontSize, "col-font-size", opts.colFontSize, "column label font size")
	f.Float64Var(&opts.rowFontSize, "row-font-size", opts.rowFontSize, "row label font size")

	f.StringVar(&opts.order, "order", "", "placement order as comma-separated image indices")
	f.IntVar(&opts.quality, "quality", opts.quality, "JPEG quality (1-100)")

	return cmd
}

func (c *CLI) runCompose(cmd *cobra.Command, args []string, opts *composeOpts) error {
	cfg, err := opts.buildConfig(cmd)
	if err != nil {
		return err
	}

	images := make([]grid.SourceImage, 0, len(args))
	for _, path := range args {
		src, err := imgio.DecodeFile(path)
		if err != nil {
			return err
		}
		images = append(images, src)
	}

	formats, err := sink.ParseFormats(opts.formats)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse formats")
	}

	placement, err := parseOrder(opts.order)
	if err != nil {
		return err
	}

	var fontTTF []byte
	if opts.fontFile != "" {
		if fontTTF, err = os.ReadFile(opts.fontFile); err != nil {
			return errors.Wrap(errors.ErrCodeDecodeFont, err, "read font %q", opts.fontFile)
		}
	}

	popts := pipeline.Options{
		Config:      cfg,
		Images:      images,
		Placement:   placement,
		Font:        fonts.Source{TTF: fontTTF, Name: opts.fontName},
		Formats:     formats,
		JPEGQuality: opts.quality,
		Logger:      c.Logger,
	}

	spinner := newSpinner(cmd.Context(), fmt.Sprintf("composing %d images...", len(images)))
	spinner.Start()

	runner := pipeline.NewRunner(c.Logger)
	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("composed %dx%d grid (%dx%d px)",
		cfg.Grid.Rows, cfg.Grid.Cols, result.Stats.CanvasWidth, result.Stats.CanvasHeight))

	for _, warning := range result.Warnings {
		printWarning("%s", warning)
	}
	for format, encodeErr := range result.EncodeErrors {
		printWarning("%s export failed: %s", format, errors.UserMessage(encodeErr))
	}

	paths, err := imgio.WriteArtifacts(opts.output, opts.name, result.Artifacts)
	if err != nil {
		return err
	}
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// buildConfig assembles the grid configuration from the preset (if any)
// and the explicitly-set flags. Flags the user set always win over preset
// values.
func (o *composeOpts) buildConfig(cmd *cobra.Command) (grid.Config, error) {
	cfg := grid.Default()

	if o.presetName != "" {
		lib := preset.Builtin()
		if o.presetsFile != "" {
			var err error
			if lib, err = preset.Load(o.presetsFile); err != nil {
				return grid.Config{}, err
			}
		}
		var err error
		if cfg, err = lib.Apply(o.presetName); err != nil {
			return grid.Config{}, err
		}
	}

	changed := cmd.Flags().Changed

	if o.presetName == "" || changed("rows") {
		cfg.Grid.Rows = o.rows
	}
	if o.presetName == "" || changed("cols") {
		cfg.Grid.Cols = o.cols
	}
	if o.presetName == "" || changed("cell-width") {
		cfg.Grid.CellWidth = o.cellWidth
	}
	if o.presetName == "" || changed("cell-height") {
		cfg.Grid.CellHeight = o.cellHeight
	}
	if o.presetName == "" || changed("spacing") {
		cfg.Grid.Spacing = o.spacing
	}
	if changed("aspect") {
		cfg.MaintainAspect = o.maintainAspect
	}
	if changed("transparency") {
		cfg.PreserveTransparency = o.preserveTransparency
	}
	if changed("center-last-row") {
		cfg.CenterLastRow = o.centerLastRow
	}

	if changed("background") || changed("background-color") ||
		changed("gradient-start") || changed("gradient-end") || changed("gradient-direction") {
		bg, err := o.buildBackground()
		if err != nil {
			return grid.Config{}, err
		}
		cfg.Background = bg
	}

	if changed("border") {
		cfg.Border.Enabled = o.border
	}
	if changed("border-width") {
		cfg.Border.Width = o.borderWidth
	}
	if changed("border-color") {
		c, err := grid.ParseHex(o.borderColor)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "border color")
		}
		cfg.Border.Color = c
	}
	if changed("border-style") {
		s, err := grid.ParseBorderStyle(o.borderStyle)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "border style")
		}
		cfg.Border.Style = s
	}

	if err := o.applyLabels(cmd, &cfg); err != nil {
		return grid.Config{}, err
	}
	return cfg, nil
}

func (o *composeOpts) buildBackground() (grid.Background, error) {
	kind, err := grid.ParseBackgroundKind(o.background)
	if err != nil {
		return grid.Background{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "background")
	}
	switch kind {
	case grid.BackgroundTransparent:
		return grid.TransparentBackground(), nil
	case grid.BackgroundGradient:
		start, err := grid.ParseHex(o.gradientStart)
		if err != nil {
			return grid.Background{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "gradient start")
		}
		end, err := grid.ParseHex(o.gradientEnd)
		if err != nil {
			return grid.Background{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "gradient end")
		}
		dir, err := grid.ParseGradientDirection(o.gradientDirection)
		if err != nil {
			return grid.Background{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "gradient direction")
		}
		return grid.GradientBackground(start, end, dir), nil
	default:
		c, err := grid.ParseHex(o.backgroundColor)
		if err != nil {
			return grid.Background{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "background color")
		}
		return grid.SolidBackground(c), nil
	}
}

func (o *composeOpts) applyLabels(cmd *cobra.Command, cfg *grid.Config) error {
	labelColor, err := grid.ParseHex(o.labelColor)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "label color")
	}

	changed := cmd.Flags().Changed

	if changed("col-labels") {
		cfg.ColumnLabels.Enabled = true
		cfg.ColumnLabels.Texts = padLabels(splitLabels(o.colLabels), cfg.Grid.Cols)
	}
	if cfg.ColumnLabels.Enabled {
		// A preset keeps its own position and sizing unless the user
		// overrides them; labels enabled by flag take the flag defaults.
		fromFlag := changed("col-labels") && o.presetName == ""
		if fromFlag || changed("col-label-position") {
			pos, err := grid.ParsePosition(grid.AxisColumns, o.colLabelPosition)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "column label position")
			}
			cfg.ColumnLabels.Position = pos
		}
		if fromFlag || changed("col-font-size") {
			cfg.ColumnLabels.FontSize = o.colFontSize
		}
		if fromFlag || changed("label-color") {
			cfg.ColumnLabels.Color = labelColor
		}
	}

	if changed("row-labels") {
		cfg.RowLabels.Enabled = true
		cfg.RowLabels.Texts = padLabels(splitLabels(o.rowLabels), cfg.Grid.Rows)
	}
	if cfg.RowLabels.Enabled {
		fromFlag := changed("row-labels") && o.presetName == ""
		if fromFlag || changed("row-label-position") {
			pos, err := grid.ParsePosition(grid.AxisRows, o.rowLabelPosition)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "row label position")
			}
			cfg.RowLabels.Position = pos
		}
		if fromFlag || changed("row-label-orientation") {
			orient, err := grid.ParseOrientation(o.rowOrientation)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "row label orientation")
			}
			cfg.RowLabels.Orientation = orient
		}
		if fromFlag || changed("row-font-size") {
			cfg.RowLabels.FontSize = o.rowFontSize
		}
		if fromFlag || changed("label-color") {
			cfg.RowLabels.Color = labelColor
		}
	}
	return nil
}

// splitLabels splits a comma-separated label list, keeping blank entries so
// individual cells can stay unlabeled.
func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// padLabels pads or truncates the label list to exactly n entries.
func padLabels(labels []string, n int) []string {
	out := make([]string, n)
	copy(out, labels)
	return out
}

// parseOrder parses an explicit placement order like "2,0,1".
func parseOrder(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	order := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidPlacement, "invalid order entry %q", part)
		}
		order = append(order, idx)
	}
	return order, nil
}
