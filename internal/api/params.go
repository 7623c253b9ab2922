package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
	"github.com/ankit-kv/gridmaker/pkg/preset"
)

// composeParams is the decoded form of a compose request.
type composeParams struct {
	config    grid.Config
	formats   []sink.Format
	placement []int
	quality   int
	fontName  string
	baseName  string
}

// parseParams builds the grid configuration from the multipart form values.
// A preset, when given, supplies the starting configuration; any other form
// value overrides the corresponding preset field.
func parseParams(form url.Values) (composeParams, error) {
	p := composeParams{
		config:   grid.Default(),
		quality:  0, // pipeline default
		baseName: "image_grid",
	}

	if name := form.Get("preset"); name != "" {
		cfg, err := preset.Builtin().Apply(name)
		if err != nil {
			return p, err
		}
		p.config = cfg
	}
	if name := form.Get("name"); name != "" {
		if err := errors.ValidateArtifactName(name); err != nil {
			return p, err
		}
		p.baseName = name
	}

	if err := parseGridParams(form, &p.config); err != nil {
		return p, err
	}
	if err := parseBackgroundParams(form, &p.config); err != nil {
		return p, err
	}
	if err := parseBorderParams(form, &p.config); err != nil {
		return p, err
	}
	if err := parseLabelParams(form, &p.config); err != nil {
		return p, err
	}

	if v := form.Get("format"); v != "" {
		formats, err := sink.ParseFormats(v)
		if err != nil {
			return p, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse formats")
		}
		p.formats = formats
	}
	if v := form.Get("quality"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New(errors.ErrCodeInvalidConfig, "invalid quality %q", v)
		}
		p.quality = q
	}
	if v := form.Get("order"); v != "" {
		placement, err := parsePlacement(v)
		if err != nil {
			return p, err
		}
		p.placement = placement
	}
	p.fontName = form.Get("font")

	return p, nil
}

func parseGridParams(form url.Values, cfg *grid.Config) error {
	ints := []struct {
		key  string
		dest *int
	}{
		{"rows", &cfg.Grid.Rows},
		{"cols", &cfg.Grid.Cols},
		{"cell_width", &cfg.Grid.CellWidth},
		{"cell_height", &cfg.Grid.CellHeight},
		{"spacing", &cfg.Grid.Spacing},
	}
	for _, field := range ints {
		v := form.Get(field.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid %s %q", field.key, v)
		}
		*field.dest = n
	}

	bools := []struct {
		key  string
		dest *bool
	}{
		{"aspect", &cfg.MaintainAspect},
		{"transparency", &cfg.PreserveTransparency},
		{"center_last_row", &cfg.CenterLastRow},
	}
	for _, field := range bools {
		v := form.Get(field.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid %s %q", field.key, v)
		}
		*field.dest = b
	}
	return nil
}

func parseBackgroundParams(form url.Values, cfg *grid.Config) error {
	v := form.Get("background")
	if v == "" {
		return nil
	}
	kind, err := grid.ParseBackgroundKind(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "background")
	}
	switch kind {
	case grid.BackgroundTransparent:
		cfg.Background = grid.TransparentBackground()
	case grid.BackgroundGradient:
		start, err := parseHexParam(form, "gradient_start", grid.White)
		if err != nil {
			return err
		}
		end, err := parseHexParam(form, "gradient_end", grid.Black)
		if err != nil {
			return err
		}
		dir := grid.GradientVertical
		if d := form.Get("gradient_direction"); d != "" {
			if dir, err = grid.ParseGradientDirection(d); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gradient direction")
			}
		}
		cfg.Background = grid.GradientBackground(start, end, dir)
	default:
		c, err := parseHexParam(form, "background_color", grid.White)
		if err != nil {
			return err
		}
		cfg.Background = grid.SolidBackground(c)
	}
	return nil
}

func parseBorderParams(form url.Values, cfg *grid.Config) error {
	v := form.Get("border")
	if v == "" {
		return nil
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid border %q", v)
	}
	cfg.Border.Enabled = enabled
	if !enabled {
		return nil
	}
	if w := form.Get("border_width"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid border_width %q", w)
		}
		cfg.Border.Width = n
	}
	if c := form.Get("border_color"); c != "" {
		rgb, err := grid.ParseHex(c)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "border color")
		}
		cfg.Border.Color = rgb
	}
	if s := form.Get("border_style"); s != "" {
		style, err := grid.ParseBorderStyle(s)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "border style")
		}
		cfg.Border.Style = style
	}
	return nil
}

func parseLabelParams(form url.Values, cfg *grid.Config) error {
	color, err := parseHexParam(form, "label_color", grid.Black)
	if err != nil {
		return err
	}

	if v, ok := form["col_labels"]; ok {
		cfg.ColumnLabels.Enabled = true
		cfg.ColumnLabels.Texts = padTexts(splitTexts(v[0]), cfg.Grid.Cols)
		cfg.ColumnLabels.Color = color
		cfg.ColumnLabels.Position = grid.PositionTop
		cfg.ColumnLabels.FontSize = 16
		if p := form.Get("col_label_position"); p != "" {
			if cfg.ColumnLabels.Position, err = grid.ParsePosition(grid.AxisColumns, p); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "column label position")
			}
		}
		if s := form.Get("col_font_size"); s != "" {
			if cfg.ColumnLabels.FontSize, err = strconv.ParseFloat(s, 64); err != nil {
				return errors.New(errors.ErrCodeInvalidConfig, "invalid col_font_size %q", s)
			}
		}
	}

	if v, ok := form["row_labels"]; ok {
		cfg.RowLabels.Enabled = true
		cfg.RowLabels.Texts = padTexts(splitTexts(v[0]), cfg.Grid.Rows)
		cfg.RowLabels.Color = color
		cfg.RowLabels.Position = grid.PositionLeft
		cfg.RowLabels.Orientation = grid.OrientationHorizontal
		cfg.RowLabels.FontSize = 16
		if p := form.Get("row_label_position"); p != "" {
			if cfg.RowLabels.Position, err = grid.ParsePosition(grid.AxisRows, p); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "row label position")
			}
		}
		if o := form.Get("row_label_orientation"); o != "" {
			if cfg.RowLabels.Orientation, err = grid.ParseOrientation(o); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "row label orientation")
			}
		}
		if s := form.Get("row_font_size"); s != "" {
			if cfg.RowLabels.FontSize, err = strconv.ParseFloat(s, 64); err != nil {
				return errors.New(errors.ErrCodeInvalidConfig, "invalid row_font_size %q", s)
			}
		}
	}
	return nil
}

func parseHexParam(form url.Values, key string, fallback grid.RGB) (grid.RGB, error) {
	v := form.Get(key)
	if v == "" {
		return fallback, nil
	}
	c, err := grid.ParseHex(v)
	if err != nil {
		return grid.RGB{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
	}
	return c, nil
}

func parsePlacement(s string) ([]int, error) {
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

func splitTexts(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func padTexts(texts []string, n int) []string {
	out := make([]string, n)
	copy(out, texts)
	return out
}
