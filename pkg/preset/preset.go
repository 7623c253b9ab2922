// Package preset maps named presets to complete grid configurations.
//
// Applying a preset is a pure function: it returns a fresh Config and never
// mutates shared state. User preset files use the same TOML schema as the
// built-in set and are merged over it by name.
package preset

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/grid"
)

//go:embed presets.toml
var builtinTOML []byte

// spec is the TOML shape of one preset. Zero values fall back to the
// corresponding grid.Default() value during conversion.
type spec struct {
	Description string `toml:"description"`

	Rows       int `toml:"rows"`
	Cols       int `toml:"cols"`
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
	Spacing    int `toml:"spacing"`

	MaintainAspect       bool `toml:"maintain_aspect"`
	PreserveTransparency bool `toml:"preserve_transparency"`
	CenterLastRow        bool `toml:"center_last_row"`

	ColumnLabels        bool    `toml:"column_labels"`
	ColumnLabelPosition string  `toml:"column_label_position"`
	RowLabels           bool    `toml:"row_labels"`
	RowLabelPosition    string  `toml:"row_label_position"`
	RowLabelOrientation string  `toml:"row_label_orientation"`
	FontSize            float64 `toml:"font_size"`

	Border      bool   `toml:"border"`
	BorderWidth int    `toml:"border_width"`
	BorderColor string `toml:"border_color"`
	BorderStyle string `toml:"border_style"`

	Background        string `toml:"background"`
	BackgroundColor   string `toml:"background_color"`
	GradientStart     string `toml:"gradient_start"`
	GradientEnd       string `toml:"gradient_end"`
	GradientDirection string `toml:"gradient_direction"`
}

// Info describes a preset for listings.
type Info struct {
	Name        string
	Description string
}

// Library is a named set of presets.
type Library struct {
	specs map[string]spec
}

// Builtin returns the embedded preset library.
func Builtin() *Library {
	lib, err := parse(builtinTOML)
	if err != nil {
		// The embedded file is validated by tests; a parse failure here is
		// a build defect.
		panic(err)
	}
	return lib
}

// Load reads a user preset file and merges it over the built-in library.
// User presets with the same name replace built-in ones.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "read preset file %q", path)
	}
	user, err := parse(data)
	if err != nil {
		return nil, err
	}
	lib := Builtin()
	for name, s := range user.specs {
		lib.specs[name] = s
	}
	return lib, nil
}

func parse(data []byte) (*Library, error) {
	specs := map[string]spec{}
	if err := toml.Unmarshal(data, &specs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse presets")
	}
	return &Library{specs: specs}, nil
}

// Names returns the preset names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.specs))
	for name := range l.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns Info for every preset, sorted by name.
func (l *Library) List() []Info {
	infos := make([]Info, 0, len(l.specs))
	for _, name := range l.Names() {
		infos = append(infos, Info{Name: name, Description: l.specs[name].Description})
	}
	return infos
}

// Apply returns the full configuration for the named preset.
func (l *Library) Apply(name string) (grid.Config, error) {
	s, ok := l.specs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return grid.Config{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q (available: %s)", name, strings.Join(l.Names(), ", "))
	}
	return s.config()
}

// config converts the TOML spec into a validated Config.
func (s spec) config() (grid.Config, error) {
	cfg := grid.Default()

	if s.Rows > 0 {
		cfg.Grid.Rows = s.Rows
	}
	if s.Cols > 0 {
		cfg.Grid.Cols = s.Cols
	}
	if s.CellWidth > 0 {
		cfg.Grid.CellWidth = s.CellWidth
	}
	if s.CellHeight > 0 {
		cfg.Grid.CellHeight = s.CellHeight
	}
	cfg.Grid.Spacing = s.Spacing

	cfg.MaintainAspect = s.MaintainAspect
	cfg.PreserveTransparency = s.PreserveTransparency
	cfg.CenterLastRow = s.CenterLastRow

	cfg.ColumnLabels.Enabled = s.ColumnLabels
	cfg.RowLabels.Enabled = s.RowLabels
	if s.FontSize > 0 {
		cfg.ColumnLabels.FontSize = s.FontSize
		cfg.RowLabels.FontSize = s.FontSize
	}
	if s.ColumnLabelPosition != "" {
		p, err := grid.ParsePosition(grid.AxisColumns, s.ColumnLabelPosition)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "column_label_position")
		}
		cfg.ColumnLabels.Position = p
	}
	if s.RowLabelPosition != "" {
		p, err := grid.ParsePosition(grid.AxisRows, s.RowLabelPosition)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "row_label_position")
		}
		cfg.RowLabels.Position = p
	}
	if s.RowLabelOrientation != "" {
		o, err := grid.ParseOrientation(s.RowLabelOrientation)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "row_label_orientation")
		}
		cfg.RowLabels.Orientation = o
	}

	cfg.Border.Enabled = s.Border
	if s.BorderWidth > 0 {
		cfg.Border.Width = s.BorderWidth
	}
	if s.BorderColor != "" {
		c, err := grid.ParseHex(s.BorderColor)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "border_color")
		}
		cfg.Border.Color = c
	}
	if s.BorderStyle != "" {
		st, err := grid.ParseBorderStyle(s.BorderStyle)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "border_style")
		}
		cfg.Border.Style = st
	}

	if s.Background != "" {
		kind, err := grid.ParseBackgroundKind(s.Background)
		if err != nil {
			return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "background")
		}
		switch kind {
		case grid.BackgroundTransparent:
			cfg.Background = grid.TransparentBackground()
		case grid.BackgroundSolid:
			c := grid.White
			if s.BackgroundColor != "" {
				if c, err = grid.ParseHex(s.BackgroundColor); err != nil {
					return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "background_color")
				}
			}
			cfg.Background = grid.SolidBackground(c)
		case grid.BackgroundGradient:
			start, err := grid.ParseHex(s.GradientStart)
			if err != nil {
				return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "gradient_start")
			}
			end, err := grid.ParseHex(s.GradientEnd)
			if err != nil {
				return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "gradient_end")
			}
			dir := grid.GradientVertical
			if s.GradientDirection != "" {
				if dir, err = grid.ParseGradientDirection(s.GradientDirection); err != nil {
					return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "gradient_direction")
				}
			}
			cfg.Background = grid.GradientBackground(start, end, dir)
		}
	}

	return cfg, nil
}
