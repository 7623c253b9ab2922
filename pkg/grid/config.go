package grid

import (
	"fmt"
)

// Config is the complete, immutable configuration for one compose run.
// It is constructed once (from flags, a preset, or a form submission),
// validated, and then only read.
type Config struct {
	Grid         GridSpec
	ColumnLabels LabelSpec
	RowLabels    LabelSpec
	Border       BorderSpec
	Background   Background

	MaintainAspect       bool
	PreserveTransparency bool
	CenterLastRow        bool
}

// Default returns a Config matching the form's initial state: a 5x3 grid of
// 256px cells with 10px spacing on a white background.
func Default() Config {
	return Config{
		Grid: GridSpec{
			Rows:       5,
			Cols:       3,
			CellWidth:  256,
			CellHeight: 256,
			Spacing:    10,
		},
		ColumnLabels: LabelSpec{
			Position: PositionTop,
			FontSize: 16,
			Color:    Black,
		},
		RowLabels: LabelSpec{
			Position:    PositionLeft,
			Orientation: OrientationHorizontal,
			FontSize:    16,
			Color:       Black,
		},
		Border:     BorderSpec{Style: BorderSolid, Color: Black},
		Background: SolidBackground(White),
	}
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if err := c.ColumnLabels.Validate(AxisColumns, c.Grid); err != nil {
		return err
	}
	if err := c.RowLabels.Validate(AxisRows, c.Grid); err != nil {
		return err
	}
	if err := c.Border.Validate(); err != nil {
		return err
	}
	return c.Background.Validate()
}

// CheckImageCount validates the number of supplied images against the grid.
// More images than slots is an error; fewer is permitted (trailing cells
// stay empty) and reported through the returned warning.
func (c Config) CheckImageCount(n int) (warning string, err error) {
	slots := c.Grid.Slots()
	if n == 0 {
		return "", fmt.Errorf("no images supplied for a %dx%d grid", c.Grid.Rows, c.Grid.Cols)
	}
	if n > slots {
		return "", fmt.Errorf("%d images supplied, but a %dx%d grid holds only %d", n, c.Grid.Rows, c.Grid.Cols, slots)
	}
	if n < slots {
		return fmt.Sprintf("%d images for %d slots; trailing cells are left empty", n, slots), nil
	}
	return "", nil
}

// ValidatePlacement checks that order is a permutation of [0, n): every
// source image placed exactly once. A bad arrangement is a configuration
// error, not something the renderer recovers from.
func ValidatePlacement(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("placement covers %d slots, want %d", len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return fmt.Errorf("placement position %d out of range [0,%d)", idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("placement position %d assigned twice", idx)
		}
		seen[idx] = true
	}
	return nil
}
