// Package grid defines the configuration model for the image grid compositor.
//
// All values are plain data: a Config is assembled once per invocation
// (from CLI flags, a preset, or an HTTP form), validated, and passed by
// value through the pipeline. Nothing in this package holds state between
// invocations.
//
// Selector fields (background kind, label position, border style, ...) are
// closed enumerations with Parse* constructors so that an unhandled option
// string cannot reach the renderer.
package grid

import (
	"fmt"
	"image"
	"strings"
)

// GridSpec describes the grid geometry: how many cells, how large each cell
// is before borders, and the gap between adjacent cells.
type GridSpec struct {
	Rows       int
	Cols       int
	CellWidth  int
	CellHeight int
	Spacing    int
}

// Slots returns the total number of cells in the grid.
func (g GridSpec) Slots() int {
	return g.Rows * g.Cols
}

// Validate checks the grid dimensions.
func (g GridSpec) Validate() error {
	if g.Rows < 1 || g.Cols < 1 {
		return fmt.Errorf("grid must have at least 1 row and 1 column, got %dx%d", g.Rows, g.Cols)
	}
	if g.CellWidth < 1 || g.CellHeight < 1 {
		return fmt.Errorf("cell size must be positive, got %dx%d", g.CellWidth, g.CellHeight)
	}
	if g.Spacing < 0 {
		return fmt.Errorf("spacing cannot be negative, got %d", g.Spacing)
	}
	return nil
}

// Axis identifies which grid axis a label set belongs to.
type Axis string

// Label axes.
const (
	AxisColumns Axis = "columns"
	AxisRows    Axis = "rows"
)

// LabelPosition is the side of the grid a label set is drawn on.
type LabelPosition string

// Label positions. Top/Bottom apply to column labels, Left/Right to row
// labels; Both reserves the margin on both sides of the axis.
const (
	PositionTop    LabelPosition = "top"
	PositionBottom LabelPosition = "bottom"
	PositionLeft   LabelPosition = "left"
	PositionRight  LabelPosition = "right"
	PositionBoth   LabelPosition = "both"
)

// ValidColumnPositions is the set of positions accepted for column labels.
var ValidColumnPositions = map[LabelPosition]bool{
	PositionTop:    true,
	PositionBottom: true,
	PositionBoth:   true,
}

// ValidRowPositions is the set of positions accepted for row labels.
var ValidRowPositions = map[LabelPosition]bool{
	PositionLeft:  true,
	PositionRight: true,
	PositionBoth:  true,
}

// ParsePosition parses a label position for the given axis.
func ParsePosition(axis Axis, s string) (LabelPosition, error) {
	p := LabelPosition(strings.ToLower(strings.TrimSpace(s)))
	valid := ValidColumnPositions
	if axis == AxisRows {
		valid = ValidRowPositions
	}
	if !valid[p] {
		return "", fmt.Errorf("invalid %s label position: %q", axis, s)
	}
	return p, nil
}

// Orientation controls how row label text is drawn.
type Orientation string

// Label orientations. Vertical rotates the rendered text 90 degrees.
const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// ParseOrientation parses a row label orientation.
func ParseOrientation(s string) (Orientation, error) {
	o := Orientation(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case OrientationHorizontal, OrientationVertical:
		return o, nil
	}
	return "", fmt.Errorf("invalid label orientation: %q", s)
}

// LabelSpec configures the labels for one axis.
type LabelSpec struct {
	Enabled     bool
	Texts       []string
	Position    LabelPosition
	Orientation Orientation // row labels only
	FontSize    float64
	Color       RGB
}

// Active reports whether the axis contributes a reserved margin: labels must
// be enabled and at least one text must be non-blank.
func (l LabelSpec) Active() bool {
	if !l.Enabled {
		return false
	}
	for _, t := range l.Texts {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// Validate checks the label spec for the given axis against the grid.
func (l LabelSpec) Validate(axis Axis, g GridSpec) error {
	if !l.Enabled {
		return nil
	}
	want := g.Cols
	valid := ValidColumnPositions
	if axis == AxisRows {
		want = g.Rows
		valid = ValidRowPositions
	}
	// An empty text list means "enabled but nothing to draw yet" (presets
	// enable labels before the user types them); only a partial list is an
	// error.
	if len(l.Texts) != 0 && len(l.Texts) != want {
		return fmt.Errorf("%s labels: got %d texts, want %d", axis, len(l.Texts), want)
	}
	if !valid[l.Position] {
		return fmt.Errorf("%s labels: invalid position %q", axis, l.Position)
	}
	if axis == AxisRows {
		switch l.Orientation {
		case OrientationHorizontal, OrientationVertical:
		default:
			return fmt.Errorf("row labels: invalid orientation %q", l.Orientation)
		}
	}
	if l.FontSize <= 0 {
		return fmt.Errorf("%s labels: font size must be positive, got %g", axis, l.FontSize)
	}
	return nil
}

// BorderStyle selects the border rendering style.
type BorderStyle string

// Border styles. Rounded and Dashed are accepted for forward compatibility
// but currently render the same as Solid.
const (
	BorderSolid   BorderStyle = "solid"
	BorderRounded BorderStyle = "rounded"
	BorderDashed  BorderStyle = "dashed"
)

// ValidBorderStyles is the set of accepted border styles.
var ValidBorderStyles = map[BorderStyle]bool{
	BorderSolid:   true,
	BorderRounded: true,
	BorderDashed:  true,
}

// ParseBorderStyle parses a border style.
func ParseBorderStyle(s string) (BorderStyle, error) {
	b := BorderStyle(strings.ToLower(strings.TrimSpace(s)))
	if !ValidBorderStyles[b] {
		return "", fmt.Errorf("invalid border style: %q", s)
	}
	return b, nil
}

// BorderSpec configures the per-cell border ring.
type BorderSpec struct {
	Enabled bool
	Width   int
	Color   RGB
	Style   BorderStyle
}

// Extent returns the border width contributed on each side of a cell:
// zero when borders are disabled.
func (b BorderSpec) Extent() int {
	if !b.Enabled {
		return 0
	}
	return b.Width
}

// Validate checks the border spec.
func (b BorderSpec) Validate() error {
	if !b.Enabled {
		return nil
	}
	if b.Width < 0 {
		return fmt.Errorf("border width cannot be negative, got %d", b.Width)
	}
	if !ValidBorderStyles[b.Style] {
		return fmt.Errorf("invalid border style: %q", b.Style)
	}
	return nil
}

// SourceImage is a decoded upload ready for normalization. The decoded
// bitmap is never mutated; every transform produces a new image.
type SourceImage struct {
	Name     string
	Format   string // sniffed registered format name ("png", "jpeg", ...)
	Image    image.Image
	HasAlpha bool
}
