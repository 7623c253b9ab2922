package grid

import (
	"fmt"
	"strings"
)

// BackgroundKind tags the background variant.
type BackgroundKind string

// Background kinds.
const (
	BackgroundSolid       BackgroundKind = "solid"
	BackgroundTransparent BackgroundKind = "transparent"
	BackgroundGradient    BackgroundKind = "gradient"
)

// ValidBackgroundKinds is the set of accepted background kinds.
var ValidBackgroundKinds = map[BackgroundKind]bool{
	BackgroundSolid:       true,
	BackgroundTransparent: true,
	BackgroundGradient:    true,
}

// ParseBackgroundKind parses a background kind.
func ParseBackgroundKind(s string) (BackgroundKind, error) {
	k := BackgroundKind(strings.ToLower(strings.TrimSpace(s)))
	if !ValidBackgroundKinds[k] {
		return "", fmt.Errorf("invalid background: %q", s)
	}
	return k, nil
}

// GradientDirection selects the axis a gradient runs along.
type GradientDirection string

// Gradient directions.
const (
	GradientVertical   GradientDirection = "vertical"
	GradientHorizontal GradientDirection = "horizontal"
)

// ParseGradientDirection parses a gradient direction.
func ParseGradientDirection(s string) (GradientDirection, error) {
	d := GradientDirection(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case GradientVertical, GradientHorizontal:
		return d, nil
	}
	return "", fmt.Errorf("invalid gradient direction: %q", s)
}

// Background is the tagged canvas background variant. Color is used for
// the solid kind, Start/End/Direction for the gradient kind.
type Background struct {
	Kind      BackgroundKind
	Color     RGB
	Start     RGB
	End       RGB
	Direction GradientDirection
}

// SolidBackground returns an opaque single-color background.
func SolidBackground(c RGB) Background {
	return Background{Kind: BackgroundSolid, Color: c}
}

// TransparentBackground returns a fully transparent background.
func TransparentBackground() Background {
	return Background{Kind: BackgroundTransparent}
}

// GradientBackground returns a linear gradient background.
func GradientBackground(start, end RGB, dir GradientDirection) Background {
	return Background{Kind: BackgroundGradient, Start: start, End: end, Direction: dir}
}

// Validate checks the background variant.
func (b Background) Validate() error {
	switch b.Kind {
	case BackgroundSolid, BackgroundTransparent:
		return nil
	case BackgroundGradient:
		switch b.Direction {
		case GradientVertical, GradientHorizontal:
			return nil
		}
		return fmt.Errorf("gradient background: invalid direction %q", b.Direction)
	}
	return fmt.Errorf("invalid background kind: %q", b.Kind)
}

// Transparent reports whether the canvas keeps an alpha channel.
func (b Background) Transparent() bool {
	return b.Kind == BackgroundTransparent
}
