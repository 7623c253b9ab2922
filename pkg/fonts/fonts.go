// Package fonts resolves the label font faces used by the renderer.
//
// Resolution order: explicit TTF bytes (an uploaded font file), then a named
// system font located via findfont, then the built-in Go Regular face. Font
// problems are never fatal: a face that cannot be loaded falls back to the
// built-in one and the caller is told so.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ankit-kv/gridmaker/pkg/errors"
)

// DefaultName is the system font tried when no explicit font is supplied.
const DefaultName = "DejaVuSans"

// builtin is the embedded fallback font, parsed once on first use.
var (
	builtin     *truetype.Font
	builtinOnce sync.Once
)

func builtinFont() *truetype.Font {
	builtinOnce.Do(func() {
		// goregular ships with the toolchain and always parses.
		builtin, _ = truetype.Parse(goregular.TTF)
	})
	return builtin
}

// Source selects the font to load.
type Source struct {
	TTF  []byte // explicit font file bytes, highest priority
	Name string // system font name for findfont lookup
}

// Face resolves a font face at the given point size.
//
// The returned fallback flag is true when the requested font could not be
// used and the built-in face was substituted; the accompanying error
// explains why and carries ErrCodeDecodeFont. Per the error-handling
// policy this is a warning, not a failure.
func Face(src Source, size float64) (face font.Face, fallback bool, err error) {
	opts := &truetype.Options{Size: size, DPI: 72}

	if len(src.TTF) > 0 {
		f, perr := truetype.Parse(src.TTF)
		if perr == nil {
			return truetype.NewFace(f, opts), false, nil
		}
		return truetype.NewFace(builtinFont(), opts), true,
			errors.Wrap(errors.ErrCodeDecodeFont, perr, "cannot parse supplied font file")
	}

	name := src.Name
	if name == "" {
		name = DefaultName
	}
	if path, ferr := findfont.Find(name + ".ttf"); ferr == nil {
		if data, rerr := os.ReadFile(path); rerr == nil {
			if f, perr := truetype.Parse(data); perr == nil {
				return truetype.NewFace(f, opts), false, nil
			}
		}
	}
	if src.Name == "" {
		// No explicit request; the built-in face is the normal default,
		// not a degradation worth warning about.
		return truetype.NewFace(builtinFont(), opts), false, nil
	}
	return truetype.NewFace(builtinFont(), opts), true,
		errors.New(errors.ErrCodeDecodeFont, "font %q not found, using built-in face", src.Name)
}
