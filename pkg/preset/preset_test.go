package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/grid"
)

func TestBuiltinNames(t *testing.T) {
	lib := Builtin()
	want := []string{"archival", "comparison", "contact-sheet", "polaroid"}
	got := lib.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuiltinPresetsValidate(t *testing.T) {
	lib := Builtin()
	for _, name := range lib.Names() {
		t.Run(name, func(t *testing.T) {
			cfg, err := lib.Apply(name)
			if err != nil {
				t.Fatalf("Apply(%q) error: %v", name, err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %q produces invalid config: %v", name, err)
			}
		})
	}
}

func TestApplyIsPure(t *testing.T) {
	lib := Builtin()
	a, err := lib.Apply("polaroid")
	if err != nil {
		t.Fatal(err)
	}
	a.Grid.Rows = 99
	a.Border.Color = grid.RGB{R: 1}

	b, err := lib.Apply("polaroid")
	if err != nil {
		t.Fatal(err)
	}
	if b.Grid.Rows == 99 || b.Border.Color == (grid.RGB{R: 1}) {
		t.Error("mutating an applied config leaked into the library")
	}
}

func TestApplyFields(t *testing.T) {
	cfg, err := Builtin().Apply("polaroid")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Border.Enabled || cfg.Border.Width != 8 {
		t.Errorf("border = %+v", cfg.Border)
	}
	if cfg.Background.Kind != grid.BackgroundGradient {
		t.Errorf("background kind = %s, want gradient", cfg.Background.Kind)
	}
	if cfg.Background.Direction != grid.GradientVertical {
		t.Errorf("gradient direction = %s", cfg.Background.Direction)
	}
	if !cfg.CenterLastRow {
		t.Error("CenterLastRow not applied")
	}
}

func TestApplyUnknown(t *testing.T) {
	_, err := Builtin().Apply("no-such-preset")
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("err = %v, want INVALID_PRESET", err)
	}
}

func TestLoadUserPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	content := `
[banner]
description = "wide banner strip"
rows = 1
cols = 5
cell_width = 300
cell_height = 120

[polaroid]
description = "override"
rows = 2
cols = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	banner, err := lib.Apply("banner")
	if err != nil {
		t.Fatalf("Apply(banner) error: %v", err)
	}
	if banner.Grid.Rows != 1 || banner.Grid.Cols != 5 {
		t.Errorf("banner grid = %+v", banner.Grid)
	}

	// User preset replaces the built-in of the same name.
	polaroid, err := lib.Apply("polaroid")
	if err != nil {
		t.Fatal(err)
	}
	if polaroid.Grid.Rows != 2 || polaroid.Border.Enabled {
		t.Errorf("polaroid override not applied: %+v", polaroid.Grid)
	}
}

func TestLoadBadFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("missing file err = %v, want INVALID_PRESET", err)
	}

	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("broken file err = %v, want INVALID_PRESET", err)
	}
}
