package imgio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
)

// DefaultBaseName is the suggested artifact filename stem.
const DefaultBaseName = "image_grid"

// WriteArtifacts writes encoded artifacts into dir, one file per format,
// named base.<ext>. It returns the written paths in format order.
func WriteArtifacts(dir, base string, artifacts map[sink.Format][]byte) ([]string, error) {
	if base == "" {
		base = DefaultBaseName
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	formats := make([]sink.Format, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, f.Filename(base))
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
