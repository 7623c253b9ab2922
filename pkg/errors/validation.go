package errors

import (
	"strings"
	"unicode"
)

// ValidateArtifactName validates a download filename for safety. It rejects
// names that could be used for path traversal when artifacts are written to
// disk or served over HTTP.
func ValidateArtifactName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "artifact name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPath, "artifact name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "artifact name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "artifact name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "artifact name cannot contain %q", "..")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "artifact name cannot be a hidden file")
	}

	return nil
}
