package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidConfig, "bad grid %dx%d", 0, 3),
			want: "INVALID_CONFIG: bad grid 0x3",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeDecodeImage, fmt.Errorf("truncated"), "decode %s", "a.png"),
			want: "DECODE_IMAGE: decode a.png: truncated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeEncode, "tiff write failed")
	if !Is(err, ErrCodeEncode) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeDecodeImage) {
		t.Error("Is() should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeEncode) {
		t.Error("Is() should not match a plain error")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeEncode) {
		t.Error("Is() should unwrap to find the code")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root")
	err := Wrap(ErrCodeInternal, cause, "wrapped")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidPreset, "no such preset")); got != "no such preset" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain error")); got != "plain error" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateArtifactName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "simple", in: "image_grid.png"},
		{name: "with dashes", in: "my-grid_2.jpg"},
		{name: "empty", in: "", wantErr: true},
		{name: "path separator", in: "a/b.png", wantErr: true},
		{name: "backslash", in: "a\\b.png", wantErr: true},
		{name: "traversal", in: "..png", wantErr: true},
		{name: "hidden", in: ".grid.png", wantErr: true},
		{name: "control char", in: "a\x00b.png", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArtifactName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArtifactName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
