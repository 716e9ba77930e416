package errors

import (
	"math"
	"unicode"
)

// maxDimension caps viewport sizes accepted from flags, config and HTTP requests.
const maxDimension = 20000

// ValidateViewport checks that a drawing rectangle is usable.
// Both dimensions must be finite, positive and no larger than 20000 pixels.
func ValidateViewport(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidViewport, "%s must be a finite number", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidViewport, "%s must be positive, got %g", d.name, d.v)
		}
		if d.v > maxDimension {
			return New(ErrCodeInvalidViewport, "%s too large (max %d)", d.name, maxDimension)
		}
	}
	return nil
}

// ValidatePath validates an input or output file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidInput, "path too long (max 500 characters)")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid control characters")
		}
	}
	return nil
}
