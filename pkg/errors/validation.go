package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateRatio checks that v is a finite number in [0, 1].
// The name is used in the error message (e.g. "delete_ratio").
func ValidateRatio(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidRatio, "%s must be a finite number", name)
	}
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidRatio, "%s must be in [0, 1], got %g", name, v)
	}
	return nil
}

// ValidateRange checks that lo <= hi and both are finite.
func ValidateRange(name string, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return New(ErrCodeInvalidRange, "%s bounds must be finite numbers", name)
	}
	if lo > hi {
		return New(ErrCodeInvalidRange, "%s min (%g) is greater than max (%g)", name, lo, hi)
	}
	return nil
}

// ValidatePositiveRange checks a range whose lower bound must be > 0.
func ValidatePositiveRange(name string, lo, hi float64) error {
	if err := ValidateRange(name, lo, hi); err != nil {
		return err
	}
	if lo <= 0 {
		return New(ErrCodeInvalidRange, "%s min must be positive, got %g", name, lo)
	}
	return nil
}

// ValidateOutputPath checks that path is usable as an output file.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
//   - Must not be the same file as input
func ValidateOutputPath(path, input string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must be a file, not a directory")
	}

	if input != "" && filepath.Clean(path) == filepath.Clean(input) {
		return New(ErrCodeInvalidPath, "output path must differ from input %q", input)
	}

	return nil
}
