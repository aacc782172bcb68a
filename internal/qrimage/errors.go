package qrimage

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package wraps exactly one of them.
var (
	ErrInvalid              = errors.New("invalid")
	ErrMissing              = errors.New("missing")
	ErrGenerateImage        = errors.New("unable to generate image")
	ErrValidation           = errors.New("validation failed")
	ErrUnsupportedExtension = errors.New("unsupported extension")
)

// ValidationError is returned when the rendered image does not decode back to
// the text it was generated from.
type ValidationError struct {
	Expected string
	Actual   string
	Err      error // reader failure, if the image could not be decoded at all
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("built-in validation reader could not read %q: %v", e.Expected, e.Err)
	}
	return fmt.Sprintf("built-in validation reader read %q instead of %q; adjust your parameters to increase readability or disable built-in validation", e.Actual, e.Expected)
}

// Is reports ErrValidation as the kind of e.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func missingf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissing, fmt.Sprintf(format, args...))
}

func generatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGenerateImage, fmt.Sprintf(format, args...))
}
