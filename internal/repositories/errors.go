package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches every LoadError via errors.Is.
	ErrLoad = errors.New("sale table could not be loaded")
	// ErrMissingColumn reports a header without one of the required columns.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidPricePerArea reports a negative, NaN or infinite m2 price.
	ErrInvalidPricePerArea = errors.New("price per area must be finite and non-negative")
)

// LoadError reports why a sale table could not be loaded. Loading is all or
// nothing, so a LoadError always means no records were returned.
type LoadError struct {
	Path   string
	Line   int    // 0 when the failure is not tied to a row
	Column string // "" when the failure is not tied to a column
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load " + e.Path
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	return msg + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) true for any LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }
