package pricing

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a median is requested over no records.
var ErrEmptyDataset = errors.New("no sales left to estimate from")

// InsufficientSamplesError reports that fewer sales than required survived
// the filters.
type InsufficientSamplesError struct {
	Required int
	Actual   int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("insufficient samples: required %d, got %d", e.Required, e.Actual)
}
