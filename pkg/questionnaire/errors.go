package questionnaire

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog       = errors.New("questionnaire: catalog has no questions")
	ErrIncompleteMetadata = errors.New("questionnaire: form name, month, year and report date are required")
)

// IncompleteError reports the first unanswered question, 1-based.
type IncompleteError struct {
	Ordinal int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("questionnaire: question %d is not answered", e.Ordinal)
}
