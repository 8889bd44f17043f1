package ingestion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for content types that cannot be read as text.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ErrEmptyDocument is returned when a document contains no readable text.
var ErrEmptyDocument = errors.New("document contains no text")

// Error describes a failure reading a resume or job description source.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
