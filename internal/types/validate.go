package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func resumeValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks structural validity of the resume (enumerations, e-mail and URL shape).
// Content completeness is the scorer's concern, not a validation failure.
func (r *Resume) Validate() error {
	return resumeValidator().Struct(r)
}
