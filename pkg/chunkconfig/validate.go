// Package chunkconfig validates the chunker's configuration using
// struct-tag driven validation instead of hand-rolled field checks.
package chunkconfig

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Settings mirrors engine/chunk.Config's fields with validator struct tags
// attached. Validate builds one from the values engine/chunk passes in, so
// engine/chunk itself does not depend on the validator package.
type Settings struct {
	Size          uint32 `validate:"required,gte=1"`
	Overlap       uint32 `validate:"ltfield=Size"`
	EncodingModel string `validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	return v
}

// Error wraps a validator.ValidationErrors (or a simpler validation
// failure) so callers can distinguish configuration errors from other
// failures via errors.As.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("chunkconfig: invalid configuration: %s", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validate checks that size is at least 1, overlap is strictly less than
// size, and encodingModel is non-empty. It returns a *Error on failure.
func Validate(size, overlap uint32, encodingModel string) error {
	settings := Settings{Size: size, Overlap: overlap, EncodingModel: encodingModel}
	if err := validate.Struct(settings); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return &Error{cause: verr}
		}
		return &Error{cause: err}
	}
	return nil
}
