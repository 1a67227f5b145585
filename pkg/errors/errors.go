package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidForm      = errors.New("form has validation errors")
	ErrGenerationFailed = errors.New("generation failed")
	ErrEncoding         = errors.New("qr encoding failed")
	ErrNoArtifact       = errors.New("no qr code has been generated")
	ErrUnknownField     = errors.New("unknown form field")
	ErrSessionNotFound  = errors.New("session not found")
)

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

// EncodingError carries the underlying encoder fault. It matches ErrEncoding
// under errors.Is.
type EncodingError struct {
	Err error
}

func (e EncodingError) Error() string {
	return fmt.Sprintf("qr encoding failed: %s", e.Err.Error())
}

func (e EncodingError) Unwrap() error {
	return e.Err
}

func (e EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

func NewEncodingError(err error) error {
	return EncodingError{Err: err}
}
