package errors

import (
	"errors"
)

type Code string

const (
	CodeInvalidParameter Code = "invalid_parameter"
	CodeMalformedHash    Code = "malformed_hash"
)

const (
	CodeUnknown        Code = "unknown"
	CodeLibraryFailure Code = "library_failure"
)

var ErrMissingHasher = errors.New("pwhash: hasher is required")

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	if e.Message != "" {
		if e.Err != nil {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// CodeUnknown when there is none.
func CodeOf(err error) Code {
	var typed *Error
	if !errors.As(err, &typed) {
		return CodeUnknown
	}
	return typed.Code
}

func IsCode(err error, code Code) bool {
	var typed *Error
	if !errors.As(err, &typed) {
		return false
	}
	return typed.Code == code
}

func IsInternalCode(err error) bool {
	return IsCode(err, CodeUnknown) || IsCode(err, CodeLibraryFailure)
}
