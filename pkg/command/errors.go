package command

import (
	"errors"
	"fmt"
)

// Code classifies a command failure for the controller.
type Code string

const (
	CodeMissingParameter      Code = "MissingParameter"
	CodeTypeMismatch          Code = "TypeMismatch"
	CodeInvalidArity          Code = "InvalidArity"
	CodeInvalidName           Code = "InvalidName"
	CodeNotFound              Code = "NotFound"
	CodeAlreadyExists         Code = "AlreadyExists"
	CodeDirectoryCreateFailed Code = "DirectoryCreateFailed"
	CodeUnsupportedSlot       Code = "UnsupportedSlot"
	CodeUnknownTemplate       Code = "UnknownTemplate"
	CodeUnknown               Code = "Unknown"
)

// Error is a classified command failure. Handlers return these so the
// router can surface a precise failure envelope; anything else is
// reported as CodeUnknown.
type Error struct {
	Code    Code
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds a classified error.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetail attaches diagnostic detail to a classified error.
func (e *Error) WithDetail(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Classify converts any error into a classified one. Wrapped *Error
// values keep their code; everything else becomes CodeUnknown.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr
	}
	return &Error{Code: CodeUnknown, Message: err.Error()}
}
