package _type

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the failure class of an Error.
//
//   - 100-199: configuration
//   - 200-299: data (parse failures, empty datasets, schema mismatch)
//   - 300-399: loading
//   - 400-499: rendering
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = 1

	ErrCodeInvalidConfiguration ErrorCode = 100

	ErrCodeParseFailure   ErrorCode = 200
	ErrCodeEmptyDataset   ErrorCode = 201
	ErrCodeSchemaMismatch ErrorCode = 202

	ErrCodeLoadFailure ErrorCode = 300

	ErrCodeRenderFailure ErrorCode = 400
)

var errorCodeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "unknown",
	ErrCodeInvalidConfiguration: "invalid configuration",
	ErrCodeParseFailure:         "parse failure",
	ErrCodeEmptyDataset:         "empty dataset",
	ErrCodeSchemaMismatch:       "schema mismatch",
	ErrCodeLoadFailure:          "load failure",
	ErrCodeRenderFailure:        "render failure",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is a structured error carrying an ErrorCode.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewErrorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func WrapErrorf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the first *Error in err's chain,
// ErrCodeUnknown otherwise.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeUnknown
}

func HasCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}
