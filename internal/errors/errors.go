// Package errors defines the stable error codes reported by expertkit.
package errors

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Code is a stable error code string.
type Code string

// Scaffolding error codes.
const (
	EUsage              Code = "E_USAGE"
	ETemplateNotFound   Code = "E_TEMPLATE_NOT_FOUND"
	EDestinationExists  Code = "E_DESTINATION_EXISTS"
	EFileNotFound       Code = "E_FILE_NOT_FOUND"
	EEncoding           Code = "E_ENCODING"
	EPermission         Code = "E_PERMISSION"
	EIO                 Code = "E_IO"
	EInvalidProjectSpec Code = "E_INVALID_PROJECT_SPEC"
)

// Runtime error codes.
const (
	EProjectNotFound Code = "E_PROJECT_NOT_FOUND"
	EInvalidConfig   Code = "E_INVALID_CONFIG"
	EDatabase        Code = "E_DATABASE"
	EModel           Code = "E_MODEL"
	EMemory          Code = "E_MEMORY"
)

// Detail keys used by the scaffolder.
const (
	DetailStep = "step"
	DetailPath = "path"
)

// Error is the coded error type.
type Error struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string
}

// Error returns the stable error format: "CODE: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// NewWithDetails creates a new Error with code, message, and details.
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new Error wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new Error wrapping an underlying error with details.
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// FromFS classifies a filesystem error: missing paths get notFound,
// permission failures get EPermission, everything else EIO. The message
// names the operation and path.
func FromFS(err error, notFound Code, op, path string) error {
	code := EIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = notFound
	case errors.Is(err, fs.ErrPermission):
		code = EPermission
	}
	return &Error{
		Code:    code,
		Msg:     fmt.Sprintf("%s %s: %v", op, path, err),
		Cause:   err,
		Details: map[string]string{DetailPath: path},
	}
}

// GetCode extracts the error code from an error, or empty string if not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err is or wraps an *Error with the given code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// As returns (*Error, true) if err is or wraps an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithStep returns err annotated with the scaffolding step that failed.
// Coded errors keep their code; the message gains a "<step>: " prefix.
// Uncoded errors are wrapped as EIO.
func WithStep(step string, err error) error {
	if err == nil {
		return nil
	}
	e, ok := As(err)
	if !ok {
		return WrapWithDetails(EIO, fmt.Sprintf("%s: %v", step, err), err, map[string]string{DetailStep: step})
	}
	details := copyDetails(e.Details)
	if details == nil {
		details = map[string]string{}
	}
	details[DetailStep] = step
	return &Error{Code: e.Code, Msg: step + ": " + e.Msg, Cause: e.Cause, Details: details}
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns 0 for nil and 1 for every error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Print writes the error to w:
//
//	error_code: <CODE>
//	<message>
//
// The message line comes last so the terminal's final line names the
// failing precondition or path.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	if e, ok := As(err); ok {
		fmt.Fprintf(w, "error_code: %s\n", e.Code)
		fmt.Fprintln(w, e.Msg)
		return
	}
	fmt.Fprintln(w, err.Error())
}
