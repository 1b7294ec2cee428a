package core

import (
	"errors"
	"fmt"
)

// ErrorCode classifies errors of flowbox packages.
type ErrorCode int

// General error codes
const (
	NOERROR      ErrorCode = 0
	EMISSING     ErrorCode = 122 // resource does not exist
	EINVALID     ErrorCode = 123 // validation failed
	ECONFIG      ErrorCode = 124 // layout configuration error (programmer error)
	EINTERNAL    ErrorCode = 125 // internal error
	ECONVERGENCE ErrorCode = 126 // layout run did not converge
)

var codeText = map[ErrorCode]string{
	NOERROR:      "OK",
	EMISSING:     "not found",
	EINVALID:     "invalid",
	ECONFIG:      "configuration error",
	EINTERNAL:    "internal error",
	ECONVERGENCE: "layout did not converge",
}

func (code ErrorCode) String() string {
	if s, ok := codeText[code]; ok {
		return s
	}
	return "undefined error"
}

// AppError is an error carrying an error code and a message for the user.
type AppError interface {
	error
	ErrorCode() ErrorCode
	UserMessage() string
}

// codedError attaches a code and a message to an underlying error.
type codedError struct {
	cause error
	code  ErrorCode
	msg   string
}

func (e codedError) Unwrap() error { return e.cause }

func (e codedError) Error() string {
	if e.msg == "" || e.msg == e.code.String() {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e codedError) ErrorCode() ErrorCode { return e.code }

func (e codedError) UserMessage() string { return e.msg }

var _ AppError = codedError{}

// ErrorWithCode adds an error code to err's error chain.
// A nil err is replaced by an error stating the code's default text.
func ErrorWithCode(err error, code ErrorCode) error {
	return WrapError(err, code, "%s", code)
}

// WrapError wraps err, adding an error code and a user message.
// A nil err is replaced by an error stating the code's default text.
func WrapError(err error, code ErrorCode, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(code.String())
	}
	return codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Error creates an error with an error code and a user message.
func Error(code ErrorCode, format string, v ...interface{}) error {
	return WrapError(nil, code, format, v...)
}

// Code returns the error code found in err's chain.
// Errors without a code are internal errors, nil is NOERROR.
func Code(err error) ErrorCode {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message found in err's chain, or the default
// text of its error code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return Code(err).String()
}
