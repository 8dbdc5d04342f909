package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeApplication  Code = "APPLICATION_ERROR"
	CodeTransport    Code = "TRANSPORT_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
)

// Metadata describes how an error class is presented to the user.
type Metadata struct {
	// ServerMessage is true when the attached message originated from the
	// server and can be surfaced verbatim.
	ServerMessage bool
	// Retryable signals that resubmitting the same request manually may succeed.
	Retryable bool
	// FallbackMessage is shown when no server-provided message is available.
	FallbackMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		ServerMessage:   false,
		Retryable:       false,
		FallbackMessage: "validation failed",
	},
	CodeApplication: {
		ServerMessage:   true,
		Retryable:       false,
		FallbackMessage: "request rejected",
	},
	CodeTransport: {
		ServerMessage:   false,
		Retryable:       true,
		FallbackMessage: "something went wrong, please try again",
	},
	CodeUnauthorized: {
		ServerMessage:   true,
		Retryable:       false,
		FallbackMessage: "authentication required",
	},
	CodeForbidden: {
		ServerMessage:   true,
		Retryable:       false,
		FallbackMessage: "access denied",
	},
	CodeNotFound: {
		ServerMessage:   true,
		Retryable:       false,
		FallbackMessage: "resource not found",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeTransport]
}

// Error is the single error shape returned by every service call, so callers
// branch on Code instead of mixing success flags with thrown transport failures.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeTransport
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the taxonomy code, treating untyped errors as transport failures.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeTransport
}

func IsValidation(err error) bool   { return CodeOf(err) == CodeValidation }
func IsApplication(err error) bool  { return CodeOf(err) == CodeApplication }
func IsTransport(err error) bool    { return CodeOf(err) == CodeTransport }
func IsUnauthorized(err error) bool { return CodeOf(err) == CodeUnauthorized }
func IsForbidden(err error) bool    { return CodeOf(err) == CodeForbidden }
func IsNotFound(err error) bool     { return CodeOf(err) == CodeNotFound }

// UserMessage resolves the text a screen should display for the error: the
// server-provided message verbatim when the class allows it, otherwise the
// generic fallback for the class.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeTransport).FallbackMessage
	}
	meta := MetadataFor(typed.Code())
	if meta.ServerMessage && typed.Message() != "" {
		return typed.Message()
	}
	if typed.Code() == CodeValidation && typed.Message() != "" {
		return typed.Message()
	}
	return meta.FallbackMessage
}
