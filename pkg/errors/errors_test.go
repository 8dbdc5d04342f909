package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		serverMsg bool
		retryable bool
		fallback  string
	}{
		{code: CodeValidation, fallback: "validation failed"},
		{code: CodeApplication, serverMsg: true, fallback: "request rejected"},
		{code: CodeTransport, retryable: true, fallback: "something went wrong, please try again"},
		{code: CodeUnauthorized, serverMsg: true, fallback: "authentication required"},
		{code: CodeForbidden, serverMsg: true, fallback: "access denied"},
		{code: CodeNotFound, serverMsg: true, fallback: "resource not found"},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.ServerMessage != tt.serverMsg {
			t.Fatalf("code %s expected server message %v got %v", tt.code, tt.serverMsg, meta.ServerMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.FallbackMessage != tt.fallback {
			t.Fatalf("code %s expected fallback %q got %q", tt.code, tt.fallback, meta.FallbackMessage)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToTransport(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if !meta.Retryable {
		t.Fatalf("expected transport metadata for unknown code")
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing document")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing document" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	withDetails := base.WithDetails(map[string]string{"ghanaCard": "is required"})
	if withDetails.Details() == nil {
		t.Fatalf("expected details to be attached")
	}

	cause := fmt.Errorf("connection reset")
	wrapped := Wrap(CodeTransport, cause, "request failed")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("wrapped error should unwrap to its cause")
	}
	if wrapped.Error() != "TRANSPORT_ERROR: request failed" {
		t.Fatalf("unexpected error string %q", wrapped.Error())
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeApplication, nil, "rejected")
	if err.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
	if err.Code() != CodeApplication {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestPredicates(t *testing.T) {
	if !IsApplication(New(CodeApplication, "nope")) {
		t.Fatalf("expected application predicate to match")
	}
	if !IsUnauthorized(fmt.Errorf("outer: %w", New(CodeUnauthorized, "expired"))) {
		t.Fatalf("expected predicate to see through wrapping")
	}
	if !IsTransport(stdErrors.New("plain")) {
		t.Fatalf("untyped errors should classify as transport")
	}
	if IsForbidden(nil) {
		t.Fatalf("nil should not match any predicate")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "application verbatim", err: New(CodeApplication, "email already registered"), want: "email already registered"},
		{name: "transport hides cause", err: Wrap(CodeTransport, fmt.Errorf("dial tcp: refused"), "dial tcp: refused"), want: "something went wrong, please try again"},
		{name: "application without message", err: New(CodeApplication, ""), want: "request rejected"},
		{name: "validation keeps local message", err: New(CodeValidation, "sale price must be less than price"), want: "sale price must be less than price"},
		{name: "untyped", err: stdErrors.New("boom"), want: "something went wrong, please try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got)
			}
		})
	}
}
