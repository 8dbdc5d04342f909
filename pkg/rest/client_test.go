package rest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/models"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append(opts, WithHTTPClient(&http.Client{Transport: rt}))
	client, err := NewClient("http://api.test/api", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientInjectsBearerToken(t *testing.T) {
	var capturedAuth string
	var capturedURL string

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedAuth = req.Header.Get("Authorization")
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{"success":true,"data":{"_id":"v1","name":"Ama"},"message":"ok"}`), nil
	})

	client := newTestClient(t, rt, WithTokenSource(TokenFunc(func() string { return "tok-123" })))

	envelope, err := client.GetJSON(context.Background(), "/auth/me", nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if capturedAuth != "Bearer tok-123" {
		t.Fatalf("unexpected auth header %q", capturedAuth)
	}
	if capturedURL != "http://api.test/api/auth/me" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}

	var vendor models.Vendor
	if err := envelope.DecodeData(&vendor); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if vendor.ID != "v1" || vendor.Name != "Ama" {
		t.Fatalf("unexpected vendor %+v", vendor)
	}
}

func TestClientOmitsEmptyToken(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Authorization") != "" {
			t.Fatalf("expected no auth header, got %q", req.Header.Get("Authorization"))
		}
		return jsonResponse(http.StatusOK, `{"success":true,"message":"ok"}`), nil
	})

	client := newTestClient(t, rt, WithTokenSource(TokenFunc(func() string { return "" })))
	if _, err := client.PostJSON(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"}); err != nil {
		t.Fatalf("post: %v", err)
	}
}

func TestClientUnauthorizedFiresHookAndMapsCode(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"success":false,"message":"session expired"}`), nil
	})

	hookFired := false
	client := newTestClient(t, rt, WithOnUnauthorized(func(context.Context) { hookFired = true }))

	_, err := client.GetJSON(context.Background(), "/auth/me", nil)
	if !pkgerrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if !hookFired {
		t.Fatalf("expected unauthorized hook to fire")
	}
	if pkgerrors.UserMessage(err) != "session expired" {
		t.Fatalf("expected server message, got %q", pkgerrors.UserMessage(err))
	}
}

func TestClientApplicationErrorFromSuccessFalse(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":false,"message":"email already registered"}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.PostJSON(context.Background(), "/auth/register-vendor", nil)
	if !pkgerrors.IsApplication(err) {
		t.Fatalf("expected application error, got %v", err)
	}
	if pkgerrors.As(err).Message() != "email already registered" {
		t.Fatalf("unexpected message %q", pkgerrors.As(err).Message())
	}
}

func TestClientApplicationErrorFrom4xx(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"success":false,"message":"title is required"}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.PostJSON(context.Background(), "/vendor/products", map[string]string{})
	if !pkgerrors.IsApplication(err) {
		t.Fatalf("expected application error, got %v", err)
	}
}

func TestClientTransportErrorFrom5xx(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream blew up`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.GetJSON(context.Background(), "/vendor/products", nil)
	if !pkgerrors.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if pkgerrors.UserMessage(err) != "something went wrong, please try again" {
		t.Fatalf("5xx must fall back to the generic message, got %q", pkgerrors.UserMessage(err))
	}
}

func TestClient5xxKeepsServerMessage(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"success":false,"message":"maintenance window in progress"}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.GetJSON(context.Background(), "/vendor/products", nil)
	if !pkgerrors.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if pkgerrors.As(err).Message() != "maintenance window in progress" {
		t.Fatalf("expected the server message to be kept, got %q", pkgerrors.As(err).Message())
	}
}

func TestClientTransportErrorFromNetworkFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	client := newTestClient(t, rt)
	_, err := client.GetJSON(context.Background(), "/vendor/products", nil)
	if !pkgerrors.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestClientForbiddenAndNotFound(t *testing.T) {
	statuses := map[int]func(error) bool{
		http.StatusForbidden: pkgerrors.IsForbidden,
		http.StatusNotFound:  pkgerrors.IsNotFound,
	}
	for status, predicate := range statuses {
		rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(status, `{"success":false,"message":"nope"}`), nil
		})
		client := newTestClient(t, rt)
		_, err := client.GetJSON(context.Background(), "/vendor/analytics", nil)
		if !predicate(err) {
			t.Fatalf("status %d mapped to unexpected error %v", status, err)
		}
	}
}

func TestResourceLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/vendor/products/123", want: "vendor"},
		{path: "auth/login", want: "auth"},
		{path: "/health", want: "health"},
		{path: "", want: "unknown"},
	}
	for _, tt := range tests {
		if got := resourceLabel(tt.path); got != tt.want {
			t.Fatalf("resourceLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatalf("expected error for blank base url")
	}
}
