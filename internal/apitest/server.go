// Package apitest runs an in-process stand-in for the vendor API so service
// tests can exercise real HTTP round trips, envelope decoding, and failure
// paths without a backend.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Server is an httptest server with a chi router that handlers are mounted on.
type Server struct {
	*httptest.Server
	Router *chi.Mux
}

// NewServer starts a fake API that is torn down with the test.
func NewServer(t *testing.T) *Server {
	t.Helper()
	router := chi.NewRouter()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &Server{Server: srv, Router: router}
}

// WriteSuccess responds with a 200 success envelope.
func WriteSuccess(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

// WriteFailure responds with a failure envelope at the given status.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// DecodeBody reads a JSON request body into dest, failing the test on error.
func DecodeBody(t *testing.T, r *http.Request, dest any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
}
