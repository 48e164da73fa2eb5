// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecovererCatchesPanics(t *testing.T) {
	panics := []struct {
		name  string
		value any
	}{
		{"string", "posts table went missing"},
		{"error", errors.New("nil project image")},
		{"integer", 42},
	}

	for _, tt := range panics {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", rr.Code)
			}
			assertJSONError(t, rr)
		})
	}
}

func TestRecovererPassThrough(t *testing.T) {
	var called bool
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Header().Set("X-Request-ID", "abc")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if !called {
		t.Fatal("inner handler should have run")
	}
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Errorf("response altered: status %d body %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") != "abc" {
		t.Error("headers set by the handler should survive")
	}
}
