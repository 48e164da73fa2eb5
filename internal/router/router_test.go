// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// Package router tests verify the routing configuration and that the
// authentication gates reject anonymous requests with JSON errors.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"heritageiron/internal/handlers"
	"heritageiron/internal/session"
)

// newTestRouter builds the router with empty handler groups. Routing and
// middleware behavior is all that gets exercised; no request below ever
// reaches a store.
func newTestRouter(batchToken string) http.Handler {
	sessions := session.NewStore(nil, false)
	return New(sessions, batchToken, Handlers{
		Public: handlers.NewPublic(nil, nil, nil, nil),
		Auth:   handlers.NewAuth(sessions, nil),
		Admin:  handlers.NewAdmin(nil, nil, nil, nil, nil, nil),
		AI:     handlers.NewAdminAI(nil, nil),
		Media:  handlers.NewMedia(nil),
	})
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter("")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := newTestRouter("")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/api/dashboard"},
		{http.MethodGet, "/admin/api/posts/"},
		{http.MethodPost, "/admin/api/ai/generate"},
		{http.MethodPost, "/admin/api/media/"},
		{http.MethodGet, "/admin/api/users/"},
		{http.MethodGet, "/admin/api/me"},
		{http.MethodPost, "/admin/api/2fa/verify"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("expected JSON error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestBatchTriggerTokenGate(t *testing.T) {
	t.Run("disabled when no token configured", func(t *testing.T) {
		r := newTestRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/internal/ai/auto-generate", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", w.Code)
		}
	})

	t.Run("rejects request without token", func(t *testing.T) {
		r := newTestRouter("shop-secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/internal/ai/auto-generate", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", w.Code)
		}
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		r := newTestRouter("shop-secret")
		req := httptest.NewRequest(http.MethodPost, "/internal/ai/auto-generate", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", w.Code)
		}
	})
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newTestRouter("")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope/nothing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}
