// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"heritageiron/internal/ai"
	"heritageiron/internal/bloggen"
	"heritageiron/internal/middleware"
	"heritageiron/internal/models"
	"heritageiron/internal/session"
	"heritageiron/internal/store"
)

type stubCompleter struct {
	content string
	err     error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

type stubDraftStore struct {
	created []*models.Post
	slugs   map[string]bool
}

func (s *stubDraftStore) Create(p *models.Post) (*models.Post, error) {
	if s.slugs == nil {
		s.slugs = make(map[string]bool)
	}
	if s.slugs[p.Slug] {
		return nil, store.ErrDuplicateSlug
	}
	s.slugs[p.Slug] = true
	cp := *p
	cp.ID = uuid.New()
	s.created = append(s.created, &cp)
	return &cp, nil
}

type stubSystemUser struct {
	user *models.User
	err  error
}

func (s *stubSystemUser) SystemUser() (*models.User, error) {
	return s.user, s.err
}

// withSession attaches session data to the request context the way
// LoadSession would.
func withSession(r *http.Request, data *session.Data) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.SessionKey, data)
	return r.WithContext(ctx)
}

func adminSession() *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "admin@heritageiron.example",
		DisplayName: "Admin",
		Role:        "admin",
		TwoFADone:   true,
	}
}

func TestAdminAIGenerate(t *testing.T) {
	t.Run("creates draft and returns preview", func(t *testing.T) {
		drafts := &stubDraftStore{}
		gen := bloggen.NewGenerator(&stubCompleter{content: "<h1>Ford 8N</h1><p>A fine little tractor. It still earns its keep.</p>"}, drafts)
		h := NewAdminAI(gen, &stubSystemUser{})

		body := `{"topic":"Ford 8N Buyer's Guide","tone":"professional","format":"html"}`
		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/generate", strings.NewReader(body)), adminSession())
		w := httptest.NewRecorder()
		h.Generate(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want 201, body %s", w.Code, w.Body.String())
		}

		var resp struct {
			PostID  uuid.UUID       `json:"post_id"`
			Preview bloggen.Preview `json:"preview"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.PostID == uuid.Nil {
			t.Error("expected a post id")
		}
		if resp.Preview.Slug != "ford-8n-buyer-s-guide" {
			t.Errorf("slug: got %q", resp.Preview.Slug)
		}
		if len(drafts.created) != 1 {
			t.Fatalf("expected 1 draft, got %d", len(drafts.created))
		}
		if drafts.created[0].Status != models.PostStatusDraft {
			t.Errorf("status: got %q, want draft", drafts.created[0].Status)
		}
	})

	t.Run("unknown tone returns 422", func(t *testing.T) {
		gen := bloggen.NewGenerator(&stubCompleter{content: "x"}, &stubDraftStore{})
		h := NewAdminAI(gen, &stubSystemUser{})

		body := `{"topic":"Topic","tone":"sarcastic"}`
		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/generate", strings.NewReader(body)), adminSession())
		w := httptest.NewRecorder()
		h.Generate(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status: got %d, want 422", w.Code)
		}
	})

	t.Run("missing API key returns 503", func(t *testing.T) {
		drafts := &stubDraftStore{}
		gen := bloggen.NewGenerator(ai.NewClient(ai.Config{}), drafts)
		h := NewAdminAI(gen, &stubSystemUser{})

		body := `{"topic":"Topic"}`
		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/generate", strings.NewReader(body)), adminSession())
		w := httptest.NewRecorder()
		h.Generate(w, r)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", w.Code)
		}
		if len(drafts.created) != 0 {
			t.Error("nothing should be persisted when the client is unconfigured")
		}
	})

	t.Run("rate limit maps to 429", func(t *testing.T) {
		gen := bloggen.NewGenerator(&stubCompleter{err: ai.ErrRateLimited}, &stubDraftStore{})
		h := NewAdminAI(gen, &stubSystemUser{})

		body := `{"topic":"Topic"}`
		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/generate", strings.NewReader(body)), adminSession())
		w := httptest.NewRecorder()
		h.Generate(w, r)

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("status: got %d, want 429", w.Code)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		gen := bloggen.NewGenerator(&stubCompleter{content: "x"}, &stubDraftStore{})
		h := NewAdminAI(gen, &stubSystemUser{})

		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/generate", strings.NewReader("{not json")), adminSession())
		w := httptest.NewRecorder()
		h.Generate(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", w.Code)
		}
	})
}

func TestAdminAIAutoGenerate(t *testing.T) {
	t.Run("batch owned by system user", func(t *testing.T) {
		systemID := uuid.New()
		drafts := &stubDraftStore{}
		gen := bloggen.NewGenerator(&stubCompleter{content: "<p>Patina and paint. Both have their place.</p>"}, drafts)
		h := NewAdminAI(gen, &stubSystemUser{user: &models.User{ID: systemID}})

		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/auto-generate", strings.NewReader(`{"count":2}`)), adminSession())
		w := httptest.NewRecorder()
		h.AutoGenerate(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200, body %s", w.Code, w.Body.String())
		}

		var batch bloggen.BatchResult
		if err := json.Unmarshal(w.Body.Bytes(), &batch); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if batch.Generated != 2 {
			t.Errorf("generated: got %d, want 2", batch.Generated)
		}
		for _, p := range drafts.created {
			if p.AuthorID != systemID {
				t.Errorf("draft author: got %s, want system user %s", p.AuthorID, systemID)
			}
		}
	})

	t.Run("runs without a session for scheduled triggers", func(t *testing.T) {
		systemID := uuid.New()
		drafts := &stubDraftStore{}
		gen := bloggen.NewGenerator(&stubCompleter{content: "<p>Rust never sleeps, but neither do we.</p>"}, drafts)
		h := NewAdminAI(gen, &stubSystemUser{user: &models.User{ID: systemID}})

		// No session data on the request at all.
		r := httptest.NewRequest(http.MethodPost, "/internal/ai/auto-generate", strings.NewReader(`{"count":2}`))
		w := httptest.NewRecorder()
		h.AutoGenerate(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200, body %s", w.Code, w.Body.String())
		}
		if len(drafts.created) != 2 {
			t.Fatalf("drafts: got %d, want 2", len(drafts.created))
		}
		for _, p := range drafts.created {
			if p.AuthorID != systemID {
				t.Errorf("draft author: got %s, want system user %s", p.AuthorID, systemID)
			}
		}
	})

	t.Run("missing system user returns 500", func(t *testing.T) {
		gen := bloggen.NewGenerator(&stubCompleter{content: "x"}, &stubDraftStore{})
		h := NewAdminAI(gen, &stubSystemUser{user: nil})

		r := withSession(httptest.NewRequest(http.MethodPost, "/admin/api/ai/auto-generate", strings.NewReader(`{}`)), adminSession())
		w := httptest.NewRecorder()
		h.AutoGenerate(w, r)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", w.Code)
		}
	})
}
