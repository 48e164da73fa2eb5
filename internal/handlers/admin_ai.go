// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"heritageiron/internal/ai"
	"heritageiron/internal/bloggen"
	"heritageiron/internal/middleware"
	"heritageiron/internal/models"
)

// SystemUserLookup resolves the account that owns unattended batch
// drafts. Satisfied by *store.UserStore.
type SystemUserLookup interface {
	SystemUser() (*models.User, error)
}

// AdminAI exposes the blog draft generation workflow to the dashboard.
type AdminAI struct {
	generator  *bloggen.Generator
	systemUser SystemUserLookup
}

// NewAdminAI creates the AI handler group.
func NewAdminAI(generator *bloggen.Generator, systemUser SystemUserLookup) *AdminAI {
	return &AdminAI{generator: generator, systemUser: systemUser}
}

type generateRequest struct {
	Topic    string `json:"topic"`
	Keywords string `json:"keywords"`
	Tone     string `json:"tone"`
	Format   string `json:"format"`
}

// Generate produces one AI draft on demand. The draft is owned by the
// requesting user and always lands in draft status for review.
func (h *AdminAI) Generate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.generator.Generate(r.Context(), bloggen.Request{
		Topic:    req.Topic,
		Keywords: req.Keywords,
		Tone:     bloggen.Tone(req.Tone),
		Format:   models.PostFormat(req.Format),
		AuthorID: sess.UserID,
	})
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"post_id": result.PostID,
		"preview": result.Preview,
	})
}

type autoGenerateRequest struct {
	Count int `json:"count"`
}

// AutoGenerate runs a batch of up to two drafts from the built-in topic
// rotation. It is mounted twice: on the dashboard API behind the session
// gates, and on the token-gated internal trigger route for schedulers,
// so it never reads the session. Batch drafts are owned by the system
// account; individual topic failures are reported, not fatal.
func (h *AdminAI) AutoGenerate(w http.ResponseWriter, r *http.Request) {
	var req autoGenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count <= 0 {
		req.Count = 2
	}

	authorID, err := h.batchAuthor(r.Context())
	if err != nil {
		slog.Error("system user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "batch author account is missing")
		return
	}

	batch := h.generator.AutoGenerate(r.Context(), req.Count, authorID)

	slog.Info("auto-generate batch finished",
		"generated", batch.Generated, "failed", batch.Failed)
	writeJSON(w, http.StatusOK, batch)
}

func (h *AdminAI) batchAuthor(ctx context.Context) (uuid.UUID, error) {
	user, err := h.systemUser.SystemUser()
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, errors.New("system user not found")
	}
	return user.ID, nil
}

// writeGenerationError maps the generation failure classes onto HTTP
// statuses the dashboard can present distinctly.
func writeGenerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bloggen.ErrInvalidRequest):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ai.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable,
			"AI generation is not configured; set ANTHROPIC_API_KEY in the service environment")
	case errors.Is(err, ai.ErrUnauthorized):
		writeError(w, http.StatusBadGateway,
			"the AI provider rejected the configured API key")
	case errors.Is(err, ai.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests,
			"AI provider rate limit exceeded; try again in a few moments")
	case errors.Is(err, ai.ErrEmptyCompletion):
		writeError(w, http.StatusBadGateway,
			"the AI provider returned no content")
	default:
		slog.Error("draft generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "draft generation failed")
	}
}
