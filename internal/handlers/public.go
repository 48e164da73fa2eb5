// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"heritageiron/internal/cache"
	"heritageiron/internal/markdown"
	"heritageiron/internal/models"
	"heritageiron/internal/store"
)

// recentPostsLimit is the default page size for the homepage's
// recent-posts strip; maxRecentPostsLimit bounds the ?limit= override.
const (
	recentPostsLimit    = 3
	maxRecentPostsLimit = 20
)

// featuredProjectsLimit caps the featured-projects endpoint.
const featuredProjectsLimit = 6

// Public groups handlers for the public JSON API: the blog, the project
// gallery, and the contact form. GET responses are cached in Valkey; the
// cache stores the encoded body so repeat requests skip the database.
type Public struct {
	posts     *store.PostStore
	projects  *store.ProjectStore
	contacts  *store.ContactStore
	responses *cache.ResponseCache
}

// NewPublic creates a new Public handler group.
func NewPublic(posts *store.PostStore, projects *store.ProjectStore, contacts *store.ContactStore, responses *cache.ResponseCache) *Public {
	return &Public{
		posts:     posts,
		projects:  projects,
		contacts:  contacts,
		responses: responses,
	}
}

// Health reports service liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListPosts returns all published posts, newest first.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.PostsKey()) {
		return
	}

	posts, err := p.posts.ListPublished()
	if err != nil {
		slog.Error("list published posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load posts")
		return
	}

	p.writeAndCache(w, r, cache.PostsKey(), map[string]any{"posts": renderPosts(posts)})
}

// RecentPosts returns the newest published posts for the homepage.
// Accepts ?limit= up to 20; the default is 3.
func (p *Public) RecentPosts(w http.ResponseWriter, r *http.Request) {
	limit := recentPostsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentPostsLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		limit = n
	}

	if p.serveCached(w, r, cache.RecentPostsKey(limit)) {
		return
	}

	posts, err := p.posts.ListRecentPublished(limit)
	if err != nil {
		slog.Error("list recent posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load posts")
		return
	}

	p.writeAndCache(w, r, cache.RecentPostsKey(limit), map[string]any{"posts": renderPosts(posts)})
}

// GetPost returns a single published post by slug. Drafts and scheduled
// posts are invisible here regardless of slug.
func (p *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	if p.serveCached(w, r, cache.PostKey(slugParam)) {
		return
	}

	post, err := p.posts.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slugParam)
		writeError(w, http.StatusInternalServerError, "could not load post")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	p.writeAndCache(w, r, cache.PostKey(slugParam), map[string]any{"post": renderPost(*post)})
}

// ListProjects returns all restoration projects with their image galleries.
func (p *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.ProjectsKey()) {
		return
	}

	projects, err := p.projects.List()
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load projects")
		return
	}

	p.writeAndCache(w, r, cache.ProjectsKey(), map[string]any{"projects": projects})
}

// FeaturedProjects returns the showcase projects for the homepage.
func (p *Public) FeaturedProjects(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.FeaturedProjectsKey()) {
		return
	}

	projects, err := p.projects.ListFeatured(featuredProjectsLimit)
	if err != nil {
		slog.Error("list featured projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load projects")
		return
	}

	p.writeAndCache(w, r, cache.FeaturedProjectsKey(), map[string]any{"projects": projects})
}

// GetProject returns a single project by ID.
func (p *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	if p.serveCached(w, r, cache.ProjectKey(idParam)) {
		return
	}

	project, err := p.projects.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err, "id", idParam)
		writeError(w, http.StatusInternalServerError, "could not load project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	p.writeAndCache(w, r, cache.ProjectKey(idParam), map[string]any{"project": project})
}

// contactRequest is the contact form payload.
type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// SubmitContact stores a contact form submission for admin triage.
// The route is rate-limited per IP at the router.
func (p *Public) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateContact(req.Name, req.Email, req.Subject, req.Message); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := p.contacts.Create(&models.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		slog.Error("contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save your message")
		return
	}

	slog.Info("contact submission received", "id", created.ID, "subject", created.Subject)
	writeJSON(w, http.StatusCreated, map[string]any{"id": created.ID})
}

// serveCached writes the cached response body for key if present.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if p.responses == nil {
		return false
	}
	body, ok := p.responses.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	return true
}

// writeAndCache encodes v, stores the body under key, and writes it.
func (p *Public) writeAndCache(w http.ResponseWriter, r *http.Request, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response encode failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "encoding error")
		return
	}
	if p.responses != nil {
		p.responses.Set(r.Context(), key, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// renderPost returns the post with Markdown content converted to HTML.
// HTML-format posts (including all AI HTML drafts) pass through unchanged.
func renderPost(p models.Post) models.Post {
	if p.Format == models.PostFormatMarkdown {
		if html, err := markdown.ToHTML(p.Content); err == nil {
			p.Content = html
		} else {
			slog.Warn("markdown render failed", "slug", p.Slug, "error", err)
		}
	}
	return p
}

func renderPosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = renderPost(p)
	}
	return out
}
