// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"heritageiron/internal/cache"
	"heritageiron/internal/middleware"
	"heritageiron/internal/models"
	"heritageiron/internal/slug"
	"heritageiron/internal/store"
)

// Admin groups the dashboard API handlers: content management, contact
// triage, user administration, and site settings. Mutations invalidate
// the public response cache so changes appear immediately.
type Admin struct {
	posts     *store.PostStore
	projects  *store.ProjectStore
	contacts  *store.ContactStore
	users     *store.UserStore
	settings  *store.SiteSettingsStore
	responses *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(posts *store.PostStore, projects *store.ProjectStore, contacts *store.ContactStore, users *store.UserStore, settings *store.SiteSettingsStore, responses *cache.ResponseCache) *Admin {
	return &Admin{
		posts:     posts,
		projects:  projects,
		contacts:  contacts,
		users:     users,
		settings:  settings,
		responses: responses,
	}
}

// Dashboard returns the counts shown on the admin landing view.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	published, err := a.posts.CountByStatus(models.PostStatusPublished)
	if err != nil {
		slog.Error("dashboard post count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	drafts, err := a.posts.CountByStatus(models.PostStatusDraft)
	if err != nil {
		slog.Error("dashboard draft count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	projects, err := a.projects.Count()
	if err != nil {
		slog.Error("dashboard project count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	newContacts, err := a.contacts.CountNew()
	if err != nil {
		slog.Error("dashboard contact count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"published_posts": published,
		"draft_posts":     drafts,
		"projects":        projects,
		"new_contacts":    newContacts,
	})
}

// --- Posts ---

// postRequest is the payload for creating or updating a post.
type postRequest struct {
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Content         string  `json:"content"`
	Format          string  `json:"format"`
	Excerpt         *string `json:"excerpt"`
	FeaturedImage   *string `json:"featured_image"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	Tags            *string `json:"tags"`
	Status          string  `json:"status"`
}

// ListPosts returns every post including drafts, newest first.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.List()
	if err != nil {
		slog.Error("admin list posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// GetPost returns a single post by ID, drafts included.
func (a *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	post, err := a.posts.FindByID(id)
	if err != nil {
		slog.Error("admin get post failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not load post")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

// CreatePost creates a post authored by the session user. An omitted
// slug is derived from the title.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePost(req.Title, req.Slug, req.Content); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	post := postFromRequest(&req)
	post.AuthorID = sess.UserID
	if post.Slug == "" {
		post.Slug = slug.Make(req.Title)
	}

	created, err := a.posts.Create(post)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			writeError(w, http.StatusConflict, "a post with this slug already exists")
			return
		}
		slog.Error("admin create post failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create post")
		return
	}

	a.responses.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"post": created})
}

// UpdatePost modifies an existing post. Publishing a draft stamps
// published_at in the store.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePost(req.Title, req.Slug, req.Content); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := a.posts.FindByID(id)
	if err != nil {
		slog.Error("admin update post lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not load post")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	updated := postFromRequest(&req)
	updated.ID = existing.ID
	updated.AuthorID = existing.AuthorID
	updated.PublishedAt = existing.PublishedAt
	if updated.Slug == "" {
		updated.Slug = existing.Slug
	}

	if err := a.posts.Update(updated); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			writeError(w, http.StatusConflict, "a post with this slug already exists")
			return
		}
		slog.Error("admin update post failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not update post")
		return
	}

	a.responses.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeletePost removes a post.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := a.posts.Delete(id); err != nil {
		slog.Error("admin delete post failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete post")
		return
	}

	a.responses.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func postFromRequest(req *postRequest) *models.Post {
	status := models.PostStatus(req.Status)
	if status == "" {
		status = models.PostStatusDraft
	}
	format := models.PostFormat(req.Format)
	if format == "" {
		format = models.PostFormatHTML
	}
	return &models.Post{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Format:          format,
		Excerpt:         req.Excerpt,
		FeaturedImage:   req.FeaturedImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Tags:            req.Tags,
		Status:          status,
	}
}

// --- Projects ---

// projectImageRequest is one gallery image in a project payload.
type projectImageRequest struct {
	URL      string  `json:"url"`
	Alt      *string `json:"alt"`
	Position int     `json:"position"`
}

// projectRequest is the payload for creating or updating a project.
type projectRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	Featured    bool                  `json:"featured"`
	Images      []projectImageRequest `json:"images"`
}

// ListProjects returns every project for the admin gallery manager.
func (a *Admin) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.List()
	if err != nil {
		slog.Error("admin list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load projects")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// CreateProject creates a project with its image gallery.
func (a *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProject(req.Title, req.Description, len(req.Images)); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	project := projectFromRequest(&req)
	project.AuthorID = sess.UserID

	created, err := a.projects.Create(project)
	if err != nil {
		slog.Error("admin create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create project")
		return
	}

	a.responses.InvalidateProjects(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"project": created})
}

// UpdateProject modifies a project. The submitted image list replaces the
// existing gallery in full.
func (a *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProject(req.Title, req.Description, len(req.Images)); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := a.projects.FindByID(id)
	if err != nil {
		slog.Error("admin update project lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not load project")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	updated := projectFromRequest(&req)
	updated.ID = existing.ID
	updated.AuthorID = existing.AuthorID

	if err := a.projects.Update(updated); err != nil {
		slog.Error("admin update project failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not update project")
		return
	}

	a.responses.InvalidateProjects(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteProject removes a project and its images (cascade).
func (a *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := a.projects.Delete(id); err != nil {
		slog.Error("admin delete project failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete project")
		return
	}

	a.responses.InvalidateProjects(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func projectFromRequest(req *projectRequest) *models.Project {
	status := models.ProjectStatus(req.Status)
	if status == "" {
		status = models.ProjectStatusPlanned
	}
	images := make([]models.ProjectImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, models.ProjectImage{
			URL:      img.URL,
			Alt:      img.Alt,
			Position: img.Position,
		})
	}
	return &models.Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Featured:    req.Featured,
		Images:      images,
	}
}

// --- Contact triage ---

// ListContacts returns submissions, optionally filtered with ?status=new.
func (a *Admin) ListContacts(w http.ResponseWriter, r *http.Request) {
	status := models.SubmissionStatus(r.URL.Query().Get("status"))

	items, err := a.contacts.List(status)
	if err != nil {
		slog.Error("admin list contacts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load submissions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": items})
}

type contactStatusRequest struct {
	Status string `json:"status"`
}

// UpdateContactStatus moves a submission through the triage states.
func (a *Admin) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req contactStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := models.SubmissionStatus(req.Status)
	switch status {
	case models.SubmissionStatusNew, models.SubmissionStatusRead, models.SubmissionStatusResponded:
	default:
		writeError(w, http.StatusUnprocessableEntity, "unknown status")
		return
	}

	if err := a.contacts.UpdateStatus(id, status); err != nil {
		slog.Error("admin contact triage failed", "error", err, "id", id)
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteContact removes a submission.
func (a *Admin) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := a.contacts.Delete(id); err != nil {
		slog.Error("admin delete contact failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete submission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --- Users (admin role required at the router) ---

// userResponse hides the password hash and TOTP secret.
type userResponse struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
	TOTPEnabled bool        `json:"totp_enabled"`
}

// ListUsers returns all dashboard accounts.
func (a *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List()
	if err != nil {
		slog.Error("admin list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load users")
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        u.Role,
			TOTPEnabled: u.TOTPEnabled,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

type createUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// CreateUser adds a dashboard account. New accounts must complete 2FA
// setup on first login.
func (a *Admin) CreateUser(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.Get()
	if err != nil {
		slog.Error("settings lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	if !settings.RegistrationEnabled {
		writeError(w, http.StatusForbidden, "registration is disabled")
		return
	}

	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := models.Role(req.Role)
	if role != models.RoleAdmin && role != models.RoleEditor {
		writeError(w, http.StatusUnprocessableEntity, "role must be admin or editor")
		return
	}
	if len(req.Password) < 12 {
		writeError(w, http.StatusUnprocessableEntity, "password must be at least 12 characters")
		return
	}

	created, err := a.users.Create(req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		slog.Error("admin create user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": userResponse{
		ID:          created.ID,
		Email:       created.Email,
		DisplayName: created.DisplayName,
		Role:        created.Role,
		TOTPEnabled: created.TOTPEnabled,
	}})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (a *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess.UserID == id {
		writeError(w, http.StatusConflict, "cannot delete your own account")
		return
	}

	if err := a.users.Delete(id); err != nil {
		slog.Error("admin delete user failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ResetUserTOTP clears a user's 2FA enrollment so they can re-enroll on
// next login. Used when someone loses their authenticator.
func (a *Admin) ResetUserTOTP(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := a.users.ResetTOTP(id); err != nil {
		slog.Error("admin reset totp failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not reset two-factor")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --- Site settings ---

// GetSettings returns the site-wide toggles.
func (a *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.Get()
	if err != nil {
		slog.Error("settings lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

type settingsRequest struct {
	RegistrationEnabled bool `json:"registration_enabled"`
	SignInEnabled       bool `json:"sign_in_enabled"`
}

// UpdateSettings replaces the site-wide toggles.
func (a *Admin) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := a.settings.Update(req.RegistrationEnabled, req.SignInEnabled, sess.UserID)
	if err != nil {
		slog.Error("settings update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not update settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": updated})
}

// parseIDParam parses the {id} URL parameter, writing a 400 on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
