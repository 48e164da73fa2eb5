// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// Package router wires all HTTP routes and middleware chains. Routes are
// organized into the public JSON API under /api and the admin API under
// /admin/api with progressively stricter middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"heritageiron/internal/handlers"
	"heritageiron/internal/middleware"
	"heritageiron/internal/session"
)

// Rate limits for the abuse-prone endpoints. Both are per client IP.
const (
	loginLimit    = 10
	loginWindow   = 5 * time.Minute
	contactLimit  = 5
	contactWindow = 10 * time.Minute
)

// Handlers collects the handler groups the router mounts.
type Handlers struct {
	Public *handlers.Public
	Auth   *handlers.Auth
	Admin  *handlers.Admin
	AI     *handlers.AdminAI
	Media  *handlers.Media
}

// New creates the configured chi router. batchToken gates the unattended
// AI trigger route; empty disables it.
func New(sessionStore *session.Store, batchToken string, h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	loginLimiter := middleware.NewRateLimiter(loginLimit, loginWindow)
	contactLimiter := middleware.NewRateLimiter(contactLimit, contactWindow)

	r.Get("/health", h.Public.Health)

	// Public API: the blog, the project gallery, and the contact form.
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", h.Public.ListPosts)
		r.Get("/posts/recent", h.Public.RecentPosts)
		r.Get("/posts/{slug}", h.Public.GetPost)

		r.Get("/projects", h.Public.ListProjects)
		r.Get("/projects/featured", h.Public.FeaturedProjects)
		r.Get("/projects/{id}", h.Public.GetProject)

		r.With(contactLimiter.Middleware).Post("/contact", h.Public.SubmitContact)
	})

	// Unattended trigger for scheduled draft generation. Cron jobs hit
	// this with the shared AI_BATCH_TOKEN; no browser session is involved
	// and the drafts are attributed to the system account.
	r.Route("/internal/ai", func(r chi.Router) {
		r.Use(middleware.RequireBearerToken(batchToken))
		r.Post("/auto-generate", h.AI.AutoGenerate)
	})

	// Admin API.
	r.Route("/admin/api", func(r chi.Router) {
		r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		// 2FA enrollment and verification sit behind auth but before the
		// 2FA gate, or nobody could ever get through it.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", h.Auth.TwoFASetup)
			r.Post("/2fa/verify", h.Auth.TwoFAVerify)
			r.Get("/me", h.Auth.Me)
		})

		// Fully authenticated admin area: session, verified TOTP, CSRF.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.CSRF)

			r.Get("/dashboard", h.Admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Admin.ListPosts)
				r.Post("/", h.Admin.CreatePost)
				r.Get("/{id}", h.Admin.GetPost)
				r.Put("/{id}", h.Admin.UpdatePost)
				r.Delete("/{id}", h.Admin.DeletePost)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Admin.ListProjects)
				r.Post("/", h.Admin.CreateProject)
				r.Put("/{id}", h.Admin.UpdateProject)
				r.Delete("/{id}", h.Admin.DeleteProject)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", h.Admin.ListContacts)
				r.Put("/{id}/status", h.Admin.UpdateContactStatus)
				r.Delete("/{id}", h.Admin.DeleteContact)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/generate", h.AI.Generate)
				r.Post("/auto-generate", h.AI.AutoGenerate)
			})

			r.Route("/media", func(r chi.Router) {
				r.Post("/", h.Media.Upload)
				r.Delete("/", h.Media.Delete)
			})

			// User and settings management is admin-role only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Admin.ListUsers)
				r.Post("/", h.Admin.CreateUser)
				r.Delete("/{id}", h.Admin.DeleteUser)
				r.Post("/{id}/reset-2fa", h.Admin.ResetUserTOTP)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Admin.GetSettings)
				r.Put("/", h.Admin.UpdateSettings)
			})
		})
	})

	return r
}
