// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"heritageiron/internal/models"
)

// postColumns is the scan list shared by every post query.
const postColumns = `id, title, slug, content, format, excerpt, featured_image,
       meta_title, meta_description, tags, status, ai_generated,
       generation_prompt, author_id, published_at, created_at, updated_at`

// PostStore handles all blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Format, &p.Excerpt,
		&p.FeaturedImage, &p.MetaTitle, &p.MetaDescription, &p.Tags,
		&p.Status, &p.AIGenerated, &p.GenerationPrompt, &p.AuthorID,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts including drafts, newest first. Used by the admin.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListPublished returns all published posts, newest publication first.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + ` FROM posts
		WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListRecentPublished returns the most recent published posts, capped at limit.
func (s *PostStore) ListRecentPublished(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by slug for public pages.
// Returns nil if not found or not published.
func (s *PostStore) FindPublishedBySlug(slug string) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE slug = $1 AND status = 'published'
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID.
// A unique-index collision on slug is reported as ErrDuplicateSlug so the
// caller can retry with a suffixed slug.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	// If publishing directly, set the published_at timestamp.
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	if p.Format == "" {
		p.Format = models.PostFormatHTML
	}

	result, err := scanPost(s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, format, excerpt, featured_image,
		                   meta_title, meta_description, tags, status, ai_generated,
		                   generation_prompt, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+postColumns+`
	`, p.Title, p.Slug, p.Content, p.Format, p.Excerpt, p.FeaturedImage,
		p.MetaTitle, p.MetaDescription, p.Tags, p.Status, p.AIGenerated,
		p.GenerationPrompt, p.AuthorID, p.PublishedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create post %q: %w", p.Slug, ErrDuplicateSlug)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post.
func (s *PostStore) Update(p *models.Post) error {
	// If transitioning to published and no published_at set, set it now.
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, content = $3, format = $4, excerpt = $5,
			featured_image = $6, meta_title = $7, meta_description = $8,
			tags = $9, status = $10, published_at = $11, updated_at = NOW()
		WHERE id = $12
	`, p.Title, p.Slug, p.Content, p.Format, p.Excerpt, p.FeaturedImage,
		p.MetaTitle, p.MetaDescription, p.Tags, p.Status, p.PublishedAt, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update post %q: %w", p.Slug, ErrDuplicateSlug)
		}
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// CountByStatus returns the number of posts in the given status.
// Used by the admin dashboard.
func (s *PostStore) CountByStatus(status models.PostStatus) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
