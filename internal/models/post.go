// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
)

// PostFormat identifies the markup the post body is written in.
// AI-generated drafts record the format they were requested in so the
// public renderer knows whether Markdown conversion is needed.
type PostFormat string

const (
	PostFormatHTML     PostFormat = "html"
	PostFormatMarkdown PostFormat = "markdown"
)

// Post represents a blog post. AI-generated drafts carry the exact prompt
// that produced them (GenerationPrompt) for auditability.
type Post struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Content          string     `json:"content"`
	Format           PostFormat `json:"format"`
	Excerpt          *string    `json:"excerpt,omitempty"`
	FeaturedImage    *string    `json:"featured_image,omitempty"`
	MetaTitle        *string    `json:"meta_title,omitempty"`
	MetaDescription  *string    `json:"meta_description,omitempty"`
	Tags             *string    `json:"tags,omitempty"`
	Status           PostStatus `json:"status"`
	AIGenerated      bool       `json:"ai_generated"`
	GenerationPrompt *string    `json:"-"` // Internal audit trail, not exposed publicly
	AuthorID         uuid.UUID  `json:"author_id"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
