// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package bloggen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"heritageiron/internal/models"
	"heritageiron/internal/slug"
	"heritageiron/internal/store"
)

// slugRetryLimit bounds the suffix search when slugs collide. Hitting it
// means something is badly wrong with the posts table.
const slugRetryLimit = 50

// ErrInvalidRequest marks request validation failures so callers can
// return a client error instead of a server error.
var ErrInvalidRequest = errors.New("bloggen: invalid request")

// Completer produces article text from a prompt. Satisfied by *ai.Client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DraftStore persists generated drafts. Satisfied by *store.PostStore.
// Implementations report slug collisions as store.ErrDuplicateSlug.
type DraftStore interface {
	Create(p *models.Post) (*models.Post, error)
}

// Request describes one draft generation job.
type Request struct {
	Topic    string
	Keywords string            // optional, defaults to the topic
	Tone     Tone              // defaults to professional
	Format   models.PostFormat // defaults to html
	AuthorID uuid.UUID
}

// Preview summarizes a generated draft for the admin UI without shipping
// the full article body back.
type Preview struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Excerpt         string `json:"excerpt"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Tags            string `json:"tags"`
	WordCount       int    `json:"word_count"`
}

// Result is the outcome of a single successful generation.
type Result struct {
	PostID  uuid.UUID `json:"post_id"`
	Preview Preview   `json:"preview"`
}

// Generator runs the draft workflow end to end.
type Generator struct {
	completer Completer
	drafts    DraftStore
}

// NewGenerator wires a completion client to a draft store.
func NewGenerator(completer Completer, drafts DraftStore) *Generator {
	return &Generator{completer: completer, drafts: drafts}
}

// Generate produces one AI draft: build the prompt, call the model,
// derive SEO metadata, and persist a draft post under a unique slug.
// Nothing is persisted if the completion fails.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if req.Tone == "" {
		req.Tone = ToneProfessional
	}
	if !ValidTone(req.Tone) {
		return nil, fmt.Errorf("%w: unsupported tone %q", ErrInvalidRequest, req.Tone)
	}
	if req.Format == "" {
		req.Format = models.PostFormatHTML
	}
	if req.Format != models.PostFormatHTML && req.Format != models.PostFormatMarkdown {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRequest, req.Format)
	}

	prompt := BuildPrompt(req.Topic, req.Keywords, req.Tone, req.Format)

	slog.Info("generating blog draft", "topic", req.Topic, "tone", req.Tone, "format", req.Format)
	content, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("bloggen complete: %w", err)
	}
	slog.Info("completion received", "topic", req.Topic, "length", len(content))

	meta := DeriveMetadata(content, req.Topic, req.Keywords)

	post := &models.Post{
		Title:            req.Topic,
		Content:          content,
		Format:           req.Format,
		Excerpt:          &meta.Excerpt,
		MetaTitle:        &meta.MetaTitle,
		MetaDescription:  &meta.MetaDescription,
		Tags:             &meta.Tags,
		Status:           models.PostStatusDraft,
		AIGenerated:      true,
		GenerationPrompt: &prompt,
		AuthorID:         req.AuthorID,
	}

	created, err := g.persistWithUniqueSlug(post, slug.Make(req.Topic))
	if err != nil {
		return nil, err
	}

	return &Result{
		PostID: created.ID,
		Preview: Preview{
			Title:           created.Title,
			Slug:            created.Slug,
			Excerpt:         meta.Excerpt,
			MetaTitle:       meta.MetaTitle,
			MetaDescription: meta.MetaDescription,
			Tags:            meta.Tags,
			WordCount:       len(strings.Fields(content)),
		},
	}, nil
}

// persistWithUniqueSlug inserts the draft, appending -1, -2, ... to the
// base slug until the unique index stops complaining. The database is the
// arbiter of uniqueness, so concurrent generations cannot race past each
// other.
func (g *Generator) persistWithUniqueSlug(post *models.Post, base string) (*models.Post, error) {
	post.Slug = base
	for attempt := 1; ; attempt++ {
		created, err := g.drafts.Create(post)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, store.ErrDuplicateSlug) {
			return nil, fmt.Errorf("bloggen persist: %w", err)
		}
		if attempt >= slugRetryLimit {
			return nil, fmt.Errorf("bloggen persist: no free slug after %d attempts for %q", slugRetryLimit, base)
		}
		post.Slug = fmt.Sprintf("%s-%d", base, attempt)
	}
}

// TopicResult reports one topic's outcome inside a batch run.
type TopicResult struct {
	Success bool    `json:"success"`
	Topic   string  `json:"topic"`
	Error   string  `json:"error,omitempty"`
	Result  *Result `json:"result,omitempty"`
}

// BatchResult is the outcome of an AutoGenerate run.
type BatchResult struct {
	Generated int           `json:"generated"`
	Failed    int           `json:"failed"`
	Results   []TopicResult `json:"results"`
}

// AutoGenerate produces up to two drafts from the built-in topic rotation
// using the enthusiast tone. One topic failing does not abort the rest;
// each failure is captured in its TopicResult.
func (g *Generator) AutoGenerate(ctx context.Context, count int, authorID uuid.UUID) *BatchResult {
	batch := &BatchResult{}

	for _, topic := range pickTopics(count) {
		result, err := g.Generate(ctx, Request{
			Topic:    topic,
			Tone:     ToneEnthusiast,
			AuthorID: authorID,
		})
		if err != nil {
			slog.Error("auto-generate draft failed", "topic", topic, "error", err)
			batch.Failed++
			batch.Results = append(batch.Results, TopicResult{Topic: topic, Error: err.Error()})
			continue
		}
		batch.Generated++
		batch.Results = append(batch.Results, TopicResult{Success: true, Topic: topic, Result: result})
	}

	return batch
}
