// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// Package ai provides the text-completion client used by the blog draft
// generator. It talks to the Anthropic Messages API (POST /v1/messages)
// with a fixed model, output budget, and sampling temperature, and maps
// API failures onto a small set of sentinel errors that callers can
// classify with errors.Is.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for every completion request. The generator issues exactly one
// call per draft; there is no retry, streaming, or backoff.
const (
	DefaultModel  = "claude-3-5-haiku-20241022"
	maxTokens     = 4096
	temperature   = 0.7
	clientTimeout = 120 * time.Second
)

// Sentinel errors for the failure classes the generation workflow cares
// about. Everything else surfaces as a wrapped generic error.
var (
	// ErrNotConfigured means no API credential is available. Checked
	// before any network call is made.
	ErrNotConfigured = errors.New("ai: ANTHROPIC_API_KEY is not configured")

	// ErrUnauthorized means the API rejected the credential (HTTP 401).
	ErrUnauthorized = errors.New("ai: invalid API key")

	// ErrRateLimited means the API returned HTTP 429. No automatic retry
	// is performed; try again later.
	ErrRateLimited = errors.New("ai: rate limit exceeded")

	// ErrEmptyCompletion means the API responded successfully but with no
	// usable text content.
	ErrEmptyCompletion = errors.New("ai: no text content in response")
)

// Config holds the credential and settings for the completion client.
type Config struct {
	APIKey  string
	Model   string // defaults to DefaultModel
	BaseURL string // defaults to the Anthropic API; overridable for tests
}

// Client is a thin HTTP client for the Anthropic Messages API.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a completion client. The credential is injected here
// rather than read from the environment at call time, so tests can run
// against a fake server with a fake key.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: clientTimeout},
	}
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Complete sends a single prompt to the Messages API and returns the
// generated text. Failure classes:
//   - ErrNotConfigured before any network call if no credential is set
//   - ErrUnauthorized on HTTP 401
//   - ErrRateLimited on HTTP 429
//   - ErrEmptyCompletion when the response carries no text
//   - a wrapped generic error for anything else
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: set it in the service environment before generating posts", ErrNotConfigured)
	}

	body := messagesRequest{
		Model:       c.config.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("ai marshal: %w", err)
	}

	url := c.config.BaseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ai request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusUnauthorized:
		return "", fmt.Errorf("%w: check the configured credential", ErrUnauthorized)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: try again in a few moments", ErrRateLimited)
	default:
		return "", fmt.Errorf("ai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result messagesResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ai unmarshal: %w", err)
	}

	// Extract text from the first text content block.
	for _, block := range result.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}

	return "", ErrEmptyCompletion
}

// --- Anthropic Messages API types ---

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}
