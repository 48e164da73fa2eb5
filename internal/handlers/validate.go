package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post, project, and contact fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxBodyLen     = 100_000
	maxExcerptLen  = 1_000
	maxMetaLen     = 500
	maxNameLen     = 200
	maxEmailLen    = 320
	maxPhoneLen    = 40
	maxSubjectLen  = 300
	maxMessageLen  = 10_000
	maxImageCount  = 30
	maxImageURLLen = 2_000
)

// validatePost checks post inputs and returns the first error found.
func validatePost(title, slug, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxBodyLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateProject checks project inputs and returns the first error found.
func validateProject(title, description string, imageCount int) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) > maxBodyLen {
		return "Description is too long (max 100,000 characters)."
	}
	if imageCount > maxImageCount {
		return "Too many images (max 30)."
	}
	return ""
}

// validateContact checks contact form inputs and returns the first error found.
func validateContact(name, email, subject, message string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !strings.Contains(email, "@") {
		return "Email address looks invalid."
	}
	if strings.TrimSpace(subject) == "" {
		return "Subject is required."
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return "Subject is too long (max 300 characters)."
	}
	if strings.TrimSpace(message) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 10,000 characters)."
	}
	return ""
}
