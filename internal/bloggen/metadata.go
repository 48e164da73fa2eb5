// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package bloggen

import (
	"regexp"
	"strings"
)

// Metadata carries the SEO fields derived from a generated article.
type Metadata struct {
	MetaTitle       string
	MetaDescription string
	Excerpt         string
	Tags            string
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]`)
)

// Stopwords excluded from tag extraction.
var tagStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
}

// Domain vocabulary always tagged when it appears anywhere in the topic
// or keywords.
var domainTerms = []string{
	"tractor", "restoration", "vintage", "antique", "farming",
	"agriculture", "machinery", "equipment", "diesel", "collector",
}

// DeriveMetadata computes the SEO fields for a generated article. All
// derivation is local string processing; no extra model calls are made.
func DeriveMetadata(content, topic, keywords string) Metadata {
	return Metadata{
		MetaTitle:       metaTitle(topic),
		MetaDescription: metaDescription(content),
		Excerpt:         excerpt(content),
		Tags:            tags(topic, keywords),
	}
}

// metaTitle builds a search title capped at 60 characters. Short topics
// get a " Guide" suffix.
func metaTitle(topic string) string {
	if len(topic) <= 55 {
		return topic + " Guide"
	}
	return truncate(topic, 60)
}

// metaDescription strips markup from the article and takes the first 155
// characters followed by an ellipsis.
func metaDescription(content string) string {
	text := plainText(content)
	return truncate(text, 155) + "..."
}

// excerpt takes the first two sentences of the stripped article, capped
// at 300 characters.
func excerpt(content string) string {
	text := plainText(content)
	sentences := sentenceRe.FindAllString(text, 2)
	return truncate(strings.Join(sentences, " "), 300)
}

// tags extracts up to eight comma-separated tags: meaningful words from
// the topic and keywords, plus any domain vocabulary they mention.
func tags(topic, keywords string) string {
	seen := map[string]bool{}
	var out []string

	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}

	words := append(strings.Split(topic, " "), strings.Split(keywords, " ")...)
	for _, w := range words {
		clean := nonAlnumRe.ReplaceAllString(strings.ToLower(w), "")
		if len(clean) > 3 && !tagStopwords[clean] {
			add(clean)
		}
	}

	lowerTopic := strings.ToLower(topic)
	lowerKeywords := strings.ToLower(keywords)
	for _, term := range domainTerms {
		if strings.Contains(lowerTopic, term) || strings.Contains(lowerKeywords, term) {
			add(term)
		}
	}

	if len(out) > 8 {
		out = out[:8]
	}
	return strings.Join(out, ", ")
}

// plainText strips HTML tags and collapses whitespace.
func plainText(content string) string {
	text := htmlTagRe.ReplaceAllString(content, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// truncate caps s at n runes without splitting a multibyte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
