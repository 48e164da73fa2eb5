// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

// maxLen caps slug length so URLs and meta titles stay readable.
const maxLen = 60

// nonAlphanumeric matches every run of characters outside [a-z0-9].
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Make creates a URL-friendly slug from the given string.
// Example: "1950 Ford 8N Tractor!" → "1950-ford-8n-tractor"
//
// The transform is total over any input (empty in, empty out) and
// idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxLen {
		result = result[:maxLen]
		// Truncation can leave a dangling hyphen.
		result = strings.TrimRight(result, "-")
	}
	return result
}
