// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLHeadingsAndEmphasis(t *testing.T) {
	out, err := ToHTML("## Engine Rebuild\n\nThe **Ford 8N** used a *flathead* four.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}

	if !strings.Contains(out, "<h2") || !strings.Contains(out, "Engine Rebuild") {
		t.Errorf("missing heading: %q", out)
	}
	if !strings.Contains(out, "<strong>Ford 8N</strong>") {
		t.Errorf("missing bold: %q", out)
	}
	if !strings.Contains(out, "<em>flathead</em>") {
		t.Errorf("missing emphasis: %q", out)
	}
}

func TestToHTMLGFMTable(t *testing.T) {
	src := "| Model | Year |\n|-------|------|\n| 8N | 1947 |\n"
	out, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("GFM table not rendered: %q", out)
	}
}

func TestToHTMLRawHTMLPassthrough(t *testing.T) {
	src := `<p class="lead">Hand-written HTML stays intact.</p>`
	out, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, `<p class="lead">`) {
		t.Errorf("raw HTML should pass through: %q", out)
	}
}
