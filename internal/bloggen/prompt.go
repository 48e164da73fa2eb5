// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// Package bloggen implements the AI-assisted blog draft workflow: prompt
// construction, completion via the ai client, SEO metadata derivation, and
// persistence of the resulting draft with a collision-safe slug.
package bloggen

import (
	"fmt"

	"heritageiron/internal/models"
)

// Tone selects the narrative voice requested from the model.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneEnthusiast   Tone = "enthusiast"
	ToneTechnical    Tone = "technical"
)

// ValidTone reports whether t is one of the supported tones.
func ValidTone(t Tone) bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneEnthusiast, ToneTechnical:
		return true
	}
	return false
}

const htmlPromptTemplate = `You are an award-winning journalist writing for TIME Magazine. Create a captivating, deeply researched article about vintage agricultural machinery with the narrative power and visual richness of TIME's best feature stories.

ARTICLE TOPIC: "%[1]s"

=== TIME MAGAZINE WRITING STYLE REQUIREMENTS ===

NARRATIVE VOICE:
- Write with authority, elegance, and storytelling flair
- Use vivid imagery and sensory details that transport readers
- Tone: %[2]s, but always sophisticated and engaging
- Weave in human interest elements and historical significance
- Create emotional connection while maintaining journalistic integrity

CONTENT DEPTH (1800-2500 words):
- Opening: Cinematic scene-setting (3-4 paragraphs)
- 6-8 Major sections with compelling subheadings
- Rich technical detail presented accessibly
- Historical context with specific dates, people, innovations
- Cultural impact and lasting legacy
- Expert insights and real-world applications
- Keywords naturally integrated: %[3]s

=== STRICT HTML FORMATTING - PROFESSIONAL PUBLICATION STANDARD ===

CRITICAL: Output ONLY HTML. NO plain text. NO markdown. Every word must be wrapped in tags.

REQUIRED HTML STRUCTURE:

<p class="lead">Opening paragraph with larger, attention-grabbing text that hooks the reader immediately.</p>

<p>Second paragraph continuing the narrative with vivid details and setting the stage.</p>

<p>Third paragraph establishing the significance and what's to come.</p>

<h2>First Major Section: Compelling Title</h2>

<p>Rich narrative paragraph with <strong>key terms emphasized</strong> and <em>subtle technical details</em> woven naturally into storytelling.</p>

<h3>Subsection: Specific Aspect</h3>

<p>Detailed explanation with technical precision but accessible language.</p>

<ul>
<li><strong>Specification Name:</strong> Detailed value and significance</li>
<li><strong>Feature Name:</strong> What it means and why it matters</li>
<li><strong>Innovation:</strong> Historical context and impact</li>
</ul>

<blockquote>
<p>"Pull quotes or significant statements that deserve emphasis" - Source or context</p>
</blockquote>

<h2>Second Major Section: Another Engaging Title</h2>

<p>Continue with rich, magazine-quality prose...</p>

=== REQUIRED SECTIONS (Adapt titles creatively) ===

1. <h2>Opening Hook Section</h2> - Set the scene dramatically
2. <h2>Historical Genesis</h2> - Origin story with dates, people, innovations
3. <h2>Engineering Marvel</h2> - Technical specs presented compellingly
4. <h2>Design Philosophy</h2> - Why it was built this way
5. <h2>Cultural Impact</h2> - How it changed farming/society
6. <h2>Restoration & Preservation</h2> - Practical guidance
7. <h2>Collector's Perspective</h2> - Value, rarity, market
8. <h2>Legacy & Conclusion</h2> - Lasting impact and future

=== HTML ELEMENTS YOU MUST USE ===

- <p></p> - Every single paragraph
- <p class="lead"></p> - Opening paragraph only
- <h2></h2> - Major sections (6-8 times)
- <h3></h3> - Subsections (12-20 times)
- <strong></strong> - Key terms, specs, names
- <em></em> - Technical terms, subtle emphasis
- <ul><li></li></ul> - Specifications, features, lists
- <ol><li></li></ol> - Step-by-step processes
- <blockquote><p></p></blockquote> - Pull quotes, key insights

NEVER: bare text outside tags, markdown syntax (##, **, -), <b> or <i> tags, plain paragraphs without <p> tags.

=== WRITING QUALITY CHECKLIST ===

- Every paragraph has narrative flow
- Technical details explained accessibly
- Specific dates, numbers, specifications included
- Human elements and stories woven in
- Compelling subheadings that make you want to read more
- Rich vocabulary and varied sentence structure
- Opens with a scene or compelling hook
- Closes with lasting impact and significance
- 100%% HTML formatted - zero plain text

Begin writing the article NOW in pure HTML:`

const markdownPromptTemplate = `You are an expert content writer specializing in vintage tractors, agricultural machinery, and equipment restoration. Create a professional, magazine-quality blog post.

Write a comprehensive, SEO-optimized blog post about: "%[1]s"

CONTENT REQUIREMENTS:
- Length: 1500-2000 words (comprehensive and detailed)
- Tone: %[2]s
- Include specific technical details, history, and restoration insights
- Create engaging narrative that captivates readers
- Natural keyword integration: %[3]s
- Include maintenance tips, historical context, and collector value insights
- Use specific model numbers, years, and technical specifications

FORMAT: Use clean Markdown formatting:
- ## for main headings
- ### for subheadings
- **bold** for emphasis
- * or - for bullet lists
- 1. 2. 3. for numbered lists
- Blank lines between sections

Start writing the article now:`

// BuildPrompt assembles the completion prompt for a topic. When no
// keywords are given the topic itself is used for keyword integration.
func BuildPrompt(topic, keywords string, tone Tone, format models.PostFormat) string {
	if keywords == "" {
		keywords = topic
	}

	template := htmlPromptTemplate
	if format == models.PostFormatMarkdown {
		template = markdownPromptTemplate
	}

	return fmt.Sprintf(template, topic, tone, keywords)
}
