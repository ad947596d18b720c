package engine

import (
	"fmt"
	"strings"
)

const minSuggestions = 10

var fallbackSuggestions = []string{
	"Prioritize relevant experience and projects to the target role, move them above less relevant content.",
	"Avoid first‑person pronouns; write bullets that start with action verbs (e.g., Built, Optimized).",
	"Group similar skills; remove outdated technologies unless directly relevant to the role.",
	"Ensure uniform date formats (e.g., Mar 2024 – Present) across all sections.",
	"Keep resume length to 1 page for early career; 1–2 pages for experienced profiles.",
	"Use a professional file name (e.g., firstname_lastname_resume.pdf).",
}

// EnrichSuggestions extends the scorer-raised suggestions with section,
// readability, keyword, and hygiene guidance, deduplicated by exact message,
// and pads from the fallback pool until at least ten suggestions exist.
// Order is stable: raised suggestions first, then additions in rule order.
func EnrichSuggestions(f Features, raised []string) []string {
	suggestions := append([]string{}, raised...)
	seen := make(map[string]struct{}, len(suggestions))
	for _, s := range suggestions {
		seen[s] = struct{}{}
	}
	add := func(msg string) {
		if _, ok := seen[msg]; ok {
			return
		}
		suggestions = append(suggestions, msg)
		seen[msg] = struct{}{}
	}

	// Section-specific guidance.
	if !f.SectionPresence.Summary {
		add("Add a concise Professional Summary (2–3 lines) with role, experience, and 3 strengths.")
	}
	if !f.SectionPresence.Experience {
		add("Include Experience entries with 3–5 bullets each using action verbs and measurable results.")
	}
	if !f.SectionPresence.Education {
		add("Add an Education section with degree, institution, graduation year, and relevant coursework.")
	}
	if !f.SectionPresence.Skills {
		add("List a Skills section grouped by categories (Languages, Frameworks, Tools).")
	}
	if !f.SectionPresence.Certifications {
		add("Add Certifications or relevant courses to strengthen credibility for your target role.")
	}
	if f.Sections[SectionProjects] == "" {
		add("Include 1–2 Projects highlighting tech stack, your contributions, and outcomes.")
	}

	// Readability and structure.
	if f.BulletLines < 3 {
		add("Convert dense paragraphs into short bullet points; start each with an action verb.")
	}
	if f.AvgWordsPerSentence > 24 {
		add("Shorten sentences; aim for 12–20 words per sentence to improve readability.")
	}

	// Keywords and impact.
	if len(f.MissingKeywords) > 0 {
		top3 := strings.Join(truncate(f.MissingKeywords, 3), ", ")
		add(fmt.Sprintf("Integrate relevant domain keywords thoughtfully in Experience/Projects: %s.", top3))
	}
	if !f.HasQuantified {
		add("Add metrics for impact (e.g., “Improved load time by 35%”, “Reduced costs by $10k”).")
	}
	if f.SpecialCharCount > 50 {
		add("Use standard ASCII characters and avoid decorative symbols to improve ATS parsing.")
	}

	// File and layout hygiene, always present.
	add("Use a simple, single-column layout with clear headings to maximize ATS parse rate.")
	add("Use consistent tense (past for previous roles, present for current), and consistent punctuation.")
	add("Place contact info and links (Email, LinkedIn, GitHub) at the top header area.")

	for i := 0; len(suggestions) < minSuggestions && i < len(fallbackSuggestions); i++ {
		add(fallbackSuggestions[i])
	}

	return suggestions
}

// IndustryRecommendations produces one templated recommendation per missing
// industry keyword, capped at eight.
func IndustryRecommendations(missingKeywords []string) []string {
	capped := truncate(missingKeywords, 8)
	out := make([]string, 0, len(capped))
	for _, kw := range capped {
		out = append(out, fmt.Sprintf("Highlight experience or learning related to %s.", kw))
	}
	return out
}
