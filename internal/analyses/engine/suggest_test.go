package engine

import (
	"strings"
	"testing"
)

func TestEnrichSuggestionsDeduplicates(t *testing.T) {
	raised := []string{
		"Use a simple, single-column layout with clear headings to maximize ATS parse rate.",
	}
	suggestions := EnrichSuggestions(Features{}, raised)

	count := 0
	for _, s := range suggestions {
		if s == raised[0] {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected single occurrence, got %d", count)
	}
}

func TestEnrichSuggestionsAlwaysIncludesHygiene(t *testing.T) {
	suggestions := EnrichSuggestions(ExtractFeatures(strongResume), nil)

	hygiene := []string{
		"Use a simple, single-column layout with clear headings to maximize ATS parse rate.",
		"Use consistent tense (past for previous roles, present for current), and consistent punctuation.",
		"Place contact info and links (Email, LinkedIn, GitHub) at the top header area.",
	}
	for _, want := range hygiene {
		if !contains(suggestions, want) {
			t.Fatalf("missing hygiene suggestion %q in %v", want, suggestions)
		}
	}
}

func TestEnrichSuggestionsPadsFromFallbackPool(t *testing.T) {
	// A resume with no deficiencies raises nothing, so the list is hygiene
	// plus the whole fallback pool: nine entries, the pool's maximum.
	suggestions := EnrichSuggestions(ExtractFeatures(strongResume), nil)

	if len(suggestions) != 9 {
		t.Fatalf("len = %d, want 9: %v", len(suggestions), suggestions)
	}
	for _, fallback := range fallbackSuggestions {
		if !contains(suggestions, fallback) {
			t.Fatalf("missing fallback %q", fallback)
		}
	}
}

func TestAnalyzeSuggestionMinimumForImperfectResume(t *testing.T) {
	// Dropping a single keyword makes the resume imperfect and the suggestion
	// list reaches the ten entry minimum.
	text := strings.ReplaceAll(strongResume, "REST and GraphQL APIs", "REST APIs")
	report := Analyze(text)

	if len(report.Suggestions) < 10 {
		t.Fatalf("len = %d, want >= 10: %v", len(report.Suggestions), report.Suggestions)
	}
	if len(report.MissingKeywords) != 1 || report.MissingKeywords[0] != "graphql" {
		t.Fatalf("MissingKeywords = %v", report.MissingKeywords)
	}
	if report.Subscores.Keywords != 14 {
		t.Fatalf("keywords subscore = %d, want 14", report.Subscores.Keywords)
	}
	want := "Highlight experience or learning related to graphql."
	if len(report.IndustryRecommendations) != 1 || report.IndustryRecommendations[0] != want {
		t.Fatalf("IndustryRecommendations = %v", report.IndustryRecommendations)
	}
}

func TestAnalyzeSuggestionsForEmptyText(t *testing.T) {
	report := Analyze("")

	if len(report.Suggestions) < 10 {
		t.Fatalf("len = %d, want >= 10", len(report.Suggestions))
	}
	seen := make(map[string]struct{})
	for _, s := range report.Suggestions {
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate suggestion %q", s)
		}
		seen[s] = struct{}{}
	}
}

func TestEnrichSuggestionsSectionGuidance(t *testing.T) {
	f := ExtractFeatures("no recognizable headers in this text")
	suggestions := EnrichSuggestions(f, nil)

	wantPrefixes := []string{
		"Include Experience entries",
		"Add an Education section",
		"List a Skills section",
		"Add Certifications",
		"Include 1–2 Projects",
	}
	for _, prefix := range wantPrefixes {
		var found bool
		for _, s := range suggestions {
			if strings.HasPrefix(s, prefix) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing guidance with prefix %q", prefix)
		}
	}

	// Summary guidance is absent because headerless text lands in summary.
	for _, s := range suggestions {
		if strings.HasPrefix(s, "Add a concise Professional Summary") {
			t.Fatalf("unexpected summary guidance: %q", s)
		}
	}
}
