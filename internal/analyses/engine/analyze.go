package engine

import "strings"

// Report is the full analysis for one resume text. Its JSON shape is the
// contract with the frontend and must not change field names.
type Report struct {
	Score                     int             `json:"score"`
	Mistakes                  []string        `json:"mistakes"`
	Suggestions               []string        `json:"suggestions"`
	WordCount                 int             `json:"wordCount"`
	Sections                  SectionMap      `json:"sections"`
	SectionPresence           SectionPresence `json:"sectionPresence"`
	Subscores                 Subscores       `json:"subscores"`
	Benchmark                 string          `json:"benchmark"`
	MissingKeywords           []string        `json:"missingKeywords"`
	PresentKeywords           []string        `json:"presentKeywords"`
	PresentKeywordsNormalized []string        `json:"presentKeywordsNormalized"`
	KeywordMatchPercent       int             `json:"keywordMatchPercent"`
	SectionCompletionRate     int             `json:"sectionCompletionRate"`
	ReadabilityIndex          int             `json:"readabilityIndex"`
	IndustryRecommendations   []string        `json:"industryRecommendations"`
}

// Analyze runs the full pipeline on extracted resume text: segmentation,
// feature extraction, scoring, and suggestion generation. It never fails;
// empty or malformed text produces a low-signal report, not an error.
func Analyze(text string) Report {
	f := ExtractFeatures(text)
	card := Score(f)

	return Report{
		Score:                     card.Score,
		Mistakes:                  card.Mistakes,
		Suggestions:               EnrichSuggestions(f, card.Suggestions),
		WordCount:                 f.WordCount,
		Sections:                  f.Sections,
		SectionPresence:           f.SectionPresence,
		Subscores:                 card.Subscores,
		Benchmark:                 card.Benchmark,
		MissingKeywords:           truncate(f.MissingKeywords, 8),
		PresentKeywords:           f.PresentKeywords,
		PresentKeywordsNormalized: normalizeKeywords(f.PresentKeywords),
		KeywordMatchPercent:       card.KeywordMatchPercent,
		SectionCompletionRate:     card.SectionCompletionRate,
		ReadabilityIndex:          card.ReadabilityIndex,
		IndustryRecommendations:   IndustryRecommendations(f.MissingKeywords),
	}
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		var b strings.Builder
		for _, r := range strings.ToLower(kw) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		out = append(out, b.String())
	}
	return out
}
