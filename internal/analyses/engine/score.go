package engine

import (
	"fmt"
	"math"
	"strings"
)

// Subscores isolate the evaluation dimensions that make up the overall score.
type Subscores struct {
	Sections     int `json:"sections"`
	Keywords     int `json:"keywords"`
	Achievements int `json:"achievements"`
	Formatting   int `json:"formatting"`
	ATS          int `json:"ats"`
}

// Scorecard is the scorer's output: the bounded overall score, per-dimension
// subscores, the letter benchmark, and the derived display metrics. Mistakes
// and Suggestions collect the messages raised while the rules were evaluated;
// the suggestion engine enriches Suggestions afterwards.
type Scorecard struct {
	Score                 int
	Subscores             Subscores
	Benchmark             string
	KeywordMatchPercent   int
	SectionCompletionRate int
	ReadabilityIndex      int
	Mistakes              []string
	Suggestions           []string
}

const baseScore = 40

// Score applies the additive scoring rules to a feature vector. All terms are
// independent contributions to one accumulator, so their order only matters
// for the order of raised messages.
func Score(f Features) Scorecard {
	score := baseScore
	mistakes := []string{}
	suggestions := []string{}

	mistake := func(msg string) { mistakes = append(mistakes, msg) }
	suggest := func(msg string) { suggestions = append(suggestions, msg) }

	// Length.
	switch {
	case f.WordCount < 150:
		score -= 10
		mistake("Resume is too short (under 150 words).")
		suggest("Add more details about your projects, education, and experiences to reach at least 400-600 words.")
	case f.WordCount > 1000:
		score -= 5
		suggest("Resume might be too long (over 1000 words). Try to be more concise and keep it to 1-2 pages.")
	default:
		score += 10
	}

	// Key sections in the flat text.
	if len(f.FoundSections) == len(flatSections) {
		score += 15
	} else {
		missing := complement(flatSections, f.FoundSections)
		if contains(missing, "education") || contains(missing, "experience") || contains(missing, "skills") {
			mistake(fmt.Sprintf("Missing key sections: %s", strings.Join(missing, ", ")))
		}
		suggest(fmt.Sprintf("Ensure you clearly label sections like: %s.", strings.Join(missing, ", ")))
		score += len(f.FoundSections) * 2
	}

	// Contact info.
	if f.HasEmail {
		score += 5
	} else {
		mistake("No email address found.")
		suggest("Add your professional email address clearly at the top.")
	}
	if f.HasPhone {
		score += 5
	} else {
		suggest("Consider adding a phone number for recruiters to contact you directly.")
	}

	// Digital presence.
	if f.HasLinkedIn {
		score += 5
	} else {
		suggest("Add your LinkedIn profile URL to showcase your professional network.")
	}
	if f.HasPortfolio {
		score += 5
	} else {
		suggest("Add a link to your GitHub, Portfolio, or Project repository to demonstrate your work.")
	}

	// Impact and action verbs.
	if len(f.ActionVerbs) >= 5 {
		score += 10
	} else {
		suggest(fmt.Sprintf("Use strong action verbs to describe your achievements. Examples: %s.", strings.Join(actionVerbs[:5], ", ")))
		score += len(f.ActionVerbs)
	}

	// Quantified results.
	if f.HasQuantified {
		score += 10
	} else {
		suggest(`Quantify your achievements! Use numbers, percentages, or metrics (e.g., "Increased efficiency by 20%", "Managed team of 5").`)
	}

	// Tech skills.
	if len(f.TechSkills) >= 3 {
		score += 5
	} else {
		suggest("List relevant technical skills or tools you are proficient in (e.g., Programming languages, Software).")
	}

	// Negative signals.
	if len(f.Pronouns) > 0 {
		score -= 5
		mistake(fmt.Sprintf("Avoid using first-person pronouns (%s). Use active voice instead.", joinTrimmed(f.Pronouns)))
	}
	if len(f.Passive) > 0 {
		score -= 5
		mistake(fmt.Sprintf("Avoid passive phrases like %q. Use strong action verbs.", f.Passive[0]))
	}
	if len(f.Cliches) > 0 {
		mistake(fmt.Sprintf("Avoid overused buzzwords like %q. Show your skills through examples instead.", f.Cliches[0]))
	}

	// Absence of quantified results is penalized a second time here, on top of
	// the missed +10 above. The duplication exists in the shipped scoring
	// tables and is kept until product decides otherwise.
	if !f.HasQuantified {
		mistake("Critical: No quantifiable results found. Recruiters look for metrics (%, $, numbers) to measure impact.")
		score -= 10
	}

	// Structure and readability.
	if f.BulletLines == 0 {
		suggest("Use concise bullet points under experience and projects instead of long paragraphs.")
		score -= 5
	}
	if f.AvgWordsPerSentence > 30 {
		suggest("Break down long sentences; aim for 12–20 words per sentence for readability.")
		score -= 5
	} else if f.AvgWordsPerSentence < 8 {
		suggest("Provide more substance in each bullet; very short lines lack context.")
	}

	// Dates.
	if !f.HasYearTokens {
		suggest("Include dates for education and experience (e.g., 2023 – 2024).")
		score -= 3
	}

	// ATS-unfriendly characters.
	if f.SpecialCharCount > 50 {
		suggest("Reduce special symbols and decorative characters to improve ATS parsing.")
		score -= 3
	}

	if len(f.VagueTerms) > 0 {
		suggest("Avoid vague terms like etc/various; be specific about technologies and outcomes.")
	}
	if f.InconsistentBullets {
		suggest("Keep bullet punctuation consistent (either end all bullets with a period or none).")
	}

	// Employment or education gaps between adjacent year tokens.
	for i := 1; i < len(f.Years); i++ {
		if f.Years[i]-f.Years[i-1] >= 3 {
			mistake(fmt.Sprintf("Potential employment/education gap detected between %d and %d. Consider addressing briefly.", f.Years[i-1], f.Years[i]))
			break
		}
	}

	if len(f.MissingKeywords) > 0 {
		suggest(fmt.Sprintf("Consider adding relevant industry keywords if applicable: %s.", strings.Join(truncate(f.MissingKeywords, 8), ", ")))
	}

	// Segmented-section bonus, capped at +30.
	sectionsScore := f.SectionPresence.count() * 8
	if sectionsScore > 30 {
		sectionsScore = 30
	}
	score += sectionsScore

	// ATS-hazard contribution shrinks from 20 as hazards accumulate.
	atsScore := 20 - len(f.ATSHazards)*5
	if atsScore < 0 {
		atsScore = 0
	}
	score += atsScore

	if score > 100 {
		score = 100
	}
	if score < 20 {
		score = 20
	}

	keywordMatchPercent := roundPercent(len(f.PresentKeywords), len(industryKeywords))
	sectionCompletionRate := roundPercent(f.SectionPresence.count(), sectionPresenceTotal)
	readabilityIndex := readability(f.AvgWordsPerSentence)

	missingCount := len(f.MissingKeywords)
	if missingCount > 10 {
		missingCount = 10
	}
	achievements := 5
	if f.HasImpactSignal {
		achievements = 15
	}
	formatting := 10
	if f.BulletLines == 0 {
		formatting = 5
	}
	subscores := Subscores{
		Sections:     sectionsScore,
		Keywords:     15 - missingCount,
		Achievements: achievements,
		Formatting:   formatting,
		ATS:          atsScore,
	}

	// Benchmark reflects the score before the substantial-resume floor below.
	benchmark := "C"
	switch {
	case score >= 80:
		benchmark = "A"
	case score >= 60:
		benchmark = "B"
	}

	// Floor the headline numbers for substantive resumes so an imperfect but
	// real document never reads as a near-zero.
	if f.WordCount >= 50 {
		score = max50(score)
		keywordMatchPercent = max50(keywordMatchPercent)
		readabilityIndex = max50(readabilityIndex)
		sectionCompletionRate = max50(sectionCompletionRate)
	}

	return Scorecard{
		Score:                 score,
		Subscores:             subscores,
		Benchmark:             benchmark,
		KeywordMatchPercent:   keywordMatchPercent,
		SectionCompletionRate: sectionCompletionRate,
		ReadabilityIndex:      readabilityIndex,
		Mistakes:              mistakes,
		Suggestions:           suggestions,
	}
}

// readability peaks at roughly 16 words per sentence and degrades
// symmetrically, clamped to [30, 100].
func readability(avgWordsPerSentence int) int {
	base := 100 - int(math.Abs(float64(avgWordsPerSentence-16)))*5
	if base < 30 {
		return 30
	}
	if base > 100 {
		return 100
	}
	return base
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func max50(v int) int {
	if v < 50 {
		return 50
	}
	return v
}

func complement(all, present []string) []string {
	var missing []string
	for _, item := range all {
		if !contains(present, item) {
			missing = append(missing, item)
		}
	}
	return missing
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func truncate(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func joinTrimmed(items []string) string {
	trimmed := make([]string, len(items))
	for i, item := range items {
		trimmed[i] = strings.TrimSpace(item)
	}
	return strings.Join(trimmed, ", ")
}
