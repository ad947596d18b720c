package engine

import "strings"

// SectionMap holds the raw text block for each recognized resume section.
// Buckets that were never opened are simply absent; lookups return "".
type SectionMap map[string]string

// Canonical section keys.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
	SectionAchievements   = "achievements"
	SectionContact        = "contact"
)

type sectionHeader struct {
	key    string
	labels []string
}

// Header labels are matched against trimmed, lowercased lines, either exactly
// or as a "label:" prefix. Order matters only for first-match wins.
var sectionHeaders = []sectionHeader{
	{SectionSummary, []string{"summary", "objective", "profile"}},
	{SectionExperience, []string{"experience", "work experience", "professional experience", "employment history"}},
	{SectionEducation, []string{"education", "academics", "qualification"}},
	{SectionSkills, []string{"skills", "technical skills", "skills & tools", "core skills"}},
	{SectionCertifications, []string{"certifications", "certificates", "licenses"}},
	{SectionProjects, []string{"projects", "personal projects"}},
	{SectionAchievements, []string{"achievements", "awards", "accomplishments"}},
	{SectionContact, []string{"contact", "contact information"}},
}

// Segment splits resume text into labeled sections by header-keyword matching.
// Every non-header line lands in the bucket of the most recent header, with
// the document starting in the summary bucket. Header lines themselves are
// dropped. A document with no recognized headers yields a single summary
// bucket holding the entire text.
func Segment(text string) SectionMap {
	buckets := map[string][]string{SectionSummary: {}}
	current := SectionSummary

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		if key, ok := matchHeader(strings.ToLower(line)); ok {
			current = key
			if _, exists := buckets[current]; !exists {
				buckets[current] = []string{}
			}
			continue
		}
		buckets[current] = append(buckets[current], line)
	}

	out := make(SectionMap, len(buckets))
	for key, lines := range buckets {
		out[key] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return out
}

func matchHeader(lower string) (string, bool) {
	for _, header := range sectionHeaders {
		for _, label := range header.labels {
			if lower == label || strings.HasPrefix(lower, label+":") {
				return header.key, true
			}
		}
	}
	return "", false
}
