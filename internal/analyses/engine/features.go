package engine

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe      = regexp.MustCompile(`(\+[0-9]{1,3}[-.]?)?\(?[0-9]{3}\)?[-.]?[0-9]{3}[-.]?[0-9]{4}`)
	percentRe    = regexp.MustCompile(`[0-9]%`)
	dollarRe     = regexp.MustCompile(`\$[0-9]`)
	magnitudeRe  = regexp.MustCompile(`(?i)[0-9]+(\+|k|m)`)
	bulletRe     = regexp.MustCompile(`(^|\n)\s*([•\-–·]|[0-9]+\.)\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
	yearTokenRe  = regexp.MustCompile(`\b(19|20)[0-9]{2}\b`)
	yearRe       = regexp.MustCompile(`(19|20)[0-9]{2}`)
	layoutRe     = regexp.MustCompile(`(?i)(table|column|page [0-9])`)
	impactRe     = regexp.MustCompile(`(?i)%|\$|\b(increased|reduced|optimized|saved|improved)\b`)
	openBulletRe = regexp.MustCompile(`(^|\n)\s*([•\-–·]|[0-9]+\.)\s+[^.\n]+[a-zA-Z](\n|$)`)
	punctBullRe  = regexp.MustCompile(`(^|\n)\s*([•\-–·]|[0-9]+\.)\s+[^!\n]+[.!](\n|$)`)
)

// Features is the signal vector the scorer consumes. Every field is computed
// independently of the others; all of them degrade to zero values on empty
// or malformed input instead of failing.
type Features struct {
	WordCount     int
	FoundSections []string

	HasEmail     bool
	HasPhone     bool
	HasLinkedIn  bool
	HasPortfolio bool

	ActionVerbs   []string
	HasQuantified bool
	TechSkills    []string

	Pronouns []string
	Passive  []string
	Cliches  []string

	BulletLines         int
	AvgWordsPerSentence int
	VagueTerms          []string
	InconsistentBullets bool

	HasYearTokens bool
	Years         []int

	SpecialCharCount int
	ATSHazards       []string

	PresentKeywords []string
	MissingKeywords []string

	Sections        SectionMap
	SectionPresence SectionPresence
	HasImpactSignal bool
}

// SectionPresence reports which segmented sections carry content. Achievements
// counts as present when either the achievements or projects bucket is
// non-empty.
type SectionPresence struct {
	Summary        bool `json:"summary"`
	Experience     bool `json:"experience"`
	Education      bool `json:"education"`
	Skills         bool `json:"skills"`
	Certifications bool `json:"certifications"`
	Achievements   bool `json:"achievements"`
}

func (p SectionPresence) count() int {
	n := 0
	for _, present := range [...]bool{p.Summary, p.Experience, p.Education, p.Skills, p.Certifications, p.Achievements} {
		if present {
			n++
		}
	}
	return n
}

const sectionPresenceTotal = 6

// ExtractFeatures computes the full signal vector for a resume. The raw text
// is used for line-oriented signals (bullets, layout hazards), the collapsed
// cleanText for everything token based.
func ExtractFeatures(text string) Features {
	cleanText := strings.Join(strings.Fields(text), " ")
	lowerText := strings.ToLower(cleanText)

	f := Features{
		WordCount: len(strings.Fields(cleanText)),
		Sections:  Segment(text),
	}

	for _, section := range flatSections {
		if strings.Contains(lowerText, section) {
			f.FoundSections = append(f.FoundSections, section)
		}
	}

	f.HasEmail = emailRe.MatchString(cleanText)
	f.HasPhone = phoneRe.MatchString(cleanText) ||
		strings.Contains(lowerText, "phone") ||
		strings.Contains(lowerText, "mobile") ||
		strings.Contains(lowerText, "contact")
	f.HasLinkedIn = strings.Contains(lowerText, "linkedin.com")
	f.HasPortfolio = strings.Contains(lowerText, "github.com") ||
		strings.Contains(lowerText, "gitlab.com") ||
		strings.Contains(lowerText, "behance.net") ||
		strings.Contains(lowerText, "portfolio")

	f.ActionVerbs = substringHits(lowerText, actionVerbs)
	f.HasQuantified = hasQuantifiedResults(cleanText)
	f.TechSkills = substringHits(lowerText, techSkills)

	f.Pronouns = substringHits(lowerText, firstPersonPronouns)
	f.Passive = substringHits(lowerText, passivePhrases)
	f.Cliches = substringHits(lowerText, cliches)
	f.VagueTerms = substringHits(lowerText, vagueTerms)

	f.BulletLines = len(bulletRe.FindAllString(text, -1))
	f.AvgWordsPerSentence = avgWordsPerSentence(cleanText, f.WordCount)
	f.InconsistentBullets = openBulletRe.MatchString(text) && punctBullRe.MatchString(text)

	f.HasYearTokens = yearTokenRe.MatchString(cleanText)
	f.Years = extractYears(cleanText)

	f.SpecialCharCount = countNonASCII(cleanText)
	if f.SpecialCharCount > 50 {
		f.ATSHazards = append(f.ATSHazards, "Many non-ASCII characters")
	}
	if layoutRe.MatchString(text) {
		f.ATSHazards = append(f.ATSHazards, "Potential tables/columns that can confuse ATS")
	}

	f.PresentKeywords = substringHits(lowerText, industryKeywords)
	for _, kw := range industryKeywords {
		if !strings.Contains(lowerText, kw) {
			f.MissingKeywords = append(f.MissingKeywords, kw)
		}
	}

	f.SectionPresence = SectionPresence{
		Summary:        f.Sections[SectionSummary] != "",
		Experience:     f.Sections[SectionExperience] != "",
		Education:      f.Sections[SectionEducation] != "",
		Skills:         f.Sections[SectionSkills] != "",
		Certifications: f.Sections[SectionCertifications] != "",
		Achievements:   f.Sections[SectionAchievements] != "" || f.Sections[SectionProjects] != "",
	}
	f.HasImpactSignal = impactRe.MatchString(cleanText)

	return f
}

func substringHits(lowerText string, vocab []string) []string {
	var hits []string
	for _, term := range vocab {
		if strings.Contains(lowerText, term) {
			hits = append(hits, term)
		}
	}
	return hits
}

func hasQuantifiedResults(cleanText string) bool {
	return percentRe.MatchString(cleanText) ||
		dollarRe.MatchString(cleanText) ||
		magnitudeRe.MatchString(cleanText)
}

func avgWordsPerSentence(cleanText string, wordCount int) int {
	sentences := len(sentenceRe.FindAllString(cleanText, -1))
	if sentences == 0 {
		sentences = 1
	}
	return int(math.Round(float64(wordCount) / float64(sentences)))
}

func extractYears(cleanText string) []int {
	matches := yearRe.FindAllString(cleanText, -1)
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func countNonASCII(s string) int {
	n := 0
	for _, r := range s {
		if r > 0x7F {
			n++
		}
	}
	return n
}
