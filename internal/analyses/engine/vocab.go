package engine

// Fixed vocabularies used by the feature extractors. Matching is plain
// substring search with no word boundaries or stemming; "java" matching
// "javascript" is a known limitation that is kept because changing it would
// shift scores observably.

var actionVerbs = []string{
	"managed", "developed", "created", "led", "designed", "implemented",
	"optimized", "achieved", "built", "analyzed", "collaborated",
	"initiated", "resolved", "improved", "spearheaded",
}

var techSkills = []string{
	"python", "java", "javascript", "typescript", "react", "node", "sql",
	"html", "css", "c++", "aws", "docker", "git", "excel", "spring",
	"django", "flask", "go", "kubernetes", "terraform", "power bi", "tableau",
}

var firstPersonPronouns = []string{" i ", " me ", " my ", " we ", " our "}

var passivePhrases = []string{
	"responsible for", "duties included", "worked on", "helped with",
}

var cliches = []string{
	"hardworking", "team player", "go-getter", "synergy", "motivated", "passionate",
}

var vagueTerms = []string{"etc", "various", "responsible for"}

var industryKeywords = []string{
	"api", "microservices", "cloud", "aws", "azure", "gcp", "docker",
	"kubernetes", "ci/cd", "unit testing", "integration testing", "agile",
	"scrum", "rest", "graphql", "c++", "go",
}

// Flat-text section names checked independently of the segmenter.
var flatSections = []string{"education", "experience", "skills", "projects", "contact"}
