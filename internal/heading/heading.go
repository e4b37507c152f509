package heading

import (
	"regexp"
	"strings"
	"unicode"
)

// Candidate is the classification result for a single line.
type Candidate struct {
	IsHeading bool
	Level     int // 1..3, structural depth estimate
}

// Patterns that mark a line as a likely section heading.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][A-Z\s]+$`),                // ALL CAPS
	regexp.MustCompile(`^\d+\.\s+[A-Z]`),                 // Numbered sections
	regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*$`), // Title Case
	regexp.MustCompile(`^[A-Z][a-z]+\s*:`),               // Title with colon
	regexp.MustCompile(`^[IVX]+\.\s+[A-Z]`),              // Roman numerals
}

var (
	levelOneNum   = regexp.MustCompile(`^\d+\.\s+`)
	levelTwoNum   = regexp.MustCompile(`^\d+\.\d+\.\s+`)
	levelThreeNum = regexp.MustCompile(`^\d+\.\d+\.\d+\.\s+`)
)

// Classify decides whether a stripped line of page text looks like a section
// heading, and if so at which level. It is a heuristic layout signal, not a
// recovery of the document's true logical structure: short title-case prose
// can qualify and all-caps emphasis lines will too.
func Classify(line string) Candidate {
	return Candidate{IsHeading: IsHeading(line), Level: Level(line)}
}

// IsHeading reports whether a line is likely a heading.
func IsHeading(line string) bool {
	if len(line) < 3 {
		return false
	}

	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}

	// Short lines where most words are capitalized also qualify.
	words := strings.Fields(line)
	if len(words) <= 8 && len(line) <= 80 {
		capitalized := 0
		for _, w := range words {
			r := []rune(w)
			if len(r) > 0 && unicode.IsUpper(r[0]) {
				capitalized++
			}
		}
		if float64(capitalized) >= float64(len(words))*0.7 {
			return true
		}
	}

	return false
}

// Level estimates structural depth from the line's formatting. Deeper numeric
// prefixes are checked first so "1.1. Title" resolves to 2, not 1.
func Level(line string) int {
	switch {
	case levelThreeNum.MatchString(line):
		return 3
	case levelTwoNum.MatchString(line):
		return 2
	case levelOneNum.MatchString(line):
		return 1
	case isUpper(line):
		return 1
	default:
		return 2
	}
}

// isUpper reports whether s has at least one cased character and no
// lowercase ones.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
