// Package enrich filters, augments and deduplicates raw sections before
// ranking.
package enrich

import (
	"regexp"
	"strings"

	"github.com/dgallion1/doctriage/internal/section"
)

// Retained section text length is in the half-open range (minTextChars,
// maxTextChars]. Anything outside never reaches the ranker.
const (
	minTextChars = 50
	maxTextChars = 5000
)

const maxInsights = 3
const maxActions = 5

// insightIndicators mark sentences worth surfacing as key insights.
var insightIndicators = []string{
	"important", "key", "critical", "significant", "essential",
	"primary", "main", "major", "crucial", "vital",
}

// actionPatterns match action-oriented phrases in section text.
var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)should\s+\w+`),
	regexp.MustCompile(`(?i)must\s+\w+`),
	regexp.MustCompile(`(?i)need\s+to\s+\w+`),
	regexp.MustCompile(`(?i)recommend\s+\w+`),
	regexp.MustCompile(`(?i)ensure\s+\w+`),
	regexp.MustCompile(`(?i)verify\s+\w+`),
	regexp.MustCompile(`(?i)check\s+\w+`),
	regexp.MustCompile(`(?i)validate\s+\w+`),
}

var (
	numberedListRe = regexp.MustCompile(`\d+\.`)
	bulletRe       = regexp.MustCompile(`•|\*|-`)
)

// technicalTerms contribute to the content quality score, counted as
// presence per term rather than frequency.
var technicalTerms = []string{"analysis", "method", "result", "conclusion", "data", "process"}

// Sections runs the full enrichment pass over the merged corpus: length
// gate, derived fields, then a single dedupe pass. Input order is preserved;
// no sorting happens here.
func Sections(in []section.Section) []section.Section {
	var out []section.Section
	for _, s := range in {
		if len(s.Text) < minTextChars || len(s.Text) > maxTextChars {
			continue
		}
		s.KeyInsights = KeyInsights(s.Text)
		s.ActionableItems = ActionableItems(s.Text)
		s.RelevanceReason = RelevanceReason(s.Title)
		s.ContentQualityScore = ContentQuality(s.Text)
		out = append(out, s)
	}
	return dedupe(out)
}

// KeyInsights returns up to 3 sentences, in document order, whose length is
// in (20,200) and that mention an insight indicator.
func KeyInsights(text string) []string {
	var insights []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 || len(sentence) >= 200 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, ind := range insightIndicators {
			if strings.Contains(lower, ind) {
				insights = append(insights, sentence)
				break
			}
		}
		if len(insights) == maxInsights {
			break
		}
	}
	return insights
}

// ActionableItems collects up to 5 unique action phrases from the text.
// First-occurrence order is kept so output is deterministic.
func ActionableItems(text string) []string {
	seen := make(map[string]struct{})
	var actions []string
	for _, p := range actionPatterns {
		for _, m := range p.FindAllString(text, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			actions = append(actions, m)
			if len(actions) == maxActions {
				return actions
			}
		}
	}
	return actions
}

// relevanceRules map title keywords to a reason label. First match wins.
var relevanceRules = []struct {
	keywords []string
	reason   string
}{
	{[]string{"method", "methodology", "approach"}, "Contains methodological information"},
	{[]string{"result", "finding", "outcome"}, "Contains results or findings"},
	{[]string{"conclusion", "summary", "overview"}, "Contains conclusions or summaries"},
	{[]string{"introduction", "background"}, "Contains background or introductory information"},
}

// DefaultRelevanceReason labels sections no title rule matches.
const DefaultRelevanceReason = "Content relevance based on semantic analysis"

// RelevanceReason picks a single label explaining why a section might matter,
// judged by its title alone.
func RelevanceReason(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range relevanceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reason
			}
		}
	}
	return DefaultRelevanceReason
}

// ContentQuality scores text structure and density in [0,1]: medium length,
// numbered lists, bullet markers and technical vocabulary all add weight.
func ContentQuality(text string) float64 {
	score := 0.0

	length := len(text)
	if length >= 100 && length <= 1000 {
		score += 0.3
	} else if length > 1000 && length <= 3000 {
		score += 0.2
	}

	if numberedListRe.MatchString(text) {
		score += 0.2
	}
	if bulletRe.MatchString(text) {
		score += 0.1
	}

	lower := strings.ToLower(text)
	techCount := 0
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			techCount++
		}
	}
	score += min(float64(techCount)*0.1, 0.3)

	return min(score, 1.0)
}

// dedupe keeps the first section seen per fingerprint. The fingerprint
// ignores body text on purpose: same title/document/page collapses even if
// the extracted text differs.
func dedupe(in []section.Section) []section.Section {
	seen := make(map[string]struct{}, len(in))
	var out []section.Section
	for _, s := range in {
		fp := s.Fingerprint()
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, s)
	}
	return out
}
