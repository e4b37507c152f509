// Package rank orders enriched sections by relevance to a persona+job query.
//
// The base signal combines lexical similarity against a per-call TF-IDF
// vector space with keyword overlap, positional and quality scores; persona,
// job and content-type boosts then scale it into the final importance score.
package rank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/doctriage/internal/section"
	"github.com/dgallion1/doctriage/internal/tfidf"
)

// Base score weights.
const (
	weightSimilarity = 0.4
	weightKeyword    = 0.3
	weightPosition   = 0.2
	weightQuality    = 0.1
)

var wordRe = regexp.MustCompile(`\w+`)

// Ranker scores sections against one persona+job query. It holds no state
// beyond the query and its classification; the vector space is rebuilt from
// the corpus on every Rank call.
type Ranker struct {
	query      string
	personaCat PersonaCategory
	jobCat     JobCategory
}

// New builds a ranker for the given persona and job description.
func New(persona, job string) *Ranker {
	return &Ranker{
		query:      section.Query(persona, job),
		personaCat: ClassifyPersona(persona),
		jobCat:     ClassifyJob(job),
	}
}

// Query returns the combined query string the ranker scores against.
func (r *Ranker) Query() string { return r.query }

// Rank returns the sections ordered by importance score, descending. The
// sort is stable: ties keep their input order, and re-ranking the same input
// yields the same sequence. An empty corpus yields an empty ranking.
func (r *Ranker) Rank(sections []section.Section) []section.Section {
	if len(sections) == 0 {
		return nil
	}

	// Query first, then every section: similarity needs one shared
	// vocabulary and weighting pass over the whole corpus.
	corpus := make([]string, 0, len(sections)+1)
	corpus = append(corpus, r.query)
	for _, s := range sections {
		corpus = append(corpus, s.Title+" - "+s.Text)
	}
	model := tfidf.New(corpus, tfidf.DefaultOptions())

	ranked := make([]section.Section, len(sections))
	for i, s := range sections {
		s.LexicalSimilarity = model.Similarity(0, i+1)
		s.KeywordScore = keywordScore(s, r.query)
		s.PositionScore = positionScore(s)
		s.CombinedScore = weightSimilarity*s.LexicalSimilarity +
			weightKeyword*s.KeywordScore +
			weightPosition*s.PositionScore +
			weightQuality*s.ContentQualityScore

		lower := strings.ToLower(s.Title + " " + s.Text)
		personaBoost := r.personaCat.Boost(lower)
		jobBoost := r.jobCat.Boost(lower)
		contentBoost := ContentTypeBoost(s.Title, s.Text)
		s.ImportanceScore = min(s.CombinedScore*(1+personaBoost+jobBoost+contentBoost), 1.0)

		ranked[i] = s
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ImportanceScore > ranked[j].ImportanceScore
	})
	return ranked
}

// keywordScore is the fraction of query words present in the section,
// capped at 1. A query with no tokens scores 0 everywhere.
func keywordScore(s section.Section, query string) float64 {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return 0
	}
	sectionWords := wordSet(s.Title + " " + s.Text)

	overlap := 0
	for w := range queryWords {
		if _, ok := sectionWords[w]; ok {
			overlap++
		}
	}
	return min(float64(overlap)/float64(len(queryWords)), 1.0)
}

// positionScore favors earlier pages and shallower headings.
func positionScore(s section.Section) float64 {
	pageScore := max(0.1, 1.0-float64(s.Page-1)*0.05)
	levelScore := max(0.1, 1.0-float64(s.HeadingLevel-1)*0.2)
	return (pageScore + levelScore) / 2
}

func wordSet(text string) map[string]struct{} {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
