package section

import "strconv"

// Page is one page of extracted document text, as produced by a parser.
type Page struct {
	Number int    // 1-based page number
	Text   string // Full plain text of the page
}

// Section is a contiguous span of document text treated as one topical unit,
// bounded by a detected heading or covering a whole page as fallback.
//
// A Section is created once by the segmenter, augmented once by the enricher
// and once by the ranker, and never mutated after that.
type Section struct {
	Document     string // Source document identifier (filename)
	Page         int    // 1-based page the section starts on
	Title        string // Heading text (or "Page N Content" for fallbacks)
	Text         string // Section body, including the heading line
	HeadingLevel int    // Structural depth estimate, 1 = top-level

	// Set by the enricher.
	KeyInsights         []string // Up to 3 insight sentences, in document order
	ActionableItems     []string // Up to 5 deduplicated action phrases
	RelevanceReason     string   // One of a fixed label set
	ContentQualityScore float64  // [0,1]

	// Set by the ranker.
	LexicalSimilarity float64 // Cosine similarity to the query, [0,1]
	KeywordScore      float64 // Query-word overlap ratio, [0,1]
	PositionScore     float64 // Page/heading-level signal, [0,1]
	CombinedScore     float64 // Weighted base score before boosts
	ImportanceScore   float64 // Final ranking key, capped to [0,1]
}

// Fingerprint is the corpus-wide identity key used for deduplication.
// Body text is deliberately excluded: two sections with the same title,
// document and page collapse to the first one seen.
func (s *Section) Fingerprint() string {
	return s.Title + "_" + s.Document + "_" + strconv.Itoa(s.Page)
}

// Query builds the combined ranking query from a persona and job description.
func Query(persona, job string) string {
	return persona + ". Task: " + job
}
