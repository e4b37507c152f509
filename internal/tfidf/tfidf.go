// Package tfidf builds a sparse lexical vector space over a document corpus
// and scores cosine similarity between its rows. A Model is a value built
// fresh per call from the corpus passed in; nothing is shared across runs.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Options control vocabulary construction.
type Options struct {
	MaxFeatures int     // Vocabulary cap; highest-frequency terms are kept.
	MinDocFreq  int     // A term must appear in at least this many documents.
	MaxDocFreq  float64 // ...and in at most this fraction of documents.
	NgramMax    int     // 2 keeps unigrams and bigrams.
}

// DefaultOptions match the ranker's vector space: unigrams+bigrams, English
// stopwords removed, at most 1000 terms, terms in >95% of documents dropped.
func DefaultOptions() Options {
	return Options{
		MaxFeatures: 1000,
		MinDocFreq:  1,
		MaxDocFreq:  0.95,
		NgramMax:    2,
	}
}

// Words of at least two word characters, matching the usual \b\w\w+\b
// tokenization for sparse lexical features.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Model holds the fitted vocabulary, IDF weights and one L2-normalized
// vector per input document.
type Model struct {
	vocab   map[string]int
	idf     []float64
	vectors [][]float64
}

// New fits a TF-IDF model over the corpus and vectorizes every document.
// An empty corpus yields a model whose vectors are all empty.
func New(corpus []string, opts Options) *Model {
	if opts.NgramMax < 1 {
		opts.NgramMax = 1
	}

	tokenized := make([][]string, len(corpus))
	for i, doc := range corpus {
		tokenized[i] = ngrams(tokenize(doc), opts.NgramMax)
	}

	vocab, idf := buildVocabulary(tokenized, len(corpus), opts)

	m := &Model{
		vocab:   vocab,
		idf:     idf,
		vectors: make([][]float64, len(corpus)),
	}
	for i, terms := range tokenized {
		m.vectors[i] = m.vectorize(terms)
	}
	return m
}

// Vector returns the L2-normalized TF-IDF vector for corpus document i.
func (m *Model) Vector(i int) []float64 {
	return m.vectors[i]
}

// Similarity is the cosine similarity between corpus documents i and j.
// Vectors are already unit length, so this is a plain dot product.
func (m *Model) Similarity(i, j int) float64 {
	a, b := m.vectors[i], m.vectors[j]
	var dot float64
	for k := range a {
		dot += a[k] * b[k]
	}
	return dot
}

func buildVocabulary(tokenized [][]string, numDocs int, opts Options) (map[string]int, []float64) {
	df := make(map[string]int)   // document frequency
	tf := make(map[string]int)   // corpus-wide term frequency, for the cap
	for _, terms := range tokenized {
		seen := make(map[string]struct{})
		for _, t := range terms {
			tf[t]++
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	maxDF := numDocs
	if opts.MaxDocFreq > 0 {
		maxDF = int(opts.MaxDocFreq * float64(numDocs))
	}
	minDF := opts.MinDocFreq
	if minDF < 1 {
		minDF = 1
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n < minDF || n > maxDF {
			continue
		}
		terms = append(terms, term)
	}

	// Cap the vocabulary to the most frequent terms; ties break
	// lexicographically so the space is deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if tf[terms[i]] != tf[terms[j]] {
			return tf[terms[i]] > tf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if opts.MaxFeatures > 0 && len(terms) > opts.MaxFeatures {
		terms = terms[:opts.MaxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(numDocs)
	for i, term := range terms {
		vocab[term] = i
		// Smoothed IDF.
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return vocab, idf
}

func (m *Model) vectorize(terms []string) []float64 {
	vec := make([]float64, len(m.idf))
	counts := make(map[int]int)
	for _, t := range terms {
		if idx, ok := m.vocab[t]; ok {
			counts[idx]++
		}
	}
	for idx, c := range counts {
		vec[idx] = float64(c) * m.idf[idx]
	}

	// L2 normalize.
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// tokenize lowercases, extracts word tokens and drops English stopwords.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ngrams expands a token stream into all n-grams up to maxN, joined with
// spaces, unigrams first.
func ngrams(tokens []string, maxN int) []string {
	if maxN == 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*maxN)
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
