// Package pipeline orchestrates the triage run: per-document segmentation
// fans out over a bounded worker pool, results merge at a barrier, then
// enrichment, ranking and report assembly run over the full corpus.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/doctriage/internal/enrich"
	"github.com/dgallion1/doctriage/internal/parser"
	"github.com/dgallion1/doctriage/internal/rank"
	"github.com/dgallion1/doctriage/internal/report"
	"github.com/dgallion1/doctriage/internal/section"
	"github.com/dgallion1/doctriage/internal/segment"
)

// Document is one input document held in memory.
type Document struct {
	Name string
	Data []byte
}

// Engine runs the triage pipeline. It is safe for concurrent use; each Run
// builds its own ranking state.
type Engine struct {
	log   *slog.Logger
	stats *StageStats

	workers              int
	docTimeout           time.Duration
	pdfFallbackPdftotext bool
}

// Options configure an Engine.
type Options struct {
	Workers              int           // Concurrent document segmentations.
	DocTimeout           time.Duration // Per-document budget; 0 disables it.
	PDFFallbackPdftotext bool
}

func NewEngine(log *slog.Logger, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Engine{
		log:                  log,
		stats:                NewStageStats(time.Hour),
		workers:              opts.Workers,
		docTimeout:           opts.DocTimeout,
		pdfFallbackPdftotext: opts.PDFFallbackPdftotext,
	}
}

// Stats exposes stage latency aggregates for the API surface.
func (e *Engine) Stats() *StageStats { return e.stats }

// RunDir triages every supported document in dir against the persona+job
// query and returns the assembled report.
func (e *Engine) RunDir(ctx context.Context, dir, persona, job string) (*report.Report, error) {
	docs, err := loadDir(dir)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, docs, persona, job)
}

// Run triages an in-memory document batch. Persona and job are required:
// without them no query can be built, so the run aborts before touching any
// document. Unreadable documents are skipped and excluded from the report's
// input list; an empty surviving corpus still produces a (mostly empty)
// report.
func (e *Engine) Run(ctx context.Context, docs []Document, persona, job string) (*report.Report, error) {
	persona = strings.TrimSpace(persona)
	job = strings.TrimSpace(job)
	if persona == "" || job == "" {
		return nil, fmt.Errorf("persona and job_to_be_done are required")
	}

	ranker := rank.New(persona, job)
	e.log.Info("starting triage run", "documents", len(docs), "query", ranker.Query())

	// Phase 1: segment each document, bounded fan-out. Documents are
	// independent until the corpus merge, so no shared state here.
	segStart := time.Now()
	type docResult struct {
		idx      int
		name     string
		sections []section.Section
		err      error
	}
	results := make(chan docResult, len(docs))
	sem := make(chan struct{}, e.workers)

	for i, doc := range docs {
		sem <- struct{}{}
		go func(i int, doc Document) {
			defer func() { <-sem }()
			dctx := ctx
			if e.docTimeout > 0 {
				var cancel context.CancelFunc
				dctx, cancel = context.WithTimeout(ctx, e.docTimeout)
				defer cancel()
			}
			secs, err := e.segmentDocument(dctx, doc)
			results <- docResult{idx: i, name: doc.Name, sections: secs, err: err}
		}(i, doc)
	}

	// Barrier: ranking needs the full merged corpus, so nothing proceeds
	// until every document has reported back.
	collected := make([]docResult, 0, len(docs))
	for range docs {
		collected = append(collected, <-results)
	}
	// Restore input order so re-running the same batch is deterministic.
	sort.Slice(collected, func(i, j int) bool { return collected[i].idx < collected[j].idx })

	var corpus []section.Section
	var processed []string
	for _, r := range collected {
		if r.err != nil {
			e.log.Warn("skipping document", "document", r.name, "error", r.err)
			continue
		}
		processed = append(processed, r.name)
		corpus = append(corpus, r.sections...)
	}
	e.stats.Record(StageSegment, time.Since(segStart).Milliseconds())
	e.log.Info("segmentation complete", "documents", len(processed), "sections", len(corpus))

	// Phase 2: enrich and dedupe the merged corpus.
	enrichStart := time.Now()
	corpus = enrich.Sections(corpus)
	e.stats.Record(StageEnrich, time.Since(enrichStart).Milliseconds())

	// Phase 3: rank against the query.
	rankStart := time.Now()
	ranked := ranker.Rank(corpus)
	e.stats.Record(StageRank, time.Since(rankStart).Milliseconds())
	e.log.Info("ranking complete", "sections", len(ranked))

	return report.Assemble(ranked, processed, persona, job, time.Now()), nil
}

// segmentDocument extracts pages and infers sections for one document,
// honoring the per-document budget: on expiry the document is dropped and
// the run continues without it.
func (e *Engine) segmentDocument(ctx context.Context, doc Document) ([]section.Section, error) {
	type out struct {
		sections []section.Section
		err      error
	}
	ch := make(chan out, 1)

	go func() {
		p, err := parser.ForFile(doc.Name)
		if err != nil {
			ch <- out{err: err}
			return
		}
		if pdf, ok := p.(*parser.PDFParser); ok {
			pdf.FallbackPdftotext = e.pdfFallbackPdftotext
		}
		pages, err := p.Parse(bytes.NewReader(doc.Data), doc.Name)
		if err != nil {
			ch <- out{err: fmt.Errorf("parse: %w", err)}
			return
		}
		ch <- out{sections: segment.Document(doc.Name, pages)}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-ch:
		return o.sections, o.err
	}
}

// loadDir reads every supported file in dir, in name order.
func loadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !parser.IsSupportedExtension(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			// Unreadable file: same policy as an unparseable one.
			continue
		}
		docs = append(docs, Document{Name: entry.Name(), Data: data})
	}
	return docs, nil
}
