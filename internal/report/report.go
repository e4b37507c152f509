// Package report shapes the ranked corpus into the triage output document.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/doctriage/internal/section"
)

// TopK is how many ranked sections the report surfaces.
const TopK = 10

// Refined section text is hard-truncated to this many characters.
const maxRefinedChars = 500

// Report is the final triage output.
type Report struct {
	Metadata           Metadata            `json:"metadata"`
	ExtractedSections  []ExtractedSection  `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionRefined `json:"subsection_analysis"`
}

// Metadata records the run inputs and timestamp.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection identifies one top-ranked section.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// SubsectionRefined carries the display-truncated body for the same section.
type SubsectionRefined struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	RefinedText    string `json:"refined_text"`
	ImportanceRank int    `json:"importance_rank"`
}

// Assemble builds the report from the ranked corpus. Both output lists cover
// the same top sections in the same order; importance_rank is the 1-based
// position in the ranking.
func Assemble(ranked []section.Section, documents []string, persona, job string, now time.Time) *Report {
	if documents == nil {
		documents = []string{}
	}
	out := &Report{
		Metadata: Metadata{
			InputDocuments:      documents,
			Persona:             persona,
			JobToBeDone:         job,
			ProcessingTimestamp: now.Format(time.RFC3339),
		},
		ExtractedSections:  []ExtractedSection{},
		SubsectionAnalysis: []SubsectionRefined{},
	}

	top := ranked
	if len(top) > TopK {
		top = top[:TopK]
	}

	for i, s := range top {
		out.ExtractedSections = append(out.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			PageNumber:     s.Page,
			SectionTitle:   s.Title,
			ImportanceRank: i + 1,
		})
		out.SubsectionAnalysis = append(out.SubsectionAnalysis, SubsectionRefined{
			Document:       s.Document,
			PageNumber:     s.Page,
			RefinedText:    Truncate(s.Text),
			ImportanceRank: i + 1,
		})
	}
	return out
}

// Truncate enforces the refined-text display limit: text over 500 characters
// keeps its first 497 and gains a three-character ellipsis marker.
func Truncate(text string) string {
	if len(text) > maxRefinedChars {
		return text[:maxRefinedChars-3] + "..."
	}
	return text
}

// Write saves the report as pretty-printed JSON, creating the output
// directory if needed, and returns the path written.
func Write(r *Report, outputDir, filename string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
