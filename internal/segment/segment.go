// Package segment infers section boundaries from per-page document text.
package segment

import (
	"fmt"
	"strings"

	"github.com/dgallion1/doctriage/internal/heading"
	"github.com/dgallion1/doctriage/internal/section"
)

// Sections below this joined-text length are discarded as noise.
const minSectionChars = 50

// Pages shorter than this produce no fallback section.
const minFallbackChars = 100

type lineHeading struct {
	index int
	text  string
	level int
}

// Document segments one document's pages into raw sections. Each detected
// heading opens a section spanning from its line to the next heading (or end
// of page). A page with no headings contributes a single whole-page fallback
// section when it carries enough text. Sections never cross page boundaries.
func Document(docID string, pages []section.Page) []section.Section {
	var sections []section.Section
	for _, page := range pages {
		sections = append(sections, segmentPage(docID, page)...)
	}
	return sections
}

func segmentPage(docID string, page section.Page) []section.Section {
	lines := strings.Split(page.Text, "\n")

	var headings []lineHeading
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if c := heading.Classify(line); c.IsHeading {
			headings = append(headings, lineHeading{index: i, text: line, level: c.Level})
		}
	}

	if len(headings) == 0 {
		stripped := strings.TrimSpace(page.Text)
		if len(stripped) <= minFallbackChars {
			return nil
		}
		return []section.Section{{
			Document:     docID,
			Page:         page.Number,
			Title:        fmt.Sprintf("Page %d Content", page.Number),
			Text:         stripped,
			HeadingLevel: 1,
		}}
	}

	var sections []section.Section
	for j, h := range headings {
		start := h.index
		end := len(lines)
		if j+1 < len(headings) {
			end = headings[j+1].index
		}

		text := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if len(text) <= minSectionChars {
			continue
		}
		sections = append(sections, section.Section{
			Document:     docID,
			Page:         page.Number,
			Title:        h.text,
			Text:         text,
			HeadingLevel: h.level,
		})
	}
	return sections
}
