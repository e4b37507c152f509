package enrich

import (
	"math"
	"strings"
	"testing"

	"github.com/dgallion1/doctriage/internal/section"
)

func TestSections_LengthGate(t *testing.T) {
	keep := strings.Repeat("relevant body text for the analysis step here. ", 3)
	in := []section.Section{
		{Document: "a.pdf", Page: 1, Title: "Short", Text: "too short"},
		{Document: "a.pdf", Page: 2, Title: "Kept", Text: keep},
		{Document: "a.pdf", Page: 3, Title: "Huge", Text: strings.Repeat("x", 5001)},
	}
	out := Sections(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 surviving section, got %d", len(out))
	}
	if out[0].Title != "Kept" {
		t.Errorf("wrong section survived: %q", out[0].Title)
	}
}

func TestSections_BoundaryLengths(t *testing.T) {
	// Exactly 50 chars is dropped, 51 is kept; 5000 is kept, 5001 is dropped.
	cases := []struct {
		n    int
		want int
	}{
		{50, 0},
		{51, 1},
		{5000, 1},
		{5001, 0},
	}
	for _, tc := range cases {
		in := []section.Section{{Document: "d", Page: 1, Title: "T", Text: strings.Repeat("x", tc.n)}}
		if got := len(Sections(in)); got != tc.want {
			t.Errorf("len=%d: got %d sections, want %d", tc.n, got, tc.want)
		}
	}
}

func TestKeyInsights(t *testing.T) {
	text := "This finding is important for the overall study. " +
		"Tiny key bit. " + // 13 chars, under the sentence floor
		"The critical parameter was temperature across all trials. " +
		"A key observation concerns the sampling frequency used here. " +
		"Another significant deviation appeared in the second cohort."
	got := KeyInsights(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 insights (capped), got %d: %v", len(got), got)
	}
	if !strings.Contains(got[0], "important") {
		t.Errorf("first insight should be the earliest qualifying sentence, got %q", got[0])
	}
	if strings.Contains(strings.Join(got, "|"), "Tiny key bit") {
		t.Error("sentences of 20 chars or fewer must not qualify")
	}
}

func TestKeyInsights_NoIndicators(t *testing.T) {
	if got := KeyInsights("Plain description of the apparatus with no flagged vocabulary at all."); len(got) != 0 {
		t.Errorf("expected no insights, got %v", got)
	}
}

func TestActionableItems(t *testing.T) {
	text := "Teams should review the logs daily. Operators must restart the " +
		"service after upgrades. You need to archive old reports. We " +
		"recommend testing in staging first. Always verify checksums. " +
		"Also check permissions. Then validate backups. Teams should review again."
	got := ActionableItems(text)
	if len(got) != 5 {
		t.Fatalf("expected 5 actions (capped), got %d: %v", len(got), got)
	}
	if got[0] != "should review" {
		t.Errorf("expected first action %q, got %q", "should review", got[0])
	}
	for i, a := range got {
		for j := i + 1; j < len(got); j++ {
			if a == got[j] {
				t.Errorf("duplicate action %q at %d and %d", a, i, j)
			}
		}
	}
}

func TestRelevanceReason(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Methodology", "Contains methodological information"},
		{"3. Experimental Approach", "Contains methodological information"},
		{"Results and Discussion", "Contains results or findings"},
		{"Conclusion", "Contains conclusions or summaries"},
		{"Introduction", "Contains background or introductory information"},
		{"Appendix B", DefaultRelevanceReason},
	}
	for _, tc := range cases {
		if got := RelevanceReason(tc.title); got != tc.want {
			t.Errorf("RelevanceReason(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestContentQuality(t *testing.T) {
	// Medium length (0.3) plus two technical terms (0.2); no lists, bullets
	// or other technical vocabulary.
	text := "The analysis of the collected data shows a clear trend across all " +
		"observed groups and supports the earlier qualitative review of " +
		"participant feedback sessions during both phases."
	if len(text) < 100 || len(text) > 1000 {
		t.Fatalf("fixture length drifted: %d", len(text))
	}
	got := ContentQuality(text)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ContentQuality = %v, want 0.5", got)
	}
}

func TestContentQuality_Clamped(t *testing.T) {
	// Everything at once still caps at 1.0.
	text := "1. analysis method result conclusion data process\n" +
		"• bullet item\n" + strings.Repeat("structured content here ", 10)
	got := ContentQuality(text)
	if got > 1.0 {
		t.Errorf("ContentQuality exceeded 1.0: %v", got)
	}
	if got <= 0 {
		t.Errorf("ContentQuality should be positive, got %v", got)
	}
}

func TestSections_DedupeFirstWins(t *testing.T) {
	body := strings.Repeat("enough text to clear the minimum length gate. ", 2)
	in := []section.Section{
		{Document: "a.pdf", Page: 1, Title: "Overview", Text: body + "first"},
		{Document: "a.pdf", Page: 1, Title: "Overview", Text: body + "second"},
	}
	out := Sections(in)
	if len(out) != 1 {
		t.Fatalf("expected duplicates to collapse, got %d sections", len(out))
	}
	if !strings.HasSuffix(out[0].Text, "first") {
		t.Error("dedupe should keep the first occurrence")
	}
}

func TestSections_SameTitleDifferentDocuments(t *testing.T) {
	body := strings.Repeat("enough text to clear the minimum length gate. ", 2)
	in := []section.Section{
		{Document: "a.pdf", Page: 1, Title: "Introduction", Text: body},
		{Document: "b.pdf", Page: 1, Title: "Introduction", Text: body},
	}
	out := Sections(in)
	if len(out) != 2 {
		t.Fatalf("sections from different documents must both survive, got %d", len(out))
	}
}

func TestSections_Idempotent(t *testing.T) {
	body := strings.Repeat("an important observation about the data pipeline. ", 2)
	in := []section.Section{
		{Document: "a.pdf", Page: 1, Title: "Findings", Text: body},
		{Document: "a.pdf", Page: 2, Title: "Findings", Text: body},
	}
	once := Sections(in)
	twice := Sections(once)
	if len(once) != len(twice) {
		t.Fatalf("enrichment is not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Fingerprint() != twice[i].Fingerprint() {
			t.Errorf("section %d changed identity on second pass", i)
		}
	}
}
