package parser

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	cases := []struct {
		filename string
		wantErr  bool
	}{
		{"report.txt", false},
		{"README.md", false},
		{"data.csv", false},
		{"page.html", false},
		{"page.HTM", false},
		{"paper.pdf", false},
		{"memo.docx", false},
		{"image.png", true},
		{"noextension", true},
	}
	for _, tc := range cases {
		_, err := ForFile(tc.filename)
		if (err != nil) != tc.wantErr {
			t.Errorf("ForFile(%q) error = %v, wantErr %v", tc.filename, err, tc.wantErr)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Notes.TXT") {
		t.Error("extension matching should be case-insensitive")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("unsupported extension accepted")
	}
}

func TestTextParser_FormFeedPages(t *testing.T) {
	in := "first page content\fsecond page content\f\f"
	pages, err := (&TextParser{}).Parse(strings.NewReader(in), "doc.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("page numbers: %d, %d", pages[0].Number, pages[1].Number)
	}
	if pages[1].Text != "second page content" {
		t.Errorf("unexpected second page text %q", pages[1].Text)
	}
}

func TestTextParser_SinglePage(t *testing.T) {
	pages, err := (&TextParser{}).Parse(strings.NewReader("no breaks here"), "doc.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
}

func TestCSVParser_BatchesRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,city\n")
	for i := 0; i < 25; i++ {
		b.WriteString("alice,berlin\n")
	}

	pages, err := (&CSVParser{}).Parse(strings.NewReader(b.String()), "data.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 25 rows to batch into 2 pages, got %d", len(pages))
	}
	for _, p := range pages {
		if !strings.HasPrefix(p.Text, "Headers: name, city") {
			t.Errorf("page %d missing header preamble: %q", p.Number, p.Text[:30])
		}
	}
	if !strings.Contains(pages[0].Text, "name: alice, city: berlin") {
		t.Errorf("rows should render as header: value pairs, got %q", pages[0].Text)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	pages, err := (&CSVParser{}).Parse(strings.NewReader(""), "data.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages for empty input, got %d", len(pages))
	}
}

func TestMarkdownParser_HeadingsOnOwnLines(t *testing.T) {
	in := "# Overview\n\nSome introductory prose.\n\n## Details\n\nMore prose here.\n"
	pages, err := (&MarkdownParser{}).Parse(strings.NewReader(in), "doc.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected a single page, got %d", len(pages))
	}

	lines := strings.Split(pages[0].Text, "\n")
	if lines[0] != "Overview" {
		t.Errorf("first line should be the heading text, got %q", lines[0])
	}
	text := pages[0].Text
	if strings.Count(text, "Some introductory prose.") != 1 {
		t.Errorf("paragraph text duplicated or missing: %q", text)
	}
	if !strings.Contains(text, "Details") {
		t.Errorf("second heading missing: %q", text)
	}
}

func TestHTMLParser_SkipsChrome(t *testing.T) {
	in := `<html><head><title>x</title></head><body>
<nav>navigation junk</nav>
<h1>Annual Report</h1>
<p>Revenue grew in every region this year.</p>
<script>var hidden = true;</script>
<footer>copyright line</footer>
</body></html>`
	pages, err := (&HTMLParser{}).Parse(strings.NewReader(in), "page.html")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected a single page, got %d", len(pages))
	}

	text := pages[0].Text
	for _, banned := range []string{"navigation junk", "hidden", "copyright line"} {
		if strings.Contains(text, banned) {
			t.Errorf("non-content element leaked into text: %q", banned)
		}
	}
	lines := strings.Split(text, "\n")
	if lines[0] != "Annual Report" {
		t.Errorf("heading should lead the flattened text, got %q", lines[0])
	}
	if !strings.Contains(text, "Revenue grew") {
		t.Error("paragraph content missing")
	}
}

func TestHTMLParser_EmptyBody(t *testing.T) {
	pages, err := (&HTMLParser{}).Parse(strings.NewReader("<html><body></body></html>"), "page.html")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages for empty body, got %d", len(pages))
	}
}
