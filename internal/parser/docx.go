package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/doctriage/internal/section"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Word documents carry no fixed pagination,
// so the whole document becomes one page with each paragraph on its own
// line; heading-styled paragraphs come through as bare title lines.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]section.Page, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "doctriage-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := docxParagraphText(para); text != "" {
			lines = append(lines, text)
		}
	}

	body := strings.TrimSpace(strings.Join(lines, "\n"))
	if body == "" {
		return nil, nil
	}
	return []section.Page{{Number: 1, Text: body}}, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
