package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/doctriage/internal/section"
)

// TextParser handles plain text files. Form feeds act as page breaks;
// without them the whole file is one page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]section.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var pages []section.Page
	for i, text := range strings.Split(string(data), "\f") {
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, section.Page{Number: i + 1, Text: text})
	}
	return pages, nil
}
