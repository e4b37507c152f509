package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/doctriage/internal/section"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. The AST is flattened
// back to plain text with each heading on its own line, so the downstream
// layout heuristics see the document structure.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]section.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if title := string(node.Text(src)); title != "" {
				lines = append(lines, title)
			}
		default:
			if t := extractText(n, src); t != "" {
				lines = append(lines, t)
			}
		}
	}

	body := strings.TrimSpace(strings.Join(lines, "\n"))
	if body == "" {
		return nil, nil
	}
	return []section.Page{{Number: 1, Text: body}}, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	// Container blocks and inlines: collect from children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			if s := extractText(c, src); s != "" {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(s)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
