package parsex

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// MarkdownToHTML renders a markdown document as an HTML fragment
func MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", wrapError(err, ErrHTMLRender)
	}
	return buf.String(), nil
}
