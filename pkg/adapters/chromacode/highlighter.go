// Package chromacode provides a syntax highlighter implementation using chroma.
package chromacode

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/user/codeshot/pkg/ports"
)

// Highlighter implements ports.Highlighter using chroma with a fixed Python
// lexer. Language detection is out of scope: uploads are assumed to be
// Python-like source.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter for the named chroma style. Unknown style names
// fall back to chroma's default style.
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	lexer := lexers.Get("python")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight tokenizes source and returns the class-styled HTML fragment, the
// stylesheet defining those classes, and the theme background color.
func (h *Highlighter) Highlight(source string) (ports.Markup, error) {
	iterator, err := h.lexer.Tokenise(nil, source)
	if err != nil {
		return ports.Markup{}, fmt.Errorf("tokenise: %w", err)
	}

	var fragment bytes.Buffer
	if err := h.formatter.Format(&fragment, h.style, iterator); err != nil {
		return ports.Markup{}, fmt.Errorf("format: %w", err)
	}

	var stylesheet bytes.Buffer
	if err := h.formatter.WriteCSS(&stylesheet, h.style); err != nil {
		return ports.Markup{}, fmt.Errorf("write css: %w", err)
	}

	return ports.Markup{
		Fragment:   fragment.String(),
		Stylesheet: stylesheet.String(),
		Background: h.style.Get(chroma.Background).Background.String(),
	}, nil
}

var _ ports.Highlighter = (*Highlighter)(nil)
