package mocks

import "github.com/user/codeshot/pkg/ports"

// Highlighter is a mock implementation of ports.Highlighter.
type Highlighter struct {
	HighlightFunc func(source string) (ports.Markup, error)

	// Track calls for assertions
	HighlightCalls []string
}

// NewHighlighter creates a mock Highlighter with plausible default output.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		HighlightFunc: func(source string) (ports.Markup, error) {
			return ports.Markup{
				Fragment:   `<pre class="chroma"><span class="k">pass</span></pre>`,
				Stylesheet: ".chroma { color: #f8f8f2 }",
				Background: "#272822",
			}, nil
		},
	}
}

// Highlight implements ports.Highlighter.
func (m *Highlighter) Highlight(source string) (ports.Markup, error) {
	m.HighlightCalls = append(m.HighlightCalls, source)
	if m.HighlightFunc != nil {
		return m.HighlightFunc(source)
	}
	return ports.Markup{}, nil
}

var _ ports.Highlighter = (*Highlighter)(nil)
