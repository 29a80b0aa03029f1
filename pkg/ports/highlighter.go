package ports

// Markup is the output of syntax highlighting: an HTML fragment styled via
// CSS classes, the stylesheet defining those classes, and the theme's
// background color as a CSS color value.
type Markup struct {
	Fragment   string
	Stylesheet string
	Background string
}

// Highlighter turns raw source text into styled markup for a fixed language
// and color theme.
type Highlighter interface {
	Highlight(source string) (Markup, error)
}
