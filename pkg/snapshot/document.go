package snapshot

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/user/codeshot/pkg/ports"
)

// ContentSelector matches the element wrapping the highlighted code. Capture
// backends screenshot exactly this element.
const ContentSelector = ".code-shot"

// documentTemplate wraps the highlighted fragment in a standalone page:
// monospace font, padding, rounded corners, drop shadow, theme background,
// centered in the viewport.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Preview</title>
<style>
{{.Stylesheet}}
.code-shot {
    background-color: {{.Background}};
    padding: 20px;
    font-family: 'Courier New', Courier, monospace;
    font-size: 16px;
    line-height: 1.5;
    white-space: pre-wrap;
    border-radius: 8px;
    box-shadow: 0 2px 5px rgba(0,0,0,0.2);
    max-width: 1200px;
    margin: 20px auto;
}
body {
    margin: 0;
    padding: 0;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
}
</style>
</head>
<body>
<div class="code-shot">{{.Fragment}}</div>
</body>
</html>
`))

type documentData struct {
	Stylesheet template.CSS
	Background template.CSS
	Fragment   template.HTML
}

// buildDocument assembles the capture page from highlighted markup. The
// fragment and stylesheet come from the highlighter and are trusted.
func buildDocument(m ports.Markup) (string, error) {
	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, documentData{
		Stylesheet: template.CSS(m.Stylesheet),
		Background: template.CSS(m.Background),
		Fragment:   template.HTML(m.Fragment),
	})
	if err != nil {
		return "", fmt.Errorf("build document: %w", err)
	}
	return buf.String(), nil
}
