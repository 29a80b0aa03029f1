// Package snapshot turns source text into a syntax-highlighted PNG.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/codeshot/pkg/caption"
	"github.com/user/codeshot/pkg/ports"
)

// DefaultTimeout bounds a single capture, browser launch included.
const DefaultTimeout = 60 * time.Second

// Image is a finished render.
type Image struct {
	Data     []byte
	Filename string
}

// Options configures a Generator.
type Options struct {
	// Timeout bounds each capture. Zero means DefaultTimeout.
	Timeout time.Duration
	// Caption appends a filename caption bar under the screenshot.
	Caption bool
	// Logger receives pipeline progress. Nil disables logging.
	Logger ports.Logger
}

// Generator runs the highlight-and-render pipeline.
type Generator struct {
	highlighter ports.Highlighter
	capturer    ports.Capturer
	timeout     time.Duration
	caption     bool
	log         ports.Logger
}

// NewGenerator creates a Generator from a highlighter and a capture backend.
func NewGenerator(h ports.Highlighter, c ports.Capturer, opts Options) *Generator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}
	return &Generator{
		highlighter: h,
		capturer:    c,
		timeout:     timeout,
		caption:     opts.Caption,
		log:         log.WithComponent("snapshot"),
	}
}

// Generate highlights source, renders it in a headless browser and returns
// the PNG plus the derived download filename.
//
// A missing browser environment surfaces as ports.ErrBrowserUnavailable; any
// other capture failure is wrapped in a RenderError. Both are recoverable.
func (g *Generator) Generate(ctx context.Context, source, filename string) (*Image, error) {
	markup, err := g.highlighter.Highlight(source)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	doc, err := buildDocument(markup)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data, err := g.capturer.CaptureElement(ctx, doc, ContentSelector, ports.DefaultCaptureOptions())
	if err != nil {
		if errors.Is(err, ports.ErrBrowserUnavailable) {
			return nil, err
		}
		return nil, &RenderError{Err: err}
	}

	name := SanitizeFilename(filename)
	if g.caption {
		data, err = caption.Append(data, name)
		if err != nil {
			return nil, &RenderError{Err: fmt.Errorf("caption: %w", err)}
		}
	}

	g.log.Debug("Captured %d bytes", len(data))

	return &Image{Data: data, Filename: OutputFilename(filename)}, nil
}

// noopLogger avoids nil checks on every log call.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})      {}
func (noopLogger) Info(string, ...interface{})       {}
func (noopLogger) Warn(string, ...interface{})       {}
func (noopLogger) Error(string, ...interface{})      {}
func (noopLogger) WithComponent(string) ports.Logger { return noopLogger{} }
