// Package mocks provides hand-written port implementations for tests.
package mocks

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"

	"github.com/user/codeshot/pkg/ports"
)

// Capturer is a mock implementation of ports.Capturer.
type Capturer struct {
	CaptureElementFunc func(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error)

	// Track calls for assertions
	CaptureElementCalls []struct {
		HTML     string
		Selector string
		Opts     ports.CaptureOptions
	}
}

// NewCapturer creates a mock Capturer that returns a small valid PNG.
func NewCapturer() *Capturer {
	return &Capturer{
		CaptureElementFunc: func(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error) {
			return TinyPNG(), nil
		},
	}
}

// CaptureElement implements ports.Capturer.
func (m *Capturer) CaptureElement(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error) {
	m.CaptureElementCalls = append(m.CaptureElementCalls, struct {
		HTML     string
		Selector string
		Opts     ports.CaptureOptions
	}{html, selector, opts})
	if m.CaptureElementFunc != nil {
		return m.CaptureElementFunc(ctx, html, selector, opts)
	}
	return TinyPNG(), nil
}

// TinyPNG returns a minimal valid PNG for use as capture output.
func TinyPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 39, G: 40, B: 34, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

var _ ports.Capturer = (*Capturer)(nil)
