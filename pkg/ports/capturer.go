package ports

import (
	"context"
	"errors"
)

// ErrBrowserUnavailable indicates the capture environment is not provisioned:
// the browser executable (or playwright driver) could not be found. Callers
// distinguish it from ordinary capture failures to produce a setup hint
// instead of a generic error.
var ErrBrowserUnavailable = errors.New("browser environment not provisioned")

// CaptureOptions configures a single capture.
type CaptureOptions struct {
	// ViewportWidth/ViewportHeight set the initial viewport in CSS pixels.
	// They also cap the fitted viewport: content larger than this is
	// cropped, not scrolled.
	ViewportWidth  int
	ViewportHeight int

	// DeviceScaleFactor maps CSS pixels to device pixels. 3 produces
	// crisp output suitable for sharing.
	DeviceScaleFactor float64

	// Margin is added around the measured content box when the viewport
	// is shrunk to fit, in CSS pixels per side.
	Margin int
}

// DefaultCaptureOptions returns the capture geometry used for code images.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		ViewportWidth:     1280,
		ViewportHeight:    720,
		DeviceScaleFactor: 3,
		Margin:            20,
	}
}

// Capturer rasterizes an HTML document with a headless browser.
//
// Each call launches a fresh browser, loads the document, shrinks the
// viewport to the bounding box of the element matched by selector (plus
// margin, clamped to the initial viewport), and returns a PNG screenshot
// scoped to that element.
type Capturer interface {
	CaptureElement(ctx context.Context, html, selector string, opts CaptureOptions) ([]byte, error)
}
