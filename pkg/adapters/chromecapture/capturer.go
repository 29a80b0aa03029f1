// Package chromecapture provides an HTML capture implementation using chromedp.
package chromecapture

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/user/codeshot/pkg/ports"
)

// Capturer implements ports.Capturer using a headless Chrome/Chromium.
type Capturer struct {
	chromePath string
	log        ports.Logger
}

// New creates a Capturer. chromePath may be empty; resolution falls back to
// the CHROME_PATH environment variable and then system default locations.
func New(chromePath string, log ports.Logger) *Capturer {
	return &Capturer{chromePath: chromePath, log: log.WithComponent("chrome")}
}

type contentBox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CaptureElement renders html in a fresh headless Chrome, fits the viewport
// to the element matched by selector and returns its PNG screenshot.
func (c *Capturer) CaptureElement(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error) {
	chromePath := ResolveChromePath(c.chromePath)
	if chromePath == "" {
		return nil, fmt.Errorf("%w: install Chrome/Chromium or set CHROME_PATH", ports.ErrBrowserUnavailable)
	}

	// Navigating a file:// URL avoids data-URL length limits for large
	// highlighted sources.
	tmpFile, cleanup, err := tempDocument(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	chromedpOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(chromePath),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedpOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	c.log.Debug("Launching browser")

	fileURL := "file://" + tmpFile
	measure := fmt.Sprintf(
		`(() => { const r = document.querySelector(%q).getBoundingClientRect(); return {width: r.width, height: r.height}; })()`,
		selector)

	var box contentBox
	if err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(
			int64(opts.ViewportWidth), int64(opts.ViewportHeight),
			opts.DeviceScaleFactor, false),
		chromedp.Navigate(fileURL),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Evaluate(measure, &box),
	); err != nil {
		return nil, classify(err)
	}

	c.log.Debug("Content box: %.0fx%.0f", box.Width, box.Height)

	// Shrink the viewport to the content plus margin, capped at the
	// initial viewport. Oversized content gets cropped, not scrolled.
	fitWidth := opts.ViewportWidth
	if w := int(box.Width) + 2*opts.Margin; w < fitWidth {
		fitWidth = w
	}
	fitHeight := opts.ViewportHeight
	if h := int(box.Height) + 2*opts.Margin; h < fitHeight {
		fitHeight = h
	}

	c.log.Debug("Viewport fitted to %dx%d", fitWidth, fitHeight)

	var buf []byte
	if err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(
			int64(fitWidth), int64(fitHeight),
			opts.DeviceScaleFactor, false),
		chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	); err != nil {
		return nil, classify(err)
	}

	c.log.Debug("Captured %d bytes", len(buf))
	return buf, nil
}

// tempDocument writes html to a uniquely named temp file so concurrent
// captures in one process cannot clobber each other's page.
func tempDocument(html string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "codeshot_*.html")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}

// classify maps a missing Chrome executable onto ErrBrowserUnavailable so the
// caller can tell an unprovisioned environment from a rendering failure.
func classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory") {
		return fmt.Errorf("%w: %s", ports.ErrBrowserUnavailable, msg)
	}
	return fmt.Errorf("capture: %w", err)
}

var _ ports.Capturer = (*Capturer)(nil)
