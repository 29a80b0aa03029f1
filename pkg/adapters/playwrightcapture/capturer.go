// Package playwrightcapture provides an HTML capture implementation using
// playwright-go with the WebKit engine.
package playwrightcapture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/user/codeshot/pkg/ports"
)

// Capturer implements ports.Capturer using playwright WebKit. A full
// playwright driver and browser are launched and torn down per capture.
type Capturer struct {
	log ports.Logger
}

// New creates a Capturer.
func New(log ports.Logger) *Capturer {
	return &Capturer{log: log.WithComponent("webkit")}
}

// CaptureElement renders html in a fresh WebKit page, fits the viewport to
// the element matched by selector and returns its PNG screenshot.
//
// playwright-go does not take a context. The driver/browser launch runs in a
// goroutine raced against ctx, and the deadline on ctx, when present, is
// translated into the page default timeout, so the whole capture stays
// bounded.
func (c *Capturer) CaptureElement(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	c.log.Debug("Launching browser")

	pw, browser, err := c.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer pw.Stop()
	defer browser.Close()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		DeviceScaleFactor: playwright.Float(opts.DeviceScaleFactor),
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	})
	if err != nil {
		return nil, classify(err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, classify(err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		page.SetDefaultTimeout(float64(time.Until(deadline).Milliseconds()))
	}

	if err := page.SetContent(html); err != nil {
		return nil, classify(err)
	}

	element := page.Locator(selector)
	box, err := element.BoundingBox()
	if err != nil {
		return nil, classify(err)
	}
	if box == nil {
		return nil, fmt.Errorf("capture: element %q not found", selector)
	}

	c.log.Debug("Content box: %.0fx%.0f", box.Width, box.Height)

	fitWidth := opts.ViewportWidth
	if w := int(box.Width) + 2*opts.Margin; w < fitWidth {
		fitWidth = w
	}
	fitHeight := opts.ViewportHeight
	if h := int(box.Height) + 2*opts.Margin; h < fitHeight {
		fitHeight = h
	}
	if err := page.SetViewportSize(fitWidth, fitHeight); err != nil {
		return nil, classify(err)
	}

	c.log.Debug("Viewport fitted to %dx%d", fitWidth, fitHeight)

	buf, err := element.Screenshot(playwright.LocatorScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
	if err != nil {
		return nil, classify(err)
	}

	c.log.Debug("Captured %d bytes", len(buf))
	return buf, nil
}

type launchResult struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	err     error
}

// launch starts the driver and the WebKit browser, giving up when ctx ends.
// An abandoned launch is torn down in the background once it completes.
func (c *Capturer) launch(ctx context.Context) (*playwright.Playwright, playwright.Browser, error) {
	resultCh := make(chan launchResult, 1)
	go func() {
		pw, err := playwright.Run()
		if err != nil {
			resultCh <- launchResult{err: err}
			return
		}
		browser, err := pw.WebKit.Launch()
		if err != nil {
			pw.Stop()
			resultCh <- launchResult{err: err}
			return
		}
		resultCh <- launchResult{pw: pw, browser: browser}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if res := <-resultCh; res.err == nil {
				res.browser.Close()
				res.pw.Stop()
			}
		}()
		return nil, nil, fmt.Errorf("capture: %w", ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return nil, nil, classify(res.err)
		}
		return res.pw, res.browser, nil
	}
}

// classify maps a missing driver or browser binary to ErrBrowserUnavailable;
// anything else stays a plain capture failure.
func classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "Executable doesn't exist") ||
		strings.Contains(msg, "please install the driver") ||
		strings.Contains(msg, "could not start driver") {
		return fmt.Errorf("%w: run 'playwright install webkit' (%s)", ports.ErrBrowserUnavailable, msg)
	}
	return fmt.Errorf("capture: %w", err)
}

var _ ports.Capturer = (*Capturer)(nil)
