// Package browser drives a headless Chromium session for upstreams that
// reject plain HTTP clients. Navigation and the JSON fetch both run inside
// the page, so anti-bot checks see an ordinary browser.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// userAgent mirrors a current desktop Chrome; some upstreams fingerprint
// the default headless user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/146.0.0.0 Safari/537.36"

// Page describes the navigation performed before the in-page script runs.
type Page struct {
	// URL to open.
	URL string
	// Settle is how long to wait after navigation before interacting.
	Settle time.Duration
	// AcceptCookies clicks a visible consent button when one is present.
	AcceptCookies bool
	// ScrollToBottom triggers lazy-loaded content before the script runs.
	ScrollToBottom bool
}

// Engine runs a script inside a real browser page and unmarshals the JSON
// value its promise resolves to. This interface enables dependency
// injection and testing with mock implementations.
type Engine interface {
	FetchJSON(ctx context.Context, page Page, script string, out any) error
}

// ChromeEngine is the chromedp-backed Engine. Each fetch runs in a fresh
// headless browser bounded by the configured timeout; no other layer
// imposes a deadline on a fetch.
type ChromeEngine struct {
	timeout time.Duration
}

// NewChromeEngine creates an Engine whose sessions are bounded by timeout.
// A zero timeout leaves the session bounded only by the caller's context.
func NewChromeEngine(timeout time.Duration) *ChromeEngine {
	return &ChromeEngine{timeout: timeout}
}

// FetchJSON opens the page, performs the requested gestures and evaluates
// script, which must resolve to a JSON-serializable value.
func (e *ChromeEngine) FetchJSON(ctx context.Context, page Page, script string, out any) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	tasks := chromedp.Tasks{
		chromedp.Navigate(page.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if page.Settle > 0 {
		tasks = append(tasks, chromedp.Sleep(page.Settle))
	}
	if page.AcceptCookies {
		tasks = append(tasks, acceptCookies())
	}
	if page.ScrollToBottom {
		tasks = append(tasks,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
		)
	}
	tasks = append(tasks, chromedp.Evaluate(script, out, awaitPromise))

	if err := chromedp.Run(browserCtx, tasks...); err != nil {
		return fmt.Errorf("browser session failed for %s: %w", page.URL, err)
	}

	return nil
}

// awaitPromise makes Evaluate wait for the script's returned promise and
// hand back its resolved value rather than the promise object.
func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// acceptCookies clicks the first button whose text contains "accept".
// Pages without a consent banner are left untouched; consent handling is
// best effort and never fails the session.
func acceptCookies() chromedp.Action {
	const click = `(() => {
		const buttons = Array.from(document.querySelectorAll('button'));
		const accept = buttons.find(b => b.textContent.trim().toLowerCase().includes('accept'));
		if (accept) { accept.click(); return true; }
		return false;
	})()`

	return chromedp.ActionFunc(func(ctx context.Context) error {
		var clicked bool
		if err := chromedp.Evaluate(click, &clicked).Do(ctx); err != nil {
			return nil
		}
		if clicked {
			return chromedp.Sleep(time.Second).Do(ctx)
		}
		return nil
	})
}
