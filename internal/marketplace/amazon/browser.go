package amazon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/chromedp/chromedp"
)

// BrowserRenderer drives headless Chrome through chromedp. A fresh browser
// context is opened per call and released on every exit path.
type BrowserRenderer struct {
	logger   *slog.Logger
	execPath string
}

// NewBrowserRenderer creates a renderer, locating the Chrome binary from
// CHROME_BIN or well-known install paths.
func NewBrowserRenderer(logger *slog.Logger) *BrowserRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserRenderer{
		logger:   logger,
		execPath: findChromeBinary(),
	}
}

// resultCardJS extracts the first %d search result nodes as
// {title, price, link, image} tuples.
const resultCardJS = `
(function() {
	var items = document.querySelectorAll('[data-component-type="s-search-result"]');
	var results = [];
	for (var i = 0; i < items.length && results.length < %d; i++) {
		var item = items[i];
		var titleEl = item.querySelector('h2 a span') || item.querySelector('h2 span');
		var priceEl = item.querySelector('.a-price .a-offscreen');
		var linkEl = item.querySelector('h2 a') || item.querySelector('a.a-link-normal');
		var imgEl = item.querySelector('img');
		results.push({
			title: titleEl ? titleEl.innerText.trim() : 'No title',
			price: priceEl ? priceEl.innerText : 'No price',
			link: linkEl ? new URL(linkEl.getAttribute('href'), location.origin).href : '',
			image: imgEl ? imgEl.getAttribute('src') : ''
		});
	}
	return results;
})()
`

// ProductCards navigates to pageURL and extracts at most limit result cards.
// The caller's ctx deadline bounds the whole navigation.
func (r *BrowserRenderer) ProductCards(ctx context.Context, pageURL string, limit int) ([]ProductCard, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var cards []ProductCard
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(fmt.Sprintf(resultCardJS, limit), &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp extract: %w", err)
	}

	r.logger.Debug("extracted result cards",
		slog.String("url", pageURL),
		slog.Int("cards", len(cards)),
	)
	return cards, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
