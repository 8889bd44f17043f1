package fetch

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// ErrNoContent is returned when a page yields no readable text.
var ErrNoContent = errors.New("no readable content")

type renderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// JobPostingText fetches urlStr and returns the posting's main text. When
// opts.BrowserFallback is set and the plain fetch yields too little text, the
// page is rendered in a headless browser and extracted again.
func JobPostingText(ctx context.Context, urlStr string, opts *Options) (string, error) {
	return jobPostingText(ctx, urlStr, opts, WithBrowser)
}

func jobPostingText(ctx context.Context, urlStr string, opts *Options, render renderFunc) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := slog.Default().With("component", "fetch", "url", urlStr)

	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	logger.Debug("extracted posting", "platform", platform, "chars", len(text))

	if opts.BrowserFallback && render != nil && ShouldUseBrowser(text) {
		logger.Info("content too short, rendering in browser", "chars", len(text), "min", MinContentLength)
		html, renderErr := renderGuarded(ctx, urlStr, opts, render)
		if renderErr != nil {
			logger.Warn("browser rendering failed, using HTTP content", "error", renderErr)
		} else if rendered, extractErr := ExtractMainText(html, content, noise...); extractErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &Error{URL: urlStr, Message: "empty page", Cause: ErrNoContent}
	}
	return text, nil
}

// renderGuarded re-checks the host before handing the URL to the browser,
// which resolves and dials outside the guarded HTTP client.
func renderGuarded(ctx context.Context, urlStr string, opts *Options, render renderFunc) (string, error) {
	if !opts.AllowPrivateNetworks {
		parsed, err := url.Parse(urlStr)
		if err != nil {
			return "", err
		}
		if err := checkResolvedHost(ctx, strings.ToLower(parsed.Hostname())); err != nil {
			return "", err
		}
	}
	return render(ctx, urlStr, opts.BrowserTimeout)
}
