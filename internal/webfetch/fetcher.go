package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quentinmartel/recipe-ingest/internal/common"
)

const userAgent = "Mozilla/5.0 (compatible; RecipeIngest/1.0)"

// Fetcher retrieves raw HTML from a URL, following redirects manually so the
// hop count stays bounded.
type Fetcher struct {
	cfg    common.FetchConfig
	client *http.Client
	log    *slog.Logger
}

func NewFetcher(cfg common.FetchConfig, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = 5
	}
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			// Redirects are followed by hand in Fetch.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: logger,
	}
}

// IsValidURL accepts only http/https URLs that parse cleanly.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch issues a GET for the URL and returns the raw HTML body. 3xx responses
// with a Location header are re-fetched up to the configured hop limit.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	current := rawURL
	for hop := 0; hop <= f.cfg.MaxRedirects; hop++ {
		html, redirect, err := f.fetchOnce(ctx, current)
		if err != nil {
			return "", err
		}
		if redirect == "" {
			return html, nil
		}
		f.log.Info("webfetch.redirect", "from", current, "to", redirect, "hop", hop+1)
		current = redirect
	}
	return "", common.NewAppError("FETCH_REDIRECT_LOOP",
		fmt.Sprintf("more than %d redirects fetching %s", f.cfg.MaxRedirects, rawURL),
		common.ErrFetchNetwork)
}

// fetchOnce performs a single GET. It returns either the body or a redirect
// target, never both.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (html, redirect string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", common.NewAppError("FETCH_BAD_URL", "building request failed", common.ErrFetchNetwork)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", "", common.NewAppError("FETCH_TIMEOUT", "request timed out", common.ErrFetchTimeout)
		}
		return "", "", common.NewAppError("FETCH_NETWORK", err.Error(), common.ErrFetchNetwork)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			f.log.Warn("webfetch.body_close_error", "error", cerr)
		}
	}()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		loc := resp.Header.Get("Location")
		if loc != "" {
			if target, rerr := resp.Request.URL.Parse(loc); rerr == nil {
				return "", target.String(), nil
			}
			return "", loc, nil
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", common.NewAppError("FETCH_STATUS",
			fmt.Sprintf("unexpected status %d", resp.StatusCode),
			common.ErrHTTPFetch)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", common.NewAppError("FETCH_READ", err.Error(), common.ErrFetchNetwork)
	}
	return string(body), "", nil
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(err.Error(), "Client.Timeout exceeded")
}

// PageContent is the product of fetching a URL and stripping its markup.
type PageContent struct {
	URL           string
	HTML          string
	Text          string
	ContentLength int
}

// FetchAndExtract composes Fetch and ExtractText.
func (f *Fetcher) FetchAndExtract(ctx context.Context, rawURL string) (PageContent, error) {
	html, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return PageContent{}, err
	}
	text := ExtractText(html)
	return PageContent{
		URL:           rawURL,
		HTML:          html,
		Text:          text,
		ContentLength: len(text),
	}, nil
}
