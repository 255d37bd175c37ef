package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

// DefaultUserAgent is the User-Agent header sent when none is configured.
const DefaultUserAgent = "binwrap/1.0"

// Fetcher retrieves the full body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher is a Fetcher that follows redirects itself, up to a fixed
// number of hops.
type HTTPFetcher struct {
	client       Doer
	userAgent    string
	maxRedirects int
	logger       *log.Logger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithDoer replaces the HTTP client. The Doer must not follow redirects on
// its own or the hop limit is not enforced.
func WithDoer(d Doer) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxRedirects sets the redirect limit. Zero disables redirects.
func WithMaxRedirects(n int) FetcherOption {
	return func(f *HTTPFetcher) {
		if n >= 0 {
			f.maxRedirects = n
		}
	}
}

// WithFetchLogger sets the logger used for redirect tracing.
func WithFetchLogger(l *log.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewHTTPFetcher creates a new fetcher
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			// Redirects are handled by Fetch so the hop count is explicit
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:    DefaultUserAgent,
		maxRedirects: config.DefaultMaxRedirects,
		logger:       discardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs rawURL and returns the body of the first 2xx response.
//
// A 3xx response with a Location header is followed without reading its
// body; relative locations resolve against the request URL. Any other status
// is a *StatusError. More than the configured number of redirects is
// ErrTooManyRedirects. No request is retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	current := rawURL

	for hops := 0; ; hops++ {
		body, next, err := f.fetchOnce(ctx, current)
		if err != nil {
			return nil, err
		}
		if next == "" {
			return body, nil
		}

		if hops >= f.maxRedirects {
			return nil, fmt.Errorf("%w: more than %d following %s", ErrTooManyRedirects, f.maxRedirects, rawURL)
		}

		f.logger.Debug("following redirect", "from", current, "to", next)
		current = next
	}
}

// fetchOnce performs a single request. It returns either a body or the next
// location to visit.
func (f *HTTPFetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("read response body: %w", err)
		}
		return body, "", nil

	case resp.StatusCode >= 300 && resp.StatusCode < 400 && location != "":
		next, err := resolveLocation(req.URL, location)
		if err != nil {
			return nil, "", err
		}
		return nil, next, nil

	default:
		return nil, "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
}

func resolveLocation(base *url.URL, location string) (string, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse redirect location %q: %w", location, err)
	}
	return base.ResolveReference(ref).String(), nil
}
