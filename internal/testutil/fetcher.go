package testutil

import (
	"context"
	"fmt"
)

// SpyFetcher serves canned bodies by URL and records every request.
type SpyFetcher struct {
	Bodies map[string][]byte
	Err    error
	Calls  []string
}

// NewSpyFetcher creates a fetcher with no canned bodies.
func NewSpyFetcher() *SpyFetcher {
	return &SpyFetcher{Bodies: map[string][]byte{}}
}

// Fetch records url and returns the canned body for it.
func (f *SpyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.Calls = append(f.Calls, url)
	if f.Err != nil {
		return nil, f.Err
	}
	body, ok := f.Bodies[url]
	if !ok {
		return nil, fmt.Errorf("registry responded with status code 404 when downloading %s", url)
	}
	return body, nil
}
