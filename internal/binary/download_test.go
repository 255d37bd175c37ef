package binary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("payload"))
		case "/hop1":
			http.Redirect(w, r, "/hop2", http.StatusFound)
		case "/hop2":
			http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
		case "/relative/start":
			w.Header().Set("Location", "../ok")
			w.WriteHeader(http.StatusTemporaryRedirect)
		case "/missing":
			http.NotFound(w, r)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case "/redirect-without-location":
			w.WriteHeader(http.StatusFound)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	tests := []struct {
		name       string
		path       string
		want       string
		wantStatus int
		wantHits   int32
	}{
		{name: "direct", path: "/ok", want: "payload", wantHits: 1},
		{name: "two redirects", path: "/hop1", want: "payload", wantHits: 3},
		{name: "relative location", path: "/relative/start", want: "payload", wantHits: 2},
		{name: "not found", path: "/missing", wantStatus: 404, wantHits: 1},
		{name: "server error", path: "/broken", wantStatus: 500, wantHits: 1},
		{name: "3xx without location", path: "/redirect-without-location", wantStatus: 302, wantHits: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits.Store(0)
			f := NewHTTPFetcher()

			body, err := f.Fetch(context.Background(), server.URL+tt.path)

			if tt.wantStatus != 0 {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("error = %v, want *StatusError", err)
				}
				if statusErr.StatusCode != tt.wantStatus {
					t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.wantStatus)
				}
				if !strings.Contains(err.Error(), fmt.Sprint(tt.wantStatus)) {
					t.Errorf("error %q does not mention status %d", err, tt.wantStatus)
				}
			} else {
				if err != nil {
					t.Fatalf("Fetch() error = %v", err)
				}
				if string(body) != tt.want {
					t.Errorf("body = %q, want %q", body, tt.want)
				}
			}

			if got := hits.Load(); got != tt.wantHits {
				t.Errorf("requests = %d, want %d", got, tt.wantHits)
			}
		})
	}
}

func TestHTTPFetcher_TooManyRedirects(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer server.Close()

	tests := []struct {
		name         string
		maxRedirects int
	}{
		{"default limit", config.DefaultMaxRedirects},
		{"custom limit", 2},
		{"redirects disabled", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits.Store(0)
			f := NewHTTPFetcher(WithMaxRedirects(tt.maxRedirects))

			_, err := f.Fetch(context.Background(), server.URL+"/loop")
			if !errors.Is(err, ErrTooManyRedirects) {
				t.Fatalf("error = %v, want ErrTooManyRedirects", err)
			}

			// The original request plus every allowed hop.
			if got, want := hits.Load(), int32(tt.maxRedirects+1); got != want {
				t.Errorf("requests = %d, want %d", got, want)
			}
		})
	}
}

func TestHTTPFetcher_UserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	tests := []struct {
		name string
		opts []FetcherOption
		want string
	}{
		{"default", nil, DefaultUserAgent},
		{"custom", []FetcherOption{WithUserAgent("binwrap/2.0.0")}, "binwrap/2.0.0"},
		{"empty keeps default", []FetcherOption{WithUserAgent("")}, DefaultUserAgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHTTPFetcher(tt.opts...).Fetch(context.Background(), server.URL); err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("User-Agent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher().Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestHTTPFetcher_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	f := NewHTTPFetcher(WithDoer(doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})))

	_, err := f.Fetch(context.Background(), "https://registry.example.com/tool")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped transport error", err)
	}
}
