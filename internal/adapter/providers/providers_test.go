package providers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boklen/rentals/internal/config"
	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestStaticMatcherReturnsProviders(t *testing.T) {
	m := NewStaticMatcher(0)
	got, err := m.Match(context.Background(), usecase.MatchRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(got))
	}
	got[0].Name = "changed"
	again, _ := m.Match(context.Background(), usecase.MatchRequest{})
	if again[0].Name == "changed" {
		t.Fatal("matcher leaked its provider slice")
	}
}

func TestStaticMatcherWaitsForDelay(t *testing.T) {
	m := NewStaticMatcher(30 * time.Millisecond)
	start := time.Now()
	if _, err := m.Match(context.Background(), usecase.MatchRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected delay, returned after %s", elapsed)
	}
}

func TestStaticMatcherHonoursCancellation(t *testing.T) {
	m := NewStaticMatcher(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := m.Match(ctx, usecase.MatchRequest{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNewHTTPMatcherValidatesURL(t *testing.T) {
	if _, err := NewHTTPMatcher("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPMatcher("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPMatcherResponses(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error, count int)
	}{
		{
			name: "ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/providers" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("location") != "جدة" {
					t.Errorf("unexpected location %q", r.URL.Query().Get("location"))
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id":"a","name":"A","rating":4.5,"reviews":3,"distance":"1 كم"},{"id":"b","name":"B"}]`))
			},
			check: func(t *testing.T, err error, count int) {
				if err != nil || count != 2 {
					t.Fatalf("expected 2 providers, got %d (%v)", count, err)
				}
			},
		},
		{
			name:    "no content",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
			check: func(t *testing.T, err error, _ int) {
				if !errors.Is(err, domainErrors.ErrNoProviders) {
					t.Fatalf("expected ErrNoProviders, got %v", err)
				}
			},
		},
		{
			name:    "empty list",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) },
			check: func(t *testing.T, err error, _ int) {
				if !errors.Is(err, domainErrors.ErrNoProviders) {
					t.Fatalf("expected ErrNoProviders, got %v", err)
				}
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "7")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error, _ int) {
				var rl TooManyRequestsError
				if !errors.As(err, &rl) || rl.RetryAfter != 7*time.Second {
					t.Fatalf("expected rate limit error with 7s, got %v", err)
				}
			},
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusInternalServerError) },
			check: func(t *testing.T, err error, _ int) {
				if err == nil {
					t.Fatal("expected error")
				}
			},
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{`)) },
			check: func(t *testing.T, err error, _ int) {
				if err == nil {
					t.Fatal("expected decode error")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			m, err := NewHTTPMatcher(srv.URL, testLogger())
			if err != nil {
				t.Fatalf("create matcher: %v", err)
			}
			got, err := m.Match(context.Background(), usecase.MatchRequest{Location: "جدة"})
			tc.check(t, err, len(got))
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("unexpected default: %s", d)
	}
	if d := parseRetryAfter("3"); d != 3*time.Second {
		t.Fatalf("unexpected seconds: %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("unexpected fallback: %s", d)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if d := parseRetryAfter(future); d <= 0 || d > time.Minute {
		t.Fatalf("unexpected date duration: %s", d)
	}
}

func TestNewMatcherUsesConfig(t *testing.T) {
	m, err := newMatcher(matcherParams{Config: &config.Config{ProviderSearchDelay: time.Second}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*StaticMatcher); !ok {
		t.Fatalf("expected static matcher, got %T", m)
	}

	m, err = newMatcher(matcherParams{Config: &config.Config{ProviderAPIAddress: "http://directory.local"}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*HTTPMatcher); !ok {
		t.Fatalf("expected http matcher, got %T", m)
	}
}
