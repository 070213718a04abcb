package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/usecase"
)

// TooManyRequestsError represents rate limiting signal from the provider directory.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// HTTPMatcher asks a remote provider directory for companies near the
// user's location.
type HTTPMatcher struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type providerResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Distance string  `json:"distance"`
	Phone    string  `json:"phone"`
}

// NewHTTPMatcher creates the directory client with default timeout.
func NewHTTPMatcher(baseURL string, logger *slog.Logger) (*HTTPMatcher, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider directory url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, errors.New("provider directory url must be absolute")
	}
	return &HTTPMatcher{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Match implements usecase.ProviderMatcher.
func (c *HTTPMatcher) Match(ctx context.Context, req usecase.MatchRequest) ([]model.Provider, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/providers")
	query := endpoint.Query()
	query.Set("location", req.Location)
	endpoint.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data []providerResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("decode providers: %w", err)
		}
		if len(data) == 0 {
			return nil, domainErrors.ErrNoProviders
		}
		out := make([]model.Provider, 0, len(data))
		for _, p := range data {
			out = append(out, model.Provider(p))
		}
		return out, nil
	case http.StatusNoContent:
		return nil, domainErrors.ErrNoProviders
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("provider directory request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("provider directory error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
