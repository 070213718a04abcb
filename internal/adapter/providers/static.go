package providers

import (
	"context"
	"time"

	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/usecase"
)

// Mock rental companies offered for every request.
var defaultProviders = []model.Provider{
	{ID: "prv-1", Name: "شركة البناء المتقدم", Rating: 4.8, Reviews: 124, Distance: "2.5 كم", Phone: "0112345678"},
	{ID: "prv-2", Name: "مؤسسة المعدات الثقيلة", Rating: 4.6, Reviews: 89, Distance: "4.1 كم", Phone: "0118765432"},
	{ID: "prv-3", Name: "شركة الإنشاءات الحديثة", Rating: 4.3, Reviews: 56, Distance: "6.8 كم", Phone: "0114567890"},
}

// StaticMatcher waits a fixed delay and then returns the mock providers.
// Only ctx cancellation cuts the wait short.
type StaticMatcher struct {
	delay     time.Duration
	providers []model.Provider
}

// NewStaticMatcher constructs StaticMatcher. A zero delay answers immediately.
func NewStaticMatcher(delay time.Duration) *StaticMatcher {
	return &StaticMatcher{delay: delay, providers: defaultProviders}
}

// Match implements usecase.ProviderMatcher.
func (m *StaticMatcher) Match(ctx context.Context, _ usecase.MatchRequest) ([]model.Provider, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return append([]model.Provider{}, m.providers...), nil
}
