package instagram

import (
	"context"
	"time"

	"boutiqueCMS/internal/metrics"
	"boutiqueCMS/internal/models"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "apify"

// BreakerProvider guards a Provider with a circuit breaker.
// While open, calls fail fast with gobreaker.ErrOpenState.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[[]*models.FeedPost]
}

func NewBreakerProvider(next Provider, failures uint32, openFor time.Duration) *BreakerProvider {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]*models.FeedPost](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("состояние предохранителя изменилось")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &BreakerProvider{next: next, cb: cb}
}

func (b *BreakerProvider) FetchPosts(ctx context.Context, limit int) ([]*models.FeedPost, error) {
	return b.cb.Execute(func() ([]*models.FeedPost, error) {
		return b.next.FetchPosts(ctx, limit)
	})
}

func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
