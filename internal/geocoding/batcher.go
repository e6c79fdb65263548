package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/adapter"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
)

// Address is a property address to place on the map
type Address struct {
	Title    string
	Street   string
	Number   string
	District string
	City     string
	State    string
	ZipCode  string
}

// Query builds the free-form search string sent to the geocoder
func (a Address) Query(country string) string {
	street := strings.TrimSpace(a.Street)
	if n := strings.TrimSpace(a.Number); n != "" && street != "" {
		street += ", " + n
	}

	parts := make([]string, 0, 6)
	for _, p := range []string{street, a.District, a.City, a.State, a.ZipCode, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Label is the human label shown next to the pin
func (a Address) Label() string {
	return fmt.Sprintf("%s (%s/%s)", a.Title, a.City, a.State)
}

// Location is a resolved map pin
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Info string  `json:"info"`
}

// BatcherConfig holds the batch resolution policy
type BatcherConfig struct {
	// Concurrency bounds the number of in-flight requests
	Concurrency int
	// RetryDelay is the wait before the single retry of a transport failure
	RetryDelay time.Duration
	// RequestsPerSecond paces request starts; 0 disables pacing
	RequestsPerSecond float64
	// Country is appended to every query
	Country string
}

// Batcher resolves many addresses with bounded concurrency, tolerating per-address failures
type Batcher struct {
	geocoder Geocoder
	clock    adapter.Clock
	config   BatcherConfig
	limiter  *rate.Limiter
}

// NewBatcher creates a new batcher over geocoder
func NewBatcher(geocoder Geocoder, clock adapter.Clock, cfg BatcherConfig) *Batcher {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = domain.DEFAULT_GEOCODE_CONCURRENCY
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Batcher{
		geocoder: geocoder,
		clock:    clock,
		config:   cfg,
		limiter:  limiter,
	}
}

// ResolveAll geocodes every address and returns the pins that resolved, in completion order.
// Failed addresses are logged and left out. It returns once every request has finished.
func (b *Batcher) ResolveAll(ctx context.Context, addresses []Address) []Location {
	locations := make([]Location, 0, len(addresses))
	if len(addresses) == 0 {
		return locations
	}

	start := b.clock.Now()
	var mu sync.Mutex
	var failed int

	pool := pond.NewPool(b.config.Concurrency, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, address := range addresses {
		group.Submit(func() {
			coords, err := b.resolve(ctx, address)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				logger.WarnCtx(ctx, "Dropping address that could not be geocoded",
					zap.String("label", address.Label()),
					zap.Error(err))
				return
			}
			locations = append(locations, Location{
				Lat:  coords.Lat,
				Lng:  coords.Lng,
				Info: address.Label(),
			})
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Geocoding batch interrupted", zap.Error(err))
	}

	mu.Lock()
	defer mu.Unlock()
	logger.InfoCtx(ctx, "Geocoding batch finished",
		zap.Int("requested", len(addresses)),
		zap.Int("resolved", len(locations)),
		zap.Int("failed", failed),
		zap.Duration("duration", b.clock.Since(start)))

	return locations
}

// resolve geocodes one address, retrying once after a transport failure
func (b *Batcher) resolve(ctx context.Context, address Address) (*Coordinates, error) {
	query := address.Query(b.config.Country)

	var coords *Coordinates
	operation := func() error {
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		c, err := b.geocoder.Geocode(ctx, query)
		if err != nil {
			if errors.Is(err, domain.ErrGeocodingTransport) {
				logger.DebugCtx(ctx, "Geocoding transport failure", zap.String("query", query), zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		coords = c
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(b.config.RetryDelay), 1),
		ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return coords, nil
}
