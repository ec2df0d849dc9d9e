package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/wadm-client/pkg/metrics"
)

var pagesFetchedTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
	Name: metrics.PagesFetchedTotal,
	Help: "Total listing pages fetched during aggregation by listing",
}, []string{"listing"})

// ErrPageLimit is returned, together with the items collected so far, when a
// listing has more pages than Config.MaxPages.
var ErrPageLimit = errors.New("page limit reached")

// Config holds collector configuration.
type Config struct {
	// MaxPages caps the number of pages fetched by one Collect call.
	MaxPages int
}

// DefaultConfig returns the default collector configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages: 1000,
	}
}

// Page is one slice of a listing together with its position.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
}

// Last reports whether the page is the final one of the listing.
func (p Page[T]) Last() bool {
	return p.CurrentPage >= p.TotalPages
}

// FetchFunc fetches a single page. The bool is false when the server had no
// data for the page; that ends the walk without an error.
type FetchFunc[T any] func(ctx context.Context, page int) (Page[T], bool, error)

// Collector aggregates paginated listings.
type Collector struct {
	config Config
	logger zerolog.Logger
}

// NewCollector creates a new collector.
func NewCollector(config Config) *Collector {
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}

	return &Collector{
		config: config,
		logger: log.With().Str("component", "pagination").Logger(),
	}
}

// WithLogger returns a copy of the collector logging to logger.
func (c *Collector) WithLogger(logger zerolog.Logger) *Collector {
	cp := *c
	cp.logger = logger
	return &cp
}

// Collect fetches pages 1..n of a listing and returns their items concatenated
// in fetch order. name labels logs and metrics. When the listing outgrows
// MaxPages the collected items are returned with an ErrPageLimit error.
func Collect[T any](ctx context.Context, c *Collector, name string, fetch FetchFunc[T]) ([]T, error) {
	start := time.Now()
	items := make([]T, 0)

	for page := 1; ; page++ {
		if page > c.config.MaxPages {
			c.logger.Warn().
				Str("listing", name).
				Int("max_pages", c.config.MaxPages).
				Int("items", len(items)).
				Msg("Page limit reached, listing truncated")
			return items, fmt.Errorf("%w after %d pages", ErrPageLimit, c.config.MaxPages)
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		p, ok, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if !ok {
			c.logger.Debug().
				Str("listing", name).
				Int("page", page).
				Msg("No data for page, stopping")
			break
		}

		pagesFetchedTotal.WithLabelValues(name).Inc()
		items = append(items, p.Items...)

		c.logger.Debug().
			Str("listing", name).
			Int("page", p.CurrentPage).
			Int("total_pages", p.TotalPages).
			Int("items_on_page", len(p.Items)).
			Int("items", len(items)).
			Msg("Fetched page")

		if p.Last() {
			break
		}
	}

	c.logger.Debug().
		Str("listing", name).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Collect complete")

	return items, nil
}
