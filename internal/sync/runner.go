// Package sync drives the page-by-page catalog sync: fetch a page through a
// service, persist it through a repository, follow the cursor until the
// server returns an empty one. Resources run sequentially and independently;
// one resource failing does not stop the others.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/model"
	"github.com/rickgao/kalshi-sync/internal/service"
)

// Resource names accepted by the runner, in default execution order.
const (
	ResourceSeries  = "series"
	ResourceEvents  = "events"
	ResourceMarkets = "markets"
)

// DefaultResources is the default sync order: parents before children so
// soft foreign references resolve.
var DefaultResources = []string{ResourceSeries, ResourceEvents, ResourceMarkets}

// ErrUnknownResource is returned for a resource name the runner does not
// support, distinct from any remote error so callers can detect version
// skew against the exchange surface.
var ErrUnknownResource = errors.New("unknown sync resource")

// SeriesLister fetches one page of series records.
type SeriesLister interface {
	ListSeriesRecords(ctx context.Context, f service.SeriesFilters) ([]model.Series, string, error)
}

// EventsLister fetches one page of event records.
type EventsLister interface {
	ListEventRecords(ctx context.Context, f service.EventFilters) ([]model.Event, []json.RawMessage, string, error)
}

// MarketsLister fetches one page of market records.
type MarketsLister interface {
	ListMarketRecords(ctx context.Context, f service.MarketFilters) ([]model.Market, string, error)
}

// SeriesSaver persists a batch of series records.
type SeriesSaver interface {
	SaveSeries(ctx context.Context, records []model.Series) (int, error)
}

// EventsSaver persists a batch of event records.
type EventsSaver interface {
	SaveEvents(ctx context.Context, records []model.Event) (int, error)
}

// MarketsSaver persists a batch of market records.
type MarketsSaver interface {
	SaveMarkets(ctx context.Context, records []model.Market) (int, error)
}

// Deps wires the runner to its services and repositories.
type Deps struct {
	Series  SeriesLister
	Events  EventsLister
	Markets MarketsLister

	SeriesRepo  SeriesSaver
	EventsRepo  EventsSaver
	MarketsRepo MarketsSaver
}

// Config holds the runner's paging and retry settings.
type Config struct {
	PageLimit      int
	PageDelay      time.Duration // pause between pages, 0 = none
	MaxPages       int           // 0 = unbounded
	Status         string        // optional server-side status filter
	MaxRetries     int           // per-page retries of retryable API errors
	RetryBaseDelay time.Duration
}

// Summary aggregates one resource's sync outcome.
type Summary struct {
	Resource string
	Pages    int
	Fetched  int
	Saved    int
	Duration time.Duration
	Err      error
}

// Runner executes catalog syncs.
type Runner struct {
	deps   Deps
	cfg    Config
	logger *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(deps Deps, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{deps: deps, cfg: cfg, logger: logger}
}

// Run syncs the named resources sequentially (DefaultResources when empty)
// and returns one summary per resource. A failed resource records its error
// on its summary; the remaining resources still run.
func (r *Runner) Run(ctx context.Context, resources []string) []Summary {
	if len(resources) == 0 {
		resources = DefaultResources
	}

	summaries := make([]Summary, 0, len(resources))
	for _, resource := range resources {
		s := r.syncResource(ctx, resource)
		if s.Err != nil {
			r.logger.Error("resource sync failed",
				"resource", resource,
				"pages", s.Pages,
				"error", s.Err,
			)
		} else {
			r.logger.Info("resource sync complete",
				"resource", resource,
				"pages", s.Pages,
				"fetched", s.Fetched,
				"saved", s.Saved,
				"duration", s.Duration,
			)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func (r *Runner) syncResource(ctx context.Context, resource string) Summary {
	start := time.Now()
	s := Summary{Resource: resource}

	switch resource {
	case ResourceSeries:
		s.Err = r.syncSeries(ctx, &s)
	case ResourceEvents:
		s.Err = r.syncEvents(ctx, &s)
	case ResourceMarkets:
		s.Err = r.syncMarkets(ctx, &s)
	default:
		s.Err = fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}

	s.Duration = time.Since(start)
	return s
}

func (r *Runner) syncSeries(ctx context.Context, s *Summary) error {
	cursor := ""
	for {
		f := service.SeriesFilters{
			Status: r.cfg.Status,
			Limit:  r.cfg.PageLimit,
			Cursor: cursor,
		}

		var (
			records []model.Series
			next    string
		)
		err := r.retry(ctx, func() error {
			var err error
			records, next, err = r.deps.Series.ListSeriesRecords(ctx, f)
			return err
		})
		if err != nil {
			return err
		}

		s.Pages++
		s.Fetched += len(records)

		if len(records) > 0 {
			saved, err := r.deps.SeriesRepo.SaveSeries(ctx, records)
			if err != nil {
				return err
			}
			s.Saved += saved
		}

		r.logger.Debug("synced page",
			"resource", ResourceSeries,
			"page", s.Pages,
			"fetched", len(records),
			"cursor", next,
		)

		done, err := r.advance(ctx, s, next)
		if done || err != nil {
			return err
		}
		cursor = next
	}
}

func (r *Runner) syncEvents(ctx context.Context, s *Summary) error {
	cursor := ""
	for {
		f := service.EventFilters{
			Limit:  r.cfg.PageLimit,
			Cursor: cursor,
			Status: r.cfg.Status,
		}

		var (
			records    []model.Event
			milestones []json.RawMessage
			next       string
		)
		err := r.retry(ctx, func() error {
			var err error
			records, milestones, next, err = r.deps.Events.ListEventRecords(ctx, f)
			return err
		})
		if err != nil {
			return err
		}

		s.Pages++
		s.Fetched += len(records)

		if len(milestones) > 0 {
			r.logger.Info("received milestones",
				"resource", ResourceEvents,
				"count", len(milestones),
				"page", s.Pages,
			)
		}

		if len(records) > 0 {
			saved, err := r.deps.EventsRepo.SaveEvents(ctx, records)
			if err != nil {
				return err
			}
			s.Saved += saved
		}

		r.logger.Debug("synced page",
			"resource", ResourceEvents,
			"page", s.Pages,
			"fetched", len(records),
			"cursor", next,
		)

		done, err := r.advance(ctx, s, next)
		if done || err != nil {
			return err
		}
		cursor = next
	}
}

func (r *Runner) syncMarkets(ctx context.Context, s *Summary) error {
	cursor := ""
	for {
		f := service.MarketFilters{
			Limit:  r.cfg.PageLimit,
			Cursor: cursor,
			Status: r.cfg.Status,
		}

		var (
			records []model.Market
			next    string
		)
		err := r.retry(ctx, func() error {
			var err error
			records, next, err = r.deps.Markets.ListMarketRecords(ctx, f)
			return err
		})
		if err != nil {
			return err
		}

		s.Pages++
		s.Fetched += len(records)

		if len(records) > 0 {
			saved, err := r.deps.MarketsRepo.SaveMarkets(ctx, records)
			if err != nil {
				return err
			}
			s.Saved += saved
		}

		r.logger.Debug("synced page",
			"resource", ResourceMarkets,
			"page", s.Pages,
			"fetched", len(records),
			"cursor", next,
		)

		done, err := r.advance(ctx, s, next)
		if done || err != nil {
			return err
		}
		cursor = next
	}
}

// advance decides whether the page loop is finished and applies the
// inter-page delay. done is true on an empty cursor or when the configured
// page bound is reached.
func (r *Runner) advance(ctx context.Context, s *Summary, next string) (done bool, err error) {
	if next == "" {
		return true, nil
	}
	if r.cfg.MaxPages > 0 && s.Pages >= r.cfg.MaxPages {
		r.logger.Warn("page bound reached; stopping early",
			"resource", s.Resource,
			"pages", s.Pages,
		)
		return true, nil
	}
	if r.cfg.PageDelay > 0 {
		timer := time.NewTimer(r.cfg.PageDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case <-timer.C:
		}
	}
	return false, nil
}

// retry re-runs op on retryable API errors (5xx, 429, transport) with
// exponential backoff. Everything else fails immediately.
func (r *Runner) retry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	if r.cfg.RetryBaseDelay > 0 {
		bo.InitialInterval = r.cfg.RetryBaseDelay
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.cfg.MaxRetries)), ctx)

	return backoff.RetryNotify(
		func() error {
			err := op()
			if err == nil {
				return nil
			}
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.IsRetryable() {
				return err
			}
			return backoff.Permanent(err)
		},
		policy,
		func(err error, wait time.Duration) {
			r.logger.Warn("retrying after transient error",
				"backoff", wait,
				"error", err,
			)
		},
	)
}
