package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/model"
	"github.com/rickgao/kalshi-sync/internal/service"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// pagedMarkets serves a fixed sequence of pages; errs[i] non-nil makes
// call i fail instead.
type pagedMarkets struct {
	pages   [][]model.Market
	cursors []string
	errs    []error
	calls   int
	filters []service.MarketFilters
}

func (p *pagedMarkets) ListMarketRecords(ctx context.Context, f service.MarketFilters) ([]model.Market, string, error) {
	i := p.calls
	p.calls++
	p.filters = append(p.filters, f)
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, "", p.errs[i]
	}
	return p.pages[i], p.cursors[i], nil
}

type pagedSeries struct {
	pages   [][]model.Series
	cursors []string
	errs    []error
	calls   int
}

func (p *pagedSeries) ListSeriesRecords(ctx context.Context, f service.SeriesFilters) ([]model.Series, string, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, "", p.errs[i]
	}
	return p.pages[i], p.cursors[i], nil
}

type pagedEvents struct {
	pages   [][]model.Event
	cursors []string
	calls   int
}

func (p *pagedEvents) ListEventRecords(ctx context.Context, f service.EventFilters) ([]model.Event, []json.RawMessage, string, error) {
	i := p.calls
	p.calls++
	return p.pages[i], nil, p.cursors[i], nil
}

// countSaver counts records across batches; fail makes every save error.
type countSaver struct {
	saved   int
	batches int
	fail    error
}

func (s *countSaver) save(records int) (int, error) {
	if s.fail != nil {
		return 0, s.fail
	}
	s.batches++
	s.saved += records
	return records, nil
}

func (s *countSaver) SaveSeries(ctx context.Context, records []model.Series) (int, error) {
	return s.save(len(records))
}

func (s *countSaver) SaveEvents(ctx context.Context, records []model.Event) (int, error) {
	return s.save(len(records))
}

func (s *countSaver) SaveMarkets(ctx context.Context, records []model.Market) (int, error) {
	return s.save(len(records))
}

func markets(tickers ...string) []model.Market {
	out := make([]model.Market, len(tickers))
	for i, ticker := range tickers {
		out[i] = model.Market{Ticker: ticker}
	}
	return out
}

func TestRunFollowsCursorsToTermination(t *testing.T) {
	lister := &pagedMarkets{
		pages:   [][]model.Market{markets("M1", "M2"), markets("M3", "M4"), markets("M5")},
		cursors: []string{"a", "b", ""},
	}
	saver := &countSaver{}
	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: saver},
		Config{PageLimit: 2},
		testLogger,
	)

	summaries := runner.Run(context.Background(), []string{ResourceMarkets})
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	s := summaries[0]
	if s.Err != nil {
		t.Fatalf("sync failed: %v", s.Err)
	}
	if s.Pages != 3 || s.Fetched != 5 || s.Saved != 5 {
		t.Errorf("summary = %+v, want 3 pages, 5 fetched, 5 saved", s)
	}
	if saver.batches != 3 {
		t.Errorf("saver ran %d batches, want 3", saver.batches)
	}

	// The cursor from each page feeds the next request.
	if lister.filters[0].Cursor != "" || lister.filters[1].Cursor != "a" || lister.filters[2].Cursor != "b" {
		t.Errorf("cursors seen: %q, %q, %q", lister.filters[0].Cursor, lister.filters[1].Cursor, lister.filters[2].Cursor)
	}
	if lister.filters[0].Limit != 2 {
		t.Errorf("page limit = %d, want 2", lister.filters[0].Limit)
	}
}

func TestRunEmptyPageStillTerminates(t *testing.T) {
	lister := &pagedMarkets{
		pages:   [][]model.Market{nil},
		cursors: []string{""},
	}
	saver := &countSaver{}
	runner := NewRunner(Deps{Markets: lister, MarketsRepo: saver}, Config{}, testLogger)

	s := runner.Run(context.Background(), []string{ResourceMarkets})[0]
	if s.Err != nil {
		t.Fatalf("sync failed: %v", s.Err)
	}
	if s.Pages != 1 || s.Fetched != 0 {
		t.Errorf("summary = %+v", s)
	}
	if saver.batches != 0 {
		t.Errorf("saver ran %d batches on an empty page, want 0", saver.batches)
	}
}

func TestRunMaxPagesBound(t *testing.T) {
	// Cursors never run out; MaxPages must stop the loop.
	lister := &pagedMarkets{
		pages:   [][]model.Market{markets("M1"), markets("M2"), markets("M3")},
		cursors: []string{"a", "b", "c"},
	}
	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: &countSaver{}},
		Config{MaxPages: 2},
		testLogger,
	)

	s := runner.Run(context.Background(), []string{ResourceMarkets})[0]
	if s.Err != nil {
		t.Fatalf("sync failed: %v", s.Err)
	}
	if s.Pages != 2 {
		t.Errorf("Pages = %d, want 2", s.Pages)
	}
}

func TestRunUnknownResource(t *testing.T) {
	runner := NewRunner(Deps{}, Config{}, testLogger)

	summaries := runner.Run(context.Background(), []string{"portfolio"})
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	if !errors.Is(summaries[0].Err, ErrUnknownResource) {
		t.Errorf("err = %v, want ErrUnknownResource", summaries[0].Err)
	}
}

func TestRunResourcesAreIndependent(t *testing.T) {
	seriesLister := &pagedSeries{
		pages:   [][]model.Series{nil},
		cursors: []string{""},
		errs:    []error{&api.APIError{Operation: "get_series", StatusCode: 401}},
	}
	eventsLister := &pagedEvents{
		pages:   [][]model.Event{{{EventTicker: "EV1"}}},
		cursors: []string{""},
	}
	saver := &countSaver{}
	runner := NewRunner(
		Deps{Series: seriesLister, Events: eventsLister, SeriesRepo: saver, EventsRepo: saver},
		Config{},
		testLogger,
	)

	summaries := runner.Run(context.Background(), []string{ResourceSeries, ResourceEvents})
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	if summaries[0].Err == nil {
		t.Error("series summary should carry the 401 error")
	}
	if summaries[1].Err != nil {
		t.Errorf("events sync failed: %v", summaries[1].Err)
	}
	if summaries[1].Fetched != 1 || summaries[1].Saved != 1 {
		t.Errorf("events summary = %+v", summaries[1])
	}
}

func TestRunDefaultsToAllResources(t *testing.T) {
	runner := NewRunner(
		Deps{
			Series:      &pagedSeries{pages: [][]model.Series{nil}, cursors: []string{""}},
			Events:      &pagedEvents{pages: [][]model.Event{nil}, cursors: []string{""}},
			Markets:     &pagedMarkets{pages: [][]model.Market{nil}, cursors: []string{""}},
			SeriesRepo:  &countSaver{},
			EventsRepo:  &countSaver{},
			MarketsRepo: &countSaver{},
		},
		Config{},
		testLogger,
	)

	summaries := runner.Run(context.Background(), nil)
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}
	want := []string{ResourceSeries, ResourceEvents, ResourceMarkets}
	for i, s := range summaries {
		if s.Resource != want[i] {
			t.Errorf("summaries[%d].Resource = %q, want %q", i, s.Resource, want[i])
		}
		if s.Err != nil {
			t.Errorf("%s sync failed: %v", s.Resource, s.Err)
		}
	}
}

func TestRetryTransientThenSucceed(t *testing.T) {
	lister := &pagedMarkets{
		pages:   [][]model.Market{nil, markets("M1")},
		cursors: []string{"", ""},
		errs:    []error{&api.APIError{Operation: "get_markets", StatusCode: 503}, nil},
	}
	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: &countSaver{}},
		Config{MaxRetries: 3, RetryBaseDelay: time.Millisecond},
		testLogger,
	)

	s := runner.Run(context.Background(), []string{ResourceMarkets})[0]
	if s.Err != nil {
		t.Fatalf("sync failed after retryable error: %v", s.Err)
	}
	if lister.calls != 2 {
		t.Errorf("lister called %d times, want 2 (one retry)", lister.calls)
	}
	if s.Fetched != 1 {
		t.Errorf("Fetched = %d, want 1", s.Fetched)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	transient := &api.APIError{Operation: "get_markets", StatusCode: 500}
	lister := &pagedMarkets{
		errs: []error{transient, transient, transient},
	}
	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: &countSaver{}},
		Config{MaxRetries: 2, RetryBaseDelay: time.Millisecond},
		testLogger,
	)

	s := runner.Run(context.Background(), []string{ResourceMarkets})[0]
	if s.Err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if lister.calls != 3 {
		t.Errorf("lister called %d times, want 3 (initial + 2 retries)", lister.calls)
	}
}

func TestNonRetryableFailsImmediately(t *testing.T) {
	lister := &pagedMarkets{
		errs: []error{&api.APIError{Operation: "get_markets", StatusCode: 400}},
	}
	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: &countSaver{}},
		Config{MaxRetries: 3, RetryBaseDelay: time.Millisecond},
		testLogger,
	)

	s := runner.Run(context.Background(), []string{ResourceMarkets})[0]
	if s.Err == nil {
		t.Fatal("expected error")
	}
	if lister.calls != 1 {
		t.Errorf("lister called %d times, want 1 (no retries on 400)", lister.calls)
	}
}

func TestSaveFailureStopsResource(t *testing.T) {
	lister := &pagedMarkets{
		pages:   [][]model.Market{markets("M1")},
		cursors: []string{"more"},
	}
	saveErr := errors.New("constraint violation")
	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: &countSaver{fail: saveErr}},
		Config{},
		testLogger,
	)

	s := runner.Run(context.Background(), []string{ResourceMarkets})[0]
	if !errors.Is(s.Err, saveErr) {
		t.Errorf("err = %v, want the save error", s.Err)
	}
	if lister.calls != 1 {
		t.Errorf("lister called %d times after a save failure, want 1", lister.calls)
	}
}

func TestCancelledContextStopsPaging(t *testing.T) {
	lister := &pagedMarkets{
		pages:   [][]model.Market{markets("M1"), markets("M2")},
		cursors: []string{"a", "b"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(
		Deps{Markets: lister, MarketsRepo: &countSaver{}},
		Config{PageDelay: time.Millisecond},
		testLogger,
	)

	s := runner.Run(ctx, []string{ResourceMarkets})[0]
	if !errors.Is(s.Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", s.Err)
	}
	if lister.calls != 1 {
		t.Errorf("lister called %d times with a cancelled context, want 1", lister.calls)
	}
}
