package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/model"
)

// EventsService encapsulates event-related catalog queries.
type EventsService struct {
	client ExchangeClient
	logger *slog.Logger
}

// NewEventsService creates an events service.
func NewEventsService(client ExchangeClient, logger *slog.Logger) *EventsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventsService{client: client, logger: logger}
}

// EventFilters holds the optional event query filters. Zero values are not
// forwarded; the boolean flags stay unset unless given.
type EventFilters struct {
	Limit             int
	Cursor            string
	SeriesTicker      string
	Status            string
	WithNestedMarkets *bool
	WithMilestones    *bool
	MinCloseTS        int64
}

func (f EventFilters) options() api.GetEventsOptions {
	return api.GetEventsOptions{
		Limit:             f.Limit,
		Cursor:            f.Cursor,
		SeriesTicker:      f.SeriesTicker,
		Status:            f.Status,
		WithNestedMarkets: f.WithNestedMarkets,
		WithMilestones:    f.WithMilestones,
		MinCloseTS:        f.MinCloseTS,
	}
}

// ListEventRecords fetches one page of events as normalized records, any
// milestones the page carried, and the next-page cursor ("" = end of data).
// A typed decode failure falls back to raw parsing of the same request; if
// the raw payload does not decode either, the page comes back empty.
func (s *EventsService) ListEventRecords(ctx context.Context, f EventFilters) ([]model.Event, []json.RawMessage, string, error) {
	opts := f.options()

	resp, err := s.client.GetEvents(ctx, opts)
	if err == nil {
		records := make([]model.Event, 0, len(resp.Events))
		for i := range resp.Events {
			records = append(records, resp.Events[i].ToRecord())
		}
		return records, resp.Milestones, resp.Cursor, nil
	}

	var decodeErr *api.DecodeError
	if !errors.As(err, &decodeErr) {
		return nil, nil, "", err
	}

	s.logger.Warn("event payload validation failed; falling back to raw parsing",
		"error", decodeErr.Err,
	)

	body, err := s.client.GetEventsRaw(ctx, opts)
	if err != nil {
		return nil, nil, "", err
	}

	var payload struct {
		Events     []map[string]any  `json:"events"`
		Milestones []json.RawMessage `json:"milestones"`
		Cursor     string            `json:"cursor"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		s.logger.Error("unable to decode event payload", "error", err)
		return nil, nil, "", nil
	}

	records := make([]model.Event, 0, len(payload.Events))
	for _, item := range payload.Events {
		records = append(records, model.EventFromMap(item))
	}
	return records, payload.Milestones, payload.Cursor, nil
}
