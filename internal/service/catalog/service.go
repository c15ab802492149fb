package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/format"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
)

type Config struct {
	EventTTL time.Duration
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	cfg   Config
	log   *slog.Logger
}

func New(store repository.Store, cache *redisrepo.Cache, cfg Config, log *slog.Logger) *Service {
	if cfg.EventTTL <= 0 {
		cfg.EventTTL = 30 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
		log:   log,
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to SortAsc.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

type ListParams struct {
	Query string
	Sort  SortOrder
}

// List returns the events matching p.Query, ordered by date.
//
// Parameters:
//   - ctx: request-scoped context.
//   - p: case-insensitive search over title, description and venue, and the
//     date order. Events whose date does not parse sort last either way.
//
// Returns:
//   - []domain.Event: the matching events, possibly empty.
//   - error: if the store fails.
func (s *Service) List(ctx context.Context, p ListParams) ([]domain.Event, error) {
	const op = "service.catalog.List"

	events, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyEventList(),
		s.cfg.EventTTL,
		func(ctx context.Context) ([]domain.Event, error) {
			return s.store.Events().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	out := filter(events, p.Query)
	SortByDate(out, p.Sort)

	return out, nil
}

// Get retrieves an event by its ID through the cache.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the event to retrieve.
//
// Returns:
//   - *domain.Event: the retrieved event.
//   - error: catalog.ErrEventNotFound if the event is not found.
func (s *Service) Get(ctx context.Context, id string) (*domain.Event, error) {
	const op = "service.catalog.Get"

	event, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyEventDetail(id),
		s.cfg.EventTTL,
		func(ctx context.Context) (domain.Event, error) {
			e, err := s.store.Events().Get(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Event{}, ErrEventNotFound
				}

				return domain.Event{}, err
			}

			return *e, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &event, nil
}

type SeatCell struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Reserved bool   `json:"reserved"`
}

type SeatMap struct {
	EventID   string       `json:"eventId"`
	Rows      int          `json:"rows"`
	Cols      int          `json:"cols"`
	Available int          `json:"available"`
	Grid      [][]SeatCell `json:"grid"`
}

// SeatMap lays the event out as rows of cells.
func (s *Service) SeatMap(ctx context.Context, id string) (*SeatMap, error) {
	const op = "service.catalog.SeatMap"

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return BuildSeatMap(*e), nil
}

func BuildSeatMap(e domain.Event) *SeatMap {
	grid := make([][]SeatCell, e.Rows)
	for r := range e.Rows {
		row := make([]SeatCell, e.Cols)
		for c := range e.Cols {
			key := domain.SeatKey(r, c)
			row[c] = SeatCell{
				Key:      key,
				Label:    format.SeatLabel(key),
				Reserved: e.IsReserved(key),
			}
		}
		grid[r] = row
	}

	return &SeatMap{
		EventID:   e.ID,
		Rows:      e.Rows,
		Cols:      e.Cols,
		Available: e.AvailableSeats(),
		Grid:      grid,
	}
}

// SeedDemo creates the demo concert when the catalog is empty.
//
// Returns:
//   - bool: whether an event was created.
//   - error: if the store fails.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	const op = "service.catalog.SeedDemo"

	seeded := false
	err := s.store.RunTx(ctx, func(ctx context.Context, tx repository.Store) error {
		events, err := tx.Events().List(ctx)
		if err != nil {
			return err
		}
		if len(events) > 0 {
			return nil
		}

		seeded = true
		return tx.Events().Create(ctx, DemoEvent())
	})
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	if seeded {
		if err := s.cache.Del(ctx, redisrepo.KeyEventList()); err != nil {
			s.log.Warn("invalidate event list cache", slog.Any("err", err))
		}
	}

	return seeded, nil
}

func DemoEvent() domain.Event {
	return domain.Event{
		ID:          ident.New(ident.PrefixEvent),
		Title:       "University Concert",
		Description: "Live music night at the campus!",
		Venue:       "Main Auditorium",
		Date:        "2025-09-30T19:30",
		Rows:        6,
		Cols:        10,
		Price:       49,
		Seats:       map[string]bool{},
	}
}

func filter(events []domain.Event, q string) []domain.Event {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return slices.Clone(events)
	}

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(e.Venue), q) {
			out = append(out, e)
		}
	}
	return out
}

// SortByDate orders events by their parsed date in place. Unparseable dates
// go last, keeping their relative order.
func SortByDate(events []domain.Event, order SortOrder) {
	type keyed struct {
		t  time.Time
		ok bool
	}

	keys := make(map[string]keyed, len(events))
	for _, e := range events {
		t, err := format.ParseDate(e.Date)
		keys[e.ID] = keyed{t: t, ok: err == nil}
	}

	slices.SortStableFunc(events, func(a, b domain.Event) int {
		ka, kb := keys[a.ID], keys[b.ID]
		switch {
		case !ka.ok && !kb.ok:
			return 0
		case !ka.ok:
			return 1
		case !kb.ok:
			return -1
		}

		c := ka.t.Compare(kb.t)
		if order == SortDesc {
			c = -c
		}
		return c
	})
}
