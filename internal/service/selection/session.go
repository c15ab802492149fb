// Package selection tracks the seats a buyer has tentatively picked for one
// event. Sessions live in memory only and never touch the store.
package selection

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/format"
)

// Session is not safe for concurrent use.
type Session struct {
	event    domain.Event
	selected []string
}

// New starts an empty selection over a snapshot of e.
func New(e domain.Event) *Session {
	return &Session{event: e.Clone()}
}

// Replay starts a selection and applies toggles in order.
func Replay(e domain.Event, toggles []string) *Session {
	s := New(e)
	for _, k := range toggles {
		s.Toggle(k)
	}
	return s
}

// Toggle flips key in or out of the selection and reports whether it is
// selected afterwards. Reserved, malformed and out-of-grid keys are ignored.
func (s *Session) Toggle(key string) bool {
	if !s.event.InGrid(key) || s.event.IsReserved(key) {
		return false
	}

	if i := slices.Index(s.selected, key); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return false
	}

	s.selected = append(s.selected, key)
	return true
}

// Selected returns the picked keys in pick order.
func (s *Session) Selected() []string {
	return slices.Clone(s.selected)
}

func (s *Session) Count() int {
	return len(s.selected)
}

func (s *Session) EventID() string {
	return s.event.ID
}

// Total is count * price, computed on every call.
func (s *Session) Total() decimal.Decimal {
	return decimal.NewFromFloat(s.event.Price).Mul(decimal.NewFromInt(int64(len(s.selected))))
}

func (s *Session) Labels() []string {
	return format.SeatLabels(s.selected)
}

func (s *Session) Summary() string {
	return fmt.Sprintf("%d seats selected | Total: %s", s.Count(), s.Total().StringFixed(2))
}
