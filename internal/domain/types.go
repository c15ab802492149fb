package domain

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Event is a scheduled show with a rows x cols seat grid.
// Seats maps a seat key to true once it is reserved; absent keys are free.
type Event struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Venue       string          `json:"venue"`
	Date        string          `json:"date"`
	Rows        int             `json:"rows"`
	Cols        int             `json:"cols"`
	Price       float64         `json:"price"`
	Seats       map[string]bool `json:"seats"`
}

// IsReserved reports whether the seat key is taken.
func (e *Event) IsReserved(key string) bool {
	return e.Seats[key]
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	cp := e
	cp.Seats = make(map[string]bool, len(e.Seats))
	for k, v := range e.Seats {
		cp.Seats[k] = v
	}
	return cp
}

type Buyer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Ticket struct {
	ID          string     `json:"id"`
	EventID     string     `json:"eventId"`
	Buyer       Buyer      `json:"buyer"`
	Seats       []string   `json:"seats"`
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Clone returns a deep copy of the ticket.
func (t Ticket) Clone() Ticket {
	cp := t
	cp.Seats = append([]string(nil), t.Seats...)
	if t.CheckedInAt != nil {
		at := *t.CheckedInAt
		cp.CheckedInAt = &at
	}
	return cp
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Actor is the signed-in principal behind a request.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}
