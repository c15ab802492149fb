package httpgin

import (
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
)

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     domain.Role `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     domain.Role `json:"role,omitempty"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

type EventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Venue       string  `json:"venue"`
	Date        string  `json:"date"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Price       float64 `json:"price"`
}

// QuoteRequest replays seat toggles in click order.
type QuoteRequest struct {
	Toggles []string `json:"toggles"`
}

type QuoteResponse struct {
	EventID string   `json:"eventId"`
	Seats   []string `json:"seats"`
	Labels  []string `json:"labels"`
	Count   int      `json:"count"`
	Total   string   `json:"total"`
	Summary string   `json:"summary"`
}

type BuyerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CheckoutRequest struct {
	Buyer BuyerRequest `json:"buyer"`
	Seats []string     `json:"seats"`
}

type TicketResponse struct {
	Ticket  domain.Ticket   `json:"ticket"`
	Event   *domain.Event   `json:"event,omitempty"`
	Receipt receipt.Receipt `json:"receipt"`
	Mailto  string          `json:"mailto"`
}

// CheckInRequest takes either a ticket ID or the raw scanned QR payload.
type CheckInRequest struct {
	TicketID string `json:"ticket_id"`
	Payload  string `json:"payload"`
}

type CheckInResponse struct {
	Status     string        `json:"status"`
	Ticket     domain.Ticket `json:"ticket"`
	Event      *domain.Event `json:"event,omitempty"`
	SeatLabels []string      `json:"seatLabels"`
}

type SeatConflictResponse struct {
	Error string   `json:"error"`
	Seats []string `json:"seats"`
}

type AlreadyUsedResponse struct {
	Error       string    `json:"error"`
	TicketID    string    `json:"ticketId"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
