// Package receipt renders the printable view of a ticket: a flat record,
// the QR code a gate scans, and a mail draft for the buyer.
package receipt

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/format"
)

const (
	qrSize  = 300
	appName = "EventBuzz"
)

// Receipt is a ticket joined with the event it admits to. Event fields are
// empty when the event no longer exists.
type Receipt struct {
	TicketID   string       `json:"ticketId"`
	EventID    string       `json:"eventId"`
	EventFound bool         `json:"eventFound"`
	EventTitle string       `json:"eventTitle,omitempty"`
	EventDate  string       `json:"eventDate,omitempty"`
	Venue      string       `json:"venue,omitempty"`
	SeatLabels []string     `json:"seatLabels"`
	Buyer      domain.Buyer `json:"buyer"`
	CheckedIn  bool         `json:"checkedIn"`
}

// Build flattens t and e into a Receipt. e may be nil.
func Build(t domain.Ticket, e *domain.Event) Receipt {
	r := Receipt{
		TicketID:   t.ID,
		EventID:    t.EventID,
		SeatLabels: format.SeatLabels(t.Seats),
		Buyer:      t.Buyer,
		CheckedIn:  t.CheckedIn,
	}
	if e != nil {
		r.EventFound = true
		r.EventTitle = e.Title
		r.EventDate = format.Date(e.Date)
		r.Venue = e.Venue
	}
	return r
}

// Payload is what the QR code carries.
type Payload struct {
	TicketID   string `json:"ticketId"`
	BuyerName  string `json:"buyerName"`
	BuyerEmail string `json:"buyerEmail"`
	EventName  string `json:"eventName"`
	DateTime   string `json:"dateTime"`
	Venue      string `json:"venue"`
	Seats      string `json:"seats"`
}

func (r Receipt) Payload() Payload {
	return Payload{
		TicketID:   r.TicketID,
		BuyerName:  r.Buyer.Name,
		BuyerEmail: r.Buyer.Email,
		EventName:  r.EventTitle,
		DateTime:   r.EventDate,
		Venue:      r.Venue,
		Seats:      strings.Join(r.SeatLabels, ", "),
	}
}

// QRCode renders the JSON payload as a PNG.
func (r Receipt) QRCode() ([]byte, error) {
	const op = "receipt.Receipt.QRCode"

	b, err := json.Marshal(r.Payload())
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	png, err := qrcode.Encode(string(b), qrcode.Low, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return png, nil
}

// MailSubject and MailBody are the receipt mail addressed to the buyer.
func (r Receipt) MailSubject() string {
	return fmt.Sprintf("Your %s Ticket: %s", appName, r.EventTitle)
}

func (r Receipt) MailBody() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", r.Buyer.Name)
	b.WriteString("Thanks for your purchase! Here are your ticket details:\n")
	fmt.Fprintf(&b, "Event: %s\n", r.EventTitle)
	fmt.Fprintf(&b, "Date: %s\n", r.EventDate)
	fmt.Fprintf(&b, "Venue: %s\n", r.Venue)
	fmt.Fprintf(&b, "Seats: %s\n", strings.Join(r.SeatLabels, ", "))
	fmt.Fprintf(&b, "Ticket ID: %s\n\n", r.TicketID)
	b.WriteString("You can print the page or save the QR code image.\n\n")
	b.WriteString("\u2014 " + appName)
	return b.String()
}

// MailtoURL is a mailto: link prefilled with the receipt mail.
func (r Receipt) MailtoURL() string {
	return "mailto:" + r.Buyer.Email +
		"?subject=" + escapeComponent(r.MailSubject()) +
		"&body=" + escapeComponent(r.MailBody())
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
