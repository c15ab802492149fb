package receipt

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

const (
	dataHTMLPrefix = "data:text/html"
	legacyPageMark = "ticket.html?data="
)

var legacyTicketID = regexp.MustCompile(`Ticket ID:</strong>\s*([^\s<]+)`)

// DecodeTicketID extracts the ticket id from scanned QR text. It accepts the
// JSON payload, the legacy data:text/html ticket page, the legacy
// ticket.html?data=<json> link, and a bare id.
func DecodeTicketID(scanned string) (string, bool) {
	s := strings.TrimSpace(scanned)
	if s == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(s, "{"):
		return idFromJSON(s)
	case strings.HasPrefix(s, dataHTMLPrefix):
		return idFromDataURL(s)
	case strings.Contains(s, legacyPageMark):
		return idFromLegacyLink(s)
	default:
		return s, true
	}
}

func idFromJSON(s string) (string, bool) {
	var p struct {
		TicketID string `json:"ticketId"`
		ID       string `json:"id"`
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return "", false
	}

	id := strings.TrimSpace(p.TicketID)
	if id == "" {
		id = strings.TrimSpace(p.ID)
	}
	return id, id != ""
}

func idFromDataURL(s string) (string, bool) {
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return "", false
	}

	html, err := url.PathUnescape(s[comma+1:])
	if err != nil {
		return "", false
	}

	m := legacyTicketID.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func idFromLegacyLink(s string) (string, bool) {
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	data := u.Query().Get("data")
	if id, ok := idFromJSON(data); ok {
		return id, true
	}

	unescaped, err := url.QueryUnescape(data)
	if err != nil {
		return "", false
	}
	return idFromJSON(unescaped)
}
