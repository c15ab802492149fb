package ident

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixEvent  = "evt"
	PrefixTicket = "tkt"
	PrefixUser   = "usr"
)

const suffixLen = 12

// New returns an identifier of the form {prefix}_{unix-millis}_{random-suffix}.
// Uniqueness is probabilistic; stores key on it and reject duplicates.
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

func NewAt(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]

	var b strings.Builder
	b.Grow(len(prefix) + 32)
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('_')
	b.WriteString(suffix)

	return b.String()
}

// HasPrefix reports whether id was minted with the given prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_")
}
