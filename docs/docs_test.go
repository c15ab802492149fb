package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocIsValidJSON(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()
	require.True(t, json.Valid([]byte(doc)))

	var parsed struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	for _, path := range []string{"/events", "/events/{id}/checkout", "/checkin", "/admin/events"} {
		assert.Contains(t, parsed.Paths, path)
	}
}
