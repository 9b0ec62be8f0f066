package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/cyberfolio/internal/handler"
)

// TestGetHealth_doesNotTouchStorage wires nil services: any storage access
// would panic, so a 200 proves health is independent of the database.
func TestGetHealth_doesNotTouchStorage(t *testing.T) {
	h, _ := newHTTPHandler(nil, nil)

	rec := do(t, h, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestOpenAPI_served(t *testing.T) {
	h, _ := newHTTPHandler(nil, nil)

	rec := do(t, h, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/blog-posts/slug/{slug}")
}

func TestUnknownRoute_structured404(t *testing.T) {
	h, _ := newHTTPHandler(nil, nil)

	rec := do(t, h, http.MethodGet, "/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}
