package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("database is closed") }

type fakeQueue struct {
	started bool
	workers int
}

func (q fakeQueue) Started() bool { return q.started }
func (q fakeQueue) Workers() int  { return q.workers }

func healthStatus(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db, err := database.NewDatabase(filepath.Join(t.TempDir(), "health.db"))
		require.NoError(t, err)
		defer db.Close()

		code, response := healthStatus(t, NewHealthController(db, fakeQueue{started: true, workers: 2}, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "running (2 workers)", response.Checks["tasks"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports missing dependencies", func(t *testing.T) {
		code, response := healthStatus(t, NewHealthController(nil, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Equal(t, "disabled", response.Checks["tasks"])
	})

	t.Run("returns unhealthy when database is unreachable", func(t *testing.T) {
		code, response := healthStatus(t, NewHealthController(failingPinger{}, fakeQueue{}, ""))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "database is closed")
		assert.Equal(t, "stopped", response.Checks["tasks"])
	})
}
