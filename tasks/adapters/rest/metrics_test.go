package rest

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

func TestMetrics_CountsByRoute(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/tasks/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/tasks/1", "/tasks/2"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/tasks/:id", "204")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tasks_http_requests_total")
	assert.Contains(t, rec.Body.String(), "tasks_http_request_duration_seconds")
}

func TestWriteErr(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	testCases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "validation",
			err:      &core.ValidationError{Fields: map[string]string{"title": "is required"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":"validation failed","fields":{"title":"is required"}}`,
		},
		{
			name:     "invalid_args",
			err:      fmt.Errorf("insert task: %w", core.ErrTaskInvalidArgs),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":"insert task: task invalid args"}`,
		},
		{
			name:     "not_found",
			err:      fmt.Errorf("get: %w", core.ErrTaskNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"task not found"}`,
		},
		{
			name:     "unauthenticated",
			err:      core.ErrUnauthenticated,
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"unauthenticated"}`,
		},
		{
			name:     "internal",
			err:      fmt.Errorf("dial tcp: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, WriteErr(c, log, tc.err))
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, tc.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}
