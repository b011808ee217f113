package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultify/backend/internal/adapter/store"
	"github.com/vaultify/backend/internal/service"
)

// newTestApp wires the API the way cmd/server does, with AI disabled so the
// deterministic fallback paths answer all queries.
func newTestApp() *fiber.App {
	logStore := store.NewLogStore()
	vectorIndex := store.NewVectorIndex()
	rag := service.NewRAGService(nil, logStore, vectorIndex, service.DefaultRAGConfig())
	logService := service.NewLogService(logStore, rag)

	app := fiber.New()
	api := app.Group("/api")
	NewLogHandler(logService).Register(api)
	NewInsightHandler(rag).Register(api)
	api.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":              "healthy",
			"logs_count":          logService.Total(),
			"ai_enabled":          rag.AIEnabled(),
			"vector_store_active": rag.IndexActive(),
		})
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	return resp.StatusCode, payload
}

func TestAddLog(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, http.MethodPost, "/api/logs",
		`{"event": "door_unlocked", "detail": "keypad entry"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Log added successfully", payload["message"])
	assert.Equal(t, float64(1), payload["total_logs"])
	assert.Equal(t, "door_unlocked", payload["event_type"])
}

func TestAddLog_UnrecognizedEventAccepted(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, http.MethodPost, "/api/logs",
		`{"event": "window_sensor", "detail": "tilt detected"}`)

	assert.Equal(t, http.StatusOK, status, "unknown tags are flagged, never rejected")
	assert.Equal(t, "window_sensor", payload["event_type"])
}

func TestAddLog_MissingFields(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "door_locked"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload, "error")
}

func TestListLogs_TotalMatchesIngested(t *testing.T) {
	app := newTestApp()
	for i := 0; i < 3; i++ {
		doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "hallway"}`)
	}
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "door_locked", "detail": "remote"}`)

	status, payload := doJSON(t, app, http.MethodGet, "/api/logs", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), payload["total"])
	assert.Equal(t, float64(4), payload["filtered"])
	assert.Len(t, payload["logs"], 4)
}

func TestListLogs_FilterAndLimit(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "first"}`)
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "door_locked", "detail": "second"}`)
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "third"}`)

	status, payload := doJSON(t, app, http.MethodGet, "/api/logs?event_type=motion_alert&limit=1", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), payload["total"])
	assert.Equal(t, float64(1), payload["filtered"])

	logs := payload["logs"].([]any)
	require.Len(t, logs, 1)
	assert.Equal(t, "third", logs[0].(map[string]any)["detail"], "limit keeps the trailing window")
}

func TestAsk_MissingQuestion(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, http.MethodGet, "/api/ask", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload, "error")
}

func TestAsk_EmptyStore(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, http.MethodGet, "/api/ask?question=test", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No security events have been logged yet.", payload["answer"])
}

func TestAsk_FallbackAnswer(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "door_unlocked", "detail": "keypad"}`)

	status, payload := doJSON(t, app, http.MethodGet, "/api/ask?question=door+status", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Door activity: 1 manual unlocks, 0 manual locks, 0 auto-locks", payload["answer"])
}

func TestSummary_FallbackCounts(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "a"}`)
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "b"}`)

	status, payload := doJSON(t, app, http.MethodGet, "/api/summary", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Security Events Summary:\n- Motion Alert: 2 occurrence(s)", payload["summary"])
}

func TestStats(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "a"}`)
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "door_unlocked", "detail": "b"}`)
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "c"}`)

	status, payload := doJSON(t, app, http.MethodGet, "/api/stats", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), payload["total_events"])
	assert.Equal(t, float64(2), payload["critical_events_count"])
	assert.Equal(t, map[string]any{
		"motion_alert":  float64(2),
		"door_unlocked": float64(1),
	}, payload["event_breakdown"])
	assert.Len(t, payload["recent_events"], 3)
}

func TestStats_Empty(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, http.MethodGet, "/api/stats", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No logs available", payload["message"])
}

func TestClearLogs(t *testing.T) {
	app := newTestApp()
	for i := 0; i < 3; i++ {
		doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "motion_alert", "detail": "x"}`)
	}

	status, payload := doJSON(t, app, http.MethodDelete, "/api/logs", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "All logs cleared", payload["message"])

	_, listPayload := doJSON(t, app, http.MethodGet, "/api/logs", "")
	assert.Equal(t, float64(0), listPayload["total"])

	_, health := doJSON(t, app, http.MethodGet, "/api/health", "")
	assert.Equal(t, false, health["vector_store_active"])
	assert.Equal(t, float64(0), health["logs_count"])
}

func TestHealth(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, http.MethodPost, "/api/logs", `{"event": "system_start", "detail": "boot"}`)

	status, payload := doJSON(t, app, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, float64(1), payload["logs_count"])
	assert.Equal(t, false, payload["ai_enabled"])
	assert.Equal(t, false, payload["vector_store_active"])
}
