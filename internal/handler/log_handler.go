package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/vaultify/backend/internal/domain"
	"github.com/vaultify/backend/internal/service"
)

// LogHandler handles the event ingestion and listing endpoints.
type LogHandler struct {
	svc      *service.LogService
	validate *validator.Validate
}

// NewLogHandler creates a new log handler.
func NewLogHandler(svc *service.LogService) *LogHandler {
	return &LogHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// Register sets up the log routes.
func (h *LogHandler) Register(router fiber.Router) {
	router.Post("/logs", h.Add)
	router.Get("/logs", h.List)
	router.Delete("/logs", h.Clear)
	router.Get("/stats", h.Statistics)
}

// Add ingests one security event.
func (h *LogHandler) Add(c fiber.Ctx) error {
	var entry domain.LogEntry
	if err := c.Bind().JSON(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event and detail are required"})
	}

	stored, total := h.svc.Ingest(c.Context(), entry)

	return c.JSON(fiber.Map{
		"message":    "Log added successfully",
		"total_logs": total,
		"event_type": stored.Event,
	})
}

// List returns stored events, optionally filtered by event type and
// limited to the trailing N entries.
func (h *LogHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	eventType := c.Query("event_type", "")

	logs := h.svc.List(eventType, limit)

	return c.JSON(fiber.Map{
		"logs":     logs,
		"total":    h.svc.Total(),
		"filtered": len(logs),
	})
}

// Clear removes all events and the derived embedding index.
func (h *LogHandler) Clear(c fiber.Ctx) error {
	h.svc.Clear()
	return c.JSON(fiber.Map{"message": "All logs cleared"})
}

// Statistics returns the event-type breakdown and recent activity.
func (h *LogHandler) Statistics(c fiber.Ctx) error {
	if h.svc.Total() == 0 {
		return c.JSON(fiber.Map{"message": "No logs available"})
	}
	return c.JSON(h.svc.Stats())
}
