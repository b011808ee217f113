package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vaultify/backend/internal/port"
	"github.com/vaultify/backend/internal/service"
)

// InsightHandler handles the AI question-answering and summary endpoints.
// Both always respond 200 with answer text; AI failures are folded into the
// payload by the service layer.
type InsightHandler struct {
	rag *service.RAGService
}

// NewInsightHandler creates a new insight handler.
func NewInsightHandler(rag *service.RAGService) *InsightHandler {
	return &InsightHandler{rag: rag}
}

// Register sets up the insight routes.
func (h *InsightHandler) Register(router fiber.Router) {
	router.Get("/summary", h.Summary)
	router.Get("/ask", h.Ask)
}

// Ask answers a natural-language question about the logged events.
func (h *InsightHandler) Ask(c fiber.Ctx) error {
	question := c.Query("question", "")
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": port.ErrMissingQuestion.Error()})
	}

	return c.JSON(fiber.Map{
		"answer": h.rag.Answer(c.Context(), question),
	})
}

// Summary produces an overview of all logged events.
func (h *InsightHandler) Summary(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"summary": h.rag.Summarize(c.Context()),
	})
}
