package service

import (
	"context"
	"log/slog"

	"github.com/vaultify/backend/internal/adapter/store"
	"github.com/vaultify/backend/internal/domain"
)

// LogService handles event ingestion and retrieval over the log store,
// keeping the embedding index in sync on the write path.
type LogService struct {
	logs *store.LogStore
	rag  *RAGService
}

// NewLogService creates the ingestion service.
func NewLogService(logs *store.LogStore, rag *RAGService) *LogService {
	return &LogService{logs: logs, rag: rag}
}

// Ingest appends the entry and extends the embedding index. Indexing is
// best-effort: a failed embed leaves the index stale but never fails the
// ingestion. An unrecognized event tag is accepted and flagged at warn level.
// Returns the stored entry and the new total count.
func (s *LogService) Ingest(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, int) {
	if !domain.IsRecognizedEvent(entry.Event) {
		slog.Warn("unrecognized event type", "event", entry.Event)
	}

	stored, position := s.logs.Append(entry)
	slog.Info("log added", "event", stored.Event, "position", position)

	if err := s.rag.IndexEntry(ctx, stored); err != nil {
		slog.Error("vector index update failed", "event", stored.Event, "error", err)
	}

	return stored, s.logs.Len()
}

// List returns stored entries, optionally filtered by event type and
// limited to the trailing N entries.
func (s *LogService) List(eventType string, limit int) []domain.LogEntry {
	return s.logs.List(eventType, limit)
}

// Total returns the number of stored entries.
func (s *LogService) Total() int {
	return s.logs.Len()
}

// Stats aggregates the stored entries.
func (s *LogService) Stats() domain.Stats {
	return s.logs.Stats()
}

// Clear removes all entries and discards the embedding index.
func (s *LogService) Clear() {
	s.logs.Clear()
	s.rag.ResetIndex()
	slog.Info("all logs cleared")
}
