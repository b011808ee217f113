package store

import (
	"sync"
	"time"

	"github.com/vaultify/backend/internal/domain"
)

// LogStore is the append-only in-memory record of security events.
// It is the source of truth; the vector index is a derived projection.
type LogStore struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
}

// NewLogStore creates an empty log store.
func NewLogStore() *LogStore {
	return &LogStore{}
}

// Append stores the entry and returns the stored copy and its position.
// A missing timestamp is filled with the server time at the moment of append.
func (s *LogStore) Append(entry domain.LogEntry) (domain.LogEntry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339)
	}
	s.entries = append(s.entries, entry)
	return entry, len(s.entries) - 1
}

// List returns entries filtered by event type, preserving insertion order.
// A positive limit keeps only the last N entries after filtering.
func (s *LogStore) List(eventType string, limit int) []domain.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]domain.LogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if eventType == "" || e.Event == eventType {
			filtered = append(filtered, e)
		}
	}
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}

// Len returns the number of stored entries.
func (s *LogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries. The caller is responsible for discarding
// any index derived from them.
func (s *LogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Stats aggregates the stored entries for the stats endpoint.
// Returns a zero-value Stats with TotalEvents == 0 when the store is empty.
func (s *LogStore) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.Stats{
		TotalEvents:    len(s.entries),
		EventBreakdown: make(map[string]int),
	}
	if len(s.entries) == 0 {
		return stats
	}

	for _, e := range s.entries {
		stats.EventBreakdown[e.Event]++
		if domain.IsCriticalEvent(e.Event) {
			stats.CriticalEventsCount++
		}
	}

	recent := 5
	if len(s.entries) < recent {
		recent = len(s.entries)
	}
	stats.RecentEvents = append([]domain.LogEntry(nil), s.entries[len(s.entries)-recent:]...)
	stats.FirstEvent = s.entries[0].Timestamp
	stats.LastEvent = s.entries[len(s.entries)-1].Timestamp
	return stats
}
