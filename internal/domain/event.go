package domain

import (
	"fmt"
	"sort"
	"strings"
)

// LogEntry represents a single security event reported by the device.
// Entries are immutable once appended to the store.
type LogEntry struct {
	Event     string         `json:"event"     validate:"required"`
	Detail    string         `json:"detail"    validate:"required"`
	Timestamp string         `json:"timestamp,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Event types emitted by the device firmware.
const (
	EventMotionAlert      = "motion_alert"
	EventAlarmDeactivated = "alarm_deactivated"
	EventDoorUnlocked     = "door_unlocked"
	EventDoorLocked       = "door_locked"
	EventRFIDInvalid      = "rfid_invalid"
	EventDoorAutolock     = "door_autolock"
	EventSystemStart      = "system_start"
)

// recognizedEvents is the set of event tags the firmware is known to send.
// Unknown tags are still accepted at ingestion, just flagged.
var recognizedEvents = map[string]struct{}{
	EventMotionAlert:      {},
	EventAlarmDeactivated: {},
	EventDoorUnlocked:     {},
	EventDoorLocked:       {},
	EventRFIDInvalid:      {},
	EventDoorAutolock:     {},
	EventSystemStart:      {},
}

// criticalEvents are the security-significant tags counted separately in stats.
var criticalEvents = map[string]struct{}{
	EventMotionAlert: {},
	EventRFIDInvalid: {},
}

// IsRecognizedEvent reports whether the tag belongs to the known firmware set.
func IsRecognizedEvent(event string) bool {
	_, ok := recognizedEvents[event]
	return ok
}

// IsCriticalEvent reports whether the tag is in the critical subset.
func IsCriticalEvent(event string) bool {
	_, ok := criticalEvents[event]
	return ok
}

// IndexText renders the entry as the line that gets chunked and embedded.
func (e LogEntry) IndexText() string {
	line := fmt.Sprintf("[%s] %s: %s", e.Timestamp, e.Event, e.Detail)
	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, e.Metadata[k])
		}
		line += " | Metadata: " + strings.Join(parts, ", ")
	}
	return line
}

// Stats is the aggregate view served by the stats endpoint.
type Stats struct {
	TotalEvents         int            `json:"total_events"`
	EventBreakdown      map[string]int `json:"event_breakdown"`
	CriticalEventsCount int            `json:"critical_events_count"`
	RecentEvents        []LogEntry     `json:"recent_events"`
	FirstEvent          string         `json:"first_event"`
	LastEvent           string         `json:"last_event"`
}

// ScoredChunk is returned by similarity search over the embedding index.
type ScoredChunk struct {
	Content    string  `json:"content"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}
