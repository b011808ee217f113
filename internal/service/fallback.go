package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vaultify/backend/internal/domain"
)

// fallbackCategory matches question keywords to a templated answer built
// from event counts. Categories are evaluated in order; first match wins.
type fallbackCategory struct {
	keywords []string
	respond  func(counts map[string]int) string
}

var fallbackCategories = []fallbackCategory{
	{
		keywords: []string{"door"},
		respond: func(c map[string]int) string {
			return fmt.Sprintf("Door activity: %d manual unlocks, %d manual locks, %d auto-locks",
				c[domain.EventDoorUnlocked], c[domain.EventDoorLocked], c[domain.EventDoorAutolock])
		},
	},
	{
		keywords: []string{"motion", "theft"},
		respond: func(c map[string]int) string {
			return fmt.Sprintf("Motion detection: %d alerts triggered, %d alarms deactivated",
				c[domain.EventMotionAlert], c[domain.EventAlarmDeactivated])
		},
	},
	{
		keywords: []string{"rfid", "card"},
		respond: func(c map[string]int) string {
			return fmt.Sprintf("RFID activity: %d unauthorized card attempts detected",
				c[domain.EventRFIDInvalid])
		},
	},
	{
		keywords: []string{"autolock"},
		respond: func(c map[string]int) string {
			return fmt.Sprintf("The door has auto-locked %d times.", c[domain.EventDoorAutolock])
		},
	},
	{
		keywords: []string{"summary", "overview"},
		respond:  eventCountListing,
	},
}

// fallbackAnswer is the deterministic answer path used when no generative
// backend is configured.
func fallbackAnswer(question string, entries []domain.LogEntry) string {
	counts := eventCounts(entries)
	q := strings.ToLower(question)

	for _, cat := range fallbackCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(q, kw) {
				return cat.respond(counts)
			}
		}
	}

	recent := entries
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	lines := make([]string, len(recent))
	for i, e := range recent {
		lines[i] = fmt.Sprintf("- %s: %s", e.Event, e.Detail)
	}

	return fmt.Sprintf("Total events: %d\n\nRecent activity:\n%s\n\n%s",
		len(entries), strings.Join(lines, "\n"), eventCountListing(counts))
}

// fallbackSummary is the deterministic summary path: a per-event-type
// occurrence listing.
func fallbackSummary(entries []domain.LogEntry) string {
	return eventCountListing(eventCounts(entries))
}

func eventCounts(entries []domain.LogEntry) map[string]int {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Event]++
	}
	return counts
}

// eventCountListing renders counts sorted by event name for stable output.
func eventCountListing(counts map[string]int) string {
	events := make([]string, 0, len(counts))
	for event := range counts {
		events = append(events, event)
	}
	sort.Strings(events)

	var b strings.Builder
	b.WriteString("Security Events Summary:\n")
	for _, event := range events {
		fmt.Fprintf(&b, "- %s: %d occurrence(s)\n", titleCaseEvent(event), counts[event])
	}
	return strings.TrimRight(b.String(), "\n")
}

// titleCaseEvent turns "motion_alert" into "Motion Alert".
func titleCaseEvent(event string) string {
	words := strings.Split(event, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
