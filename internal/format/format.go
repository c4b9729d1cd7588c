// Package format renders resolver results as plain chat text.
package format

import (
	"strings"

	"github.com/iliyamo/eventscout/internal/model"
	"github.com/iliyamo/eventscout/internal/search"
)

// EventLines renders one "Name, Date, Venue" line per event.
func EventLines(events []model.EventRecord) string {
	if len(events) == 0 {
		return "No events found."
	}
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		venue := "Venue TBA"
		if ev.Venue != nil && ev.Venue.Name != "" {
			venue = ev.Venue.Name
		}
		parts := []string{ev.Name}
		if !ev.StartLocal.IsZero() {
			parts = append(parts, ev.StartLocal.Format("Jan 2, 2006"))
		}
		parts = append(parts, venue)
		lines = append(lines, strings.Join(parts, ", "))
	}
	return strings.Join(lines, "\n")
}

// Reply builds the full chat reply: the explanation, then the event lines
// when there are any.
func Reply(res search.Result) string {
	if len(res.Events) == 0 {
		return res.Explanation
	}
	return res.Explanation + "\n\n" + EventLines(res.Events)
}
