package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/eventscout/internal/format"
	"github.com/iliyamo/eventscout/internal/model"
	"github.com/iliyamo/eventscout/internal/search"
)

func TestEventLines(t *testing.T) {
	events := []model.EventRecord{
		{
			Name:       "Ludacris Live",
			StartLocal: time.Date(2026, time.July, 4, 20, 0, 0, 0, time.UTC),
			Venue:      &model.VenueRef{Name: "The Forum"},
		},
		{
			Name:       "Summer Jam",
			StartLocal: time.Date(2026, time.August, 1, 19, 30, 0, 0, time.UTC),
		},
	}
	got := format.EventLines(events)
	assert.Equal(t, "Ludacris Live, Jul 4, 2026, The Forum\nSummer Jam, Aug 1, 2026, Venue TBA", got)
}

// An event without a parseable start date renders without the date part
// rather than showing a zero timestamp.
func TestEventLinesOmitsMissingDate(t *testing.T) {
	got := format.EventLines([]model.EventRecord{{Name: "Mystery Show", Venue: &model.VenueRef{Name: "The Loft"}}})
	assert.Equal(t, "Mystery Show, The Loft", got)
}

func TestEventLinesEmpty(t *testing.T) {
	assert.Equal(t, "No events found.", format.EventLines(nil))
}

func TestReply(t *testing.T) {
	res := search.Result{
		Explanation: "Found 1 events matching your search. Here are some upcoming shows:",
		Events: []model.EventRecord{{
			Name:       "Ludacris Live",
			StartLocal: time.Date(2026, time.July, 4, 20, 0, 0, 0, time.UTC),
			Venue:      &model.VenueRef{Name: "The Forum"},
		}},
	}
	got := format.Reply(res)
	assert.Equal(t, "Found 1 events matching your search. Here are some upcoming shows:\n\nLudacris Live, Jul 4, 2026, The Forum", got)
}

func TestReplyWithoutEvents(t *testing.T) {
	res := search.Result{Explanation: "I couldn't find any events matching your search criteria right now."}
	assert.Equal(t, res.Explanation, format.Reply(res))
}
