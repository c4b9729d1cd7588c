package search_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/eventscout/internal/model"
	"github.com/iliyamo/eventscout/internal/search"
	"github.com/iliyamo/eventscout/internal/ticketmaster"
)

var cascadeNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

// fakeAPI scripts upstream responses per events call, in order.
type fakeAPI struct {
	attractions     []ticketmaster.Attraction
	attractionsErr  error
	attractionCalls int

	eventCalls []ticketmaster.EventQuery
	respond    func(call int, q ticketmaster.EventQuery) ([]model.EventRecord, error)
}

func (f *fakeAPI) SearchAttractions(_ context.Context, _ string) ([]ticketmaster.Attraction, error) {
	f.attractionCalls++
	return f.attractions, f.attractionsErr
}

func (f *fakeAPI) SearchEvents(_ context.Context, q ticketmaster.EventQuery) ([]model.EventRecord, error) {
	call := len(f.eventCalls)
	f.eventCalls = append(f.eventCalls, q)
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(call, q)
}

func newCascade(api *fakeAPI) *search.Cascade {
	return &search.Cascade{API: api, Now: func() time.Time { return cascadeNow }}
}

func futureEvent(id string, days int) model.EventRecord {
	return model.EventRecord{ID: id, Name: "Event " + id, StartLocal: cascadeNow.AddDate(0, 0, days)}
}

// A known-metro artist query must hit stage 1 with the attraction id, the
// metro identifier and a 12-month window, and stop there.
func TestCascadeAttractionExactWithMetro(t *testing.T) {
	api := &fakeAPI{
		attractions: []ticketmaster.Attraction{{ID: "K1", Name: "Ludacris"}},
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return []model.EventRecord{futureEvent("e1", 10)}, nil
		},
	}
	out := newCascade(api).Run(context.Background(), model.SearchParams{Artist: "Ludacris", City: "Los Angeles"})

	assert.Equal(t, model.StrategyAttractionExact, out.StrategyUsed)
	require.Len(t, out.Events, 1)
	require.Len(t, api.eventCalls, 1, "cascade must stop after a non-empty stage")

	q := api.eventCalls[0]
	assert.Equal(t, "K1", q.AttractionID)
	assert.Equal(t, 324, q.DMAID)
	assert.Empty(t, q.City, "known metro uses the metro identifier, not the city string")
	assert.Equal(t, cascadeNow, q.Start)
	assert.Equal(t, cascadeNow.AddDate(0, 12, 0), q.End)
}

func TestCascadeUnmappedCityUsesRawCityParam(t *testing.T) {
	api := &fakeAPI{
		attractions: []ticketmaster.Attraction{{ID: "K1", Name: "Ludacris"}},
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return []model.EventRecord{futureEvent("e1", 10)}, nil
		},
	}
	newCascade(api).Run(context.Background(), model.SearchParams{Artist: "Ludacris", City: "Boise"})

	q := api.eventCalls[0]
	assert.Zero(t, q.DMAID)
	assert.Equal(t, "Boise", q.City)
}

// The attraction picker favors an exact case-insensitive name match over
// the first returned result.
func TestCascadePrefersExactAttractionName(t *testing.T) {
	api := &fakeAPI{
		attractions: []ticketmaster.Attraction{
			{ID: "A1", Name: "Drake Bell"},
			{ID: "A2", Name: "Drake"},
		},
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return []model.EventRecord{futureEvent("e1", 3)}, nil
		},
	}
	newCascade(api).Run(context.Background(), model.SearchParams{Artist: "drake"})
	assert.Equal(t, "A2", api.eventCalls[0].AttractionID)
}

// With no attraction found, the artist path falls through to radius and
// keyword stages; the broad radius stage greps locally for the artist.
func TestCascadeBroadRadiusFiltersLocally(t *testing.T) {
	other := futureEvent("other", 1)
	other.Name = "Symphony Gala"
	match := futureEvent("match", 2)
	match.Name = "Club Night"
	match.Attractions = []string{"DJ Ludacris Tribute"}

	api := &fakeAPI{
		attractions: nil, // stages 1 and 2 have nothing to work with
		respond: func(call int, q ticketmaster.EventQuery) ([]model.EventRecord, error) {
			switch call {
			case 0: // attraction-radius (keyword within latlong)
				return nil, nil
			case 1: // broad radius, no keyword
				return []model.EventRecord{other, match}, nil
			default:
				return nil, fmt.Errorf("unexpected call %d", call)
			}
		},
	}
	out := newCascade(api).Run(context.Background(), model.SearchParams{Artist: "Ludacris", City: "Chicago"})

	assert.Equal(t, model.StrategyAttractionBroad, out.StrategyUsed)
	assert.Equal(t, "Chicago", out.RadiusCenterCity)
	require.Len(t, out.Events, 1)
	assert.Equal(t, "match", out.Events[0].ID)

	require.Len(t, api.eventCalls, 2)
	assert.NotEmpty(t, api.eventCalls[0].LatLong)
	assert.NotEmpty(t, api.eventCalls[0].Keyword)
	assert.Empty(t, api.eventCalls[1].Keyword, "broad stage casts wide with no keyword")
}

// No artist: only the keyword and generic-radius stages run.  An
// all-sold-out keyword result counts as empty and the cascade advances.
func TestCascadeSoldOutStageAdvances(t *testing.T) {
	soldOut := futureEvent("so", 1)
	soldOut.Name = "Residency SOLD OUT"

	api := &fakeAPI{
		respond: func(call int, q ticketmaster.EventQuery) ([]model.EventRecord, error) {
			switch call {
			case 0: // keyword stage via DMA
				return []model.EventRecord{soldOut}, nil
			case 1: // generic radius
				return []model.EventRecord{futureEvent("ok", 4)}, nil
			default:
				return nil, fmt.Errorf("unexpected call %d", call)
			}
		},
	}
	out := newCascade(api).Run(context.Background(), model.SearchParams{City: "Las Vegas", Genre: "Rock"})

	assert.Equal(t, model.StrategyGenericRadius, out.StrategyUsed)
	assert.Equal(t, "Las Vegas", out.RadiusCenterCity)
	assert.Zero(t, api.attractionCalls, "no artist means no attraction lookup")

	require.Len(t, api.eventCalls, 2)
	assert.Equal(t, 839, api.eventCalls[0].DMAID)
	assert.Equal(t, "rock", api.eventCalls[0].Classification)
	assert.True(t, api.eventCalls[0].ExcludeTBA)
	assert.NotEmpty(t, api.eventCalls[1].LatLong)
}

func TestCascadeExplicitDateRangeWins(t *testing.T) {
	start := cascadeNow.AddDate(0, 0, 4)
	end := cascadeNow.AddDate(0, 0, 7)
	api := &fakeAPI{
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return []model.EventRecord{futureEvent("e", 5)}, nil
		},
	}
	newCascade(api).Run(context.Background(), model.SearchParams{
		Genre:     "Rock",
		DateRange: &model.DateRange{Start: start, End: end},
	})
	assert.Equal(t, start, api.eventCalls[0].Start)
	assert.Equal(t, end, api.eventCalls[0].End)
}

func TestCascadeDefaultWindowWithoutArtist(t *testing.T) {
	api := &fakeAPI{
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return []model.EventRecord{futureEvent("e", 5)}, nil
		},
	}
	newCascade(api).Run(context.Background(), model.SearchParams{Genre: "Jazz"})
	assert.Equal(t, cascadeNow.AddDate(0, 1, 0), api.eventCalls[0].End, "one month lookahead without an artist")
}

func TestCascadeCapsAtFiveEvents(t *testing.T) {
	api := &fakeAPI{
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			var evs []model.EventRecord
			for i := 0; i < 8; i++ {
				evs = append(evs, futureEvent(fmt.Sprintf("e%d", i), i+1))
			}
			return evs, nil
		},
	}
	out := newCascade(api).Run(context.Background(), model.SearchParams{Genre: "Pop"})
	assert.Len(t, out.Events, 5)
	// Oldest first survives the cap.
	assert.Equal(t, "e0", out.Events[0].ID)
}

// Upstream failures at every stage converge to an empty outcome, not an
// error or panic.
func TestCascadeAllStagesFail(t *testing.T) {
	api := &fakeAPI{
		attractionsErr: errors.New("http 500"),
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return nil, errors.New("http 500")
		},
	}
	out := newCascade(api).Run(context.Background(), model.SearchParams{Artist: "Ludacris", City: "Los Angeles"})
	assert.Equal(t, model.StrategyNone, out.StrategyUsed)
	assert.NotNil(t, out.Events)
	assert.Empty(t, out.Events)
}

// Duplicate ids surfacing from one stage collapse to the first copy.
func TestCascadeDeduplicatesResults(t *testing.T) {
	a := futureEvent("dup", 1)
	b := futureEvent("dup", 2)
	b.Name = "Other Copy"
	api := &fakeAPI{
		respond: func(_ int, _ ticketmaster.EventQuery) ([]model.EventRecord, error) {
			return []model.EventRecord{a, b}, nil
		},
	}
	out := newCascade(api).Run(context.Background(), model.SearchParams{Genre: "Pop"})
	require.Len(t, out.Events, 1)
	assert.Equal(t, "Event dup", out.Events[0].Name)
}
