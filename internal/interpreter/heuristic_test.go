package interpreter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/eventscout/internal/interpreter"
)

func heuristicAt(now time.Time) *interpreter.Heuristic {
	h := interpreter.NewHeuristic()
	h.Now = func() time.Time { return now }
	return h
}

// Wednesday, so weekend phrases roll forward.
var wednesday = time.Date(2026, time.January, 7, 12, 0, 0, 0, time.UTC)

func TestInterpretArtistAndCity(t *testing.T) {
	p := heuristicAt(wednesday).Interpret(context.Background(), "Ludacris show in Los Angeles", "")
	assert.Equal(t, "Ludacris", p.Artist)
	assert.Equal(t, "Los Angeles", p.City)
	assert.Empty(t, p.Genre)
	assert.Nil(t, p.DateRange)
}

func TestInterpretGenreOnly(t *testing.T) {
	p := heuristicAt(wednesday).Interpret(context.Background(), "rock shows this weekend", "")
	assert.Equal(t, "Rock", p.Genre)
	assert.Empty(t, p.City, "a genre keyword must not be mistaken for a city")
	assert.Empty(t, p.Artist, "a genre keyword must not be mistaken for an artist")
	require.NotNil(t, p.DateRange)
	assert.Equal(t, time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC), p.DateRange.Start)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), p.DateRange.End)
}

func TestInterpretHintWins(t *testing.T) {
	p := heuristicAt(wednesday).Interpret(context.Background(), "jazz concerts in Chicago", "Austin")
	assert.Equal(t, "Austin", p.City)
	assert.Equal(t, "Jazz", p.Genre)
}

func TestInterpretArtistPhrases(t *testing.T) {
	cases := map[string]string{
		"concerts by The Weeknd":     "Weeknd", // articles are stop words
		"tickets for Billie Eilish":  "Billie Eilish",
		"i want to see Drake":        "Drake",
		"Taylor Swift concert":       "Taylor Swift",
		"find Ludacris shows":        "Ludacris",
		"what's happening downtown?": "",
	}
	for query, want := range cases {
		p := heuristicAt(wednesday).Interpret(context.Background(), query, "")
		assert.Equal(t, want, p.Artist, "query %q", query)
	}
}

func TestInterpretGenreFirstKeywordWins(t *testing.T) {
	p := heuristicAt(wednesday).Interpret(context.Background(), "rock or jazz tonight", "")
	assert.Equal(t, "Rock", p.Genre)

	p = heuristicAt(wednesday).Interpret(context.Background(), "best rap battles", "")
	assert.Equal(t, "Hip-Hop/Rap", p.Genre)
}

func TestInterpretNeverFails(t *testing.T) {
	for _, query := range []string{"", "???", "the the the", "show"} {
		p := heuristicAt(wednesday).Interpret(context.Background(), query, "")
		assert.Empty(t, p.Artist, "query %q", query)
		assert.Empty(t, p.City, "query %q", query)
	}
}

func TestPhraseRangeWeekend(t *testing.T) {
	// Midweek rolls to the coming Friday.
	r := interpreter.PhraseRange("anything this weekend", wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), r.End)

	// Saturday stays on the current weekend: tonight's shows still count.
	saturday := time.Date(2026, time.January, 10, 20, 0, 0, 0, time.UTC)
	r = interpreter.PhraseRange("parties this weekend", saturday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), r.End)
}

func TestPhraseRangeWeeks(t *testing.T) {
	r := interpreter.PhraseRange("gigs next week", wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), r.End)

	r = interpreter.PhraseRange("gigs this week", wednesday)
	require.NotNil(t, r)
	assert.Equal(t, wednesday, r.Start)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), r.End)
}

func TestPhraseRangeNextMonth(t *testing.T) {
	r := interpreter.PhraseRange("festivals next month", wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), r.End)
}

func TestPhraseRangeNoPhrase(t *testing.T) {
	assert.Nil(t, interpreter.PhraseRange("Drake concerts", wednesday))
}
