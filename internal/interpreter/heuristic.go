package interpreter

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/iliyamo/eventscout/internal/model"
)

// Heuristic is the deterministic interpreter.  It runs fixed phrase
// patterns over the query, strips stop words from the captured runs and
// keeps whatever tokens survive.  City and artist extraction run
// independently over the same input; for each, the first pattern whose
// match still has a content word after filtering wins.
type Heuristic struct {
	Now func() time.Time // injectable for tests; nil means time.Now
}

func NewHeuristic() *Heuristic { return &Heuristic{} }

var cityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:in|at|near|around)\s+([a-zA-Z. ]+)`),
	regexp.MustCompile(`(?i)([a-zA-Z. ]+?)\s+(?:concerts?|shows?|events?)\b`),
	regexp.MustCompile(`(?i)\b(?:concerts?|shows?|events?)\s+(?:in|at|near)\s+([a-zA-Z. ]+)`),
}

var artistPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:concerts?|shows?|tickets?)\s+(?:by|for|with)\s+([a-zA-Z. ]+)`),
	regexp.MustCompile(`(?i)\b(?:i want to see|i want to watch)\s+([a-zA-Z. ]+)`),
	regexp.MustCompile(`(?i)\b(?:find|search for|look for)\s+([a-zA-Z. ]+?)\s+(?:concerts?|shows?|performances?)\b`),
	regexp.MustCompile(`(?i)([a-zA-Z. ]+?)\s+(?:concerts?|shows?|performances?|tours?)\b`),
}

// Words that can never be part of a city or artist name.  Genre and date
// keywords are included so "rock shows this weekend" does not yield
// city="rock".
var commonStopWords = []string{
	"the", "and", "or", "for", "with", "by", "to", "a", "an", "in", "at", "on",
	"concert", "concerts", "show", "shows", "event", "events", "ticket", "tickets",
	"performance", "performances", "tour", "tours",
	"this", "next", "upcoming", "tonight", "weekend", "week", "month",
	"rock", "pop", "hip", "hop", "rap", "country", "jazz", "indie", "folk",
	"electronic", "dance", "comedy", "theater", "sports", "music",
}

// Artist candidates additionally shed place names and request verbs; the
// artist patterns can capture those when the query interleaves them.
var artistStopWords = append([]string{
	"los", "angeles", "costa", "mesa", "new", "york", "chicago", "las", "vegas",
	"san", "francisco", "miami", "austin",
	"find", "search", "look", "want", "see", "watch", "me", "near", "around",
}, commonStopWords...)

// Keyword spotting order is fixed: the first keyword present in the
// lowercased query decides the genre, and at most one genre is returned.
var genreKeywords = []struct{ keyword, genre string }{
	{"rock", "Rock"},
	{"pop", "Pop"},
	{"hip hop", "Hip-Hop/Rap"},
	{"hip-hop", "Hip-Hop/Rap"},
	{"rap", "Hip-Hop/Rap"},
	{"country", "Country"},
	{"jazz", "Jazz"},
	{"indie", "Indie"},
	{"folk", "Folk"},
	{"electronic", "Electronic"},
	{"dance", "Dance"},
	{"comedy", "Comedy"},
	{"theater", "Theater"},
	{"sports", "Sports"},
}

func (h *Heuristic) Interpret(_ context.Context, query, locationHint string) model.SearchParams {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	params := model.SearchParams{
		Artist:    extract(query, artistPatterns, artistStopWords, 3),
		Genre:     matchGenre(query),
		DateRange: PhraseRange(query, now),
	}
	if locationHint != "" {
		params.City = locationHint
	} else {
		params.City = extract(query, cityPatterns, commonStopWords, 1)
	}
	return params
}

// extract tries the patterns in order and returns the first captured run
// that still contains a content word of at least minLen characters after
// stop-word filtering, preserving the original casing.
func extract(query string, patterns []*regexp.Regexp, stopWords []string, minLen int) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		words := strings.Fields(strings.TrimSpace(m[1]))
		kept := words[:0]
		for _, w := range words {
			if len(w) < minLen || isStopWord(strings.ToLower(strings.Trim(w, ".")), stopWords) {
				continue
			}
			kept = append(kept, w)
		}
		if len(kept) > 0 {
			return strings.Join(kept, " ")
		}
	}
	return ""
}

func isStopWord(w string, stopWords []string) bool {
	for _, s := range stopWords {
		if w == s {
			return true
		}
	}
	return false
}

func matchGenre(query string) string {
	q := strings.ToLower(query)
	for _, g := range genreKeywords {
		if strings.Contains(q, g.keyword) {
			return g.genre
		}
	}
	return ""
}
