// Package search implements the event-search cascade: an ordered list of
// strategies against the upstream API, stopping at the first one that
// yields a non-empty, filtered result set.  Precise attempts (attraction
// id, exact metro) run before broad ones (radius, nationwide keyword).
package search

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/eventscout/internal/geo"
	"github.com/iliyamo/eventscout/internal/metrics"
	"github.com/iliyamo/eventscout/internal/model"
	"github.com/iliyamo/eventscout/internal/ticketmaster"
)

const (
	// maxResults caps the final event list regardless of which stage matched.
	maxResults = 5
	// radiusMiles is the distance used by every radius fallback.
	radiusMiles = 100
	// pageSize / widePageSize size the precise and cast-wide requests.
	pageSize     = 20
	widePageSize = 50

	// Lookahead windows: artist tours are sparse in time, generic
	// browsing is not.  One rule everywhere: twelve months when an
	// artist is in play, one month otherwise.
	artistLookaheadMonths  = 12
	defaultLookaheadMonths = 1
)

// EventsAPI is the slice of the upstream client the cascade needs.
type EventsAPI interface {
	SearchEvents(ctx context.Context, q ticketmaster.EventQuery) ([]model.EventRecord, error)
	SearchAttractions(ctx context.Context, keyword string) ([]ticketmaster.Attraction, error)
}

// Cascade executes the strategy sequence.  Stages run strictly one after
// another; the shared rate limiter would serialize parallel attempts
// anyway, and stopping early saves upstream calls.
type Cascade struct {
	API EventsAPI
	Now func() time.Time // injectable for tests; nil means time.Now
}

type strategy struct {
	tag model.StrategyTag
	// run returns the raw stage result plus the radius center city when
	// the stage searched around one.
	run func(ctx context.Context) ([]model.EventRecord, string, error)
}

// Run executes the strategies in order and returns the first non-empty
// post-filter result, capped at maxResults.  A failed stage (transport
// error, non-2xx, bad JSON) counts as empty and the cascade advances;
// Run itself never fails.
func (c *Cascade) Run(ctx context.Context, p model.SearchParams) model.CascadeOutcome {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	for _, s := range c.strategies(p, now) {
		events, center, err := s.run(ctx)
		if err != nil {
			log.Printf("cascade: stage %s: %v", s.tag, err)
			continue
		}
		events = Filter(events, now)
		if len(events) == 0 {
			continue
		}
		if len(events) > maxResults {
			events = events[:maxResults]
		}
		metrics.CascadeStage.WithLabelValues(string(s.tag)).Inc()
		return model.CascadeOutcome{Events: events, StrategyUsed: s.tag, RadiusCenterCity: center}
	}
	metrics.CascadeStage.WithLabelValues(string(model.StrategyNone)).Inc()
	return model.CascadeOutcome{Events: []model.EventRecord{}, StrategyUsed: model.StrategyNone}
}

func (c *Cascade) strategies(p model.SearchParams, now time.Time) []strategy {
	metro, hasMetro := geo.Resolve(p.City)
	artistWindow := model.DateRange{Start: now, End: now.AddDate(0, artistLookaheadMonths, 0)}

	// The attraction lookup costs one rate-limited call and feeds four
	// stages, so it is resolved once and memoized across them.
	var (
		attr         *ticketmaster.Attraction
		attrResolved bool
	)
	resolveAttraction := func(ctx context.Context) (*ticketmaster.Attraction, error) {
		if attrResolved {
			return attr, nil
		}
		list, err := c.API.SearchAttractions(ctx, p.Artist)
		if err != nil {
			return nil, err
		}
		attrResolved = true
		if len(list) == 0 {
			return nil, nil
		}
		// First result wins unless a later one matches the name exactly.
		pick := list[0]
		for _, a := range list {
			if strings.EqualFold(a.Name, p.Artist) {
				pick = a
				break
			}
		}
		attr = &pick
		return attr, nil
	}
	// artistKeyword prefers the upstream's canonical spelling once the
	// attraction is known.
	artistKeyword := func() string {
		if attr != nil {
			return attr.Name
		}
		return p.Artist
	}

	var out []strategy
	if p.Artist != "" {
		out = append(out,
			strategy{model.StrategyAttractionExact, func(ctx context.Context) ([]model.EventRecord, string, error) {
				a, err := resolveAttraction(ctx)
				if err != nil || a == nil {
					return nil, "", err
				}
				q := ticketmaster.EventQuery{
					AttractionID: a.ID,
					Size:         pageSize,
					Start:        artistWindow.Start,
					End:          artistWindow.End,
					SortByDate:   true,
				}
				if hasMetro && metro.DMAID > 0 {
					q.DMAID = metro.DMAID
				} else if p.City != "" {
					q.City = p.City
				}
				events, err := c.API.SearchEvents(ctx, q)
				return events, "", err
			}},
			strategy{model.StrategyAttractionGlobal, func(ctx context.Context) ([]model.EventRecord, string, error) {
				a, err := resolveAttraction(ctx)
				if err != nil || a == nil {
					return nil, "", err
				}
				events, err := c.API.SearchEvents(ctx, ticketmaster.EventQuery{
					AttractionID: a.ID,
					Size:         widePageSize,
					Start:        artistWindow.Start,
					End:          artistWindow.End,
					SortByDate:   true,
				})
				return events, "", err
			}},
			strategy{model.StrategyAttractionRadius, func(ctx context.Context) ([]model.EventRecord, string, error) {
				if !hasMetro {
					return nil, "", nil
				}
				events, err := c.API.SearchEvents(ctx, ticketmaster.EventQuery{
					Keyword:     artistKeyword(),
					LatLong:     metro.LatLong(),
					RadiusMiles: radiusMiles,
					Size:        pageSize,
					Start:       artistWindow.Start,
					End:         artistWindow.End,
					SortByDate:  true,
				})
				return events, metro.Name, err
			}},
			strategy{model.StrategyAttractionBroad, func(ctx context.Context) ([]model.EventRecord, string, error) {
				if !hasMetro {
					return nil, "", nil
				}
				// Cast wide with no keyword, then grep locally; upstream
				// indexing misses some listings a substring match finds.
				events, err := c.API.SearchEvents(ctx, ticketmaster.EventQuery{
					LatLong:     metro.LatLong(),
					RadiusMiles: radiusMiles,
					Size:        widePageSize,
					Start:       artistWindow.Start,
					End:         artistWindow.End,
					SortByDate:  true,
				})
				if err != nil {
					return nil, "", err
				}
				return matchingArtist(events, p.Artist), metro.Name, nil
			}},
		)
	}

	keywordQuery := func() ticketmaster.EventQuery {
		return ticketmaster.EventQuery{
			Keyword:        p.Artist,
			Classification: classificationFor(p.Genre),
			Size:           widePageSize,
			Start:          c.keywordWindow(p, now).Start,
			End:            c.keywordWindow(p, now).End,
			SortByDate:     true,
			ExcludeTBA:     true,
		}
	}
	out = append(out,
		strategy{model.StrategyKeyword, func(ctx context.Context) ([]model.EventRecord, string, error) {
			q := keywordQuery()
			if hasMetro && metro.DMAID > 0 {
				q.DMAID = metro.DMAID
			} else if p.City != "" {
				q.City = p.City
			}
			events, err := c.API.SearchEvents(ctx, q)
			return events, "", err
		}},
		strategy{model.StrategyGenericRadius, func(ctx context.Context) ([]model.EventRecord, string, error) {
			if !hasMetro {
				return nil, "", nil
			}
			q := keywordQuery()
			q.LatLong = metro.LatLong()
			q.RadiusMiles = radiusMiles
			events, err := c.API.SearchEvents(ctx, q)
			return events, metro.Name, err
		}},
	)
	return out
}

// keywordWindow picks the date window for the keyword stages: an explicit
// range from the query wins, otherwise the artist-present rule applies.
func (c *Cascade) keywordWindow(p model.SearchParams, now time.Time) model.DateRange {
	if p.DateRange != nil {
		return *p.DateRange
	}
	months := defaultLookaheadMonths
	if p.Artist != "" {
		months = artistLookaheadMonths
	}
	return model.DateRange{Start: now, End: now.AddDate(0, months, 0)}
}

// matchingArtist keeps events whose name or listed attractions contain the
// artist's name, case-insensitively.
func matchingArtist(events []model.EventRecord, artist string) []model.EventRecord {
	needle := strings.ToLower(artist)
	var out []model.EventRecord
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Name), needle) {
			out = append(out, ev)
			continue
		}
		for _, a := range ev.Attractions {
			if strings.Contains(strings.ToLower(a), needle) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// classificationFor maps a canonical genre to the upstream classification
// name, defaulting to the whole music segment.
func classificationFor(genre string) string {
	switch strings.ToLower(genre) {
	case "rock":
		return "rock"
	case "pop":
		return "pop"
	case "hip-hop/rap", "hip hop", "rap":
		return "hip-hop"
	case "country":
		return "country"
	case "jazz":
		return "jazz"
	case "indie":
		return "alternative"
	case "folk":
		return "folk"
	case "electronic", "dance":
		return "electronic"
	case "blues":
		return "blues"
	case "r&b", "rnb":
		return "r-n-b"
	case "comedy":
		return "comedy"
	case "theater":
		return "theater"
	case "sports":
		return "sports"
	default:
		return "music"
	}
}
