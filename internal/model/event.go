package model

import (
	"strings"
	"time"
)

// EventRecord is one concrete event fetched from the upstream API.  Records
// live only for the duration of a single query; they are never persisted.
// Two records are the same event when their IDs match.
type EventRecord struct {
	ID          string    `json:"id"`          // upstream event identifier, unique per upstream
	Name        string    `json:"name"`        // display name as listed upstream
	URL         string    `json:"url"`         // ticketing page
	StartLocal  time.Time `json:"start_local"` // venue-local start; zero when the listing has no date yet
	Venue       *VenueRef `json:"venue,omitempty"`
	Attractions []string  `json:"attractions,omitempty"` // performer names attached to the listing
	PriceFrom   *Money    `json:"price_from,omitempty"`  // cheapest listed price, when known
}

// VenueRef carries the venue fields the presentation layer needs.
type VenueRef struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Money is an amount in a named currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// IsSoldOut reports whether the listing indicates no remaining inventory.
// The upstream has no dedicated flag for this; venues flag it in the
// event's display name.
func (e EventRecord) IsSoldOut() bool {
	return strings.Contains(strings.ToLower(e.Name), "sold out")
}

// StrategyTag names the cascade stage that produced a result set.
type StrategyTag string

const (
	StrategyAttractionExact  StrategyTag = "attraction_exact"
	StrategyAttractionGlobal StrategyTag = "attraction_global"
	StrategyAttractionRadius StrategyTag = "attraction_radius"
	StrategyAttractionBroad  StrategyTag = "attraction_broad_radius"
	StrategyKeyword          StrategyTag = "keyword"
	StrategyGenericRadius    StrategyTag = "generic_radius"
	StrategyNone             StrategyTag = "none"
)

// CascadeOutcome is the result of one cascade run.  RadiusCenterCity is set
// only when a radius stage matched, so the presentation layer can name the
// city the search was centered on.
type CascadeOutcome struct {
	Events           []EventRecord `json:"events"`
	StrategyUsed     StrategyTag   `json:"strategy_used"`
	RadiusCenterCity string        `json:"radius_center_city,omitempty"`
}
