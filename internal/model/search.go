package model

import "time"

// SearchParams is the structured form of a free-text event query, produced
// by an interpreter and consumed read-only by the search cascade.  Empty
// string fields mean "unconstrained", not "match the empty string".
//
// Fields:
//  City      – city name as extracted from the query or location hint.
//  Artist    – performer/band name, if one was recognized.
//  Genre     – canonical genre label (e.g. "Rock", "Hip-Hop/Rap").
//  DateRange – explicit date window when the query named one ("this
//              weekend", "next month", ...); nil otherwise, in which case
//              the cascade applies its own default window.
//  Keywords  – remaining free search terms.
type SearchParams struct {
	City      string     `json:"city,omitempty"`
	Artist    string     `json:"artist,omitempty"`
	Genre     string     `json:"genre,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
	Keywords  []string   `json:"keywords,omitempty"`
}

// DateRange is a half-open window [Start, End) used to bound event searches.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
