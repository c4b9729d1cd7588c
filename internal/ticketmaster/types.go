package ticketmaster

// Wire types for the Discovery v2 API.  A response without _embedded means
// zero results, not an error, so the embedded block is a pointer.

// Attraction is an upstream performer/team identifier, distinct from a
// free-text keyword.
type Attraction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type attractionsResponse struct {
	Embedded *struct {
		Attractions []Attraction `json:"attractions"`
	} `json:"_embedded"`
}

type eventsResponse struct {
	Embedded *struct {
		Events []apiEvent `json:"events"`
	} `json:"_embedded"`
}

type apiEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"` // "2006-01-02"
			LocalTime string `json:"localTime"` // "15:04:05", often absent
		} `json:"start"`
	} `json:"dates"`
	PriceRanges []struct {
		Min      float64 `json:"min"`
		Currency string  `json:"currency"`
	} `json:"priceRanges"`
	Embedded *struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				Name string `json:"name"`
			} `json:"state"`
		} `json:"venues"`
		Attractions []Attraction `json:"attractions"`
	} `json:"_embedded"`
}
