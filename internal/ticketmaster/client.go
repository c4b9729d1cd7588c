// Package ticketmaster is a read-only client for the Ticketmaster
// Discovery v2 API.  Every request passes through the shared outbound
// rate limiter before it leaves the process.
package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/eventscout/internal/limiter"
	"github.com/iliyamo/eventscout/internal/metrics"
	"github.com/iliyamo/eventscout/internal/model"
)

const defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// apiTimeLayout is the ISO-8601 form the API accepts: seconds precision,
// trailing Z, no fractional part.
const apiTimeLayout = "2006-01-02T15:04:05Z"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *limiter.Limiter
}

func New(baseURL, apiKey string, lim *limiter.Limiter, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		limiter: lim,
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// EventQuery describes one events search.  Exactly one of City, DMAID or
// Center should be set; all other fields are optional.
type EventQuery struct {
	Keyword        string
	AttractionID   string
	City           string
	DMAID          int
	LatLong        string // "lat,lon", enables radius search
	RadiusMiles    int
	Classification string
	Start          time.Time
	End            time.Time
	Size           int
	SortByDate     bool // sort=date,asc
	ExcludeTBA     bool // drop to-be-announced/to-be-determined placeholders
}

func (q EventQuery) values(apiKey string) url.Values {
	v := url.Values{}
	v.Set("apikey", apiKey)
	size := q.Size
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	switch {
	case q.DMAID > 0:
		v.Set("dmaId", strconv.Itoa(q.DMAID))
	case q.LatLong != "":
		v.Set("latlong", q.LatLong)
		radius := q.RadiusMiles
		if radius <= 0 {
			radius = 100
		}
		v.Set("radius", strconv.Itoa(radius))
		v.Set("unit", "miles")
	case q.City != "":
		v.Set("city", q.City)
	}
	if q.AttractionID != "" {
		v.Set("attractionId", q.AttractionID)
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Classification != "" {
		v.Set("classificationName", q.Classification)
	}
	if !q.Start.IsZero() {
		v.Set("startDateTime", q.Start.UTC().Format(apiTimeLayout))
	}
	if !q.End.IsZero() {
		v.Set("endDateTime", q.End.UTC().Format(apiTimeLayout))
	}
	if q.SortByDate {
		v.Set("sort", "date,asc")
	}
	if q.ExcludeTBA {
		v.Set("includeTBA", "no")
		v.Set("includeTBD", "no")
	}
	return v
}

// SearchEvents runs one events query and converts the listings into domain
// records.  An absent _embedded block yields an empty slice.
func (c *Client) SearchEvents(ctx context.Context, q EventQuery) ([]model.EventRecord, error) {
	var resp eventsResponse
	if err := c.get(ctx, "/events.json", q.values(c.apiKey), "events", &resp); err != nil {
		return nil, err
	}
	if resp.Embedded == nil {
		return nil, nil
	}
	out := make([]model.EventRecord, 0, len(resp.Embedded.Events))
	for _, ev := range resp.Embedded.Events {
		out = append(out, toRecord(ev))
	}
	return out, nil
}

// SearchAttractions resolves a performer keyword to upstream attraction
// candidates, restricted to the music segment.
func (c *Client) SearchAttractions(ctx context.Context, keyword string) ([]Attraction, error) {
	v := url.Values{}
	v.Set("apikey", c.apiKey)
	v.Set("keyword", keyword)
	v.Set("classificationName", "music")
	var resp attractionsResponse
	if err := c.get(ctx, "/attractions.json", v, "attractions", &resp); err != nil {
		return nil, err
	}
	if resp.Embedded == nil {
		return nil, nil
	}
	return resp.Embedded.Attractions, nil
}

func (c *Client) get(ctx context.Context, path string, v url.Values, kind string, out any) error {
	if err := c.limiter.Acquire(ctx); err != nil {
		return err
	}
	u := c.baseURL + path + "?" + v.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(kind, "error").Inc()
		return err
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(kind, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("ticketmaster: http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ticketmaster: decode: %w", err)
	}
	return nil
}

func toRecord(ev apiEvent) model.EventRecord {
	rec := model.EventRecord{
		ID:         ev.ID,
		Name:       ev.Name,
		URL:        ev.URL,
		StartLocal: parseLocalStart(ev.Dates.Start.LocalDate, ev.Dates.Start.LocalTime),
	}
	if len(ev.PriceRanges) > 0 {
		rec.PriceFrom = &model.Money{Amount: ev.PriceRanges[0].Min, Currency: ev.PriceRanges[0].Currency}
	}
	if ev.Embedded != nil {
		if len(ev.Embedded.Venues) > 0 {
			v := ev.Embedded.Venues[0]
			rec.Venue = &model.VenueRef{Name: v.Name, City: v.City.Name, State: v.State.Name}
		}
		for _, a := range ev.Embedded.Attractions {
			rec.Attractions = append(rec.Attractions, a.Name)
		}
	}
	return rec
}

// parseLocalStart combines the API's local date and optional local time
// into a single timestamp.  The zero time marks listings with no usable
// date yet.
func parseLocalStart(date, clock string) time.Time {
	if date == "" {
		return time.Time{}
	}
	if clock != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, time.Local); err == nil {
			return t
		}
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
