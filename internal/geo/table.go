// Package geo maps known city names to upstream metro identifiers and
// geographic centers.  The table is static and covers only the handful of
// major metros the service has verified DMA ids and coordinates for;
// callers must treat a miss as "no regional fallback available", not as
// an error.
package geo

import (
	"strconv"
	"strings"
)

// Center is a latitude/longitude pair used for radius searches.
type Center struct {
	Lat float64
	Lon float64
}

// Metro is everything known about a supported metropolitan area.  DMAID is
// zero for cities that have a usable center but no verified designated
// market area code.
type Metro struct {
	Name   string // canonical city name, e.g. "Los Angeles"
	DMAID  int    // upstream designated market area id, 0 when unmapped
	Center Center
}

// LatLong renders the center in the "lat,lon" form the upstream expects.
func (m Metro) LatLong() string {
	return trimFloat(m.Center.Lat) + "," + trimFloat(m.Center.Lon)
}

type entry struct {
	aliases []string
	metro   Metro
}

// Aliases are many-to-one: every alias resolves to exactly one metro.
// Order matters only across entries; within an entry any alias hit wins.
var table = []entry{
	{
		aliases: []string{"los angeles", "l.a.", "la", "costa mesa"},
		metro:   Metro{Name: "Los Angeles", DMAID: 324, Center: Center{Lat: 34.0522, Lon: -118.2437}},
	},
	{
		aliases: []string{"new york city", "new york", "nyc"},
		metro:   Metro{Name: "New York", DMAID: 345, Center: Center{Lat: 40.7128, Lon: -74.0060}},
	},
	{
		aliases: []string{"chicago"},
		metro:   Metro{Name: "Chicago", DMAID: 602, Center: Center{Lat: 41.8781, Lon: -87.6298}},
	},
	{
		aliases: []string{"las vegas", "vegas"},
		metro:   Metro{Name: "Las Vegas", DMAID: 839, Center: Center{Lat: 36.1699, Lon: -115.1398}},
	},
	{
		aliases: []string{"san francisco", "sf"},
		metro:   Metro{Name: "San Francisco", Center: Center{Lat: 37.7749, Lon: -122.4194}},
	},
	{
		aliases: []string{"miami"},
		metro:   Metro{Name: "Miami", Center: Center{Lat: 25.7617, Lon: -80.1918}},
	},
	{
		aliases: []string{"austin"},
		metro:   Metro{Name: "Austin", Center: Center{Lat: 30.2672, Lon: -97.7431}},
	},
}

// Resolve looks a city name up by case-insensitive containment against the
// alias list.  Short aliases ("la", "sf", "nyc") match only as whole words,
// so "Atlanta" does not hit the "la" alias.
func Resolve(city string) (Metro, bool) {
	name := strings.ToLower(strings.TrimSpace(city))
	if name == "" {
		return Metro{}, false
	}
	for _, e := range table {
		for _, alias := range e.aliases {
			if len(alias) <= 3 {
				if containsWord(name, alias) {
					return e.metro, true
				}
				continue
			}
			if strings.Contains(name, alias) {
				return e.metro, true
			}
		}
	}
	return Metro{}, false
}

// DMA returns the metro identifier for a city, when one is known.
func DMA(city string) (int, bool) {
	m, ok := Resolve(city)
	if !ok || m.DMAID == 0 {
		return 0, false
	}
	return m.DMAID, true
}

func containsWord(s, word string) bool {
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if f == word {
			return true
		}
	}
	return false
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
