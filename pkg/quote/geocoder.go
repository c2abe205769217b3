package quote

import (
	"strings"
)

// Geocoder maps a free-text city name to approximate coordinates. The
// engine only needs best-effort city-level precision; implementations may
// be a static table or a real geocoding service.
type Geocoder interface {
	// Resolve returns coordinates for cityName, or ErrCityNotFound.
	Resolve(cityName string) (Coordinates, error)
}

type geoEntry struct {
	name   string
	coords Coordinates
}

// StaticGeocoder resolves cities against a fixed in-process table.
// Lookup is exact first, then substring partial match in table order, so
// earlier-registered cities win ambiguous matches.
type StaticGeocoder struct {
	entries []geoEntry
}

// NewStaticGeocoder creates a geocoder pre-loaded with major Canadian
// cities.
func NewStaticGeocoder() *StaticGeocoder {
	g := &StaticGeocoder{}
	for _, e := range canadianCities {
		g.Register(e.name, e.coords.Lat, e.coords.Lon)
	}
	return g
}

// NewEmptyGeocoder creates a geocoder with no entries. Mainly for tests
// and for callers that load their own table.
func NewEmptyGeocoder() *StaticGeocoder {
	return &StaticGeocoder{}
}

// Register appends a city to the table. Registration order is lookup
// priority for partial matches.
func (g *StaticGeocoder) Register(name string, lat, lon float64) {
	g.entries = append(g.entries, geoEntry{
		name:   normalizeCity(name),
		coords: Coordinates{Lat: lat, Lon: lon},
	})
}

// Resolve implements Geocoder.
func (g *StaticGeocoder) Resolve(cityName string) (Coordinates, error) {
	input := normalizeCity(cityName)
	if input == "" {
		return Coordinates{}, ErrCityNotFound
	}

	for _, e := range g.entries {
		if e.name == input {
			return e.coords, nil
		}
	}

	for _, e := range g.entries {
		if strings.Contains(input, e.name) || strings.Contains(e.name, input) {
			return e.coords, nil
		}
	}

	return Coordinates{}, ErrCityNotFound
}

// canadianCities is the built-in city table. City-level centroids are
// coarse on purpose; the quoter only compares distances against zone
// limits measured in tens of kilometres.
var canadianCities = []geoEntry{
	{"toronto", Coordinates{43.6532, -79.3832}},
	{"montreal", Coordinates{45.5017, -73.5673}},
	{"vancouver", Coordinates{49.2827, -123.1207}},
	{"calgary", Coordinates{51.0447, -114.0719}},
	{"edmonton", Coordinates{53.5461, -113.4938}},
	{"ottawa", Coordinates{45.4215, -75.6972}},
	{"winnipeg", Coordinates{49.8951, -97.1384}},
	{"quebec city", Coordinates{46.8139, -71.2080}},
	{"hamilton", Coordinates{43.2557, -79.8711}},
	{"kitchener", Coordinates{43.4516, -80.4925}},
	{"london", Coordinates{42.9849, -81.2453}},
	{"victoria", Coordinates{48.4284, -123.3656}},
	{"halifax", Coordinates{44.6488, -63.5752}},
	{"oshawa", Coordinates{43.8971, -78.8658}},
	{"windsor", Coordinates{42.3149, -83.0364}},
	{"saskatoon", Coordinates{52.1332, -106.6700}},
	{"regina", Coordinates{50.4452, -104.6189}},
	{"st. john's", Coordinates{47.5615, -52.7126}},
	{"barrie", Coordinates{44.3894, -79.6903}},
	{"kelowna", Coordinates{49.8880, -119.4960}},
	{"mississauga", Coordinates{43.5890, -79.6441}},
	{"brampton", Coordinates{43.7315, -79.7624}},
	{"markham", Coordinates{43.8561, -79.3370}},
	{"vaughan", Coordinates{43.8361, -79.4983}},
	{"scarborough", Coordinates{43.7764, -79.2318}},
	{"etobicoke", Coordinates{43.6205, -79.5132}},
}
