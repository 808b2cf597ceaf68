package tweetparse

import (
	"slices"

	"github.com/reoring/tweetparse/internal/memo"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point is a GeoJSON-style point as carried by location enrichments.
type Point struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

// ProfileLocation is the location derived from the poster's profile by the
// profile-geo enrichment.
type ProfileLocation struct {
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Locality    string `json:"locality,omitempty"`
	Region      string `json:"region,omitempty"`
	SubRegion   string `json:"sub_region,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Geo         *Point `json:"geo,omitempty"`
}

// GeoCoordinates returns the Tweet's exact location, or nil when it has none.
// Both formats store it as "geo" with coordinates in [lat, long] order.
func (t *Tweet) GeoCoordinates() *Coordinates {
	return clonePtr(t.geoCoordinates())
}

func (t *Tweet) geoCoordinates() *Coordinates {
	return memo.Value(t.cache, "geo_coordinates", func() *Coordinates {
		c := sliceAt(t.raw, "geo", "coordinates")
		if len(c) < 2 {
			return nil
		}
		lat, ok1 := toFloat64(c[0])
		lon, ok2 := toFloat64(c[1])
		if !ok1 || !ok2 {
			return nil
		}
		return &Coordinates{Latitude: lat, Longitude: lon}
	})
}

// ProfileLocation returns the first enriched profile location, or nil when
// the enrichment is absent.
func (t *Tweet) ProfileLocation() *ProfileLocation {
	loc := clonePtr(t.profileLocation())
	if loc != nil && loc.Geo != nil {
		g := *loc.Geo
		g.Coordinates = slices.Clone(g.Coordinates)
		loc.Geo = &g
	}
	return loc
}

func (t *Tweet) profileLocation() *ProfileLocation {
	return memo.Value(t.cache, "profile_location", func() *ProfileLocation {
		switch t.format {
		case FormatOriginal:
			locs := sliceAt(t.raw, "user", "derived", "locations")
			if len(locs) == 0 {
				return nil
			}
			m, ok := locs[0].(map[string]any)
			if !ok {
				return nil
			}
			return &ProfileLocation{
				Country:     strAt(m, "country"),
				CountryCode: strAt(m, "country_code"),
				Locality:    strAt(m, "locality"),
				Region:      strAt(m, "region"),
				SubRegion:   strAt(m, "sub_region"),
				FullName:    strAt(m, "full_name"),
				Geo:         pointFrom(mapAt(m, "geo")),
			}
		case FormatActivityStreams:
			locs := sliceAt(t.raw, "gnip", "profileLocations")
			if len(locs) == 0 {
				return nil
			}
			m, ok := locs[0].(map[string]any)
			if !ok {
				return nil
			}
			addr := mapAt(m, "address")
			return &ProfileLocation{
				Country:     strAt(addr, "country"),
				CountryCode: strAt(addr, "countryCode"),
				Locality:    strAt(addr, "locality"),
				Region:      strAt(addr, "region"),
				SubRegion:   strAt(addr, "subRegion"),
				FullName:    strAt(m, "displayName"),
				Geo:         pointFrom(mapAt(m, "geo")),
			}
		}
		return nil
	})
}

func pointFrom(m map[string]any) *Point {
	if m == nil {
		return nil
	}
	p := &Point{Type: strAt(m, "type")}
	for _, c := range sliceAt(m, "coordinates") {
		if f, ok := toFloat64(c); ok {
			p.Coordinates = append(p.Coordinates, f)
		}
	}
	return p
}
