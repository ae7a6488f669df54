package usecase

import (
	"fmt"
	"sort"

	"github.com/saunafinder/backend/internal/domain"
)

// CityCatalog resolves city slugs to search regions
type CityCatalog struct {
	cities map[string]domain.City
}

// NewCityCatalog builds a catalog from the given cities, or the built-in ones when empty
func NewCityCatalog(cities ...domain.City) *CityCatalog {
	if len(cities) == 0 {
		cities = DefaultCities()
	}
	c := &CityCatalog{cities: make(map[string]domain.City, len(cities))}
	for _, city := range cities {
		c.cities[city.Slug] = city
	}
	return c
}

// Get returns the city for slug, or ErrUnknownCity
func (c *CityCatalog) Get(slug string) (domain.City, error) {
	city, ok := c.cities[slug]
	if !ok {
		return domain.City{}, fmt.Errorf("%w: %q", domain.ErrUnknownCity, slug)
	}
	return city, nil
}

// List returns every city sorted by slug
func (c *CityCatalog) List() []domain.City {
	out := make([]domain.City, 0, len(c.cities))
	for _, city := range c.cities {
		out = append(out, city)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Slugs returns the sorted city slugs
func (c *CityCatalog) Slugs() []string {
	cities := c.List()
	slugs := make([]string, len(cities))
	for i, city := range cities {
		slugs[i] = city.Slug
	}
	return slugs
}

// DefaultCities returns the built-in search regions
func DefaultCities() []domain.City {
	return []domain.City{
		{
			Slug:         "nyc",
			FullName:     "New York City",
			Center:       domain.Location{Lat: 40.7128, Lng: -74.0060},
			RadiusMeters: 30000,
			Neighborhoods: []string{
				"Manhattan", "Brooklyn", "Williamsburg", "East Village", "West Village",
				"Chelsea", "SoHo", "Tribeca", "Midtown", "Upper East Side",
				"Upper West Side", "Lower East Side", "Harlem", "Flatiron",
				"Park Slope", "Greenpoint", "Bushwick", "Astoria", "Long Island City",
				"Hell's Kitchen", "Financial District", "Koreatown",
			},
			ZipToNeighborhood: nycZipToNeighborhood(),
		},
		{
			Slug:         "sf",
			FullName:     "San Francisco",
			Center:       domain.Location{Lat: 37.7749, Lng: -122.4194},
			RadiusMeters: 20000,
			Neighborhoods: []string{
				"Mission District", "Castro", "SoMa", "Marina", "Nob Hill",
				"North Beach", "Haight-Ashbury", "Richmond", "Sunset",
				"Japantown", "Tenderloin", "Pacific Heights", "Hayes Valley",
			},
		},
		{
			Slug:         "la",
			FullName:     "Los Angeles",
			Center:       domain.Location{Lat: 34.0522, Lng: -118.2437},
			RadiusMeters: 40000,
			Neighborhoods: []string{
				"Hollywood", "West Hollywood", "Santa Monica", "Venice",
				"Silver Lake", "Downtown LA", "Koreatown", "Beverly Hills",
				"Culver City", "Pasadena", "Echo Park", "Mar Vista",
				"Brentwood", "Studio City", "Burbank",
			},
		},
		{
			Slug:         "chicago",
			FullName:     "Chicago",
			Center:       domain.Location{Lat: 41.8781, Lng: -87.6298},
			RadiusMeters: 25000,
			Neighborhoods: []string{
				"Loop", "Lincoln Park", "Wicker Park", "Logan Square",
				"Bucktown", "River North", "Gold Coast", "Lakeview",
				"Andersonville", "Pilsen", "West Loop", "Hyde Park",
				"Ukrainian Village",
			},
		},
		{
			Slug:         "seattle",
			FullName:     "Seattle",
			Center:       domain.Location{Lat: 47.6062, Lng: -122.3321},
			RadiusMeters: 20000,
			Neighborhoods: []string{
				"Capitol Hill", "Ballard", "Fremont", "Wallingford",
				"University District", "Queen Anne", "Georgetown", "Beacon Hill",
				"Columbia City", "West Seattle", "South Lake Union",
			},
		},
		{
			Slug:         "portland",
			FullName:     "Portland",
			Center:       domain.Location{Lat: 45.5152, Lng: -122.6784},
			RadiusMeters: 20000,
			Neighborhoods: []string{
				"Pearl District", "Alberta Arts", "Hawthorne", "Division",
				"Mississippi", "Sellwood", "Northeast Portland", "Southeast Portland",
				"Northwest Portland", "Downtown Portland",
			},
		},
		{
			Slug:         "miami",
			FullName:     "Miami",
			Center:       domain.Location{Lat: 25.7617, Lng: -80.1918},
			RadiusMeters: 25000,
			Neighborhoods: []string{
				"South Beach", "Wynwood", "Brickell", "Coconut Grove",
				"Coral Gables", "Design District", "Little Havana",
				"Miami Beach", "North Miami", "Key Biscayne", "Doral",
			},
		},
	}
}

func nycZipToNeighborhood() map[string]string {
	return map[string]string{
		"10001": "Chelsea", "10002": "Lower East Side", "10003": "East Village",
		"10004": "Financial District", "10005": "Financial District", "10006": "Financial District",
		"10007": "Tribeca", "10009": "East Village", "10010": "Flatiron",
		"10011": "Chelsea", "10012": "SoHo", "10013": "Tribeca",
		"10014": "West Village", "10016": "Midtown", "10017": "Midtown",
		"10018": "Midtown", "10019": "Hell's Kitchen", "10020": "Midtown",
		"10021": "Upper East Side", "10022": "Midtown", "10023": "Upper West Side",
		"10024": "Upper West Side", "10025": "Upper West Side",
		"10026": "Harlem", "10027": "Harlem", "10028": "Upper East Side",
		"10029": "Harlem", "10030": "Harlem", "10031": "Harlem",
		"10032": "Harlem", "10033": "Harlem", "10034": "Harlem",
		"10035": "Harlem", "10036": "Midtown", "10037": "Harlem",
		"10038": "Financial District", "10039": "Harlem", "10040": "Harlem",
		"10065": "Upper East Side", "10075": "Upper East Side",
		"10128": "Upper East Side",
		"11201": "Brooklyn", "11205": "Brooklyn", "11206": "Bushwick",
		"11211": "Williamsburg", "11217": "Park Slope", "11215": "Park Slope",
		"11218": "Brooklyn", "11219": "Brooklyn", "11220": "Brooklyn",
		"11222": "Greenpoint", "11226": "Brooklyn", "11228": "Brooklyn",
		"11229": "Brooklyn", "11230": "Brooklyn", "11237": "Bushwick",
		"11249": "Williamsburg",
		"11101": "Long Island City", "11102": "Astoria", "11103": "Astoria",
		"11105": "Astoria", "11106": "Astoria",
	}
}
