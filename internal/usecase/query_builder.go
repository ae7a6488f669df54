package usecase

import (
	"log"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

// CityWideQueries are searched once per city; {CITY} is the city's full name
var CityWideQueries = []string{
	"sauna in {CITY}",
	"bathhouse in {CITY}",
	"Korean spa in {CITY}",
	"Russian banya in {CITY}",
	"steam room in {CITY}",
	"hammam in {CITY}",
	"spa with sauna in {CITY}",
	"infrared sauna in {CITY}",
	"cold plunge in {CITY}",
	"day spa with sauna in {CITY}",
	"gym with sauna in {CITY}",
	"hotel spa sauna in {CITY}",
	"fitness club with sauna in {CITY}",
	"float spa in {CITY}",
	"wellness center with sauna in {CITY}",
}

// NeighborhoodQueries are searched once per neighborhood
var NeighborhoodQueries = []string{
	"sauna in {NEIGHBORHOOD} {CITY}",
	"bathhouse in {NEIGHBORHOOD} {CITY}",
	"spa with sauna in {NEIGHBORHOOD} {CITY}",
	"gym with sauna {NEIGHBORHOOD} {CITY}",
}

// QueryBuilder expands query templates for a city
type QueryBuilder struct {
	cityWide           []string
	neighborhood       []string
	enableDebugLogging bool
}

// NewQueryBuilder creates a builder; nil template lists fall back to the defaults
func NewQueryBuilder(cityWide, neighborhood []string, enableDebugLogging bool) *QueryBuilder {
	if cityWide == nil {
		cityWide = CityWideQueries
	}
	if neighborhood == nil {
		neighborhood = NeighborhoodQueries
	}
	return &QueryBuilder{
		cityWide:           cityWide,
		neighborhood:       neighborhood,
		enableDebugLogging: enableDebugLogging,
	}
}

// Build returns the city-wide queries followed by every neighborhood query, in order
func (b *QueryBuilder) Build(city domain.City) []string {
	queries := make([]string, 0, len(b.cityWide)+len(city.Neighborhoods)*len(b.neighborhood))

	for _, template := range b.cityWide {
		queries = append(queries, expandTemplate(template, city.FullName, ""))
	}
	for _, hood := range city.Neighborhoods {
		for _, template := range b.neighborhood {
			queries = append(queries, expandTemplate(template, city.FullName, hood))
		}
	}

	if b.enableDebugLogging {
		log.Printf("[QUERY] Built %d search queries for %s", len(queries), city.Slug)
	}
	return queries
}

func expandTemplate(template, city, neighborhood string) string {
	out := strings.ReplaceAll(template, "{NEIGHBORHOOD}", neighborhood)
	out = strings.ReplaceAll(out, "{CITY}", city)
	return strings.Join(strings.Fields(out), " ")
}
