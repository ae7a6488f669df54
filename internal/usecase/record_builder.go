package usecase

import (
	"regexp"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

var zipCodeRegex = regexp.MustCompile(`\b(\d{5})\b`)

// boroughFallbacks are checked in order when no neighborhood or zip matched
var boroughFallbacks = []struct {
	needle string
	name   string
}{
	{"brooklyn", "Brooklyn"},
	{"queens", "Queens"},
	{"astoria", "Astoria"},
	{"long island city", "Long Island City"},
	{"bronx", "Bronx"},
	{"staten island", "Staten Island"},
}

// RecordBuilder turns an accepted candidate into a store record
type RecordBuilder struct {
	classifier *Classifier
	describer  *Describer
}

// NewRecordBuilder creates a record builder
func NewRecordBuilder(classifier *Classifier, describer *Describer) *RecordBuilder {
	return &RecordBuilder{classifier: classifier, describer: describer}
}

// Build classifies and describes a candidate for the given city
func (b *RecordBuilder) Build(c domain.RawCandidate, city domain.City) domain.ClassifiedVenue {
	types, amenities := b.classifier.Classify(c.DisplayName, BuildCorpus(c), c.ProviderCategories)

	record := domain.ClassifiedVenue{
		Name:         c.DisplayName,
		Address:      c.FormattedAddress,
		Neighborhood: DetectNeighborhood(c.FormattedAddress, city),
		Rating:       c.Rating,
		ReviewCount:  c.ReviewCount,
		Price:        MapPriceTier(c.PriceTier),
		Types:        types,
		Amenities:    amenities,
		Hours:        strings.Join(c.OpeningHours, ", "),
		ExternalID:   c.ExternalID,
		Description:  b.describer.Describe(c.EditorialSummary, c.ReviewSnippets, types),
		CitySlug:     city.Slug,
		WebsiteURL:   c.WebsiteURL,
	}
	if c.Location != nil {
		lat, lng := c.Location.Lat, c.Location.Lng
		record.Lat = &lat
		record.Lng = &lng
	}
	return record
}

// DetectNeighborhood finds a neighborhood name in the address, then tries the
// city's zip map, then borough names. It returns "" when nothing matches.
func DetectNeighborhood(address string, city domain.City) string {
	lower := strings.ToLower(address)

	for _, hood := range city.Neighborhoods {
		if strings.Contains(lower, strings.ToLower(hood)) {
			return hood
		}
	}

	if m := zipCodeRegex.FindStringSubmatch(address); m != nil {
		if hood, ok := city.ZipToNeighborhood[m[1]]; ok {
			return hood
		}
	}

	for _, b := range boroughFallbacks {
		if strings.Contains(lower, b.needle) {
			return b.name
		}
	}
	return ""
}

// MapPriceTier maps the provider price level to "$", "$$" or "$$$"
func MapPriceTier(tier domain.PriceTier) string {
	switch tier {
	case domain.PriceFree, domain.PriceInexpensive:
		return "$"
	case domain.PriceModerate:
		return "$$"
	case domain.PriceExpensive, domain.PriceVeryExpensive:
		return "$$$"
	default:
		return ""
	}
}
