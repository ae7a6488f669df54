package places

import (
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

// searchFields is the field mask for text search; every field the pipeline reads
var searchFields = []string{
	"id",
	"displayName",
	"formattedAddress",
	"location",
	"rating",
	"userRatingCount",
	"websiteUri",
	"regularOpeningHours",
	"types",
	"photos",
	"priceLevel",
	"primaryType",
	"editorialSummary",
	"reviews",
}

// searchFieldMask prefixes each field with "places." and adds the page token
func searchFieldMask() string {
	fields := make([]string, 0, len(searchFields)+1)
	for _, f := range searchFields {
		fields = append(fields, "places."+f)
	}
	fields = append(fields, "nextPageToken")
	return strings.Join(fields, ",")
}

// MapToCandidate converts a wire place into the pipeline's candidate
func MapToCandidate(p *Place) domain.RawCandidate {
	c := domain.RawCandidate{
		ExternalID:         p.ID,
		DisplayName:        textOf(p.DisplayName),
		FormattedAddress:   p.FormattedAddress,
		Rating:             p.Rating,
		ReviewCount:        p.UserRatingCount,
		PriceTier:          domain.PriceTier(p.PriceLevel),
		ProviderCategories: p.Types,
		WebsiteURL:         p.WebsiteURI,
		EditorialSummary:   textOf(p.EditorialSummary),
	}

	if p.Location != nil {
		c.Location = &domain.Location{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
	}
	if p.RegularOpeningHours != nil {
		c.OpeningHours = p.RegularOpeningHours.WeekdayDescriptions
	}

	for _, r := range p.Reviews {
		c.ReviewSnippets = append(c.ReviewSnippets, domain.Review{Rating: r.Rating, Text: reviewText(r)})
	}
	for _, ph := range p.Photos {
		if ph.Name != "" {
			c.Photos = append(c.Photos, domain.PhotoRef{Name: ph.Name})
		}
	}

	return c
}

// MapToCandidates converts a page of wire places
func MapToCandidates(places []Place) []domain.RawCandidate {
	out := make([]domain.RawCandidate, 0, len(places))
	for i := range places {
		out = append(out, MapToCandidate(&places[i]))
	}
	return out
}

// reviewText prefers the translated text and falls back to the original
func reviewText(r review) string {
	if t := textOf(r.Text); t != "" {
		return t
	}
	return textOf(r.OriginalText)
}

func textOf(t *localizedText) string {
	if t == nil {
		return ""
	}
	return t.Text
}
