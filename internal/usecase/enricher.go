package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/rules"
)

// Enrich change statuses
const (
	StatusChanged = "CHANGED"
	StatusError   = "ERROR"
)

// EnrichOptions selects which stored venues to enrich and how
type EnrichOptions struct {
	CitySlug string
	DryRun   bool
	Refetch  bool
	Limit    int
}

// Enricher re-derives amenities and extra types for stored, unverified venues
type Enricher struct {
	venues     domain.VenueRepository
	places     domain.PlacesClient
	rules      *rules.Set
	fetchDelay time.Duration
}

// NewEnricher creates an enricher. places may be nil when refetching is never requested.
func NewEnricher(venues domain.VenueRepository, places domain.PlacesClient, set *rules.Set, fetchDelay time.Duration) *Enricher {
	if set == nil {
		set = rules.Default()
	}
	return &Enricher{venues: venues, places: places, rules: set, fetchDelay: fetchDelay}
}

// Run enriches every selected venue and returns one row per changed field.
// Failures for a single venue become error rows; the run continues. Outside
// dry-run mode every processed venue is marked verified.
func (e *Enricher) Run(ctx context.Context, opts EnrichOptions) ([]domain.EnrichChange, error) {
	if opts.Refetch && e.places == nil {
		return nil, fmt.Errorf("%w: refetch requires a places client", domain.ErrInvalidRequest)
	}

	venues, err := e.venues.List(ctx, domain.VenueFilter{
		CitySlug:       opts.CitySlug,
		UnverifiedOnly: true,
		Limit:          opts.Limit,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[ENRICH] fetched %d venues to enrich", len(venues))

	var changes []domain.EnrichChange
	for i, v := range venues {
		select {
		case <-ctx.Done():
			return changes, ctx.Err()
		default:
		}

		rows, err := e.enrichOne(ctx, v, opts)
		if err != nil {
			log.Printf("[ENRICH] [%d/%d] %s: %v", i+1, len(venues), v.Name, err)
			changes = append(changes, domain.EnrichChange{
				ID: v.ID, Name: v.Name, Field: "error", Status: err.Error(),
			})
			continue
		}
		if len(rows) == 0 {
			log.Printf("[ENRICH] [%d/%d] %s: no changes", i+1, len(venues), v.Name)
		}
		changes = append(changes, rows...)
	}

	return changes, nil
}

func (e *Enricher) enrichOne(ctx context.Context, v domain.Venue, opts EnrichOptions) ([]domain.EnrichChange, error) {
	corpus := v.Name + " " + v.Description
	if opts.Refetch && v.ExternalID != "" {
		place, err := e.places.GetPlace(ctx, v.ExternalID, "editorialSummary", "reviews")
		if err != nil {
			return nil, err
		}
		corpus = strings.Join([]string{corpus, BuildCorpus(domain.RawCandidate{
			EditorialSummary: place.EditorialSummary,
			ReviewSnippets:   place.ReviewSnippets,
		})}, " ")
		if e.fetchDelay > 0 {
			time.Sleep(e.fetchDelay)
		}
	}

	amenities, addedAmenities := e.EnrichAmenities(v.Amenities, corpus)
	types, addedTypes := e.EnrichTypes(v.Types, v.Name, v.Description)

	var rows []domain.EnrichChange
	if len(addedAmenities) > 0 {
		rows = append(rows, domain.EnrichChange{
			ID: v.ID, Name: v.Name, Field: "amenities",
			Before: amenityStrings(v.Amenities), After: amenityStrings(amenities),
			Status: StatusChanged,
		})
		log.Printf("[ENRICH] %s: +%d amenities (%s)", v.Name, len(addedAmenities), strings.Join(amenityStrings(addedAmenities), ", "))
	}
	if len(addedTypes) > 0 {
		rows = append(rows, domain.EnrichChange{
			ID: v.ID, Name: v.Name, Field: "types",
			Before: typeStrings(v.Types), After: typeStrings(types),
			Status: StatusChanged,
		})
		log.Printf("[ENRICH] %s: +%d types (%s)", v.Name, len(addedTypes), strings.Join(typeStrings(addedTypes), ", "))
	}

	if !opts.DryRun {
		if err := e.venues.UpdateClassification(ctx, v.ID, types, amenities, true); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// EnrichAmenities appends every enrichment amenity found in the corpus that is
// not already present. It returns the full list and the additions.
func (e *Enricher) EnrichAmenities(existing []domain.AmenityTag, corpus string) ([]domain.AmenityTag, []domain.AmenityTag) {
	out := slices.Clone(existing)
	var added []domain.AmenityTag
	for _, rule := range e.rules.EnrichAmenities {
		if slices.Contains(out, rule.Tag) || !rule.Pattern.MatchString(corpus) {
			continue
		}
		out = append(out, rule.Tag)
		added = append(added, rule.Tag)
	}
	return out, added
}

// EnrichTypes appends enrichment types. A rule is skipped when its tag, or any
// member of its category, is already present. Name-only rules ignore the description.
func (e *Enricher) EnrichTypes(existing []domain.CategoryTag, name, description string) ([]domain.CategoryTag, []domain.CategoryTag) {
	out := slices.Clone(existing)
	var added []domain.CategoryTag
	for _, rule := range e.rules.EnrichTypes {
		if slices.Contains(out, rule.Tag) {
			continue
		}
		if slices.ContainsFunc(e.rules.CategoryMembers[rule.Category], func(t domain.CategoryTag) bool {
			return slices.Contains(out, t)
		}) {
			continue
		}

		text := name
		if !rule.NameOnly {
			text = name + " " + description
		}
		if rule.Pattern.MatchString(text) {
			out = append(out, rule.Tag)
			added = append(added, rule.Tag)
		}
	}
	return out, added
}

func amenityStrings(tags []domain.AmenityTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func typeStrings(tags []domain.CategoryTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
