package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/saunafinder/backend/internal/domain"
)

func TestEnrichAmenities(t *testing.T) {
	e := NewEnricher(nil, nil, nil, 0)

	all, added := e.EnrichAmenities(
		[]domain.AmenityTag{domain.AmenityColdPlunge},
		"Bathhouse with an ice bath, eucalyptus steam and infrared cabins",
	)

	if len(added) == 0 {
		t.Fatal("expected additions")
	}
	if all[0] != domain.AmenityColdPlunge {
		t.Errorf("existing amenities must stay first, got %v", all)
	}
	for _, a := range added {
		if a == domain.AmenityColdPlunge {
			t.Errorf("cold_plunge re-added: %v", added)
		}
	}
	if !containsAmenity(all, domain.AmenitySteamRoom) || !containsAmenity(all, domain.AmenityInfraredSauna) {
		t.Errorf("all = %v, want steam_room and infrared_sauna", all)
	}
}

func TestEnrichAmenitiesDoesNotMutateInput(t *testing.T) {
	e := NewEnricher(nil, nil, nil, 0)
	existing := make([]domain.AmenityTag, 0, 10)
	existing = append(existing, domain.AmenityMassage)

	e.EnrichAmenities(existing, "steam room")
	if len(existing) != 1 || existing[:2][1] != "" {
		t.Errorf("input slice mutated: %v", existing[:2])
	}
}

func TestEnrichTypes(t *testing.T) {
	e := NewEnricher(nil, nil, nil, 0)

	tests := []struct {
		name        string
		existing    []domain.CategoryTag
		venue       string
		description string
		wantAdded   []domain.CategoryTag
	}{
		{
			name:      "banya in the name",
			existing:  []domain.CategoryTag{domain.TagDaySpa},
			venue:     "Brooklyn Banya",
			wantAdded: []domain.CategoryTag{domain.TagRussianBanya},
		},
		{
			name:        "name-only rule ignores the description",
			existing:    []domain.CategoryTag{domain.TagHotelSpa},
			venue:       "The Grand Hotel",
			description: "Spa with a banya and infrared sauna",
			wantAdded:   nil,
		},
		{
			name:      "category member already present",
			existing:  []domain.CategoryTag{domain.TagRussianBathhouse},
			venue:     "Russian Banya House",
			wantAdded: nil,
		},
		{
			name:        "description rule",
			existing:    []domain.CategoryTag{domain.TagDaySpa},
			venue:       "Jeju Sauna",
			description: "Authentic jjimjilbang with a korean scrub",
			wantAdded:   []domain.CategoryTag{domain.TagKoreanSpa},
		},
		{
			name:        "private booking",
			existing:    nil,
			venue:       "Sweat Studio",
			description: "Book a private sauna by the hour",
			wantAdded:   []domain.CategoryTag{domain.TagPrivateSaunaStudio},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all, added := e.EnrichTypes(tt.existing, tt.venue, tt.description)
			if !reflect.DeepEqual(added, tt.wantAdded) {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if len(all) != len(tt.existing)+len(tt.wantAdded) {
				t.Errorf("all = %v", all)
			}
		})
	}
}

func TestEnricherRun(t *testing.T) {
	ctx := context.Background()

	seed := func() *MockVenueRepository {
		return NewMockVenueRepository(
			domain.Venue{ID: 1, ClassifiedVenue: domain.ClassifiedVenue{
				Name: "Brooklyn Banya", Description: "Steam room and cold plunge", CitySlug: "nyc",
				Types: []domain.CategoryTag{domain.TagDaySpa}, Amenities: []domain.AmenityTag{}, ExternalID: "p1",
			}},
			domain.Venue{ID: 2, ClassifiedVenue: domain.ClassifiedVenue{Name: "Quiet Room", CitySlug: "nyc"}},
			domain.Venue{ID: 3, ClassifiedVenue: domain.ClassifiedVenue{Name: "Done Banya", CitySlug: "nyc"}, Verified: true},
		)
	}

	t.Run("dry run reports changes without writing", func(t *testing.T) {
		repo := seed()
		changes, err := NewEnricher(repo, nil, nil, 0).Run(ctx, EnrichOptions{CitySlug: "nyc", DryRun: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(changes) != 2 {
			t.Fatalf("changes = %+v, want amenities and types rows", changes)
		}
		if changes[0].Field != "amenities" || changes[1].Field != "types" || changes[0].Status != StatusChanged {
			t.Errorf("changes = %+v", changes)
		}
		if repo.get(1).Verified || len(repo.get(1).Amenities) != 0 {
			t.Error("dry run wrote to the store")
		}
		if !repo.lastFilter.UnverifiedOnly {
			t.Error("expected UnverifiedOnly filter")
		}
	})

	t.Run("writes changes and marks venues verified", func(t *testing.T) {
		repo := seed()
		if _, err := NewEnricher(repo, nil, nil, 0).Run(ctx, EnrichOptions{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := repo.get(1)
		if !v.Verified {
			t.Error("venue 1 not verified")
		}
		if !containsAmenity(v.Amenities, domain.AmenitySteamRoom) || !containsAmenity(v.Amenities, domain.AmenityColdPlunge) {
			t.Errorf("amenities = %v", v.Amenities)
		}
		if !repo.get(2).Verified {
			t.Error("unchanged venue should still be marked verified")
		}
	})

	t.Run("refetch adds provider text to the corpus", func(t *testing.T) {
		repo := seed()
		places := NewMockPlacesClient()
		places.places["p1"] = &domain.RawCandidate{
			ReviewSnippets: []domain.Review{{Text: "The private room booking was easy"}},
		}

		changes, err := NewEnricher(repo, places, nil, 0).Run(ctx, EnrichOptions{Refetch: true, DryRun: true, Limit: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(places.fields) != 1 {
			t.Errorf("GetPlace calls = %d, want 1", len(places.fields))
		}
		if len(changes) == 0 || !containsString(changes[0].After, string(domain.AmenityPrivate)) {
			t.Errorf("changes = %+v, want private amenity", changes)
		}
	})

	t.Run("refetch without a places client is rejected", func(t *testing.T) {
		_, err := NewEnricher(seed(), nil, nil, 0).Run(ctx, EnrichOptions{Refetch: true})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("per-venue failure becomes an error row", func(t *testing.T) {
		repo := seed()
		repo.updateError = errors.New("write failed")

		changes, err := NewEnricher(repo, nil, nil, 0).Run(ctx, EnrichOptions{Limit: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(changes) != 1 || changes[0].Field != "error" || changes[0].Status != "write failed" {
			t.Errorf("changes = %+v", changes)
		}
	})
}

func containsAmenity(tags []domain.AmenityTag, want domain.AmenityTag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
