package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saunafinder/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

// testRepository runs the behaviour every venue store must share.
// Each run uses a fresh city slug so a shared database stays isolated.
func testRepository(t *testing.T, repo domain.VenueRepository) {
	ctx := context.Background()
	city := "test-" + uuid.NewString()[:8]

	records := []domain.ClassifiedVenue{
		{
			Name:         "Bathhouse Williamsburg",
			Address:      "103 N 10th St, Brooklyn, NY 11249",
			Neighborhood: "Williamsburg",
			Lat:          floatPtr(40.72),
			Lng:          floatPtr(-73.95),
			Rating:       floatPtr(4.5),
			ReviewCount:  intPtr(1200),
			Price:        "$$",
			Types:        []domain.CategoryTag{domain.TagModernBathhouse},
			Amenities:    []domain.AmenityTag{domain.AmenityDrySauna, domain.AmenityColdPlunge},
			Hours:        "Monday: 10AM-11PM",
			ExternalID:   "place-1",
			Description:  "Hot and cold bathhouse.",
			CitySlug:     city,
			WebsiteURL:   "https://abathhouse.com",
		},
		{
			Name:     "Quiet Sauna",
			Address:  "1 Main St",
			Types:    []domain.CategoryTag{},
			CitySlug: city,
		},
	}

	t.Run("insert batch assigns ids", func(t *testing.T) {
		inserted, err := repo.InsertBatch(ctx, records)
		require.NoError(t, err)
		require.Len(t, inserted, 2)
		assert.NotZero(t, inserted[0].ID)
		assert.NotEqual(t, inserted[0].ID, inserted[1].ID)
		assert.Equal(t, "Quiet Sauna", inserted[1].Name)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		inserted, err := repo.InsertBatch(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, inserted)
	})

	t.Run("list by city returns snapshots", func(t *testing.T) {
		existing, err := repo.ListByCity(ctx, city)
		require.NoError(t, err)
		require.Len(t, existing, 2)
		assert.Equal(t, "Bathhouse Williamsburg", existing[0].Name)
		assert.Equal(t, "place-1", existing[0].ExternalID)
		assert.Equal(t, "", existing[1].ExternalID)

		other, err := repo.ListByCity(ctx, city+"-other")
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("list round-trips every column", func(t *testing.T) {
		venues, err := repo.List(ctx, domain.VenueFilter{CitySlug: city})
		require.NoError(t, err)
		require.Len(t, venues, 2)

		v := venues[0]
		assert.Equal(t, records[0].Name, v.Name)
		assert.Equal(t, records[0].Neighborhood, v.Neighborhood)
		require.NotNil(t, v.Lat)
		assert.InDelta(t, 40.72, *v.Lat, 1e-9)
		require.NotNil(t, v.ReviewCount)
		assert.Equal(t, 1200, *v.ReviewCount)
		assert.Equal(t, "$$", v.Price)
		assert.Equal(t, records[0].Types, v.Types)
		assert.Equal(t, records[0].Amenities, v.Amenities)
		assert.Equal(t, records[0].Hours, v.Hours)
		assert.Equal(t, "https://abathhouse.com", v.WebsiteURL)
		assert.False(t, v.Verified)
		assert.Empty(t, v.Photos)
		assert.False(t, v.CreatedAt.IsZero())

		q := venues[1]
		assert.Nil(t, q.Lat)
		assert.Nil(t, q.Rating)
		assert.Equal(t, "", q.Neighborhood)
		assert.Empty(t, q.Types)
	})

	t.Run("updates and filters", func(t *testing.T) {
		venues, err := repo.List(ctx, domain.VenueFilter{CitySlug: city})
		require.NoError(t, err)
		first, second := venues[0].ID, venues[1].ID

		require.NoError(t, repo.UpdatePhotos(ctx, first, []string{"https://cdn.example.com/a.jpg"}))
		require.NoError(t, repo.UpdateClassification(ctx, second,
			[]domain.CategoryTag{domain.TagBoutiqueSauna}, []domain.AmenityTag{domain.AmenityPrivate}, true))
		require.NoError(t, repo.UpdateWebsite(ctx, second, "https://quiet.example.com"))

		noPhotos, err := repo.List(ctx, domain.VenueFilter{CitySlug: city, WithoutPhotos: true})
		require.NoError(t, err)
		require.Len(t, noPhotos, 1)
		assert.Equal(t, second, noPhotos[0].ID)
		assert.Equal(t, []domain.CategoryTag{domain.TagBoutiqueSauna}, noPhotos[0].Types)
		assert.Equal(t, []domain.AmenityTag{domain.AmenityPrivate}, noPhotos[0].Amenities)
		assert.Equal(t, "https://quiet.example.com", noPhotos[0].WebsiteURL)
		assert.True(t, noPhotos[0].Verified)

		unverified, err := repo.List(ctx, domain.VenueFilter{CitySlug: city, UnverifiedOnly: true})
		require.NoError(t, err)
		require.Len(t, unverified, 1)
		assert.Equal(t, first, unverified[0].ID)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, unverified[0].Photos)

		limited, err := repo.List(ctx, domain.VenueFilter{CitySlug: city, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("updating a missing venue", func(t *testing.T) {
		err := repo.UpdateWebsite(ctx, -1, "https://nowhere.example.com")
		assert.ErrorIs(t, err, domain.ErrVenueNotFound)
	})
}
