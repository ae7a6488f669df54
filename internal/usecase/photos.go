package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/saunafinder/backend/internal/domain"
)

// PhotoConfig holds configuration for the photo service
type PhotoConfig struct {
	MaxPerVenue int
	MaxHeightPx int
	VenueDelay  time.Duration
}

// PhotoService copies provider photos into photo storage and links them to venues
type PhotoService struct {
	places      domain.PlacesClient
	storage     domain.PhotoStorage
	venues      domain.VenueRepository
	maxPerVenue int
	maxHeightPx int
	venueDelay  time.Duration
	now         func() time.Time
}

// NewPhotoService creates a photo service with dependencies
func NewPhotoService(
	places domain.PlacesClient,
	storage domain.PhotoStorage,
	venues domain.VenueRepository,
	config PhotoConfig,
) *PhotoService {
	maxPerVenue := config.MaxPerVenue
	if maxPerVenue <= 0 {
		maxPerVenue = 5
	}
	maxHeightPx := config.MaxHeightPx
	if maxHeightPx <= 0 {
		maxHeightPx = 600
	}

	return &PhotoService{
		places:      places,
		storage:     storage,
		venues:      venues,
		maxPerVenue: maxPerVenue,
		maxHeightPx: maxHeightPx,
		venueDelay:  config.VenueDelay,
		now:         time.Now,
	}
}

// AttachPhotos downloads up to MaxPerVenue photos, uploads them and stores
// their URLs on the venue. Photos that fail are skipped; when none succeed the
// venue is left untouched and nil is returned.
func (s *PhotoService) AttachPhotos(ctx context.Context, venueID int64, refs []domain.PhotoRef) ([]string, error) {
	if len(refs) > s.maxPerVenue {
		refs = refs[:s.maxPerVenue]
	}

	var urls []string
	for i, ref := range refs {
		data, err := s.places.DownloadPhoto(ctx, ref, s.maxHeightPx)
		if err != nil {
			log.Printf("[PHOTOS] venue %d photo %d download failed: %v", venueID, i, err)
			continue
		}

		key := photoKey(venueID, i, s.now())
		url, err := s.storage.Upload(ctx, key, bytes.NewReader(data), "image/jpeg")
		if err != nil {
			log.Printf("[PHOTOS] venue %d photo %d upload failed: %v", venueID, i, err)
			continue
		}
		urls = append(urls, url)
	}

	if len(urls) == 0 {
		return nil, nil
	}

	if err := s.venues.UpdatePhotos(ctx, venueID, urls); err != nil {
		return nil, fmt.Errorf("%w: updating photos for venue %d: %v", domain.ErrStoreFailure, venueID, err)
	}
	return urls, nil
}

// ProcessInserted attaches photos to freshly imported venues using the
// references their search results already carried. It returns how many venues got photos.
func (s *PhotoService) ProcessInserted(ctx context.Context, inserted []domain.InsertedVenue) (int, error) {
	done := 0
	for i, v := range inserted {
		if err := s.wait(ctx, i); err != nil {
			return done, err
		}
		if len(v.Candidate.Photos) == 0 {
			log.Printf("[PHOTOS] no photos for %s", v.Name)
			continue
		}
		urls, err := s.AttachPhotos(ctx, v.ID, v.Candidate.Photos)
		if err != nil {
			log.Printf("[PHOTOS] %s: %v", v.Name, err)
			continue
		}
		if len(urls) > 0 {
			log.Printf("[PHOTOS] added %d photo(s) for %s", len(urls), v.Name)
			done++
		}
	}
	return done, nil
}

// Backfill processes stored venues that have no photos yet, looking up photo
// references by place id.
func (s *PhotoService) Backfill(ctx context.Context, citySlug string, limit int) (int, int, error) {
	venues, err := s.venues.List(ctx, domain.VenueFilter{CitySlug: citySlug, WithoutPhotos: true, Limit: limit})
	if err != nil {
		return 0, 0, err
	}
	log.Printf("[PHOTOS] found %d venues without photos", len(venues))

	done := 0
	for i, v := range venues {
		if err := s.wait(ctx, i); err != nil {
			return done, len(venues), err
		}
		if v.ExternalID == "" {
			continue
		}

		place, err := s.places.GetPlace(ctx, v.ExternalID, "photos")
		if err != nil {
			log.Printf("[PHOTOS] %s: fetching photo references: %v", v.Name, err)
			continue
		}
		if len(place.Photos) == 0 {
			log.Printf("[PHOTOS] no photos found for %s", v.Name)
			continue
		}

		urls, err := s.AttachPhotos(ctx, v.ID, place.Photos)
		if err != nil {
			log.Printf("[PHOTOS] %s: %v", v.Name, err)
			continue
		}
		if len(urls) > 0 {
			done++
		}
	}
	return done, len(venues), nil
}

// wait sleeps between venues and honors cancellation
func (s *PhotoService) wait(ctx context.Context, i int) error {
	if i == 0 || s.venueDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.venueDelay):
		return nil
	}
}

// photoKey format: "public/{venueID}-{index}-{unixMillis}.jpg"
func photoKey(venueID int64, index int, at time.Time) string {
	return fmt.Sprintf("public/%d-%d-%d.jpg", venueID, index, at.UnixMilli())
}
