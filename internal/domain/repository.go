package domain

import (
	"context"
	"io"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PlacesSearcher runs a free-text search around a city and returns every page of results
type PlacesSearcher interface {
	SearchAll(ctx context.Context, query string, city City) ([]RawCandidate, error)
}

// PlacesClient is the full places provider surface
type PlacesClient interface {
	PlacesSearcher
	GetPlace(ctx context.Context, placeID string, fields ...string) (*RawCandidate, error)
	DownloadPhoto(ctx context.Context, photo PhotoRef, maxHeightPx int) ([]byte, error)
}

// VenueReader reads the dedup snapshot for a city
type VenueReader interface {
	ListByCity(ctx context.Context, citySlug string) ([]ExistingVenue, error)
}

// VenueRepository defines venue persistence
type VenueRepository interface {
	VenueReader
	InsertBatch(ctx context.Context, records []ClassifiedVenue) ([]Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]Venue, error)
	UpdateClassification(ctx context.Context, id int64, types []CategoryTag, amenities []AmenityTag, verified bool) error
	UpdatePhotos(ctx context.Context, id int64, photos []string) error
	UpdateWebsite(ctx context.Context, id int64, websiteURL string) error
	Close()
}

// VenueFilter narrows List. Zero values mean "no constraint".
type VenueFilter struct {
	CitySlug       string
	WithoutPhotos  bool
	UnverifiedOnly bool
	Limit          int
}

// PhotoStorage stores binary images and returns their public URL
type PhotoStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// PageProber finds a spa-specific page on a venue website
type PageProber interface {
	FindSpaPage(ctx context.Context, baseURL string, paths []string) (string, error)
}
