package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/saunafinder/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockPlacesClient is a mock implementation of domain.PlacesClient
type MockPlacesClient struct {
	results     map[string][]domain.RawCandidate
	searchError map[string]error
	places      map[string]*domain.RawCandidate
	placeError  error
	photos      map[string][]byte
	queries     []string
	fields      [][]string
}

func NewMockPlacesClient() *MockPlacesClient {
	return &MockPlacesClient{
		results:     make(map[string][]domain.RawCandidate),
		searchError: make(map[string]error),
		places:      make(map[string]*domain.RawCandidate),
		photos:      make(map[string][]byte),
	}
}

func (m *MockPlacesClient) SearchAll(ctx context.Context, query string, city domain.City) ([]domain.RawCandidate, error) {
	m.queries = append(m.queries, query)
	if err, ok := m.searchError[query]; ok {
		return nil, err
	}
	return m.results[query], nil
}

func (m *MockPlacesClient) GetPlace(ctx context.Context, placeID string, fields ...string) (*domain.RawCandidate, error) {
	m.fields = append(m.fields, fields)
	if m.placeError != nil {
		return nil, m.placeError
	}
	place, ok := m.places[placeID]
	if !ok {
		return nil, domain.ErrPlaceNotFound
	}
	return place, nil
}

func (m *MockPlacesClient) DownloadPhoto(ctx context.Context, photo domain.PhotoRef, maxHeightPx int) ([]byte, error) {
	data, ok := m.photos[photo.Name]
	if !ok {
		return nil, fmt.Errorf("%w: no photo %s", domain.ErrPlacesAPIFailure, photo.Name)
	}
	return data, nil
}

// MockVenueRepository is an in-memory domain.VenueRepository
type MockVenueRepository struct {
	venues      []domain.Venue
	nextID      int64
	listError   error
	insertError func(batch []domain.ClassifiedVenue) error
	updateError error
	batches     [][]domain.ClassifiedVenue
	lastFilter  domain.VenueFilter
}

func NewMockVenueRepository(venues ...domain.Venue) *MockVenueRepository {
	return &MockVenueRepository{venues: venues, nextID: 100}
}

func (m *MockVenueRepository) ListByCity(ctx context.Context, citySlug string) ([]domain.ExistingVenue, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []domain.ExistingVenue
	for _, v := range m.venues {
		if v.CitySlug == citySlug {
			out = append(out, v.Snapshot())
		}
	}
	return out, nil
}

func (m *MockVenueRepository) InsertBatch(ctx context.Context, records []domain.ClassifiedVenue) ([]domain.Venue, error) {
	m.batches = append(m.batches, records)
	if m.insertError != nil {
		if err := m.insertError(records); err != nil {
			return nil, err
		}
	}
	out := make([]domain.Venue, len(records))
	for i, r := range records {
		m.nextID++
		out[i] = domain.Venue{ID: m.nextID, ClassifiedVenue: r}
		m.venues = append(m.venues, out[i])
	}
	return out, nil
}

func (m *MockVenueRepository) List(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error) {
	m.lastFilter = filter
	if m.listError != nil {
		return nil, m.listError
	}
	var out []domain.Venue
	for _, v := range m.venues {
		if filter.CitySlug != "" && v.CitySlug != filter.CitySlug {
			continue
		}
		if filter.WithoutPhotos && len(v.Photos) > 0 {
			continue
		}
		if filter.UnverifiedOnly && v.Verified {
			continue
		}
		out = append(out, v)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *MockVenueRepository) find(id int64) (*domain.Venue, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	for i := range m.venues {
		if m.venues[i].ID == id {
			return &m.venues[i], nil
		}
	}
	return nil, domain.ErrVenueNotFound
}

func (m *MockVenueRepository) UpdateClassification(ctx context.Context, id int64, types []domain.CategoryTag, amenities []domain.AmenityTag, verified bool) error {
	v, err := m.find(id)
	if err != nil {
		return err
	}
	v.Types, v.Amenities, v.Verified = types, amenities, verified
	return nil
}

func (m *MockVenueRepository) UpdatePhotos(ctx context.Context, id int64, photos []string) error {
	v, err := m.find(id)
	if err != nil {
		return err
	}
	v.Photos = photos
	return nil
}

func (m *MockVenueRepository) UpdateWebsite(ctx context.Context, id int64, websiteURL string) error {
	v, err := m.find(id)
	if err != nil {
		return err
	}
	v.WebsiteURL = websiteURL
	return nil
}

func (m *MockVenueRepository) Close() {}

func (m *MockVenueRepository) get(id int64) domain.Venue {
	for _, v := range m.venues {
		if v.ID == id {
			return v
		}
	}
	return domain.Venue{}
}

// MockPhotoStorage records uploads and fails for configured keys
type MockPhotoStorage struct {
	uploads  map[string][]byte
	failNext int
}

func NewMockPhotoStorage() *MockPhotoStorage {
	return &MockPhotoStorage{uploads: make(map[string][]byte)}
}

func (m *MockPhotoStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if m.failNext > 0 {
		m.failNext--
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.uploads[key] = data
	return "https://cdn.example.com/" + key, nil
}

// MockPageProber returns the first path found in pages
type MockPageProber struct {
	pages map[string]bool
	calls int
}

func (m *MockPageProber) FindSpaPage(ctx context.Context, baseURL string, paths []string) (string, error) {
	m.calls++
	for _, p := range paths {
		if m.pages[baseURL+p] {
			return baseURL + p, nil
		}
	}
	return baseURL, nil
}
