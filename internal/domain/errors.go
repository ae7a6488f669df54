package domain

import "errors"

var (
	// ErrPlaceNotFound is returned when the provider has no record for a place id
	ErrPlaceNotFound = errors.New("place not found")

	// ErrPlacesAPIFailure is returned when a places provider request fails
	ErrPlacesAPIFailure = errors.New("places API request failed")

	// ErrSearchUnavailable is returned when every search query of a run failed
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrUnknownCity is returned for a city slug with no configuration
	ErrUnknownCity = errors.New("unknown city")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrStoreFailure is returned when the venue store cannot be read or written
	ErrStoreFailure = errors.New("venue store failure")

	// ErrVenueNotFound is returned when a venue id is not in the store
	ErrVenueNotFound = errors.New("venue not found")

	// ErrPhotoUpload is returned when photo storage rejects an upload
	ErrPhotoUpload = errors.New("photo upload failed")

	// ErrInvalidRules is returned when a rule table cannot be compiled
	ErrInvalidRules = errors.New("invalid rule table")
)
