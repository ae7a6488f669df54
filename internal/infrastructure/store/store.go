package store

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and configures the venue store
type Config struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// Open connects to the configured store and makes sure the venue table exists
func Open(ctx context.Context, cfg Config) (domain.VenueRepository, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverPostgres
	}

	switch driver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("%w: database url is required for the postgres store", domain.ErrStoreFailure)
		}
		s, err := NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "saunafinder.db"
		}
		s, err := NewSQLiteStore(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", domain.ErrStoreFailure, cfg.Driver)
	}
}

// venueColumns is the column list shared by both stores' SELECTs
const venueColumns = `id, name, address, neighborhood, lat, lng, rating, rating_count, price,
	types, amenities, hours, place_id, description, city_slug, photos, website_url, verified, created_at`

func storeErr(op string, err error) error {
	log.Printf("[STORE] %s failed: %v", op, err)
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreFailure, op, err)
}

func tagStrings(tags []domain.CategoryTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func amenityStrings(tags []domain.AmenityTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func toTags(in []string) []domain.CategoryTag {
	out := make([]domain.CategoryTag, len(in))
	for i, s := range in {
		out[i] = domain.CategoryTag(s)
	}
	return out
}

func toAmenities(in []string) []domain.AmenityTag {
	out := make([]domain.AmenityTag, len(in))
	for i, s := range in {
		out[i] = domain.AmenityTag(s)
	}
	return out
}

// nullable maps an empty string to NULL
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// whereClause builds the filter conditions; placeholder renders the nth bind parameter
func whereClause(f domain.VenueFilter, noPhotos string, placeholder func(int) string) (string, []any) {
	var conds []string
	var args []any
	if f.CitySlug != "" {
		args = append(args, f.CitySlug)
		conds = append(conds, "city_slug = "+placeholder(len(args)))
	}
	if f.WithoutPhotos {
		conds = append(conds, noPhotos)
	}
	if f.UnverifiedOnly {
		conds = append(conds, "(verified IS NULL OR verified = false)")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		where += " ORDER BY id LIMIT " + placeholder(len(args))
	} else {
		where += " ORDER BY id"
	}
	return where, args
}
