package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saunafinder/backend/internal/domain"
)

// PostgresStore is the venue repository backed by Postgres (Supabase)
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore opens a pool, pings it and ensures the schema
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, storeErr("parse database url", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, storeErr("connect", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, storeErr("ping", err)
	}
	log.Println("[STORE] Connected to Postgres")

	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, storeErr("init schema", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS saunas (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			neighborhood TEXT,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			rating DOUBLE PRECISION,
			rating_count INTEGER,
			price TEXT,
			types TEXT[] NOT NULL DEFAULT '{}',
			amenities TEXT[] NOT NULL DEFAULT '{}',
			hours TEXT,
			place_id TEXT,
			description TEXT,
			city_slug TEXT NOT NULL,
			photos TEXT[],
			website_url TEXT,
			verified BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_saunas_city_slug ON saunas(city_slug)`); err != nil {
		return err
	}
	return nil
}

// ListByCity returns the dedup snapshot for a city
func (s *PostgresStore) ListByCity(ctx context.Context, citySlug string) ([]domain.ExistingVenue, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, address, COALESCE(place_id, '') FROM saunas WHERE city_slug = $1 ORDER BY id`,
		citySlug)
	if err != nil {
		return nil, storeErr("list by city", err)
	}
	defer rows.Close()

	venues := []domain.ExistingVenue{}
	for rows.Next() {
		var v domain.ExistingVenue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.ExternalID); err != nil {
			return nil, storeErr("scan venue", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list by city", err)
	}
	return venues, nil
}

// InsertBatch inserts records in one transaction; either all rows land or none do
func (s *PostgresStore) InsertBatch(ctx context.Context, records []domain.ClassifiedVenue) ([]domain.Venue, error) {
	if len(records) == 0 {
		return []domain.Venue{}, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeErr("begin insert", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO saunas (
			name, address, neighborhood, lat, lng, rating, rating_count, price,
			types, amenities, hours, place_id, description, city_slug, website_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(query,
			r.Name, r.Address, nullable(r.Neighborhood), r.Lat, r.Lng, r.Rating, r.ReviewCount, nullable(r.Price),
			tagStrings(r.Types), amenityStrings(r.Amenities), nullable(r.Hours), nullable(r.ExternalID),
			nullable(r.Description), r.CitySlug, nullable(r.WebsiteURL),
		)
	}

	results := tx.SendBatch(ctx, batch)
	venues := make([]domain.Venue, len(records))
	for i, r := range records {
		venues[i].ClassifiedVenue = r
		if err := results.QueryRow().Scan(&venues[i].ID, &venues[i].CreatedAt); err != nil {
			results.Close()
			return nil, storeErr(fmt.Sprintf("insert %q", r.Name), err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, storeErr("insert batch", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit insert", err)
	}
	return venues, nil
}

// List returns full venue records matching filter
func (s *PostgresStore) List(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error) {
	where, args := whereClause(filter, "(photos IS NULL OR cardinality(photos) = 0)", func(n int) string {
		return fmt.Sprintf("$%d", n)
	})

	rows, err := s.db.Query(ctx, `SELECT `+venueColumns+` FROM saunas`+where, args...)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		v, err := scanPostgresVenue(rows)
		if err != nil {
			return nil, storeErr("scan venue", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	return venues, nil
}

func scanPostgresVenue(rows pgx.Rows) (domain.Venue, error) {
	var (
		v                                                   domain.Venue
		neighborhood, price, hours, placeID, desc, website *string
		types, amenities, photos                            []string
	)
	err := rows.Scan(
		&v.ID, &v.Name, &v.Address, &neighborhood, &v.Lat, &v.Lng, &v.Rating, &v.ReviewCount, &price,
		&types, &amenities, &hours, &placeID, &desc, &v.CitySlug, &photos, &website, &v.Verified, &v.CreatedAt,
	)
	if err != nil {
		return v, err
	}
	v.Neighborhood = deref(neighborhood)
	v.Price = deref(price)
	v.Hours = deref(hours)
	v.ExternalID = deref(placeID)
	v.Description = deref(desc)
	v.WebsiteURL = deref(website)
	v.Types = toTags(types)
	v.Amenities = toAmenities(amenities)
	v.Photos = photos
	return v, nil
}

// UpdateClassification rewrites types, amenities and the verified flag
func (s *PostgresStore) UpdateClassification(ctx context.Context, id int64, types []domain.CategoryTag, amenities []domain.AmenityTag, verified bool) error {
	return s.exec(ctx, "update classification",
		`UPDATE saunas SET types = $2, amenities = $3, verified = $4 WHERE id = $1`,
		id, tagStrings(types), amenityStrings(amenities), verified)
}

// UpdatePhotos replaces the photo URL list
func (s *PostgresStore) UpdatePhotos(ctx context.Context, id int64, photos []string) error {
	return s.exec(ctx, "update photos", `UPDATE saunas SET photos = $2 WHERE id = $1`, id, photos)
}

// UpdateWebsite sets the website URL
func (s *PostgresStore) UpdateWebsite(ctx context.Context, id int64, websiteURL string) error {
	return s.exec(ctx, "update website", `UPDATE saunas SET website_url = $2 WHERE id = $1`, id, nullable(websiteURL))
}

func (s *PostgresStore) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return storeErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// Close releases the pool
func (s *PostgresStore) Close() {
	s.db.Close()
}
