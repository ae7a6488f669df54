package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/saunafinder/backend/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a file-backed venue repository for local runs.
// List columns (types, amenities, photos) are stored as JSON text.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database file and ensures the schema
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeErr("open sqlite", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, storeErr("init schema", err)
	}
	log.Printf("[STORE] Opened SQLite store at %s", path)
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS saunas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			neighborhood TEXT,
			lat REAL,
			lng REAL,
			rating REAL,
			rating_count INTEGER,
			price TEXT,
			types TEXT NOT NULL DEFAULT '[]',
			amenities TEXT NOT NULL DEFAULT '[]',
			hours TEXT,
			place_id TEXT,
			description TEXT,
			city_slug TEXT NOT NULL,
			photos TEXT,
			website_url TEXT,
			verified INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saunas_city_slug ON saunas(city_slug)`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListByCity returns the dedup snapshot for a city
func (s *SQLiteStore) ListByCity(ctx context.Context, citySlug string) ([]domain.ExistingVenue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, COALESCE(place_id, '') FROM saunas WHERE city_slug = ? ORDER BY id`,
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
func (s *SQLiteStore) InsertBatch(ctx context.Context, records []domain.ClassifiedVenue) ([]domain.Venue, error) {
	if len(records) == 0 {
		return []domain.Venue{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin insert", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO saunas (
			name, address, neighborhood, lat, lng, rating, rating_count, price,
			types, amenities, hours, place_id, description, city_slug, website_url, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, storeErr("prepare insert", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()
	venues := make([]domain.Venue, len(records))
	for i, r := range records {
		types, err := jsonList(tagStrings(r.Types))
		if err != nil {
			return nil, storeErr("encode types", err)
		}
		amenities, err := jsonList(amenityStrings(r.Amenities))
		if err != nil {
			return nil, storeErr("encode amenities", err)
		}

		res, err := stmt.ExecContext(ctx,
			r.Name, r.Address, nullable(r.Neighborhood), r.Lat, r.Lng, r.Rating, r.ReviewCount, nullable(r.Price),
			types, amenities, nullable(r.Hours), nullable(r.ExternalID), nullable(r.Description), r.CitySlug,
			nullable(r.WebsiteURL), createdAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, storeErr(fmt.Sprintf("insert %q", r.Name), err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, storeErr("last insert id", err)
		}
		venues[i] = domain.Venue{ID: id, ClassifiedVenue: r, CreatedAt: createdAt}
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("commit insert", err)
	}
	return venues, nil
}

// List returns full venue records matching filter
func (s *SQLiteStore) List(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error) {
	where, args := whereClause(filter, "(photos IS NULL OR photos = '' OR photos = '[]')", func(int) string { return "?" })

	rows, err := s.db.QueryContext(ctx, `SELECT `+venueColumns+` FROM saunas`+where, args...)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		v, err := scanSQLiteVenue(rows)
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

func scanSQLiteVenue(rows *sql.Rows) (domain.Venue, error) {
	var (
		v                                                   domain.Venue
		neighborhood, price, hours, placeID, desc, website *string
		photos                                              *string
		types, amenities, createdAt                         string
	)
	err := rows.Scan(
		&v.ID, &v.Name, &v.Address, &neighborhood, &v.Lat, &v.Lng, &v.Rating, &v.ReviewCount, &price,
		&types, &amenities, &hours, &placeID, &desc, &v.CitySlug, &photos, &website, &v.Verified, &createdAt,
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

	var list []string
	if err := json.Unmarshal([]byte(types), &list); err != nil {
		return v, fmt.Errorf("decode types: %w", err)
	}
	v.Types = toTags(list)
	list = nil
	if err := json.Unmarshal([]byte(amenities), &list); err != nil {
		return v, fmt.Errorf("decode amenities: %w", err)
	}
	v.Amenities = toAmenities(list)
	if photos != nil && *photos != "" {
		if err := json.Unmarshal([]byte(*photos), &v.Photos); err != nil {
			return v, fmt.Errorf("decode photos: %w", err)
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		v.CreatedAt = t
	}
	return v, nil
}

// UpdateClassification rewrites types, amenities and the verified flag
func (s *SQLiteStore) UpdateClassification(ctx context.Context, id int64, types []domain.CategoryTag, amenities []domain.AmenityTag, verified bool) error {
	t, err := jsonList(tagStrings(types))
	if err != nil {
		return storeErr("encode types", err)
	}
	a, err := jsonList(amenityStrings(amenities))
	if err != nil {
		return storeErr("encode amenities", err)
	}
	return s.exec(ctx, "update classification",
		`UPDATE saunas SET types = ?, amenities = ?, verified = ? WHERE id = ?`, t, a, verified, id)
}

// UpdatePhotos replaces the photo URL list
func (s *SQLiteStore) UpdatePhotos(ctx context.Context, id int64, photos []string) error {
	p, err := jsonList(photos)
	if err != nil {
		return storeErr("encode photos", err)
	}
	return s.exec(ctx, "update photos", `UPDATE saunas SET photos = ? WHERE id = ?`, p, id)
}

// UpdateWebsite sets the website URL
func (s *SQLiteStore) UpdateWebsite(ctx context.Context, id int64, websiteURL string) error {
	return s.exec(ctx, "update website", `UPDATE saunas SET website_url = ? WHERE id = ?`, nullable(websiteURL), id)
}

func (s *SQLiteStore) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Printf("[STORE] Close error: %v", err)
	}
}

func jsonList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
