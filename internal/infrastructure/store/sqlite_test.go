package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "venues.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSQLiteStore(t *testing.T) {
	testRepository(t, newSQLiteTestStore(t))
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "venues.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	_, err = s.InsertBatch(ctx, []domain.ClassifiedVenue{{Name: "Banya", Address: "1 St", CitySlug: "nyc"}})
	require.NoError(t, err)
	s.Close()

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	existing, err := s.ListByCity(ctx, "nyc")
	require.NoError(t, err)
	require.Len(t, existing, 1)
	assert.Equal(t, "Banya", existing[0].Name)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite driver", func(t *testing.T) {
		repo, err := Open(ctx, Config{Driver: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "v.db")})
		require.NoError(t, err)
		defer repo.Close()
		_, ok := repo.(*SQLiteStore)
		assert.True(t, ok)
	})

	t.Run("postgres requires a url", func(t *testing.T) {
		repo, err := Open(ctx, Config{Driver: "postgres"})
		assert.Nil(t, repo)
		assert.ErrorIs(t, err, domain.ErrStoreFailure)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, Config{Driver: "mongo"})
		assert.ErrorIs(t, err, domain.ErrStoreFailure)
	})
}

func TestWhereClause(t *testing.T) {
	dollar := func(n int) string { return "$" + string(rune('0'+n)) }

	where, args := whereClause(domain.VenueFilter{CitySlug: "nyc", WithoutPhotos: true, Limit: 5}, "NOPHOTOS", dollar)

	assert.Equal(t, " WHERE city_slug = $1 AND NOPHOTOS ORDER BY id LIMIT $2", where)
	assert.Equal(t, []any{"nyc", 5}, args)

	where, args = whereClause(domain.VenueFilter{}, "NOPHOTOS", dollar)
	assert.Equal(t, " ORDER BY id", where)
	assert.Empty(t, args)
}
