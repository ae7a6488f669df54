package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/saunafinder/backend/config"
	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/infrastructure/cache"
	"github.com/saunafinder/backend/internal/infrastructure/places"
	"github.com/saunafinder/backend/internal/infrastructure/storage"
	"github.com/saunafinder/backend/internal/infrastructure/store"
	"github.com/saunafinder/backend/internal/rules"
	"github.com/saunafinder/backend/internal/usecase"
)

var (
	flagCity  string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "saunafinder",
	Short: "Discover, classify and enrich sauna venues",
	Long: `Batch jobs for the Sauna Finder venue database.

Examples:
  saunafinder scrape --city=nyc --dry-run
  saunafinder scrape --city=sf --with-photos --yes
  saunafinder enrich --city=nyc --refetch
  saunafinder websites --dry-run
  saunafinder photos --city=la --limit=20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCity, "city", "", "city slug (see 'saunafinder cities')")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose logging")
}

// app bundles the dependencies the commands share
type app struct {
	cfg    *config.Config
	rules  *rules.Set
	cities *usecase.CityCatalog
	debug  bool

	openVenues func(ctx context.Context) (domain.VenueRepository, error)
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	set := rules.Default()
	if cfg.Pipeline.RulesFile != "" {
		set, err = rules.Load(cfg.Pipeline.RulesFile)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded rule tables from %s", cfg.Pipeline.RulesFile)
	}

	a := &app{
		cfg:    cfg,
		rules:  set,
		cities: usecase.NewCityCatalog(),
		debug:  flagDebug || cfg.Pipeline.EnableDebugLogging,
	}
	a.openVenues = a.openStore
	return a, nil
}

// requireCity validates --city, optionally allowing it to be empty
func (a *app) requireCity(optional bool) error {
	if flagCity == "" {
		if optional {
			return nil
		}
		return fmt.Errorf("--city is required (one of: %v)", a.cities.Slugs())
	}
	if _, err := a.cities.Get(flagCity); err != nil {
		return fmt.Errorf("%w (one of: %v)", err, a.cities.Slugs())
	}
	return nil
}

func (a *app) placesClient() (*places.Client, error) {
	if err := a.cfg.RequirePlaces(); err != nil {
		return nil, err
	}
	p := a.cfg.Places
	client := places.NewClient(p.APIKey, p.BaseURL, places.ClientConfig{
		RequestsPerSecond: p.RequestsPerSecond,
		Burst:             p.Burst,
		Timeout:           p.Timeout,
		PageDelay:         p.PageDelay,
		MaxResultCount:    p.MaxResultCount,
		MaxPages:          p.MaxPages,
	})
	client.SetDebug(a.debug)
	return client, nil
}

func (a *app) openStore(ctx context.Context) (domain.VenueRepository, error) {
	return store.Open(ctx, store.Config{
		Driver:      a.cfg.Store.Driver,
		DatabaseURL: a.cfg.Store.DatabaseURL,
		SQLitePath:  a.cfg.Store.SQLitePath,
	})
}

// withStore opens the venue store, runs fn and closes the store before returning
func (a *app) withStore(ctx context.Context, fn func(venues domain.VenueRepository) error) error {
	venues, err := a.openVenues(ctx)
	if err != nil {
		return err
	}
	defer venues.Close()

	return fn(venues)
}

func (a *app) photoStorage(ctx context.Context) (*storage.S3Storage, error) {
	if err := a.cfg.RequirePhotos(); err != nil {
		return nil, err
	}
	ph := a.cfg.Photos
	return storage.NewS3Storage(ctx, storage.S3Config{
		Endpoint:      ph.Endpoint,
		Region:        ph.Region,
		AccessKey:     ph.AccessKey,
		SecretKey:     ph.SecretKey,
		Bucket:        ph.Bucket,
		PublicBaseURL: ph.PublicBaseURL,
	})
}

func (a *app) photoService(ctx context.Context, client domain.PlacesClient, venues domain.VenueRepository) (*usecase.PhotoService, error) {
	bucket, err := a.photoStorage(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewPhotoService(client, bucket, venues, usecase.PhotoConfig{
		MaxPerVenue: a.cfg.Photos.MaxPerVenue,
		MaxHeightPx: a.cfg.Photos.MaxHeightPx,
		VenueDelay:  a.cfg.Photos.VenueDelay,
	}), nil
}

func (a *app) pipeline(searcher domain.PlacesSearcher, venues domain.VenueReader) *usecase.PipelineService {
	memoryCache := cache.NewMemoryCache(0)
	return usecase.NewPipelineService(searcher, venues, memoryCache, a.cities, usecase.PipelineConfig{
		MinReviews:           a.cfg.Pipeline.MinReviews,
		NameOverlapThreshold: a.cfg.Pipeline.NameOverlapThreshold,
		Rules:                a.rules,
		CacheTTL:             a.cfg.Cache.TTL,
		QueryDelay:           a.cfg.Places.QueryDelay,
		EnableDebugLogging:   a.debug,
	})
}
