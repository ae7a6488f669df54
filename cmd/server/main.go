package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/saunafinder/backend/config"
	httpDelivery "github.com/saunafinder/backend/internal/delivery/http"
	"github.com/saunafinder/backend/internal/infrastructure/cache"
	"github.com/saunafinder/backend/internal/infrastructure/places"
	"github.com/saunafinder/backend/internal/infrastructure/store"
	"github.com/saunafinder/backend/internal/rules"
	"github.com/saunafinder/backend/internal/usecase"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Sauna Finder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store: %s", cfg.Store.Driver)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(0)
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	venues, err := store.Open(ctx, store.Config{
		Driver:      cfg.Store.Driver,
		DatabaseURL: cfg.Store.DatabaseURL,
		SQLitePath:  cfg.Store.SQLitePath,
	})
	if err != nil {
		log.Fatalf("Failed to open venue store: %v", err)
	}
	defer venues.Close()

	placesClient := places.NewClient(cfg.Places.APIKey, cfg.Places.BaseURL, places.ClientConfig{
		RequestsPerSecond: cfg.Places.RequestsPerSecond,
		Burst:             cfg.Places.Burst,
		Timeout:           cfg.Places.Timeout,
		PageDelay:         cfg.Places.PageDelay,
		MaxResultCount:    cfg.Places.MaxResultCount,
		MaxPages:          cfg.Places.MaxPages,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		placesClient.SetDebug(true)
		log.Printf("Places client debug mode enabled")
	}

	if len(cfg.Places.APIKey) >= 8 {
		log.Printf("Places API configured: %s (key: %s...)", cfg.Places.BaseURL, cfg.Places.APIKey[:8])
	} else {
		log.Printf("WARNING: Places API configured: %s (key: NOT CONFIGURED - pipeline runs will fail!)", cfg.Places.BaseURL)
	}

	set := rules.Default()
	if cfg.Pipeline.RulesFile != "" {
		set, err = rules.Load(cfg.Pipeline.RulesFile)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
		log.Printf("Rules loaded from %s", cfg.Pipeline.RulesFile)
	}

	// Initialize usecase layer
	pipeline := usecase.NewPipelineService(
		placesClient,
		venues,
		memoryCache,
		usecase.NewCityCatalog(),
		usecase.PipelineConfig{
			MinReviews:           cfg.Pipeline.MinReviews,
			NameOverlapThreshold: cfg.Pipeline.NameOverlapThreshold,
			Rules:                set,
			CacheTTL:             cfg.Cache.TTL,
			QueryDelay:           cfg.Places.QueryDelay,
			EnableDebugLogging:   cfg.Pipeline.EnableDebugLogging,
		},
	)

	log.Printf("Pipeline: min_reviews=%d, name_overlap=%.2f, debug=%v",
		cfg.Pipeline.MinReviews,
		cfg.Pipeline.NameOverlapThreshold,
		cfg.Pipeline.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pipeline, venues)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
