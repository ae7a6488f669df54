package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFiles are loaded in order; earlier files win because godotenv never overrides
var envFiles = []string{".env.local", ".env"}

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Places    PlacesConfig    `mapstructure:"places"`
	Store     StoreConfig     `mapstructure:"store"`
	Photos    PhotosConfig    `mapstructure:"photos"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PlacesConfig holds Google Places API configuration
type PlacesConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
	PageDelay         time.Duration `mapstructure:"page_delay"`
	QueryDelay        time.Duration `mapstructure:"query_delay"`
	MaxResultCount    int           `mapstructure:"max_result_count"`
	MaxPages          int           `mapstructure:"max_pages"`
}

// StoreConfig selects the venue store
type StoreConfig struct {
	Driver      string `mapstructure:"driver"` // "postgres" or "sqlite"
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`
}

// PhotosConfig holds the photo bucket and download settings
type PhotosConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Region        string        `mapstructure:"region"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	Bucket        string        `mapstructure:"bucket"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	MaxPerVenue   int           `mapstructure:"max_per_venue"`
	MaxHeightPx   int           `mapstructure:"max_height_px"`
	VenueDelay    time.Duration `mapstructure:"venue_delay"`
}

// PipelineConfig holds classification and run settings
type PipelineConfig struct {
	MinReviews           int           `mapstructure:"min_reviews"`
	NameOverlapThreshold float64       `mapstructure:"name_overlap_threshold"`
	InsertBatchSize      int           `mapstructure:"insert_batch_size"`
	RulesFile            string        `mapstructure:"rules_file"`
	ReportDir            string        `mapstructure:"report_dir"`
	FetchDelay           time.Duration `mapstructure:"fetch_delay"`
	EnableDebugLogging   bool          `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// Load loads configuration from .env files, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/saunafinder/")

	v.SetEnvPrefix("SAUNAFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindLegacyEnv(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env.local and .env into the process environment when present.
// Variables already set are left alone.
func loadEnvFile() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// bindLegacyEnv accepts the variable names the original scripts used
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("places.api_key", "SAUNAFINDER_PLACES_API_KEY", "GOOGLE_PLACES_API_KEY")
	_ = v.BindEnv("store.database_url", "SAUNAFINDER_STORE_DATABASE_URL", "DATABASE_URL")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "https://*.saunafinder.app"})

	v.SetDefault("places.api_key", "")
	v.SetDefault("places.base_url", "https://places.googleapis.com")
	v.SetDefault("places.requests_per_second", 5.0)
	v.SetDefault("places.burst", 5)
	v.SetDefault("places.timeout", "30s")
	v.SetDefault("places.page_delay", "300ms")
	v.SetDefault("places.query_delay", "200ms")
	v.SetDefault("places.max_result_count", 20)
	v.SetDefault("places.max_pages", 3)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.sqlite_path", "saunafinder.db")

	v.SetDefault("photos.endpoint", "")
	v.SetDefault("photos.region", "auto")
	v.SetDefault("photos.access_key", "")
	v.SetDefault("photos.secret_key", "")
	v.SetDefault("photos.bucket", "sauna-photos")
	v.SetDefault("photos.public_base_url", "")
	v.SetDefault("photos.max_per_venue", 5)
	v.SetDefault("photos.max_height_px", 600)
	v.SetDefault("photos.venue_delay", "200ms")

	v.SetDefault("pipeline.min_reviews", 10)
	v.SetDefault("pipeline.name_overlap_threshold", 0.7)
	v.SetDefault("pipeline.insert_batch_size", 25)
	v.SetDefault("pipeline.rules_file", "")
	v.SetDefault("pipeline.report_dir", "reports")
	v.SetDefault("pipeline.fetch_delay", "100ms")
	v.SetDefault("pipeline.enable_debug_logging", false)

	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Store.Driver {
	case "postgres":
		if config.Store.DatabaseURL == "" {
			return fmt.Errorf("database URL is required when store driver is 'postgres' (set SAUNAFINDER_STORE_DATABASE_URL)")
		}
	case "sqlite":
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required when store driver is 'sqlite'")
		}
	default:
		return fmt.Errorf("store driver must be 'postgres' or 'sqlite', got: %s", config.Store.Driver)
	}

	if t := config.Pipeline.NameOverlapThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("name overlap threshold must be in (0, 1], got: %v", t)
	}
	if config.Pipeline.MinReviews < 0 {
		return fmt.Errorf("min reviews must not be negative, got: %d", config.Pipeline.MinReviews)
	}
	if config.Places.RequestsPerSecond <= 0 {
		return fmt.Errorf("places requests per second must be positive, got: %v", config.Places.RequestsPerSecond)
	}

	return nil
}

// RequirePlaces reports an error when the Places API key is missing.
// Only commands that call the provider need it.
func (c *Config) RequirePlaces() error {
	if c.Places.APIKey == "" {
		return fmt.Errorf("places API key is required (set SAUNAFINDER_PLACES_API_KEY or GOOGLE_PLACES_API_KEY)")
	}
	return nil
}

// RequirePhotos reports an error when the photo bucket is not configured
func (c *Config) RequirePhotos() error {
	if c.Photos.Endpoint == "" || c.Photos.AccessKey == "" || c.Photos.SecretKey == "" {
		return fmt.Errorf("photo storage requires endpoint, access key and secret key (SAUNAFINDER_PHOTOS_*)")
	}
	return nil
}
