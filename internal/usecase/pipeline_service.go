package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/rules"
)

// PipelineConfig holds configuration for the pipeline service
type PipelineConfig struct {
	MinReviews           int
	NameOverlapThreshold float64
	Rules                *rules.Set
	CacheTTL             time.Duration
	QueryDelay           time.Duration
	EnableDebugLogging   bool
}

// RunRequest selects the city to scrape. Queries overrides the built query list when set.
type RunRequest struct {
	City     string   `json:"city"`
	NoFilter bool     `json:"noFilter"`
	Queries  []string `json:"queries,omitempty"`
}

// PipelineService runs search -> dedupe -> filter -> match -> build for one city
type PipelineService struct {
	searcher   domain.PlacesSearcher
	venues     domain.VenueReader
	cache      domain.CacheRepository
	cities     *CityCatalog
	queries    *QueryBuilder
	filter     *InclusionFilter
	matcher    *DedupMatcher
	records    *RecordBuilder
	cacheTTL   time.Duration
	queryDelay time.Duration
	debug      bool
	now        func() time.Time
}

// NewPipelineService creates a pipeline with dependencies. cache may be nil.
func NewPipelineService(
	searcher domain.PlacesSearcher,
	venues domain.VenueReader,
	cache domain.CacheRepository,
	cities *CityCatalog,
	config PipelineConfig,
) *PipelineService {
	set := config.Rules
	if set == nil {
		set = rules.Default()
	}
	if cities == nil {
		cities = NewCityCatalog()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &PipelineService{
		searcher: searcher,
		venues:   venues,
		cache:    cache,
		cities:   cities,
		queries:  NewQueryBuilder(nil, nil, config.EnableDebugLogging),
		filter:   NewInclusionFilter(FilterConfig{MinReviews: config.MinReviews, Rules: set}),
		matcher: NewDedupMatcher(MatchConfig{
			NameOverlapThreshold: config.NameOverlapThreshold,
			EnableDebugLogging:   config.EnableDebugLogging,
		}),
		records:    NewRecordBuilder(NewClassifier(set), NewDescriber(set)),
		cacheTTL:   cacheTTL,
		queryDelay: config.QueryDelay,
		debug:      config.EnableDebugLogging,
		now:        time.Now,
	}
}

// Run executes one pipeline pass for a city and returns the three partitions.
// Flow: build queries -> search -> dedupe by id -> filter -> load existing -> match -> build records
func (s *PipelineService) Run(ctx context.Context, req RunRequest) (*domain.RunResult, error) {
	if req.City == "" {
		return nil, fmt.Errorf("%w: city is required", domain.ErrInvalidRequest)
	}
	city, err := s.cities.Get(req.City)
	if err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		ID:          uuid.NewString(),
		CitySlug:    city.Slug,
		StartedAt:   s.now(),
		New:         []domain.NewVenue{},
		Existing:    []domain.DuplicateVenue{},
		FilteredOut: []domain.FilteredVenue{},
	}

	queries := req.Queries
	if len(queries) == 0 {
		queries = s.queries.Build(city)
	}
	result.Stats.Queries = len(queries)

	raw, failed, err := s.searchAll(ctx, queries, city)
	if err != nil {
		return nil, err
	}
	result.Stats.FailedQueries = failed
	result.Stats.RawResults = len(raw)
	if len(queries) > 0 && failed == len(queries) {
		return nil, fmt.Errorf("%w: all %d queries failed", domain.ErrSearchUnavailable, failed)
	}

	unique := DedupeByID(raw)
	result.Stats.Unique = len(unique)
	log.Printf("[PIPELINE] %s: %d raw results, %d unique", city.Slug, len(raw), len(unique))

	passed := make([]domain.RawCandidate, 0, len(unique))
	for _, c := range unique {
		if req.NoFilter {
			passed = append(passed, c)
			continue
		}
		decision := s.filter.ShouldInclude(c)
		if !decision.Include {
			result.FilteredOut = append(result.FilteredOut, domain.FilteredVenue{Candidate: c, Decision: decision})
			continue
		}
		if s.debug {
			log.Printf("[PIPELINE] keep %q (%s)", c.DisplayName, decision)
		}
		passed = append(passed, c)
	}
	result.Stats.PassedFilter = len(passed)

	existing, err := s.venues.ListByCity(ctx, city.Slug)
	if err != nil {
		return nil, fmt.Errorf("%w: loading existing venues: %v", domain.ErrStoreFailure, err)
	}

	for _, c := range passed {
		if match := s.matcher.IsDuplicate(c, existing); match != nil {
			result.Existing = append(result.Existing, domain.DuplicateVenue{Candidate: c, Match: *match})
			continue
		}
		result.New = append(result.New, domain.NewVenue{Candidate: c, Record: s.records.Build(c, city)})
	}

	result.Stats.New = len(result.New)
	result.Stats.Existing = len(result.Existing)
	result.Stats.FilteredOut = len(result.FilteredOut)

	log.Printf("[PIPELINE] %s run %s: %d new, %d existing, %d filtered out (%d/%d queries failed)",
		city.Slug, result.ID, result.Stats.New, result.Stats.Existing, result.Stats.FilteredOut,
		failed, len(queries))

	return result, nil
}

// Evaluate runs the filter and, for accepted candidates, the record builder
// on a single candidate. The record is nil when the candidate is rejected.
func (s *PipelineService) Evaluate(candidate domain.RawCandidate, citySlug string) (domain.Decision, *domain.ClassifiedVenue, error) {
	city, err := s.cities.Get(citySlug)
	if err != nil {
		return domain.Decision{}, nil, err
	}

	decision := s.filter.ShouldInclude(candidate)
	if !decision.Include {
		return decision, nil, nil
	}
	record := s.records.Build(candidate, city)
	return decision, &record, nil
}

// Cities returns the catalog the pipeline resolves slugs against
func (s *PipelineService) Cities() *CityCatalog {
	return s.cities
}

// searchAll runs every query in order, logging and counting failures
func (s *PipelineService) searchAll(ctx context.Context, queries []string, city domain.City) ([]domain.RawCandidate, int, error) {
	var raw []domain.RawCandidate
	failed := 0

	for i, query := range queries {
		select {
		case <-ctx.Done():
			return nil, failed, ctx.Err()
		default:
		}

		results, err := s.search(ctx, query, city)
		if err != nil {
			failed++
			log.Printf("[PIPELINE] query %q failed: %v", query, err)
		} else {
			if s.debug {
				log.Printf("[PIPELINE] %q -> %d results", query, len(results))
			}
			raw = append(raw, results...)
		}

		if s.queryDelay > 0 && i < len(queries)-1 {
			select {
			case <-ctx.Done():
				return nil, failed, ctx.Err()
			case <-time.After(s.queryDelay):
			}
		}
	}

	return raw, failed, nil
}

// search checks the cache before asking the provider
func (s *PipelineService) search(ctx context.Context, query string, city domain.City) ([]domain.RawCandidate, error) {
	key := searchCacheKey(city.Slug, query)

	if cached, err := s.getFromCache(ctx, key); err == nil {
		return cached, nil
	}

	results, err := s.searcher.SearchAll(ctx, query, city)
	if err != nil {
		return nil, err
	}

	if err := s.setInCache(ctx, key, results); err != nil {
		log.Printf("[PIPELINE] cache write failed for %q: %v", key, err)
	}
	return results, nil
}

// searchCacheKey format: "search:{city}:{normalized query}"
func searchCacheKey(citySlug, query string) string {
	return fmt.Sprintf("search:%s:%s", citySlug, Normalize(query))
}

func (s *PipelineService) getFromCache(ctx context.Context, key string) ([]domain.RawCandidate, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var results []domain.RawCandidate
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheMiss, err)
	}
	return results, nil
}

func (s *PipelineService) setInCache(ctx context.Context, key string, results []domain.RawCandidate) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}

// DedupeByID keeps the first candidate for each external id, preserving order.
// Candidates without an id are kept as-is.
func DedupeByID(candidates []domain.RawCandidate) []domain.RawCandidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]domain.RawCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ExternalID != "" {
			if seen[c.ExternalID] {
				continue
			}
			seen[c.ExternalID] = true
		}
		out = append(out, c)
	}
	return out
}
