package usecase

import (
	"context"
	"log"
	"regexp"
	"slices"
	"time"

	"github.com/saunafinder/backend/internal/domain"
)

// Spa sub-page paths probed for hotels and gyms, in order
var (
	HotelSpaPaths = []string{"/spa", "/wellness", "/spa-wellness", "/amenities/spa", "/amenities", "/wellness-spa", "/the-spa", "/spa-fitness"}
	GymSpaPaths   = []string{"/sauna", "/spa", "/amenities", "/facilities", "/wellness"}
)

var (
	hotelNameRegex = regexp.MustCompile(`(?i)hotel|resort`)
	gymNameRegex   = regexp.MustCompile(`(?i)gym|fitness|climbing|boulders|ymca|equinox|life\s*time|tmpl`)
)

// WebsiteOptions selects venues for the website finder
type WebsiteOptions struct {
	CitySlug string
	DryRun   bool
}

// WebsiteSummary counts the outcome of a website finder run
type WebsiteSummary struct {
	Updated int
	Skipped int
	Errors  int
	Changes []domain.EnrichChange
}

// WebsiteFinder fills missing venue websites and points hotels and gyms at their spa page
type WebsiteFinder struct {
	venues     domain.VenueRepository
	places     domain.PlacesClient
	prober     domain.PageProber
	fetchDelay time.Duration
}

// NewWebsiteFinder creates a website finder with dependencies
func NewWebsiteFinder(venues domain.VenueRepository, places domain.PlacesClient, prober domain.PageProber, fetchDelay time.Duration) *WebsiteFinder {
	return &WebsiteFinder{venues: venues, places: places, prober: prober, fetchDelay: fetchDelay}
}

// Run first fetches websites for venues that have none, then looks for spa
// pages on hotels and gyms that already have one.
func (w *WebsiteFinder) Run(ctx context.Context, opts WebsiteOptions) (*WebsiteSummary, error) {
	venues, err := w.venues.List(ctx, domain.VenueFilter{CitySlug: opts.CitySlug})
	if err != nil {
		return nil, err
	}

	summary := &WebsiteSummary{}
	for _, v := range venues {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		switch {
		case v.WebsiteURL == "" && v.ExternalID != "":
			w.fetchMissing(ctx, v, opts, summary)
		case v.WebsiteURL != "" && spaPaths(v) != nil:
			w.refineExisting(ctx, v, opts, summary)
		}
	}

	log.Printf("[WEBSITE] updated %d, skipped %d, errors %d", summary.Updated, summary.Skipped, summary.Errors)
	return summary, nil
}

func (w *WebsiteFinder) fetchMissing(ctx context.Context, v domain.Venue, opts WebsiteOptions, summary *WebsiteSummary) {
	place, err := w.places.GetPlace(ctx, v.ExternalID, "websiteUri")
	if w.fetchDelay > 0 {
		time.Sleep(w.fetchDelay)
	}
	if err != nil {
		log.Printf("[WEBSITE] %s: %v", v.Name, err)
		summary.Errors++
		return
	}
	if place.WebsiteURL == "" {
		log.Printf("[WEBSITE] %s: no website found", v.Name)
		summary.Skipped++
		return
	}

	url := w.FindSpaPage(ctx, place.WebsiteURL, v)
	w.save(ctx, v, url, opts, summary)
}

func (w *WebsiteFinder) refineExisting(ctx context.Context, v domain.Venue, opts WebsiteOptions, summary *WebsiteSummary) {
	url := w.FindSpaPage(ctx, v.WebsiteURL, v)
	if url == v.WebsiteURL {
		log.Printf("[WEBSITE] %s: no spa page found, keeping base URL", v.Name)
		summary.Skipped++
		return
	}
	w.save(ctx, v, url, opts, summary)
}

func (w *WebsiteFinder) save(ctx context.Context, v domain.Venue, url string, opts WebsiteOptions, summary *WebsiteSummary) {
	if !opts.DryRun {
		if err := w.venues.UpdateWebsite(ctx, v.ID, url); err != nil {
			log.Printf("[WEBSITE] %s: %v", v.Name, err)
			summary.Errors++
			return
		}
	}
	log.Printf("[WEBSITE] %s: %q -> %q", v.Name, v.WebsiteURL, url)
	summary.Updated++
	summary.Changes = append(summary.Changes, domain.EnrichChange{
		ID: v.ID, Name: v.Name, Field: "website_url",
		Before: nonEmpty(v.WebsiteURL), After: nonEmpty(url),
		Status: StatusChanged,
	})
}

// FindSpaPage returns the spa sub-page for hotels and gyms, or baseURL when
// the venue is neither or no page answers.
func (w *WebsiteFinder) FindSpaPage(ctx context.Context, baseURL string, v domain.Venue) string {
	paths := spaPaths(v)
	if paths == nil {
		return baseURL
	}
	found, err := w.prober.FindSpaPage(ctx, baseURL, paths)
	if err != nil || found == "" {
		return baseURL
	}
	return found
}

// spaPaths returns the sub-pages to probe, or nil when the venue is neither a hotel nor a gym
func spaPaths(v domain.Venue) []string {
	if slices.Contains(v.Types, domain.TagHotelSpa) || slices.Contains(v.Types, "Resort") || hotelNameRegex.MatchString(v.Name) {
		return HotelSpaPaths
	}
	if slices.Contains(v.Types, domain.TagGymSauna) || gymNameRegex.MatchString(v.Name) {
		return GymSpaPaths
	}
	return nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
