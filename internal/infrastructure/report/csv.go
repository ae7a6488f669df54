package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

// Report kinds, used in file names
const (
	KindScrape   = "scrape"
	KindEnrich   = "enrich"
	KindWebsites = "websites"
)

// Scrape statuses
const (
	StatusNew      = "NEW"
	StatusExists   = "EXISTS"
	StatusFiltered = "FILTERED"
)

var scrapeHeader = []string{
	"status", "name", "address", "rating", "reviews", "types", "amenities",
	"neighborhood", "website", "place_id", "description", "reason",
}

var enrichHeader = []string{"id", "name", "field", "before", "after", "status"}

const listSep = "; "

// WriteScrape writes one row per candidate: new venues first, then matches, then filtered
func WriteScrape(w io.Writer, result *domain.RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scrapeHeader); err != nil {
		return err
	}

	for _, n := range result.New {
		c, r := n.Candidate, n.Record
		row := []string{
			StatusNew, c.DisplayName, c.FormattedAddress, rating(c.Rating), reviews(c.ReviewCount),
			joinTags(r.Types), joinAmenities(r.Amenities), r.Neighborhood, r.WebsiteURL, c.ExternalID, r.Description, "",
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	for _, d := range result.Existing {
		c := d.Candidate
		row := []string{
			StatusExists, c.DisplayName, c.FormattedAddress, rating(c.Rating), reviews(c.ReviewCount),
			"", "", "", c.WebsiteURL, c.ExternalID, "", "matched: " + d.Match.Name,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	for _, f := range result.FilteredOut {
		c := f.Candidate
		row := []string{
			StatusFiltered, c.DisplayName, c.FormattedAddress, rating(c.Rating), reviews(c.ReviewCount),
			"", "", "", c.WebsiteURL, c.ExternalID, "", f.Decision.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteChanges writes enricher or website finder change rows
func WriteChanges(w io.Writer, changes []domain.EnrichChange) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(enrichHeader); err != nil {
		return err
	}
	for _, ch := range changes {
		row := []string{
			strconv.FormatInt(ch.ID, 10), ch.Name, ch.Field,
			strings.Join(ch.Before, listSep), strings.Join(ch.After, listSep), ch.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName returns "<kind>-report-<city>-<runID>.csv"; an empty city becomes "all"
func FileName(kind, citySlug, runID string) string {
	if citySlug == "" {
		citySlug = "all"
	}
	return fmt.Sprintf("%s-report-%s-%s.csv", kind, citySlug, runID)
}

// SaveScrape writes the scrape report into dir and returns its path
func SaveScrape(dir string, result *domain.RunResult) (string, error) {
	return save(dir, FileName(KindScrape, result.CitySlug, result.ID), func(w io.Writer) error {
		return WriteScrape(w, result)
	})
}

// SaveChanges writes a change report of the given kind into dir and returns its path
func SaveChanges(dir, kind, citySlug, runID string, changes []domain.EnrichChange) (string, error) {
	return save(dir, FileName(kind, citySlug, runID), func(w io.Writer) error {
		return WriteChanges(w, changes)
	})
}

func save(dir, name string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

func rating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func reviews(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func joinTags(tags []domain.CategoryTag) string {
	s := make([]string, len(tags))
	for i, t := range tags {
		s[i] = string(t)
	}
	return strings.Join(s, listSep)
}

func joinAmenities(tags []domain.AmenityTag) string {
	s := make([]string, len(tags))
	for i, t := range tags {
		s[i] = string(t)
	}
	return strings.Join(s, listSep)
}
