package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/infrastructure/report"
	"github.com/saunafinder/backend/internal/usecase"
)

var (
	scrapeDryRun     bool
	scrapeNoFilter   bool
	scrapeWithPhotos bool
	scrapeYes        bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Search a city for sauna venues and import the new ones",
	Long: `Runs every search query for a city, drops candidates that fail the
inclusion filter or match a stored venue, and writes a CSV report of all
three partitions. Without --dry-run the new venues are inserted after
confirmation.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScrape(context.Background()); err != nil {
			log.Fatalf("Scrape failed: %v", err)
		}
	},
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "write the report without inserting")
	scrapeCmd.Flags().BoolVar(&scrapeNoFilter, "no-filter", false, "skip the inclusion filter")
	scrapeCmd.Flags().BoolVar(&scrapeWithPhotos, "with-photos", false, "upload photos for inserted venues")
	scrapeCmd.Flags().BoolVarP(&scrapeYes, "yes", "y", false, "insert without asking")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireCity(false); err != nil {
		return err
	}
	client, err := a.placesClient()
	if err != nil {
		return err
	}

	return a.withStore(ctx, func(venues domain.VenueRepository) error {
		result, err := a.pipeline(client, venues).Run(ctx, usecase.RunRequest{City: flagCity, NoFilter: scrapeNoFilter})
		if err != nil {
			return err
		}
		printRunSummary(result)

		path, err := report.SaveScrape(a.cfg.Pipeline.ReportDir, result)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", path)

		if scrapeDryRun {
			fmt.Println("Dry run, nothing inserted.")
			return nil
		}
		if len(result.New) == 0 {
			fmt.Println("No new venues to insert.")
			return nil
		}
		if !scrapeYes && !confirm(fmt.Sprintf("Insert %d new venues into %s?", len(result.New), flagCity)) {
			fmt.Println("Aborted.")
			return nil
		}

		inserted, err := usecase.NewImporter(venues, a.cfg.Pipeline.InsertBatchSize).Import(ctx, result.New)
		if err != nil {
			log.Printf("Import stopped after %d venues: %v", len(inserted), err)
		}
		fmt.Printf("Inserted %d venues.\n", len(inserted))

		if !scrapeWithPhotos || len(inserted) == 0 {
			return nil
		}
		photos, err := a.photoService(ctx, client, venues)
		if err != nil {
			return err
		}
		n, err := photos.ProcessInserted(ctx, inserted)
		if err != nil {
			return fmt.Errorf("photo upload failed: %w", err)
		}
		fmt.Printf("Uploaded photos for %d venues.\n", n)
		return nil
	})
}

func printRunSummary(result *domain.RunResult) {
	s := result.Stats
	fmt.Printf("\nRun %s (%s)\n", result.ID, result.CitySlug)
	fmt.Printf("  queries:   %d (%d failed)\n", s.Queries, s.FailedQueries)
	fmt.Printf("  results:   %d raw, %d unique, %d passed filter\n", s.RawResults, s.Unique, s.PassedFilter)
	fmt.Printf("  new:       %d\n", s.New)
	fmt.Printf("  existing:  %d\n", s.Existing)
	fmt.Printf("  filtered:  %d\n\n", s.FilteredOut)

	for _, v := range result.New {
		fmt.Printf("  + %s (%s)\n", v.Record.Name, v.Record.Neighborhood)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
