package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/infrastructure/report"
	"github.com/saunafinder/backend/internal/usecase"
)

var (
	enrichDryRun  bool
	enrichRefetch bool
	enrichLimit   int
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Re-run amenity and category detection on stored venues",
	Long: `Scans stored venues and adds amenity and category tags the current
rule tables detect but the venue is missing. With --refetch the description
and reviews are fetched again from the places API first.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEnrich(context.Background()); err != nil {
			log.Fatalf("Enrich failed: %v", err)
		}
	},
}

func init() {
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "report changes without updating")
	enrichCmd.Flags().BoolVar(&enrichRefetch, "refetch", false, "fetch description and reviews from the places API")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "maximum venues to process (0 = all)")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireCity(true); err != nil {
		return err
	}
	client, err := a.placesClient()
	if err != nil {
		return err
	}

	return a.withStore(ctx, func(venues domain.VenueRepository) error {
		enricher := usecase.NewEnricher(venues, client, a.rules, a.cfg.Pipeline.FetchDelay)
		changes, err := enricher.Run(ctx, usecase.EnrichOptions{
			CitySlug: flagCity,
			DryRun:   enrichDryRun,
			Refetch:  enrichRefetch,
			Limit:    enrichLimit,
		})
		if err != nil {
			return err
		}

		for _, c := range changes {
			fmt.Printf("  %s [%s] %v -> %v (%s)\n", c.Name, c.Field, c.Before, c.After, c.Status)
		}
		fmt.Printf("%d changes\n", len(changes))

		runID := time.Now().Format("20060102-150405")
		path, err := report.SaveChanges(a.cfg.Pipeline.ReportDir, report.KindEnrich, flagCity, runID, changes)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", path)
		if enrichDryRun {
			fmt.Println("Dry run, nothing updated.")
		}
		return nil
	})
}
