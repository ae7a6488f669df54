package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/infrastructure/report"
	"github.com/saunafinder/backend/internal/infrastructure/website"
	"github.com/saunafinder/backend/internal/usecase"
)

var websitesDryRun bool

var websitesCmd = &cobra.Command{
	Use:   "websites",
	Short: "Fill missing venue websites and find hotel and gym spa pages",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWebsites(context.Background()); err != nil {
			log.Fatalf("Website finder failed: %v", err)
		}
	},
}

func init() {
	websitesCmd.Flags().BoolVar(&websitesDryRun, "dry-run", false, "report changes without updating")
	rootCmd.AddCommand(websitesCmd)
}

func runWebsites(ctx context.Context) error {
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

	prober := website.NewProber(5 * time.Second)
	prober.SetDebug(a.debug)

	return a.withStore(ctx, func(venues domain.VenueRepository) error {
		finder := usecase.NewWebsiteFinder(venues, client, prober, a.cfg.Pipeline.FetchDelay)
		summary, err := finder.Run(ctx, usecase.WebsiteOptions{CitySlug: flagCity, DryRun: websitesDryRun})
		if err != nil {
			return err
		}

		fmt.Printf("Updated %d, skipped %d, errors %d\n", summary.Updated, summary.Skipped, summary.Errors)
		if len(summary.Changes) == 0 {
			return nil
		}

		runID := time.Now().Format("20060102-150405")
		path, err := report.SaveChanges(a.cfg.Pipeline.ReportDir, report.KindWebsites, flagCity, runID, summary.Changes)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", path)
		return nil
	})
}
