package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/saunafinder/backend/internal/domain"
)

var photosLimit int

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Upload photos for stored venues that have none",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPhotos(context.Background()); err != nil {
			log.Fatalf("Photo backfill failed: %v", err)
		}
	},
}

func init() {
	photosCmd.Flags().IntVar(&photosLimit, "limit", 0, "maximum venues to process (0 = all)")
	rootCmd.AddCommand(photosCmd)
}

func runPhotos(ctx context.Context) error {
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
		photos, err := a.photoService(ctx, client, venues)
		if err != nil {
			return err
		}

		done, total, err := photos.Backfill(ctx, flagCity, photosLimit)
		if err != nil {
			return fmt.Errorf("stopped after %d of %d venues: %w", done, total, err)
		}
		fmt.Printf("Uploaded photos for %d of %d venues.\n", done, total)
		return nil
	})
}
