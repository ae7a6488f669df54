package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saunafinder/backend/internal/usecase"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the supported cities",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tNAME\tRADIUS (km)\tNEIGHBORHOODS")
		for _, c := range usecase.NewCityCatalog().List() {
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\n", c.Slug, c.FullName, c.RadiusMeters/1000, len(c.Neighborhoods))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}
