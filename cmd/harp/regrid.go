package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bruno-rino/harp/csvgrid"
)

var gridFile string

func init() {
	regridCmd.Flags().StringVar(&gridFile, "grid-file", "", "path to a CSV vertical-grid file")
	regridCmd.MarkFlagRequired("grid-file")
}

// regridCmd loads a fixed target axis the way RegridFixed expects one.
// Product ingestion is out of scope: this command exercises only
// the csvgrid collaborator, not a full regrid pipeline.
var regridCmd = &cobra.Command{
	Use:   "regrid",
	Short: "Load a fixed vertical-grid file and report the axis it describes.",
	Long: `regrid reads a CSV vertical-grid file and reports the axis variable
it describes. It does not ingest a product file — no such reader ships
with this module — so it cannot run a full regrid by
itself; this command only exercises csvgrid.Load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(gridFile)
		if err != nil {
			return err
		}
		defer f.Close()

		axis, err := csvgrid.Load(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: %d levels\n", axis.Name, axis.Unit, axis.NumElements())
		return nil
	},
	DisableAutoGenTag: true,
}
