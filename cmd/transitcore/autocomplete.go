package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transitkernel.dev/core/autocomplete"
)

var autocompleteCmd = &cobra.Command{
	Use:   "autocomplete <query>",
	Short: "Runs a free-text place search against the cached snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runAutocomplete,
}

var (
	acTablesPath     string
	acNbMax          int
	acPOIWeightBonus bool
)

func init() {
	autocompleteCmd.Flags().StringVarP(&acTablesPath, "tables", "", "", "Path to an alias/synonym tables YAML file")
	autocompleteCmd.Flags().IntVarP(&acNbMax, "nbmax", "n", 10, "Maximum number of results to print")
	autocompleteCmd.Flags().BoolVarP(&acPOIWeightBonus, "poi-weight-bonus", "", false, "Enable the POI weight quality bonus")
}

func runAutocomplete(cmd *cobra.Command, args []string) error {
	data, err := loadSnapshot()
	if err != nil {
		return err
	}

	var tables *autocomplete.Tables
	if acTablesPath != "" {
		f, err := os.Open(acTablesPath)
		if err != nil {
			return fmt.Errorf("opening alias/synonym tables: %w", err)
		}
		defer f.Close()
		tables, err = autocomplete.LoadTables(f)
		if err != nil {
			return fmt.Errorf("loading alias/synonym tables: %w", err)
		}
	}

	idx := autocomplete.BuildIndexes(data)
	pipeline := autocomplete.Pipeline{POIWeightBonusEnabled: acPOIWeightBonus}
	places := pipeline.Autocomplete(data, idx, tables, args[0], autocomplete.SearchAll, autocomplete.NoAdminFilter, acNbMax)

	for _, p := range places {
		fmt.Printf("%3d  %-40s  q=%d  (%.5f, %.5f)\n", p.Idx, p.Name, p.Quality, p.Coord.Lat, p.Coord.Lon)
	}
	return nil
}
