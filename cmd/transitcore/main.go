package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "transitcore",
	Short:        "Transit kernel devtools",
	Long:         "Inspects a transit snapshot cache: resolve stop times, run autocomplete queries",
	SilenceUsage: true,
}

var (
	cacheDriver string
	cachePath   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cacheDriver, "driver", "", "sqlite", "Cache driver: sqlite or postgres")
	rootCmd.PersistentFlags().StringVarP(&cachePath, "dsn", "", "./transitcore.db", "Cache data source (file path for sqlite, connection string for postgres)")
	rootCmd.AddCommand(stopTimeCmd)
	rootCmd.AddCommand(autocompleteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
