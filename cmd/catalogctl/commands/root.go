package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:5000"

var (
	// Global flags
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Browse the storefront catalog from a terminal",
	Long: `catalogctl fetches products from the storefront API and renders them as a table.

A fetched page can be narrowed further on the client with the same filter
semantics the storefront uses (the --*-local flags).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("CATALOG_URL")
	if defaultURL == "" {
		defaultURL = defaultServerURL
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultURL, "Storefront base URL (env CATALOG_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
