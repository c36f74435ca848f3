package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/apicover/apicover/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the OpenAPI schema from a running API",
	Long: `Downloads the OpenAPI schema from <url>/config/schema/ and saves it to
the configured schema path (or --output). The downloaded document is checked
for a top-level paths object before it is written.`,
	RunE: runFetch,
}

var (
	fetchURL    string
	fetchToken  string
	fetchOutput string
)

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "http://localhost:8000", "Base URL of the API")
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "Bearer token for authentication")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Output file path (default: configured schema path)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()

	output := fetchOutput
	if output == "" {
		output = cfg.Schema.Path
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	log.Printf("Fetching OpenAPI schema from: %s", fetchURL)
	if err := fetch.New(fetchURL, fetchToken).FetchToFile(ctx, output); err != nil {
		return err
	}

	log.Printf("Schema saved to: %s", output)
	return nil
}
