// Package main provides the entry point for the career mentor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mentor_agent",
	Short: "AI career mentor for starting an IT career",
	Long:  "Career mentor analyzes your CV, plans career roadmaps, proposes portfolio projects, runs mock interviews, and finds junior openings, keeping every result in a local history.",
}

var (
	flagConfig  string
	flagAPIKey  string
	flagDataDir string
	flagDBURL   string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for local record files")
	rootCmd.PersistentFlags().StringVar(&flagDBURL, "db-url", "", "PostgreSQL URL for shared record storage (overrides DATABASE_URL env var)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
