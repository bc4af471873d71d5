// Package main provides the entry point for the TalentLens command line client.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentlens",
	Short: "TalentLens resume ranking client",
	Long:  "TalentLens ranks candidate resumes against a job description via the remote TalentLens scoring service and browses past analysis sessions.",
}

var (
	flagAPIURL     string
	flagTokenFile  string
	flagConfigFile string
	flagVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Base URL of the TalentLens API (default: TALENTLENS_API_URL or http://127.0.0.1:8000)")
	rootCmd.PersistentFlags().StringVar(&flagTokenFile, "token-file", "", "Path to the session token file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed request logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
