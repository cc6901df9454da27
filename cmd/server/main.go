// Package main implements the entry point for the Scroll API server, which
// turns prompts into studyset feeds and drives their background rendering.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scroll-api",
	Short: "Scroll API server",
	Long: "Scroll API generates studyset feeds from a prompt in the background, " +
		"renders their reels and images, and serves the results over HTTP.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
