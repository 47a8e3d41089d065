// Package cmd contains the CLI commands for aur2, built using the Cobra
// library.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "aur2",
	Short: "Community package repository web frontend",
	Long: `aur2 serves the community package repository's web pages: user
profiles with their submitted packages and repository statistics, the
package-management actions, and package submission with PKGBUILD
validation.`,
}

// Execute runs the root command; it's called once, from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "aur2.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
}
