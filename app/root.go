// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "koi-garden-api",
	Short: "koi-garden-api is the REST backend of the Koi Garden website",
	Long: `koi-garden-api serves the content of a landscaping and koi pond
business website: services, portfolio projects, blog posts, testimonials,
contact requests, hero slides, company info, settings and admin users.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
