// Package cli implements the sparsetool command line interface for
// inspecting and converting sparse matrix files.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "sparsetool",
	Short: "Inspect and convert sparse matrix files",
	Long: `Sparsetool reads sparse matrices in Matrix Market or JSON triplet
form and reports their structure or rewrites them into another format.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetDefault("format", formatMatrixMarket)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SPARSETOOL")
}
