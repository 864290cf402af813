// Command todo-api serves the todo HTTP API.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"todo-api/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "todo-api",
	Short:        "HTTP API for managing todos",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

// configFlags are shared by every subcommand that loads the config.
var configFlags *config.Flags

func init() {
	configFlags = config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.RunE = runServe
	rootCmd.AddCommand(serveCmd, configCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
