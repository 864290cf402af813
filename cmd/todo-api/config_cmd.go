package main

import (
	"os"

	"github.com/spf13/cobra"

	"todo-api/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: "Print the configuration after defaults, the TOML file, environment " +
		"variables and flags are applied. Connection passwords are masked.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlags, os.Getenv)
		if err != nil {
			return err
		}
		return cfg.Redacted().Write(cmd.OutOrStdout())
	},
}
