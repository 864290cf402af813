package main

import "fmt"

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func versionString() string {
	return fmt.Sprintf("todo-api %s (commit %s)", buildVersion, buildCommit)
}
