package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"todo-api": run,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			// Keep the host's settings out of the scripts.
			for _, k := range []string{
				"TODO_API_CONFIG", "TODO_API_STORE", "TODO_API_ADDR", "MONGO_URI", "DB_URL", "TODO_API_TIMEZONE",
			} {
				env.Setenv(k, "")
			}
			return nil
		},
	})
}

func TestVersionString(t *testing.T) {
	prevVersion, prevCommit := buildVersion, buildCommit
	t.Cleanup(func() {
		buildVersion, buildCommit = prevVersion, prevCommit
	})

	buildVersion = "1.2.3"
	buildCommit = "abc123"

	if got, want := versionString(), "todo-api 1.2.3 (commit abc123)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRootCommandDefaultsToServe(t *testing.T) {
	if rootCmd.RunE == nil {
		t.Fatal("root command must run the server")
	}
	if rootCmd.Version == "" {
		t.Fatal("expected root command version to be set")
	}
}
