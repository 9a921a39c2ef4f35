// Package cmdtest runs fintrack commands in-process for tests.
package cmdtest

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/container"

	"github.com/spf13/cobra"
)

var initOnce sync.Once

// Register initializes the root command once and attaches cmds to it.
func Register(cmds ...*cobra.Command) {
	initOnce.Do(root.Init)
	root.Cmd.AddCommand(cmds...)
}

// Env isolates a test from the user's config and credentials and returns a
// fresh ledger path.
func Env(t *testing.T, opts ...container.Option) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("FINTRACK_LOG_LEVEL", "error")

	prev := root.ContainerOptions
	root.ContainerOptions = opts
	t.Cleanup(func() { root.ContainerOptions = prev })

	return filepath.Join(home, "fintrack.db")
}

// Run executes the root command with args and returns everything written
// to stdout and stderr.
func Run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(args)
	err := root.Cmd.Execute()
	return out.String(), err
}
