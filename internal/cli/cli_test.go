package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"season-service/internal/seasontable"
)

// runCommand resets mutable flag state before each execution; cobra flag
// values are package globals and would otherwise leak between tests.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestAddAndUpdateSeason(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seasons.json")

	err := runCommand(t, "add", "cricket", "2026",
		"--seasons-file", path,
		"--name", "Cricket 2026",
		"--preseason-start", "2026-03-01",
		"--regular-start", "2026-03-15",
		"--regular-end", "2026-08-20",
		"--playoffs-start", "2026-08-25",
		"--playoffs-end", "2026-09-15",
	)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = runCommand(t, "update", "cricket", "2026",
		"--seasons-file", path,
		"--name", "Cricket 2026 (revised)",
	)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	table := seasontable.Open(seasontable.NewFileStore(path), nil)
	b, err := table.Get("cricket", "2026")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b.Name != "Cricket 2026 (revised)" {
		t.Fatalf("name = %q", b.Name)
	}
}

func TestAddRejectsMissingDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seasons.json")

	err := runCommand(t, "add", "cricket", "2026",
		"--seasons-file", path,
		"--preseason-start", "2026-03-01",
	)
	if err == nil {
		t.Fatalf("expected error for missing date flags")
	}
}

func TestUpdateUnknownSeason(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seasons.json")

	err := runCommand(t, "update", "wnba", "1999",
		"--seasons-file", path,
		"--name", "ghost",
	)
	if err == nil {
		t.Fatalf("expected error for unknown season")
	}
}

func TestPredictCommand(t *testing.T) {
	if err := runCommand(t, "predict", "wnba", "2027"); err != nil {
		t.Fatalf("predict: %v", err)
	}
}

func TestPredictUnknownSport(t *testing.T) {
	if err := runCommand(t, "predict", "cricket", "2027"); err == nil {
		t.Fatalf("expected error for unknown sport")
	}
}
