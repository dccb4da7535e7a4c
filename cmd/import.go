package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/references"
)

var importCmd = &cobra.Command{
	Use:   "import <export.json> <root-id>",
	Short: "Collect the references of an entry and store them as a snapshot",
	Long: `Read a space export, collect every entry reachable from the root entry
through entry links, and store the result as a snapshot.

Links to entries that are not in the export (deleted or unpublished) are
skipped. Each import creates a new snapshot; tree, stats, meta and select
always use the latest one for a root.

Example:
  skuref import export.json 5KsDBWseXY6QegucYAoacS`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	exportPath, rootID := args[0], args[1]
	ctx := commandContext(cmd)

	getter, err := references.LoadExport(appFs, exportPath)
	if err != nil {
		return fmt.Errorf("failed to load export: %w", err)
	}

	if _, ok := getter[rootID]; !ok {
		return fmt.Errorf("root entry %s is not in %s", rootID, exportPath)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Collecting references"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	collector := references.NewCollector(getter)
	collector.OnProgress = func(count int) {
		_ = bar.Set(count)
	}

	refs, err := collector.Collect(ctx, rootID)
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("failed to collect references: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	snap := &models.Snapshot{
		RootID:  rootID,
		Source:  exportPath,
		Entries: refs,
	}
	if err := s.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Printf("✓ Imported %d entries for %s\n", len(refs), rootID)
	fmt.Printf("  Snapshot: %s\n", snap.ID)
	if skipped := len(getter) - len(refs); skipped > 0 {
		fmt.Printf("  %d unrelated entries in the export were ignored\n", skipped)
	}

	return nil
}
