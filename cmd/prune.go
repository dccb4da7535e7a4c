package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/config"
)

var pruneForce bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old snapshots based on retention policy",
	Long: `Remove snapshots older than the retention period.

The retention policy is configured in ~/.config/skuref/config.toml:
  [retention]
  days = 90

Without --force nothing is deleted.

Example:
  skuref prune              # Show what would be pruned
  skuref prune --force      # Actually prune snapshots`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Actually delete snapshots")
}

func runPrune(cmd *cobra.Command, args []string) error {
	retentionDays := config.GetRetentionDays()
	if retentionDays < 0 {
		return fmt.Errorf("retention.days must not be negative, got %d", retentionDays)
	}
	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	fmt.Printf("Retention policy: %d days\n", retentionDays)
	fmt.Printf("Cutoff date: %s\n\n", cutoffDate.Format("2006-01-02"))

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	pruned, err := s.PruneSnapshots(commandContext(cmd), cutoffDate, !pruneForce)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if len(pruned) == 0 {
		fmt.Println("No snapshots to prune")
		return nil
	}

	if pruneForce {
		fmt.Printf("Pruned snapshots (%d):\n\n", len(pruned))
	} else {
		fmt.Printf("Snapshots to prune (%d):\n\n", len(pruned))
	}
	for _, info := range pruned {
		fmt.Printf("  %s\n", info.ID)
		fmt.Printf("    Root:    %s\n", info.RootID)
		fmt.Printf("    Age:     %s\n", formatDuration(time.Since(info.CreatedAt)))
		fmt.Printf("    Entries: %d\n", info.EntryCount)
		fmt.Println()
	}

	if pruneForce {
		fmt.Printf("✓ Pruned %d snapshot(s)\n", len(pruned))
	} else {
		fmt.Println("This is a dry run. Use --force to actually prune snapshots.")
	}

	return nil
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days == 0 {
		return "< 1 day"
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
