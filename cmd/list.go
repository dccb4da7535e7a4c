package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/models"
)

var (
	listRoot  string
	listToday bool
	listSince string
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reference snapshots",
	Long: `List stored reference snapshots, newest first, with optional filtering.

Examples:
  skuref list
  skuref list --root 5KsDBWseXY6QegucYAoacS
  skuref list --today
  skuref list --since 2025-10-01`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listRoot, "root", "", "Filter by root entry id")
	listCmd.Flags().BoolVar(&listToday, "today", false, "Show only today's snapshots")
	listCmd.Flags().StringVar(&listSince, "since", "", "Show snapshots since date (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func parseSince(since string, today bool) (time.Time, error) {
	if today {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	if since == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", since, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since date %q (expected YYYY-MM-DD): %w", since, err)
	}
	return t, nil
}

func runList(cmd *cobra.Command, args []string) error {
	since, err := parseSince(listSince, listToday)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	infos, err := s.ListSnapshots(commandContext(cmd), since)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	snapshots := make([]models.SnapshotInfo, 0, len(infos))
	for _, info := range infos {
		if listRoot != "" && info.RootID != listRoot {
			continue
		}
		snapshots = append(snapshots, info)
	}

	if done, err := emitStructured(snapshots, listJSON, false); done {
		return err
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Snapshot", "Root", "Created", "Entries", "Source"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, info := range snapshots {
		table.Append([]string{
			info.ID,
			info.RootID,
			info.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", info.EntryCount),
			info.Source,
		})
	}
	table.Render()

	fmt.Printf("\nTotal: %d snapshot(s)\n", len(snapshots))
	return nil
}
