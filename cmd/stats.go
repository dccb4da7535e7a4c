package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/reftree"
)

var (
	statsBlock []string
	statsJSON  bool
	statsToon  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <root-id>",
	Short: "Show reference tree statistics",
	Long: `Display statistics about the reference tree of a root entry including:
  - Entries in the snapshot and positions in the tree
  - Tree depth and "+ more" placeholders
  - Content type breakdown
  - Positions disabled by the block list

Examples:
  skuref stats 5KsDBWseXY6QegucYAoacS
  skuref stats <root-id> --block asset --json
  skuref stats <root-id> --toon`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringSliceVar(&statsBlock, "block", nil, "Block a content type (default from tree.block_content_types)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type treeStats struct {
	RootID        string         `json:"root_id"`
	SnapshotID    string         `json:"snapshot_id"`
	Entries       int            `json:"entries"`
	Unreachable   int            `json:"unreachable"`
	Positions     int            `json:"positions"`
	UniqueIDs     int            `json:"unique_ids"`
	Depth         int            `json:"depth"`
	Assets        int            `json:"assets"`
	Placeholders  int            `json:"placeholders"`
	Blocked       []string       `json:"blocked"`
	Disabled      int            `json:"disabled"`
	ContentTypes  map[string]int `json:"content_types"`
	TopTypes      []typeStat     `json:"top_types"`
	InitiallyOpen int            `json:"initially_expanded"`
}

type typeStat struct {
	ContentType string `json:"content_type"`
	DisplayName string `json:"display_name"`
	Count       int    `json:"count"`
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := checkOutputFlags(statsJSON, statsToon); err != nil {
		return err
	}

	snap, tree, err := loadTree(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	summary := reftree.Summarize(tree)
	state := newSelectionState(snap, tree, blockedTypes(statsBlock), nil)

	stats := treeStats{
		RootID:        snap.RootID,
		SnapshotID:    snap.ID,
		Entries:       len(snap.Entries),
		Unreachable:   len(snap.Entries) - summary.UniqueIDs,
		Positions:     summary.Positions,
		UniqueIDs:     summary.UniqueIDs,
		Depth:         summary.Depth,
		Assets:        summary.Assets,
		Placeholders:  summary.Placeholders,
		Blocked:       state.BlockedContentTypes(),
		Disabled:      len(state.DisabledPaths()),
		ContentTypes:  summary.ContentTypes,
		InitiallyOpen: len(state.ExpandedIDs()),
	}

	for ct, count := range summary.ContentTypes {
		stats.TopTypes = append(stats.TopTypes, typeStat{
			ContentType: ct,
			DisplayName: reftree.DisplayName(ct),
			Count:       count,
		})
	}
	sort.Slice(stats.TopTypes, func(i, j int) bool {
		if stats.TopTypes[i].Count != stats.TopTypes[j].Count {
			return stats.TopTypes[i].Count > stats.TopTypes[j].Count
		}
		return stats.TopTypes[i].ContentType < stats.TopTypes[j].ContentType
	})

	if done, err := emitStructured(stats, statsJSON, statsToon); done {
		return err
	}

	fmt.Println("Reference Tree Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Root:          %s\n", stats.RootID)
	fmt.Printf("Snapshot:      %s\n", stats.SnapshotID)
	fmt.Printf("Entries:       %d (%d not reachable from the root)\n", stats.Entries, stats.Unreachable)
	fmt.Printf("Positions:     %d\n", stats.Positions)
	fmt.Printf("Depth:         %d\n", stats.Depth)
	fmt.Printf("Assets:        %d\n", stats.Assets)
	if stats.Placeholders > 0 {
		fmt.Printf("Depth cut off: %d branch(es)\n", stats.Placeholders)
	}
	fmt.Println()

	if len(stats.Blocked) > 0 {
		fmt.Printf("Blocked: %s\n", strings.Join(stats.Blocked, ", "))
		fmt.Printf("  %d position(s) disabled\n\n", stats.Disabled)
	}

	if len(stats.TopTypes) > 0 {
		fmt.Println("By Content Type:")
		for _, ts := range stats.TopTypes {
			percentage := float64(ts.Count) / float64(stats.Positions-stats.Placeholders) * 100
			fmt.Printf("  %-24s %4d  (%.1f%%)\n", ts.DisplayName, ts.Count, percentage)
		}
	}

	return nil
}
