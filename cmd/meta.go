package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/reftree"
)

var metaJSON bool

var metaCmd = &cobra.Command{
	Use:   "meta <root-id> <entry-id>",
	Short: "Show one entry of a stored snapshot",
	Long: `Show what the latest snapshot of a root knows about one entry: its content
type, names, outgoing links, parents and every position it occupies in the
reference tree.

Example:
  skuref meta 5KsDBWseXY6QegucYAoacS 2vJ3FbmH0aBS2m4Qe1OUSS
  skuref meta <root-id> <entry-id> --json`,
	Args: cobra.ExactArgs(2),
	RunE: runMeta,
}

func init() {
	rootCmd.AddCommand(metaCmd)

	metaCmd.Flags().BoolVar(&metaJSON, "json", false, "Output as JSON")
}

// entryMeta is the structured form of meta.
type entryMeta struct {
	EntryID       string        `json:"entry_id"`
	ContentTypeID string        `json:"content_type_id"`
	DisplayName   string        `json:"display_name"`
	InternalName  string        `json:"internal_name"`
	IsAsset       bool          `json:"is_asset"`
	Links         []string      `json:"links"`
	Parents       []string      `json:"parents"`
	Positions     []string      `json:"positions"`
	Entry         *models.Entry `json:"entry"`
}

func runMeta(cmd *cobra.Command, args []string) error {
	rootID, entryID := args[0], args[1]

	snap, tree, err := loadTree(commandContext(cmd), rootID)
	if err != nil {
		return err
	}

	entry, ok := snap.Entries[entryID]
	if !ok {
		return fmt.Errorf("entry %s is not in the snapshot of %s", entryID, rootID)
	}

	meta := entryMeta{
		EntryID:       entryID,
		ContentTypeID: entry.ContentTypeID(),
		DisplayName:   reftree.DisplayName(entry.ContentTypeID()),
		InternalName:  reftree.InternalName(entry, config.GetDefaultLocale()),
		IsAsset:       reftree.IsAsset(entry.ContentTypeID()),
		Links:         entry.LinkedEntryIDs(),
		Parents:       reftree.FindParentIDs(tree, entryID),
		Positions:     []string{},
		Entry:         entry,
	}
	if meta.Links == nil {
		meta.Links = []string{}
	}
	reftree.WalkPaths(tree, func(path string, n *models.TreeNode) bool {
		if n.EntryID == entryID && !n.IsMorePlaceholder {
			meta.Positions = append(meta.Positions, path)
		}
		return true
	})

	if done, err := emitStructured(meta, metaJSON, false); done {
		return err
	}

	fmt.Printf("━━━ %s ━━━\n\n", entryID)
	fmt.Printf("Content type:  %s (%s)\n", meta.DisplayName, meta.ContentTypeID)
	fmt.Printf("Internal name: %s\n", valueOr(meta.InternalName, "(none)"))
	if meta.IsAsset {
		fmt.Println("Asset:         yes")
	}
	fmt.Printf("Snapshot:      %s (%s)\n\n", snap.ID, snap.CreatedAt.Format("2006-01-02 15:04"))

	fmt.Printf("Links (%d):\n", len(meta.Links))
	for _, id := range meta.Links {
		marker := ""
		if _, ok := snap.Entries[id]; !ok {
			marker = "  (unresolved)"
		}
		fmt.Printf("  → %s%s\n", id, marker)
	}

	fmt.Printf("\nParents (%d):\n", len(meta.Parents))
	for _, id := range meta.Parents {
		fmt.Printf("  ← %s\n", id)
	}

	fmt.Printf("\nPositions (%d):\n", len(meta.Positions))
	for _, path := range meta.Positions {
		fmt.Printf("  %s\n", strings.ReplaceAll(path, reftree.PathDelimiter, " › "))
	}

	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
