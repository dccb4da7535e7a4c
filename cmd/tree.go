package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/selection"
)

var (
	treeBlock  []string
	treeSelect []string
	treeJSON   bool
	treeToon   bool
)

var treeCmd = &cobra.Command{
	Use:   "tree <root-id>",
	Short: "Render the reference tree of a stored snapshot",
	Long: `Render the reference tree of the latest snapshot for a root entry.

Each position shows whether it is selected [x], unselected [ ] or disabled
[-]. Positions of blocked content types are disabled together with
everything below them. Cycles end in a leaf and branches deeper than
tree.max_level end in a "+ more" placeholder.

Paths passed to --select are toggled in order, exactly like clicking them.
A path is the chain of entry ids from the root, joined with ':'.

Example:
  skuref tree 5KsDBWseXY6QegucYAoacS
  skuref tree <root-id> --block asset --block seo
  skuref tree <root-id> --select <root-id>:<child-id> --json`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().StringSliceVar(&treeBlock, "block", nil, "Block a content type (default from tree.block_content_types)")
	treeCmd.Flags().StringSliceVar(&treeSelect, "select", nil, "Toggle the selection of a path")
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output as JSON")
	treeCmd.Flags().BoolVar(&treeToon, "toon", false, "Output as TOON")
}

// treeOutput is the structured form of a rendered tree.
type treeOutput struct {
	RootID            string           `json:"root_id"`
	SnapshotID        string           `json:"snapshot_id"`
	Blocked           []string         `json:"blocked"`
	SelectedPaths     []string         `json:"selected_paths"`
	SelectedEntityIDs []string         `json:"selected_entity_ids"`
	DisabledPaths     []string         `json:"disabled_paths"`
	Tree              *models.TreeNode `json:"tree"`
}

func blockedTypes(flagValue []string) []string {
	if len(flagValue) > 0 {
		return flagValue
	}
	return config.GetBlockedContentTypes()
}

func newSelectionState(snap *models.Snapshot, tree *models.TreeNode, blocked []string, onChange func([]string)) *selection.State {
	return selection.New(tree, selection.Options{
		Blocked:          blocked,
		TotalEntries:     len(snap.Entries),
		MaxNodesToExpand: config.GetMaxNodesToExpand(),
		OnChange:         onChange,
	})
}

func runTree(cmd *cobra.Command, args []string) error {
	if err := checkOutputFlags(treeJSON, treeToon); err != nil {
		return err
	}

	snap, tree, err := loadTree(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	state := newSelectionState(snap, tree, blockedTypes(treeBlock), nil)
	for _, path := range treeSelect {
		if !state.ToggleSelect(path) {
			fmt.Fprintf(os.Stderr, "Ignored --select %s (root, disabled, placeholder or unknown path)\n", path)
		}
	}

	output := treeOutput{
		RootID:            snap.RootID,
		SnapshotID:        snap.ID,
		Blocked:           state.BlockedContentTypes(),
		SelectedPaths:     state.SelectedPaths(),
		SelectedEntityIDs: state.SelectedEntityIDs(),
		DisabledPaths:     state.DisabledPaths(),
		Tree:              tree,
	}
	if done, err := emitStructured(output, treeJSON, treeToon); done {
		return err
	}

	renderTree(os.Stdout, state, false)
	fmt.Printf("\n%d selected, %d disabled\n", len(output.SelectedPaths), len(output.DisabledPaths))

	return nil
}
