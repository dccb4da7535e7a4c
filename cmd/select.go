package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/reftree"
	"github.com/pders01/skuref/internal/selection"
	"github.com/pders01/skuref/internal/store"
)

var (
	selectBlock   []string
	selectRestore bool
)

var selectCmd = &cobra.Command{
	Use:   "select <root-id>",
	Short: "Interactively choose which references to copy",
	Long: `Open an interactive shell over the reference tree of a root entry.

Commands:
  show                  Print the visible tree with position numbers
  toggle <n|path>...    Select or deselect positions
  expand <n|entry-id>   Expand or collapse an entry everywhere it appears
  block <type>...       Add content types to the block list
  unblock <type>...     Remove content types from the block list
  selected              Print the selected entry ids
  copy                  Copy the selected entry ids to the clipboard
  save                  Store the selected entry ids for this root
  quit                  Leave the shell

The block list follows tree.block_content_types and is reloaded when the
config file changes.

Example:
  skuref select 5KsDBWseXY6QegucYAoacS
  skuref select <root-id> --restore`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringSliceVar(&selectBlock, "block", nil, "Block a content type (default from tree.block_content_types)")
	selectCmd.Flags().BoolVar(&selectRestore, "restore", false, "Start from the last saved selection")
}

// selectShell executes selection shell commands against a State.
type selectShell struct {
	state   *selection.State
	store   *store.Store
	rootID  string
	out     io.Writer
	visible []string
}

func runSelect(cmd *cobra.Command, args []string) error {
	rootID := args[0]
	ctx := commandContext(cmd)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := loadSnapshot(ctx, s, rootID)
	if err != nil {
		return err
	}
	tree, err := buildTree(snap)
	if err != nil {
		return err
	}

	state := newSelectionState(snap, tree, blockedTypes(selectBlock), func(ids []string) {
		logrus.WithFields(logrus.Fields{"root": rootID, "selected": len(ids)}).Debug("selection changed")
	})

	shell := &selectShell{state: state, store: s, rootID: rootID, out: os.Stdout}

	if selectRestore {
		if err := shell.restore(ctx); err != nil {
			return err
		}
	}

	if len(selectBlock) == 0 && viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			blocked := config.GetBlockedContentTypes()
			state.SetBlockedContentTypes(blocked)
			logrus.WithFields(logrus.Fields{"file": e.Name, "blocked": blocked}).Debug("block list reloaded")
		})
		viper.WatchConfig()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "select> ",
		HistoryFile:     filepath.Join(config.Dir(), "select_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to start prompt: %w", err)
	}
	defer rl.Close()

	shell.show()
	fmt.Println("\nType 'help' for commands.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Println("Use 'quit' to exit.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		quit, err := shell.exec(ctx, line)
		if err != nil {
			fmt.Fprintf(shell.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// exec runs one shell line and reports whether the shell should exit.
func (sh *selectShell) exec(ctx context.Context, line string) (bool, error) {
	command, args := splitWords(line)

	switch command {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(sh.out, "show, toggle <n|path>..., expand <n|entry-id>, block <type>..., unblock <type>..., selected, copy, save, quit")
	case "show", "ls":
		sh.show()
	case "toggle", "t":
		return false, sh.toggle(args)
	case "expand", "e":
		return false, sh.expand(args)
	case "block":
		sh.block(args, true)
	case "unblock":
		sh.block(args, false)
	case "selected":
		for _, id := range sh.state.SelectedEntityIDs() {
			fmt.Fprintln(sh.out, id)
		}
	case "copy":
		ids := sh.state.SelectedEntityIDs()
		if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
			return false, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(sh.out, "✓ Copied %d entry id(s)\n", len(ids))
	case "save":
		ids := sh.state.SelectedEntityIDs()
		if err := sh.store.SaveSelection(ctx, sh.rootID, ids); err != nil {
			return false, fmt.Errorf("failed to save selection: %w", err)
		}
		fmt.Fprintf(sh.out, "✓ Saved %d entry id(s) for %s\n", len(ids), sh.rootID)
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", command)
	}

	return false, nil
}

func (sh *selectShell) show() {
	sh.visible = renderTree(sh.out, sh.state, true)
}

// resolve maps a position number from the last show to its path. Anything
// else is taken as a path.
func (sh *selectShell) resolve(arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(sh.visible) {
		return sh.visible[n-1]
	}
	return arg
}

func (sh *selectShell) toggle(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: toggle <n|path>...")
	}
	for _, arg := range args {
		path := sh.resolve(arg)
		if !sh.state.ToggleSelect(path) {
			fmt.Fprintf(sh.out, "Cannot toggle %s\n", path)
			continue
		}
		state := "deselected"
		if sh.state.IsSelected(path) {
			state = "selected"
		}
		fmt.Fprintf(sh.out, "%s %s\n", state, path)
	}
	return nil
}

func (sh *selectShell) expand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: expand <n|entry-id>")
	}
	id := reftree.LastID(sh.resolve(args[0]))
	sh.state.ToggleExpand(id)
	sh.show()
	return nil
}

func (sh *selectShell) block(types []string, add bool) {
	current := sh.state.BlockedContentTypes()
	next := make([]string, 0, len(current)+len(types))
	for _, ct := range current {
		if add || !slices.Contains(types, ct) {
			next = append(next, ct)
		}
	}
	if add {
		for _, ct := range types {
			if !slices.Contains(next, ct) {
				next = append(next, ct)
			}
		}
	}

	sh.state.SetBlockedContentTypes(next)
	fmt.Fprintf(sh.out, "Blocked: [%s], %d position(s) disabled\n", strings.Join(next, ", "), len(sh.state.DisabledPaths()))
}

// restore reselects every position of the saved entry ids.
func (sh *selectShell) restore(ctx context.Context) error {
	ids, savedAt, err := sh.store.LoadSelection(ctx, sh.rootID)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintln(sh.out, "No saved selection, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load selection: %w", err)
	}

	saved := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		saved[id] = struct{}{}
	}

	for _, path := range reftree.CollectAllNodePaths(sh.state.Tree()) {
		if _, ok := saved[reftree.LastID(path)]; ok && !sh.state.IsSelected(path) {
			sh.state.ToggleSelect(path)
		}
	}

	fmt.Fprintf(sh.out, "Restored selection saved %s\n", savedAt.Format("2006-01-02 15:04"))
	return nil
}
