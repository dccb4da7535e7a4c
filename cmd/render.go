package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/reftree"
	"github.com/pders01/skuref/internal/selection"
)

var (
	selectedStyle    = lipgloss.NewStyle().Bold(true)
	disabledStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	placeholderStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	typeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderTree writes the visible part of the tree and returns the visible
// paths in display order. Children are shown only under expanded entries.
func renderTree(w io.Writer, state *selection.State, numbered bool) []string {
	var visible []string

	reftree.WalkPaths(state.Tree(), func(path string, n *models.TreeNode) bool {
		visible = append(visible, path)

		prefix := ""
		if numbered {
			prefix = fmt.Sprintf("%4d ", len(visible))
		}
		depth := len(reftree.SplitPath(path)) - 1
		fmt.Fprintf(w, "%s%s%s\n", prefix, strings.Repeat("  ", depth), renderNode(state, path, n))

		return !n.IsMorePlaceholder && state.IsExpanded(n.EntryID)
	})

	return visible
}

func renderNode(state *selection.State, path string, n *models.TreeNode) string {
	if n.IsMorePlaceholder {
		return "    " + placeholderStyle.Render(n.DisplayName)
	}

	fold := " "
	if len(n.Children) > 0 {
		fold = "▸"
		if state.IsExpanded(n.EntryID) {
			fold = "▾"
		}
	}

	mark := "[ ]"
	switch {
	case state.IsDisabled(path):
		mark = "[-]"
	case state.IsSelected(path):
		mark = "[x]"
	}

	label := typeStyle.Render(n.DisplayName)
	if n.InternalName != "" {
		label += " " + n.InternalName
	}
	label += " " + idStyle.Render(n.EntryID)

	switch {
	case state.IsDisabled(path):
		label = disabledStyle.Render(label)
	case state.IsSelected(path):
		label = selectedStyle.Render(label)
	}

	return fmt.Sprintf("%s %s %s", fold, mark, label)
}
