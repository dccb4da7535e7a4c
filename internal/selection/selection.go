// Package selection tracks which positions of a reference tree are selected,
// which entries are expanded and which positions are disabled by a content
// type block list.
//
// Selection is keyed by node path, so each occurrence of a shared entry is
// selected on its own. Expansion is keyed by entry id and applies to every
// occurrence at once. A selected path always has its ancestors selected, and
// no disabled path is ever selected.
package selection

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/reftree"
)

// DefaultMaxNodesToExpand is the reference count above which only the root
// starts expanded.
const DefaultMaxNodesToExpand = 100

// Options configures a State.
type Options struct {
	// Blocked lists content type ids whose positions, and everything below
	// them, cannot be selected.
	Blocked []string
	// TotalEntries is the size of the reference map the tree was built from.
	TotalEntries     int
	MaxNodesToExpand int
	// OnChange receives the selected entity ids after every change to the
	// selection.
	OnChange func(entityIDs []string)
}

// State is safe for concurrent use. OnChange is called without the lock
// held.
type State struct {
	mu sync.Mutex

	tree     *models.TreeNode
	rootPath string
	nodes    map[string]*models.TreeNode
	onChange func([]string)

	blocked  []string
	selected map[string]struct{}
	expanded map[string]struct{}
	disabled map[string]struct{}
}

// New selects the root path and expands either every entry or, for large
// reference maps, the root alone.
func New(tree *models.TreeNode, opts Options) *State {
	if opts.MaxNodesToExpand <= 0 {
		opts.MaxNodesToExpand = DefaultMaxNodesToExpand
	}

	s := &State{
		tree:     tree,
		nodes:    make(map[string]*models.TreeNode),
		onChange: opts.OnChange,
		selected: make(map[string]struct{}),
		expanded: make(map[string]struct{}),
		disabled: make(map[string]struct{}),
	}
	if tree == nil {
		return s
	}

	s.rootPath = tree.EntryID
	reftree.WalkPaths(tree, func(path string, n *models.TreeNode) bool {
		s.nodes[path] = n
		return true
	})

	s.selected[s.rootPath] = struct{}{}

	if opts.TotalEntries > opts.MaxNodesToExpand {
		s.expanded[tree.EntryID] = struct{}{}
	} else {
		for _, id := range reftree.CollectAllNodeIDs(tree) {
			s.expanded[id] = struct{}{}
		}
	}

	s.applyBlockList(opts.Blocked)
	return s
}

// Tree returns the tree the state was built on.
func (s *State) Tree() *models.TreeNode {
	return s.tree
}

// RootPath returns the path of the root node.
func (s *State) RootPath() string {
	return s.rootPath
}

// ToggleSelect selects or deselects the position at path. Deselecting drops
// every selected path below it; selecting adds every ancestor on the same
// branch. The root, placeholders, disabled and unknown paths are ignored.
// It reports whether the selection changed.
func (s *State) ToggleSelect(path string) bool {
	s.mu.Lock()
	if !s.interactive(path) {
		s.mu.Unlock()
		logrus.WithField("path", path).Debug("ignoring toggle on non-interactive path")
		return false
	}

	if _, ok := s.selected[path]; ok {
		delete(s.selected, path)
		for p := range s.selected {
			if reftree.IsDescendantPath(p, path) {
				delete(s.selected, p)
			}
		}
	} else {
		s.selected[path] = struct{}{}
		for _, ancestor := range reftree.AncestorPaths(path) {
			s.selected[ancestor] = struct{}{}
		}
	}
	ids := s.entityIDs()
	s.mu.Unlock()

	s.notify(ids)
	return true
}

// ToggleExpand flips the expansion of every occurrence of entryID.
func (s *State) ToggleExpand(entryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expanded[entryID]; ok {
		delete(s.expanded, entryID)
		return
	}
	s.expanded[entryID] = struct{}{}
}

// SetBlockedContentTypes recomputes the disabled paths and drops any
// selected path that became disabled.
func (s *State) SetBlockedContentTypes(blocked []string) {
	s.mu.Lock()
	before := len(s.selected)
	s.applyBlockList(blocked)
	changed := len(s.selected) != before
	ids := s.entityIDs()
	s.mu.Unlock()

	if changed {
		s.notify(ids)
	}
}

// BlockedContentTypes returns the current block list.
func (s *State) BlockedContentTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.blocked)
}

func (s *State) applyBlockList(blocked []string) {
	s.blocked = slices.Clone(blocked)
	s.disabled = reftree.CollectDisabledPaths(s.tree, s.blocked)
	for path := range s.disabled {
		delete(s.selected, path)
	}
}

// IsSelected reports whether the position at path is selected.
func (s *State) IsSelected(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[path]
	return ok
}

// IsExpanded reports whether entryID is expanded.
func (s *State) IsExpanded(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.expanded[entryID]
	return ok
}

// IsDisabled reports whether the position at path is disabled.
func (s *State) IsDisabled(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.disabled[path]
	return ok
}

// IsInteractive reports whether ToggleSelect would act on path.
func (s *State) IsInteractive(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactive(path)
}

func (s *State) interactive(path string) bool {
	n, ok := s.nodes[path]
	if !ok || path == s.rootPath || n.IsMorePlaceholder {
		return false
	}
	_, disabled := s.disabled[path]
	return !disabled
}

// SelectedPaths returns the selected paths, sorted.
func (s *State) SelectedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.selected)
}

// DisabledPaths returns the disabled paths, sorted.
func (s *State) DisabledPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.disabled)
}

// ExpandedIDs returns the expanded entry ids, sorted.
func (s *State) ExpandedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.expanded)
}

// SelectedEntityIDs returns the distinct entry ids the selected paths end
// in, sorted.
func (s *State) SelectedEntityIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entityIDs()
}

func (s *State) entityIDs() []string {
	ids := make(map[string]struct{}, len(s.selected))
	for path := range s.selected {
		if id := reftree.LastID(path); id != "" {
			ids[id] = struct{}{}
		}
	}
	return sortedKeys(ids)
}

func (s *State) notify(ids []string) {
	if s.onChange != nil {
		s.onChange(ids)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
