package selection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/reftree"
	"github.com/pders01/skuref/internal/testutil"
)

// r -> a, s; a -> b, c; c -> a (cycle leaf), s; s is a shared banner
func fixture(t *testing.T) (*models.TreeNode, models.ReferenceMap) {
	t.Helper()
	refs := testutil.RefMap(
		testutil.Entry("r", "page", "a", "s"),
		testutil.Entry("a", "section", "b", "c"),
		testutil.Entry("b", "cta"),
		testutil.Entry("c", "section", "a", "s"),
		testutil.Entry("s", "banner"),
	)
	tree := reftree.Build(refs, "r")
	require.NotNil(t, tree)
	return tree, refs
}

func newState(t *testing.T, opts Options) *State {
	t.Helper()
	tree, refs := fixture(t)
	opts.TotalEntries = len(refs)
	return New(tree, opts)
}

func TestNewSelectsRootAndExpandsAll(t *testing.T) {
	s := newState(t, Options{})

	assert.Equal(t, []string{"r"}, s.SelectedPaths())
	assert.Equal(t, []string{"r"}, s.SelectedEntityIDs())
	assert.Equal(t, []string{"a", "b", "c", "r", "s"}, s.ExpandedIDs())
	assert.Empty(t, s.DisabledPaths())
}

func TestNewLargeMapExpandsOnlyRoot(t *testing.T) {
	s := newState(t, Options{MaxNodesToExpand: 3})

	assert.Equal(t, []string{"r"}, s.ExpandedIDs())
}

func TestToggleSelectAddsAncestors(t *testing.T) {
	s := newState(t, Options{})

	assert.True(t, s.ToggleSelect("r:a:c:s"))
	assert.Equal(t, []string{"r", "r:a", "r:a:c", "r:a:c:s"}, s.SelectedPaths())
	assert.False(t, s.IsSelected("r:s"))
}

func TestToggleSelectDeselectRemovesDescendants(t *testing.T) {
	s := newState(t, Options{})

	s.ToggleSelect("r:a:b")
	s.ToggleSelect("r:a:c")
	s.ToggleSelect("r:s")
	require.True(t, s.IsSelected("r:a:b"))

	s.ToggleSelect("r:a")

	assert.Equal(t, []string{"r", "r:s"}, s.SelectedPaths())
}

func TestToggleSelectDeselectLeaf(t *testing.T) {
	s := newState(t, Options{})

	s.ToggleSelect("r:a:b")
	s.ToggleSelect("r:a:b")

	assert.Equal(t, []string{"r", "r:a"}, s.SelectedPaths())
}

func TestToggleSelectNoOps(t *testing.T) {
	s := newState(t, Options{Blocked: []string{"cta"}})

	tests := []struct {
		name string
		path string
	}{
		{"root", "r"},
		{"disabled", "r:a:b"},
		{"unknown", "r:x"},
		{"not an actual chain", "r:b"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, s.ToggleSelect(tt.path))
			assert.Equal(t, []string{"r"}, s.SelectedPaths())
		})
	}
}

func TestToggleSelectPlaceholderNoOp(t *testing.T) {
	refs := testutil.Chain(12, "section")
	tree := reftree.Build(refs, "n0")
	s := New(tree, Options{TotalEntries: len(refs)})

	var placeholder string
	for _, p := range reftree.CollectAllNodePaths(tree) {
		if reftree.LastID(p) == "more-n10" {
			placeholder = p
		}
	}
	require.NotEmpty(t, placeholder)

	assert.False(t, s.IsInteractive(placeholder))
	assert.False(t, s.ToggleSelect(placeholder))
}

func TestSharedEntityPositionsIndependent(t *testing.T) {
	s := newState(t, Options{})

	s.ToggleSelect("r:s")
	s.ToggleSelect("r:a:c:s")

	assert.Equal(t, []string{"a", "c", "r", "s"}, s.SelectedEntityIDs())

	s.ToggleSelect("r:s")
	assert.True(t, s.IsSelected("r:a:c:s"))
	assert.Contains(t, s.SelectedEntityIDs(), "s")
}

func TestToggleExpandIsPerEntity(t *testing.T) {
	s := newState(t, Options{})

	s.ToggleExpand("a")
	assert.False(t, s.IsExpanded("a"))
	s.ToggleExpand("a")
	assert.True(t, s.IsExpanded("a"))
}

func TestDisabledPaths(t *testing.T) {
	s := newState(t, Options{Blocked: []string{"section"}})

	assert.Equal(t, []string{
		"r:a",
		"r:a:b",
		"r:a:c",
		"r:a:c:a",
		"r:a:c:s",
	}, s.DisabledPaths())
	assert.True(t, s.IsInteractive("r:s"))
	assert.False(t, s.IsInteractive("r:a:c:s"))
}

func TestSetBlockedContentTypesPrunesSelection(t *testing.T) {
	var notified [][]string
	s := newState(t, Options{OnChange: func(ids []string) { notified = append(notified, ids) }})

	s.ToggleSelect("r:a:c:s")
	s.ToggleSelect("r:s")
	require.Len(t, notified, 2)

	s.SetBlockedContentTypes([]string{"section"})

	assert.Equal(t, []string{"r", "r:s"}, s.SelectedPaths())
	assert.Equal(t, []string{"section"}, s.BlockedContentTypes())
	require.Len(t, notified, 3)
	assert.Equal(t, []string{"r", "s"}, notified[2])

	// unblocking does not restore the pruned selection
	s.SetBlockedContentTypes(nil)
	assert.Equal(t, []string{"r", "r:s"}, s.SelectedPaths())
	assert.Empty(t, s.DisabledPaths())
	assert.Len(t, notified, 3)
}

func TestBlockedRootClearsSelection(t *testing.T) {
	s := newState(t, Options{Blocked: []string{"page"}})

	assert.Empty(t, s.SelectedPaths())
	assert.False(t, s.ToggleSelect("r:a"))
}

func TestNilTree(t *testing.T) {
	s := New(nil, Options{})

	assert.Empty(t, s.SelectedPaths())
	assert.False(t, s.ToggleSelect("r"))
	s.SetBlockedContentTypes([]string{"page"})
	assert.Empty(t, s.DisabledPaths())
}

func TestSelectionInvariantsUnderRandomToggles(t *testing.T) {
	tree, refs := fixture(t)
	paths := reftree.CollectAllNodePaths(tree)
	blockLists := [][]string{nil, {"cta"}, {"section"}, {"banner", "cta"}}

	rng := rand.New(rand.NewSource(7))
	s := New(tree, Options{TotalEntries: len(refs)})

	for i := 0; i < 500; i++ {
		if i%50 == 0 {
			s.SetBlockedContentTypes(blockLists[rng.Intn(len(blockLists))])
		}
		s.ToggleSelect(paths[rng.Intn(len(paths))])

		disabled := make(map[string]bool)
		for _, p := range s.DisabledPaths() {
			disabled[p] = true
		}
		for _, p := range s.SelectedPaths() {
			assert.False(t, disabled[p], "selected path %q is disabled", p)
			for _, ancestor := range reftree.AncestorPaths(p) {
				assert.True(t, s.IsSelected(ancestor), "ancestor %q of %q not selected", ancestor, p)
			}
		}
	}
}
