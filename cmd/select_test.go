package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/reftree"
	"github.com/pders01/skuref/internal/selection"
	"github.com/pders01/skuref/internal/store"
	"github.com/pders01/skuref/internal/testutil"
)

func newTestShell(t *testing.T) (*selectShell, *bytes.Buffer) {
	t.Helper()

	dbPath := setupCmdTest(t)
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	refs := testutil.RefMap(exportEntries()...)
	tree := reftree.Build(refs, "r")
	require.NotNil(t, tree)

	var out bytes.Buffer
	return &selectShell{
		state:  selection.New(tree, selection.Options{TotalEntries: len(refs)}),
		store:  s,
		rootID: "r",
		out:    &out,
	}, &out
}

func run(t *testing.T, sh *selectShell, line string) {
	t.Helper()
	quit, err := sh.exec(context.Background(), line)
	require.NoError(t, err, line)
	require.False(t, quit, line)
}

func TestSelectShellShow(t *testing.T) {
	sh, _ := newTestShell(t)

	run(t, sh, "show")
	assert.Equal(t, []string{"r", "r:a", "r:a:c", "r:a:r", "r:b"}, sh.visible)

	run(t, sh, "expand 2")
	assert.Equal(t, []string{"r", "r:a", "r:b"}, sh.visible)

	run(t, sh, "expand a")
	assert.Equal(t, []string{"r", "r:a", "r:a:c", "r:a:r", "r:b"}, sh.visible)
}

func TestSelectShellToggle(t *testing.T) {
	sh, out := newTestShell(t)
	run(t, sh, "show")

	run(t, sh, "toggle 3")
	assert.Equal(t, []string{"a", "c", "r"}, sh.state.SelectedEntityIDs())

	out.Reset()
	run(t, sh, "toggle 1")
	assert.Contains(t, out.String(), "Cannot toggle r")

	run(t, sh, "toggle r:b")
	assert.Equal(t, []string{"a", "b", "c", "r"}, sh.state.SelectedEntityIDs())

	run(t, sh, "toggle 2")
	assert.Equal(t, []string{"b", "r"}, sh.state.SelectedEntityIDs(), "deselecting drops descendants")

	_, err := sh.exec(context.Background(), "toggle")
	assert.Error(t, err)
}

func TestSelectShellBlock(t *testing.T) {
	sh, _ := newTestShell(t)
	run(t, sh, "show")
	run(t, sh, "toggle 3")

	run(t, sh, "block cta")
	assert.Equal(t, []string{"cta"}, sh.state.BlockedContentTypes())
	assert.True(t, sh.state.IsDisabled("r:a:c"))
	assert.Equal(t, []string{"a", "r"}, sh.state.SelectedEntityIDs())

	run(t, sh, "block cta asset")
	assert.Equal(t, []string{"cta", "asset"}, sh.state.BlockedContentTypes())

	run(t, sh, "unblock cta")
	assert.Equal(t, []string{"asset"}, sh.state.BlockedContentTypes())
	assert.False(t, sh.state.IsDisabled("r:a:c"))
	assert.Equal(t, []string{"a", "r"}, sh.state.SelectedEntityIDs(), "unblocking does not restore")
}

func TestSelectShellSaveAndRestore(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()

	run(t, sh, "show")
	run(t, sh, "toggle 3")
	run(t, sh, "save")

	ids, _, err := sh.store.LoadSelection(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "r"}, ids)

	fresh := &selectShell{
		state:  selection.New(sh.state.Tree(), selection.Options{}),
		store:  sh.store,
		rootID: "r",
		out:    &bytes.Buffer{},
	}
	require.NoError(t, fresh.restore(ctx))
	assert.Equal(t, []string{"a", "c", "r"}, fresh.state.SelectedEntityIDs())
	assert.True(t, fresh.state.IsSelected("r:a:c"))
	assert.True(t, fresh.state.IsSelected("r:a:r"), "every position of a saved entry is reselected")
}

func TestSelectShellCommands(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()

	quit, err := sh.exec(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, quit)

	quit, err = sh.exec(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, quit)

	_, err = sh.exec(ctx, "frobnicate")
	assert.Error(t, err)

	_, err = sh.exec(ctx, "expand")
	assert.Error(t, err)

	run(t, sh, "help")
	run(t, sh, "selected")
}
