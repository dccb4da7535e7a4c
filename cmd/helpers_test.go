package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/testutil"
)

const testConfigPath = "/config/skuref/config.toml"

// setupCmdTest resets global command state and returns the store path.
func setupCmdTest(t *testing.T) string {
	t.Helper()

	viper.Reset()
	config.SetDefaults(viper.GetViper())

	dbPath := filepath.Join(t.TempDir(), "skuref.db")
	viper.Set("store.path", dbPath)

	oldFs := appFs
	appFs = afero.NewMemMapFs()
	cfgFile = testConfigPath
	storefrontBaseURL = ""

	t.Cleanup(func() {
		appFs = oldFs
		cfgFile = ""
		storefrontBaseURL = ""
		viper.Reset()
	})

	return dbPath
}

// exportEntries is r -> a, b; a -> c, r. x is not reachable.
func exportEntries() []*models.Entry {
	return []*models.Entry{
		testutil.Entry("r", "page", "a", "b"),
		testutil.Entry("a", "section", "c", "r"),
		testutil.Entry("b", "asset"),
		testutil.Entry("c", "cta"),
		testutil.Entry("x", "page"),
	}
}

func writeExport(t *testing.T, path string) {
	t.Helper()

	data, err := json.Marshal(map[string]any{"entries": exportEntries()})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(appFs, path, data, 0644))
}

func importFixture(t *testing.T) {
	t.Helper()

	writeExport(t, "/export.json")
	require.NoError(t, runImport(nil, []string{"/export.json", "r"}))
}
