package references

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/pders01/skuref/internal/models"
)

// exportFile is the space export layout; only entries are read.
type exportFile struct {
	Entries []*models.Entry `json:"entries"`
}

// LoadExport reads an export file and indexes its entries by id. Entries
// without an id are ignored.
func LoadExport(fs afero.Fs, path string) (MapGetter, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading export %s", path)
	}

	var export exportFile
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, errors.Wrapf(err, "parsing export %s", path)
	}

	entries := make(MapGetter, len(export.Entries))
	for _, e := range export.Entries {
		if e == nil || e.Sys.ID == "" {
			continue
		}
		entries[e.Sys.ID] = e
	}
	return entries, nil
}
