// Package references gathers the flat reference map of a root entry by
// following entry links through an EntryGetter.
package references

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/models"
)

// ErrEntryNotFound is returned by getters for ids they do not hold.
var ErrEntryNotFound = errors.New("entry not found")

// EntryGetter fetches a single entry by id.
type EntryGetter interface {
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
}

// Collector walks entry links depth-first from a root, fetching each entry
// once. Entries that cannot be fetched are skipped.
type Collector struct {
	Getter EntryGetter
	// OnProgress, if set, receives the number of collected entries after
	// each new entry.
	OnProgress func(count int)
}

// NewCollector returns a Collector reading from getter.
func NewCollector(getter EntryGetter) *Collector {
	return &Collector{Getter: getter}
}

// Collect returns every entry reachable from rootID, the root included. The
// only error it returns is ctx's.
func (c *Collector) Collect(ctx context.Context, rootID string) (models.ReferenceMap, error) {
	refs := make(models.ReferenceMap)
	tried := make(map[string]struct{})
	stack := []string{rootID}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "collecting references")
		}

		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := tried[id]; ok {
			continue
		}
		tried[id] = struct{}{}

		entry, err := c.Getter.GetEntry(ctx, id)
		if err != nil || entry == nil {
			logrus.WithFields(logrus.Fields{"entry": id, "error": err}).Debug("skipping unavailable entry")
			continue
		}

		refs[id] = entry
		if c.OnProgress != nil {
			c.OnProgress(len(refs))
		}

		// push in reverse so links are visited in field order
		links := entry.LinkedEntryIDs()
		for i := len(links) - 1; i >= 0; i-- {
			if _, ok := tried[links[i]]; !ok {
				stack = append(stack, links[i])
			}
		}
	}

	logrus.WithFields(logrus.Fields{"root": rootID, "entries": len(refs)}).Debug("collected references")
	return refs, nil
}

// MapGetter serves entries from an in-memory reference map.
type MapGetter models.ReferenceMap

// GetEntry returns ErrEntryNotFound for unknown ids.
func (m MapGetter) GetEntry(_ context.Context, id string) (*models.Entry, error) {
	entry, ok := m[id]
	if !ok || entry == nil {
		return nil, errors.Wrapf(ErrEntryNotFound, "entry %s", id)
	}
	return entry, nil
}
