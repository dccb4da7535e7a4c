package reftree

import (
	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/models"
)

// Builder holds the tunables of a tree build.
type Builder struct {
	MaxLevel      int
	DefaultLocale string
}

// DefaultBuilder uses MaxLevel and DefaultLocale.
var DefaultBuilder = Builder{MaxLevel: MaxLevel, DefaultLocale: DefaultLocale}

// Build builds the tree rooted at rootID with the default settings.
func Build(refs models.ReferenceMap, rootID string) *models.TreeNode {
	return DefaultBuilder.Build(refs, rootID)
}

// Build returns nil if rootID is not in refs. Links to entries missing from
// refs are skipped.
func (b Builder) Build(refs models.ReferenceMap, rootID string) *models.TreeNode {
	if b.MaxLevel <= 0 {
		b.MaxLevel = MaxLevel
	}
	if b.DefaultLocale == "" {
		b.DefaultLocale = DefaultLocale
	}
	if refs[rootID] == nil {
		logrus.WithField("root", rootID).Debug("root entry not in reference map")
		return nil
	}

	w := walk{builder: b, refs: refs, onBranch: make(map[string]struct{})}
	return w.node(rootID, 0)
}

type walk struct {
	builder  Builder
	refs     models.ReferenceMap
	onBranch map[string]struct{}
}

func (w *walk) node(entryID string, level int) *models.TreeNode {
	entry := w.refs[entryID]
	if entry == nil {
		return nil
	}

	n := w.leaf(entryID, entry)

	if _, cyclic := w.onBranch[entryID]; cyclic {
		return n
	}

	childIDs := ChildIDs(entry, w.refs)
	if len(childIDs) == 0 {
		return n
	}

	if level >= w.builder.MaxLevel {
		n.Children = append(n.Children, &models.TreeNode{
			EntryID:           placeholderPrefix + entryID,
			Entry:             entry,
			DisplayName:       MorePlaceholder,
			IsMorePlaceholder: true,
			Children:          []*models.TreeNode{},
		})
		return n
	}

	w.onBranch[entryID] = struct{}{}
	for _, childID := range childIDs {
		if child := w.node(childID, level+1); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	delete(w.onBranch, entryID)

	return n
}

func (w *walk) leaf(entryID string, entry *models.Entry) *models.TreeNode {
	contentTypeID := entry.ContentTypeID()
	return &models.TreeNode{
		EntryID:       entryID,
		Entry:         entry,
		ContentTypeID: contentTypeID,
		DisplayName:   DisplayName(contentTypeID),
		InternalName:  InternalName(entry, w.builder.DefaultLocale),
		IsAsset:       IsAsset(contentTypeID),
		Children:      []*models.TreeNode{},
	}
}

// ChildIDs returns the distinct linked entry ids of entry that exist in refs,
// in first-seen order.
func ChildIDs(entry *models.Entry, refs models.ReferenceMap) []string {
	var ids []string
	for _, id := range entry.LinkedEntryIDs() {
		if refs[id] != nil {
			ids = append(ids, id)
		}
	}
	return ids
}
