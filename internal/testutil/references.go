package testutil

import (
	"strconv"

	"github.com/pders01/skuref/internal/models"
)

// Link builds an entry link value.
func Link(id string) map[string]any {
	return map[string]any{
		"sys": map[string]any{
			"type":     models.LinkType,
			"linkType": models.EntryLinkType,
			"id":       id,
		},
	}
}

// Entry builds an entry of the given content type whose "refs" field links
// to the given ids and whose "title" is the id.
func Entry(id, contentType string, refs ...string) *models.Entry {
	links := make([]any, 0, len(refs))
	for _, ref := range refs {
		links = append(links, Link(ref))
	}

	fields := map[string]map[string]any{
		"title": {"en-US": id},
	}
	if len(refs) > 0 {
		fields["refs"] = map[string]any{"en-US": links}
	}

	return &models.Entry{
		Sys: models.Sys{
			ID:          id,
			Type:        "Entry",
			ContentType: &models.LinkRef{Sys: models.Sys{ID: contentType, Type: "Link", LinkType: "ContentType"}},
		},
		Fields: fields,
	}
}

// RefMap indexes entries by id.
func RefMap(entries ...*models.Entry) models.ReferenceMap {
	refs := make(models.ReferenceMap, len(entries))
	for _, e := range entries {
		refs[e.Sys.ID] = e
	}
	return refs
}

// Chain builds a linear chain of n entries id0 -> id1 -> ... -> id(n-1).
func Chain(n int, contentType string) models.ReferenceMap {
	refs := make(models.ReferenceMap, n)
	for i := 0; i < n; i++ {
		var next []string
		if i+1 < n {
			next = append(next, chainID(i+1))
		}
		refs[chainID(i)] = Entry(chainID(i), contentType, next...)
	}
	return refs
}

func chainID(i int) string {
	return "n" + strconv.Itoa(i)
}
