package models

import (
	"sort"

	"github.com/spf13/cast"
)

const (
	LinkType      = "Link"
	EntryLinkType = "Entry"
)

// Sys is the system metadata block shared by entries and links.
type Sys struct {
	ID          string   `json:"id"`
	Type        string   `json:"type,omitempty"`
	LinkType    string   `json:"linkType,omitempty"`
	Version     int      `json:"version,omitempty"`
	ContentType *LinkRef `json:"contentType,omitempty"`
}

// LinkRef is a {sys: {...}} wrapper as used for content type references.
type LinkRef struct {
	Sys Sys `json:"sys"`
}

// Entry is a content entry: fields[fieldName][locale] -> value. Values are
// decoded JSON and may embed entry links anywhere in nested maps and arrays.
type Entry struct {
	Sys    Sys                       `json:"sys"`
	Fields map[string]map[string]any `json:"fields"`
}

// ReferenceMap is a flat map from entry id to entry.
type ReferenceMap map[string]*Entry

// ContentTypeID returns the entry's content type id or "".
func (e *Entry) ContentTypeID() string {
	if e == nil || e.Sys.ContentType == nil {
		return ""
	}
	return e.Sys.ContentType.Sys.ID
}

// LinkedEntryIDs returns the ids of every entry link found in the entry's
// fields, in first-seen order without duplicates. Fields and locales are
// visited in sorted key order.
func (e *Entry) LinkedEntryIDs() []string {
	if e == nil {
		return nil
	}

	var ids []string
	seen := make(map[string]struct{})

	for _, fieldName := range sortedKeys(e.Fields) {
		field := e.Fields[fieldName]
		for _, locale := range sortedKeys(field) {
			visitLinks(field[locale], func(id string) {
				if _, ok := seen[id]; ok {
					return
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			})
		}
	}

	return ids
}

// EntryLinkID reports whether value is an entry link and returns its target.
func EntryLinkID(value any) (string, bool) {
	m, ok := asStringMap(value)
	if !ok {
		return "", false
	}
	sys, ok := asStringMap(m["sys"])
	if !ok {
		return "", false
	}
	if cast.ToString(sys["type"]) != LinkType || cast.ToString(sys["linkType"]) != EntryLinkType {
		return "", false
	}
	id := cast.ToString(sys["id"])
	return id, id != ""
}

func visitLinks(value any, visit func(id string)) {
	if value == nil {
		return
	}

	if id, ok := EntryLinkID(value); ok {
		visit(id)
		return
	}

	switch v := value.(type) {
	case []any:
		for _, item := range v {
			visitLinks(item, visit)
		}
	case map[string]any, map[any]any:
		m, _ := asStringMap(v)
		for _, k := range sortedKeys(m) {
			visitLinks(m[k], visit)
		}
	}
}

// asStringMap accepts only map values; cast would otherwise try to parse
// JSON out of plain strings.
func asStringMap(value any) (map[string]any, bool) {
	switch value.(type) {
	case map[string]any, map[any]any:
	default:
		return nil, false
	}
	m, err := cast.ToStringMapE(value)
	return m, err == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
