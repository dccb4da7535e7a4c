package reftree

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pders01/skuref/internal/models"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// DisplayName turns a camelCase content type id into words:
// "blogPost" becomes "Blog Post". "cta" in any casing becomes "CTA".
func DisplayName(contentTypeID string) string {
	if strings.EqualFold(contentTypeID, "cta") {
		return "CTA"
	}
	if contentTypeID == "" {
		return ""
	}

	runes := []rune(contentTypeID)
	first := titleCaser.String(string(runes[0]))

	var b strings.Builder
	b.WriteString(first)
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InternalName reads the first populated common name field, preferring
// locale and falling back to the field's first locale (sorted).
func InternalName(entry *models.Entry, locale string) string {
	if entry == nil {
		return ""
	}
	for _, fieldName := range CommonNameFields {
		values, ok := entry.Fields[fieldName]
		if !ok || len(values) == 0 {
			continue
		}
		if v, ok := values[locale]; ok && v != nil && v != "" {
			return stringValue(v)
		}
		locales := make([]string, 0, len(values))
		for l := range values {
			locales = append(locales, l)
		}
		slices.Sort(locales)
		return stringValue(values[locales[0]])
	}
	return ""
}

// IsAsset reports whether a content type id names an asset-like type.
func IsAsset(contentTypeID string) bool {
	return slices.Contains(AssetContentTypes, strings.ToLower(contentTypeID))
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
