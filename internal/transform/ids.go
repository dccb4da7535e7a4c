// Package transform maps raw storefront records into preview records.
package transform

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const gidPrefix = "gid://shopify/"

// Storefront resource types as they appear inside a global id.
const (
	TypeProduct        = "Product"
	TypeProductVariant = "ProductVariant"
	TypeCollection     = "Collection"
)

// EncodeID turns a storefront global id into the opaque form stored in
// fields. Already-encoded ids are returned unchanged.
func EncodeID(gid string) string {
	if !strings.HasPrefix(gid, "gid://") {
		return gid
	}
	return base64.StdEncoding.EncodeToString([]byte(gid))
}

// DecodeID reverses EncodeID.
func DecodeID(id string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return "", errors.Wrapf(err, "decode id %q", id)
	}
	return string(raw), nil
}

// FilterAndDecodeValidIDs decodes the given opaque ids and keeps the global
// ids of the requested resource type. Undecodable ids are dropped.
func FilterAndDecodeValidIDs(skus []string, resourceType string) []string {
	pattern := regexp.MustCompile("^gid.*" + regexp.QuoteMeta(resourceType))

	var valid []string
	for _, sku := range skus {
		gid, err := DecodeID(sku)
		if err != nil || gid == "" {
			continue
		}
		if pattern.MatchString(gid) {
			valid = append(valid, gid)
		}
	}
	return valid
}

// parseGID splits "gid://shopify/Product/123" into ("Product", "123").
func parseGID(gid string) (string, string, bool) {
	rest, ok := strings.CutPrefix(gid, gidPrefix)
	if !ok {
		return "", "", false
	}
	resourceType, numericID, ok := strings.Cut(rest, "/")
	if !ok || resourceType == "" || numericID == "" {
		return "", "", false
	}
	// Drop query suffixes such as "?default_variant=true".
	numericID, _, _ = strings.Cut(numericID, "?")
	return resourceType, numericID, true
}

// NumericID returns the trailing numeric part of an opaque id.
func NumericID(id string) (string, bool) {
	gid, err := DecodeID(id)
	if err != nil {
		return "", false
	}
	_, numericID, ok := parseGID(gid)
	return numericID, ok
}

// RemoveHTTPSAndTrailingSlash normalises a configured storefront endpoint
// into a bare domain.
func RemoveHTTPSAndTrailingSlash(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimRight(endpoint, "/")
}

// AdminLink builds the admin URL for an opaque id. productID is only used for
// variants. It returns "" whenever an id cannot be decoded.
func AdminLink(id, productID, apiEndpoint string) string {
	domain := RemoveHTTPSAndTrailingSlash(apiEndpoint)
	if domain == "" {
		return ""
	}

	gid, err := DecodeID(id)
	if err != nil {
		return ""
	}
	resourceType, numericID, ok := parseGID(gid)
	if !ok {
		return ""
	}

	switch resourceType {
	case TypeProduct:
		return fmt.Sprintf("https://%s/admin/products/%s", domain, numericID)
	case TypeCollection:
		return fmt.Sprintf("https://%s/admin/collections/%s", domain, numericID)
	case TypeProductVariant:
		parent, ok := NumericID(productID)
		if !ok {
			return ""
		}
		return fmt.Sprintf("https://%s/admin/products/%s/variants/%s", domain, parent, numericID)
	}
	return ""
}
