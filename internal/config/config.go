// Package config exposes typed accessors over the viper configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Dir returns the configuration directory, $HOME/.config/skuref.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skuref"
	}
	return filepath.Join(home, ".config", "skuref")
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("shopify.api_endpoint", "")
	v.SetDefault("shopify.storefront_access_token", "")
	v.SetDefault("shopify.api_version", "2024-01")
	v.SetDefault("search.per_page", 20)
	v.SetDefault("search.sort_by", "TITLE")
	v.SetDefault("search.reverse", false)
	v.SetDefault("search.max_backfill_passes", 25)
	v.SetDefault("previews.chunk_size", 250)
	v.SetDefault("previews.concurrency", 4)
	v.SetDefault("tree.default_locale", "en-US")
	v.SetDefault("tree.max_level", 10)
	v.SetDefault("tree.max_nodes_to_expand", 100)
	v.SetDefault("tree.block_content_types", []string{})
	v.SetDefault("store.path", filepath.Join(Dir(), "skuref.db"))
	v.SetDefault("retention.days", 90)
	v.SetDefault("embeddings.enabled", false)
	v.SetDefault("embeddings.model", "nomic-embed-text")
	v.SetDefault("embeddings.ollama_url", "http://localhost:11434")
	v.SetDefault("log.verbose", false)
}

// GetAPIEndpoint returns the storefront domain
func GetAPIEndpoint() string {
	return viper.GetString("shopify.api_endpoint")
}

// GetAccessToken returns the storefront access token
func GetAccessToken() string {
	return viper.GetString("shopify.storefront_access_token")
}

// GetAPIVersion returns the storefront API version
func GetAPIVersion() string {
	return viper.GetString("shopify.api_version")
}

// GetPerPage returns the search page size
func GetPerPage() int {
	return viper.GetInt("search.per_page")
}

// GetSortBy returns the storefront sort key
func GetSortBy() string {
	return strings.ToUpper(viper.GetString("search.sort_by"))
}

// GetReverse returns the sort direction
func GetReverse() bool {
	return viper.GetBool("search.reverse")
}

// GetMaxBackfillPasses returns the variant backfill limit
func GetMaxBackfillPasses() int {
	return viper.GetInt("search.max_backfill_passes")
}

// GetChunkSize returns the number of ids per preview request
func GetChunkSize() int {
	return viper.GetInt("previews.chunk_size")
}

// GetConcurrency returns the number of parallel preview requests
func GetConcurrency() int {
	return viper.GetInt("previews.concurrency")
}

// GetDefaultLocale returns the locale used for internal names
func GetDefaultLocale() string {
	return viper.GetString("tree.default_locale")
}

// GetMaxLevel returns the tree depth cap
func GetMaxLevel() int {
	return viper.GetInt("tree.max_level")
}

// GetMaxNodesToExpand returns the entry count above which only the root is
// expanded initially
func GetMaxNodesToExpand() int {
	return viper.GetInt("tree.max_nodes_to_expand")
}

// GetBlockedContentTypes returns the content type block list
func GetBlockedContentTypes() []string {
	return viper.GetStringSlice("tree.block_content_types")
}

// GetStorePath returns the sqlite database path
func GetStorePath() string {
	return viper.GetString("store.path")
}

// GetRetentionDays returns the retention period in days
func GetRetentionDays() int {
	return viper.GetInt("retention.days")
}

// EmbeddingsEnabled reports whether semantic ranking may be used
func EmbeddingsEnabled() bool {
	return viper.GetBool("embeddings.enabled")
}

// GetEmbeddingModel returns the embedding model name
func GetEmbeddingModel() string {
	return viper.GetString("embeddings.model")
}

// GetOllamaURL returns the ollama endpoint
func GetOllamaURL() string {
	return viper.GetString("embeddings.ollama_url")
}

// Verbose reports whether debug logging is on
func Verbose() bool {
	return viper.GetBool("log.verbose")
}

// Validate checks the numeric and locale settings and reports every problem
// at once. Storefront credentials are checked by the shopify client.
func Validate() error {
	var result *multierror.Error

	for _, setting := range []struct {
		key   string
		value int
	}{
		{"search.per_page", GetPerPage()},
		{"search.max_backfill_passes", GetMaxBackfillPasses()},
		{"previews.chunk_size", GetChunkSize()},
		{"previews.concurrency", GetConcurrency()},
		{"tree.max_level", GetMaxLevel()},
		{"tree.max_nodes_to_expand", GetMaxNodesToExpand()},
	} {
		if setting.value <= 0 {
			result = multierror.Append(result, errors.Errorf("%s must be positive, got %d", setting.key, setting.value))
		}
	}

	if GetRetentionDays() < 0 {
		result = multierror.Append(result, errors.Errorf("retention.days must not be negative, got %d", GetRetentionDays()))
	}

	if _, err := language.Parse(GetDefaultLocale()); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "tree.default_locale %q", GetDefaultLocale()))
	}

	return result.ErrorOrNil()
}
