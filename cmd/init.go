package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/config"
)

// appFs is the filesystem used for config and export files.
var appFs = afero.NewOsFs()

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Write a default config.toml to ~/.config/skuref (or the --config path).

The file lists every setting with its default value. Fill in the storefront
domain and access token before searching.

Example:
  skuref init
  skuref init --force          # Overwrite an existing config`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

type shopifySection struct {
	APIEndpoint           string `toml:"api_endpoint"`
	StorefrontAccessToken string `toml:"storefront_access_token"`
	APIVersion            string `toml:"api_version"`
}

type searchSection struct {
	PerPage           int    `toml:"per_page"`
	SortBy            string `toml:"sort_by"`
	Reverse           bool   `toml:"reverse"`
	MaxBackfillPasses int    `toml:"max_backfill_passes"`
}

type previewsSection struct {
	ChunkSize   int `toml:"chunk_size"`
	Concurrency int `toml:"concurrency"`
}

type treeSection struct {
	DefaultLocale     string   `toml:"default_locale"`
	MaxLevel          int      `toml:"max_level"`
	MaxNodesToExpand  int      `toml:"max_nodes_to_expand"`
	BlockContentTypes []string `toml:"block_content_types"`
}

type storeSection struct {
	Path string `toml:"path"`
}

type retentionSection struct {
	Days int `toml:"days"`
}

type embeddingsSection struct {
	Enabled   bool   `toml:"enabled"`
	Model     string `toml:"model"`
	OllamaURL string `toml:"ollama_url"`
}

type fileConfig struct {
	Shopify    shopifySection    `toml:"shopify"`
	Search     searchSection     `toml:"search"`
	Previews   previewsSection   `toml:"previews"`
	Tree       treeSection       `toml:"tree"`
	Store      storeSection      `toml:"store"`
	Retention  retentionSection  `toml:"retention"`
	Embeddings embeddingsSection `toml:"embeddings"`
}

// currentFileConfig snapshots the effective settings into the file layout.
func currentFileConfig() fileConfig {
	return fileConfig{
		Shopify: shopifySection{
			APIEndpoint:           config.GetAPIEndpoint(),
			StorefrontAccessToken: config.GetAccessToken(),
			APIVersion:            config.GetAPIVersion(),
		},
		Search: searchSection{
			PerPage:           config.GetPerPage(),
			SortBy:            config.GetSortBy(),
			Reverse:           config.GetReverse(),
			MaxBackfillPasses: config.GetMaxBackfillPasses(),
		},
		Previews: previewsSection{
			ChunkSize:   config.GetChunkSize(),
			Concurrency: config.GetConcurrency(),
		},
		Tree: treeSection{
			DefaultLocale:     config.GetDefaultLocale(),
			MaxLevel:          config.GetMaxLevel(),
			MaxNodesToExpand:  config.GetMaxNodesToExpand(),
			BlockContentTypes: config.GetBlockedContentTypes(),
		},
		Store:     storeSection{Path: config.GetStorePath()},
		Retention: retentionSection{Days: config.GetRetentionDays()},
		Embeddings: embeddingsSection{
			Enabled:   config.EmbeddingsEnabled(),
			Model:     config.GetEmbeddingModel(),
			OllamaURL: config.GetOllamaURL(),
		},
	}
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(config.Dir(), "config.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()

	exists, err := afero.Exists(appFs, path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if exists && !initForce {
		fmt.Printf("Config already exists: %s\n", path)
		fmt.Println("Use --force to overwrite it.")
		return nil
	}

	if err := appFs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := appFs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(currentFileConfig()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✓ Created config: %s\n", path)
	fmt.Println("\n  Set shopify.api_endpoint and shopify.storefront_access_token,")
	fmt.Println("  then try: skuref search <term>")

	return nil
}
