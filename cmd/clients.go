package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/ollama"
	"github.com/pders01/skuref/internal/pagination"
	"github.com/pders01/skuref/internal/rank"
	"github.com/pders01/skuref/internal/reftree"
	"github.com/pders01/skuref/internal/shopify"
	"github.com/pders01/skuref/internal/store"
)

// storefrontBaseURL replaces https://<domain> when set.
var storefrontBaseURL string

func newShopifyClient() (*shopify.Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := shopify.NewClient(shopify.Config{
		APIEndpoint:           config.GetAPIEndpoint(),
		StorefrontAccessToken: config.GetAccessToken(),
		APIVersion:            config.GetAPIVersion(),
		SortBy:                config.GetSortBy(),
		Reverse:               config.GetReverse(),
		ChunkSize:             config.GetChunkSize(),
		Concurrency:           config.GetConcurrency(),
		BaseURL:               storefrontBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront client: %w", err)
	}
	return client, nil
}

func engineOptions() pagination.Options {
	return pagination.Options{
		PageSize:          config.GetPerPage(),
		MaxBackfillPasses: config.GetMaxBackfillPasses(),
	}
}

func openStore() (*store.Store, error) {
	s, err := store.Open(config.GetStorePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

// newRanker returns a ranker backed by ollama with the store as embedding
// cache.
func newRanker(ctx context.Context, cache rank.Cache) (*rank.Ranker, error) {
	if !config.EmbeddingsEnabled() {
		return nil, fmt.Errorf("embeddings are disabled; set embeddings.enabled = true in config")
	}
	if !ollama.IsAvailable(config.GetOllamaURL()) {
		return nil, fmt.Errorf("ollama is not reachable at %s", config.GetOllamaURL())
	}

	client, err := ollama.NewClient(config.GetOllamaURL(), config.GetEmbeddingModel())
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	if err := client.CheckModel(ctx); err != nil {
		return nil, fmt.Errorf("embedding model unavailable: %w", err)
	}

	return rank.New(client, cache), nil
}

func loadSnapshot(ctx context.Context, s *store.Store, rootID string) (*models.Snapshot, error) {
	snap, err := s.LatestSnapshot(ctx, rootID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no snapshot for root %s; run 'skuref import' first", rootID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snap, nil
}

// buildTree builds the reference tree for a snapshot. Large reference maps
// are built in the background behind a spinner.
func buildTree(snap *models.Snapshot) (*models.TreeNode, error) {
	builder := reftree.Builder{
		MaxLevel:      config.GetMaxLevel(),
		DefaultLocale: config.GetDefaultLocale(),
	}

	if len(snap.Entries) <= config.GetMaxNodesToExpand() {
		return checkRoot(builder.Build(snap.Entries, snap.RootID), snap.RootID)
	}

	done := make(chan *models.TreeNode, 1)
	go func() {
		done <- builder.Build(snap.Entries, snap.RootID)
	}()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Building tree (%d entries)", len(snap.Entries))),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case tree := <-done:
			_ = bar.Finish()
			return checkRoot(tree, snap.RootID)
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

func checkRoot(tree *models.TreeNode, rootID string) (*models.TreeNode, error) {
	if tree == nil {
		return nil, fmt.Errorf("root entry %s is not in the snapshot", rootID)
	}
	return tree, nil
}

func loadTree(ctx context.Context, rootID string) (*models.Snapshot, *models.TreeNode, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer s.Close()

	snap, err := loadSnapshot(ctx, s, rootID)
	if err != nil {
		return nil, nil, err
	}

	tree, err := buildTree(snap)
	if err != nil {
		return nil, nil, err
	}
	return snap, tree, nil
}
