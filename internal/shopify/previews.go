package shopify

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/transform"
)

// FetchProductPreviews resolves stored product SKUs. The result holds one
// record per requested SKU in request order; unknown or malformed SKUs come
// back as missing records.
func (c *Client) FetchProductPreviews(ctx context.Context, skus []string) ([]models.Product, error) {
	return c.fetchPreviews(ctx, skus, transform.TypeProduct, productNodesQuery, func(raw json.RawMessage) ([]models.Product, error) {
		var n productNode
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return []models.Product{transform.Product(n.raw(), c.APIEndpoint())}, nil
	})
}

// FetchVariantPreviews resolves stored variant SKUs.
func (c *Client) FetchVariantPreviews(ctx context.Context, skus []string) ([]models.Product, error) {
	return c.fetchPreviews(ctx, skus, transform.TypeProductVariant, variantNodesQuery, func(raw json.RawMessage) ([]models.Product, error) {
		var n variantNode
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return []models.Product{transform.Variant(n.raw(), c.APIEndpoint())}, nil
	})
}

// FetchCollectionPreviews resolves stored collection SKUs.
func (c *Client) FetchCollectionPreviews(ctx context.Context, skus []string) ([]models.Product, error) {
	return c.fetchPreviews(ctx, skus, transform.TypeCollection, collectionNodesQuery, func(raw json.RawMessage) ([]models.Product, error) {
		var n collectionNode
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return []models.Product{transform.Collection(n.raw(), c.APIEndpoint())}, nil
	})
}

type convertFunc func(raw json.RawMessage) ([]models.Product, error)

func (c *Client) fetchPreviews(ctx context.Context, skus []string, resourceType, query string, convert convertFunc) ([]models.Product, error) {
	if len(skus) == 0 {
		return []models.Product{}, nil
	}

	gids := transform.FilterAndDecodeValidIDs(skus, resourceType)
	chunks := chunk(gids, c.cfg.ChunkSize)

	p := pool.NewWithResults[[]models.Product]().
		WithContext(ctx).
		WithMaxGoroutines(c.cfg.Concurrency)

	for _, ids := range chunks {
		p.Go(func(ctx context.Context) ([]models.Product, error) {
			return c.fetchNodes(ctx, ids, query, convert)
		})
	}

	pages, err := p.Wait()
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s previews", resourceType)
	}

	var found []models.Product
	for _, page := range pages {
		found = append(found, page...)
	}

	logrus.WithFields(logrus.Fields{
		"type":      resourceType,
		"requested": len(skus),
		"valid":     len(gids),
		"found":     len(found),
		"chunks":    len(chunks),
	}).Debug("fetched previews")

	return transform.Reconcile(skus, found), nil
}

func (c *Client) fetchNodes(ctx context.Context, ids []string, query string, convert convertFunc) ([]models.Product, error) {
	var data struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := c.Query(ctx, query, map[string]any{"ids": ids}, &data); err != nil {
		return nil, err
	}

	var out []models.Product
	for _, raw := range data.Nodes {
		// unknown ids and ids of another type come back as null or {}
		if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
			continue
		}
		records, err := convert(raw)
		if err != nil {
			logrus.WithError(err).Debug("skipping undecodable node")
			continue
		}
		for _, r := range records {
			if r.ID != "" {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func chunk(ids []string, size int) [][]string {
	var chunks [][]string
	for size < len(ids) {
		ids, chunks = ids[size:], append(chunks, ids[:size])
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
