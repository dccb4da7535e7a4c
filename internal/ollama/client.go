// Package ollama produces text embeddings through a local Ollama server.
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/pkg/errors"

	"github.com/pders01/skuref/internal/embeddings"
)

const (
	// DefaultModel is the recommended embedding model
	DefaultModel = "nomic-embed-text"
	// DefaultURL is the default Ollama API endpoint
	DefaultURL = "http://localhost:11434"
)

// Embedder turns texts into vectors, one per input in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Model() string
}

// Client wraps the Ollama API client
type Client struct {
	client *api.Client
	model  string
}

var _ Embedder = (*Client)(nil)

// NewClient creates a client for the server at rawURL.
func NewClient(rawURL, model string) (*Client, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid ollama url %q", rawURL)
	}

	return &Client{
		client: api.NewClient(base, &http.Client{Timeout: 30 * time.Second}),
		model:  model,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible
func IsAvailable(rawURL string) bool {
	if rawURL == "" {
		rawURL = DefaultURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Embed generates one embedding per text in a single request.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for i, text := range texts {
		if text == "" {
			return nil, errors.Errorf("text %d is empty", i)
		}
	}

	resp, err := c.client.Embed(ctx, &api.EmbedRequest{
		Model: c.model,
		Input: texts,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generating embeddings")
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, errors.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	out := make([][]float64, len(resp.Embeddings))
	for i, vec := range resp.Embeddings {
		out[i] = embeddings.FromFloat32(vec)
	}
	return out, nil
}

// CheckModel checks if the configured model has been pulled
func (c *Client) CheckModel(ctx context.Context) error {
	listResp, err := c.client.List(ctx)
	if err != nil {
		return errors.Wrap(err, "listing models")
	}

	for _, model := range listResp.Models {
		if model.Name == c.model || model.Model == c.model {
			return nil
		}
	}

	return errors.Errorf("model '%s' not found - run: ollama pull %s", c.model, c.model)
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}
