// Package shopify talks to the storefront GraphQL API: paged product and
// collection search for the pagination engines, and batched preview lookups
// for stored SKUs.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/transform"
)

const (
	DefaultAPIVersion  = "2024-01"
	DefaultChunkSize   = 250
	DefaultConcurrency = 4

	tokenHeader = "X-Shopify-Storefront-Access-Token"
)

// ErrInvalidConfig wraps every parameter validation failure.
var ErrInvalidConfig = errors.New("invalid shopify configuration")

// Config holds storefront credentials and request tuning.
type Config struct {
	APIEndpoint           string
	StorefrontAccessToken string
	APIVersion            string
	SortBy                string
	Reverse               bool
	// ChunkSize caps the ids sent in one preview request.
	ChunkSize   int
	Concurrency int
	HTTPClient  *http.Client
	// BaseURL overrides the https://<domain> prefix, for tests.
	BaseURL string
}

// ValidateParameters reports every missing or malformed credential.
func ValidateParameters(cfg Config) error {
	var result *multierror.Error

	domain := transform.RemoveHTTPSAndTrailingSlash(cfg.APIEndpoint)
	switch {
	case domain == "":
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, "missing API endpoint"))
	case strings.ContainsAny(domain, " /?#"):
		result = multierror.Append(result, errors.Wrapf(ErrInvalidConfig, "API endpoint %q is not a bare domain", cfg.APIEndpoint))
	}

	if strings.TrimSpace(cfg.StorefrontAccessToken) == "" {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, "missing storefront access token"))
	}

	return result.ErrorOrNil()
}

// Client is a minimal storefront GraphQL client.
type Client struct {
	cfg      Config
	http     *http.Client
	endpoint string
}

// NewClient validates cfg and fills in defaults.
func NewClient(cfg Config) (*Client, error) {
	if err := ValidateParameters(cfg); err != nil {
		return nil, err
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	base := cfg.BaseURL
	if base == "" {
		base = "https://" + transform.RemoveHTTPSAndTrailingSlash(cfg.APIEndpoint)
	}

	return &Client{
		cfg:      cfg,
		http:     cfg.HTTPClient,
		endpoint: fmt.Sprintf("%s/api/%s/graphql.json", strings.TrimRight(base, "/"), cfg.APIVersion),
	}, nil
}

// APIEndpoint returns the bare storefront domain, used for admin links.
func (c *Client) APIEndpoint() string {
	return transform.RemoveHTTPSAndTrailingSlash(c.cfg.APIEndpoint)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Query runs a GraphQL query and decodes its data into out.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(err, "encoding query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.cfg.StorefrontAccessToken)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "storefront request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading storefront response")
	}

	logrus.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(data),
		"duration": time.Since(start),
	}).Debug("storefront query")

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("storefront returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var gr graphQLResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return errors.Wrap(err, "decoding storefront response")
	}

	if len(gr.Errors) > 0 {
		var result *multierror.Error
		for _, e := range gr.Errors {
			result = multierror.Append(result, errors.New(e.Message))
		}
		return errors.Wrap(result, "storefront query failed")
	}

	if out == nil || len(gr.Data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(gr.Data, out), "decoding storefront data")
}
