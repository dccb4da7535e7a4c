package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// StoreVariant, StoreProduct and StoreCollection describe the catalog a
// fake storefront serves. GIDs are plain global ids.
type StoreVariant struct {
	GID   string
	Title string
	SKU   string
	Image string
}

type StoreProduct struct {
	GID      string
	Title    string
	Handle   string
	Image    string
	Variants []StoreVariant
}

type StoreCollection struct {
	GID    string
	Title  string
	Handle string
	Image  string
}

// Catalog builds n products titled "<prefix> <i>" with the given number of
// variants each.
func Catalog(prefix string, n, variants int) []StoreProduct {
	products := make([]StoreProduct, 0, n)
	for i := 0; i < n; i++ {
		num := 1000 + i
		p := StoreProduct{
			GID:    fmt.Sprintf("gid://shopify/Product/%d", num),
			Title:  fmt.Sprintf("%s %d", prefix, i),
			Handle: fmt.Sprintf("%s-%d", strings.ToLower(prefix), i),
			Image:  fmt.Sprintf("https://cdn.example.com/p%d.png", num),
		}
		for v := 0; v < variants; v++ {
			p.Variants = append(p.Variants, StoreVariant{
				GID:   fmt.Sprintf("gid://shopify/ProductVariant/%d%d", num, v),
				Title: fmt.Sprintf("V%d", v),
				SKU:   fmt.Sprintf("SKU-%d-%d", num, v),
			})
		}
		products = append(products, p)
	}
	return products
}

// Storefront is an httptest server speaking the subset of the storefront
// GraphQL API the client uses.
type Storefront struct {
	Server      *httptest.Server
	Token       string
	Products    []StoreProduct
	Collections []StoreCollection

	mu        sync.Mutex
	calls     map[string]int
	variables []map[string]any
	gqlError  string
}

// NewStorefront starts a fake storefront that is closed with the test.
func NewStorefront(t *testing.T, token string, products []StoreProduct, collections []StoreCollection) *Storefront {
	t.Helper()
	s := &Storefront{
		Token:       token,
		Products:    products,
		Collections: collections,
		calls:       make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

// SetGraphQLError makes every following query fail with message. An empty
// message restores normal answers.
func (s *Storefront) SetGraphQLError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gqlError = message
}

// Calls returns how often the named operation was requested.
func (s *Storefront) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Variables returns the variables of every request received.
func (s *Storefront) Variables() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.variables...)
}

func (s *Storefront) handle(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/graphql.json") || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Header.Get("X-Shopify-Storefront-Access-Token") != s.Token {
		http.Error(w, `{"errors":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	op := operation(req.Query)
	s.mu.Lock()
	s.calls[op]++
	s.variables = append(s.variables, req.Variables)
	gqlErr := s.gqlError
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if gqlErr != "" {
		json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]string{{"message": gqlErr}}})
		return
	}

	var data map[string]any
	switch op {
	case "Products":
		data = map[string]any{"products": s.searchProducts(req.Variables)}
	case "Collections":
		data = map[string]any{"collections": s.searchCollections(req.Variables)}
	case "ProductNodes", "VariantNodes", "CollectionNodes":
		data = map[string]any{"nodes": s.nodes(op, req.Variables)}
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func operation(query string) string {
	_, rest, ok := strings.Cut(query, "query ")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, "(")
	return strings.TrimSpace(name)
}

func page[T any](items []T, gidOf func(T) string, vars map[string]any) []T {
	start := 0
	if after, ok := vars["after"].(string); ok && after != "" {
		for i, item := range items {
			if gidOf(item) == after {
				start = i + 1
				break
			}
		}
	}
	first := len(items)
	if f, ok := vars["first"].(float64); ok {
		first = int(f)
	}
	end := min(start+first, len(items))
	if start >= end {
		return nil
	}
	return items[start:end]
}

func matches(title string, vars map[string]any) bool {
	q, _ := vars["query"].(string)
	return strings.Contains(strings.ToLower(title), strings.ToLower(q))
}

func (s *Storefront) searchProducts(vars map[string]any) map[string]any {
	var hits []StoreProduct
	for _, p := range s.Products {
		if matches(p.Title, vars) {
			hits = append(hits, p)
		}
	}
	edges := []map[string]any{}
	for _, p := range page(hits, func(p StoreProduct) string { return p.GID }, vars) {
		edges = append(edges, map[string]any{"cursor": p.GID, "node": productJSON(p)})
	}
	return map[string]any{"edges": edges}
}

func (s *Storefront) searchCollections(vars map[string]any) map[string]any {
	var hits []StoreCollection
	for _, c := range s.Collections {
		if matches(c.Title, vars) {
			hits = append(hits, c)
		}
	}
	edges := []map[string]any{}
	for _, c := range page(hits, func(c StoreCollection) string { return c.GID }, vars) {
		edges = append(edges, map[string]any{"cursor": c.GID, "node": collectionJSON(c)})
	}
	return map[string]any{"edges": edges}
}

func (s *Storefront) nodes(op string, vars map[string]any) []any {
	ids, _ := vars["ids"].([]any)
	out := make([]any, 0, len(ids))
	for _, raw := range ids {
		id, _ := raw.(string)
		out = append(out, s.node(op, id))
	}
	return out
}

func (s *Storefront) node(op, id string) any {
	switch op {
	case "ProductNodes":
		for _, p := range s.Products {
			if p.GID == id {
				return productJSON(p)
			}
		}
	case "CollectionNodes":
		for _, c := range s.Collections {
			if c.GID == id {
				return collectionJSON(c)
			}
		}
	case "VariantNodes":
		for _, p := range s.Products {
			for _, v := range p.Variants {
				if v.GID == id {
					node := variantJSON(v)
					node["product"] = map[string]any{"id": p.GID, "title": p.Title}
					return node
				}
			}
		}
	}
	// unknown ids are null; known ids of another type are an empty object
	if strings.HasPrefix(id, "gid://shopify/") {
		return map[string]any{}
	}
	return nil
}

func imageJSON(src string) any {
	if src == "" {
		return nil
	}
	return map[string]any{"src": src}
}

func variantJSON(v StoreVariant) map[string]any {
	return map[string]any{"id": v.GID, "title": v.Title, "sku": v.SKU, "image": imageJSON(v.Image)}
}

func productJSON(p StoreProduct) map[string]any {
	images := []map[string]any{}
	if p.Image != "" {
		images = append(images, map[string]any{"node": map[string]any{"src": p.Image}})
	}
	variants := []map[string]any{}
	for _, v := range p.Variants {
		variants = append(variants, map[string]any{"node": variantJSON(v)})
	}
	return map[string]any{
		"id":       p.GID,
		"title":    p.Title,
		"handle":   p.Handle,
		"images":   map[string]any{"edges": images},
		"variants": map[string]any{"edges": variants},
	}
}

func collectionJSON(c StoreCollection) map[string]any {
	return map[string]any{"id": c.GID, "title": c.Title, "handle": c.Handle, "image": imageJSON(c.Image)}
}
