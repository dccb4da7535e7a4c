package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Mock Ollama API responses
type mockEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

type mockListResponse struct {
	Models []mockModel `json:"models"`
}

type mockModel struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/embed":
			var req struct {
				Model string   `json:"model"`
				Input []string `json:"input"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			response := mockEmbedResponse{Model: req.Model}
			for i := range req.Input {
				response.Embeddings = append(response.Embeddings, []float32{float32(i), 0.5, 1})
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(response)
		case "/api/tags":
			response := mockListResponse{
				Models: []mockModel{
					{Name: "test-model", Model: "test-model"},
					{Name: "another-model:latest", Model: "another-model:latest"},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(response)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		model     string
		wantModel string
		wantErr   bool
	}{
		{
			name:      "with custom url and model",
			url:       "http://localhost:11434",
			model:     "custom-model",
			wantModel: "custom-model",
		},
		{
			name:      "with default url",
			url:       "",
			model:     "test-model",
			wantModel: "test-model",
		},
		{
			name:      "with all defaults",
			wantModel: DefaultModel,
		},
		{
			name:    "invalid url",
			url:     "http://[::1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, tt.model)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if client.Model() != tt.wantModel {
				t.Errorf("expected model %s, got %s", tt.wantModel, client.Model())
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	server := newMockServer(t)

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "available server",
			url:      server.URL,
			expected: true,
		},
		{
			name:     "unavailable server",
			url:      "http://localhost:99999",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsAvailable(tt.url)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestEmbed(t *testing.T) {
	server := newMockServer(t)

	client, err := NewClient(server.URL, "test-model")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	t.Run("batch", func(t *testing.T) {
		vecs, err := client.Embed(context.Background(), []string{"red shoe", "blue shirt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vecs) != 2 {
			t.Fatalf("expected 2 embeddings, got %d", len(vecs))
		}
		if vecs[1][0] != 1 || vecs[1][1] != 0.5 {
			t.Errorf("unexpected embedding: %v", vecs[1])
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), []string{"ok", ""}); err == nil {
			t.Error("expected error for empty text")
		}
	})

	t.Run("no input", func(t *testing.T) {
		vecs, err := client.Embed(context.Background(), nil)
		if err != nil || vecs != nil {
			t.Errorf("expected nil result, got %v, %v", vecs, err)
		}
	})
}

func TestCheckModel(t *testing.T) {
	server := newMockServer(t)

	tests := []struct {
		name    string
		model   string
		wantErr bool
	}{
		{name: "model exists", model: "test-model"},
		{name: "tagged model exists", model: "another-model:latest"},
		{name: "model does not exist", model: "nonexistent-model-xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(server.URL, tt.model)
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			err = client.CheckModel(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckModel() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
