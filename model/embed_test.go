package model

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"localrag/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbedServer(t *testing.T, embedding []float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req OllamaEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)
		assert.NotEmpty(t, req.Prompt)

		json.NewEncoder(w).Encode(OllamaEmbeddingResponse{Embedding: embedding})
	}))
}

func TestEmbedNormalizes(t *testing.T) {
	srv := newEmbedServer(t, []float64{3, 4})
	defer srv.Close()

	e := NewOllamaEmbedder(types.LLMConfig{EmbeddingURL: srv.URL, EmbeddingModel: "nomic-embed-text"})
	vec, err := e.Embed("hello")
	require.NoError(t, err)
	require.Len(t, vec, 2)

	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(types.LLMConfig{EmbeddingURL: srv.URL, EmbeddingModel: "missing"})
	_, err := e.Embed("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEmbedEmptyVector(t *testing.T) {
	srv := newEmbedServer(t, nil)
	defer srv.Close()

	e := NewOllamaEmbedder(types.LLMConfig{EmbeddingURL: srv.URL, EmbeddingModel: "nomic-embed-text"})
	_, err := e.Embed("hello")
	require.Error(t, err)
}

func TestEmbedUnreachable(t *testing.T) {
	e := NewOllamaEmbedder(types.LLMConfig{EmbeddingURL: "http://127.0.0.1:1", EmbeddingModel: "nomic-embed-text"})
	_, err := e.Embed("hello")
	require.Error(t, err)
}
