package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

func TestExtractCollectionName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid collection URI",
			uri:      "productsearch://collections/watches",
			expected: "watches",
		},
		{
			name:     "invalid prefix",
			uri:      "file://collections/watches",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "productsearch://collections/watches/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractCollectionName(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCollectionsResource(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)

	req := makeReadResourceRequest("productsearch://collections")
	result, err := server.handleCollectionsResource(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var infos []collectionInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, "nike_shoes", infos[0].Name)
	assert.True(t, infos[0].Default)
	assert.Equal(t, "Watches", infos[2].Label)
	assert.False(t, infos[2].Default)
}

func TestServer_handleCollectionResource(t *testing.T) {
	ctx := context.Background()
	search := &mockSearchService{collections: []domain.Collection{
		{Name: "bags", Label: "Bags"},
		{Name: "hats", Label: "Hats"},
	}}
	server, err := NewServer(&Ports{Search: search})
	require.NoError(t, err)

	t.Run("returns the collection", func(t *testing.T) {
		req := makeReadResourceRequest("productsearch://collections/hats")
		result, err := server.handleCollectionResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"label": "Hats"`)
		assert.Contains(t, result.Contents[0].Text, `"default_top_k": 5`)
		assert.NotContains(t, result.Contents[0].Text, `"default"`)
	})

	t.Run("unknown collection is not found", func(t *testing.T) {
		req := makeReadResourceRequest("productsearch://collections/cars")
		_, err := server.handleCollectionResource(ctx, req)
		require.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		req := makeReadResourceRequest("productsearch://other/hats")
		_, err := server.handleCollectionResource(ctx, req)
		require.Error(t, err)
	})
}
