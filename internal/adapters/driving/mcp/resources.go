package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for productsearch resources.
	uriScheme = "productsearch://"
)

// collectionInfo is the JSON form of a collection.
type collectionInfo struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Default bool   `json:"default,omitempty"`
	TopK    int    `json:"default_top_k,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Searchable product collections",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "collections/{name}",
		Name:        "collection",
		Description: "One searchable collection and its search defaults",
		MIMEType:    "application/json",
	}, s.handleCollectionResource)
}

// handleCollectionsResource returns every configured collection.
func (s *Server) handleCollectionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	defaults := s.ports.Search.Defaults()
	collections := s.ports.Search.Collections()

	infos := make([]collectionInfo, len(collections))
	for i, c := range collections {
		infos[i] = collectionInfo{
			Name:    c.Name,
			Label:   c.Label,
			Default: c.Name == defaults.Collection,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleCollectionResource returns a single collection by name.
func (s *Server) handleCollectionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractCollectionName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	c, ok := domain.FindCollection(s.ports.Search.Collections(), name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	defaults := s.ports.Search.Defaults()
	return jsonResult(req.Params.URI, collectionInfo{
		Name:    c.Name,
		Label:   c.Label,
		Default: c.Name == defaults.Collection,
		TopK:    defaults.TopK,
	})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCollectionName extracts the name from a URI like productsearch://collections/{name}.
func extractCollectionName(uri string) string {
	const prefix = uriScheme + "collections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
