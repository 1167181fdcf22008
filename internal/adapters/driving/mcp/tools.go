package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"free-text product query"`
	Collection string `json:"collection,omitempty" jsonschema:"collection to search (default: the configured default)"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"number of results to return, 1 to 20 (default 5)"`
}

// SearchOutput is the output schema for the search_products tool.
type SearchOutput struct {
	Collection string          `json:"collection"`
	Results    []ProductOutput `json:"results"`
	Count      int             `json:"count"`
}

// ProductOutput is one product in display form.
type ProductOutput struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	ModelURL    string `json:"ar_model_glb,omitempty"`
	QuickLook   string `json:"ar_model_usdz,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalogue. Returns ranked products with price, category and 3D/AR model links.",
	}, s.handleSearch)
}

// handleSearch handles the search_products tool invocation.
// Validation and backend errors are reported as tool errors.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req := domain.SearchRequest{
		Query:      input.Query,
		Collection: input.Collection,
		TopK:       input.TopK,
	}
	if req.Collection == "" {
		req.Collection = s.ports.Search.Defaults().Collection
	}

	resp, err := s.ports.Search.Search(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Collection: req.Collection,
		Results:    make([]ProductOutput, resp.Len()),
		Count:      resp.Len(),
	}

	for i, item := range resp.Results {
		output.Results[i] = ProductOutput{
			Rank:        i + 1,
			Name:        item.DisplayName(),
			Description: item.DisplayDescription(),
			Category:    item.DisplayCategory(),
			Price:       item.DisplayPrice(),
			ModelURL:    item.ModelURL(),
			QuickLook:   item.QuickLookURL(),
		}
	}

	return nil, output, nil
}
