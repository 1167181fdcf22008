// Package mcp provides an MCP (Model Context Protocol) server adapter for productsearch.
// It lets AI assistants search the product catalogue and list its collections.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
