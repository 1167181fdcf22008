package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/memory"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// Form actions selected by the clicked button.
const (
	actionSearch = "search"
	actionClear  = "clear"
)

// handleIndex serves the empty form with the defaults preselected.
func (s *Server) handleIndex(c echo.Context) error {
	page := s.newPage()
	return s.writePage(c, page)
}

// handleSearch fills a page from the query string and clicks the
// requested button on it.
func (s *Server) handleSearch(c echo.Context) error {
	page := s.newPage()
	page.Query.SetValue(c.QueryParam("q"))
	if v := c.QueryParam("collection"); v != "" {
		if _, ok := domain.FindCollection(s.ports.Search.Collections(), v); !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown collection "+v)
		}
		page.Collection.SetValue(v)
	}
	if v, ok := c.QueryParams()["top_k"]; ok && len(v) > 0 {
		page.TopK.SetValue(v[0])
	}

	client, err := s.ports.NewClient(s.ports.Search, page.Elements(), s.renderer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search client unavailable").SetInternal(err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("close search client: %v", cerr)
		}
	}()

	client.SetContext(c.Request().Context())
	if err := client.Bind(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search client unavailable").SetInternal(err)
	}

	switch action := c.QueryParam("action"); action {
	case actionClear:
		page.ClearBtn.Click()
	case actionSearch, "":
		page.SearchBtn.Click()
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown action "+action)
	}

	logger.Debug("web %s: %s", c.QueryParam("action"), client.LastOutcome().State)
	return s.writePage(c, page)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) newPage() *memory.Page {
	return memory.NewPage(s.ports.Search.Collections(), s.ports.Search.Defaults())
}

func (s *Server) writePage(c echo.Context, page *memory.Page) error {
	body, err := renderPage(formState{
		Query:       page.Query.Value(),
		Collections: page.Collection.Options(),
		Collection:  page.Collection.Value(),
		TopK:        page.TopK.Value(),
		Status:      page.Status.Text(),
		Results:     page.Results.Content(),
	})
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, body)
}
