package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Product Search</title>
  <script type="module" src="{{.ModelViewerSrc}}"></script>
</head>
<body class="bg-slate-950 text-slate-100">
  <main class="mx-auto max-w-5xl p-6">
    <h1 class="text-3xl font-extrabold">Product Search</h1>
    <form id="searchForm" method="get" action="/search" class="mt-6 grid gap-3 md:grid-cols-4">
      <input id="query" name="q" type="search" value="{{.Query}}" placeholder="e.g. red running shoes" autofocus>
      <select id="collection" name="collection">
{{- range .Collections}}
        <option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
      </select>
      <input id="topk" name="top_k" type="number" min="1" max="{{.MaxTopK}}" value="{{.TopK}}">
      <div class="flex gap-2">
        <button id="searchBtn" type="submit" name="action" value="search">Search</button>
        <button id="clearBtn" type="submit" name="action" value="clear" formnovalidate>Clear</button>
      </div>
    </form>
    <div id="status" class="mt-4 text-sm text-slate-400" role="status">{{.Status}}</div>
    <section id="results" class="mt-6 grid gap-4 md:grid-cols-2">{{.Results}}</section>
  </main>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// option is one collection in the selector.
type option struct {
	Name     string
	Label    string
	Selected bool
}

// pageData is the view model for the search page.
type pageData struct {
	ModelViewerSrc string
	Query          string
	Collections    []option
	TopK           string
	MaxTopK        int
	Status         string
	Results        template.HTML
}

// formState is a snapshot of a page after the handlers ran.
type formState struct {
	Query       string
	Collections []domain.Collection
	Collection  string
	TopK        string
	Status      string
	Results     string
}

// renderPage executes the page template. results must already be
// rendered HTML; every other value is escaped.
func renderPage(state formState) ([]byte, error) {
	options := make([]option, len(state.Collections))
	for i, c := range state.Collections {
		options[i] = option{Name: c.Name, Label: c.Label, Selected: c.Name == state.Collection}
	}

	data := pageData{
		ModelViewerSrc: modelViewerSrc,
		Query:          state.Query,
		Collections:    options,
		TopK:           state.TopK,
		MaxTopK:        domain.MaxTopK,
		Status:         state.Status,
		Results:        template.HTML(state.Results), //nolint:gosec // produced by the html renderer
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
