// Package html renders search results as HTML cards for the web page.
//
// Cards embed the <model-viewer> custom element when a result carries a
// glTF model URL. Every user-supplied value goes through html/template,
// which escapes text and attribute values and filters unsafe URLs.
package html

import (
	"html/template"
	"strings"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// ARModes is the model-viewer ar-modes attribute value.
const ARModes = "scene-viewer webxr quick-look"

const templates = `
{{define "card"}}<article class="rounded-2xl border border-slate-800 bg-slate-900/40 p-5" data-index="{{.Number}}">
  <div class="flex items-start justify-between gap-4">
    <div>
      <div class="text-sm text-slate-400">#{{.Number}}</div>
      <h2 class="mt-1 text-xl font-bold text-slate-100">{{.Name}}</h2>
      <div class="mt-2 text-sm text-slate-300">{{.Description}}</div>
    </div>
    <div class="shrink-0 text-right">
      <div class="category rounded-full border border-slate-700 bg-slate-950/30 px-3 py-1 text-xs font-semibold text-slate-200">{{.Category}}</div>
      <div class="price mt-2 text-lg font-extrabold text-white">{{.Price}}</div>
    </div>
  </div>
{{- if .ModelURL}}
  <div class="mt-4">
    <div class="text-sm font-semibold text-slate-200">3D / AR</div>
    <div class="mt-2 overflow-hidden rounded-xl border border-slate-800">
      <model-viewer src="{{.ModelURL}}"{{if .QuickLookURL}} ios-src="{{.QuickLookURL}}"{{end}} ar ar-modes="{{.ARModes}}" camera-controls auto-rotate exposure="1" shadow-intensity="0.8" style="width: 100%; height: 420px;"></model-viewer>
    </div>
    <div class="mt-2 text-xs text-slate-400">Tip: open on mobile, tap AR.</div>
  </div>
{{- else}}
  <div class="no-ar mt-4 rounded-xl border border-amber-800/60 bg-amber-900/10 px-4 py-3 text-sm text-amber-200">{{.NoARNotice}}</div>
{{- end}}
</article>{{end}}
{{define "notice"}}<div class="notice notice-{{.Kind}} rounded-xl border px-4 py-3 text-sm md:col-span-2 {{.Classes}}">{{.Text}}</div>{{end}}
`

var tmpl = template.Must(template.New("render").Parse(templates))

// noticeClasses maps a notice kind to its colour classes.
var noticeClasses = map[domain.NoticeKind]string{
	domain.NoticeError:   "border-rose-800/60 bg-rose-900/10 text-rose-200",
	domain.NoticeInfo:    "border-slate-800 bg-slate-900/40 text-slate-200",
	domain.NoticeWarning: "border-amber-800/60 bg-amber-900/10 text-amber-200",
}

// cardData is the view model for one card.
type cardData struct {
	Number       int
	Name         string
	Description  string
	Category     string
	Price        string
	ModelURL     string
	QuickLookURL string
	ARModes      string
	NoARNotice   string
}

type noticeData struct {
	Kind    domain.NoticeKind
	Classes string
	Text    string
}

// Renderer renders results as HTML fragments.
type Renderer struct{}

// NewRenderer creates an HTML renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderCard renders one result as an <article> card. index is zero-based.
func (r *Renderer) RenderCard(item domain.SearchResultItem, index int) string {
	data := cardData{
		Number:      index + 1,
		Name:        item.DisplayName(),
		Description: item.DisplayDescription(),
		Category:    item.DisplayCategory(),
		Price:       item.DisplayPrice(),
		ARModes:     ARModes,
		NoARNotice:  domain.NoticeNoARModel,
	}
	if item.HasARModel() {
		data.ModelURL = item.ModelURL()
		data.QuickLookURL = item.QuickLookURL()
	}
	return execute("card", data)
}

// RenderNotice renders a message block in place of cards.
func (r *Renderer) RenderNotice(kind domain.NoticeKind, text string) string {
	classes, ok := noticeClasses[kind]
	if !ok {
		classes = noticeClasses[domain.NoticeInfo]
	}
	return execute("notice", noticeData{Kind: kind, Classes: classes, Text: text})
}

// JoinCards combines rendered cards.
func (r *Renderer) JoinCards(cards []string) string {
	return strings.Join(cards, "\n")
}

func execute(name string, data any) string {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		// Templates are static; failure here is a programming error.
		logger.Error("render %s: %v", name, err)
		return ""
	}
	return b.String()
}
