package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arkenidar/dhtml/pkg/demo"
)

//go:embed templates
var templateFS embed.FS

// pages holds the parsed HTML shells.
var pages = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// demoTitles maps registry names to page headings.
var demoTitles = map[string]string{
	"checkboxes":  "Check Boxes",
	"multipliers": "Multipliers",
	"synchro":     "Synchro",
}

// indexPage feeds index.html.tmpl.
type indexPage struct {
	Demos []indexEntry
}

type indexEntry struct {
	Name  string
	Title string
}

// demoPage feeds the per-demo shells. Only the slice matching the demo
// is populated.
type demoPage struct {
	Name   string
	Title  string
	Boxes  []int
	Fields []fieldView
	Inputs []int
}

// fieldView is one multiplier field as the template renders it.
type fieldView struct {
	Index  int
	Shared bool
	Value  string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page := indexPage{}
	for _, name := range demo.Names {
		page.Demos = append(page.Demos, indexEntry{Name: name, Title: demoTitles[name]})
	}
	s.render(w, "index.html.tmpl", page)
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !knownDemo(name) {
		http.NotFound(w, r)
		return
	}

	page := demoPage{Name: name, Title: demoTitles[name]}
	switch name {
	case "checkboxes":
		for i := 0; i < s.cfg.Demos.CheckboxCount; i++ {
			page.Boxes = append(page.Boxes, i)
		}
	case "multipliers":
		for i, f := range s.cfg.Demos.MultiplierFields {
			page.Fields = append(page.Fields, fieldView{
				Index:  i,
				Shared: f.Role == demo.RoleShared,
				Value:  f.Value,
			})
		}
	case "synchro":
		for i := 0; i < s.cfg.Demos.SynchroWidth; i++ {
			page.Inputs = append(page.Inputs, i)
		}
	}
	s.render(w, name+".html.tmpl", page)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
	}
}
