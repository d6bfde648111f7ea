package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/roach88/recipebox/internal/flash"
)

//go:embed templates static
var assets embed.FS

// View names.
const (
	viewHome   = "home"
	viewList   = "recipe_list"
	viewDetail = "recipe_detail"
	viewAdd    = "add_recipe"
)

var views = []string{viewHome, viewList, viewDetail, viewAdd}

// Page carries data shared by every view.
type Page struct {
	Flashes []flash.Message
}

func (p *Page) setFlashes(msgs []flash.Message) {
	p.Flashes = msgs
}

type pageData interface {
	setFlashes([]flash.Message)
}

// Renderer executes the embedded views.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every view together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(views))}
	for _, name := range views {
		t, err := template.New(name).ParseFS(assets, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %q: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes view name with data and the given status.
//
// The page is executed into a buffer first so a template error never leaves
// a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	page, err := r.execute(name, data)
	if err != nil {
		return err
	}
	return writePage(w, status, page)
}

func (r *Renderer) execute(name string, data any) (*bytes.Buffer, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("execute view %q: %w", name, err)
	}
	return &buf, nil
}

func writePage(w http.ResponseWriter, status int, page *bytes.Buffer) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := page.WriteTo(w)
	return err
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err) // static is embedded; Sub only fails on an invalid path
	}
	return http.FS(sub)
}
