// Package web is the HTTP surface of aur2: the profile and submission pages,
// the endpoints their forms post to, and the Site singleton they render
// against.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/pombredanne/aur2/internal/aur"
	"github.com/pombredanne/aur2/internal/render"
)

//go:embed templates
var templateFiles embed.FS

func templateDir() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		// the templates directory is compiled in; this can't fail at
		// runtime
		panic(err)
	}
	return sub
}

// Site is the server-wide singleton the pages render against. It carries the
// template cache, the site title, and the store handle the handlers read
// from.
type Site struct {
	*render.CachedSite

	// Title is shown in the layout header and the default page title.
	Title string

	// Store is the backing view-data source.
	Store aur.Store
}

// NewSite returns a Site rendering the compiled-in templates.
func NewSite(store aur.Store, title string) *Site {
	return &Site{
		CachedSite: render.NewCachedSite(templateDir()),
		Title:      title,
		Store:      store,
	}
}

// FuncMap adds the site-wide template functions.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		// date renders timestamps the way the rest of the site does
		"date": func(t time.Time) string {
			return t.Format("Jan. 2, 2006")
		},
	}
}

// ServerErrorPage is rendered when a page fails to render.
func (s *Site) ServerErrorPage(_ context.Context) render.Renderable {
	return ErrorPage{}
}

// ErrorPage is the stand-alone page shown when rendering fails. It doesn't
// use the base layout: if the layout is what broke, it still has to render.
type ErrorPage struct{}

func (ErrorPage) Templates(_ context.Context) []string {
	return []string{"error.html.tmpl"}
}

func (ErrorPage) Key(_ context.Context) string {
	return "error.html.tmpl"
}

func (ErrorPage) ExecutedTemplate(_ context.Context) string {
	return "error.html.tmpl"
}
