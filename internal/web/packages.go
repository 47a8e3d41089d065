package web

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pombredanne/aur2/internal/aur"
	"github.com/pombredanne/aur2/internal/render"
)

// SearchPage is the root package listing: every package, or the ones
// matching the visitor's query.
type SearchPage struct {
	// Query is the search term, echoed back into the form. Empty means
	// the unfiltered listing.
	Query string

	Packages []aur.Package

	Printer *message.Printer

	Layout BaseLayout
}

func (SearchPage) Templates(_ context.Context) []string {
	return []string{"search.html.tmpl"}
}

func (page SearchPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{page.Layout}
}

func (SearchPage) Key(_ context.Context) string {
	return "search.html.tmpl"
}

func (page SearchPage) ExecutedTemplate(_ context.Context) string {
	return page.Layout.BaseTemplate()
}

// T translates a string for the page's language.
func (page SearchPage) T(key string, args ...any) string {
	printer := page.Printer
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	return printer.Sprintf(key, args...)
}

// PackagePage is a package's canonical detail page, the target of the links
// the listings render.
type PackagePage struct {
	Package aur.Package

	Printer *message.Printer

	Layout BaseLayout
}

func (PackagePage) Templates(_ context.Context) []string {
	return []string{"package.html.tmpl"}
}

func (page PackagePage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{page.Layout}
}

func (PackagePage) Key(_ context.Context) string {
	return "package.html.tmpl"
}

func (page PackagePage) ExecutedTemplate(_ context.Context) string {
	return page.Layout.BaseTemplate()
}

// T translates a string for the page's language.
func (page PackagePage) T(key string, args ...any) string {
	printer := page.Printer
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	return printer.Sprintf(key, args...)
}
