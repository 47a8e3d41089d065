package web

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pombredanne/aur2/internal/render"
)

// SubmitPage is the package-submission form: a source tarball upload, plus
// the errors and warnings its PKGBUILD validation produced.
type SubmitPage struct {
	// Username is the submitting user, echoed back into the form.
	Username string

	// Errors blocked the submission; Warnings did not, but are shown.
	Errors   []string
	Warnings []string

	// Accepted is set once a submission has gone through, when the page
	// is re-rendered with warnings only.
	Accepted bool

	Printer *message.Printer

	Layout BaseLayout
}

func (SubmitPage) Templates(_ context.Context) []string {
	return []string{"submit.html.tmpl"}
}

func (page SubmitPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{page.Layout}
}

func (SubmitPage) Key(_ context.Context) string {
	return "submit.html.tmpl"
}

func (page SubmitPage) ExecutedTemplate(_ context.Context) string {
	return page.Layout.BaseTemplate()
}

// T translates a string for the page's language.
func (page SubmitPage) T(key string, args ...any) string {
	printer := page.Printer
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	return printer.Sprintf(key, args...)
}
