package web

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pombredanne/aur2/internal/aur"
	"github.com/pombredanne/aur2/internal/render"
)

// ProfilePage is a user's profile: their packages with the bulk-management
// form on the left, account details and the edit form on the right.
type ProfilePage struct {
	User     aur.User
	Packages []aur.Package

	// OutOfDate is how many of Packages carry the out-of-date marker.
	OutOfDate int

	// Form is the account-details form, possibly carrying validation
	// errors from a failed update.
	Form *aur.AccountForm

	// Printer translates the page's strings for the request's language.
	Printer *message.Printer

	Layout BaseLayout
}

func (ProfilePage) Templates(_ context.Context) []string {
	return []string{"profile.html.tmpl"}
}

func (page ProfilePage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{page.Layout}
}

func (ProfilePage) Key(_ context.Context) string {
	return "profile.html.tmpl"
}

func (page ProfilePage) ExecutedTemplate(_ context.Context) string {
	return page.Layout.BaseTemplate()
}

// T translates a string for the page's language. It's a method rather than a
// template function so the cached template parse stays language-neutral.
func (page ProfilePage) T(key string, args ...any) string {
	printer := page.Printer
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	return printer.Sprintf(key, args...)
}
