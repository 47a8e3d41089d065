package web

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supported are the languages the site ships translations for. English is
// the source language and must stay first: it's the matcher's fallback.
var supported = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(supported)

// PrinterFor picks a message printer from an Accept-Language header value.
// Unparseable or unknown preferences fall back to English.
func PrinterFor(acceptLanguage string) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return message.NewPrinter(language.English)
	}
	tag, _, _ := matcher.Match(tags...)
	return message.NewPrinter(tag)
}

func init() {
	for key, msg := range germanMessages {
		if err := message.SetString(language.German, key, msg); err != nil {
			panic(err)
		}
	}
}

var germanMessages = map[string]string{
	"User Profile":       "Benutzerprofil",
	"Your Packages":      "Deine Pakete",
	"You have %d packages, of which %d are out of date.": "Du hast %d Pakete, davon sind %d veraltet.",
	"Repository":         "Repositorium",
	"Name":               "Name",
	"Description":        "Beschreibung",
	"Last Updated":       "Zuletzt aktualisiert",
	"Action":             "Aktion",
	"Disown":             "Abgeben",
	"Flag out of date":   "Als veraltet markieren",
	"Unflag out of date": "Veraltet-Markierung entfernen",
	"Delete":             "Löschen",
	"Apply":              "Anwenden",
	"You have not submitted any packages yet.": "Du hast noch keine Pakete eingereicht.",
	"Submit a package":             "Ein Paket einreichen",
	"Account Details":              "Kontodetails",
	"Member since":                 "Mitglied seit",
	"Update":                       "Aktualisieren",
	"Submit Package":               "Paket einreichen",
	"Source tarball":               "Quell-Tarball",
	"Username":                     "Benutzername",
	"Email address":                "E-Mail-Adresse",
	"Real name":                    "Echter Name",
	"Notify me of package updates": "Bei Paketaktualisierungen benachrichtigen",
	"Package accepted.":            "Paket angenommen.",
	"Package Search":               "Paketsuche",
	"Search":                       "Suchen",
	"Maintainer":                   "Betreuer",
	"orphan":                       "verwaist",
	"No packages matched your query.":               "Keine Pakete entsprechen deiner Suche.",
	"This package has been flagged out of date.":    "Dieses Paket wurde als veraltet markiert.",
}
