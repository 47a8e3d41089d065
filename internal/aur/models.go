// Package aur holds the domain model for the package repository: the
// packages users maintain, the users themselves, and the account form the
// profile page edits.
package aur

import "time"

// Package is a single submitted package.
type Package struct {
	// Name identifies the package; it doubles as its URL slug.
	Name string

	// Repository is the repository the package is published in, e.g.
	// "community".
	Repository string

	Version     string
	Release     string
	Description string

	// Maintainer is the username of the maintaining user. Empty means
	// the package is orphaned.
	Maintainer string

	// OutOfDate marks the package as possibly behind its upstream
	// source.
	OutOfDate bool

	// UpdatedAt is when the package was last updated.
	UpdatedAt time.Time
}

// FullVersion returns the version-release string shown next to the package
// name, e.g. "1.2.3-1".
func (p Package) FullVersion() string {
	return p.Version + "-" + p.Release
}

// URL returns the canonical URL for the package's detail page.
func (p Package) URL() string {
	return "/packages/" + p.Name + "/"
}

// Permissions are the per-user capability flags the templates branch on.
type Permissions struct {
	// DeletePackages allows the user to delete packages outright rather
	// than just disowning them.
	DeletePackages bool
}

// User is an account on the site.
type User struct {
	Username string
	Email    string
	RealName string

	// DateJoined is when the account was created.
	DateJoined time.Time

	// Groups is the ordered list of group names the user belongs to.
	Groups []string

	Perms Permissions

	// Notify controls whether the user receives update notifications for
	// packages they maintain.
	Notify bool
}
