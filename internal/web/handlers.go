package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pombredanne/aur2/internal/aur"
	"github.com/pombredanne/aur2/internal/pkgbuild"
	"github.com/pombredanne/aur2/internal/render"
)

// unsupportedRepository is where freshly submitted packages land until
// they're promoted.
const unsupportedRepository = "unsupported"

// Handlers serves the site's pages and the endpoints their forms post to.
type Handlers struct {
	Site *Site
	Log  *logrus.Logger
}

// NewHandlers wires the handlers to a site and an application logger.
func NewHandlers(site *Site, log *logrus.Logger) *Handlers {
	return &Handlers{Site: site, Log: log}
}

// Router returns the site's routes wrapped in the request middleware.
func (h *Handlers) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Search)
	mux.HandleFunc("GET /users/{username}/{$}", h.Profile)
	mux.HandleFunc("POST /users/{username}/{$}", h.UpdateAccount)
	mux.HandleFunc("POST /packages/manage/{$}", h.ManagePackages)
	mux.HandleFunc("GET /packages/submit/{$}", h.SubmitForm)
	mux.HandleFunc("POST /packages/submit/{$}", h.Submit)
	mux.HandleFunc("GET /packages/{name}/{$}", h.PackageDetail)
	return h.middleware(mux)
}

// Search renders the root page: the package listing, filtered by the q query
// parameter when one is given.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	packages, err := h.Site.Store.SearchPackages(ctx, query)
	if err != nil {
		h.Log.WithError(err).Error("failed to search packages")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	page := SearchPage{
		Query:    query,
		Packages: packages,
		Printer:  PrinterFor(r.Header.Get("Accept-Language")),
		Layout:   BaseLayout{},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	render.Render(ctx, w, h.Site, page)
}

// PackageDetail renders a package's page, the target of every package link
// the listings emit.
func (h *Handlers) PackageDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")
	pkg, err := h.Site.Store.Package(ctx, name)
	if err != nil {
		if errors.Is(err, aur.ErrPackageNotFound) {
			http.NotFound(w, r)
			return
		}
		h.Log.WithError(err).Error("failed to load package")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	page := PackagePage{
		Package: pkg,
		Printer: PrinterFor(r.Header.Get("Accept-Language")),
		Layout:  BaseLayout{},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	render.Render(ctx, w, h.Site, page)
}

// Profile renders a user's profile page.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := r.PathValue("username")
	user, err := h.Site.Store.User(ctx, username)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.renderProfile(w, r, user, aur.NewAccountForm(user), http.StatusOK)
}

// UpdateAccount binds and validates the account form. Invalid input
// re-renders the profile page with field errors; valid input is applied and
// redirects back to the page.
func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := r.PathValue("username")
	user, err := h.Site.Store.User(ctx, username)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	form := aur.NewAccountForm(user)
	form.Bind(r.PostForm)
	if !form.Validate() {
		h.renderProfile(w, r, user, form, http.StatusOK)
		return
	}
	form.Apply(&user)
	if err := h.Site.Store.SaveUser(ctx, user); err != nil {
		h.Log.WithError(err).Error("failed to save account details")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users/"+username+"/", http.StatusSeeOther)
}

func (h *Handlers) renderProfile(w http.ResponseWriter, r *http.Request, user aur.User, form *aur.AccountForm, status int) {
	ctx := r.Context()
	packages, err := h.Site.Store.PackagesByMaintainer(ctx, user.Username)
	if err != nil {
		h.Log.WithError(err).Error("failed to list packages")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	page := ProfilePage{
		User:      user,
		Packages:  packages,
		OutOfDate: aur.OutOfDateCount(packages),
		Form:      form,
		Printer:   PrinterFor(r.Header.Get("Accept-Language")),
		Layout:    BaseLayout{},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	render.Render(ctx, w, h.Site, page)
}

// ManagePackages applies a bulk action to the checked packages and sends the
// user back to their profile.
func (h *Handlers) ManagePackages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}
	names := r.PostForm["packages"]
	back := "/users/" + username + "/"
	if len(names) == 0 {
		// nothing checked, nothing to do
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	action, err := aur.ParseAction(r.PostForm.Get("action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = h.Site.Store.Manage(ctx, username, action, names)
	switch {
	case err == nil:
	case errors.Is(err, aur.ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case errors.Is(err, aur.ErrUserNotFound), errors.Is(err, aur.ErrPackageNotFound):
		http.NotFound(w, r)
		return
	default:
		h.Log.WithError(err).WithField("action", action).Error("package management failed")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.Log.WithFields(logrus.Fields{
		"action":   action,
		"actor":    username,
		"packages": len(names),
	}).Info("applied package action")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// SubmitForm renders the empty submission page.
func (h *Handlers) SubmitForm(w http.ResponseWriter, r *http.Request) {
	h.renderSubmit(w, r, SubmitPage{}, http.StatusOK)
}

// Submit accepts a source tarball, validates its PKGBUILD, and stores the
// package. Validation errors re-render the form; warnings alone don't block.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	page := SubmitPage{Username: r.PostForm.Get("username")}

	if page.Username == "" {
		page.Errors = append(page.Errors, "username is required")
		h.renderSubmit(w, r, page, http.StatusBadRequest)
		return
	}
	user, err := h.Site.Store.User(ctx, page.Username)
	if err != nil {
		page.Errors = append(page.Errors, "unknown user "+page.Username)
		h.renderSubmit(w, r, page, http.StatusBadRequest)
		return
	}

	tarball, _, err := r.FormFile("tarball")
	if err != nil {
		page.Errors = append(page.Errors, "a source tarball is required")
		h.renderSubmit(w, r, page, http.StatusBadRequest)
		return
	}
	defer tarball.Close()

	parsed, err := pkgbuild.ParseTarball(tarball)
	if err != nil {
		if errors.Is(err, pkgbuild.ErrNoPKGBUILD) {
			page.Errors = append(page.Errors, err.Error())
		} else {
			page.Errors = append(page.Errors, "could not read source tarball")
			h.Log.WithError(err).Info("rejected unreadable tarball")
		}
		h.renderSubmit(w, r, page, http.StatusBadRequest)
		return
	}

	report := parsed.Validate()
	page.Warnings = report.Warnings
	if !report.Valid() {
		page.Errors = report.Errors
		h.renderSubmit(w, r, page, http.StatusBadRequest)
		return
	}

	err = h.Site.Store.SubmitPackage(ctx, user.Username, aur.Package{
		Name:        parsed.Name,
		Repository:  unsupportedRepository,
		Version:     parsed.Version,
		Release:     parsed.Release,
		Description: parsed.Description,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		if errors.Is(err, aur.ErrPackageExists) {
			page.Errors = append(page.Errors, err.Error())
			h.renderSubmit(w, r, page, http.StatusConflict)
			return
		}
		h.Log.WithError(err).Error("failed to store submitted package")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"package":    parsed.Name,
		"maintainer": user.Username,
	}).Info("package submitted")

	if len(page.Warnings) > 0 {
		// show the warnings instead of redirecting straight away
		page.Accepted = true
		h.renderSubmit(w, r, page, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/users/"+user.Username+"/", http.StatusSeeOther)
}

func (h *Handlers) renderSubmit(w http.ResponseWriter, r *http.Request, page SubmitPage, status int) {
	page.Printer = PrinterFor(r.Header.Get("Accept-Language"))
	page.Layout = BaseLayout{}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	render.Render(r.Context(), w, h.Site, page)
}
