package aur

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUserNotFound is returned when the named user doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPackageNotFound is returned when the named package doesn't
	// exist.
	ErrPackageNotFound = errors.New("package not found")

	// ErrPackageExists is returned when submitting a package whose name
	// is already taken by another maintainer.
	ErrPackageExists = errors.New("package already exists")

	// ErrPermissionDenied is returned when the acting user lacks the
	// permission an action requires.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnknownAction is returned for an action value the management
	// endpoint doesn't know.
	ErrUnknownAction = errors.New("unknown action")
)

// Action is one of the bulk operations the package-management form submits.
type Action string

const (
	// ActionDisown removes the acting user's maintainer association with
	// the selected packages without deleting them.
	ActionDisown Action = "disown"

	// ActionFlagOutOfDate marks the selected packages as possibly behind
	// their upstream source.
	ActionFlagOutOfDate Action = "flag-ood"

	// ActionUnflagOutOfDate clears the out-of-date marker.
	ActionUnflagOutOfDate Action = "unflag-ood"

	// ActionDelete removes the selected packages entirely. It requires
	// the delete permission.
	ActionDelete Action = "delete"
)

// ParseAction maps a submitted form value onto an Action.
func ParseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionDisown, ActionFlagOutOfDate, ActionUnflagOutOfDate, ActionDelete:
		return Action(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, value)
}

// Store is the read-through view data source the pages render from, plus the
// mutations the management and account endpoints perform.
type Store interface {
	// User returns the user with the passed username, or ErrUserNotFound.
	User(ctx context.Context, username string) (User, error)

	// SaveUser stores the passed user, overwriting any previous state.
	SaveUser(ctx context.Context, user User) error

	// Package returns the package with the passed name, or
	// ErrPackageNotFound.
	Package(ctx context.Context, name string) (Package, error)

	// SubmitPackage stores a new or updated package on behalf of the
	// passed maintainer. Updating a package maintained by someone else
	// returns ErrPackageExists.
	SubmitPackage(ctx context.Context, maintainer string, pkg Package) error

	// PackagesByMaintainer returns the packages the user maintains,
	// ordered by name.
	PackagesByMaintainer(ctx context.Context, username string) ([]Package, error)

	// SearchPackages returns the packages whose name or description
	// contains the query, ordered by name. An empty query matches
	// everything.
	SearchPackages(ctx context.Context, query string) ([]Package, error)

	// Manage applies the passed action to the named packages on behalf
	// of actor. ActionDelete requires actor to hold the delete
	// permission; every other action requires actor to maintain each
	// named package.
	Manage(ctx context.Context, actor string, action Action, names []string) error
}

// OutOfDateCount is the repository statistic shown next to the package
// count: how many of the passed packages carry the out-of-date marker.
func OutOfDateCount(packages []Package) int {
	var count int
	for _, pkg := range packages {
		if pkg.OutOfDate {
			count++
		}
	}
	return count
}

var _ Store = &MemoryStore{}

// MemoryStore is an in-memory Store implementation. It is the only backing
// store the server ships; persistence is out of scope.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]User
	packages map[string]Package
}

// NewMemoryStore returns an empty MemoryStore ready for use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[string]User{},
		packages: map[string]Package{},
	}
}

// User returns the user with the passed username.
func (s *MemoryStore) User(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return User{}, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	return user, nil
}

// SaveUser stores the passed user.
func (s *MemoryStore) SaveUser(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = user
	return nil
}

// Package returns the package with the passed name.
func (s *MemoryStore) Package(_ context.Context, name string) (Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pkg, ok := s.packages[name]
	if !ok {
		return Package{}, fmt.Errorf("%w: %q", ErrPackageNotFound, name)
	}
	return pkg, nil
}

// SubmitPackage stores a new package, or updates one the maintainer already
// owns.
func (s *MemoryStore) SubmitPackage(_ context.Context, maintainer string, pkg Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.packages[pkg.Name]
	if ok && existing.Maintainer != "" && existing.Maintainer != maintainer {
		return fmt.Errorf("%w: %q is maintained by %q", ErrPackageExists, pkg.Name, existing.Maintainer)
	}
	pkg.Maintainer = maintainer
	s.packages[pkg.Name] = pkg
	return nil
}

// PackagesByMaintainer returns the user's packages ordered by name.
func (s *MemoryStore) PackagesByMaintainer(_ context.Context, username string) ([]Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []Package
	for _, pkg := range s.packages {
		if pkg.Maintainer == username {
			results = append(results, pkg)
		}
	}
	slices.SortFunc(results, func(a, b Package) int {
		return strings.Compare(a.Name, b.Name)
	})
	return results, nil
}

// SearchPackages returns the packages matching the query, ordered by name.
// Matching is a case-insensitive substring test on name and description.
func (s *MemoryStore) SearchPackages(_ context.Context, query string) ([]Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	query = strings.ToLower(query)
	var results []Package
	for _, pkg := range s.packages {
		if query != "" &&
			!strings.Contains(strings.ToLower(pkg.Name), query) &&
			!strings.Contains(strings.ToLower(pkg.Description), query) {
			continue
		}
		results = append(results, pkg)
	}
	slices.SortFunc(results, func(a, b Package) int {
		return strings.Compare(a.Name, b.Name)
	})
	return results, nil
}

// Manage applies a bulk action to the named packages.
func (s *MemoryStore) Manage(_ context.Context, actor string, action Action, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[actor]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUserNotFound, actor)
	}
	if action == ActionDelete && !user.Perms.DeletePackages {
		return fmt.Errorf("%w: %q may not delete packages", ErrPermissionDenied, actor)
	}

	// resolve every name before mutating anything, so a bad selection
	// leaves the store untouched
	selected := make([]Package, 0, len(names))
	for _, name := range names {
		pkg, ok := s.packages[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrPackageNotFound, name)
		}
		if action != ActionDelete && pkg.Maintainer != actor {
			return fmt.Errorf("%w: %q does not maintain %q", ErrPermissionDenied, actor, name)
		}
		selected = append(selected, pkg)
	}

	for _, pkg := range selected {
		switch action {
		case ActionDisown:
			pkg.Maintainer = ""
			s.packages[pkg.Name] = pkg
		case ActionFlagOutOfDate:
			pkg.OutOfDate = true
			s.packages[pkg.Name] = pkg
		case ActionUnflagOutOfDate:
			pkg.OutOfDate = false
			s.packages[pkg.Name] = pkg
		case ActionDelete:
			delete(s.packages, pkg.Name)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
	}
	return nil
}
