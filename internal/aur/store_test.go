package aur_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pombredanne/aur2/internal/aur"
)

func seededStore(t *testing.T) *aur.MemoryStore {
	t.Helper()

	store := aur.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SaveUser(ctx, aur.User{
		Username: "normal_user",
		Email:    "normal@example.org",
	}))
	require.NoError(t, store.SaveUser(ctx, aur.User{
		Username: "trusted_user",
		Email:    "trusted@example.org",
		Perms:    aur.Permissions{DeletePackages: true},
	}))
	for _, pkg := range []aur.Package{
		{Name: "zsh-extras", Repository: "unsupported", Version: "2.0", Release: "1", Maintainer: "normal_user"},
		{Name: "acme", Repository: "unsupported", Version: "1.0", Release: "3", Maintainer: "normal_user", OutOfDate: true},
		{Name: "other", Repository: "community", Version: "0.1", Release: "1", Maintainer: "trusted_user"},
	} {
		require.NoError(t, store.SubmitPackage(ctx, pkg.Maintainer, pkg))
	}
	return store
}

func TestMemoryStore_PackagesByMaintainer(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()

	packages, err := store.PackagesByMaintainer(ctx, "normal_user")
	require.NoError(t, err)
	require.Len(t, packages, 2)

	// ordered by name
	assert.Equal(t, "acme", packages[0].Name)
	assert.Equal(t, "zsh-extras", packages[1].Name)
	assert.Equal(t, 1, aur.OutOfDateCount(packages))
}

func TestMemoryStore_SearchPackages(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()
	require.NoError(t, store.SubmitPackage(ctx, "normal_user", aur.Package{
		Name: "quux", Version: "1.0", Release: "1",
		Description: "An Acme-compatible widget",
	}))

	t.Run("an empty query returns everything, ordered by name", func(t *testing.T) {
		t.Parallel()

		packages, err := store.SearchPackages(ctx, "")
		require.NoError(t, err)
		require.Len(t, packages, 4)
		assert.Equal(t, "acme", packages[0].Name)
		assert.Equal(t, "other", packages[1].Name)
		assert.Equal(t, "quux", packages[2].Name)
		assert.Equal(t, "zsh-extras", packages[3].Name)
	})

	t.Run("matches name and description, case-insensitively", func(t *testing.T) {
		t.Parallel()

		packages, err := store.SearchPackages(ctx, "ACME")
		require.NoError(t, err)
		require.Len(t, packages, 2)
		assert.Equal(t, "acme", packages[0].Name)
		assert.Equal(t, "quux", packages[1].Name)
	})

	t.Run("no matches is an empty result, not an error", func(t *testing.T) {
		t.Parallel()

		packages, err := store.SearchPackages(ctx, "xyzzy")
		require.NoError(t, err)
		assert.Empty(t, packages)
	})
}

func TestMemoryStore_Manage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		actor   string
		action  aur.Action
		targets []string
		wantErr error
		check   func(t *testing.T, store *aur.MemoryStore)
	}{
		{
			name:    "disown clears the maintainer and keeps the package",
			actor:   "normal_user",
			action:  aur.ActionDisown,
			targets: []string{"acme"},
			check: func(t *testing.T, store *aur.MemoryStore) {
				pkg, err := store.Package(context.Background(), "acme")
				require.NoError(t, err)
				assert.Empty(t, pkg.Maintainer)
			},
		},
		{
			name:    "flag-ood sets the out-of-date marker",
			actor:   "normal_user",
			action:  aur.ActionFlagOutOfDate,
			targets: []string{"zsh-extras"},
			check: func(t *testing.T, store *aur.MemoryStore) {
				pkg, err := store.Package(context.Background(), "zsh-extras")
				require.NoError(t, err)
				assert.True(t, pkg.OutOfDate)
			},
		},
		{
			name:    "unflag-ood clears the out-of-date marker",
			actor:   "normal_user",
			action:  aur.ActionUnflagOutOfDate,
			targets: []string{"acme"},
			check: func(t *testing.T, store *aur.MemoryStore) {
				pkg, err := store.Package(context.Background(), "acme")
				require.NoError(t, err)
				assert.False(t, pkg.OutOfDate)
			},
		},
		{
			name:    "delete removes the package for a permitted user",
			actor:   "trusted_user",
			action:  aur.ActionDelete,
			targets: []string{"acme"},
			check: func(t *testing.T, store *aur.MemoryStore) {
				_, err := store.Package(context.Background(), "acme")
				assert.ErrorIs(t, err, aur.ErrPackageNotFound)
			},
		},
		{
			name:    "delete is refused without the permission",
			actor:   "normal_user",
			action:  aur.ActionDelete,
			targets: []string{"acme"},
			wantErr: aur.ErrPermissionDenied,
		},
		{
			name:    "non-maintainers cannot manage a package",
			actor:   "trusted_user",
			action:  aur.ActionDisown,
			targets: []string{"acme"},
			wantErr: aur.ErrPermissionDenied,
		},
		{
			name:    "an unknown package leaves the store untouched",
			actor:   "normal_user",
			action:  aur.ActionFlagOutOfDate,
			targets: []string{"zsh-extras", "does-not-exist"},
			wantErr: aur.ErrPackageNotFound,
			check: func(t *testing.T, store *aur.MemoryStore) {
				pkg, err := store.Package(context.Background(), "zsh-extras")
				require.NoError(t, err)
				assert.False(t, pkg.OutOfDate)
			},
		},
		{
			name:    "an unknown actor is rejected",
			actor:   "nobody",
			action:  aur.ActionDisown,
			targets: []string{"acme"},
			wantErr: aur.ErrUserNotFound,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := seededStore(t)

			err := store.Manage(context.Background(), testCase.actor, testCase.action, testCase.targets)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if testCase.check != nil {
				testCase.check(t, store)
			}
		})
	}
}

func TestMemoryStore_SubmitPackage(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()

	t.Run("updating your own package is allowed", func(t *testing.T) {
		err := store.SubmitPackage(ctx, "normal_user", aur.Package{
			Name: "acme", Version: "1.1", Release: "1",
		})
		require.NoError(t, err)
		pkg, err := store.Package(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, "1.1", pkg.Version)
	})

	t.Run("taking over someone else's package is refused", func(t *testing.T) {
		err := store.SubmitPackage(ctx, "trusted_user", aur.Package{Name: "acme"})
		assert.ErrorIs(t, err, aur.ErrPackageExists)
	})

	t.Run("an orphaned package can be adopted", func(t *testing.T) {
		require.NoError(t, store.Manage(ctx, "normal_user", aur.ActionDisown, []string{"zsh-extras"}))
		err := store.SubmitPackage(ctx, "trusted_user", aur.Package{Name: "zsh-extras", Version: "2.1", Release: "1"})
		require.NoError(t, err)
		pkg, err := store.Package(ctx, "zsh-extras")
		require.NoError(t, err)
		assert.Equal(t, "trusted_user", pkg.Maintainer)
	})
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"disown", "flag-ood", "unflag-ood", "delete"} {
		action, err := aur.ParseAction(value)
		require.NoError(t, err)
		assert.Equal(t, aur.Action(value), action)
	}

	_, err := aur.ParseAction("explode")
	assert.ErrorIs(t, err, aur.ErrUnknownAction)
}

func TestPackage_FullVersionAndURL(t *testing.T) {
	t.Parallel()

	pkg := aur.Package{Name: "acme", Version: "1.0", Release: "3", UpdatedAt: time.Now()}
	assert.Equal(t, "1.0-3", pkg.FullVersion())
	assert.Equal(t, "/packages/acme/", pkg.URL())
}
