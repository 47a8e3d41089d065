package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageDetail(t *testing.T) {
	t.Parallel()

	t.Run("renders the package", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		rec, body := get(t, router, "/packages/acme/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, "acme 1.0-3")
		assert.Contains(t, body, "<td>unsupported</td>")
		assert.Contains(t, body, "<td>A sample package</td>")
		assert.Contains(t, body, "Apr. 2, 2008")
		// the maintainer links back to their profile
		assert.Contains(t, body, `<a href="/users/normal_user/">normal_user</a>`)
		// acme is flagged
		assert.Contains(t, body, "This package has been flagged out of date.")
	})

	t.Run("a fresh package has no out-of-date notice", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		_, body := get(t, router, "/packages/zsh-extras/", nil)
		assert.NotContains(t, body, "This package has been flagged out of date.")
	})

	t.Run("an orphaned package shows no maintainer link", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)
		rec, _ := postForm(t, router, "/packages/manage/", url.Values{
			"username": {"normal_user"},
			"packages": {"acme"},
			"action":   {"disown"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		_, body := get(t, router, "/packages/acme/", nil)
		assert.Contains(t, body, "orphan")
		assert.NotContains(t, body, `<a href="/users/normal_user/">`)
	})

	t.Run("unknown packages get a 404", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		rec, _ := get(t, router, "/packages/no-such-package/", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("profile links resolve", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		_, profile := get(t, router, "/users/normal_user/", nil)
		require.Contains(t, profile, `href="/packages/acme/"`)

		rec, _ := get(t, router, "/packages/acme/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("the root page lists every package", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		rec, body := get(t, router, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, `<a href="/packages/acme/" class="flagged">acme 1.0-3</a>`)
		assert.Contains(t, body, `<a href="/packages/zsh-extras/">zsh-extras 2.0-1</a>`)
		assert.Contains(t, body, `<a href="/packages/trusted-tool/">trusted-tool 0.5-2</a>`)
	})

	t.Run("a query filters the listing", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		_, body := get(t, router, "/?q=zsh", nil)

		assert.Contains(t, body, "zsh-extras")
		assert.NotContains(t, body, "acme")
		assert.NotContains(t, body, "trusted-tool")
		// the query is echoed back into the form
		assert.Contains(t, body, `value="zsh"`)
	})

	t.Run("no matches shows the empty state", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		_, body := get(t, router, "/?q=xyzzy", nil)

		assert.Contains(t, body, "No packages matched your query.")
		assert.NotContains(t, body, "<tbody>")
	})

	t.Run("the listing is translated", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		_, body := get(t, router, "/", http.Header{
			"Accept-Language": {"de-DE,de;q=0.9"},
		})
		assert.Contains(t, body, "Paketsuche")
	})

	t.Run("results are ordered by name", func(t *testing.T) {
		t.Parallel()

		router, _ := testRouter(t)

		_, body := get(t, router, "/", nil)
		assert.Less(t, strings.Index(body, "acme 1.0-3"), strings.Index(body, "trusted-tool 0.5-2"))
		assert.Less(t, strings.Index(body, "trusted-tool 0.5-2"), strings.Index(body, "zsh-extras 2.0-1"))
	})
}
