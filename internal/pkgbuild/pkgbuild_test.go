package pkgbuild_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pombredanne/aur2/internal/pkgbuild"
)

const samplePKGBUILD = `# Maintainer: Normal User <normal@example.org>
pkgname=acme
pkgver=1.2.3
pkgrel=1
pkgdesc="A sample package"
url="https://example.org/$pkgname"
license=('GPL')
arch=('i686' 'x86_64')
depends=('glibc' 'zlib')
source=("https://example.org/$pkgname-$pkgver.tar.gz"
        local.patch)
md5sums=('abcdef0123456789abcdef0123456789'
         '0123456789abcdef0123456789abcdef')

build() {
	cd "$srcdir/$pkgname-$pkgver"
	make
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	pkg, err := pkgbuild.Parse(strings.NewReader(samplePKGBUILD))
	require.NoError(t, err)

	assert.Equal(t, "acme", pkg.Name)
	assert.Equal(t, "1.2.3", pkg.Version)
	assert.Equal(t, "1", pkg.Release)
	assert.Equal(t, "A sample package", pkg.Description)
	assert.Equal(t, "https://example.org/acme", pkg.URL)
	assert.Equal(t, []string{"GPL"}, pkg.Licenses)
	assert.Equal(t, []string{"i686", "x86_64"}, pkg.Architectures)
	assert.Equal(t, []string{"glibc", "zlib"}, pkg.Depends)
	// multi-line array with variable expansion
	assert.Equal(t, []string{"https://example.org/acme-1.2.3.tar.gz", "local.patch"}, pkg.Sources)
	require.Len(t, pkg.Checksums["md5sums"], 2)
	// assignments inside build() must not leak out
	assert.Empty(t, pkg.Checksums["sha256sums"])
}

func TestParse_splitPackageName(t *testing.T) {
	t.Parallel()

	pkg, err := pkgbuild.Parse(strings.NewReader("pkgname=('acme' 'acme-docs')\npkgver=1.0\n"))
	require.NoError(t, err)
	assert.Equal(t, "acme", pkg.Name)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() pkgbuild.PKGBUILD {
		return pkgbuild.PKGBUILD{
			Name:          "acme",
			Version:       "1.0",
			Release:       "1",
			Description:   "A sample package",
			Licenses:      []string{"GPL"},
			Architectures: []string{"x86_64"},
			Sources:       []string{"acme-1.0.tar.gz"},
			Checksums:     map[string][]string{"sha256sums": {"aa"}},
		}
	}

	testCases := []struct {
		name         string
		mutate       func(pkg *pkgbuild.PKGBUILD)
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:   "a complete PKGBUILD validates cleanly",
			mutate: func(*pkgbuild.PKGBUILD) {},
		},
		{
			name: "missing required fields are each reported",
			mutate: func(pkg *pkgbuild.PKGBUILD) {
				pkg.Name = ""
				pkg.Description = ""
				pkg.Licenses = nil
			},
			wantErrors: []string{
				"name field is required",
				"description field is required",
				"license field is required",
			},
		},
		{
			name: "non-alphanumeric names are an error",
			mutate: func(pkg *pkgbuild.PKGBUILD) {
				pkg.Name = "acme!"
			},
			wantErrors: []string{"package name must be alphanumeric"},
		},
		{
			name: "upper-case names are a warning",
			mutate: func(pkg *pkgbuild.PKGBUILD) {
				pkg.Name = "Acme"
			},
			wantWarnings: []string{"package name should be in lower case"},
		},
		{
			name: "overlong descriptions are a warning",
			mutate: func(pkg *pkgbuild.PKGBUILD) {
				pkg.Description = strings.Repeat("x", 81)
			},
			wantWarnings: []string{"description should not exceed 80 characters"},
		},
		{
			name: "checksum and source counts must match",
			mutate: func(pkg *pkgbuild.PKGBUILD) {
				pkg.Checksums["sha256sums"] = []string{"aa", "bb"}
			},
			wantErrors: []string{"amount of sha256sums and sources does not match"},
		},
		{
			name: "sources without checksums are an error",
			mutate: func(pkg *pkgbuild.PKGBUILD) {
				pkg.Checksums = map[string][]string{}
			},
			wantErrors: []string{"sources exist without checksums"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			pkg := valid()
			testCase.mutate(&pkg)

			report := pkg.Validate()

			assert.Equal(t, len(testCase.wantErrors) == 0, report.Valid())
			for _, want := range testCase.wantErrors {
				assert.Contains(t, report.Errors, want)
			}
			for _, want := range testCase.wantWarnings {
				assert.Contains(t, report.Warnings, want)
			}
		})
	}
}

// makeTarball builds an in-memory gzipped tarball from name->contents pairs.
func makeTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)
	for name, contents := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(contents)),
		}))
		_, err := tw.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())
	return buf.Bytes()
}

func TestParseTarball(t *testing.T) {
	t.Parallel()

	tarball := makeTarball(t, map[string]string{
		"acme/PKGBUILD": samplePKGBUILD,
	})

	pkg, err := pkgbuild.ParseTarball(bytes.NewReader(tarball))
	require.NoError(t, err)
	assert.Equal(t, "acme", pkg.Name)
	assert.Equal(t, "1.2.3", pkg.Version)
}

func TestParseTarball_noPKGBUILD(t *testing.T) {
	t.Parallel()

	tarball := makeTarball(t, map[string]string{
		"acme/README": "nothing to see here",
	})

	_, err := pkgbuild.ParseTarball(bytes.NewReader(tarball))
	assert.ErrorIs(t, err, pkgbuild.ErrNoPKGBUILD)
}

func TestParseTarball_notGzip(t *testing.T) {
	t.Parallel()

	_, err := pkgbuild.ParseTarball(strings.NewReader("plain text"))
	assert.Error(t, err)
}
