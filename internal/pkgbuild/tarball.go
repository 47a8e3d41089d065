package pkgbuild

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrNoPKGBUILD is returned when a source tarball has no PKGBUILD member.
var ErrNoPKGBUILD = errors.New("tar file does not contain a PKGBUILD")

// maxPKGBUILDSize caps how much of an uploaded PKGBUILD we're willing to
// read. Build scripts are small; anything larger is not one.
const maxPKGBUILDSize = 1 << 20

// ParseTarball reads a gzipped source tarball, locates the PKGBUILD member,
// and parses it.
func ParseTarball(r io.Reader) (*PKGBUILD, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("error reading gzip stream: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoPKGBUILD
		}
		if err != nil {
			return nil, fmt.Errorf("error reading tar stream: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if !strings.Contains(path.Base(header.Name), "PKGBUILD") {
			continue
		}
		return Parse(io.LimitReader(tr, maxPKGBUILDSize))
	}
}
