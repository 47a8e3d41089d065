// Package pkgbuild parses and validates PKGBUILD package-source scripts, the
// build recipes uploaded alongside a package's sources.
package pkgbuild

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ChecksumKinds are the checksum arrays a PKGBUILD may declare. Each one
// that is declared must carry one entry per source.
var ChecksumKinds = []string{"md5sums", "sha1sums", "sha256sums", "sha384sums", "sha512sums"}

// PKGBUILD is the parsed form of a package build script.
type PKGBUILD struct {
	Name          string
	Version       string
	Release       string
	Description   string
	URL           string
	Licenses      []string
	Architectures []string
	Sources       []string
	Depends       []string

	// Checksums holds the declared checksum arrays, keyed by kind
	// ("md5sums", "sha256sums", ...).
	Checksums map[string][]string
}

// Report is the outcome of validating a PKGBUILD. Errors make the package
// unacceptable; warnings are surfaced to the submitter but don't block.
type Report struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether validation found no errors.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

var (
	assignPattern   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)
	funcPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*\(\)\s*\{?\s*$`)
	variablePattern = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)\}?`)
	namePattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Parse reads a PKGBUILD and extracts its variable assignments. Function
// bodies (build, package, ...) are skipped; only top-level scalar and array
// assignments are interpreted. Variable references inside values are expanded
// from assignments seen earlier in the file.
func Parse(r io.Reader) (*PKGBUILD, error) {
	scalars := map[string]string{}
	arrays := map[string][]string{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inFunction := false
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if inFunction {
			// function bodies end with a closing brace in column one
			if strings.HasPrefix(line, "}") {
				inFunction = false
			}
			continue
		}
		if funcPattern.MatchString(trimmed) {
			inFunction = !strings.HasSuffix(trimmed, "}")
			continue
		}
		match := assignPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name, value := match[1], match[2]
		if strings.HasPrefix(value, "(") {
			// array assignment, possibly spanning several lines
			for !strings.HasSuffix(strings.TrimRight(stripComment(value), " \t"), ")") {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unterminated array for %q", name)
				}
				value += "\n" + scanner.Text()
			}
			value = strings.TrimRight(stripComment(value), " \t")
			value = strings.TrimSuffix(strings.TrimPrefix(value, "("), ")")
			arrays[name] = splitFields(expand(value, scalars))
			continue
		}
		scalars[name] = unquote(expand(stripComment(value), scalars))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading PKGBUILD: %w", err)
	}

	pkg := &PKGBUILD{
		Name:          scalars["pkgname"],
		Version:       scalars["pkgver"],
		Release:       scalars["pkgrel"],
		Description:   scalars["pkgdesc"],
		URL:           scalars["url"],
		Licenses:      arrays["license"],
		Architectures: arrays["arch"],
		Sources:       arrays["source"],
		Depends:       arrays["depends"],
		Checksums:     map[string][]string{},
	}
	// split packages declare pkgname as an array; keep the first entry
	if pkg.Name == "" && len(arrays["pkgname"]) > 0 {
		pkg.Name = arrays["pkgname"][0]
	}
	for _, kind := range ChecksumKinds {
		if sums, ok := arrays[kind]; ok {
			pkg.Checksums[kind] = sums
		}
	}
	return pkg, nil
}

// Validate checks the PKGBUILD for missing or invalid fields and returns the
// errors and warnings found.
func (p *PKGBUILD) Validate() Report {
	var report Report

	required := []struct {
		field string
		empty bool
	}{
		{"name", p.Name == ""},
		{"description", p.Description == ""},
		{"version", p.Version == ""},
		{"release", p.Release == ""},
		{"license", len(p.Licenses) == 0},
		{"arch", len(p.Architectures) == 0},
	}
	for _, req := range required {
		if req.empty {
			report.Errors = append(report.Errors, req.field+" field is required")
		}
	}

	if p.Name != "" {
		if !namePattern.MatchString(p.Name) {
			report.Errors = append(report.Errors, "package name must be alphanumeric")
		} else if p.Name != strings.ToLower(p.Name) {
			report.Warnings = append(report.Warnings, "package name should be in lower case")
		}
	}

	// descriptions aren't supposed to exceed 80 characters
	if len(p.Description) > 80 {
		report.Warnings = append(report.Warnings, "description should not exceed 80 characters")
	}

	foundSums := false
	for _, kind := range ChecksumKinds {
		sums, ok := p.Checksums[kind]
		if !ok || len(sums) == 0 {
			continue
		}
		foundSums = true
		if len(sums) != len(p.Sources) {
			report.Errors = append(report.Errors, fmt.Sprintf("amount of %s and sources does not match", kind))
		}
	}
	if len(p.Sources) > 0 && !foundSums {
		report.Errors = append(report.Errors, "sources exist without checksums")
	}
	return report
}

// stripComment removes a trailing comment from a line, leaving quoted hash
// marks alone.
func stripComment(value string) string {
	var inSingle, inDouble bool
	for pos, char := range value {
		switch char {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '#':
			if !inSingle && !inDouble {
				return value[:pos]
			}
		}
	}
	return value
}

// splitFields splits an array body into its entries, honoring single and
// double quotes.
func splitFields(value string) []string {
	var results []string
	var current strings.Builder
	var inSingle, inDouble bool
	flush := func() {
		if current.Len() > 0 {
			results = append(results, current.String())
			current.Reset()
		}
	}
	for _, char := range value {
		switch {
		case char == '\'' && !inDouble:
			inSingle = !inSingle
		case char == '"' && !inSingle:
			inDouble = !inDouble
		case (char == ' ' || char == '\t' || char == '\n') && !inSingle && !inDouble:
			flush()
		default:
			current.WriteRune(char)
		}
	}
	flush()
	return results
}

func unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') ||
			(value[0] == '"' && value[len(value)-1] == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// expand substitutes $var and ${var} references from previously seen scalar
// assignments. Unknown variables expand to nothing, matching shell behavior.
func expand(value string, scalars map[string]string) string {
	return variablePattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := strings.Trim(ref[1:], "{}")
		return scalars[name]
	})
}
