package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
)

// CSSEmbedder is an interface that Components can fulfill to include some CSS
// that should be embedded directly into the rendered HTML. The contents will
// be made available to the template as .EmbeddedCSS.
type CSSEmbedder interface {
	// EmbedCSS returns the CSS, without <style> tags, that should be
	// embedded directly in the output HTML.
	EmbedCSS(context.Context) template.CSS
}

// CSSLinker is an interface that Components can fulfill to include some CSS
// that should be loaded through a <link> element in the template. The
// contents will be made available to the template as .LinkedCSS.
type CSSLinker interface {
	// LinkCSS returns a list of URLs to CSS files that should be linked
	// to from the output HTML.
	LinkCSS(context.Context) []string
}

// JSEmbedder is an interface that Components can fulfill to include some
// JavaScript that should be embedded directly into the rendered HTML. The
// contents will be made available to the template as .EmbeddedJS.
type JSEmbedder interface {
	// EmbedJS returns the JavaScript, without <script> tags, that should
	// be embedded directly in the output HTML.
	EmbedJS(context.Context) template.JS
}

// JSLinker is an interface that Components can fulfill to include some
// JavaScript that should be loaded separately from the HTML document, using a
// <script> tag with a src attribute. The contents will be made available to
// the template as .LinkedJS.
type JSLinker interface {
	// LinkJS returns a list of URLs to JavaScript files that should be
	// linked to from the output HTML.
	LinkJS(context.Context) []string
}

func getComponentCSSEmbeds(ctx context.Context, component Component) template.CSS {
	var results template.CSS
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		embed, ok := comp.(CSSEmbedder)
		if !ok {
			continue
		}
		css := embed.EmbedCSS(ctx)
		checksum := hex.EncodeToString(sha256.New().Sum([]byte(css)))
		if _, ok := seen[checksum]; ok {
			continue
		}
		seen[checksum] = struct{}{}
		results += template.CSS(fmt.Sprintf(`
/* embedded CSS from %T */
%s`, comp, css)) // #nosec G203
	}
	return results
}

func getComponentCSSLinks(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		link, ok := comp.(CSSLinker)
		if !ok {
			continue
		}
		css := link.LinkCSS(ctx)
		for _, source := range css {
			if _, ok := seen[source]; ok {
				continue
			}
			results = append(results, source)
			seen[source] = struct{}{}
		}
	}
	return results
}

func getComponentJSEmbeds(ctx context.Context, component Component) template.JS {
	var results template.JS
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		embed, ok := comp.(JSEmbedder)
		if !ok {
			continue
		}
		script := embed.EmbedJS(ctx)
		checksum := hex.EncodeToString(sha256.New().Sum([]byte(script)))
		if _, ok := seen[checksum]; ok {
			continue
		}
		seen[checksum] = struct{}{}
		results += template.JS(fmt.Sprintf(`
/* embedded JavaScript from %T */
%s`, comp, script)) // #nosec G203
	}
	return results
}

func getComponentJSLinks(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		link, ok := comp.(JSLinker)
		if !ok {
			continue
		}
		js := link.LinkJS(ctx)
		for _, source := range js {
			if _, ok := seen[source]; ok {
				continue
			}
			results = append(results, source)
			seen[source] = struct{}{}
		}
	}
	return results
}
