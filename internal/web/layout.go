package web

import (
	"context"
	"html/template"
)

// baseCSS is the small amount of styling every page carries. The flagged
// class is what marks out-of-date package links.
const baseCSS = template.CSS(`
a.flagged { color: #b00; }
ul.errorlist { color: #b00; list-style: none; margin: 0; padding: 0; }
ul.warninglist { color: #850; list-style: none; margin: 0; padding: 0; }
#content { display: flex; gap: 2em; }
`)

// BaseLayout is the html skeleton every page fills in: a title block and the
// content_left and content_right regions.
type BaseLayout struct{}

func (b BaseLayout) Templates(_ context.Context) []string {
	return []string{b.BaseTemplate()}
}

// BaseTemplate names the template pages execute to render themselves inside
// the layout.
func (BaseLayout) BaseTemplate() string {
	return "base.html.tmpl"
}

func (BaseLayout) EmbedCSS(_ context.Context) template.CSS {
	return baseCSS
}
