// Package page holds the page definitions of a build: which template
// backs which build input, which template serves which request and which
// page a transformed template belongs to.
package page

import (
	"github.com/sunwei/templatehtml/route"
	"github.com/sunwei/templatehtml/tpl"
)

// Options defines a page as configured.
type Options struct {
	// Route selects the requests served by this page.
	// If not set, the directory of Template is used.
	Route route.Route `json:"route,omitempty"`

	// Template is the HTML template, relative to the project root,
	// e.g. "admin/index.html".
	Template string `json:"template"`

	// Output is the build input name. Defaults to the template's file name.
	Output string `json:"output,omitempty"`

	// TemplateParameters are merged over the global parameters when
	// rendering this page.
	TemplateParameters map[string]any `json:"templateParameters,omitempty"`

	// Tags are injected after the global tags.
	Tags []tpl.Tag `json:"tags,omitempty"`
}

// Page is a registered page with its route resolved.
type Page struct {
	// Template is the HTML template path.
	Template string

	// Output is the resolved build input name.
	// It may be empty for the single page.
	Output string

	TemplateParameters map[string]any
	Tags               []tpl.Tag

	// Matcher is the resolved route. It is never nil.
	Matcher *route.Matcher
}

// TemplateURL returns the URL the page's template is served from below base.
func (p *Page) TemplateURL(base string) string {
	return base + p.Template
}
