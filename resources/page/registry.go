package page

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/helpers"
	"github.com/sunwei/templatehtml/route"
)

// Mode tells whether a registry serves one page or many.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "multi-page"
	}
	return "single-page"
}

// Config configures a Registry. Pages switches to multi-page mode;
// Route, Template and Output are then ignored.
type Config struct {
	Route    route.Route
	Template string
	Output   string
	Pages    []Options
}

// Registry is the ordered set of pages. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	mode  Mode
	pages []*Page
}

// NewRegistry builds the registry.
//
// In single-page mode there is always exactly one page. In multi-page mode
// pages whose route cannot be resolved are logged and dropped, so the
// registry may end up empty. A declared route that does not compile is an
// error.
func NewRegistry(cfg Config, logger loggers.Logger) (*Registry, error) {
	if logger == nil {
		logger = loggers.NewDefault()
	}

	if len(cfg.Pages) == 0 {
		return newSingle(cfg)
	}

	r := &Registry{mode: ModeMulti}
	outputs := make(map[string]string)

	for _, opts := range cfg.Pages {
		m, err := route.Resolve(opts.Route, opts.Template)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", opts.Template, err)
		}
		if m == nil {
			logger.Warnf("We are confused about the options %s, please set the correct route or template", loggers.Highlight(describe(opts)))
			continue
		}

		output := opts.Output
		if output == "" {
			output = helpers.TemplateFilename(opts.Template)
		}
		if prev, found := outputs[output]; found {
			logger.Warnf("Output %q of %q is also used by %q, the later page wins the build input", output, opts.Template, prev)
		}
		outputs[output] = opts.Template

		r.pages = append(r.pages, &Page{
			Template:           opts.Template,
			Output:             output,
			TemplateParameters: opts.TemplateParameters,
			Tags:               opts.Tags,
			Matcher:            m,
		})
	}

	return r, nil
}

func newSingle(cfg Config) (*Registry, error) {
	m := route.Any()
	if !cfg.Route.IsZero() {
		var err error
		if m, err = cfg.Route.Compile(); err != nil {
			return nil, err
		}
	}
	template := cfg.Template
	if template == "" {
		template = helpers.DefaultTemplate
	}
	return &Registry{
		mode: ModeSingle,
		pages: []*Page{{
			Template: template,
			Output:   cfg.Output,
			Matcher:  m,
		}},
	}, nil
}

func describe(opts Options) string {
	b, err := json.Marshal(opts)
	if err != nil {
		return fmt.Sprintf("%+v", opts)
	}
	return string(b)
}

// Mode returns the registry mode.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Pages returns the registered pages in registration order.
func (r *Registry) Pages() []*Page {
	pages := make([]*Page, len(r.pages))
	copy(pages, r.pages)
	return pages
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	return len(r.pages)
}

// Match returns the rewrite target of a request URL: the template URL
// below base of the first page whose route matches. ok is false if no page
// matches and the request is not rewritten.
func (r *Registry) Match(url, base string) (target string, ok bool) {
	for _, p := range r.pages {
		if p.Matcher.Match(url) {
			return p.TemplateURL(base), true
		}
	}
	return "", false
}

// Rewrites returns the dev server rewrite rules, one per page, in
// registration order.
func (r *Registry) Rewrites(base string) []route.Rewrite {
	rewrites := make([]route.Rewrite, len(r.pages))
	for i, p := range r.pages {
		rewrites[i] = route.Rewrite{From: p.Matcher, To: p.TemplateURL(base)}
	}
	return rewrites
}

// Find returns the page a transformed template belongs to: the first page
// whose template path is part of filename or whose route matches
// originalURL. It returns nil in single-page mode, where only the global
// parameters and tags apply, and when no page matches.
func (r *Registry) Find(filename, originalURL string) *Page {
	if r.mode != ModeMulti {
		return nil
	}
	for _, p := range r.pages {
		if strings.Contains(filename, p.Template) || p.Matcher.Match(originalURL) {
			return p
		}
	}
	return nil
}
