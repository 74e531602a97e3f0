// Package devserver serves a project during development: templates are
// rendered on request and everything else is served from the source tree.
package devserver

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/route"
)

// DefaultIndex is the history fallback target when no rewrite matches.
const DefaultIndex = "/index.html"

// DefaultHTMLAcceptHeaders are the Accept header values that make a request
// eligible for the history fallback.
var DefaultHTMLAcceptHeaders = []string{"text/html", "*/*"}

// Options configures HistoryFallback.
type Options struct {
	// Rewrites are tried in order against the request path. The first
	// match wins.
	Rewrites []route.Rewrite

	// Index is the target when no rewrite matches. Defaults to DefaultIndex.
	Index string

	// HTMLAcceptHeaders defaults to DefaultHTMLAcceptHeaders.
	HTMLAcceptHeaders []string

	// DisableDotRule rewrites paths with a dot in the last segment too.
	DisableDotRule bool

	Logger loggers.Logger
}

type originalURLKey struct{}

// OriginalURL returns the request URI as received, before any history
// fallback rewrite.
func OriginalURL(r *http.Request) string {
	if s, ok := r.Context().Value(originalURLKey{}).(string); ok {
		return s
	}
	return r.URL.RequestURI()
}

// HistoryFallback rewrites requests for HTML documents of a single page
// application to the template that serves them.
//
// Only GET and HEAD requests whose Accept header asks for HTML, and not for
// JSON, are considered. A request matching a rewrite gets its target; a
// request for a file, which has a dot in its last path segment, is passed
// on; anything else gets Index.
func HistoryFallback(opts Options) func(http.Handler) http.Handler {
	if opts.Index == "" {
		opts.Index = DefaultIndex
	}
	if len(opts.HTMLAcceptHeaders) == 0 {
		opts.HTMLAcceptHeaders = DefaultHTMLAcceptHeaders
	}
	if opts.Logger == nil {
		opts.Logger = loggers.NewDiscard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			accept := r.Header.Get("Accept")
			if accept == "" || strings.HasPrefix(accept, "application/json") || !acceptsHTML(accept, opts.HTMLAcceptHeaders) {
				next.ServeHTTP(w, r)
				return
			}

			pathname := r.URL.Path
			for _, rw := range opts.Rewrites {
				if rw.From != nil && rw.From.Match(pathname) {
					if !strings.HasPrefix(rw.To, "/") {
						opts.Logger.Warnf("Rewrite target %q of %s should start with a slash", rw.To, rw.From)
					}
					opts.Logger.Debugf("Rewriting %s %s to %s", r.Method, r.URL.RequestURI(), rw.To)
					next.ServeHTTP(w, rewrite(r, rw.To))
					return
				}
			}

			if !opts.DisableDotRule && strings.LastIndex(pathname, ".") > strings.LastIndex(pathname, "/") {
				next.ServeHTTP(w, r)
				return
			}

			opts.Logger.Debugf("Rewriting %s %s to %s", r.Method, r.URL.RequestURI(), opts.Index)
			next.ServeHTTP(w, rewrite(r, opts.Index))
		})
	}
}

func acceptsHTML(accept string, htmlAcceptHeaders []string) bool {
	for _, h := range htmlAcceptHeaders {
		if strings.Contains(accept, h) {
			return true
		}
	}
	return false
}

func rewrite(r *http.Request, target string) *http.Request {
	ctx := r.Context()
	if _, ok := ctx.Value(originalURLKey{}).(string); !ok {
		ctx = context.WithValue(ctx, originalURLKey{}, r.URL.RequestURI())
	}

	r2 := r.WithContext(ctx)
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: target}
	}
	u2 := *r.URL
	u2.Path = u.Path
	u2.RawPath = u.RawPath
	u2.RawQuery = u.RawQuery
	r2.URL = &u2
	r2.RequestURI = u2.RequestURI()

	return r2
}
