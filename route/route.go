// Package route turns the routes of page definitions into compiled
// matchers.
//
// A route is either a literal, which is anchored at the start of the
// request path, or a pattern, which is used as is. Patterns use the
// regexp2 syntax, a superset of what JavaScript accepts, so routes
// written for JavaScript build tools keep working.
package route

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/sunwei/templatehtml/helpers"
)

// MatchTimeout bounds a single match of a compiled route.
const MatchTimeout = 100 * time.Millisecond

// Kind tells how a Route was declared.
type Kind int

const (
	KindNone Kind = iota
	KindLiteral
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPattern:
		return "pattern"
	default:
		return "none"
	}
}

// Route is a declared route: nothing, a literal or a pattern.
// The zero value is the absent route.
type Route struct {
	kind Kind
	src  string
	re   *regexp2.Regexp
}

// Literal creates a route from a path prefix, e.g. "/admin".
// The literal is used as pattern source behind a "^" anchor.
func Literal(s string) Route {
	return Route{kind: KindLiteral, src: s}
}

// Pattern creates a route from a regular expression.
func Pattern(expr string) (Route, error) {
	re, err := compile(expr)
	if err != nil {
		return Route{}, err
	}
	return Route{kind: KindPattern, src: expr, re: re}, nil
}

// MustPattern is like Pattern but panics if expr does not compile.
func MustPattern(expr string) Route {
	r, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// FromRegexp creates a pattern route from an already compiled expression.
func FromRegexp(re *regexp2.Regexp) Route {
	if re == nil {
		return Route{}
	}
	return Route{kind: KindPattern, src: re.String(), re: re}
}

// Kind returns how r was declared.
func (r Route) Kind() Kind {
	return r.kind
}

// IsZero reports whether r is the absent route.
func (r Route) IsZero() bool {
	return r.kind == KindNone
}

// Source returns the route as declared.
func (r Route) Source() string {
	return r.src
}

func (r Route) String() string {
	switch r.kind {
	case KindLiteral:
		return r.src
	case KindPattern:
		return "/" + r.src + "/"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler so routes show up readable
// in logged page options.
func (r Route) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Compile compiles r into a Matcher. Compiling the absent route is an error.
func (r Route) Compile() (*Matcher, error) {
	switch r.kind {
	case KindLiteral:
		re, err := compile("^" + r.src)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", r.src, err)
		}
		return &Matcher{re: re}, nil
	case KindPattern:
		return &Matcher{re: r.re}, nil
	default:
		return nil, fmt.Errorf("route: nothing to compile")
	}
}

// Resolve resolves the route of a page with the given template.
//
// A declared route wins. Without one the template's directory is used,
// anchored and with a leading slash, so "admin/index.html" gets "^/admin".
// A template at the root without a route has no route: Resolve returns a
// nil Matcher and a nil error. The caller decides what to do with it.
func Resolve(r Route, template string) (*Matcher, error) {
	if !r.IsZero() {
		return r.Compile()
	}
	dir := helpers.TemplateDir(template)
	if dir == "" {
		return nil, nil
	}
	re, err := compile("^" + helpers.AddLeadingSlash(dir))
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", template, err)
	}
	return &Matcher{re: re}, nil
}

// Any returns a Matcher that matches every path.
func Any() *Matcher {
	return &Matcher{re: anyRe}
}

var anyRe = regexp2.MustCompile(".*", regexp2.None)

func compile(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// Matcher is a compiled route.
type Matcher struct {
	re *regexp2.Regexp
}

// Match reports whether s matches. A match that times out does not match.
func (m *Matcher) Match(s string) bool {
	if m == nil || m.re == nil {
		return false
	}
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

func (m *Matcher) String() string {
	if m == nil || m.re == nil {
		return ""
	}
	return m.re.String()
}

// Rewrite is a dev server rewrite rule: requests matching From are served
// To.
type Rewrite struct {
	From *Matcher
	To   string
}
