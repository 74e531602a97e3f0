// Package minifiers minifies emitted HTML and the style, script and svg
// embedded in it.
package minifiers

import (
	"io"
	"regexp"

	"github.com/sunwei/templatehtml/config"
	"github.com/sunwei/templatehtml/transform"
	"github.com/tdewolff/minify/v2"
)

// Media types handled by the Client.
const (
	MediaTypeHTML = "text/html"
	MediaTypeCSS  = "text/css"
	MediaTypeJS   = "text/javascript"
	MediaTypeJSON = "application/json"
	MediaTypeSVG  = "image/svg+xml"
)

// Client wraps a minifier.
type Client struct {
	m *minify.M
}

// New creates a new Client. cfg may be nil, which gives the defaults.
func New(cfg config.Provider) (Client, error) {
	conf, err := decodeConfig(cfg)
	if err != nil {
		return Client{}, err
	}

	m := minify.New()

	m.Add(MediaTypeCSS, getMinifier(conf, "css"))

	m.Add(MediaTypeJS, getMinifier(conf, "js"))
	m.AddRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), getMinifier(conf, "js"))

	m.Add(MediaTypeJSON, getMinifier(conf, "json"))
	m.AddRegexp(regexp.MustCompile(`^(application|text)/(x-|(ld|manifest)\+)?json$`), getMinifier(conf, "json"))

	m.Add(MediaTypeSVG, getMinifier(conf, "svg"))

	m.Add(MediaTypeHTML, getMinifier(conf, "html"))
	m.Add("application/xhtml+xml", getMinifier(conf, "html"))

	return Client{m: m}, nil
}

// getMinifier returns the appropriate minify.MinifierFunc for the MIME
// type suffix s, given the config c.
func getMinifier(c minifyConfig, s string) minify.Minifier {
	switch {
	case s == "css" && !c.DisableCSS:
		return &c.Tdewolff.CSS
	case s == "js" && !c.DisableJS:
		return &c.Tdewolff.JS
	case s == "json" && !c.DisableJSON:
		return &c.Tdewolff.JSON
	case s == "svg" && !c.DisableSVG:
		return &c.Tdewolff.SVG
	case s == "html" && !c.DisableHTML:
		return &c.Tdewolff.HTML
	default:
		return noopMinifier{}
	}
}

// noopMinifier implements minify.Minifier [1], but doesn't minify content. This means
// that we can avoid missing minifiers for any MIME types in our minify.M, which
// causes minify to return errors, while still allowing minification to be
// disabled for specific types.
//
// [1]: https://pkg.go.dev/github.com/tdewolff/minify#Minifier
type noopMinifier struct{}

// Minify copies r into w without transformation.
func (m noopMinifier) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	_, err := io.Copy(w, r)
	return err
}

// Transformer returns a func that can be used in a transform.Chain.
// It returns nil if no minifier is registered for mediatype.
func (m Client) Transformer(mediatype string) transform.Transformer {
	_, params, min := m.m.Match(mediatype)
	if min == nil {
		// No minifier for this MIME type
		return nil
	}

	return func(ft transform.FromTo) error {
		// Note that the source io.Reader will already be buffered, but it implements
		// the Bytes() method, which is recognized by the Minify library.
		return min.Minify(m.m, ft.To(), ft.From(), params)
	}
}
