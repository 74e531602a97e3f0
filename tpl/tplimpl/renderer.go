// Package tplimpl implements the template engines used to render HTML
// templates: Go text/template (default), Go html/template and pongo2.
package tplimpl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/flosch/pongo2/v6"
	"github.com/sunwei/templatehtml/common/text"
	"github.com/sunwei/templatehtml/tpl"
)

// Renderer is the default tpl.Renderer. It picks the engine from the
// EngineOptions of each call.
type Renderer struct{}

// New returns the default renderer.
func New() Renderer {
	return Renderer{}
}

var _ tpl.Renderer = Renderer{}

// Render renders text with data using the engine named in opts.
func (Renderer) Render(ctx context.Context, name, text string, data map[string]any, opts tpl.EngineOptions) (string, error) {
	switch strings.ToLower(opts.Engine) {
	case "", tpl.EngineGo:
		s, err := renderText(name, text, data, opts)
		return s, withGoPosition(name, err)
	case tpl.EngineGoHTML:
		s, err := renderHTML(name, text, data, opts)
		return s, withGoPosition(name, err)
	case tpl.EnginePongo2:
		s, err := renderPongo2(text, data)
		return s, withPongo2Position(name, err)
	default:
		return "", fmt.Errorf("unknown template engine %q", opts.Engine)
	}
}

func withGoPosition(name string, err error) error {
	if err == nil {
		return nil
	}
	return text.WithPosition(err, text.ParseGoTemplatePosition(name, err.Error()))
}

func withPongo2Position(name string, err error) error {
	var perr *pongo2.Error
	if !errors.As(err, &perr) {
		return err
	}
	return text.WithPosition(err, text.Position{Filename: name, LineNumber: perr.Line, ColumnNumber: perr.Column})
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, data map[string]any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func missingKeyOption(opts tpl.EngineOptions) string {
	mk := opts.MissingKey
	if mk == "" {
		mk = "default"
	}
	return "missingkey=" + mk
}

func renderText(name, text string, data map[string]any, opts tpl.EngineOptions) (string, error) {
	t, err := texttemplate.New(name).
		Delims(opts.LeftDelim, opts.RightDelim).
		Option(missingKeyOption(opts)).
		Funcs(texttemplate.FuncMap(opts.Funcs)).
		Parse(text)
	if err != nil {
		return "", err
	}
	return execute(t, data)
}

func renderHTML(name, text string, data map[string]any, opts tpl.EngineOptions) (string, error) {
	t, err := htmltemplate.New(name).
		Delims(opts.LeftDelim, opts.RightDelim).
		Option(missingKeyOption(opts)).
		Funcs(htmltemplate.FuncMap(opts.Funcs)).
		Parse(text)
	if err != nil {
		return "", err
	}
	return execute(t, data)
}

func renderPongo2(text string, data map[string]any) (string, error) {
	t, err := pongo2.FromString(text)
	if err != nil {
		return "", err
	}
	return t.Execute(pongo2.Context(data))
}
