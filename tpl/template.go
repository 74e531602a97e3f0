// Package tpl holds what is merged into a template before it is rendered:
// the render context, the tag descriptors and the engine options.
// The template language itself lives behind the Renderer interface.
package tpl

import (
	"context"
	"fmt"

	"github.com/sunwei/templatehtml/common/maps"
)

// Renderer renders template text with the given data.
// Implementations must not hold on to data after Render returns.
type Renderer interface {
	Render(ctx context.Context, name, text string, data map[string]any, opts EngineOptions) (string, error)
}

// RendererFunc is a Renderer backed by a plain function.
type RendererFunc func(ctx context.Context, name, text string, data map[string]any, opts EngineOptions) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, name, text string, data map[string]any, opts EngineOptions) (string, error) {
	return f(ctx, name, text, data, opts)
}

// Engine names understood by the default renderer.
const (
	EngineGo     = "go"
	EngineGoHTML = "gohtml"
	EnginePongo2 = "pongo2"
)

// EngineOptions are handed to the Renderer untouched.
type EngineOptions struct {
	// Engine selects the template language. Defaults to EngineGo.
	Engine string

	// Delimiters for the Go engines. Defaults to "{{" and "}}".
	LeftDelim  string
	RightDelim string

	// MissingKey is the Go template missingkey option: "default", "zero" or "error".
	MissingKey string

	// Funcs are extra template functions for the Go engines.
	Funcs map[string]any `mapstructure:"-"`
}

// RenderContext is the data a template is rendered with.
// It is built per transform and thrown away afterwards.
type RenderContext map[string]any

// NewRenderContext merges, lowest precedence first, the environment
// variables, the define values, the global template parameters and the
// parameters of the matched page.
func NewRenderContext(env map[string]string, define, global, page map[string]any) RenderContext {
	return RenderContext(maps.Merge(maps.FromStringMapString(env), define, global, page))
}

// Render renders html with rc using r. Errors from r are returned wrapped
// with the template name only, so errors.Is and errors.As still see them.
func Render(ctx context.Context, r Renderer, name, html string, rc RenderContext, opts EngineOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := r.Render(ctx, name, html, rc, opts)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", name, err)
	}
	return s, nil
}
