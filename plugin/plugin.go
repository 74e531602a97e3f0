// Package plugin defines the build lifecycle and the plugins that render
// templated HTML entry points and minify the emitted HTML.
package plugin

import (
	"context"
	"net/http"
	"sort"

	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/bundle"
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/resources/page"
	"github.com/sunwei/templatehtml/tpl"
)

// Enforce orders plugins within a lifecycle phase.
type Enforce int

const (
	EnforcePre Enforce = iota - 1
	EnforceNormal
	EnforcePost
)

func (e Enforce) String() string {
	switch e {
	case EnforcePre:
		return "pre"
	case EnforcePost:
		return "post"
	default:
		return "normal"
	}
}

// UserConfig is the build configuration as written by the user, before
// plugins have contributed to it.
type UserConfig struct {
	Root   string
	Base   string
	Mode   string
	Define map[string]any

	// Input is the set of build entry points.
	Input page.Input
}

// ResolvedConfig is the final build configuration. Plugins keep what they
// need from it; it is never modified after resolution.
type ResolvedConfig struct {
	// Fs is the file system Root is resolved against.
	Fs afero.Fs

	Root string
	Base string
	Mode string

	// Command is "build" or "serve".
	Command string

	Define map[string]any

	// EnvPrefixes filter the environment variables exposed to templates.
	// An empty prefix exposes all.
	EnvPrefixes []string

	Logger loggers.Logger
}

// Server is the dev server as seen by plugins.
type Server interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}

// TransformContext describes the HTML document being transformed.
type TransformContext struct {
	// Filename is the template path relative to the root.
	Filename string

	// OriginalURL is the request URL in the dev server, empty during build.
	OriginalURL string
}

// TransformResult is the transformed document and the tags to inject
// into it.
type TransformResult struct {
	HTML string
	Tags []tpl.Tag
}

// Plugin hooks into the build lifecycle, one method per phase:
//
//	Config → ConfigResolved → ConfigureServer (serve) → TransformIndexHTML → GenerateBundle (build)
type Plugin interface {
	Name() string
	Enforce() Enforce

	// Config returns cfg with the plugin's contribution applied.
	Config(ctx context.Context, cfg UserConfig) (UserConfig, error)

	ConfigResolved(ctx context.Context, cfg ResolvedConfig) error
	ConfigureServer(s Server) error
	TransformIndexHTML(ctx context.Context, html string, tc TransformContext) (TransformResult, error)
	GenerateBundle(ctx context.Context, b *bundle.Bundle) error
}

// Base implements every Plugin method but Name as a no-op.
// Embed it and override the phases you need.
type Base struct{}

func (Base) Enforce() Enforce { return EnforceNormal }

func (Base) Config(ctx context.Context, cfg UserConfig) (UserConfig, error) { return cfg, nil }

func (Base) ConfigResolved(ctx context.Context, cfg ResolvedConfig) error { return nil }

func (Base) ConfigureServer(s Server) error { return nil }

func (Base) TransformIndexHTML(ctx context.Context, html string, tc TransformContext) (TransformResult, error) {
	return TransformResult{HTML: html}, nil
}

func (Base) GenerateBundle(ctx context.Context, b *bundle.Bundle) error { return nil }

// Sort orders plugins pre, normal, post. The order within a group is kept.
func Sort(plugins []Plugin) {
	sort.SliceStable(plugins, func(i, j int) bool {
		return plugins[i].Enforce() < plugins[j].Enforce()
	})
}
