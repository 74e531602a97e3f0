package plugin

import (
	"context"
	"errors"

	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/config"
	"github.com/sunwei/templatehtml/devserver"
	"github.com/sunwei/templatehtml/resources/page"
	"github.com/sunwei/templatehtml/tpl"
	"go.uber.org/atomic"
)

// HTMLAcceptHeaders are the Accept header values the dev server rewrites
// for.
var HTMLAcceptHeaders = []string{"text/html", "application/xhtml+xml"}

var errNotResolved = errors.New("template-html: transform before the config was resolved")

// Context is what the HTML plugin keeps from the resolved config.
type Context struct {
	Env    map[string]string
	Define map[string]any
	Base   string
	Mode   string
	Root   string
}

// HTMLPlugin renders the HTML templates and routes dev server requests to
// them.
type HTMLPlugin struct {
	Base

	opts     Options
	registry *page.Registry
	renderer tpl.Renderer
	logger   loggers.Logger

	resolved atomic.Pointer[Context]
}

func newHTMLPlugin(opts Options, registry *page.Registry) *HTMLPlugin {
	return &HTMLPlugin{
		opts:     opts,
		registry: registry,
		renderer: opts.Renderer,
		logger:   opts.Logger,
	}
}

func (p *HTMLPlugin) Name() string { return "template-html" }

func (p *HTMLPlugin) Enforce() Enforce { return EnforcePre }

// Registry returns the page registry.
func (p *HTMLPlugin) Registry() *page.Registry {
	return p.registry
}

// Context returns the resolved context, nil before ConfigResolved.
func (p *HTMLPlugin) Context() *Context {
	return p.resolved.Load()
}

// Config adds the build inputs, unless the user has set them.
func (p *HTMLPlugin) Config(ctx context.Context, cfg UserConfig) (UserConfig, error) {
	input, ok := p.registry.InputMap(cfg.Input)
	if !ok {
		return cfg, nil
	}
	cfg.Input = input
	return cfg, nil
}

// ConfigResolved loads the environment and stores the render context.
func (p *HTMLPlugin) ConfigResolved(ctx context.Context, cfg ResolvedConfig) error {
	prefixes := cfg.EnvPrefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}
	env, err := config.LoadEnv(cfg.Fs, cfg.Mode, cfg.Root, prefixes...)
	if err != nil {
		return err
	}
	p.logger.Debugf("%s: %d env variables, %d pages in %s mode", p.Name(), len(env), p.registry.Len(), p.registry.Mode())

	p.resolved.Store(&Context{
		Env:    env,
		Define: cfg.Define,
		Base:   cfg.Base,
		Mode:   cfg.Mode,
		Root:   cfg.Root,
	})
	return nil
}

// ConfigureServer installs the history fallback with one rewrite per page.
func (p *HTMLPlugin) ConfigureServer(s Server) error {
	c := p.resolved.Load()
	if c == nil {
		return errNotResolved
	}
	s.Use(devserver.HistoryFallback(devserver.Options{
		Rewrites:          p.registry.Rewrites(c.Base),
		HTMLAcceptHeaders: HTMLAcceptHeaders,
		Logger:            p.logger,
	}))
	return nil
}

// TransformIndexHTML renders html with the environment, the define values
// and the template parameters, and returns the tags to inject.
func (p *HTMLPlugin) TransformIndexHTML(ctx context.Context, html string, tc TransformContext) (TransformResult, error) {
	c := p.resolved.Load()
	if c == nil {
		return TransformResult{}, errNotResolved
	}

	var (
		pageParams map[string]any
		pageTags   []tpl.Tag
	)
	if pg := p.registry.Find(tc.Filename, tc.OriginalURL); pg != nil {
		pageParams = pg.TemplateParameters
		pageTags = pg.Tags
	}

	rc := tpl.NewRenderContext(c.Env, c.Define, p.opts.TemplateParameters, pageParams)
	s, err := tpl.Render(ctx, p.renderer, tc.Filename, html, rc, p.opts.EngineOptions)
	if err != nil {
		return TransformResult{}, err
	}

	return TransformResult{
		HTML: s,
		Tags: tpl.MergeTags(p.opts.Tags, pageTags),
	}, nil
}
