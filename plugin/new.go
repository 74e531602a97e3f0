package plugin

import (
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/minifiers"
	"github.com/sunwei/templatehtml/resources/page"
	"github.com/sunwei/templatehtml/tpl/tplimpl"
)

// New creates the HTML plugin and, unless minification is turned off,
// the minify plugin.
func New(opts Options) ([]Plugin, error) {
	if opts.Logger == nil {
		opts.Logger = loggers.NewDefault()
	}
	if opts.Renderer == nil {
		opts.Renderer = tplimpl.New()
	}

	registry, err := page.NewRegistry(page.Config{
		Route:    opts.Route,
		Template: opts.Template,
		Output:   opts.Output,
		Pages:    opts.Pages,
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	plugins := []Plugin{newHTMLPlugin(opts, registry)}

	if opts.MinifyEnabled() {
		client, err := minifiers.New(opts.MinifyConfig)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, &MinifyPlugin{client: client})
	}

	return plugins, nil
}
