package plugin

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/common/maps"
	"github.com/sunwei/templatehtml/config"
	"github.com/sunwei/templatehtml/resources/page"
	"github.com/sunwei/templatehtml/route"
	"github.com/sunwei/templatehtml/tpl"
)

// Options configures the plugins returned by New.
type Options struct {
	// Minify the emitted HTML. Defaults to true.
	Minify *bool

	// Template is the single-page template. Defaults to index.html.
	Template string

	// Route selects the requests served by the single page.
	// Defaults to every request.
	Route route.Route

	// Output is the single-page build input name.
	Output string

	// TemplateParameters are available to every template.
	TemplateParameters map[string]any

	// Tags are injected into every template.
	Tags []tpl.Tag

	// Pages switches to multi-page mode.
	Pages []page.Options

	// EngineOptions are passed to the Renderer.
	EngineOptions tpl.EngineOptions

	// Renderer renders templates. Defaults to tplimpl.New().
	Renderer tpl.Renderer `mapstructure:"-"`

	// MinifyConfig holds the minify settings. May be nil.
	MinifyConfig config.Provider `mapstructure:"-"`

	Logger loggers.Logger `mapstructure:"-"`
}

// MinifyEnabled reports whether the minify plugin is added.
func (o Options) MinifyEnabled() bool {
	return o.Minify == nil || *o.Minify
}

var tagType = reflect.TypeOf(tpl.Tag{})

// tagDecodeHook accepts children given as a string, which is the tag's
// inner HTML.
func tagDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != tagType {
			return data, nil
		}
		m, err := maps.ToStringMapE(data)
		if err != nil {
			return data, nil
		}
		p := maps.Params(maps.Merge(m))
		maps.PrepareParams(p)
		if s, ok := p["children"].(string); ok {
			delete(p, "children")
			p["text"] = s
		}
		return map[string]any(p), nil
	}
}

// DecodeOptions decodes the plugin options from a config map, e.g. the
// plugin table of the config file.
func DecodeOptions(m map[string]any) (Options, error) {
	var opts Options
	if m == nil {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			route.DecodeHook(),
			tagDecodeHook(),
		),
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, err
	}

	if err := decoder.Decode(m); err != nil {
		return opts, fmt.Errorf("failed to decode plugin options: %w", err)
	}

	return opts, nil
}
