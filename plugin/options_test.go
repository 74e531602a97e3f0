package plugin

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunwei/templatehtml/config"
	"github.com/sunwei/templatehtml/route"
	"github.com/sunwei/templatehtml/tpl"
)

func TestDecodeOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.toml", []byte(`
[plugin]
minify = false
template = "public/index.html"
route = "/app"

[plugin.templateParameters]
appTitle = "Hello"

[plugin.engineOptions]
engine = "pongo2"

[[plugin.tags]]
tag = "script"
injectTo = "body"
[plugin.tags.attrs]
src = "/main.js"
defer = true

[[plugin.tags]]
tag = "title"
children = "Home"

[[plugin.pages]]
template = "admin/index.html"
route = { pattern = "^/(admin|staff)" }

[[plugin.pages]]
template = "shop/index.html"
output = "shop"
`), 0644))

	cfg, err := config.FromFile(fs, "config.toml")
	require.NoError(t, err)

	opts, err := DecodeOptions(cfg.GetStringMap("plugin"))
	require.NoError(t, err)

	require.NotNil(t, opts.Minify)
	assert.False(t, opts.MinifyEnabled())
	assert.Equal(t, "public/index.html", opts.Template)
	assert.Equal(t, route.KindLiteral, opts.Route.Kind())
	assert.Equal(t, "/app", opts.Route.Source())
	assert.Equal(t, map[string]any{"appTitle": "Hello"}, opts.TemplateParameters)
	assert.Equal(t, tpl.EnginePongo2, opts.EngineOptions.Engine)

	require.Len(t, opts.Tags, 2)
	assert.Equal(t, "script", opts.Tags[0].Tag)
	assert.Equal(t, tpl.InjectBody, opts.Tags[0].InjectTo)
	assert.Equal(t, "/main.js", opts.Tags[0].Attrs["src"])
	assert.Equal(t, true, opts.Tags[0].Attrs["defer"])
	assert.Equal(t, "Home", opts.Tags[1].Text)

	require.Len(t, opts.Pages, 2)
	assert.Equal(t, route.KindPattern, opts.Pages[0].Route.Kind())
	assert.Equal(t, "^/(admin|staff)", opts.Pages[0].Route.Source())
	assert.True(t, opts.Pages[1].Route.IsZero())
	assert.Equal(t, "shop", opts.Pages[1].Output)

	plugins, err := New(opts)
	require.NoError(t, err)
	assert.Len(t, plugins, 1)
}

func TestDecodeOptionsEmpty(t *testing.T) {
	opts, err := DecodeOptions(nil)
	require.NoError(t, err)
	assert.True(t, opts.MinifyEnabled())

	_, err = DecodeOptions(map[string]any{"route": map[string]any{"regex": "x"}})
	assert.Error(t, err)

	_, err = DecodeOptions(map[string]any{"route": map[string]any{"pattern": "("}})
	assert.Error(t, err)
}
