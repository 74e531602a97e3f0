package tplimpl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunwei/templatehtml/common/text"
	"github.com/sunwei/templatehtml/tpl"
)

func render(t *testing.T, text string, data map[string]any, opts tpl.EngineOptions) (string, error) {
	t.Helper()
	return New().Render(context.Background(), "index.html", text, data, opts)
}

func TestRenderGo(t *testing.T) {
	s, err := render(t, `<title>{{ .title }}</title>`, map[string]any{"title": "Home"}, tpl.EngineOptions{})
	require.NoError(t, err)
	assert.Equal(t, `<title>Home</title>`, s)
}

func TestRenderGoDelims(t *testing.T) {
	opts := tpl.EngineOptions{LeftDelim: "<%=", RightDelim: "%>"}
	s, err := render(t, `<title><%= .title %></title>{{ not a template }}`, map[string]any{"title": "Home"}, opts)
	require.NoError(t, err)
	assert.Equal(t, `<title>Home</title>{{ not a template }}`, s)
}

func TestRenderGoFuncs(t *testing.T) {
	opts := tpl.EngineOptions{Funcs: map[string]any{"upper": strings.ToUpper}}
	s, err := render(t, `{{ upper .title }}`, map[string]any{"title": "home"}, opts)
	require.NoError(t, err)
	assert.Equal(t, "HOME", s)
}

func TestRenderGoMissingKey(t *testing.T) {
	_, err := render(t, `{{ .nope }}`, map[string]any{}, tpl.EngineOptions{MissingKey: "error"})
	assert.Error(t, err)

	s, err := render(t, `[{{ .nope }}]`, map[string]any{}, tpl.EngineOptions{MissingKey: "zero"})
	require.NoError(t, err)
	assert.Equal(t, "[<no value>]", s)
}

func TestRenderGoSyntaxError(t *testing.T) {
	_, err := render(t, `{{ .title `, map[string]any{}, tpl.EngineOptions{})
	require.Error(t, err)

	var p text.Positioner
	require.True(t, errors.As(err, &p))
	assert.Equal(t, 1, p.Position().LineNumber)
	assert.Equal(t, "index.html", p.Position().Filename)
}

func TestRenderGoExecErrorPosition(t *testing.T) {
	_, err := render(t, "<p>\n{{ .nope }}</p>", map[string]any{}, tpl.EngineOptions{MissingKey: "error"})
	require.Error(t, err)

	var p text.Positioner
	require.True(t, errors.As(err, &p))
	assert.Equal(t, 2, p.Position().LineNumber)
}

func TestRenderGoHTMLEscapes(t *testing.T) {
	s, err := render(t, `<p>{{ .v }}</p>`, map[string]any{"v": "<b>"}, tpl.EngineOptions{Engine: tpl.EngineGoHTML})
	require.NoError(t, err)
	assert.Equal(t, `<p>&lt;b&gt;</p>`, s)
}

func TestRenderPongo2(t *testing.T) {
	s, err := render(t, `<title>{{ title }}</title>`, map[string]any{"title": "Home"}, tpl.EngineOptions{Engine: tpl.EnginePongo2})
	require.NoError(t, err)
	assert.Equal(t, `<title>Home</title>`, s)

	_, err = render(t, `{% if %}`, map[string]any{}, tpl.EngineOptions{Engine: tpl.EnginePongo2})
	assert.Error(t, err)
}

func TestRenderUnknownEngine(t *testing.T) {
	_, err := render(t, ``, nil, tpl.EngineOptions{Engine: "ejs"})
	assert.Error(t, err)
}
