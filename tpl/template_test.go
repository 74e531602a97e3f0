package tpl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderContextPrecedence(t *testing.T) {
	env := map[string]string{"title": "env", "APP_ENV": "production"}
	define := map[string]any{"title": "define", "__VERSION__": `"1.0.0"`}
	global := map[string]any{"title": "global", "lang": "en"}
	page := map[string]any{"title": "page"}

	rc := NewRenderContext(env, define, global, page)
	assert.Equal(t, "page", rc["title"])
	assert.Equal(t, "en", rc["lang"])
	assert.Equal(t, `"1.0.0"`, rc["__VERSION__"])
	assert.Equal(t, "production", rc["APP_ENV"])

	rc = NewRenderContext(env, define, global, nil)
	assert.Equal(t, "global", rc["title"])

	rc = NewRenderContext(env, define, nil, nil)
	assert.Equal(t, "define", rc["title"])
}

func TestNewRenderContextPageWinsForEveryKey(t *testing.T) {
	global := map[string]any{"a": 1, "b": 2, "c": 3}
	page := map[string]any{"a": "x", "c": "z"}

	rc := NewRenderContext(nil, nil, global, page)
	for k, v := range page {
		assert.Equal(t, v, rc[k], k)
	}
	assert.Equal(t, 2, rc["b"])
}

func TestRenderPropagatesErrors(t *testing.T) {
	errBroken := errors.New("unexpected token")
	r := RendererFunc(func(ctx context.Context, name, text string, data map[string]any, opts EngineOptions) (string, error) {
		return "", errBroken
	})

	_, err := Render(context.Background(), r, "index.html", "<%", nil, EngineOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBroken))
	assert.Contains(t, err.Error(), "index.html")
}

func TestRenderPassesData(t *testing.T) {
	var got map[string]any
	var gotOpts EngineOptions
	r := RendererFunc(func(ctx context.Context, name, text string, data map[string]any, opts EngineOptions) (string, error) {
		got = data
		gotOpts = opts
		return "rendered:" + text, nil
	})

	s, err := Render(context.Background(), r, "index.html", "x", RenderContext{"title": "T"}, EngineOptions{Engine: EnginePongo2})
	require.NoError(t, err)
	assert.Equal(t, "rendered:x", s)
	assert.Equal(t, "T", got["title"])
	assert.Equal(t, EnginePongo2, gotOpts.Engine)
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := RendererFunc(func(ctx context.Context, name, text string, data map[string]any, opts EngineOptions) (string, error) {
		t.Fatal("renderer called")
		return "", nil
	})
	_, err := Render(ctx, r, "index.html", "", nil, EngineOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
