package hostlib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/plugin"
	"github.com/sunwei/templatehtml/resources/page"
	"github.com/sunwei/templatehtml/route"
	"github.com/sunwei/templatehtml/tpl"
)

const layout = `<!DOCTYPE html>
<html>
  <head>
    <title>{{.title}}</title>
  </head>
  <body>
    <p>{{.VERSION}} {{.TEMPLATEHTML_HOST_VAR}}</p>
  </body>
</html>
`

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range map[string]string{
		"/project/index.html":       layout,
		"/project/admin/index.html": layout,
		"/project/assets/app.js":    "console.log(1)",
		"/project/.env":             "TEMPLATEHTML_HOST_VAR=fromenv\n",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func newTestHost(t *testing.T, fs afero.Fs, minify bool) (*Host, *plugin.HTMLPlugin) {
	t.Helper()
	logger := loggers.NewDiscard()
	plugins, err := plugin.New(plugin.Options{
		Minify:             &minify,
		TemplateParameters: map[string]any{"title": "Global"},
		Pages: []page.Options{
			{
				Template:           "admin/index.html",
				Output:             "admin",
				TemplateParameters: map[string]any{"title": "Admin"},
				Tags:               []tpl.Tag{{Tag: "script", Attrs: map[string]any{"src": "/admin.js"}, InjectTo: tpl.InjectBody}},
			},
			{Template: "index.html", Route: route.Literal("/")},
		},
		Logger: logger,
	})
	require.NoError(t, err)

	h, err := New(HostConfig{
		Fs:     fs,
		Root:   "/project",
		Define: map[string]any{"VERSION": "1.2"},
		Logger: logger,
	}, plugins...)
	require.NoError(t, err)

	return h, plugins[0].(*plugin.HTMLPlugin)
}

func TestBuild(t *testing.T) {
	fs := newTestFs(t)
	h, html := newTestHost(t, fs, false)

	res, err := h.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Published)
	assert.Equal(t, 2, res.Bundle.Len())
	assert.Equal(t, "production", html.Context().Mode)

	admin, err := afero.ReadFile(fs, "/project/dist/admin/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(admin), "<title>Admin</title>")
	assert.Contains(t, string(admin), "<p>1.2 fromenv</p>")
	assert.Contains(t, string(admin), `src="/admin.js"`)

	index, err := afero.ReadFile(fs, "/project/dist/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Global</title>")
	assert.NotContains(t, string(index), "admin.js")
	assert.Contains(t, string(index), "\n  <head>\n")
}

func TestBuildMinify(t *testing.T) {
	fs := newTestFs(t)
	h, _ := newTestHost(t, fs, true)

	_, err := h.Build(context.Background())
	require.NoError(t, err)

	index, err := afero.ReadFile(fs, "/project/dist/index.html")
	require.NoError(t, err)
	assert.NotContains(t, string(index), "  ")
	assert.Contains(t, string(index), "<title>Global</title>")
}

func TestBuildUserInput(t *testing.T) {
	fs := newTestFs(t)
	plugins, err := plugin.New(plugin.Options{Logger: loggers.NewDiscard()})
	require.NoError(t, err)

	h, err := New(HostConfig{
		Fs:     fs,
		Root:   "/project",
		OutDir: "out",
		Input:  page.Input{Single: "admin/index.html"},
		Logger: loggers.NewDiscard(),
	}, plugins...)
	require.NoError(t, err)

	res, err := h.Build(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Bundle.Get("admin/index.html"))
	assert.Nil(t, res.Bundle.Get("index.html"))

	exists, err := afero.Exists(fs, "/project/out/admin/index.html")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBuildErrors(t *testing.T) {
	h, err := New(HostConfig{Fs: newTestFs(t), Root: "/project", Logger: loggers.NewDiscard()})
	require.NoError(t, err)
	_, err = h.Build(context.Background())
	assert.EqualError(t, err, "build: no input")

	plugins, err := plugin.New(plugin.Options{Template: "missing.html", Logger: loggers.NewDiscard()})
	require.NoError(t, err)
	h, err = New(HostConfig{Fs: newTestFs(t), Root: "/project", Logger: loggers.NewDiscard()}, plugins...)
	require.NoError(t, err)
	_, err = h.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.html")
}

func TestHandler(t *testing.T) {
	h, html := newTestHost(t, newTestFs(t), true)

	handler, err := h.Handler(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "development", html.Context().Mode)

	get := func(url, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		req.Header.Set("Accept", accept)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	rec := get("/admin/users/42", "text/html,application/xhtml+xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Admin</title>")
	assert.Contains(t, rec.Body.String(), `src="/admin.js"`)
	// Templates are not minified while serving.
	assert.Contains(t, rec.Body.String(), "\n")

	rec = get("/pricing", "text/html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Global</title>")

	rec = get("/assets/app.js", "*/*")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", strings.TrimSpace(rec.Body.String()))
}
