package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeIsRightBiased(t *testing.T) {
	env := map[string]any{"MODE": "production", "title": "env"}
	global := map[string]any{"title": "global", "lang": "en"}
	page := map[string]any{"title": "page"}

	m := Merge(env, nil, global, page)

	assert.Equal(t, "page", m["title"])
	assert.Equal(t, "en", m["lang"])
	assert.Equal(t, "production", m["MODE"])
	// Inputs are untouched.
	assert.Equal(t, "global", global["title"])
}

func TestPrepareParams(t *testing.T) {
	p := Params{
		"Template": "index.html",
		"Pages": []any{
			map[string]any{"Template": "admin/index.html"},
		},
		"Nested": map[string]string{"Key": "v"},
	}
	PrepareParams(p)

	assert.Equal(t, "index.html", p["template"])
	pages, ok := p["pages"].([]any)
	require.True(t, ok)
	assert.Equal(t, Params{"template": "admin/index.html"}, pages[0])
	assert.Equal(t, "v", p.Get("nested", "KEY"))
}

func TestPrepareParamsKeepCase(t *testing.T) {
	p := Params{
		"Define": map[string]any{"APP_VERSION": "1.2"},
		"Plugin": map[string]any{
			"TemplateParameters": map[string]any{"appTitle": "Hello", "Nav": map[string]any{"homeURL": "/"}},
			"Pages": []any{
				map[string]any{"Template": "admin/index.html", "templateParameters": map[string]any{"pageTitle": "Admin"}},
			},
		},
	}
	PrepareParams(p, "define", "templateparameters")

	assert.Equal(t, Params{"APP_VERSION": "1.2"}, p["define"])
	plugin := p["plugin"].(Params)
	assert.Equal(t, Params{"appTitle": "Hello", "Nav": Params{"homeURL": "/"}}, plugin["templateparameters"])
	pages := plugin["pages"].([]any)
	assert.Equal(t, Params{"template": "admin/index.html", "templateparameters": Params{"pageTitle": "Admin"}}, pages[0])
}

func TestParamsSet(t *testing.T) {
	p := Params{"a": Params{"b": 1, "c": 2}}
	p.Set(Params{"a": Params{"b": 3}, "d": 4})
	assert.Equal(t, 3, p.Get("a", "b"))
	assert.Equal(t, 2, p.Get("a", "c"))
	assert.Equal(t, 4, p["d"])
}

func TestToStringMapString(t *testing.T) {
	assert.Equal(t, map[string]string{"a": "1"}, ToStringMapString(map[string]any{"a": 1}))
	assert.Nil(t, FromStringMapString(nil))
}
