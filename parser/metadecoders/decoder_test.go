package metadecoders

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalToMap(t *testing.T) {
	expect := map[string]any{"a": "b"}

	for _, test := range []struct {
		data   string
		format Format
	}{
		{`a = "b"`, TOML},
		{`a: b`, YAML},
		{`{"a": "b"}`, JSON},
	} {
		m, err := Default.UnmarshalToMap([]byte(test.data), test.format)
		require.NoError(t, err, test.format)
		assert.Equal(t, expect, m, test.format)
	}
}

func TestUnmarshalYAMLNested(t *testing.T) {
	m, err := Default.UnmarshalToMap([]byte(`
plugin:
  pages:
    - template: admin/index.html
      templateParameters:
        title: Admin
`), YAML)
	require.NoError(t, err)

	plugin, ok := m["plugin"].(map[string]any)
	require.True(t, ok)
	pages, ok := plugin["pages"].([]any)
	require.True(t, ok)
	page, ok := pages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"title": "Admin"}, page["templateParameters"])
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Default.UnmarshalToMap([]byte(`a = `), TOML)
	assert.Error(t, err)

	_, err = Default.UnmarshalToMap([]byte(`a`), Format("ini"))
	assert.Error(t, err)
}

func TestUnmarshalFileToMap(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "c.yml", []byte("mode: staging"), 0644))
	require.NoError(t, afero.WriteFile(fs, "c.ini", []byte("mode=staging"), 0644))

	m, err := Default.UnmarshalFileToMap(fs, "c.yml")
	require.NoError(t, err)
	assert.Equal(t, "staging", m["mode"])

	_, err = Default.UnmarshalFileToMap(fs, "c.ini")
	assert.Error(t, err)
}

func TestFormatFromString(t *testing.T) {
	assert.Equal(t, YAML, FormatFromString(".yml"))
	assert.Equal(t, TOML, FormatFromString("TOML"))
	assert.Equal(t, Format(""), FormatFromString("ini"))
}
