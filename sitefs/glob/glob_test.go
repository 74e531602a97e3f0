package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGlobCaches(t *testing.T) {
	g1, err := GetGlob("**/*.html")
	require.NoError(t, err)
	g2, err := GetGlob("**/*.html")
	require.NoError(t, err)
	assert.Equal(t, g1, g2)

	_, err = GetGlob("[")
	assert.Error(t, err)
}

func TestFilenameFilter(t *testing.T) {
	f := MustNewFilenameFilter([]string{"*.html", "**/*.html"}, []string{"**/vendor/**"})

	assert.True(t, f.Match("index.html"))
	assert.True(t, f.Match("admin/index.html"))
	assert.True(t, f.Match("a/b/C.html"))
	assert.False(t, f.Match("a/b/INDEX.HTML"))
	assert.True(t, f.Match("./index.html"))
	assert.False(t, f.Match("assets/main.js"))
	assert.False(t, f.Match("a/vendor/x.html"))

	var nilFilter *FilenameFilter
	assert.True(t, nilFilter.Match("anything"))
}
