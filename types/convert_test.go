package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStringSlicePreserveString(t *testing.T) {
	assert.Equal(t, []string{"VITE_"}, ToStringSlicePreserveString("VITE_"))
	assert.Equal(t, []string{"A_", "B_"}, ToStringSlicePreserveString([]any{"A_", "B_"}))
	assert.Equal(t, []string{"1", "2"}, ToStringSlicePreserveString([]int{1, 2}))
	assert.Nil(t, ToStringSlicePreserveString(nil))
}

func TestToAttrValue(t *testing.T) {
	s, bare, ok := ToAttrValue(true)
	assert.True(t, ok)
	assert.True(t, bare)
	assert.Empty(t, s)

	_, _, ok = ToAttrValue(false)
	assert.False(t, ok)

	_, _, ok = ToAttrValue(nil)
	assert.False(t, ok)

	s, bare, ok = ToAttrValue(42)
	assert.True(t, ok)
	assert.False(t, bare)
	assert.Equal(t, "42", s)
}

func TestIsNil(t *testing.T) {
	var m map[string]any
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(m))
	assert.False(t, IsNil(""))
}
