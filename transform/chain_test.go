package transform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(ft FromTo) error {
	_, err := ft.To().Write(bytes.ToUpper(ft.From().Bytes()))
	return err
}

func suffix(s string) Transformer {
	return func(ft FromTo) error {
		b := ft.From().Bytes()
		_, err := ft.To().Write(append(append([]byte{}, b...), s...))
		return err
	}
}

func TestChainApply(t *testing.T) {
	c := New(upper, suffix("-a"), suffix("-b"))

	var out bytes.Buffer
	require.NoError(t, c.Apply(&out, strings.NewReader("html")))
	assert.Equal(t, "HTML-a-b", out.String())
}

func TestEmptyChainCopies(t *testing.T) {
	c := NewEmpty().Add(nil)
	s, err := c.ApplyString("<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", s)
}
