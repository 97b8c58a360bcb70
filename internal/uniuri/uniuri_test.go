package uniuri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()

	assert.Len(t, a, StdLen)
	assert.NotEqual(t, a, b)

	for _, c := range []byte(a) {
		assert.True(t, bytes.IndexByte(StdChars, c) >= 0, "unexpected character %q", c)
	}
}

func TestNewLenChars(t *testing.T) {
	assert.Empty(t, NewLen(0))
	assert.Len(t, NewLen(100), 100)

	only := NewLenChars(32, []byte("ab"))
	assert.Len(t, only, 32)
	assert.Empty(t, bytes.Trim([]byte(only), "ab"))

	assert.Panics(t, func() { NewLenChars(4, []byte("a")) })
}
