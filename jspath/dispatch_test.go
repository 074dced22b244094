package jspath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallDispatch(t *testing.T) {
	got, err := Posix.Call("normalize", "/a/b/../c")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", got)

	got, err = Posix.Call("join", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c", got)

	got, err = Posix.Call("basename", "/a/b/c.js", ".js")
	require.NoError(t, err)
	assert.Equal(t, "c", got)

	got, err = Posix.Call("isAbsolute", "/x")
	require.NoError(t, err)
	assert.Equal(t, true, got)

	got, err = Win32.Call("sep")
	require.NoError(t, err)
	assert.Equal(t, `\`, got)
}

func TestCallRejectsNonStrings(t *testing.T) {
	_, err := Posix.Call("normalize", 42)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Posix.Call("dirname", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// variadic join/resolve validate every segment
	_, err = Posix.Call("join", "ok", 1, "x")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Posix.Call("resolve", "/a", false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Posix.Call("basename", "/a/b.js", 7)
	assert.ErrorIs(t, err, ErrInvalidArgument, "ext must be a string when provided")

	_, err = Posix.Call("relative", "/a", map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Posix.Call("format", "not-an-object")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Posix.Call("nope", "x")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCallParseFormat(t *testing.T) {
	v, err := Posix.Call("parse", "/a/b.js")
	require.NoError(t, err)
	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b.js", obj["base"])
	assert.Equal(t, "/", obj["root"])

	back, err := Posix.Call("format", obj)
	require.NoError(t, err)
	assert.Equal(t, "/a/b.js", back)
}
