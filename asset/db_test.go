package asset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBPackAndRead(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bundle.db")

	w, err := NewDBWriter(dbPath)
	require.NoError(t, err)
	require.NoError(t, w.Add("/app.js", "exports.ok = 1;"))
	require.NoError(t, w.Add("/pkg/package.json", `{"main":"lib/index.js"}`))
	require.NoError(t, w.Close())

	d, err := OpenDB(dbPath)
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	assert.True(t, d.Exists("/app.js"))
	assert.True(t, d.Exists("/pkg/package.json"))
	assert.False(t, d.Exists("/nope.js"))

	body, err := d.ReadText("/app.js")
	require.NoError(t, err)
	assert.Equal(t, "exports.ok = 1;", body)

	_, err = d.ReadText("/nope.js")
	assert.Error(t, err)
}

func TestDBWriterOverwrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bundle.db")

	w, err := NewDBWriter(dbPath)
	require.NoError(t, err)
	require.NoError(t, w.Add("/a.js", "old"))
	require.NoError(t, w.Add("/a.js", "new"))
	require.NoError(t, w.Close())

	d, err := OpenDB(dbPath)
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	body, err := d.ReadText("/a.js")
	require.NoError(t, err)
	assert.Equal(t, "new", body)
}
