package store

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layer.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestNewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, s.Missing(), len(Datasets))

	require.NoError(t, os.WriteFile(s.Path("ne_50m_coastline"), nil, 0o644))
	assert.True(t, s.Has("ne_50m_coastline"))
	assert.Len(t, s.Missing(), len(Datasets)-1)
	for _, ds := range s.Missing() {
		assert.NotEqual(t, "ne_50m_coastline", ds.Base)
	}
}

func TestImport(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	archive := writeZip(t, map[string]string{
		"ne_50m_coastline/ne_50m_coastline.shp": "shp",
		"ne_50m_coastline/ne_50m_coastline.dbf": "dbf",
		"ne_50m_coastline/.DS_Store":            "junk",
	})

	shapefiles, err := s.Import(archive)
	require.NoError(t, err)
	assert.Equal(t, []string{"ne_50m_coastline.shp"}, shapefiles)
	assert.True(t, s.Has("ne_50m_coastline"))

	data, err := os.ReadFile(filepath.Join(s.Dir(), "ne_50m_coastline.dbf"))
	require.NoError(t, err)
	assert.Equal(t, "dbf", string(data))

	_, err = os.Stat(filepath.Join(s.Dir(), ".DS_Store"))
	assert.True(t, os.IsNotExist(err))
}

func TestImportBadArchive(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0o644))

	_, err = s.Import(bad)
	assert.Error(t, err)
}
