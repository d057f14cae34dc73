package exif

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tstromberg/bildtext/pkg/caption"
)

func TestReadSidecar(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "IMG_0001.jpg")
	require.NoError(t, os.WriteFile(img+".json", []byte(`{"title":"Harbor","description":"Fog rolling in"}`), 0o644))

	s, err := ReadSidecar(img)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Harbor", s.Title)
	assert.Equal(t, "Fog rolling in", s.Description)
}

func TestReadSidecarSupplemental(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "IMG_0002.jpg")
	require.NoError(t, os.WriteFile(img+".supplemental-metadata.json", []byte(`{"description":"Dusk"}`), 0o644))

	s, err := ReadSidecar(img)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Dusk", s.Description)
}

func TestReadSidecarMissing(t *testing.T) {
	s, err := ReadSidecar(filepath.Join(t.TempDir(), "none.jpg"))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestReadSidecarInvalid(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "IMG_0003.jpg")
	require.NoError(t, os.WriteFile(img+".json", []byte(`{`), 0o644))

	_, err := ReadSidecar(img)
	assert.Error(t, err)
}

func TestSidecarApply(t *testing.T) {
	m := caption.Metadata{Title: caption.Some("Old"), Description: caption.Some("Old desc")}

	(&TakeoutSidecar{Title: "IMG_0001.jpg", Description: ""}).Apply(&m, "/photos/IMG_0001.jpg")
	assert.Equal(t, caption.Some("Old"), m.Title)
	assert.Equal(t, caption.Some("Old desc"), m.Description)

	(&TakeoutSidecar{Title: "Harbor", Description: "Fog"}).Apply(&m, "/photos/IMG_0001.jpg")
	assert.Equal(t, caption.Some("Harbor"), m.Title)
	assert.Equal(t, caption.Some("Fog"), m.Description)
}
