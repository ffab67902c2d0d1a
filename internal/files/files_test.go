package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMIMEType(t *testing.T) {
	tests := map[string]string{
		".png":        MIMEPNG,
		"PNG":         MIMEPNG,
		".jpeg":       MIMEJPG,
		".excalidraw": MIMEExcalidraw,
		".txt":        "",
		"":            "",
	}
	for ext, want := range tests {
		assert.Equal(t, want, MIMEType(ext), ext)
	}
	assert.True(t, IsImage(MIMESVG))
	assert.False(t, IsImage(MIMEJSON))
	assert.True(t, IsScene(MIMEExcalidraw))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fixtures"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fixtures", "smiley.png"), []byte("png-bytes"), 0o644))

	f, err := LoadFile(dir, "fixtures/smiley.png")
	require.NoError(t, err)
	assert.Equal(t, "smiley.png", f.Name)
	assert.Equal(t, MIMEPNG, f.MIMEType)
	assert.Equal(t, []byte("png-bytes"), f.Data)

	abs, err := LoadFile("/nowhere", filepath.Join(dir, "fixtures", "smiley.png"))
	require.NoError(t, err)
	assert.Equal(t, f.Data, abs.Data)

	assert.Equal(t, "png-bytes", f.Text(MIMEPNG))
	assert.Empty(t, f.Text(MIMEJSON))
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(t.TempDir(), "missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFileIDAndDataURL(t *testing.T) {
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", FileID([]byte("abc")))

	f := &File{MIMEType: MIMEPNG, Data: []byte("abc")}
	assert.Equal(t, "data:image/png;base64,YWJj", f.DataURL())
	assert.Equal(t, FileID(f.Data), f.ID())

	mime, data, err := DecodeDataURL(f.DataURL())
	require.NoError(t, err)
	assert.Equal(t, MIMEPNG, mime)
	assert.Equal(t, []byte("abc"), data)

	_, _, err = DecodeDataURL("data:text/plain,abc")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	_, _, err = DecodeDataURL("abc")
	assert.Error(t, err)
}
