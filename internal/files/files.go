// Package files reads images and scene documents from disk for the board.
package files

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile is returned for files the board cannot open or drop.
var ErrUnsupportedFile = errors.New("unsupported file type")

// MIME types the board understands.
const (
	MIMEPNG           = "image/png"
	MIMEJPG           = "image/jpeg"
	MIMESVG           = "image/svg+xml"
	MIMEGIF           = "image/gif"
	MIMEWEBP          = "image/webp"
	MIMEBMP           = "image/bmp"
	MIMEICO           = "image/x-icon"
	MIMEAVIF          = "image/avif"
	MIMEJFIF          = "image/jfif"
	MIMEJSON          = "application/json"
	MIMEExcalidraw    = "application/vnd.excalidraw+json"
	MIMEExcalidrawLib = "application/vnd.excalidrawlib+json"
)

var mimeByExt = map[string]string{
	".png":           MIMEPNG,
	".jpg":           MIMEJPG,
	".jpeg":          MIMEJPG,
	".svg":           MIMESVG,
	".gif":           MIMEGIF,
	".webp":          MIMEWEBP,
	".bmp":           MIMEBMP,
	".ico":           MIMEICO,
	".avif":          MIMEAVIF,
	".jfif":          MIMEJFIF,
	".json":          MIMEJSON,
	".excalidraw":    MIMEExcalidraw,
	".excalidrawlib": MIMEExcalidrawLib,
}

// File is a named blob with its MIME type.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// MIMEType maps a file extension (with or without the dot) to its MIME type.
// Unknown extensions give an empty string.
func MIMEType(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return mimeByExt[ext]
}

// IsImage reports whether mime is one of the image types above.
func IsImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// IsScene reports whether mime carries a scene document.
func IsScene(mime string) bool {
	return mime == MIMEJSON || mime == MIMEExcalidraw
}

// Resolve makes path absolute, resolving relative paths against base.
func Resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// ReadFile reads path, resolved against base.
func ReadFile(base, path string) ([]byte, error) {
	data, err := os.ReadFile(Resolve(base, path))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// LoadFile reads path into a File named after its base name, with the MIME
// type derived from its extension.
func LoadFile(base, path string) (*File, error) {
	data, err := ReadFile(base, path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	return &File{
		Name:     name,
		MIMEType: MIMEType(filepath.Ext(name)),
		Data:     data,
	}, nil
}

// Text returns the file content when mime matches the file's type and an
// empty string otherwise.
func (f *File) Text(mime string) string {
	if mime != f.MIMEType {
		return ""
	}
	return string(f.Data)
}

// ID returns the content-derived identifier of the file.
func (f *File) ID() string {
	return FileID(f.Data)
}

// DataURL encodes the file as a base64 data URL.
func (f *File) DataURL() string {
	return DataURL(f.MIMEType, f.Data)
}

// FileID is the hex sha1 of data. Equal content always shares an id.
func FileID(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// DataURL encodes data as a base64 data URL of the given MIME type.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its MIME type and payload.
func DecodeDataURL(url string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("decode data url: missing data: prefix")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("decode data url: missing payload")
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("decode data url: %w", ErrUnsupportedFile)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mime, data, nil
}
