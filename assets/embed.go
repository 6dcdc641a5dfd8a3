// Package assets resolves sheet, config, image and script files and keeps
// the built spritesheets in a reloadable Library. Files are read from disk
// under Dir first so edits show up without rebuilding, then from the copies
// embedded in the binary.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed sheets
var sheetsFS embed.FS

// Dir is the disk directory searched before the embedded files.
var Dir = filepath.Join("assets", "sheets")

// LoadFile reads an asset by its path relative to the sheets directory.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	data, err := sheetsFS.ReadFile("sheets/" + clean)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", clean, err)
	}
	return data, nil
}

// LoadImage decodes a PNG asset into an ebiten image.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadScript reads a Tengo script asset.
func LoadScript(path string) ([]byte, error) {
	return LoadFile(path)
}

// DiskPath returns where path lives on disk.
func DiskPath(path string) string {
	return filepath.Join(Dir, filepath.FromSlash(cleanAssetPath(path)))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(filepath.Clean(path))
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/sheets/"); idx >= 0 {
			return s[idx+len("/sheets/"):]
		}
		return filepath.Base(path)
	}
	s = strings.TrimPrefix(s, "assets/")
	s = strings.TrimPrefix(s, "sheets/")
	return s
}
