package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sheetanim/config"
	"github.com/milk9111/sheetanim/sprite"
)

// Entry is one loaded sheet: the built spritesheet, its sidecar config and
// the decoded image. Entries are replaced, never modified, on reload.
type Entry struct {
	Key     string
	Sheet   *sprite.Spritesheet
	Spec    config.SheetSpec
	Image   *ebiten.Image
	Version int
}

// Library caches sheets by key. Key "knight" reads "knight.json" and the
// optional sidecar "knight.yaml". It is safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	files  func(path string) ([]byte, error)
	images func(path string) (*ebiten.Image, error)
}

type LibraryOption func(*Library)

// WithFiles replaces LoadFile as the file source.
func WithFiles(fn func(path string) ([]byte, error)) LibraryOption {
	return func(l *Library) {
		l.files = fn
	}
}

// WithImages replaces LoadImage. A nil fn disables image loading and the
// entries keep a nil Image.
func WithImages(fn func(path string) (*ebiten.Image, error)) LibraryOption {
	return func(l *Library) {
		l.images = fn
	}
}

func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		entries: make(map[string]*Entry),
		files:   LoadFile,
		images:  LoadImage,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the cached entry for key, building it on first use.
func (l *Library) Load(key string) (*Entry, error) {
	key = SheetKey(key)
	if e, ok := l.Lookup(key); ok {
		return e, nil
	}
	e, err := l.build(key)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.entries[key]; ok {
		return cur, nil
	}
	l.entries[key] = e
	return e, nil
}

// Reload rebuilds key from its files. The new entry gets a new sheet
// identity; on error the previous entry stays in place.
func (l *Library) Reload(key string) (*Entry, error) {
	key = SheetKey(key)
	e, err := l.build(key)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.entries[key]; ok {
		e.Version = prev.Version + 1
	}
	l.entries[key] = e
	return e, nil
}

// Lookup returns a loaded entry without touching the files. key is normalized
// like in Load.
func (l *Library) Lookup(key string) (*Entry, bool) {
	key = SheetKey(key)
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[key]
	return e, ok
}

// Keys returns the loaded keys in sorted order.
func (l *Library) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// KeysForPath returns the loaded sheets that depend on the file at path:
// their JSON, sidecar, image or script.
func (l *Library) KeysForPath(path string) []string {
	base := filepath.Base(path)
	l.mu.RLock()
	defer l.mu.RUnlock()

	var keys []string
	for key, e := range l.entries {
		deps := []string{key + ".json", key + ".yaml", key + ".yml", e.Spec.Script}
		if e.Sheet != nil {
			deps = append(deps, e.Sheet.ImagePath())
		}
		for _, dep := range deps {
			if dep != "" && filepath.Base(dep) == base {
				keys = append(keys, key)
				break
			}
		}
	}
	slices.Sort(keys)
	return keys
}

func (l *Library) build(key string) (*Entry, error) {
	if key == "" {
		return nil, fmt.Errorf("assets: empty sheet key")
	}
	data, err := l.files(key + ".json")
	if err != nil {
		return nil, fmt.Errorf("assets: sheet %s: %w", key, err)
	}

	var spec config.SheetSpec
	raw, err := l.files(key + ".yaml")
	switch {
	case err == nil:
		if spec, err = config.ParseSheet(raw); err != nil {
			return nil, fmt.Errorf("assets: sheet %s: %w", key, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("assets: sheet %s: %w", key, err)
	}

	sheet, err := sprite.Load(data, spec.Options()...)
	if err != nil {
		return nil, fmt.Errorf("assets: sheet %s: %w", key, err)
	}

	e := &Entry{Key: key, Sheet: sheet, Spec: spec}
	if l.images != nil && sheet.ImagePath() != "" {
		img, err := l.images(sheet.ImagePath())
		if err != nil {
			log.Printf("assets: sheet %s: image %s: %v", key, sheet.ImagePath(), err)
		} else {
			e.Image = img
		}
	}
	return e, nil
}

// SheetKey turns a sheet file name or path into its library key.
func SheetKey(path string) string {
	base := filepath.Base(filepath.ToSlash(strings.TrimSpace(path)))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
