// Package asset provides the read-only stores that back module resolution:
// a directory bundle over any billy.Filesystem, and a packed SQLite bundle.
// Both answer existence checks from a lazily-loaded, read-once file index so
// that resolution probing never touches the backing medium per candidate.
package asset

import (
	"fmt"
	"sync"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/oj"
)

const (
	// DefaultRootMarker prefixes every key in the bundle's file index.
	DefaultRootMarker = "Resources"
	// DefaultIndexPath is the virtual path of the bundled file index.
	DefaultIndexPath = "/index.json"
)

// Bundle serves module assets from a billy.Filesystem. When the bundle ships
// a file index (a JSON object keyed by root-marker-prefixed filenames), all
// existence checks are answered from that index; otherwise they fall back to
// a Stat call. The index is loaded at most once and never invalidated; a
// live-reload host replaces the Bundle instead.
type Bundle struct {
	fs         billy.Filesystem
	rootMarker string
	indexPath  string

	once  sync.Once
	index map[string]struct{} // nil when the bundle ships no index asset
}

// NewBundle creates a bundle over fs with the default root marker and index
// location.
func NewBundle(fs billy.Filesystem) *Bundle {
	return &Bundle{
		fs:         fs,
		rootMarker: DefaultRootMarker,
		indexPath:  DefaultIndexPath,
	}
}

// SetRootMarker overrides the prefix used to key the file index.
func (b *Bundle) SetRootMarker(marker string) { b.rootMarker = marker }

// SetIndexPath overrides the virtual path of the file index asset.
func (b *Bundle) SetIndexPath(path string) { b.indexPath = path }

// loadIndex reads and parses the file index once. A missing or malformed
// index leaves the bundle in Stat-fallback mode.
func (b *Bundle) loadIndex() {
	b.once.Do(func() {
		data, err := util.ReadFile(b.fs, b.indexPath)
		if err != nil {
			return
		}
		parsed, err := oj.Parse(data)
		if err != nil {
			return
		}
		obj, ok := parsed.(map[string]any)
		if !ok {
			return
		}
		b.index = make(map[string]struct{}, len(obj))
		for name := range obj {
			b.index[name] = struct{}{}
		}
	})
}

// Exists implements api.AssetStore.
func (b *Bundle) Exists(path string) bool {
	b.loadIndex()
	if b.index != nil {
		_, ok := b.index[b.rootMarker+path]
		return ok
	}
	_, err := b.fs.Stat(path)
	return err == nil
}

// ReadText implements api.AssetStore.
func (b *Bundle) ReadText(path string) (string, error) {
	data, err := util.ReadFile(b.fs, path)
	if err != nil {
		return "", fmt.Errorf("read asset %s: %w", path, err)
	}
	return string(data), nil
}
