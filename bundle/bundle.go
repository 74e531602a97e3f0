// Package bundle holds the files emitted by a build before they are
// published.
package bundle

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sunwei/templatehtml/minifiers"
	"github.com/sunwei/templatehtml/sitefs/glob"
	"github.com/sunwei/templatehtml/transform"
	"golang.org/x/sync/errgroup"
)

// AssetType is either TypeAsset or TypeChunk.
type AssetType string

const (
	TypeAsset AssetType = "asset"
	TypeChunk AssetType = "chunk"
)

// Asset is one emitted file.
type Asset struct {
	FileName string
	Type     AssetType

	// Source is a string or a []byte.
	Source any
}

// Bytes returns the source as bytes.
func (a *Asset) Bytes() []byte {
	switch s := a.Source.(type) {
	case string:
		return []byte(s)
	case []byte:
		return s
	}
	return nil
}

// Bundle is the set of emitted assets keyed by file name.
// It is safe for concurrent use.
type Bundle struct {
	mu     sync.RWMutex
	assets map[string]*Asset
}

// New creates a Bundle with the given assets.
func New(assets ...*Asset) *Bundle {
	b := &Bundle{assets: make(map[string]*Asset)}
	for _, a := range assets {
		b.Add(a)
	}
	return b
}

// Add adds a, replacing any asset with the same file name.
func (b *Bundle) Add(a *Asset) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assets[a.FileName] = a
}

// Get returns the asset named filename, or nil.
func (b *Bundle) Get(filename string) *Asset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.assets[filename]
}

// Len returns the number of assets.
func (b *Bundle) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.assets)
}

// Assets returns the assets sorted by file name.
func (b *Bundle) Assets() []*Asset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	assets := make([]*Asset, 0, len(b.assets))
	for _, a := range b.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].FileName < assets[j].FileName
	})
	return assets
}

var htmlFilter = glob.MustNewFilenameFilter([]string{"*.html", "**/*.html"}, nil)

// IsHTML reports whether filename is an HTML document.
func IsHTML(filename string) bool {
	return htmlFilter.Match(filename)
}

// MinifyAll minifies, in place, every HTML asset with a string source.
// Chunks are left alone. The first error is returned.
func MinifyAll(ctx context.Context, b *Bundle, client minifiers.Client) error {
	chain := transform.NewEmpty().Add(client.Transformer(minifiers.MediaTypeHTML))
	g, ctx := errgroup.WithContext(ctx)

	for _, a := range b.Assets() {
		a := a
		src, ok := a.Source.(string)
		if !ok || a.Type == TypeChunk || !IsHTML(a.FileName) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := chain.ApplyString(src)
			if err != nil {
				return fmt.Errorf("minify %q: %w", a.FileName, err)
			}
			a.Source = s
			return nil
		})
	}

	return g.Wait()
}
