// Package emoji holds the process-wide emoji map and its loaders.
package emoji

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riverfjs/forumark/internal/types"
)

// Class names applied to rendered emoji images.
const (
	NativeClass  = "emoji emoji-native"
	GenericClass = "emoji emoji-custom"
)

// Cache lazily loads the emoji map once and serves it afterwards.
// Concurrent callers during a load wait for the same load.
type Cache struct {
	loader types.EmojiLoader

	mu      sync.Mutex
	emojis  map[string]types.Emoji
	loading chan struct{}
	lastErr error
}

// NewCache creates a cache backed by loader. A nil loader yields an
// empty map.
func NewCache(loader types.EmojiLoader) *Cache {
	return &Cache{loader: loader}
}

// Emojis returns the emoji map, loading it on first use.
// A failed load is not cached; the next call tries again.
func (c *Cache) Emojis(ctx context.Context) (map[string]types.Emoji, error) {
	for {
		c.mu.Lock()
		if c.emojis != nil {
			emojis := c.emojis
			c.mu.Unlock()
			return emojis, nil
		}
		if c.loading != nil {
			wait := c.loading
			c.mu.Unlock()
			select {
			case <-wait:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			c.mu.Lock()
			if c.emojis == nil && c.loading == nil && c.lastErr != nil {
				err := c.lastErr
				c.mu.Unlock()
				return nil, err
			}
			c.mu.Unlock()
			continue
		}
		done := make(chan struct{})
		c.loading = done
		c.mu.Unlock()

		emojis, err := c.load(ctx)

		c.mu.Lock()
		c.loading = nil
		c.lastErr = err
		if err == nil {
			c.emojis = emojis
		}
		c.mu.Unlock()
		close(done)
		if err != nil {
			return nil, err
		}
		return emojis, nil
	}
}

// SetLoader replaces the loader and drops any loaded map.
func (c *Cache) SetLoader(loader types.EmojiLoader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loader = loader
	c.emojis = nil
	c.lastErr = nil
}

// Reset drops the loaded map so the next call loads again.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emojis = nil
	c.lastErr = nil
}

func (c *Cache) load(ctx context.Context) (map[string]types.Emoji, error) {
	c.mu.Lock()
	loader := c.loader
	c.mu.Unlock()
	if loader == nil {
		return map[string]types.Emoji{}, nil
	}
	categories, err := loader.LoadEmojis(ctx)
	if err != nil {
		return nil, fmt.Errorf("load emojis: %w", err)
	}
	return BuildMap(categories), nil
}

// BuildMap flattens categories into a code → Emoji map. The first
// category is the native set; earlier entries win on duplicate codes.
func BuildMap(categories []types.EmojiCategory) map[string]types.Emoji {
	emojis := make(map[string]types.Emoji)
	for i, category := range categories {
		class := GenericClass
		if i == 0 {
			class = NativeClass
		}
		for _, item := range category.Items {
			code := strings.Trim(strings.TrimSpace(item.Code), ":")
			if code == "" || item.URL == "" {
				continue
			}
			if _, exists := emojis[code]; exists {
				continue
			}
			emojis[code] = types.Emoji{URL: item.URL, Class: class}
		}
	}
	return emojis
}
