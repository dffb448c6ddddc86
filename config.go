package forumark

import (
	"sync"

	"github.com/riverfjs/forumark/internal/emoji"
	"github.com/riverfjs/forumark/internal/highlight"
	"github.com/riverfjs/forumark/internal/mermaid"
	"github.com/riverfjs/forumark/internal/types"
)

// 导出类型别名
type (
	RenderConfig    = types.RenderConfig
	Highlighter     = types.Highlighter
	HighlighterFunc = types.HighlighterFunc
	EmojiLoader     = types.EmojiLoader
	EmojiSource     = types.EmojiSource
	EmojiCategory   = types.EmojiCategory
	EmojiItem       = types.EmojiItem
	Emoji           = types.Emoji
	EmojiCache      = emoji.Cache

	// 表情加载器
	EmojiHTTPLoader   = emoji.HTTPLoader
	EmojiFileLoader   = emoji.FileLoader
	EmojiStaticLoader = emoji.StaticLoader
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once

	defaultEmojiCache     *EmojiCache
	defaultEmojiCacheOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton):
// chroma highlighting with mermaid diagrams, and the process-wide emoji
// cache.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
		defaultConfig.Highlighter = &mermaid.Highlighter{Next: highlight.New()}
		defaultConfig.Emojis = DefaultEmojiCache()
	})
	return defaultConfig
}

// DefaultEmojiCache returns the process-wide emoji cache. It has no
// loader until SetDefaultEmojiLoader is called.
func DefaultEmojiCache() *EmojiCache {
	defaultEmojiCacheOnce.Do(func() {
		defaultEmojiCache = emoji.NewCache(nil)
	})
	return defaultEmojiCache
}

// SetDefaultEmojiLoader installs the loader used by the process-wide
// emoji cache and drops anything it had loaded.
func SetDefaultEmojiLoader(loader EmojiLoader) {
	DefaultEmojiCache().SetLoader(loader)
}

// NewEmojiCache creates a private emoji cache, e.g. for tests.
func NewEmojiCache(loader EmojiLoader) *EmojiCache {
	return emoji.NewCache(loader)
}

// NewChromaHighlighter returns the default chroma based highlighter.
func NewChromaHighlighter() Highlighter {
	return highlight.New()
}
