package types

import "context"

// Highlighter 将代码渲染为高亮 HTML（不含 <pre> 外壳）
//
// 实现不应 panic；调用方把任何错误视为"回退到转义纯文本"。
type Highlighter interface {
	Highlight(ctx context.Context, code, language string) (string, error)
}

// HighlighterFunc adapts a plain function to Highlighter.
type HighlighterFunc func(ctx context.Context, code, language string) (string, error)

// Highlight calls f.
func (f HighlighterFunc) Highlight(ctx context.Context, code, language string) (string, error) {
	return f(ctx, code, language)
}

// EmojiItem 表示一个表情条目
type EmojiItem struct {
	Code string `json:"code" yaml:"code"`
	URL  string `json:"url" yaml:"url"`
}

// EmojiCategory 表示一组表情；第一组视为原生风格
type EmojiCategory struct {
	Category string      `json:"category" yaml:"category"`
	Items    []EmojiItem `json:"items" yaml:"items"`
}

// Emoji is a resolved emoji image.
type Emoji struct {
	URL   string
	Class string
}

// EmojiLoader 加载表情列表
type EmojiLoader interface {
	LoadEmojis(ctx context.Context) ([]EmojiCategory, error)
}

// EmojiSource 返回 code → Emoji 映射（可能触发懒加载）
type EmojiSource interface {
	Emojis(ctx context.Context) (map[string]Emoji, error)
}

// DefaultFlagBaseURL 国旗图片的基础 URL（twemoji 码点文件名）
const DefaultFlagBaseURL = "https://cdn.jsdelivr.net/gh/twitter/twemoji@14.0.2/assets/svg/"

// RenderConfig 渲染配置：外部协作者与静态资源地址
type RenderConfig struct {
	Highlighter Highlighter
	Emojis      EmojiSource
	FlagBaseURL string
}

// DefaultRenderConfig 返回不带协作者的默认配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		FlagBaseURL: DefaultFlagBaseURL,
	}
}
