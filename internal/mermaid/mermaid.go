// Package mermaid 将 mermaid 代码块渲染为 mermaid.ink 图片链接
package mermaid

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/forumark/internal/types"
)

// Language is the code block language rendered as a diagram.
const Language = "mermaid"

const (
	editorBase = "https://mermaid.live/edit/#"
	imageBase  = "https://mermaid.ink/img/"
)

// Config 为空时使用 default 主题
type Config struct {
	Theme string `json:"theme"`
}

// Diagram is one mermaid source and the theme it is drawn in.
type Diagram struct {
	Code  string
	Theme string
}

// NewDiagram binds code to the theme of cfg, which may be nil.
func NewDiagram(code string, cfg *Config) Diagram {
	d := Diagram{Code: code, Theme: "default"}
	if cfg != nil && cfg.Theme != "" {
		d.Theme = cfg.Theme
	}
	return d
}

// editorState 是 mermaid.live 与 mermaid.ink 共用的 pako 载荷
type editorState struct {
	Code    string `json:"code"`
	Mermaid Config `json:"mermaid"`
}

// Pako serializes the diagram as "pako:" followed by the URL-safe
// base64 of its zlib-compressed editor state.
func (d Diagram) Pako() (string, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	state := editorState{Code: d.Code, Mermaid: Config{Theme: d.Theme}}
	if err := json.NewEncoder(zw).Encode(state); err != nil {
		return "", fmt.Errorf("encode diagram: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress diagram: %w", err)
	}
	return "pako:" + base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// EditorURL links to the diagram in the live editor.
func (d Diagram) EditorURL() (string, error) {
	pako, err := d.Pako()
	if err != nil {
		return "", err
	}
	return editorBase + pako, nil
}

// ImageURL 返回 webp 图片地址，由浏览器直接加载
func (d Diagram) ImageURL() (string, error) {
	pako, err := d.Pako()
	if err != nil {
		return "", err
	}
	q := url.Values{"theme": {d.Theme}, "type": {"webp"}}
	return imageBase + pako + "?" + q.Encode(), nil
}

// Highlighter renders mermaid blocks as a diagram image linking to the
// live editor and passes every other language to Next.
type Highlighter struct {
	Next   types.Highlighter
	Config *Config
}

// Highlight implements types.Highlighter.
func (h *Highlighter) Highlight(ctx context.Context, code, language string) (string, error) {
	if language != Language {
		if h.Next == nil {
			return "", fmt.Errorf("no highlighter for language %q", language)
		}
		return h.Next.Highlight(ctx, code, language)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d := NewDiagram(code, h.Config)
	imgURL, err := d.ImageURL()
	if err != nil {
		return "", fmt.Errorf("mermaid image url: %w", err)
	}
	liveURL, err := d.EditorURL()
	if err != nil {
		return "", fmt.Errorf("mermaid live url: %w", err)
	}
	return `<a class="mermaid-diagram" href="` + escape(liveURL) + `" target="_blank" rel="noopener noreferrer">` +
		`<img src="` + escape(imgURL) + `" alt="mermaid diagram" loading="lazy"></a>`, nil
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
