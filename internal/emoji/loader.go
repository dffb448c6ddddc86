package emoji

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riverfjs/forumark/internal/types"
)

// StaticLoader serves a fixed list of categories.
type StaticLoader []types.EmojiCategory

// LoadEmojis returns the static categories.
func (s StaticLoader) LoadEmojis(context.Context) ([]types.EmojiCategory, error) {
	return s, nil
}

// HTTPLoader 通过 HTTP 获取 JSON 格式的表情列表
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

// LoadEmojis 下载并解析表情列表
func (h *HTTPLoader) LoadEmojis(ctx context.Context) ([]types.EmojiCategory, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emoji list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read emoji list: %w", err)
	}

	var categories []types.EmojiCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode emoji list: %w", err)
	}
	return categories, nil
}

// FileLoader reads the emoji list from a YAML or JSON file.
type FileLoader struct {
	Path string
}

// LoadEmojis reads and decodes the file.
func (f *FileLoader) LoadEmojis(context.Context) ([]types.EmojiCategory, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var categories []types.EmojiCategory
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return categories, nil
}
