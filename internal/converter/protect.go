package converter

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/riverfjs/forumark/internal/buffer"
	"github.com/riverfjs/forumark/internal/highlight"
)

var (
	// [code]…[/code] 与 [code=lang]…[/code]
	bbCodeRe = regexp.MustCompile(`(?is)\[code(?:=([^\]\s]*))?\](.*?)\[/code\]`)

	// ```lang\n…```
	fencedRe = regexp.MustCompile("(?s)```[ \\t]*([\\w#+.\\-]*)[^\\n`]*\\n(.*?)```")

	mediaRe = regexp.MustCompile(`(?is)\[media\](.*?)\[/media\]`)

	inlineBBCodeRe = regexp.MustCompile(`(?is)\[c\](.*?)\[/c\]`)
	inlineTickRe   = regexp.MustCompile("`([^`\\n]+)`")
)

// Protect 抽出代码块、媒体块与行内代码，替换为占位符
//
// 顺序：[code] → 围栏代码 → [media] → 行内代码。块级占位符前后
// 各加一个空行，使其自成段落；行内代码不加。
func Protect(s *State) {
	text := s.Text
	text = replaceSubmatch(bbCodeRe, text, func(m []string) string {
		return asBlock(s.protectCode(m[1], m[2]))
	})
	text = replaceSubmatch(fencedRe, text, func(m []string) string {
		return asBlock(s.protectCode(m[1], m[2]))
	})
	text = replaceSubmatch(mediaRe, text, func(m []string) string {
		url := strings.TrimSpace(m[1])
		if url == "" {
			return m[0]
		}
		return asBlock(s.Pending.Add(buffer.KindMedia, MediaCard(url)))
	})
	inline := func(m []string) string {
		code := escape(html.UnescapeString(m[1]))
		return s.Pending.Add(buffer.KindInlineCode, `<code class="inline-code">`+code+`</code>`)
	}
	text = replaceSubmatch(inlineBBCodeRe, text, inline)
	text = replaceSubmatch(inlineTickRe, text, inline)
	s.Text = text
}

// protectCode registers one code region and returns its placeholder.
// Highlighting runs in the background; any failure falls back to the
// escaped source.
func (s *State) protectCode(lang, body string) string {
	code := strings.TrimSpace(html.UnescapeString(body))
	if code == "" {
		return s.Pending.Add(buffer.KindCode, "")
	}
	language := resolveLanguage(lang, code)
	escaped := escape(code)
	fallback := `<pre class="code-block"><code>` + escaped + `</code></pre>`

	highlighter := s.Config.Highlighter
	if language == highlight.Plain || highlighter == nil {
		return s.Pending.Add(buffer.KindCode, codeBlockHTML(language, escaped))
	}

	ctx, logf := s.Ctx, s.Logf
	future := buffer.Go(func() string {
		out, err := highlighter.Highlight(ctx, code, language)
		if err != nil {
			logf("highlight %s failed: %v", language, err)
			return fallback
		}
		return codeBlockHTML(language, out)
	}, fallback)
	return s.Pending.AddFuture(buffer.KindCode, future)
}

func codeBlockHTML(language, inner string) string {
	lang := escape(language)
	return `<pre class="code-block" data-lang="` + lang + `"><code class="language-` + lang + `">` + inner + `</code></pre>`
}
