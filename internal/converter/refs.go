package converter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/riverfjs/forumark/internal/buffer"
	"github.com/riverfjs/forumark/internal/style"
)

var (
	mdHeaderRe = regexp.MustCompile(`(?m)^[ \t]*(#{1,4})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)

	mdImageRe  = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^)\s]+)\)`)
	bbImageRe  = regexp.MustCompile(`(?is)\[img\]\s*([^\[\s]+?)\s*\[/img\]`)
	mdLinkRe   = regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)`)
	bbURLRe    = regexp.MustCompile(`(?is)\[url\]\s*([^\[\s]+?)\s*\[/url\]`)
	bbURLArgRe = regexp.MustCompile(`(?is)\[url=([^\]\s]+)\](.*?)\[/url\]`)

	anchorRe = regexp.MustCompile(`(?i)\[anchor=([\w-]+)\]`)
	gotoRe   = regexp.MustCompile(`(?is)\[goto=([\w-]+)\](.*?)\[/goto\]`)
	flagRe   = regexp.MustCompile(`(?is)\[flag\](.*?)\[/flag\]`)

	mentionRe  = regexp.MustCompile(`(^|[\s(>])@([A-Za-z0-9_](?:[A-Za-z0-9_.\-]{0,30}[A-Za-z0-9_])?)`)
	autolinkRe = regexp.MustCompile(`(^|[\s(])(https?://[^\s<>"]+)`)
	linkSpanRe = regexp.MustCompile(`(?is)<a[\s>].*?</a>`)
)

// References 处理标题、图片、链接、锚点、国旗、对齐、颜色、
// 剧透、@提及、自动链接与表情
func References(s *State) {
	text := s.Text
	text = headers(text)
	text = images(text, s.Pending)
	text = links(text)
	text = anchors(text)
	text = flags(text, s.Config.FlagBaseURL)
	text = alignment(text, s.Pending)
	text = spans(text, s.Logf)
	text = spoilers(text, s.Pending)
	text = mentions(text)
	text = autolinks(text)
	text = s.emojis(text)
	s.Text = text
}

func headers(text string) string {
	text = replaceSubmatch(mdHeaderRe, text, func(m []string) string {
		level := len(m[1]) + 1
		return asBlock(fmt.Sprintf("<h%d>%s</h%d>", level, m[2], level))
	})
	for level := 2; level <= 5; level++ {
		tag := "h" + strconv.Itoa(level)
		text = replacePairs(text, tag, func(arg, inner string) (string, bool) {
			if arg != "" {
				return "", false
			}
			return asBlock("<" + tag + ">" + strings.TrimSpace(inner) + "</" + tag + ">"), true
		})
	}
	return text
}

// safeURL reports whether an escaped URL may be used as a link or
// image target, returning the attribute-ready form.
func safeURL(escaped string) (string, bool) {
	raw := strings.TrimSpace(html.UnescapeString(escaped))
	if raw == "" {
		return "", false
	}
	lower := strings.ToLower(raw)
	colon := strings.IndexByte(lower, ':')
	slash := strings.IndexAny(lower, "/?#")
	if colon >= 0 && (slash < 0 || colon < slash) {
		if !strings.HasPrefix(lower, "http:") && !strings.HasPrefix(lower, "https:") && !strings.HasPrefix(lower, "mailto:") {
			return "", false
		}
	}
	return attrURL(raw), true
}

// unquote strips one pair of surrounding quotes from an escaped tag
// argument.
func unquote(arg string) string {
	arg = strings.TrimSpace(arg)
	for _, q := range []string{"&quot;", "&#39;", "'"} {
		if len(arg) >= 2*len(q) && strings.HasPrefix(arg, q) && strings.HasSuffix(arg, q) {
			return arg[len(q) : len(arg)-len(q)]
		}
	}
	return arg
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

func anchorHTML(href, text string) string {
	if isExternal(href) {
		return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + text + `</a>`
	}
	return `<a href="` + href + `">` + text + `</a>`
}

// imageAlt reduces alt text to plain escaped text: markup from the
// inline stage and placeholders cannot live inside an attribute.
func imageAlt(alt string) string {
	alt = htmlTagRe.ReplaceAllString(alt, "")
	alt = buffer.TokenPattern.ReplaceAllString(alt, "")
	return strings.TrimSpace(alt)
}

// images 生成 <img> 后立即以占位符保护，后续阶段不会改写其属性
func images(text string, pending *buffer.Pending) string {
	image := func(src, alt string) string {
		return pending.Add(buffer.KindImage, `<img class="post-image" src="`+src+`" alt="`+imageAlt(alt)+`" loading="lazy">`)
	}
	text = replaceSubmatch(mdImageRe, text, func(m []string) string {
		src, ok := safeURL(m[2])
		if !ok {
			return m[0]
		}
		return image(src, m[1])
	})
	return replaceSubmatch(bbImageRe, text, func(m []string) string {
		src, ok := safeURL(m[1])
		if !ok {
			return m[0]
		}
		return image(src, "")
	})
}

func links(text string) string {
	text = replaceSubmatchOutside(bbURLArgRe, text, 0, []spanIndex{tagSpans(text)}, func(m []string) string {
		target := unquote(m[1])
		href, ok := safeURL(target)
		if !ok {
			return m[0]
		}
		label := strings.TrimSpace(m[2])
		if label == "" {
			label = target
		}
		return anchorHTML(href, label)
	})
	text = replaceSubmatchOutside(bbURLRe, text, 0, []spanIndex{tagSpans(text)}, func(m []string) string {
		href, ok := safeURL(m[1])
		if !ok {
			return m[0]
		}
		return anchorHTML(href, m[1])
	})
	return replaceSubmatchOutside(mdLinkRe, text, 0, []spanIndex{tagSpans(text)}, func(m []string) string {
		href, ok := safeURL(m[2])
		if !ok {
			return m[0]
		}
		return anchorHTML(href, m[1])
	})
}

func anchors(text string) string {
	text = anchorRe.ReplaceAllString(text, asBlock(anchorTargetPrefix+` id="anchor-$1"></a>`))
	return gotoRe.ReplaceAllString(text, `<a href="#anchor-$1">$2</a>`)
}

// flagHTML 由两个 ASCII 字母计算区域指示符码点
func flagHTML(code, baseURL string) (string, bool) {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return "", false
	}
	upper := strings.ToUpper(code)
	runes := make([]rune, 2)
	for i := 0; i < 2; i++ {
		c := upper[i]
		if c < 'A' || c > 'Z' {
			return "", false
		}
		runes[i] = 0x1F1E6 + rune(c-'A')
	}
	src := fmt.Sprintf("%s%x-%x.svg", baseURL, runes[0], runes[1])
	return `<img class="emoji flag" src="` + escape(src) + `" alt="` + string(runes) + `" title="` + upper + `" loading="lazy">`, true
}

func flags(text, baseURL string) string {
	return replaceSubmatch(flagRe, text, func(m []string) string {
		out, ok := flagHTML(m[1], baseURL)
		if !ok {
			return m[0]
		}
		return out
	})
}

func alignment(text string, pending *buffer.Pending) string {
	for _, align := range []string{"center", "right"} {
		text = replacePairs(text, align, func(arg, inner string) (string, bool) {
			if arg != "" {
				return "", false
			}
			return asBlock(`<div style="text-align:` + align + `">` + blockInner(inner, pending) + `</div>`), true
		})
	}
	return text
}

// spans 处理 [color=…] 与 [size=…]；无效的样式值保持原样
func spans(text string, logf func(string, ...any)) string {
	validators := []struct {
		name     string
		validate func(string) (string, bool)
	}{
		{"color", style.Color},
		{"size", style.FontSize},
	}
	for _, v := range validators {
		text = replacePairs(text, v.name, func(arg, inner string) (string, bool) {
			decl, ok := v.validate(html.UnescapeString(unquote(arg)))
			if !ok {
				logf("ignoring invalid %s value %q", v.name, arg)
				return "", false
			}
			return `<span style="` + escape(decl) + `">` + inner + `</span>`, true
		})
	}
	return text
}

func spoilers(text string, pending *buffer.Pending) string {
	return replacePairs(text, "spoiler", func(arg, inner string) (string, bool) {
		title := strings.TrimSpace(unquote(arg))
		if title == "" {
			title = "Spoiler"
		}
		return asBlock(`<details class="spoiler"><summary>` + title + `</summary>` + blockInner(inner, pending) + `</details>`), true
	})
}

func mentions(text string) string {
	return replaceSubmatchOutside(mentionRe, text, 2, []spanIndex{tagSpans(text)}, func(m []string) string {
		return m[1] + `<span class="mention">@` + m[2] + `</span>`
	})
}

// autolinks 将裸 URL 转为链接；标签内部与已有 <a> 的内容不处理，避免嵌套链接
func autolinks(text string) string {
	return replaceSubmatchOutside(autolinkRe, text, 2, []spanIndex{tagSpans(text), linkSpanRe.FindAllStringIndex(text, -1)}, func(m []string) string {
		link, rest := splitTrailing(m[2])
		return m[1] + anchorHTML(attrURL(html.UnescapeString(link)), link) + rest
	})
}

// splitTrailing cuts escaped entities and trailing punctuation off a
// bare URL.
func splitTrailing(link string) (string, string) {
	for _, entity := range []string{"&lt;", "&gt;", "&quot;"} {
		if i := strings.Index(link, entity); i >= 0 {
			head, tail := splitTrailing(link[:i])
			return head, tail + link[i:]
		}
	}
	end := len(link)
	for end > 0 && strings.IndexByte(".,;:!?)'", link[end-1]) >= 0 {
		end--
	}
	return link[:end], link[end:]
}
