package converter

import (
	"regexp"
)

var (
	// 不匹配以 "[" 开头（[*] 列表标记）或紧贴空白的内容
	mdBoldRe   = regexp.MustCompile(`\*\*([^\s*\[](?:[^*\n]*?[^\s*])?)\*\*`)
	mdItalicRe = regexp.MustCompile(`(?m)(^|[^*\w])\*([^\s*\[](?:[^*\n]*?[^\s*])?)\*([^*\w]|$)`)
	mdStrikeRe = regexp.MustCompile(`~~([^\s~](?:[^~\n]*?[^\s~])?)~~`)
)

var inlineTags = []struct {
	name string
	tag  string
}{
	{"b", "strong"},
	{"i", "em"},
	{"u", "u"},
	{"s", "s"},
	{"strike", "s"},
}

// Inline 处理粗体、斜体、下划线与删除线。必须在列表之后运行，
// 否则 "* item" 的星号会被当作斜体。
func Inline(s *State) {
	text := s.Text
	strongOpen := "<strong>"
	if s.BoldStyle != "" {
		strongOpen = `<strong style="` + s.BoldStyle + `">`
	}

	for _, t := range inlineTags {
		open, closeTag := "<"+t.tag+">", "</"+t.tag+">"
		if t.tag == "strong" {
			open = strongOpen
		}
		text = replacePairs(text, t.name, func(arg, inner string) (string, bool) {
			if arg != "" {
				return "", false
			}
			return open + inner + closeTag, true
		})
	}

	text = mdBoldRe.ReplaceAllString(text, strongOpen+"$1</strong>")
	// 相邻的斜体共享分隔字符，需要两遍
	for i := 0; i < 2; i++ {
		text = mdItalicRe.ReplaceAllString(text, "$1<em>$2</em>$3")
	}
	text = mdStrikeRe.ReplaceAllString(text, "<s>$1</s>")
	s.Text = text
}
