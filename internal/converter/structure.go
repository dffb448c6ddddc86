package converter

import (
	"regexp"
	"strings"
)

var (
	hrLineRe = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
	hrTagRe  = regexp.MustCompile(`(?i)\[hr\]`)

	// 转义后 ">" 已变为 "&gt;"
	mdQuoteLineRe = regexp.MustCompile(`^[ \t]*&gt; ?(.*)$`)

	bbListRe = regexp.MustCompile(`(?is)\[list(?:=(1|a|i))?\](.*?)\[/list\]`)
)

// Structure 处理块结构：分隔线、Markdown 引用、BBCode 列表、
// Markdown 嵌套列表与表格
func Structure(s *State) {
	text := s.Text
	text = hrLineRe.ReplaceAllString(text, asBlock("<hr>"))
	text = hrTagRe.ReplaceAllString(text, asBlock("<hr>"))
	text = markdownQuotes(text)
	text = bbLists(text)
	text = buildLists(text)
	text = buildTables(text)
	s.Text = text
}

// markdownQuotes groups consecutive "> " lines into one blockquote.
func markdownQuotes(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var quoted []string
	flush := func() {
		if len(quoted) == 0 {
			return
		}
		out = append(out, "", `<blockquote class="md-quote">`+strings.Join(quoted, "<br>")+`</blockquote>`, "")
		quoted = quoted[:0]
	}
	for _, line := range lines {
		if m := mdQuoteLineRe.FindStringSubmatch(line); m != nil {
			quoted = append(quoted, m[1])
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()
	return strings.Join(out, "\n")
}

// bbLists 处理 [list] 块：按 [*] 拆分，不支持嵌套。
// 块内空行保留为 <br><br>。
func bbLists(text string) string {
	return replaceSubmatch(bbListRe, text, func(m []string) string {
		open, closeTag := "<ul class=\"bb-list\">", "</ul>"
		switch m[1] {
		case "1":
			open, closeTag = "<ol class=\"bb-list\">", "</ol>"
		case "a", "A":
			open, closeTag = "<ol class=\"bb-list\" type=\"a\">", "</ol>"
		case "i", "I":
			open, closeTag = "<ol class=\"bb-list\" type=\"i\">", "</ol>"
		}
		var sb strings.Builder
		sb.WriteString(open)
		for _, segment := range strings.Split(m[2], "[*]") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			sb.WriteString("<li>")
			sb.WriteString(strings.ReplaceAll(segment, "\n", "<br>"))
			sb.WriteString("</li>")
		}
		sb.WriteString(closeTag)
		return asBlock(sb.String())
	})
}
