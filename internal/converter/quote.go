package converter

import "strings"

// Quotes 处理 [quote] 与 [quote=author]，嵌套时由内向外
func Quotes(s *State) {
	s.Text = replacePairs(s.Text, "quote", func(arg, inner string) (string, bool) {
		var sb strings.Builder
		sb.WriteString(`<blockquote class="bb-quote">`)
		if author := strings.TrimSpace(unquote(arg)); author != "" {
			sb.WriteString(`<div class="quote-author">` + author + ` wrote:</div>`)
		}
		sb.WriteString(blockInner(inner, s.Pending))
		sb.WriteString(`</blockquote>`)
		return asBlock(sb.String()), true
	})
}
