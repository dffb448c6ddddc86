package converter

import (
	"regexp"
	"strings"

	"github.com/riverfjs/forumark/internal/buffer"
)

var (
	emojiTokenRe = regexp.MustCompile(`:([A-Za-z0-9_+\-]+):`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
)

// replaceOutsideTags applies fn to the text between HTML tags only.
func replaceOutsideTags(text string, fn func(string) string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range htmlTagRe.FindAllStringIndex(text, -1) {
		sb.WriteString(fn(text[last:loc[0]]))
		sb.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(fn(text[last:]))
	return sb.String()
}

// emojis 将 :code: 替换为异步占位符，在恢复阶段统一查表
func (s *State) emojis(text string) string {
	source := s.Config.Emojis
	if source == nil || !emojiTokenRe.MatchString(text) {
		return text
	}
	ctx := s.Ctx
	return replaceOutsideTags(text, func(segment string) string {
		return emojiTokenRe.ReplaceAllStringFunc(segment, func(token string) string {
			code := token[1 : len(token)-1]
			future := buffer.Go(func() string {
				emojis, err := source.Emojis(ctx)
				if err != nil {
					s.emojiErrOnce.Do(func() {
						s.Logf("emoji lookup failed: %v", err)
					})
					return token
				}
				e, ok := emojis[code]
				if !ok {
					return token
				}
				return `<img class="` + escape(e.Class) + `" src="` + escape(e.URL) + `" alt="` + token + `" title="` + token + `" loading="lazy">`
			}, token)
			return s.Pending.AddFuture(buffer.KindEmoji, future)
		})
	})
}
