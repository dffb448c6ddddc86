package converter

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/forumark/internal/buffer"
	"github.com/riverfjs/forumark/internal/types"
)

// State 是一次渲染的工作状态，各阶段依次改写 Text
type State struct {
	Ctx     context.Context
	Text    string
	Pending *buffer.Pending
	Config  *types.RenderConfig

	// BoldStyle is a validated "color:…" declaration or empty.
	BoldStyle string

	Logf func(format string, args ...any)

	emojiErrOnce sync.Once
}

// NewState prepares the state for one render of text.
func NewState(ctx context.Context, text string, config *types.RenderConfig) *State {
	if ctx == nil {
		ctx = context.Background()
	}
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	return &State{
		Ctx:     ctx,
		Text:    text,
		Pending: buffer.New(text),
		Config:  config,
		Logf:    func(string, ...any) {},
	}
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

// asBlock isolates s as its own paragraph block.
func asBlock(s string) string {
	return "\n\n" + s + "\n\n"
}

// replacePairs rewrites [open]…[close] pairs innermost first so nested
// tags of the same name resolve correctly. Matching is case-insensitive.
// fn receives the opening tag argument (after '=') and the inner text;
// returning ok=false leaves the pair untouched.
func replacePairs(s, name string, fn func(arg, inner string) (string, bool)) string {
	lower := asciiLower(s)
	openPrefix := "[" + name
	closeTag := "[/" + name + "]"
	searchEnd := len(lower)
	for {
		start := lastOpenTag(lower[:searchEnd], openPrefix)
		if start < 0 {
			return s
		}
		headEnd := strings.IndexByte(lower[start:], ']')
		if headEnd < 0 {
			searchEnd = start
			continue
		}
		headEnd += start
		end := strings.Index(lower[headEnd+1:], closeTag)
		if end < 0 {
			searchEnd = start
			continue
		}
		end += headEnd + 1
		arg := ""
		if head := s[start+len(openPrefix) : headEnd]; strings.HasPrefix(head, "=") {
			arg = head[1:]
		}
		out, ok := fn(arg, s[headEnd+1:end])
		if !ok {
			searchEnd = start
			continue
		}
		s = s[:start] + out + s[end+len(closeTag):]
		lower = lower[:start] + asciiLower(out) + lower[end+len(closeTag):]
		searchEnd = start
	}
}

// asciiLower lowercases A-Z only, keeping byte offsets aligned with s.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// lastOpenTag finds the last "[name]" or "[name=" in s.
func lastOpenTag(s, openPrefix string) int {
	for end := len(s); end > 0; {
		i := strings.LastIndex(s[:end], openPrefix)
		if i < 0 {
			return -1
		}
		if next := i + len(openPrefix); next < len(s) && (s[next] == ']' || s[next] == '=') {
			return i
		}
		end = i
	}
	return -1
}

// spanIndex holds sorted, non-overlapping byte ranges.
type spanIndex [][]int

func (s spanIndex) covers(pos int) bool {
	for _, span := range s {
		if pos < span[0] {
			return false
		}
		if pos < span[1] {
			return true
		}
	}
	return false
}

// tagSpans returns the byte ranges of the HTML tags in s.
func tagSpans(s string) spanIndex {
	return htmlTagRe.FindAllStringIndex(s, -1)
}

// replaceSubmatch is ReplaceAllStringFunc with access to submatches.
func replaceSubmatch(re *regexp.Regexp, s string, fn func(m []string) string) string {
	return replaceMatches(re, s, nil, fn)
}

// replaceSubmatchOutside replaces only matches whose group g and last
// byte lie outside every span of each index in skip, so user text never
// rewrites markup that an earlier pass generated.
func replaceSubmatchOutside(re *regexp.Regexp, s string, g int, skip []spanIndex, fn func(m []string) string) string {
	return replaceMatches(re, s, func(loc []int) bool {
		for _, idx := range skip {
			if idx.covers(loc[2*g]) || idx.covers(loc[1]-1) {
				return false
			}
		}
		return true
	}, fn)
}

func replaceMatches(re *regexp.Regexp, s string, keep func(loc []int) bool, fn func(m []string) string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		if keep != nil && !keep(loc) {
			continue
		}
		sb.WriteString(s[last:loc[0]])
		m := make([]string, len(loc)/2)
		for i := range m {
			if loc[2*i] >= 0 {
				m[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		sb.WriteString(fn(m))
		last = loc[1]
	}
	if last == 0 {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}
