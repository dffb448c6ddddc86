package converter

import (
	"regexp"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/riverfjs/forumark/internal/buffer"
)

var (
	blankLineRe  = regexp.MustCompile(`\n[ \t]*\n`)
	leadingTagRe = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9]*)[\s>/]`)
)

// blockAtoms are the tags that are never wrapped in <p>.
var blockAtoms = map[atom.Atom]bool{
	atom.Div:        true,
	atom.Table:      true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.Hr:         true,
	atom.Style:      true,
	atom.Script:     true,
	atom.Details:    true,
}

const anchorTargetPrefix = `<a class="anchor-target"`

// isBlockLevel 判断一个块是否以块级元素或块级占位符开头
func isBlockLevel(block string, pending *buffer.Pending) bool {
	if strings.HasPrefix(block, anchorTargetPrefix) {
		return true
	}
	if loc := buffer.TokenPattern.FindStringIndex(block); loc != nil && loc[0] == 0 {
		return pending.IsBlock(block[:loc[1]])
	}
	if m := leadingTagRe.FindStringSubmatch(block); m != nil {
		return blockAtoms[atom.Lookup([]byte(strings.ToLower(m[1])))]
	}
	return false
}

// assemble splits text on blank lines and wraps inline blocks in <p>.
func assemble(text string, pending *buffer.Pending) []string {
	var out []string
	for _, block := range blankLineRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if isBlockLevel(block, pending) {
			out = append(out, block)
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(block, "\n", "<br>")+"</p>")
	}
	return out
}

// blockInner assembles the body of a container element such as a
// quote or an alignment div.
func blockInner(text string, pending *buffer.Pending) string {
	return strings.Join(assemble(text, pending), "")
}

// Paragraphs 段落组装
func Paragraphs(s *State) {
	s.Text = strings.Join(assemble(s.Text, s.Pending), "\n")
}
