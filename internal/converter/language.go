package converter

import (
	"regexp"
	"strings"

	"github.com/riverfjs/forumark/internal/highlight"
)

var (
	treeGlyphs    = "├└│┬┼┌┐┘┤╰╭─"
	asciiTreeRe   = regexp.MustCompile("(?m)^\\s*(?:[|`+\\\\]--|\\|\\s+[|`+\\\\]--)")
	pathLineRe    = regexp.MustCompile(`^[\w.\-~]+(?:/[\w.\-]*)*/?$`)
	pyDefRe       = regexp.MustCompile(`(?m)^\s*def \w+\(.*\)\s*:`)
	pyImportRe    = regexp.MustCompile(`(?m)^\s*from [\w.]+ import \w`)
	jsKeywordRe   = regexp.MustCompile(`\b(?:const|let)\s+\w+\s*=|=>|\bfunction\s*\w*\s*\(`)
	htmlOpenTagRe = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)(?:\s[^>]*)?>`)
	jsonKeyRe     = regexp.MustCompile(`"[^"\n]*"\s*:`)
	sqlRe         = regexp.MustCompile(`(?is)\bselect\b.+\bfrom\b|\binsert\s+into\b|\bcreate\s+table\b|\bupdate\s+\w+\s+set\b|\bdelete\s+from\b`)
	cssRuleRe     = regexp.MustCompile(`(?s)[\w.#:\-\s,>*\[\]="]+\{\s*[\w-]+\s*:[^;{}]+;[^{}]*\}`)
	shebangRe     = regexp.MustCompile(`^#!\s*\S+`)
)

// resolveLanguage picks the highlight language of a code region.
func resolveLanguage(explicit, code string) string {
	if lang := highlight.Normalize(explicit); lang != "" {
		return lang
	}
	if looksLikeTree(code) {
		return highlight.Plain
	}
	return detectLanguage(code)
}

// looksLikeTree 识别目录树（框线字符、ASCII 树标记或纯路径行）
func looksLikeTree(code string) bool {
	if strings.ContainsAny(code, treeGlyphs) {
		return true
	}
	if asciiTreeRe.MatchString(code) {
		return true
	}
	lines := 0
	slashes := false
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !pathLineRe.MatchString(line) {
			return false
		}
		if strings.Contains(line, "/") {
			slashes = true
		}
		lines++
	}
	return lines >= 2 && slashes
}

// detectLanguage applies the keyword heuristics in priority order.
func detectLanguage(code string) string {
	switch {
	case strings.Contains(code, "fn main()"):
		return "rust"
	case strings.Contains(code, "package main"):
		return "go"
	case strings.Contains(code, "def __init__"), pyDefRe.MatchString(code), pyImportRe.MatchString(code):
		return "python"
	case jsKeywordRe.MatchString(code):
		return "javascript"
	case hasTagPair(code):
		return "html"
	case looksLikeJSON(code):
		return "json"
	case sqlRe.MatchString(code):
		return "sql"
	case cssRuleRe.MatchString(code):
		return "css"
	case shebangRe.MatchString(code):
		return "bash"
	}
	return highlight.Plain
}

func hasTagPair(code string) bool {
	for _, m := range htmlOpenTagRe.FindAllStringSubmatch(code, -1) {
		if strings.Contains(strings.ToLower(code), "</"+strings.ToLower(m[1])+">") {
			return true
		}
	}
	return false
}

func looksLikeJSON(code string) bool {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) < 2 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	framed := (first == '{' && last == '}') || (first == '[' && last == ']')
	return framed && (jsonKeyRe.MatchString(trimmed) || first == '[')
}
