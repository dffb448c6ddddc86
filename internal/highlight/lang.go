package highlight

import (
	"strings"

	"golang.org/x/text/cases"
)

// Plain is the language that bypasses highlighting.
const Plain = "plain"

// languageAliases maps fence tags and file extensions to canonical names.
var languageAliases = map[string]string{
	"py":         "python",
	"python3":    "python",
	"js":         "javascript",
	"mjs":        "javascript",
	"node":       "javascript",
	"ts":         "typescript",
	"c++":        "cpp",
	"cc":         "cpp",
	"h":          "c",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"console":    "bash",
	"golang":     "go",
	"rb":         "ruby",
	"rs":         "rust",
	"pl":         "perl",
	"kt":         "kotlin",
	"yml":        "yaml",
	"htm":        "html",
	"xhtml":      "html",
	"md":         "markdown",
	"dockerfile": "docker",
	"text":       Plain,
	"txt":        Plain,
	"plaintext":  Plain,
	"none":       Plain,
}

// Normalize folds a language tag and resolves aliases.
// An empty tag stays empty.
func Normalize(language string) string {
	// Caser 不能在 goroutine 间共享
	lang := strings.TrimSpace(cases.Fold().String(language))
	if lang == "" {
		return ""
	}
	if canonical, ok := languageAliases[lang]; ok {
		return canonical
	}
	return lang
}
