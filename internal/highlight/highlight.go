// Package highlight is the default code highlighter, built on chroma.
package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Chroma highlights code with class-based spans; the page stylesheet
// supplies the colours.
type Chroma struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// New creates a chroma highlighter.
func New() *Chroma {
	return &Chroma{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Fallback,
	}
}

// Highlight renders code as highlighted HTML without a <pre> wrapper.
func (c *Chroma) Highlight(ctx context.Context, code, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("no lexer for language %q", language)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", language, err)
	}
	var sb strings.Builder
	if err := c.formatter.Format(&sb, c.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", language, err)
	}
	return sb.String(), nil
}
