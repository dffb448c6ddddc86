package forumark

import (
	"context"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/forumark/internal/converter"
	"github.com/riverfjs/forumark/internal/style"
)

// stage 是一个命名的改写步骤
type stage struct {
	name string
	run  func(*converter.State)
}

// stages 的顺序不可调整：保护先于转义，转义先于结构，
// 结构（列表的 "*"）先于行内格式，恢复最后执行
var stages = []stage{
	{"protect", converter.Protect},
	{"escape", converter.Escape},
	{"structure", converter.Structure},
	{"inline", converter.Inline},
	{"references", converter.References},
	{"quotes", converter.Quotes},
	{"paragraphs", converter.Paragraphs},
}

const restoreStage = "restore"

// Stages returns the pipeline stage names in execution order.
func Stages() []string {
	names := make([]string, 0, len(stages)+1)
	for _, s := range stages {
		names = append(names, s.name)
	}
	return append(names, restoreStage)
}

// runPipeline 执行完整管道
//
// 步骤：
// 1. 规范化换行与 Unicode（NFC），空白输入直接返回 ""
// 2. 依次执行同步阶段；异步工作只收集不等待
// 3. restore：并发等待所有占位符结果并回填
// 4. 设置了字号时包裹一层容器
func runPipeline(ctx context.Context, markup string, options *RenderOptions) (html string) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Printf("render failed, falling back to escaped text: %v", r)
			html = fallbackHTML(markup)
		}
	}()

	text := converter.Normalize(markup)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	state := converter.NewState(ctx, text, options.Config)
	state.Logf = Logger.Printf
	if options.BoldColor != "" {
		if decl, ok := style.Color(options.BoldColor); ok {
			state.BoldStyle = decl
		} else {
			Logger.Printf("ignoring invalid bold color %q", options.BoldColor)
		}
	}

	for _, s := range stages {
		s.run(state)
	}
	html = state.Pending.Restore(state.Text)

	if options.FontSize != "" {
		if decl, ok := style.FontSize(options.FontSize); ok {
			html = `<div class="forumark" style="` + decl + `">` + html + `</div>`
		} else {
			Logger.Printf("ignoring invalid font size %q", options.FontSize)
		}
	}
	return html
}

// fallbackHTML renders text as a single escaped paragraph.
func fallbackHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	escaped := string(util.EscapeHTML([]byte(strings.TrimSpace(markup))))
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}
