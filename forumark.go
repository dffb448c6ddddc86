// Package forumark 将论坛标记（BBCode 方言 + 宽松的 Markdown 子集）渲染为
// 用于实时预览的、经过清理的 HTML
//
// 渲染是一串有严格顺序的字符串改写阶段：
//   - protect: 代码块、[media] 与行内代码替换为占位符
//   - escape: 其余文本做 HTML 转义
//   - structure: 分隔线、引用、嵌套列表、表格
//   - inline: 粗体、斜体、下划线、删除线
//   - references: 标题、链接、图片、国旗、表情等
//   - quotes: [quote]
//   - paragraphs: 按空行分段
//   - restore: 等待所有异步结果（代码高亮、表情）并回填占位符
//
// 示例：
//
//	html := forumark.Render(ctx, "[b]hello[/b] :smile:")
//
//	// 自定义样式与表情来源
//	forumark.SetDefaultEmojiLoader(&forumark.EmojiHTTPLoader{URL: emojiURL})
//	html = forumark.Render(ctx, markup,
//	    forumark.WithBoldColor("#c00"),
//	    forumark.WithFontSize("14px"),
//	)
package forumark

import (
	"context"
)

// Render 将论坛标记渲染为 HTML
//
// Render 对任何输入都返回字符串，从不 panic。空白输入返回空字符串。
// 协作者（高亮器、表情加载器）的失败只会让对应区域回退为转义文本。
//
// 参数：
//   - ctx: 传递给协作者的上下文
//   - markup: 原始标记文本
//   - opts: 渲染选项
func Render(ctx context.Context, markup string, opts ...Option) string {
	return runPipeline(ctx, markup, applyOptions(opts...))
}

// RenderAsync is the future form of Render: the channel yields exactly
// one string and is then closed.
func RenderAsync(ctx context.Context, markup string, opts ...Option) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		ch <- Render(ctx, markup, opts...)
	}()
	return ch
}
