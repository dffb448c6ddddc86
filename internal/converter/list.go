package converter

import (
	"regexp"
	"strconv"
	"strings"
)

type listKind int

const (
	unorderedList listKind = iota
	orderedList
	checklist
)

// listFrame is one open list level.
type listFrame struct {
	kind   listKind
	indent int
}

type listItem struct {
	kind    listKind
	indent  int
	start   int
	checked bool
	content string
}

var (
	taskItemRe      = regexp.MustCompile(`^([ \t]*)[-*][ \t]+\[([ xX])\](?:[ \t]+(.*))?$`)
	orderedItemRe   = regexp.MustCompile(`^([ \t]*)(\d+)\.[ \t]+(.*)$`)
	unorderedItemRe = regexp.MustCompile(`^([ \t]*)[-*][ \t]+(\S.*)$`)
	ruleLikeRe      = regexp.MustCompile(`^[-*_](?:[ \t]*[-*_]){2,}$`)
)

func parseListItem(line string) (listItem, bool) {
	if ruleLikeRe.MatchString(strings.TrimSpace(line)) {
		return listItem{}, false
	}
	if m := taskItemRe.FindStringSubmatch(line); m != nil {
		return listItem{
			kind:    checklist,
			indent:  len(m[1]),
			checked: m[2] != " ",
			content: m[3],
		}, true
	}
	if m := orderedItemRe.FindStringSubmatch(line); m != nil {
		start, err := strconv.Atoi(m[2])
		if err != nil {
			start = 1
		}
		return listItem{kind: orderedList, indent: len(m[1]), start: start, content: m[3]}, true
	}
	if m := unorderedItemRe.FindStringSubmatch(line); m != nil {
		return listItem{kind: unorderedList, indent: len(m[1]), content: m[2]}, true
	}
	return listItem{}, false
}

func (it listItem) openList() string {
	switch it.kind {
	case orderedList:
		if it.start != 1 {
			return `<ol start="` + strconv.Itoa(it.start) + `">`
		}
		return "<ol>"
	case checklist:
		return `<ul class="checklist">`
	}
	return "<ul>"
}

func (it listItem) openItem() string {
	if it.kind != checklist {
		return "<li>"
	}
	if it.checked {
		return `<li class="task-item"><input type="checkbox" checked disabled> `
	}
	return `<li class="task-item"><input type="checkbox" disabled> `
}

func closeList(kind listKind) string {
	if kind == orderedList {
		return "</ol>"
	}
	return "</ul>"
}

// listMachine builds nested lists line by line. The frame stack is
// ordered by indent; every open frame has exactly one open <li>.
type listMachine struct {
	out   []string
	stack []listFrame
	run   strings.Builder
}

func (m *listMachine) top() listFrame {
	return m.stack[len(m.stack)-1]
}

func (m *listMachine) push(it listItem) {
	m.run.WriteString(it.openList())
	m.stack = append(m.stack, listFrame{kind: it.kind, indent: it.indent})
}

func (m *listMachine) pop() {
	m.run.WriteString("</li>")
	m.run.WriteString(closeList(m.top().kind))
	m.stack = m.stack[:len(m.stack)-1]
}

// flush closes every open frame and emits the list as its own block.
func (m *listMachine) flush() {
	if len(m.stack) == 0 {
		return
	}
	for len(m.stack) > 0 {
		m.pop()
	}
	m.out = append(m.out, "", m.run.String(), "")
	m.run.Reset()
}

func (m *listMachine) line(line string) {
	it, ok := parseListItem(line)
	if !ok {
		// 空行不关闭列表，允许列表项之间有空行
		if strings.TrimSpace(line) == "" && len(m.stack) > 0 {
			return
		}
		m.flush()
		m.out = append(m.out, line)
		return
	}

	for len(m.stack) > 0 && it.indent < m.top().indent {
		m.pop()
	}
	switch {
	case len(m.stack) == 0 || it.indent > m.top().indent:
		m.push(it)
	case m.top().kind != it.kind:
		m.pop()
		m.push(it)
	default:
		m.run.WriteString("</li>")
	}
	m.run.WriteString(it.openItem())
	m.run.WriteString(it.content)
}

// buildLists 将 Markdown 列表行转换为嵌套的 ul/ol
func buildLists(text string) string {
	m := &listMachine{}
	for _, line := range strings.Split(text, "\n") {
		m.line(line)
	}
	m.flush()
	return strings.Join(m.out, "\n")
}
