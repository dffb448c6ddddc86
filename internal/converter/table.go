package converter

import (
	"regexp"
	"strings"
)

var (
	tableLineRe = regexp.MustCompile(`^[ \t]*\|.*\|[ \t]*$`)
	alignCellRe = regexp.MustCompile(`^:?-+:?$`)
)

// tableBuilder 累积连续的表格行
type tableBuilder struct {
	rows       [][]string
	alignments []string
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// alignmentRow returns per-column alignments when every cell is an
// alignment marker.
func alignmentRow(cells []string) ([]string, bool) {
	alignments := make([]string, len(cells))
	for i, cell := range cells {
		if !alignCellRe.MatchString(cell) {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			alignments[i] = "center"
		case right:
			alignments[i] = "right"
		default:
			alignments[i] = "left"
		}
	}
	return alignments, true
}

func (t *tableBuilder) add(line string) {
	cells := splitCells(line)
	if alignments, ok := alignmentRow(cells); ok {
		t.alignments = alignments
		return
	}
	t.rows = append(t.rows, cells)
}

func (t *tableBuilder) align(col int) string {
	if col < len(t.alignments) {
		return t.alignments[col]
	}
	return "left"
}

func (t *tableBuilder) writeRow(sb *strings.Builder, cells []string, tag string) {
	sb.WriteString("<tr>")
	for i, cell := range cells {
		sb.WriteString("<" + tag + ` style="text-align:` + t.align(i) + `">`)
		sb.WriteString(cell)
		sb.WriteString("</" + tag + ">")
	}
	sb.WriteString("</tr>")
}

// html renders the buffered rows; the first row is the header.
func (t *tableBuilder) html() string {
	var sb strings.Builder
	sb.WriteString(`<table class="md-table">`)
	sb.WriteString("<thead>")
	t.writeRow(&sb, t.rows[0], "th")
	sb.WriteString("</thead>")
	if len(t.rows) > 1 {
		sb.WriteString("<tbody>")
		for _, row := range t.rows[1:] {
			t.writeRow(&sb, row, "td")
		}
		sb.WriteString("</tbody>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

// buildTables 将连续的 | 行转换为 <table>
func buildTables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var t *tableBuilder
	var raw []string
	flush := func() {
		if t == nil {
			return
		}
		if len(t.rows) > 0 {
			out = append(out, "", t.html(), "")
		} else {
			// 仅有对齐行，不构成表格
			out = append(out, raw...)
		}
		t, raw = nil, nil
	}
	for _, line := range lines {
		if tableLineRe.MatchString(line) {
			if t == nil {
				t = &tableBuilder{}
			}
			t.add(line)
			raw = append(raw, line)
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()
	return strings.Join(out, "\n")
}
