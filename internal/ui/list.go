package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskviz/internal/model"
)

const listSizeBarWidth = 10 // Width of size proportion bar [██████░░░░]

// ListPanel shows the children of the node being browsed, largest first
type ListPanel struct {
	node    *model.Node
	rows    []*model.Node // sorted view of node.Children
	cursor  int
	offset  int // scroll offset
	width   int
	height  int
	focused bool
	changes model.Changes // differences from the previous scan, if any
}

// NewListPanel creates an empty list panel
func NewListPanel() ListPanel {
	return ListPanel{focused: true}
}

// SetNode shows the children of node and resets the cursor
func (l *ListPanel) SetNode(node *model.Node) {
	l.node = node
	l.rows = model.Sorted(node)
	l.cursor = 0
	l.offset = 0
}

// SetChanges sets the differences shown next to each row
func (l *ListPanel) SetChanges(changes model.Changes) {
	l.changes = changes
}

// Node returns the node whose children are listed
func (l ListPanel) Node() *model.Node {
	return l.node
}

// SetSize sets the panel dimensions
func (l *ListPanel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.ensureVisible()
}

// Selected returns the node under the cursor
func (l ListPanel) Selected() *model.Node {
	if l.cursor >= 0 && l.cursor < len(l.rows) {
		return l.rows[l.cursor]
	}
	return nil
}

// Rows returns the sorted rows
func (l ListPanel) Rows() []*model.Node {
	return l.rows
}

// Select moves the cursor to node if it is listed
func (l *ListPanel) Select(node *model.Node) {
	for i, r := range l.rows {
		if r == node {
			l.cursor = i
			l.ensureVisible()
			return
		}
	}
}

// MoveUp moves cursor up
func (l *ListPanel) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// MoveDown moves cursor down
func (l *ListPanel) MoveDown() {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// GoToTop moves cursor to the first row
func (l *ListPanel) GoToTop() {
	l.cursor = 0
	l.ensureVisible()
}

// GoToBottom moves cursor to the last row
func (l *ListPanel) GoToBottom() {
	if len(l.rows) > 0 {
		l.cursor = len(l.rows) - 1
	}
	l.ensureVisible()
}

// visibleRows is the number of rows that fit inside the border
func (l ListPanel) visibleRows() int {
	n := l.height - 2
	if n < 1 {
		n = 1
	}
	return n
}

// ensureVisible keeps the cursor on screen
func (l *ListPanel) ensureVisible() {
	n := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+n {
		l.offset = l.cursor - n + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// sizeBar draws size as a share of total
func sizeBar(size, total int64, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	filled := int(float64(size) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// percent returns size as a percentage of total
func percent(size, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(size) / float64(total) * 100
}

// buildLine renders one row without styling
func (l ListPanel) buildLine(node *model.Node) string {
	name := node.Name
	if node.IsDir {
		name += "/"
	}
	total := l.node.TotalSize()
	line := fmt.Sprintf("%s %6.2f%% %9s  %s",
		sizeBar(node.TotalSize(), total, listSizeBarWidth),
		percent(node.TotalSize(), total),
		FormatSize(node.TotalSize()),
		name)
	if delta := l.deltaLabel(node); delta != "" {
		line += "  " + delta
	}
	return line
}

// deltaLabel describes how node changed since the previous scan
func (l ListPanel) deltaLabel(node *model.Node) string {
	if l.changes == nil {
		return ""
	}
	ch, ok := l.changes[node.Path]
	switch {
	case !ok:
		return ""
	case ch.New:
		return "(new)"
	case ch.Delta() > 0:
		return "+" + FormatSize(ch.Delta())
	default:
		return FormatSize(ch.Delta())
	}
}

// View renders the list
func (l ListPanel) View() string {
	style := ListPanelStyle.Width(l.width).Height(l.height)
	if l.focused {
		style = style.BorderForeground(ColorPrimary)
	}

	if l.node == nil {
		return style.Render(EmptyStyle.Render("No data yet…"))
	}
	if len(l.rows) == 0 {
		return style.Render(EmptyStyle.Render("Empty: nothing to show here"))
	}

	maxW := l.width - 2
	if maxW < 1 {
		maxW = 1
	}

	var lines []string
	for i := l.offset; i < len(l.rows) && len(lines) < l.visibleRows(); i++ {
		node := l.rows[i]
		line := l.buildLine(node)

		var itemStyle lipgloss.Style
		switch {
		case i == l.cursor:
			itemStyle = ListItemSelected.Width(maxW).MaxWidth(maxW)
		case node.IsDir:
			itemStyle = lipgloss.NewStyle().Foreground(ColorDir).MaxWidth(maxW)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(ColorFile).MaxWidth(maxW)
		}
		lines = append(lines, itemStyle.Render(line))
	}

	return style.Render(strings.Join(lines, "\n"))
}
