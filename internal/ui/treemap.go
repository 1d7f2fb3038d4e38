package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/diskviz/internal/model"
)

const maxTreemapItems = 12 // remaining children are folded into the last block

// Block is a laid out treemap rectangle in cell coordinates
type Block struct {
	Node   *model.Node // nil for the folded remainder
	Label  string
	X, Y   int
	Width  int
	Height int
	Color  lipgloss.Color
}

// TreemapPanel draws the listed children as a squarified treemap
type TreemapPanel struct {
	rows     []*model.Node
	selected *model.Node
	width    int
	height   int
	blocks   []Block
}

// NewTreemapPanel creates an empty treemap panel
func NewTreemapPanel() TreemapPanel {
	return TreemapPanel{}
}

// SetRows sets the nodes to draw, largest first
func (t *TreemapPanel) SetRows(rows []*model.Node) {
	t.rows = rows
	t.layout()
}

// SetSelected highlights node
func (t *TreemapPanel) SetSelected(node *model.Node) {
	t.selected = node
}

// SetSize sets the panel dimensions
func (t *TreemapPanel) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.layout()
}

// Blocks returns the current layout
func (t TreemapPanel) Blocks() []Block {
	return t.blocks
}

// treemapItem wraps a node for the squarify algorithm
type treemapItem struct {
	node     *model.Node
	label    string
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

// layout calculates block positions using the squarify library
func (t *TreemapPanel) layout() {
	t.blocks = nil

	contentW, contentH := t.width-2, t.height-2
	if len(t.rows) == 0 || contentW < 1 || contentH < 1 {
		return
	}

	root := &treemapItem{}
	var rest *treemapItem
	for i, n := range t.rows {
		size := float64(n.TotalSize())
		if size <= 0 {
			continue
		}
		if i < maxTreemapItems {
			root.children = append(root.children, &treemapItem{node: n, label: n.Name, size: size})
		} else {
			if rest == nil {
				rest = &treemapItem{}
			}
			rest.size += size
		}
		root.size += size
	}
	if rest != nil {
		rest.label = "…"
		root.children = append(root.children, rest)
	}
	if len(root.children) == 0 {
		return
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(contentW), H: float64(contentH)}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	for i, block := range blocks {
		item, ok := block.TreeSizer.(*treemapItem)
		if !ok || i >= len(metas) || metas[i].Depth != 0 {
			continue
		}

		// Round both edges so neighbours share boundaries
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		w := int(math.Round(block.X+block.W)) - x
		h := int(math.Round(block.Y+block.H)) - y
		if x+w > contentW {
			w = contentW - x
		}
		if y+h > contentH {
			h = contentH - y
		}
		if w < 1 || h < 1 {
			continue
		}

		t.blocks = append(t.blocks, Block{
			Node:   item.node,
			Label:  item.label,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
			Color:  treemapPalette[len(t.blocks)%len(treemapPalette)],
		})
	}
}

// View renders the treemap
func (t TreemapPanel) View() string {
	style := TreemapPanelStyle.Width(t.width - 2).Height(t.height - 2)
	contentW, contentH := t.width-2, t.height-2
	if len(t.blocks) == 0 || contentW < 1 || contentH < 1 {
		return style.Render("")
	}

	grid := make([][]string, contentH)
	for y := range grid {
		grid[y] = make([]string, contentW)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	for _, b := range t.blocks {
		fill := "▒"
		if b.Node != nil && b.Node == t.selected {
			fill = "█"
		}
		cell := lipgloss.NewStyle().Foreground(b.Color).Render(fill)
		for y := b.Y; y < b.Y+b.Height; y++ {
			for x := b.X; x < b.X+b.Width; x++ {
				grid[y][x] = cell
			}
		}

		// Label on the first row when it fits
		label := []rune(b.Label)
		if len(label) > b.Width {
			label = label[:b.Width]
		}
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(b.Color)
		for i, r := range label {
			grid[b.Y][b.X+i] = labelStyle.Render(string(r))
		}
	}

	lines := make([]string, contentH)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return style.Render(strings.Join(lines, "\n"))
}
