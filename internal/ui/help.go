package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	keys    KeyMap
	model   help.Model
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(keys KeyMap) HelpOverlay {
	m := help.New()
	m.Styles.ShortKey = HelpKey
	m.Styles.FullKey = HelpKey
	m.Styles.ShortDesc = HelpStyle.UnsetPadding()
	m.Styles.FullDesc = HelpStyle.UnsetPadding()
	return HelpOverlay{keys: keys, model: m}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
	ho.model.Width = w
}

// ShortView renders the single line help bar
func (h HelpOverlay) ShortView() string {
	return HelpStyle.Render(h.model.ShortHelpView(h.keys.ShortHelp()))
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard shortcuts"),
		h.model.FullHelpView(h.keys.FullHelp()),
	)

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
}
