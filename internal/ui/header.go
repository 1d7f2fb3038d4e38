package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskviz/internal/model"
)

const headerProgressBarWidth = 20 // Width of volume usage and scan progress bars

// Header shows the scanned root, volume usage and scan state
type Header struct {
	root     string
	volume   *model.Volume
	scanning bool
	progress *model.ScanProgress
	elapsed  time.Duration
	trail    []*model.Node
	width    int

	spinner spinner.Model
	bar     progress.Model
}

// NewHeader creates a new header component
func NewHeader() Header {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(headerProgressBarWidth),
		progress.WithoutPercentage(),
	)

	return Header{spinner: s, bar: bar}
}

// SetRoot sets the scanned path and refreshes volume usage for it
func (h *Header) SetRoot(root string) {
	h.root = root
	h.volume = nil
	if v, err := model.VolumeUsage(root); err == nil {
		h.volume = &v
	}
}

// SetScanState updates scan status shown in the header
func (h *Header) SetScanState(scanning bool, p *model.ScanProgress, elapsed time.Duration) {
	h.scanning = scanning
	h.progress = p
	h.elapsed = elapsed
}

// SetTrail sets the breadcrumb nodes from the root to the browsed node
func (h *Header) SetTrail(trail []*model.Node) {
	h.trail = trail
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// Tick returns the command that animates the spinner
func (h Header) Tick() tea.Cmd {
	return h.spinner.Tick
}

// Update handles spinner ticks
func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	var cmd tea.Cmd
	h.spinner, cmd = h.spinner.Update(msg)
	return h, cmd
}

// Crumbs renders the breadcrumb trail
func (h Header) Crumbs() string {
	if len(h.trail) == 0 {
		return CrumbStyle.Render(h.root)
	}
	parts := make([]string, 0, len(h.trail))
	parts = append(parts, h.trail[0].Path)
	for _, n := range h.trail[1:] {
		parts = append(parts, n.Name)
	}
	return CrumbStyle.Render(strings.Join(parts, " › "))
}

// View renders the header
func (h Header) View() string {
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")).
		Bold(true).
		Render("DISKVIZ")
	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")

	root := RootStyle.Render(h.root)

	var status string
	switch {
	case h.scanning:
		status = h.spinner.View() + StatsStyle.Render(fmt.Sprintf(" Scanning… %s", h.elapsed.Truncate(time.Second)))
	case h.progress != nil:
		status = StatsStyle.Render(fmt.Sprintf(
			"%s in %d dirs  %s ",
			FormatSize(int64(h.progress.TotalBytes)),
			h.progress.TotalDirs,
			h.elapsed.Truncate(time.Millisecond),
		)) + h.bar.ViewAs(h.progress.Fraction())
	}

	var usage, usageCompact string
	if h.volume != nil {
		usedPct := h.volume.UsedPercent()
		filled := int(usedPct / 100 * float64(headerProgressBarWidth))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", headerProgressBarWidth-filled)
		usage = StatsStyle.Render(fmt.Sprintf(
			"Used: %s / %s  [%s] %.0f%%",
			FormatSize(h.volume.UsedBytes()),
			FormatSize(h.volume.TotalBytes),
			bar,
			usedPct,
		))
		usageCompact = StatsStyle.Render(fmt.Sprintf(
			"Used: %s / %s",
			FormatSize(h.volume.UsedBytes()),
			FormatSize(h.volume.TotalBytes),
		))
	}

	left := appName + sep + root
	if status != "" {
		left += sep + status
	}

	// For narrow terminals, progressively hide elements
	total := lipgloss.Width(left) + lipgloss.Width(usage) + 2
	if h.width < total && usageCompact != "" {
		usage = usageCompact
		total = lipgloss.Width(left) + lipgloss.Width(usage) + 2
	}
	if h.width < total {
		usage = ""
		total = lipgloss.Width(left)
	}

	gap := h.width - total
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + usage
	return HeaderStyle.MaxHeight(1).Render(line)
}
