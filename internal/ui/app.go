package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskviz/internal/core"
	"github.com/lumipallolabs/diskviz/internal/logging"
	"github.com/lumipallolabs/diskviz/internal/model"
	"github.com/lumipallolabs/diskviz/internal/settings"
)

const (
	pollInterval       = 16 * time.Millisecond // Mailbox poll rate, about one frame
	minTreemapWidth    = 100                   // Terminal width needed to show the treemap
	listWidthFraction  = 0.5                   // Share of the width given to the list
	statusClearTimeout = 3 * time.Second
)

// pollMsg asks the app to drain the scan mailbox
type pollMsg struct{}

// clearStatusMsg clears a transient status line
type clearStatusMsg struct {
	version int
}

// App is the main application model
type App struct {
	session  *core.Session
	settings *settings.Manager
	root     string

	keys    KeyMap
	header  Header
	list    ListPanel
	treemap TreemapPanel
	help    HelpOverlay

	previous *model.Node // tree of the scan before a rescan
	changes  model.Changes

	detail        string
	status        string
	statusVersion int
	polling       bool

	width  int
	height int
}

// NewApp creates the application for root. prefs may be nil.
func NewApp(session *core.Session, prefs *settings.Manager, root string) App {
	keys := DefaultKeyMap()
	a := App{
		session:  session,
		settings: prefs,
		root:     root,
		keys:     keys,
		header:   NewHeader(),
		list:     NewListPanel(),
		treemap:  NewTreemapPanel(),
		help:     NewHelpOverlay(keys),
	}
	a.header.SetRoot(root)
	return a
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("DISKVIZ"),
		a.startScan(),
		a.header.Tick(),
	)
}

// startScan begins a fresh scan of the root and the poll loop that follows it
func (a *App) startScan() tea.Cmd {
	logging.UI.Printf("starting scan of %s", a.root)
	if tree := a.session.Tree(); tree != nil {
		a.previous = tree
	}
	a.changes = nil
	a.list.SetChanges(nil)
	a.session.Start(a.root)
	if a.settings != nil {
		a.settings.SetLastRoot(a.root)
	}
	a.list.SetNode(nil)
	a.treemap.SetRows(nil)
	a.detail = ""
	a.refreshHeader()
	return a.schedulePoll()
}

// schedulePoll starts the poll tick unless one is already pending
func (a *App) schedulePoll() tea.Cmd {
	if a.polling {
		return nil
	}
	a.polling = true
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case pollMsg:
		a.polling = false
		if a.session.Poll() && a.session.Phase() == core.PhaseComplete {
			logging.UI.Printf("scan of %s finished in %s", a.session.Root(), a.session.Elapsed())
			cmd := a.compareWithPrevious()
			a.showCurrent(nil)
			return a, cmd
		}
		a.refreshHeader()
		if a.session.Mailbox() != nil {
			return a, a.schedulePoll()
		}
		return a, nil

	case clearStatusMsg:
		if msg.version == a.statusVersion {
			a.status = ""
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.header, cmd = a.header.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.help.IsVisible() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a.quit()
		case key.Matches(msg, a.keys.Help), msg.String() == "esc":
			a.help.Toggle()
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.Up):
		a.list.MoveUp()
		a.syncSelection()

	case key.Matches(msg, a.keys.Down):
		a.list.MoveDown()
		a.syncSelection()

	case key.Matches(msg, a.keys.Top):
		a.list.GoToTop()
		a.syncSelection()

	case key.Matches(msg, a.keys.Bottom):
		a.list.GoToBottom()
		a.syncSelection()

	case key.Matches(msg, a.keys.Enter):
		a.enterSelected()

	case key.Matches(msg, a.keys.Back):
		from := a.session.Current()
		if a.session.Back() {
			a.showCurrent(from)
		}

	case key.Matches(msg, a.keys.Rescan):
		return a, a.startScan()

	case key.Matches(msg, a.keys.Copy):
		if node := a.list.Selected(); node != nil {
			if err := copyToClipboard(node.Path); err != nil {
				return a, a.setStatus("Copy failed: " + err.Error())
			}
			return a, a.setStatus("Copied " + node.Path)
		}

	case key.Matches(msg, a.keys.Open):
		return a, a.openInExplorer()
	}

	return a, nil
}

// enterSelected drills into the selected directory. The list is sorted, so
// the row is mapped back to its index among the node's children.
func (a *App) enterSelected() {
	selected := a.list.Selected()
	if selected == nil {
		return
	}
	idx := model.IndexOf(a.list.Node(), selected)
	if a.session.Enter(idx) {
		a.showCurrent(nil)
	}
}

// compareWithPrevious diffs a rescan against the tree it replaced
func (a *App) compareWithPrevious() tea.Cmd {
	if a.previous == nil {
		return nil
	}
	a.changes = model.Diff(a.previous, a.session.Tree())
	a.previous = nil
	a.list.SetChanges(a.changes)

	root := a.session.Tree()
	ch, ok := a.changes[root.Path]
	if !ok {
		return a.setStatus("No change since last scan")
	}
	sign := ""
	if ch.Delta() > 0 {
		sign = "+"
	}
	return a.setStatus(fmt.Sprintf("%s%s since last scan, %d entries changed", sign, FormatSize(ch.Delta()), len(a.changes)))
}

// showCurrent lists the session's current node and selects prev if present
func (a *App) showCurrent(prev *model.Node) {
	a.list.SetNode(a.session.Current())
	a.treemap.SetRows(a.list.Rows())
	if prev != nil {
		a.list.Select(prev)
	}
	a.syncSelection()
	a.refreshHeader()
}

// syncSelection updates the treemap highlight and the detail line
func (a *App) syncSelection() {
	selected := a.list.Selected()
	a.treemap.SetSelected(selected)
	var total int64
	if cur := a.list.Node(); cur != nil {
		total = cur.TotalSize()
	}
	a.detail = describe(selected, total)
}

func (a *App) refreshHeader() {
	a.header.SetScanState(a.session.Phase() == core.PhaseScanning, a.session.Progress(), a.session.Elapsed())
	a.header.SetTrail(a.session.Trail())
}

func (a *App) setStatus(text string) tea.Cmd {
	a.statusVersion++
	a.status = text
	version := a.statusVersion
	return tea.Tick(statusClearTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{version: version}
	})
}

func (a *App) openInExplorer() tea.Cmd {
	node := a.list.Selected()
	if node == nil {
		return nil
	}
	if err := openInFileManager(node.Path); err != nil {
		logging.UI.Printf("open %s: %v", node.Path, err)
		return a.setStatus("Open failed: " + err.Error())
	}
	return a.setStatus("Opened " + node.Path)
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.settings != nil {
		if err := a.settings.Close(); err != nil {
			logging.UI.Printf("saving settings: %v", err)
		}
	}
	return a, tea.Quit
}

// updateLayout recalculates component sizes
func (a *App) updateLayout() {
	a.header.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)

	// Header, crumbs, detail and help bar take one line each
	bodyH := a.height - 4
	if bodyH < 3 {
		bodyH = 3
	}

	if a.width >= minTreemapWidth {
		listW := int(float64(a.width) * listWidthFraction)
		a.list.SetSize(listW-2, bodyH-2)
		a.treemap.SetSize(a.width-listW, bodyH)
	} else {
		a.list.SetSize(a.width-2, bodyH-2)
		a.treemap.SetSize(0, 0)
	}
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.help.IsVisible() {
		return a.help.View()
	}

	body := a.list.View()
	if a.width >= minTreemapWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, a.treemap.View())
	}

	bottom := DetailStyle.MaxWidth(a.width).Render(a.detail)
	if a.status != "" {
		bottom = StatusStyle.MaxWidth(a.width).Render(a.status)
	}

	return strings.Join([]string{
		a.header.View(),
		lipgloss.NewStyle().Padding(0, 1).MaxWidth(a.width).Render(a.header.Crumbs()),
		body,
		bottom,
		a.help.ShortView(),
	}, "\n")
}
