package core

import (
	"time"

	"github.com/lumipallolabs/diskviz/internal/model"
)

// ScanPhase represents the consumer's view of the current scan
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComplete
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseIdle:
		return ""
	case PhaseScanning:
		return "Scanning files"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// Session is the consumer side of a scan: it owns the current mailbox, the
// last received progress and tree, and the drill-down position. It is meant
// to be driven from a single goroutine, such as a UI update loop.
type Session struct {
	coord   *Coordinator
	mailbox *Mailbox

	root      string
	phase     ScanPhase
	startTime time.Time
	elapsed   time.Duration

	progress *model.ScanProgress
	tree     *model.Node
	crumbs   model.IndexPath
}

// NewSession creates an idle session that starts scans on coord
func NewSession(coord *Coordinator) *Session {
	return &Session{coord: coord}
}

// Start begins a scan of root. Any previous scan's mailbox is abandoned, so
// its late messages are never seen, and the previous progress, tree and
// position are cleared.
func (s *Session) Start(root string) {
	if s.mailbox != nil {
		s.mailbox.Close()
	}

	s.root = root
	s.phase = PhaseScanning
	s.startTime = time.Now()
	s.elapsed = 0
	s.progress = nil
	s.tree = nil
	s.crumbs = nil
	s.mailbox = s.coord.BeginScan(root)
}

// Poll applies every message currently queued for the active scan without
// blocking. It reports whether anything changed.
func (s *Session) Poll() bool {
	if s.mailbox == nil {
		return false
	}

	msgs := s.mailbox.Drain()
	for _, msg := range msgs {
		switch m := msg.(type) {
		case ProgressMessage:
			p := m.Progress
			s.progress = &p
		case FinishedMessage:
			s.tree = m.Root
			s.crumbs = nil
			s.phase = PhaseComplete
			s.elapsed = time.Since(s.startTime)
			// The scan sends nothing after Finished
			s.mailbox = nil
		}
	}
	return len(msgs) > 0
}

// Mailbox returns the mailbox of the active scan, or nil when none is pending
func (s *Session) Mailbox() *Mailbox {
	return s.mailbox
}

// Root returns the path of the most recently started scan
func (s *Session) Root() string {
	return s.root
}

// Phase returns the current scan phase
func (s *Session) Phase() ScanPhase {
	return s.phase
}

// Elapsed returns how long the active scan has run, or how long the last
// completed scan took
func (s *Session) Elapsed() time.Duration {
	switch s.phase {
	case PhaseScanning:
		return time.Since(s.startTime)
	case PhaseComplete:
		return s.elapsed
	default:
		return 0
	}
}

// Progress returns the last received progress, or nil before one arrives
func (s *Session) Progress() *model.ScanProgress {
	return s.progress
}

// Tree returns the last completed tree, or nil
func (s *Session) Tree() *model.Node {
	return s.tree
}

// Crumbs returns the drill-down position as an index path
func (s *Session) Crumbs() model.IndexPath {
	return s.crumbs
}

// Current returns the node being browsed. A position that no longer
// resolves falls back to the root.
func (s *Session) Current() *model.Node {
	if s.tree == nil {
		return nil
	}
	if n := s.crumbs.Resolve(s.tree); n != nil {
		return n
	}
	s.crumbs = nil
	return s.tree
}

// Trail returns the nodes from the root down to Current
func (s *Session) Trail() []*model.Node {
	return s.crumbs.Trail(s.tree)
}

// Enter drills into the child at idx of the current node. Only directories
// with children can be entered.
func (s *Session) Enter(idx int) bool {
	cur := s.Current()
	if cur == nil || idx < 0 || idx >= len(cur.Children) {
		return false
	}
	child := cur.Children[idx]
	if !child.IsDir || len(child.Children) == 0 {
		return false
	}
	s.crumbs = s.crumbs.Child(idx)
	return true
}

// Back moves up one level. It returns false at the root.
func (s *Session) Back() bool {
	if len(s.crumbs) == 0 {
		return false
	}
	s.crumbs = s.crumbs.Parent()
	return true
}
