package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/diskviz/internal/model"
	"github.com/lumipallolabs/diskviz/internal/scanner"
	"github.com/lumipallolabs/diskviz/internal/workpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateScanner blocks every scan until release is closed
type gateScanner struct {
	release chan struct{}
	size    int64
}

func (g *gateScanner) Scan(ctx context.Context, root string) (*scanner.Result, error) {
	<-g.release
	return &scanner.Result{
		Root:     &model.Node{Path: root, Name: filepath.Base(root), IsDir: true, Size: g.size},
		Progress: model.ScanProgress{TotalBytes: uint64(g.size), ScannedBytes: uint64(g.size)},
	}, nil
}

type failScanner struct{ panics bool }

func (f failScanner) Scan(ctx context.Context, root string) (*scanner.Result, error) {
	if f.panics {
		panic("walker exploded")
	}
	return nil, errors.New("walk failed")
}

// collect polls mb until it holds two messages or the deadline passes
func collect(t *testing.T, mb *Mailbox) []Message {
	t.Helper()
	var msgs []Message
	require.Eventually(t, func() bool {
		msgs = append(msgs, mb.Drain()...)
		return len(msgs) >= 2
	}, 5*time.Second, time.Millisecond)
	return msgs
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0644))
}

func newWalkerCoordinator(workers int) *Coordinator {
	return NewCoordinator(scanner.NewWalker(workpool.New(workers), scanner.DefaultOptions()))
}

func TestBeginScanMessageOrder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "R")
	writeFile(t, filepath.Join(root, "a.txt"), 10)
	writeFile(t, filepath.Join(root, "B", "b.txt"), 20)
	writeFile(t, filepath.Join(root, "B", "C", "c.txt"), 30)

	msgs := collect(t, newWalkerCoordinator(4).BeginScan(root))
	require.Len(t, msgs, 2)

	progress, ok := msgs[0].(ProgressMessage)
	require.True(t, ok, "first message must be Progress, got %T", msgs[0])
	finished, ok := msgs[1].(FinishedMessage)
	require.True(t, ok, "second message must be Finished, got %T", msgs[1])

	assert.Equal(t, uint64(60), progress.Progress.TotalBytes)
	assert.Equal(t, progress.Progress.TotalBytes, progress.Progress.ScannedBytes)
	assert.Equal(t, progress.Progress.TotalDirs, progress.Progress.ScannedDirs)
	assert.Equal(t, int64(60), finished.Root.Size)
}

func TestBeginScanDoesNotBlock(t *testing.T) {
	gate := &gateScanner{release: make(chan struct{})}
	c := NewCoordinator(gate)

	mb := c.BeginScan("/anywhere")
	_, ok := mb.TryReceive()
	assert.False(t, ok, "nothing may arrive before the scan finishes")
	assert.Equal(t, 1, c.Running())

	close(gate.release)
	collect(t, mb)
	require.Eventually(t, func() bool { return c.Running() == 0 }, time.Second, time.Millisecond)
}

func TestConcurrentScansAreIndependent(t *testing.T) {
	gate := &gateScanner{release: make(chan struct{}), size: 7}
	c := NewCoordinator(gate)

	first := c.BeginScan("/one")
	second := c.BeginScan("/two")
	assert.Equal(t, 2, c.Running())

	close(gate.release)

	a := collect(t, first)
	b := collect(t, second)
	assert.Equal(t, "/one", a[1].(FinishedMessage).Root.Path)
	assert.Equal(t, "/two", b[1].(FinishedMessage).Root.Path)
}

func TestAbandonedMailboxIsSwallowed(t *testing.T) {
	gate := &gateScanner{release: make(chan struct{})}
	c := NewCoordinator(gate)

	mb := c.BeginScan("/gone")
	mb.Close()
	close(gate.release)

	require.Eventually(t, func() bool { return c.Running() == 0 }, 5*time.Second, time.Millisecond,
		"scan must still finish after the consumer left")
	assert.Zero(t, mb.Len())
}

func TestScanFailureYieldsEmptyTree(t *testing.T) {
	for _, s := range []failScanner{{panics: false}, {panics: true}} {
		msgs := collect(t, NewCoordinator(s).BeginScan(filepath.FromSlash("/nowhere/x")))

		assert.Equal(t, model.ScanProgress{}, msgs[0].(ProgressMessage).Progress)
		root := msgs[1].(FinishedMessage).Root
		require.NotNil(t, root)
		assert.Zero(t, root.Size)
		assert.Empty(t, root.Children)
		assert.Equal(t, "x", root.Name)
	}
}

func TestBeginScanMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	msgs := collect(t, newWalkerCoordinator(2).BeginScan(missing))

	root := msgs[1].(FinishedMessage).Root
	assert.Zero(t, root.Size)
	assert.Empty(t, root.Children)
}

func TestBeginScanEmptyDirectory(t *testing.T) {
	msgs := collect(t, newWalkerCoordinator(2).BeginScan(t.TempDir()))

	root := msgs[1].(FinishedMessage).Root
	assert.Zero(t, root.Size)
	assert.Empty(t, root.Children)
}
