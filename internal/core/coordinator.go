package core

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/lumipallolabs/diskviz/internal/logging"
	"github.com/lumipallolabs/diskviz/internal/model"
	"github.com/lumipallolabs/diskviz/internal/scanner"
)

// Coordinator runs scans in the background and publishes their results
type Coordinator struct {
	scanner scanner.Scanner
	running atomic.Int64
	started atomic.Uint64
}

// NewCoordinator creates a coordinator that scans with s
func NewCoordinator(s scanner.Scanner) *Coordinator {
	return &Coordinator{scanner: s}
}

// BeginScan starts scanning root in a new goroutine and returns at once.
// The returned mailbox receives one ProgressMessage and then one
// FinishedMessage. Earlier scans are not cancelled; they run to completion
// and deliver to their own mailboxes.
func (c *Coordinator) BeginScan(root string) *Mailbox {
	mb := NewMailbox()
	id := c.started.Add(1)
	c.running.Add(1)

	go c.runScan(id, root, mb)

	return mb
}

// Running returns the number of scans that have not finished yet
func (c *Coordinator) Running() int {
	return int(c.running.Load())
}

// runScan executes one scan and publishes its result
func (c *Coordinator) runScan(id uint64, root string, mb *Mailbox) {
	defer c.running.Add(-1)

	logging.Debug.Printf("scan %d: starting %s", id, root)

	res := c.scan(id, root)

	// A closed mailbox means the consumer moved on; nothing to report
	sentProgress := mb.Send(ProgressMessage{Progress: res.Progress})
	sentFinished := mb.Send(FinishedMessage{Root: res.Root})

	logging.Debug.Printf("scan %d: done, %d bytes in %d dirs (delivered: %v/%v)",
		id, res.Progress.TotalBytes, res.Progress.TotalDirs, sentProgress, sentFinished)
}

// scan runs the scanner, turning any failure into an empty result
func (c *Coordinator) scan(id uint64, root string) (res *scanner.Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug.Printf("scan %d: panic: %v", id, r)
			res = emptyResult(root)
		}
	}()

	res, err := c.scanner.Scan(context.Background(), root)
	if err != nil || res == nil || res.Root == nil {
		logging.Debug.Printf("scan %d: no result: %v", id, err)
		return emptyResult(root)
	}
	return res
}

// emptyResult is the degenerate but valid result of a scan that found nothing
func emptyResult(root string) *scanner.Result {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	return &scanner.Result{
		Root: &model.Node{
			Path:  abs,
			Name:  filepath.Base(abs),
			IsDir: true,
		},
	}
}
