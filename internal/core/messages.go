package core

import "github.com/lumipallolabs/diskviz/internal/model"

// Message is delivered from a scan to its consumer through a Mailbox.
// Every scan sends exactly one ProgressMessage followed by exactly one
// FinishedMessage.
type Message interface {
	isMessage()
}

// ProgressMessage carries the final traversal totals of a scan
type ProgressMessage struct {
	Progress model.ScanProgress
}

func (ProgressMessage) isMessage() {}

// FinishedMessage hands the completed tree to the consumer. The scan keeps
// no reference to it afterwards.
type FinishedMessage struct {
	Root *model.Node
}

func (FinishedMessage) isMessage() {}
