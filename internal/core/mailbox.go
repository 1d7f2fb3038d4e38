package core

import "sync"

// Mailbox is an unbounded FIFO queue of messages. Any number of goroutines
// may send; one consumer receives without ever blocking.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Message
	closed bool
	notify chan struct{}
}

// NewMailbox creates an empty, open mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Send appends msg to the queue. It returns false, dropping the message,
// once the consumer has closed the mailbox.
func (m *Mailbox) Send(msg Message) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
		// a wakeup is already pending
	}
	return true
}

// TryReceive returns the oldest queued message, or false if none is queued
func (m *Mailbox) TryReceive() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil, false
	}
	msg := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return msg, true
}

// Drain removes and returns every currently queued message in order
func (m *Mailbox) Drain() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.queue
	m.queue = nil
	return msgs
}

// Len returns the number of queued messages
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Notify returns a channel that receives a value after new messages arrive.
// Consumers that can afford to wait select on it instead of polling.
func (m *Mailbox) Notify() <-chan struct{} {
	return m.notify
}

// Close abandons the mailbox. Queued messages are discarded and later sends
// are dropped.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.queue = nil
}

// Closed reports whether the consumer has abandoned the mailbox
func (m *Mailbox) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
