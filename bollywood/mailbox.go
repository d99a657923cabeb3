package bollywood

import (
	"sync"

	"github.com/gammazero/deque"
)

// mailbox is a per-actor FIFO queue of envelopes, unbounded: a buffered
// channel cannot grow past its initial capacity without either blocking
// producers or dropping messages, so this uses a growable deque behind a
// mutex+cond instead, giving a non-blocking enqueue and a blocking
// dequeue.
type mailbox struct {
	mu   sync.Mutex
	cond *sync.Cond
	q    deque.Deque[*Envelope]
}

func newMailbox() *mailbox {
	m := &mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// enqueue never blocks and never fails: this mailbox simply grows.
func (m *mailbox) enqueue(e *Envelope) {
	m.mu.Lock()
	m.q.PushBack(e)
	m.mu.Unlock()
	m.cond.Signal()
}

// dequeue blocks until an envelope is available.
func (m *mailbox) dequeue() *Envelope {
	m.mu.Lock()
	for m.q.Len() == 0 {
		m.cond.Wait()
	}
	e := m.q.PopFront()
	m.mu.Unlock()
	return e
}
