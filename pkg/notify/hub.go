package notify

import (
	"context"
	"sync"

	"github.com/fsmkit/fsmkit/pkg/fsm"
)

// Hub fans out machine transition records to subscribers. Publishing never
// blocks: when a subscriber's buffer is full the record is dropped for that
// subscriber and the subscriber is evicted. All methods are safe for
// concurrent use; the machines being observed need not be.
type Hub struct {
	subscribers map[*Subscriber]struct{}
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// Subscriber receives transition records from a Hub.
type Subscriber struct {
	changes chan Change
	closed  bool
	mu      sync.RWMutex
}

// Receive returns the channel transition records arrive on. The channel is
// closed when the subscriber is closed or evicted.
func (s *Subscriber) Receive() <-chan Change {
	return s.changes
}

// Close closes the subscriber. Idempotent and safe to call while the hub is
// still publishing; the hub evicts the subscriber on its next publish.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.changes)
}

func (s *Subscriber) send(c Change) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.changes <- c:
		return true
	default:
		return false
	}
}

// NewHub creates a hub whose subscribers buffer up to bufferSize records.
// A minimum buffer size of 1 is enforced so every send stays non-blocking.
func NewHub(bufferSize int) *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Subscribe registers a new subscriber. The subscription is cleaned up when
// ctx is cancelled. Subscribing to a closed hub returns an already-closed
// subscriber.
func (h *Hub) Subscribe(ctx context.Context) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{changes: make(chan Change, h.bufferSize)}
	if h.closed {
		sub.Close()
		return sub
	}
	h.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			<-ctx.Done()
			h.unsubscribe(sub)
		}()
	}

	return sub
}

// Publish delivers a transition record to all active subscribers, dropping
// it for any subscriber whose buffer is full.
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for sub := range h.subscribers {
		if !sub.send(c) {
			// Evict asynchronously so a slow consumer never stalls the
			// publishing machine.
			go h.unsubscribe(sub)
		}
	}
}

// Callback returns a state-change callback that publishes every completed
// full transition of the labeled machine, suitable for
// fsm.WithStateChangeCallback.
func (h *Hub) Callback(machine string) func(from, to fsm.State, event fsm.Event) {
	return func(from, to fsm.State, event fsm.Event) {
		h.Publish(ChangeOf(machine, from, to, event))
	}
}

// Close shuts the hub down and closes all subscribers. Idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for sub := range h.subscribers {
		sub.Close()
	}
	clear(h.subscribers)
	h.mu.Unlock()

	h.cleanupWg.Wait()
}

func (h *Hub) unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	sub.Close()
}
