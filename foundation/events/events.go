// Package events allows for the registering and receiving of the diagnostic
// events the ledger produces while mining.
package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Events maintains a mapping of subscriber id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]chan string
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan string),
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Subscribe registers a new subscriber under a generated id. The id is
// needed to Release the channel.
func (evt *Events) Subscribe() (string, <-chan string) {
	id := uuid.NewString()
	return id, evt.acquire(id)
}

// Release closes and removes the channel of the subscriber.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send signals a message to every subscriber. Send will not block waiting
// for a receiver on any given channel.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- s:
		default:
		}
	}
}

func (evt *Events) acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	// A message is dropped if the receiver is not ready, this buffer gives
	// a slow terminal enough room during a burst of mining events.
	const messageBuffer = 100

	ch := make(chan string, messageBuffer)
	evt.m[id] = ch

	return ch
}
