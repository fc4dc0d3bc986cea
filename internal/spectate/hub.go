// Package spectate streams simulation snapshots to read-only viewers over
// websockets.
package spectate

import (
	"encoding/json"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// Event is the wire form of an engine event.
type Event struct {
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	EntityID string `json:"id"`
	Sprite   string `json:"sprite,omitempty"`
}

// Frame is one message sent to spectators: the state after a tick plus
// the events that tick produced.
type Frame struct {
	Snapshot engine.Snapshot `json:"snapshot"`
	Events   []Event         `json:"events,omitempty"`
}

// Hub fans frames out to subscribers. Slow subscribers lose their oldest
// frames instead of stalling the publisher.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscriber]struct{}
	latest  []byte
	pending []Event
	buffer  int
	closed  bool
}

// NewHub creates a hub whose subscribers buffer up to buffer frames.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 16 // Default buffer size
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
	}
}

// OnCollect implements engine.Handler. Events are held until the next
// OnTick publishes them with the snapshot.
func (h *Hub) OnCollect(kind engine.Kind, id, sprite string) {
	h.record(Event{Type: engine.EventCollect.String(), Kind: kind.String(), EntityID: id, Sprite: sprite})
}

// OnHit implements engine.Handler.
func (h *Hub) OnHit() {
	h.record(Event{Type: engine.EventHit.String(), Kind: engine.KindEnemy.String()})
}

// OnStomp implements engine.StompHandler.
func (h *Hub) OnStomp(id string) {
	h.record(Event{Type: engine.EventStomp.String(), Kind: engine.KindEnemy.String(), EntityID: id})
}

// OnTick implements engine.TickHandler.
func (h *Hub) OnTick(snap engine.Snapshot) {
	h.mu.Lock()
	events := h.pending
	h.pending = nil
	h.mu.Unlock()

	h.Publish(Frame{Snapshot: snap, Events: events})
}

func (h *Hub) record(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, ev)
}

// Publish encodes the frame once and sends it to every subscriber.
func (h *Hub) Publish(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.latest = data
	for sub := range h.subs {
		sub.send(data)
	}
	return nil
}

// Latest returns the last published frame, or nil before the first one.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Subscribe registers a new subscriber. It receives the latest frame
// first, if there is one.
func (h *Hub) Subscribe() *Subscriber {
	sub := newSubscriber(h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.Close()
		return sub
	}
	if h.latest != nil {
		sub.send(h.latest)
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Unsubscribe removes and closes a subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.Close()
}

// Count returns the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber. Later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for sub := range h.subs {
		sub.Close()
		delete(h.subs, sub)
	}
}

// Subscriber receives encoded frames through a buffered channel.
type Subscriber struct {
	frames    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscriber(buffer int) *Subscriber {
	return &Subscriber{
		frames: make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// send delivers a frame without blocking. If the buffer is full, the
// oldest frame is dropped.
func (s *Subscriber) send(data []byte) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.frames <- data:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.frames:
		default:
		}
		select {
		case s.frames <- data:
		default:
		}
	}
}

// Frames returns the channel to receive frames from.
func (s *Subscriber) Frames() <-chan []byte {
	return s.frames
}

// Done returns a channel that closes when the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close marks the subscriber as done.
// Safe to call multiple times.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
