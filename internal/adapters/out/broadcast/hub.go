// Package broadcast implements the event publisher port over live consumer
// connections. The primary implementation is a websocket hub with bounded
// per-subscriber buffers; an AMQP publisher can mirror the same events to a
// message broker for out-of-process consumers.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"dispatch/internal/core/ports"
)

// DefaultBufferSize is the per-subscriber event buffer capacity.
const DefaultBufferSize = 64

const writeTimeout = 10 * time.Second

// envelope is the wire format for broadcast events.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Subscription is one consumer's view of the event stream.
// Events arrive already serialized; a subscription that falls behind loses
// its oldest events first.
type Subscription struct {
	hub  *Hub
	ch   chan []byte
	once sync.Once
}

// Events returns the serialized event stream. The channel is closed when the
// subscription is closed or the hub shuts down.
func (s *Subscription) Events() <-chan []byte {
	return s.ch
}

// Close detaches the subscription from the hub.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub fans events out to websocket subscribers.
//
// Delivery is at-most-once: each subscriber has a bounded buffer, and when a
// slow subscriber's buffer fills, the oldest buffered event is dropped to
// make room. Publishing never blocks on a consumer.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
	closed bool
	log    zerolog.Logger
}

// NewHub creates a hub with the given per-subscriber buffer capacity.
// A non-positive capacity falls back to DefaultBufferSize.
func NewHub(log zerolog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}

	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		log:    log.With().Str("component", "broadcast_hub").Logger(),
	}
}

// Publish serializes the event once and enqueues it to every subscriber.
func (h *Hub) Publish(_ context.Context, kind ports.EventKind, payload any) error {
	msg, err := json.Marshal(envelope{Event: string(kind), Data: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- msg:
		default:
			// Buffer full: drop the oldest event, then retry once. The
			// second send can only fail if a concurrent publisher refilled
			// the slot, in which case this event is the one dropped.
			select {
			case <-sub.ch:
				h.log.Debug().Str("event", string(kind)).Msg("subscriber buffer full, dropped oldest event")
			default:
			}
			select {
			case sub.ch <- msg:
			default:
			}
		}
	}

	return nil
}

// Subscribe attaches a new consumer to the event stream.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		hub: h,
		ch:  make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.ch)
		return sub
	}

	h.subs[sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// SubscriberCount returns the number of attached subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close detaches all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// ServeConn pumps the event stream into a websocket connection until the
// peer disconnects or the hub shuts down. Blocks for the connection's
// lifetime; inbound messages are discarded.
func (h *Hub) ServeConn(conn *websocket.Conn) {
	sub := h.Subscribe()
	defer sub.Close()
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-sub.ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug().Err(err).Msg("websocket write failed, dropping subscriber")
				return
			}
		case <-done:
			return
		}
	}
}
