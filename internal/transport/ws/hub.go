package ws

import (
	"log/slog"
	"sync"

	"github.com/cwrk-planet/activity-service/internal/metrics"
	"github.com/cwrk-planet/activity-service/internal/service"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	Activity() string
}

// Hub fans roster events out to the connections subscribed to an activity.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[Conn]struct{} // activity -> set of connections
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[c.Activity()]
	if !ok {
		set = make(map[Conn]struct{})
		h.conns[c.Activity()] = set
	}
	set[c] = struct{}{}
	metrics.RosterSubscribers.Inc()
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[c.Activity()]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	metrics.RosterSubscribers.Dec()
	if len(set) == 0 {
		delete(h.conns, c.Activity())
	}
}

// Subscribers returns the number of connections for activity.
func (h *Hub) Subscribers(activity string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[activity])
}

// Broadcast queues msg on every connection for activity; Conn.Send must not block.
func (h *Hub) Broadcast(activity string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns[activity] {
		if err := c.Send(msg); err != nil {
			slog.Debug("ws broadcast failed", "activity", activity, "err", err)
		}
	}
}

// Publish implements service.Notifier.
func (h *Hub) Publish(ev service.RosterEvent) {
	typ := TypeSignedUp
	if ev.Type == service.EventUnregistered {
		typ = TypeUnregistered
	}
	h.Broadcast(ev.Activity, Message{
		Type: typ,
		Payload: RosterPayload{
			Activity:     ev.Activity,
			Email:        ev.Email,
			Participants: ev.Participants,
		},
	})
}
