package ws

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/comuno/internal/domain"
	"github.com/mmuslimabdulj/comuno/internal/party"
)

// Source is the room a hub mirrors
type Source interface {
	Code() string
	Snapshot() party.Snapshot
	Subscribe(fn party.Listener) (cancel func())
}

// Hub pushes the snapshots of one room to its attached renderers.
// Room notifications are coalesced: the hub keeps only the newest snapshot
// and stale versions are never sent.
type Hub struct {
	mu     sync.Mutex
	latest party.Snapshot
	seeded bool
	fresh  bool

	source      Source
	clients     map[string]*Client
	register    chan *Client
	unregister  chan *Client
	wake        chan struct{}
	done        chan struct{}
	unsubscribe func()
	log         zerolog.Logger
}

// NewHub creates a hub subscribed to src. Call Run to start delivering.
func NewHub(src Source) *Hub {
	h := &Hub{
		source:     src,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		log:        log.With().Str("module", "ws.hub").Str("room", src.Code()).Logger(),
	}
	// Subscribe before reading so no mutation falls between the two
	h.unsubscribe = src.Subscribe(h.offer)
	h.offer(src.Snapshot())
	h.mu.Lock()
	h.fresh = h.latest.State == domain.StateClosed
	h.mu.Unlock()
	return h
}

// offer runs on the room's mutating goroutine and must not block
func (h *Hub) offer(s party.Snapshot) {
	h.mu.Lock()
	if h.seeded && s.Version <= h.latest.Version {
		h.mu.Unlock()
		return
	}
	h.latest = s
	h.seeded = true
	h.fresh = true
	h.mu.Unlock()
	h.signal()
}

func (h *Hub) signal() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *Hub) take() (party.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fresh := h.fresh
	h.fresh = false
	return h.latest, fresh
}

// Register attaches c. It reports false when the hub has already stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister detaches c
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Done is closed once Run has returned
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount returns the number of attached renderers
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run delivers snapshots until the room closes or ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.unsubscribe()
		h.mu.Lock()
		for id, c := range h.clients {
			close(c.send)
			delete(h.clients, id)
		}
		h.mu.Unlock()
		close(h.done)
		h.log.Debug().Msg("hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			current := h.latest
			h.mu.Unlock()
			if data, err := encode(current); err == nil {
				h.deliver(c, current.Version, data)
			}
			if current.State == domain.StateClosed {
				return
			}

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.ID]; ok {
				delete(h.clients, c.ID)
				close(c.send)
			}
			h.mu.Unlock()

		case <-h.wake:
			snap, fresh := h.take()
			if !fresh {
				continue
			}
			h.broadcast(snap)
			if snap.State == domain.StateClosed {
				return
			}
		}
	}
}

func (h *Hub) broadcast(s party.Snapshot) {
	data, err := encode(s)
	if err != nil {
		h.log.Error().Err(err).Msg("encode snapshot")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.deliver(c, s.Version, data)
	}
}

// deliver sends data unless c already has that version or a newer one
func (h *Hub) deliver(c *Client, version uint64, data []byte) {
	if c.delivered && version <= c.version {
		return
	}
	c.version = version
	c.delivered = true
	c.Send(data)
}
