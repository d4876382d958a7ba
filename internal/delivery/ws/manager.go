package ws

import (
	"context"
	"sync"
)

// HubManager owns one hub per room with attached renderers
type HubManager struct {
	mu   sync.Mutex
	ctx  context.Context
	hubs map[string]*Hub
}

// NewHubManager creates a manager whose hubs stop when ctx is done
func NewHubManager(ctx context.Context) *HubManager {
	return &HubManager{
		ctx:  ctx,
		hubs: make(map[string]*Hub),
	}
}

// Attach returns the running hub for src, starting one if needed
func (m *HubManager) Attach(src Source) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := src.Code()
	if h, ok := m.hubs[code]; ok {
		select {
		case <-h.Done():
		default:
			return h
		}
	}

	h := NewHub(src)
	m.hubs[code] = h
	go func() {
		h.Run(m.ctx)
		m.forget(code, h)
	}()
	return h
}

func (m *HubManager) forget(code string, h *Hub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hubs[code] == h {
		delete(m.hubs, code)
	}
}

// HubCount returns the number of running hubs
func (m *HubManager) HubCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hubs)
}
