package party

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// maxCodeAttempts bounds room code regeneration on collision
const maxCodeAttempts = 10

// Defaults are applied to every room created by a Registry
type Defaults struct {
	Mode            domain.ControlMode
	Locale          domain.Locale
	LinkBase        string
	ChatInterval    time.Duration
	AmbientInterval time.Duration
	ChatRetention   int
	Clock           clock.Clock

	// NewActivity builds the activity source of each room; nil uses a fresh Simulation
	NewActivity func() ActivitySource
	// NewColors builds the palette of each room; nil uses the default palette
	NewColors func() ColorPicker
}

// Registry tracks live rooms by code. Closed rooms are forgotten.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	defaults Defaults
	newCode  func() string
}

// NewRegistry creates an empty registry
func NewRegistry(defaults Defaults) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		defaults: defaults,
		newCode:  GenerateRoomCode,
	}
}

// Create issues a room identity unique among live rooms and opens its lobby
func (rg *Registry) Create(title string, host Identity) (*Room, error) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	code := ""
	for i := 0; i < maxCodeAttempts; i++ {
		candidate := rg.newCode()
		if _, exists := rg.rooms[candidate]; !exists {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, fmt.Errorf("create room: %w", domain.ErrCodeSpaceExhausted)
	}

	d := rg.defaults
	var activity ActivitySource
	if d.NewActivity != nil {
		activity = d.NewActivity()
	} else {
		activity = NewSimulation(SimulationConfig{Locale: d.Locale})
	}
	var colors ColorPicker
	if d.NewColors != nil {
		colors = d.NewColors()
	}

	room := NewRoom(RoomIdentity{Code: code, Link: BuildLink(d.LinkBase, code)}, Options{
		Title:           title,
		Host:            host,
		Mode:            d.Mode,
		Colors:          colors,
		Activity:        activity,
		Clock:           d.Clock,
		ChatInterval:    d.ChatInterval,
		AmbientInterval: d.AmbientInterval,
		ChatRetention:   d.ChatRetention,
	})
	room.onClose = rg.remove
	rg.rooms[code] = room

	log.Debug().Str("module", "party.registry").Int("rooms", len(rg.rooms)).Msg("room registered")
	return room, nil
}

// Get returns the live room with code
func (rg *Registry) Get(code string) (*Room, error) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	room, ok := rg.rooms[code]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, domain.ErrRoomNotFound)
	}
	return room, nil
}

// List summarizes live rooms, most recently created first
func (rg *Registry) List() []Summary {
	rg.mu.RLock()
	rooms := make([]*Room, 0, len(rg.rooms))
	for _, r := range rg.rooms {
		rooms = append(rooms, r)
	}
	rg.mu.RUnlock()

	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Code < out[j].Code
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of live rooms
func (rg *Registry) Count() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return len(rg.rooms)
}

// CloseAll closes every live room, used on shutdown
func (rg *Registry) CloseAll() {
	rg.mu.RLock()
	rooms := make([]*Room, 0, len(rg.rooms))
	for _, r := range rg.rooms {
		rooms = append(rooms, r)
	}
	rg.mu.RUnlock()

	for _, r := range rooms {
		_ = r.Close()
	}
}

func (rg *Registry) remove(code string) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	delete(rg.rooms, code)
}
