package party

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/mmuslimabdulj/comuno/internal/domain"
	"github.com/mmuslimabdulj/comuno/internal/usecase"
)

// Identity is the authenticated user supplied by the identity provider
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Listener receives a snapshot after every successful mutation.
// Listeners run on the mutating goroutine, one snapshot at a time in version
// order, and must not call back into the Room.
type Listener func(Snapshot)

// Options configures a Room. Zero values take the package defaults.
type Options struct {
	Title           string
	Host            Identity
	Mode            domain.ControlMode
	Colors          ColorPicker
	Activity        ActivitySource
	Clock           clock.Clock
	ChatInterval    time.Duration
	AmbientInterval time.Duration
	ChatRetention   int
}

type subscription struct {
	id int
	fn Listener
}

// Room is one watch party session. All roster and chat mutations are
// serialized by mu; timers run in goroutines owned by the room.
// notifyMu is taken before mu is released so listeners observe snapshots
// in version order.
type Room struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	code      string
	link      string
	title     string
	owner     Identity
	mode      domain.ControlMode
	state     domain.SessionState
	createdAt time.Time
	startedAt time.Time

	roster   *Roster
	chat     *ChatStream
	activity ActivitySource

	chatVisible bool
	fullscreen  bool
	version     uint64

	listeners []subscription
	nextSub   int

	clock           clock.Clock
	chatInterval    time.Duration
	ambientInterval time.Duration
	cancel          context.CancelFunc
	timers          *conc.WaitGroup

	onClose func(code string)
	log     zerolog.Logger
}

// NewRoom creates a room in the lobby holding only the host
func NewRoom(id RoomIdentity, opts Options) *Room {
	if opts.Mode == "" {
		opts.Mode = domain.ModeHostControl
	}
	if opts.Colors == nil {
		opts.Colors = usecase.NewPalette()
	}
	if opts.Activity == nil {
		opts.Activity = NewSimulation(SimulationConfig{})
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.ChatInterval <= 0 {
		opts.ChatInterval = domain.ChatTickInterval
	}
	if opts.AmbientInterval <= 0 {
		opts.AmbientInterval = domain.AmbientTickInterval
	}
	if opts.ChatRetention <= 0 {
		opts.ChatRetention = domain.ChatRetention
	}

	defaults := allOn
	if opts.Mode == domain.ModeAmbient {
		defaults = opts.Activity.InitialDevices
	}

	r := &Room{
		code:            id.Code,
		link:            id.Link,
		title:           strings.TrimSpace(opts.Title),
		owner:           opts.Host,
		mode:            opts.Mode,
		state:           domain.StateLobby,
		createdAt:       opts.Clock.Now(),
		activity:        opts.Activity,
		chatVisible:     true,
		clock:           opts.Clock,
		chatInterval:    opts.ChatInterval,
		ambientInterval: opts.AmbientInterval,
		log:             log.With().Str("module", "party.room").Str("room", id.Code).Logger(),
	}
	r.roster = NewRoster(domain.NewHost(opts.Host.DisplayName), opts.Colors, defaults)
	r.roster.now = opts.Clock.Now
	r.chat = NewChatStream(opts.ChatRetention, opts.Activity, opts.Clock.Now)

	r.log.Info().Str("mode", string(r.mode)).Msg("room created")
	return r
}

// Code returns the room code
func (r *Room) Code() string { return r.code }

// Link returns the shareable room link
func (r *Room) Link() string { return r.link }

// Title returns the title of the content being watched
func (r *Room) Title() string { return r.title }

// Owner returns the identity that created the room
func (r *Room) Owner() Identity { return r.owner }

// Mode returns the control mode chosen at creation
func (r *Room) Mode() domain.ControlMode { return r.mode }

// State returns the lifecycle state
func (r *Room) State() domain.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers fn for change notifications. The returned func removes it.
func (r *Room) Subscribe(fn Listener) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == domain.StateClosed {
		return func() {}
	}
	r.nextSub++
	id := r.nextSub
	r.listeners = append(r.listeners, subscription{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.listeners {
			if s.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current room state
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Summary returns the listing entry for this room
func (r *Room) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		Code:      r.code,
		Title:     r.title,
		State:     r.state,
		CreatedAt: r.createdAt,
	}
	if r.roster != nil {
		s.HostName = r.roster.Host().DisplayName
		s.Participants = r.roster.Len()
	}
	if !r.startedAt.IsZero() {
		started := r.startedAt
		s.StartedAt = &started
	}
	return s
}

func (r *Room) snapshotLocked() Snapshot {
	s := Snapshot{
		Code:        r.code,
		Link:        r.link,
		Title:       r.title,
		State:       r.state,
		Mode:        r.mode,
		HostID:      domain.HostID,
		ChatVisible: r.chatVisible,
		Fullscreen:  r.fullscreen,
		Version:     r.version,
		CreatedAt:   r.createdAt,
	}
	if r.roster != nil {
		s.Participants = r.roster.List()
	}
	if r.chat != nil {
		s.Messages = r.chat.Messages()
	}
	if !r.startedAt.IsZero() {
		started := r.startedAt
		s.StartedAt = &started
	}
	return s
}

// update runs fn under the room lock and, when it reports a change,
// notifies listeners with the resulting snapshot before returning.
func (r *Room) update(fn func() (changed bool, err error)) error {
	r.mu.Lock()
	if r.state == domain.StateClosed {
		r.mu.Unlock()
		return domain.ErrRoomClosed
	}
	changed, err := fn()
	if err != nil || !changed {
		r.mu.Unlock()
		return err
	}
	r.version++
	snap := r.snapshotLocked()
	listeners := r.listenersLocked()
	r.notifyMu.Lock()
	r.mu.Unlock()

	notify(listeners, snap)
	r.notifyMu.Unlock()
	return nil
}

func (r *Room) listenersLocked() []Listener {
	out := make([]Listener, len(r.listeners))
	for i, s := range r.listeners {
		out[i] = s.fn
	}
	return out
}

func notify(listeners []Listener, snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}

// ==== Roster ====

// Admit admits directory entries as guests. It implements usecase.Admitter.
func (r *Room) Admit(entries []domain.FriendEntry) ([]domain.Participant, error) {
	var admitted []domain.Participant
	err := r.update(func() (bool, error) {
		var err error
		admitted, err = r.roster.Admit(entries)
		return err == nil, err
	})
	if err != nil {
		return nil, err
	}
	for _, p := range admitted {
		r.log.Info().Str("participant", p.ID).Str("name", p.DisplayName).Msg("participant admitted")
	}
	return admitted, nil
}

// ==== Host Control Plane ====

// authorizeLocked rejects callers that are not the host
func (r *Room) authorizeLocked(callerID string) error {
	if !r.roster.IsHost(callerID) {
		return domain.ErrNotAuthorized
	}
	return nil
}

// Evict removes targetID from the roster. Only the host may evict.
func (r *Room) Evict(callerID, targetID string) error {
	err := r.update(func() (bool, error) {
		if err := r.authorizeLocked(callerID); err != nil {
			return false, err
		}
		if err := r.roster.Evict(targetID); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		r.log.Debug().Err(err).Str("caller", callerID).Str("target", targetID).Msg("evict rejected")
		return err
	}
	r.log.Info().Str("participant", targetID).Msg("participant evicted")
	return nil
}

// SetCamera switches targetID's camera. Only the host may do this, and only under host control.
func (r *Room) SetCamera(callerID, targetID string, on bool) error {
	return r.hostDevice(callerID, func() error { return r.roster.SetCamera(targetID, on) })
}

// SetMic mutes or unmutes targetID. Only the host may do this, and only under host control.
func (r *Room) SetMic(callerID, targetID string, on bool) error {
	return r.hostDevice(callerID, func() error { return r.roster.SetMic(targetID, on) })
}

func (r *Room) hostDevice(callerID string, set func() error) error {
	return r.update(func() (bool, error) {
		if err := r.authorizeLocked(callerID); err != nil {
			return false, err
		}
		if r.mode != domain.ModeHostControl {
			return false, domain.ErrHostControlInactive
		}
		if err := set(); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SetOwnCamera switches the caller's own camera
func (r *Room) SetOwnCamera(participantID string, on bool) error {
	return r.update(func() (bool, error) {
		return true, r.roster.SetCamera(participantID, on)
	})
}

// SetOwnMic switches the caller's own microphone
func (r *Room) SetOwnMic(participantID string, on bool) error {
	return r.update(func() (bool, error) {
		return true, r.roster.SetMic(participantID, on)
	})
}

// ==== Chat ====

// Post appends a message with explicit attribution
func (r *Room) Post(author, body, color string) (domain.ChatMessage, error) {
	var msg domain.ChatMessage
	err := r.update(func() (bool, error) {
		msg = r.chat.Post(author, body, color)
		return true, nil
	})
	return msg, err
}

// PostMessage appends a message from a roster participant
func (r *Room) PostMessage(participantID, body string) (domain.ChatMessage, error) {
	var msg domain.ChatMessage
	err := r.update(func() (bool, error) {
		p, ok := r.roster.Get(participantID)
		if !ok {
			return false, fmt.Errorf("post as %q: %w", participantID, domain.ErrNotFound)
		}
		msg = r.chat.PostAs(p, body)
		return true, nil
	})
	return msg, err
}

// ==== Session Lifecycle ====

// Start moves the room from the lobby to the active session and starts the timers
func (r *Room) Start() error {
	err := r.update(func() (bool, error) {
		if r.state != domain.StateLobby {
			return false, fmt.Errorf("start from %s: %w", r.state, domain.ErrInvalidTransition)
		}
		r.state = domain.StateActive
		r.startedAt = r.clock.Now()

		ctx, cancel := context.WithCancel(context.Background())
		r.cancel = cancel
		r.timers = &conc.WaitGroup{}

		// Tickers are created here, not in the goroutines, so no tick can be missed
		// between Start returning and the loops being scheduled.
		chatTicker := r.clock.Ticker(r.chatInterval)
		r.timers.Go(func() { r.loop(ctx, chatTicker, r.chatTick) })

		if r.mode == domain.ModeAmbient {
			ambientTicker := r.clock.Ticker(r.ambientInterval)
			r.timers.Go(func() { r.loop(ctx, ambientTicker, r.ambientTick) })
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	r.log.Info().Int("participants", r.Summary().Participants).Msg("watch party started")
	return nil
}

// Close ends the session from the lobby or the active state. When Close returns,
// both timers have stopped and no further callback will run.
func (r *Room) Close() error {
	r.mu.Lock()
	if r.state == domain.StateClosed {
		r.mu.Unlock()
		return fmt.Errorf("close: %w", domain.ErrInvalidTransition)
	}
	r.state = domain.StateClosed
	cancel, timers := r.cancel, r.timers
	r.cancel, r.timers = nil, nil

	r.chat.Clear()
	r.roster = nil
	r.chat = nil
	r.chatVisible = false
	r.fullscreen = false

	r.version++
	snap := r.snapshotLocked()
	listeners := r.listenersLocked()
	r.listeners = nil
	onClose := r.onClose
	r.notifyMu.Lock()
	r.mu.Unlock()

	// Timer goroutines blocked on mu see the closed state and never reach notifyMu.
	if cancel != nil {
		cancel()
		timers.Wait()
	}

	notify(listeners, snap)
	r.notifyMu.Unlock()
	if onClose != nil {
		onClose(r.code)
	}
	r.log.Info().Msg("room closed")
	return nil
}

// SetFullscreen hides the chat panel while fullscreen and restores it on exit.
// Tick scheduling is unaffected.
func (r *Room) SetFullscreen(on bool) error {
	return r.update(func() (bool, error) {
		if r.state != domain.StateActive {
			return false, fmt.Errorf("fullscreen in %s: %w", r.state, domain.ErrInvalidTransition)
		}
		r.fullscreen = on
		r.chatVisible = !on
		return true, nil
	})
}

// ToggleChat flips chat panel visibility
func (r *Room) ToggleChat() error {
	return r.update(func() (bool, error) {
		r.chatVisible = !r.chatVisible
		return true, nil
	})
}

// ==== Timers ====

func (r *Room) loop(ctx context.Context, t *clock.Ticker, fire func()) {
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil {
				return
			}
			fire()
		}
	}
}

func (r *Room) chatTick() {
	_ = r.update(func() (bool, error) {
		if r.state != domain.StateActive {
			return false, nil
		}
		msg, ok := r.chat.Tick(r.roster.Guests())
		if ok {
			r.log.Debug().Str("author", msg.Author).Msg("synthetic chat message")
		}
		return ok, nil
	})
}

func (r *Room) ambientTick() {
	_ = r.update(func() (bool, error) {
		if r.state != domain.StateActive || r.mode != domain.ModeAmbient {
			return false, nil
		}
		id, camera, ok := r.activity.NextToggle(r.roster.Guests())
		if !ok {
			return false, nil
		}
		p, found := r.roster.Get(id)
		if !found {
			return false, nil
		}
		if camera {
			return true, r.roster.SetCamera(id, !p.CameraOn)
		}
		return true, r.roster.SetMic(id, !p.MicOn)
	})
}
