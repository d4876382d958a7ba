package party

import (
	"fmt"
	"slices"
	"time"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// ColorPicker hands out participant accent colors
type ColorPicker interface {
	Next() string
}

// DeviceDefaults decides camera/mic state for a newly admitted participant
type DeviceDefaults func() (cameraOn, micOn bool)

// allOn is the default for admissions under host control
func allOn() (bool, bool) { return true, true }

// Roster is the ordered participant list of one room.
// It is not safe for concurrent use; Room serializes access.
type Roster struct {
	participants []domain.Participant
	colors       ColorPicker
	defaults     DeviceDefaults
	now          func() time.Time
}

// NewRoster creates a roster holding only host
func NewRoster(host domain.Participant, colors ColorPicker, defaults DeviceDefaults) *Roster {
	host.ID = domain.HostID
	host.IsHost = true
	if defaults == nil {
		defaults = allOn
	}
	return &Roster{
		participants: []domain.Participant{host},
		colors:       colors,
		defaults:     defaults,
		now:          time.Now,
	}
}

// Admit adds one participant per entry, in order, and returns them.
// Either every entry is admitted or, for an empty input, nothing changes.
func (r *Roster) Admit(entries []domain.FriendEntry) ([]domain.Participant, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptySelection
	}

	taken := make(map[string]bool, len(r.participants)+len(entries))
	for _, p := range r.participants {
		taken[p.ID] = true
	}

	admitted := make([]domain.Participant, 0, len(entries))
	for _, e := range entries {
		id := mintID(e.ID, taken)
		taken[id] = true

		name := domain.FirstName(e.Username)
		if name == "" {
			name = id
		}
		camera, mic := r.defaults()
		admitted = append(admitted, domain.Participant{
			ID:          id,
			FriendID:    e.ID,
			DisplayName: name,
			Color:       r.colors.Next(),
			CameraOn:    camera,
			MicOn:       mic,
			JoinedAt:    r.now(),
		})
	}

	r.participants = append(r.participants, admitted...)
	return slices.Clone(admitted), nil
}

// mintID prefers the friend id and falls back to a numbered variant when taken
func mintID(friendID string, taken map[string]bool) string {
	base := friendID
	if base == "" || base == domain.HostID {
		base = "guest"
	}
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if !taken[id] {
			return id
		}
	}
}

// Evict removes a non-host participant
func (r *Roster) Evict(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("evict %q: %w", id, domain.ErrNotFound)
	}
	if r.participants[i].IsHost {
		return domain.ErrHostEvictionForbidden
	}
	r.participants = slices.Delete(r.participants, i, i+1)
	return nil
}

// SetCamera sets a participant's camera flag
func (r *Roster) SetCamera(id string, on bool) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("set camera %q: %w", id, domain.ErrNotFound)
	}
	r.participants[i].CameraOn = on
	return nil
}

// SetMic sets a participant's microphone flag
func (r *Roster) SetMic(id string, on bool) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("set mic %q: %w", id, domain.ErrNotFound)
	}
	r.participants[i].MicOn = on
	return nil
}

// Get returns the participant with id
func (r *Roster) Get(id string) (domain.Participant, bool) {
	i := r.index(id)
	if i < 0 {
		return domain.Participant{}, false
	}
	return r.participants[i], true
}

// Host returns the host participant
func (r *Roster) Host() domain.Participant {
	for _, p := range r.participants {
		if p.IsHost {
			return p
		}
	}
	// unreachable: the host can never be evicted
	return domain.Participant{}
}

// IsHost reports whether id identifies the host
func (r *Roster) IsHost(id string) bool {
	p, ok := r.Get(id)
	return ok && p.IsHost
}

// List returns a copy of the roster in admission order
func (r *Roster) List() []domain.Participant {
	return slices.Clone(r.participants)
}

// Guests returns every participant except the host
func (r *Roster) Guests() []domain.Participant {
	out := make([]domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		if !p.IsHost {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of participants, host included
func (r *Roster) Len() int {
	return len(r.participants)
}

func (r *Roster) index(id string) int {
	return slices.IndexFunc(r.participants, func(p domain.Participant) bool {
		return p.ID == id
	})
}
