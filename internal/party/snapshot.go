package party

import (
	"time"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// Snapshot is a read-only copy of a room handed to the rendering layer
type Snapshot struct {
	Code         string               `json:"code"`
	Link         string               `json:"link"`
	Title        string               `json:"title"`
	State        domain.SessionState  `json:"state"`
	Mode         domain.ControlMode   `json:"mode"`
	HostID       string               `json:"host_id"`
	Participants []domain.Participant `json:"participants"`
	Messages     []domain.ChatMessage `json:"messages"`
	ChatVisible  bool                 `json:"chat_visible"`
	Fullscreen   bool                 `json:"fullscreen"`
	Version      uint64               `json:"version"`
	CreatedAt    time.Time            `json:"created_at"`
	StartedAt    *time.Time           `json:"started_at,omitempty"`
}

// Participant looks up a participant in the snapshot
func (s Snapshot) Participant(id string) (domain.Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Participant{}, false
}

// Summary describes a room in the active watch parties list
type Summary struct {
	Code         string              `json:"code"`
	Title        string              `json:"title"`
	HostName     string              `json:"host"`
	Participants int                 `json:"participants"`
	State        domain.SessionState `json:"state"`
	CreatedAt    time.Time           `json:"created_at"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
}
