package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mmuslimabdulj/comuno/internal/domain"
	"github.com/mmuslimabdulj/comuno/internal/party"
)

// Frame types pushed to renderers
const (
	TypeSnapshot = "snapshot"
	TypeClosed   = "closed"
)

// Envelope is the frame written for every pushed snapshot
type Envelope struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Version uint64         `json:"version"`
	SentAt  time.Time      `json:"sent_at"`
	Payload party.Snapshot `json:"payload"`
}

func encode(s party.Snapshot) ([]byte, error) {
	typ := TypeSnapshot
	if s.State == domain.StateClosed {
		typ = TypeClosed
	}
	return json.Marshal(Envelope{
		ID:      uuid.NewString(),
		Type:    typ,
		Version: s.Version,
		SentAt:  time.Now(),
		Payload: s,
	})
}
