package domain

import (
	"strings"
	"time"
)

// Participant is one member of a watch party roster
type Participant struct {
	ID          string    `json:"id"`
	FriendID    string    `json:"friend_id,omitempty"` // directory entry this participant was admitted from
	DisplayName string    `json:"display_name"`
	Color       string    `json:"color"`
	IsHost      bool      `json:"is_host"`
	CameraOn    bool      `json:"camera_on"`
	MicOn       bool      `json:"mic_on"`
	JoinedAt    time.Time `json:"joined_at"`
}

// NewHost creates the room creator's participant record. Camera and mic start off.
func NewHost(displayName string) Participant {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = DefaultHostName
	}
	return Participant{
		ID:          HostID,
		DisplayName: displayName,
		Color:       HostColor,
		IsHost:      true,
		JoinedAt:    time.Now(),
	}
}

// FirstName returns the first whitespace separated token of a username
func FirstName(username string) string {
	fields := strings.Fields(username)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
