package domain

import "time"

// ChatMessage is one entry of the room chat stream.
// Author and Color are snapshots taken at send time.
type ChatMessage struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id,omitempty"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
	Synthetic bool      `json:"synthetic,omitempty"` // produced by the ambient generator
}

// SessionState is the lifecycle stage of a room
type SessionState string

const (
	StateLobby  SessionState = "lobby"
	StateActive SessionState = "active"
	StateClosed SessionState = "closed"
)

// ControlMode selects who drives participant camera/mic state for the whole session
type ControlMode string

const (
	// ModeHostControl lets the host mute/unmute and switch cameras
	ModeHostControl ControlMode = "host"
	// ModeAmbient hands camera/mic state to the ambient simulation
	ModeAmbient ControlMode = "ambient"
)

// ParseControlMode maps a config string to a ControlMode, defaulting to host control
func ParseControlMode(s string) ControlMode {
	if ControlMode(s) == ModeAmbient {
		return ModeAmbient
	}
	return ModeHostControl
}

// Locale picks the language of generated text
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// ParseLocale maps a config string to a supported Locale, defaulting to Spanish
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleEN {
		return LocaleEN
	}
	return LocaleES
}
