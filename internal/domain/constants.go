package domain

import "time"

// ==== Room Constants ====

// HostID is the participant id reserved for the room creator
const HostID = "1"

// DefaultHostName is shown for the local user when the identity provider has no name
const DefaultHostName = "Tú"

// HostColor is the accent color of the host tile and chat messages
const HostColor = "#a855f7"

// RoomCodeLength is the number of characters in a room code
const RoomCodeLength = 8

// RoomCodeAlphabet is the character set room codes are drawn from
const RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLinkBase is prefixed to the room code to build the shareable link
const DefaultLinkBase = "comuno.app/watch/"

// ==== Chat Constants ====

// ChatRetention is the number of trailing chat messages kept for display
const ChatRetention = 20

// ==== Timing Constants ====

const (
	// ChatTickInterval is the period of the synthetic chat generator
	ChatTickInterval = 8 * time.Second

	// AmbientTickInterval is the period of the simulated camera/mic toggles
	AmbientTickInterval = 12 * time.Second
)

// ==== Simulation Constants ====

const (
	// ChatTickChance is the probability that a chat tick produces a message
	ChatTickChance = 0.3

	// AmbientCameraOnChance is the probability an ambient-mode participant joins with camera on
	AmbientCameraOnChance = 0.7

	// AmbientMicOnChance is the probability an ambient-mode participant joins with mic on
	AmbientMicOnChance = 0.8
)

// ==== Invitation Constants ====

// MaxSuggestions caps the suggested friends list
const MaxSuggestions = 3
