package domain

import "time"

// OnlineStatus is the presence reported by the friend directory
type OnlineStatus string

const (
	StatusOnline  OnlineStatus = "online"
	StatusOffline OnlineStatus = "offline"
)

// FriendEntry is a read-only row from the friend directory service
type FriendEntry struct {
	ID                   string       `json:"id"`
	Username             string       `json:"username"`
	AvatarRef            string       `json:"avatar"`
	Status               OnlineStatus `json:"status"`
	PriorWatchPartyCount int          `json:"watch_party_count"`
	LastSeenAt           time.Time    `json:"last_seen"`
	Suggested            bool         `json:"is_suggested"`
}

// Online reports whether the friend is currently online
func (f FriendEntry) Online() bool {
	return f.Status == StatusOnline
}
