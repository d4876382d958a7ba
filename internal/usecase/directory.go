package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// Directory is the friend directory service consumed by the invitation flow.
// The core never writes back to it.
type Directory interface {
	List(ctx context.Context) ([]domain.FriendEntry, error)
}

// StaticDirectory serves a fixed in-memory friend list
type StaticDirectory struct {
	mu      sync.RWMutex
	entries []domain.FriendEntry
}

// NewStaticDirectory creates a directory over the given entries
func NewStaticDirectory(entries []domain.FriendEntry) *StaticDirectory {
	cp := make([]domain.FriendEntry, len(entries))
	copy(cp, entries)
	return &StaticDirectory{entries: cp}
}

// List returns a copy of the directory entries
func (d *StaticDirectory) List(ctx context.Context) ([]domain.FriendEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.FriendEntry, len(d.entries))
	copy(out, d.entries)
	return out, nil
}

// SampleFriends returns the demo friend list, last-seen times relative to now
func SampleFriends(now time.Time) []domain.FriendEntry {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	return []domain.FriendEntry{
		{ID: "f1", Username: "Andrés López", AvatarRef: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150", Status: domain.StatusOnline, PriorWatchPartyCount: 15, LastSeenAt: ago(5 * time.Minute), Suggested: true},
		{ID: "f2", Username: "Carmen Vega", AvatarRef: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=150", Status: domain.StatusOnline, PriorWatchPartyCount: 12, LastSeenAt: ago(10 * time.Minute), Suggested: true},
		{ID: "f3", Username: "José Ruiz", AvatarRef: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150", Status: domain.StatusOnline, PriorWatchPartyCount: 8, LastSeenAt: ago(15 * time.Minute)},
		{ID: "f4", Username: "Isabel Moreno", AvatarRef: "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?w=150", Status: domain.StatusOffline, PriorWatchPartyCount: 10, LastSeenAt: ago(2 * time.Hour)},
		{ID: "f5", Username: "Fernando Castro", AvatarRef: "https://images.unsplash.com/photo-1519345182560-3f2917c472ef?w=150", Status: domain.StatusOnline, PriorWatchPartyCount: 6, LastSeenAt: ago(20 * time.Minute)},
		{ID: "f6", Username: "Laura Méndez", AvatarRef: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150", Status: domain.StatusOnline, PriorWatchPartyCount: 18, LastSeenAt: ago(3 * time.Minute), Suggested: true},
		{ID: "f7", Username: "Miguel Ángel", AvatarRef: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150", Status: domain.StatusOffline, PriorWatchPartyCount: 4, LastSeenAt: ago(5 * time.Hour)},
		{ID: "f8", Username: "Sofía Ramírez", AvatarRef: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=150", Status: domain.StatusOnline, PriorWatchPartyCount: 7, LastSeenAt: ago(8 * time.Minute)},
	}
}
