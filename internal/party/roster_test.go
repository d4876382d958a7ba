package party

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuslimabdulj/comuno/internal/domain"
	"github.com/mmuslimabdulj/comuno/internal/usecase"
)

func newTestRoster() *Roster {
	return NewRoster(domain.NewHost("You"), usecase.NewPalette(), nil)
}

func friend(id, username string) domain.FriendEntry {
	return domain.FriendEntry{ID: id, Username: username, Status: domain.StatusOnline}
}

func hostCount(ps []domain.Participant) int {
	n := 0
	for _, p := range ps {
		if p.IsHost {
			n++
		}
	}
	return n
}

func TestRoster_AdmitThenEvict(t *testing.T) {
	r := newTestRoster()

	admitted, err := r.Admit([]domain.FriendEntry{friend("f1", "Pedro Martínez")})
	require.NoError(t, err)
	require.Len(t, admitted, 1)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, domain.HostID, list[0].ID)
	assert.True(t, list[0].IsHost)

	pedro := list[1]
	assert.Equal(t, "f1", pedro.ID)
	assert.Equal(t, "Pedro", pedro.DisplayName)
	assert.False(t, pedro.IsHost)
	assert.True(t, pedro.CameraOn)
	assert.True(t, pedro.MicOn)

	require.NoError(t, r.Evict("f1"))
	list = r.List()
	require.Len(t, list, 1)
	assert.Equal(t, domain.HostID, list[0].ID)
}

func TestRoster_AdmitEmptySelection(t *testing.T) {
	r := newTestRoster()

	_, err := r.Admit(nil)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_HostDefaultsOff(t *testing.T) {
	host := newTestRoster().Host()
	assert.False(t, host.CameraOn)
	assert.False(t, host.MicOn)
	assert.Equal(t, domain.HostColor, host.Color)
}

func TestRoster_EvictHostForbidden(t *testing.T) {
	r := newTestRoster()
	_, err := r.Admit([]domain.FriendEntry{friend("f1", "Pedro")})
	require.NoError(t, err)
	before := r.List()

	assert.ErrorIs(t, r.Evict(domain.HostID), domain.ErrHostEvictionForbidden)
	assert.Equal(t, before, r.List())
}

func TestRoster_NotFound(t *testing.T) {
	r := newTestRoster()

	assert.ErrorIs(t, r.Evict("ghost"), domain.ErrNotFound)
	assert.ErrorIs(t, r.SetCamera("ghost", true), domain.ErrNotFound)
	assert.ErrorIs(t, r.SetMic("ghost", false), domain.ErrNotFound)
}

func TestRoster_IdempotentToggles(t *testing.T) {
	r := newTestRoster()
	_, err := r.Admit([]domain.FriendEntry{friend("f1", "Pedro")})
	require.NoError(t, err)

	require.NoError(t, r.SetCamera("f1", true))
	require.NoError(t, r.SetCamera("f1", true))
	p, _ := r.Get("f1")
	assert.True(t, p.CameraOn)

	require.NoError(t, r.SetMic("f1", false))
	require.NoError(t, r.SetMic("f1", false))
	p, _ = r.Get("f1")
	assert.False(t, p.MicOn)
}

func TestRoster_ColorsRotate(t *testing.T) {
	r := newTestRoster()
	palette := usecase.NewPalette().Colors()

	entries := make([]domain.FriendEntry, 0, len(palette)+2)
	for i := 0; i < len(palette)+2; i++ {
		entries = append(entries, friend(fmt.Sprintf("f%d", i), fmt.Sprintf("Friend %d", i)))
	}
	admitted, err := r.Admit(entries)
	require.NoError(t, err)

	for i, p := range admitted {
		assert.Equal(t, palette[i%len(palette)], p.Color, "participant %d", i)
	}
}

func TestRoster_ReadmissionGetsDistinctID(t *testing.T) {
	r := newTestRoster()

	first, err := r.Admit([]domain.FriendEntry{friend("f1", "Pedro")})
	require.NoError(t, err)
	second, err := r.Admit([]domain.FriendEntry{friend("f1", "Pedro")})
	require.NoError(t, err)

	assert.Equal(t, "f1", first[0].ID)
	assert.Equal(t, "f1-2", second[0].ID)
	assert.Equal(t, "f1", second[0].FriendID)
}

func TestRoster_FriendCannotTakeHostID(t *testing.T) {
	r := newTestRoster()

	admitted, err := r.Admit([]domain.FriendEntry{friend(domain.HostID, "Impostor")})
	require.NoError(t, err)
	assert.NotEqual(t, domain.HostID, admitted[0].ID)
	assert.Equal(t, 1, hostCount(r.List()))
}

func TestRoster_InvariantsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	r := newTestRoster()

	for step := 0; step < 2000; step++ {
		if rng.IntN(3) > 0 {
			n := rng.IntN(3) + 1
			entries := make([]domain.FriendEntry, n)
			for i := range entries {
				id := fmt.Sprintf("f%d", rng.IntN(6))
				entries[i] = friend(id, "Friend "+id)
			}
			_, err := r.Admit(entries)
			require.NoError(t, err)
		} else {
			list := r.List()
			target := list[rng.IntN(len(list))]
			err := r.Evict(target.ID)
			if target.IsHost {
				require.ErrorIs(t, err, domain.ErrHostEvictionForbidden)
			} else {
				require.NoError(t, err)
			}
		}

		list := r.List()
		require.Equal(t, 1, hostCount(list), "step %d", step)
		seen := make(map[string]bool, len(list))
		for _, p := range list {
			require.False(t, seen[p.ID], "duplicate id %s at step %d", p.ID, step)
			seen[p.ID] = true
		}
	}
}
