package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

type mockAdmitter struct {
	mock.Mock
}

func (m *mockAdmitter) Admit(entries []domain.FriendEntry) ([]domain.Participant, error) {
	args := m.Called(entries)
	ps, _ := args.Get(0).([]domain.Participant)
	return ps, args.Error(1)
}

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ids(entries []domain.FriendEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	friends := SampleFriends(epoch)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all", "", ids(friends)},
		{"blank returns all", "   ", ids(friends)},
		{"case insensitive", "CARMEN", []string{"f2"}},
		{"substring", "ra", []string{"f6", "f8"}},
		{"accent kept", "ángel", []string{"f7"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Search(friends, tt.query)))
		})
	}
}

func TestFilter_Online(t *testing.T) {
	got := Filter(SampleFriends(epoch), FilterOnline)
	assert.Equal(t, []string{"f1", "f2", "f3", "f5", "f6", "f8"}, ids(got))
}

func TestFilter_Recent(t *testing.T) {
	got := Filter(SampleFriends(epoch), FilterRecent)
	assert.Equal(t, []string{"f6", "f1", "f8", "f2", "f3", "f5", "f4", "f7"}, ids(got))
}

func TestFilter_Frequent(t *testing.T) {
	got := Filter(SampleFriends(epoch), FilterFrequent)
	assert.Equal(t, []string{"f6", "f1", "f2", "f4", "f3", "f8", "f5", "f7"}, ids(got))
}

func TestFilter_StableOnTies(t *testing.T) {
	dir := []domain.FriendEntry{
		{ID: "a", PriorWatchPartyCount: 3},
		{ID: "b", PriorWatchPartyCount: 5},
		{ID: "c", PriorWatchPartyCount: 3},
		{ID: "d", PriorWatchPartyCount: 5},
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(Filter(dir, FilterFrequent)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Filter(dir, FilterRecent)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(dir), "input must not be reordered")
}

func TestParseFilterMode(t *testing.T) {
	m, err := ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, m)

	m, err = ParseFilterMode("frequent")
	require.NoError(t, err)
	assert.Equal(t, FilterFrequent, m)

	_, err = ParseFilterMode("popular")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	got := Suggest(SampleFriends(epoch))
	assert.Equal(t, []string{"f6", "f1", "f2"}, ids(got))

	many := make([]domain.FriendEntry, 0, 5)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		many = append(many, domain.FriendEntry{ID: id, Suggested: true, PriorWatchPartyCount: i})
	}
	assert.Equal(t, []string{"e", "d", "c"}, ids(Suggest(many)))
	assert.Empty(t, Suggest([]domain.FriendEntry{{ID: "x"}}))
}

func TestSelection_Helpers(t *testing.T) {
	friends := SampleFriends(epoch)
	sel := NewSelection("f3", "f3", "f4")
	assert.Equal(t, []string{"f3", "f4"}, sel.IDs())

	sel.Toggle("f4")
	sel.Toggle("f5")
	assert.Equal(t, []string{"f3", "f5"}, sel.IDs())

	sel.SelectOnline(friends)
	assert.Equal(t, []string{"f1", "f2", "f3", "f5", "f6", "f8"}, sel.IDs())

	sel.SelectSuggested(friends)
	assert.Equal(t, []string{"f6", "f1", "f2"}, sel.IDs())

	sel.SelectAll(View(friends, "a", FilterOnline))
	assert.True(t, sel.Contains("f2"))
	assert.False(t, sel.Contains("f4"), "offline friends are outside the online view")

	sel.Clear()
	assert.Zero(t, sel.Len())
}

func TestConfirmInvitations_EmptySelection(t *testing.T) {
	room := &mockAdmitter{}

	_, err := ConfirmInvitations(SampleFriends(epoch), NewSelection(), room)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	_, err = ConfirmInvitations(SampleFriends(epoch), nil, room)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	_, err = ConfirmInvitations(SampleFriends(epoch), NewSelection("ghost"), room)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	room.AssertNotCalled(t, "Admit", mock.Anything)
}

func TestConfirmInvitations_AdmitsInDirectoryOrder(t *testing.T) {
	friends := SampleFriends(epoch)
	room := &mockAdmitter{}
	want := []domain.Participant{{ID: "f2"}, {ID: "f5"}}
	room.On("Admit", mock.MatchedBy(func(entries []domain.FriendEntry) bool {
		return assert.ObjectsAreEqual([]string{"f2", "f5"}, ids(entries))
	})).Return(want, nil).Once()

	sel := NewSelection("f5", "f2")
	got, err := ConfirmInvitations(friends, sel, room)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Zero(t, sel.Len(), "selection is cleared after a successful confirm")
	room.AssertExpectations(t)
}

func TestConfirmInvitations_KeepsSelectionOnFailure(t *testing.T) {
	room := &mockAdmitter{}
	room.On("Admit", mock.Anything).Return(nil, domain.ErrRoomClosed)

	sel := NewSelection("f1")
	_, err := ConfirmInvitations(SampleFriends(epoch), sel, room)
	assert.True(t, errors.Is(err, domain.ErrRoomClosed))
	assert.Equal(t, 1, sel.Len())
}
