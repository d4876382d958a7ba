package usecase

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// FilterMode selects how the friend directory is narrowed or ordered
type FilterMode string

const (
	FilterAll      FilterMode = "all"
	FilterOnline   FilterMode = "online"
	FilterRecent   FilterMode = "recent"
	FilterFrequent FilterMode = "frequent"
)

// ParseFilterMode validates a filter name. Empty means FilterAll.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterOnline, FilterRecent, FilterFrequent:
		return FilterMode(s), nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Admitter admits directory entries into a room roster
type Admitter interface {
	Admit(entries []domain.FriendEntry) ([]domain.Participant, error)
}

// Search returns entries whose username contains query, ignoring case.
// An empty query returns the directory unchanged.
func Search(directory []domain.FriendEntry, query string) []domain.FriendEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.FriendEntry, 0, len(directory))
	for _, f := range directory {
		if q == "" || strings.Contains(strings.ToLower(f.Username), q) {
			out = append(out, f)
		}
	}
	return out
}

// Filter applies mode to a copy of directory. Sorting modes never drop entries.
func Filter(directory []domain.FriendEntry, mode FilterMode) []domain.FriendEntry {
	out := make([]domain.FriendEntry, 0, len(directory))
	switch mode {
	case FilterOnline:
		for _, f := range directory {
			if f.Online() {
				out = append(out, f)
			}
		}
	case FilterRecent:
		out = append(out, directory...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastSeenAt.After(out[j].LastSeenAt)
		})
	case FilterFrequent:
		out = append(out, directory...)
		sortByFrequency(out)
	default:
		out = append(out, directory...)
	}
	return out
}

// View is the directory as the invite dialog shows it: search, then filter
func View(directory []domain.FriendEntry, query string, mode FilterMode) []domain.FriendEntry {
	return Filter(Search(directory, query), mode)
}

// Suggest returns up to MaxSuggestions suggested friends, most frequent first
func Suggest(directory []domain.FriendEntry) []domain.FriendEntry {
	out := make([]domain.FriendEntry, 0, domain.MaxSuggestions)
	for _, f := range directory {
		if f.Suggested {
			out = append(out, f)
		}
	}
	sortByFrequency(out)
	if len(out) > domain.MaxSuggestions {
		out = out[:domain.MaxSuggestions]
	}
	return out
}

func sortByFrequency(entries []domain.FriendEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PriorWatchPartyCount > entries[j].PriorWatchPartyCount
	})
}

// Selection is the caller-held set of friends picked in the invite dialog.
// It keeps the order in which ids were selected.
type Selection struct {
	ids []string
}

// NewSelection creates a selection holding ids, duplicates dropped
func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		if !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// IDs returns the selected ids in selection order
func (s *Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of selected friends
func (s *Selection) Len() int {
	return len(s.ids)
}

// Contains reports whether id is selected
func (s *Selection) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Toggle selects id when absent and deselects it when present
func (s *Selection) Toggle(id string) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// SelectOnline replaces the selection with every online friend in directory
func (s *Selection) SelectOnline(directory []domain.FriendEntry) {
	s.replace(Filter(directory, FilterOnline))
}

// SelectAll replaces the selection with every entry of the current view
func (s *Selection) SelectAll(view []domain.FriendEntry) {
	s.replace(view)
}

// SelectSuggested replaces the selection with the suggested friends
func (s *Selection) SelectSuggested(directory []domain.FriendEntry) {
	s.replace(Suggest(directory))
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = nil
}

func (s *Selection) replace(entries []domain.FriendEntry) {
	s.ids = make([]string, 0, len(entries))
	for _, f := range entries {
		s.ids = append(s.ids, f.ID)
	}
}

// ConfirmInvitations admits the selected friends into room.
// Entries are admitted in directory order; ids missing from the directory are ignored.
// On success the selection is cleared.
func ConfirmInvitations(directory []domain.FriendEntry, sel *Selection, room Admitter) ([]domain.Participant, error) {
	if sel == nil || sel.Len() == 0 {
		return nil, domain.ErrEmptySelection
	}

	chosen := make([]domain.FriendEntry, 0, sel.Len())
	for _, f := range directory {
		if sel.Contains(f.ID) {
			chosen = append(chosen, f)
		}
	}
	if len(chosen) == 0 {
		return nil, domain.ErrEmptySelection
	}

	admitted, err := room.Admit(chosen)
	if err != nil {
		return nil, fmt.Errorf("confirm invitations: %w", err)
	}
	sel.Clear()
	return admitted, nil
}
