package party

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestCreateRoom_CodeFormat(t *testing.T) {
	for i := 0; i < 500; i++ {
		id := CreateRoom("")
		assert.Regexp(t, roomCodePattern, id.Code)
		assert.True(t, strings.Contains(id.Link, id.Code), "link %q must contain code %q", id.Link, id.Code)
	}
}

func TestCreateRoom_DefaultLink(t *testing.T) {
	id := CreateRoom("")
	assert.Equal(t, domain.DefaultLinkBase+id.Code, id.Link)
}

func TestBuildLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"default", "", "comuno.app/watch/ABCD1234"},
		{"trailing slash", "https://comuno.app/watch/", "https://comuno.app/watch/ABCD1234"},
		{"no trailing slash", "https://comuno.app/w", "https://comuno.app/w/ABCD1234"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildLink(tc.base, "ABCD1234"))
		})
	}
}

func TestGenerateRoomCode_UsesWholeAlphabet(t *testing.T) {
	seen := make(map[rune]bool)
	for i := 0; i < 2000; i++ {
		for _, c := range GenerateRoomCode() {
			seen[c] = true
		}
	}
	assert.Len(t, seen, len(domain.RoomCodeAlphabet))
}
