package ws

import (
	"regexp"
	"strconv"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// roomCodeRegex matches issued room codes (uppercase letters and digits)
var roomCodeRegex = regexp.MustCompile(`^[A-Z0-9]{` + strconv.Itoa(domain.RoomCodeLength) + `}$`)

// IsValidRoomCode validates the room code format before any lookup
func IsValidRoomCode(code string) bool {
	if code == "" {
		return false
	}
	return roomCodeRegex.MatchString(code)
}
