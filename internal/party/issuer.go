package party

import (
	"crypto/rand"
	"strings"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// RoomIdentity is the code and shareable link issued once per lobby
type RoomIdentity struct {
	Code string `json:"code"`
	Link string `json:"link"`
}

// CreateRoom issues a fresh room code and its link under linkBase
func CreateRoom(linkBase string) RoomIdentity {
	code := GenerateRoomCode()
	return RoomIdentity{Code: code, Link: BuildLink(linkBase, code)}
}

// BuildLink interpolates code into the link base
func BuildLink(linkBase, code string) string {
	if linkBase == "" {
		linkBase = domain.DefaultLinkBase
	}
	if !strings.HasSuffix(linkBase, "/") {
		linkBase += "/"
	}
	return linkBase + code
}

// GenerateRoomCode samples RoomCodeLength characters uniformly from RoomCodeAlphabet
func GenerateRoomCode() string {
	const alphabet = domain.RoomCodeAlphabet
	// Largest multiple of len(alphabet) below 256; higher bytes are rejected to keep
	// the distribution uniform.
	const limit = 256 - 256%len(alphabet)

	out := make([]byte, 0, domain.RoomCodeLength)
	buf := make([]byte, domain.RoomCodeLength*2)
	for len(out) < domain.RoomCodeLength {
		if _, err := rand.Read(buf); err != nil {
			panic("party: crypto/rand unavailable: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == domain.RoomCodeLength {
				break
			}
		}
	}
	return string(out)
}
