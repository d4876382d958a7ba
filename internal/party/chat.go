package party

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// ChatStream is the append-only, bounded chat log of a room.
// It is not safe for concurrent use; Room serializes access.
type ChatStream struct {
	history  *RingBuffer
	activity ActivitySource
	now      func() time.Time
	posted   int
	evicted  int
	log      zerolog.Logger
}

// NewChatStream creates a stream retaining at most retention messages
func NewChatStream(retention int, activity ActivitySource, now func() time.Time) *ChatStream {
	if now == nil {
		now = time.Now
	}
	return &ChatStream{
		history:  NewRingBuffer(retention),
		activity: activity,
		now:      now,
		log:      log.With().Str("module", "party.chat").Logger(),
	}
}

// Post appends a message and returns it
func (c *ChatStream) Post(author, body, color string) domain.ChatMessage {
	return c.append(domain.ChatMessage{Author: author, Body: body, Color: color})
}

// PostAs appends a message attributed to p, snapshotting name and color
func (c *ChatStream) PostAs(p domain.Participant, body string) domain.ChatMessage {
	return c.append(domain.ChatMessage{
		AuthorID: p.ID,
		Author:   p.DisplayName,
		Body:     body,
		Color:    p.Color,
	})
}

// Tick asks the activity source for a synthetic message from one of the guests
func (c *ChatStream) Tick(guests []domain.Participant) (domain.ChatMessage, bool) {
	if c.activity == nil || len(guests) == 0 {
		return domain.ChatMessage{}, false
	}
	author, body, ok := c.activity.NextMessage(guests)
	if !ok {
		return domain.ChatMessage{}, false
	}
	msg := domain.ChatMessage{
		AuthorID:  author.ID,
		Author:    author.DisplayName,
		Body:      body,
		Color:     author.Color,
		Synthetic: true,
	}
	return c.append(msg), true
}

func (c *ChatStream) append(msg domain.ChatMessage) domain.ChatMessage {
	msg.Timestamp = c.now()
	msg.ID = newMessageID(msg.Timestamp)
	if old, ok := c.history.Add(msg); ok {
		c.evicted++
		c.log.Debug().Str("message", old.ID).Msg("message left the chat window")
	}
	c.posted++
	return msg
}

// Messages returns the retained window, oldest first
func (c *ChatStream) Messages() []domain.ChatMessage {
	return c.history.GetAll()
}

// Len returns the number of retained messages
func (c *ChatStream) Len() int {
	return c.history.Len()
}

// Posted returns how many messages were ever appended, evicted ones included
func (c *ChatStream) Posted() int {
	return c.posted
}

// Evicted returns how many messages fell out of the retained window
func (c *ChatStream) Evicted() int {
	return c.evicted
}

// Clear drops every retained message
func (c *ChatStream) Clear() {
	c.history.Clear()
}
