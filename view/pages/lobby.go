package pages

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/comuno/internal/party"
	"github.com/mmuslimabdulj/comuno/internal/usecase"
)

// LobbyData is what the lobby page shows
type LobbyData struct {
	Parties []party.Summary
	Room    *party.Snapshot
	Share   *usecase.ShareLinks
}

// Lobby renders the watch party lobby: the open parties and, when a room is
// selected, its code, link, roster and share links.
func Lobby(data LobbyData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>COMUNO · Watch Party</title></head><body>`)
		b.WriteString(`<main class="lobby"><h1>COMUNO Watch Party</h1>`)

		if data.Room != nil {
			writeRoom(&b, *data.Room, data.Share)
		}
		writeParties(&b, data.Parties)

		b.WriteString(`</main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeRoom(b *strings.Builder, s party.Snapshot, share *usecase.ShareLinks) {
	e := html.EscapeString
	fmt.Fprintf(b, `<section class="room" data-code="%s" data-version="%d">`, e(s.Code), s.Version)
	fmt.Fprintf(b, `<h2>%s</h2>`, e(s.Title))
	fmt.Fprintf(b, `<p class="code">%s</p><p class="link">%s</p>`, e(s.Code), e(s.Link))
	fmt.Fprintf(b, `<p class="state">%s</p>`, e(string(s.State)))

	b.WriteString(`<ul class="participants">`)
	for _, p := range s.Participants {
		fmt.Fprintf(b, `<li style="color:%s" data-camera="%t" data-mic="%t">%s</li>`,
			e(p.Color), p.CameraOn, p.MicOn, e(p.DisplayName))
	}
	b.WriteString(`</ul>`)

	if share != nil {
		fmt.Fprintf(b, `<p class="share">%s</p>`, e(share.Message))
		fmt.Fprintf(b, `<nav class="share-links"><a href="%s">WhatsApp</a><a href="%s">Email</a><a href="%s">SMS</a><a href="%s">Facebook</a></nav>`,
			e(share.WhatsApp), e(share.Email), e(share.SMS), e(share.Facebook))
	}
	b.WriteString(`</section>`)
}

func writeParties(b *strings.Builder, parties []party.Summary) {
	e := html.EscapeString
	b.WriteString(`<section class="parties"><h2>Watch Parties</h2>`)
	if len(parties) == 0 {
		b.WriteString(`<p class="empty">No hay watch parties activas</p></section>`)
		return
	}
	b.WriteString(`<ul>`)
	for _, p := range parties {
		fmt.Fprintf(b, `<li data-code="%s"><strong>%s</strong> · %s · %d · %s</li>`,
			e(p.Code), e(p.Title), e(p.HostName), p.Participants, e(string(p.State)))
	}
	b.WriteString(`</ul></section>`)
}
