package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mmuslimabdulj/comuno/internal/domain"
	"github.com/mmuslimabdulj/comuno/internal/party"
	"github.com/mmuslimabdulj/comuno/internal/usecase"
)

const maxChatLength = 500

// caller identifies who issues a room command. The local renderer is the
// host, so an omitted caller_id means the host.
// caller_id is taken from the client as is: host-only checks in the room are
// only as strong as this identity, and any client that can reach the API may
// act as the host.
type caller struct {
	CallerID string `json:"caller_id"`
}

func (c caller) id() string {
	if c.CallerID == "" {
		return domain.HostID
	}
	return c.CallerID
}

// HandleCreateParty opens a new room in the lobby
func (h *Handler) HandleCreateParty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		HostName string `json:"host_name"`
	}
	if !decode(w, r, &req) {
		return
	}

	hostName := sanitizeText(req.HostName, maxTitleLength)
	if hostName == "" {
		hostName = h.cfg.HostName
	}
	room, err := h.registry.Create(sanitizeTitle(req.Title), party.Identity{
		ID:          uuid.NewString(),
		DisplayName: hostName,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room.Snapshot())
}

// HandleGetParty returns the room snapshot
func (h *Handler) HandleGetParty(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleListParties lists the live rooms, newest first
func (h *Handler) HandleListParties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List())
}

// HandleInvite admits the selected friends
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	var req struct {
		FriendIDs []string `json:"friend_ids"`
	}
	if !decode(w, r, &req) {
		return
	}

	friends, err := h.directory.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	admitted, err := usecase.ConfirmInvitations(friends, usecase.NewSelection(req.FriendIDs...), room)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"admitted": admitted,
		"snapshot": room.Snapshot(),
	})
}

// HandleStart starts the watch party
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	if err := room.Start(); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleClose ends the watch party from the lobby or the session
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	if err := room.Close(); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleChat posts a chat message as a roster participant
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	var req struct {
		caller
		Body string `json:"body"`
	}
	if !decode(w, r, &req) {
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		writeError(w, http.StatusBadRequest, "Message body required")
		return
	}
	if len([]rune(body)) > maxChatLength {
		body = string([]rune(body)[:maxChatLength])
	}

	msg, err := room.PostMessage(req.id(), body)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// HandleToggleChat flips the chat panel visibility
func (h *Handler) HandleToggleChat(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	if err := room.ToggleChat(); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleKick evicts a participant. Only the host may kick.
func (h *Handler) HandleKick(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	var req struct {
		caller
		TargetID string `json:"target_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := room.Evict(req.id(), req.TargetID); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

type deviceRequest struct {
	caller
	TargetID string `json:"target_id"`
	On       bool   `json:"on"`
}

// HandleCamera switches a camera. A caller targeting itself (or nobody)
// toggles its own device; anything else is a host command.
func (h *Handler) HandleCamera(w http.ResponseWriter, r *http.Request) {
	h.handleDevice(w, r, (*party.Room).SetOwnCamera, (*party.Room).SetCamera)
}

// HandleMic mutes or unmutes a microphone, with the same targeting as HandleCamera
func (h *Handler) HandleMic(w http.ResponseWriter, r *http.Request) {
	h.handleDevice(w, r, (*party.Room).SetOwnMic, (*party.Room).SetMic)
}

func (h *Handler) handleDevice(w http.ResponseWriter, r *http.Request,
	own func(*party.Room, string, bool) error,
	host func(*party.Room, string, string, bool) error,
) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	var req deviceRequest
	if !decode(w, r, &req) {
		return
	}

	var err error
	if req.TargetID == "" || req.TargetID == req.id() {
		err = own(room, req.id(), req.On)
	} else {
		err = host(room, req.id(), req.TargetID, req.On)
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleFullscreen enters or leaves fullscreen, hiding or restoring the chat
func (h *Handler) HandleFullscreen(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	var req struct {
		On bool `json:"on"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := room.SetFullscreen(req.On); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleShare returns the invite message and deep links. ?locale= overrides the default.
func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	room, ok := h.room(w, r)
	if !ok {
		return
	}
	locale := h.cfg.Locale
	if l := r.URL.Query().Get("locale"); l != "" {
		locale = domain.ParseLocale(l)
	}
	writeJSON(w, http.StatusOK, usecase.BuildShareLinks(locale, room.Title(), room.Code(), room.Link()))
}
