package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/comuno/internal/config"
	"github.com/mmuslimabdulj/comuno/internal/delivery/ws"
	"github.com/mmuslimabdulj/comuno/internal/domain"
	"github.com/mmuslimabdulj/comuno/internal/party"
	"github.com/mmuslimabdulj/comuno/internal/usecase"
	"github.com/mmuslimabdulj/comuno/view/pages"
)

const (
	maxTitleLength = 80
	maxBodyBytes   = 8 << 10
	defaultTitle   = "Watch Party"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	controlCharRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// sanitizeText trims, strips tags and control characters and caps the length
func sanitizeText(s string, limit int) string {
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = controlCharRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > limit {
		s = strings.TrimSpace(string([]rune(s)[:limit]))
	}
	return s
}

// sanitizeTitle cleans the title of the content being watched
func sanitizeTitle(title string) string {
	title = sanitizeText(title, maxTitleLength)
	if title == "" {
		return defaultTitle
	}
	return title
}

type Handler struct {
	cfg       *config.Config
	registry  *party.Registry
	directory usecase.Directory
	hubs      *ws.HubManager
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

func NewHandler(cfg *config.Config, registry *party.Registry, directory usecase.Directory, hubs *ws.HubManager) *Handler {
	h := &Handler{
		cfg:       cfg,
		registry:  registry,
		directory: directory,
		hubs:      hubs,
		log:       log.With().Str("module", "http").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return cfg.OriginAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

// errorStatus maps domain failures to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthorized),
		errors.Is(err, domain.ErrHostEvictionForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRoomClosed),
		errors.Is(err, domain.ErrHostControlInactive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCodeSpaceExhausted):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, err.Error())
}

// decode reads a bounded JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid request")
	return false
}

func (h *Handler) room(w http.ResponseWriter, r *http.Request) (*party.Room, bool) {
	code := strings.ToUpper(r.PathValue("code"))
	if !ws.IsValidRoomCode(code) {
		writeError(w, http.StatusNotFound, "Room not found")
		return nil, false
	}
	room, err := h.registry.Get(code)
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return room, true
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
}

// HandleLobby serves the lobby page. ?room=CODE selects a room to show.
func (h *Handler) HandleLobby(w http.ResponseWriter, r *http.Request) {
	noCache(w)
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := pages.LobbyData{Parties: h.registry.List()}
	if code := strings.ToUpper(r.URL.Query().Get("room")); ws.IsValidRoomCode(code) {
		if room, err := h.registry.Get(code); err == nil {
			snap := room.Snapshot()
			share := usecase.BuildShareLinks(h.cfg.Locale, snap.Title, snap.Code, snap.Link)
			data.Room, data.Share = &snap, &share
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Lobby(data).Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("render lobby")
	}
}

// HandleWebSocket upgrades to a websocket that streams the room's snapshots
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("room"))
	if code == "" {
		http.Error(w, "Room code required", http.StatusBadRequest)
		return
	}
	if !ws.IsValidRoomCode(code) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	room, err := h.registry.Get(code)
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	hub := h.hubs.Attach(room)
	client := ws.NewClient(hub, conn)
	if !hub.Register(client) {
		conn.Close()
		return
	}
	h.log.Debug().Str("room", code).Str("client", client.ID).Msg("renderer attached")

	go client.WritePump()
	go client.ReadPump()
}
