package http

import (
	"net/http"

	"github.com/mmuslimabdulj/comuno/internal/middleware"
)

// Routes registers every page, API and websocket route. Limiters may be nil.
func (h *Handler) Routes(apiLimiter, wsLimiter *middleware.IPRateLimiter) *http.ServeMux {
	api := func(fn http.HandlerFunc) http.HandlerFunc {
		if apiLimiter == nil {
			return fn
		}
		return middleware.RateLimitFunc(apiLimiter, fn)
	}
	stream := http.HandlerFunc(h.HandleWebSocket)
	if wsLimiter != nil {
		stream = middleware.RateLimitFunc(wsLimiter, h.HandleWebSocket)
	}

	mux := http.NewServeMux()

	// Page routes
	mux.HandleFunc("GET /", h.HandleLobby)

	// Snapshot stream
	mux.HandleFunc("GET /ws", stream)

	// Watch party API
	mux.HandleFunc("POST /api/party", api(h.HandleCreateParty))
	mux.HandleFunc("GET /api/parties", api(h.HandleListParties))
	mux.HandleFunc("GET /api/party/{code}", api(h.HandleGetParty))
	mux.HandleFunc("POST /api/party/{code}/invite", api(h.HandleInvite))
	mux.HandleFunc("POST /api/party/{code}/start", api(h.HandleStart))
	mux.HandleFunc("POST /api/party/{code}/close", api(h.HandleClose))
	mux.HandleFunc("POST /api/party/{code}/chat", api(h.HandleChat))
	mux.HandleFunc("POST /api/party/{code}/chat/toggle", api(h.HandleToggleChat))
	mux.HandleFunc("POST /api/party/{code}/kick", api(h.HandleKick))
	mux.HandleFunc("POST /api/party/{code}/camera", api(h.HandleCamera))
	mux.HandleFunc("POST /api/party/{code}/mic", api(h.HandleMic))
	mux.HandleFunc("POST /api/party/{code}/fullscreen", api(h.HandleFullscreen))
	mux.HandleFunc("GET /api/party/{code}/share", api(h.HandleShare))

	// Friend directory
	mux.HandleFunc("GET /api/friends", api(h.HandleFriends))
	mux.HandleFunc("GET /api/friends/suggested", api(h.HandleSuggestedFriends))

	return mux
}
