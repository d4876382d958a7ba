package http

import (
	"net/http"

	"github.com/mmuslimabdulj/comuno/internal/usecase"
)

// HandleFriends serves the invite dialog's directory view: ?q= search, ?filter= mode
func (h *Handler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	mode, err := usecase.ParseFilterMode(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	friends, err := h.directory.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.View(friends, r.URL.Query().Get("q"), mode))
}

// HandleSuggestedFriends serves up to three suggested friends
func (h *Handler) HandleSuggestedFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.directory.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.Suggest(friends))
}
