package handler

import (
	"net/http"

	"github.com/daicaxom/tactics-server/internal/player"
)

type PlayerHandler struct {
	service player.Service
}

func NewPlayerHandler(service player.Service) *PlayerHandler {
	return &PlayerHandler{service: service}
}

// HandleGetProfile returns the authenticated player's profile.
// @Summary Get player profile
// @Tags player
// @Produce json
// @Success 200 {object} domain.Player
// @Router /api/v1/player/profile [get]
func (h *PlayerHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
