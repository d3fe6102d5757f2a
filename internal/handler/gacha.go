package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/gacha"
)

type GachaHandler struct {
	service gacha.Service
}

func NewGachaHandler(service gacha.Service) *GachaHandler {
	return &GachaHandler{service: service}
}

type pullRequest struct {
	Count int `json:"count" validate:"required,gt=0,lte=10"`
}

type pullResponse struct {
	Results []gacha.PullResult  `json:"results"`
	Pity    domain.PityCounter `json:"pity"`
}

// HandlePull draws count heroes from a banner, applying pity and
// featured rate-up.
// @Summary Pull banner
// @Tags gacha
// @Accept json
// @Produce json
// @Param bannerID path string true "Banner ID"
// @Param request body pullRequest true "Pull count"
// @Success 200 {object} pullResponse
// @Router /api/v1/gacha/{bannerID}/pull [post]
func (h *GachaHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req pullRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	bannerID := chi.URLParam(r, "bannerID")
	results, pity, err := h.service.Pull(r.Context(), id, bannerID, req.Count)
	if err != nil {
		respondServiceError(w, r, "pull banner", err)
		return
	}

	respondJSON(w, http.StatusOK, pullResponse{Results: results, Pity: pity})
}

// HandleGetPity returns the player's current pity counter for a banner.
// @Summary Get pity counter
// @Tags gacha
// @Produce json
// @Param bannerID path string true "Banner ID"
// @Success 200 {object} domain.PityCounter
// @Router /api/v1/gacha/{bannerID}/pity [get]
func (h *GachaHandler) HandleGetPity(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	bannerID := chi.URLParam(r, "bannerID")
	pity, err := h.service.GetPity(r.Context(), id, bannerID)
	if err != nil {
		respondServiceError(w, r, "get pity", err)
		return
	}

	respondJSON(w, http.StatusOK, pity)
}

// HandleGetHistory returns the player's most recent pulls, up to domain.GachaHistoryCap.
// @Summary Get pull history
// @Tags gacha
// @Produce json
// @Success 200 {array} domain.PullRecord
// @Router /api/v1/gacha/history [get]
func (h *GachaHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	history, err := h.service.GetHistory(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "get pull history", err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}
