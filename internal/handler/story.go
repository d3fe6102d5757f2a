package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daicaxom/tactics-server/internal/story"
)

type StoryHandler struct {
	service story.Service
}

func NewStoryHandler(service story.Service) *StoryHandler {
	return &StoryHandler{service: service}
}

// HandleGetProgress returns the authenticated player's story progress.
// @Summary Get story progress
// @Tags story
// @Produce json
// @Success 200 {object} domain.StoryProgress
// @Router /api/v1/story/progress [get]
func (h *StoryHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "get story progress", err)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// HandleIsStageUnlocked reports whether a stage is currently reachable.
// @Summary Check stage unlock
// @Tags story
// @Produce json
// @Param stageID path string true "Stage ID"
// @Success 200 {object} map[string]bool
// @Router /api/v1/story/stages/{stageID}/unlocked [get]
func (h *StoryHandler) HandleIsStageUnlocked(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	stageID := chi.URLParam(r, "stageID")
	unlocked, err := h.service.IsStageUnlocked(r.Context(), id, stageID)
	if err != nil {
		respondServiceError(w, r, "check stage unlock", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"unlocked": unlocked})
}

// HandleStartStage debits stamina and starts a story stage.
// @Summary Start stage
// @Tags story
// @Produce json
// @Param stageID path string true "Stage ID"
// @Success 200 {object} domain.Stage
// @Router /api/v1/story/stages/{stageID}/start [post]
func (h *StoryHandler) HandleStartStage(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	stageID := chi.URLParam(r, "stageID")
	stage, err := h.service.StartStage(r.Context(), id, stageID)
	if err != nil {
		respondServiceError(w, r, "start stage", err)
		return
	}

	respondJSON(w, http.StatusOK, stage)
}
