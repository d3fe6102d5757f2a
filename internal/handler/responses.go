package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a domain error to an HTTP status and message,
// logs the underlying error, and writes the response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName, "error", err)
	status, msg := mapServiceError(err)
	respondError(w, status, msg)
}

// mapServiceError maps domain errors to user-facing HTTP responses.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrHeroNotFound),
		errors.Is(err, domain.ErrEquipmentNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrStageNotFound),
		errors.Is(err, domain.ErrBannerNotFound),
		errors.Is(err, domain.ErrBattleNotFound),
		errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrDuplicatePlayer):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrAccessDenied):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrInsufficientGold),
		errors.Is(err, domain.ErrInsufficientGems),
		errors.Is(err, domain.ErrInsufficientStamina),
		errors.Is(err, domain.ErrInsufficientExp),
		errors.Is(err, domain.ErrInsufficientMana),
		errors.Is(err, domain.ErrHeroAlreadyMaxLevel),
		errors.Is(err, domain.ErrAscensionLocked),
		errors.Is(err, domain.ErrAwakeningLocked),
		errors.Is(err, domain.ErrEquipmentSlotMismatch),
		errors.Is(err, domain.ErrEquipmentLevelReq),
		errors.Is(err, domain.ErrEquipmentElementReq),
		errors.Is(err, domain.ErrEquipmentMaxLevel),
		errors.Is(err, domain.ErrFusionInputCount),
		errors.Is(err, domain.ErrTeamFull),
		errors.Is(err, domain.ErrTeamCapExceeded),
		errors.Is(err, domain.ErrDuplicatePosition),
		errors.Is(err, domain.ErrDuplicateHeroInTeam),
		errors.Is(err, domain.ErrDefaultTeamUndeletable),
		errors.Is(err, domain.ErrChapterLocked),
		errors.Is(err, domain.ErrStageLocked),
		errors.Is(err, domain.ErrBattleNotInProgress),
		errors.Is(err, domain.ErrNotPlayerTurn),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, domain.ErrCharacterDead),
		errors.Is(err, domain.ErrSkillNotReady),
		errors.Is(err, domain.ErrInvalidTargets),
		errors.Is(err, domain.ErrInvalidPullCount),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}
