package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/team"
)

type TeamHandler struct {
	service team.Service
}

func NewTeamHandler(service team.Service) *TeamHandler {
	return &TeamHandler{service: service}
}

// HandleList returns every team the authenticated player has built.
// @Summary List teams
// @Tags team
// @Produce json
// @Success 200 {array} domain.Team
// @Router /api/v1/teams [get]
func (h *TeamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	teams, err := h.service.ListTeams(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "list teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

type createTeamRequest struct {
	Name  string            `json:"name" validate:"required,max=64"`
	Slots []domain.TeamSlot `json:"slots" validate:"required,min=1,dive"`
}

// HandleCreate builds a new team formation for the authenticated player.
// @Summary Create team
// @Tags team
// @Accept json
// @Produce json
// @Param request body createTeamRequest true "Team name and slots"
// @Success 201 {object} domain.Team
// @Router /api/v1/teams [post]
func (h *TeamHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req createTeamRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	result, err := h.service.CreateTeam(r.Context(), id, req.Name, req.Slots)
	if err != nil {
		respondServiceError(w, r, "create team", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

type updateTeamRequest struct {
	Slots []domain.TeamSlot `json:"slots" validate:"required,min=1,dive"`
}

// HandleUpdate replaces a team's slot formation.
// @Summary Update team
// @Tags team
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param request body updateTeamRequest true "Slots"
// @Success 200 {object} domain.Team
// @Router /api/v1/teams/{teamID} [put]
func (h *TeamHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req updateTeamRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	teamID := chi.URLParam(r, "teamID")
	result, err := h.service.UpdateTeam(r.Context(), id, teamID, req.Slots)
	if err != nil {
		respondServiceError(w, r, "update team", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDelete removes a team.
// @Summary Delete team
// @Tags team
// @Param teamID path string true "Team ID"
// @Success 204
// @Router /api/v1/teams/{teamID} [delete]
func (h *TeamHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	teamID := chi.URLParam(r, "teamID")
	if err := h.service.DeleteTeam(r.Context(), id, teamID); err != nil {
		respondServiceError(w, r, "delete team", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandlePower reports a team's total power: hero power plus element synergy; equipment is not counted.
// @Summary Team power
// @Tags team
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]int
// @Router /api/v1/teams/{teamID}/power [get]
func (h *TeamHandler) HandlePower(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	teamID := chi.URLParam(r, "teamID")
	power, err := h.service.TeamPower(r.Context(), id, teamID)
	if err != nil {
		respondServiceError(w, r, "compute team power", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"power": power})
}
