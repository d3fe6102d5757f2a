package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daicaxom/tactics-server/internal/battle"
)

type BattleHandler struct {
	service battle.Service
}

func NewBattleHandler(service battle.Service) *BattleHandler {
	return &BattleHandler{service: service}
}

type startBattleRequest struct {
	StageID string `json:"stage_id" validate:"required"`
	TeamID  string `json:"team_id" validate:"required"`
}

// HandleStart fields a team against a stage's enemy roster and registers
// the resulting battle in the session store.
// @Summary Start battle
// @Tags battle
// @Accept json
// @Produce json
// @Param request body startBattleRequest true "Stage and team"
// @Success 200 {object} domain.Battle
// @Router /api/v1/battles [post]
func (h *BattleHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req startBattleRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	result, err := h.service.StartBattle(r.Context(), id, req.StageID, req.TeamID)
	if err != nil {
		respondServiceError(w, r, "start battle", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type attackRequest struct {
	AttackerID string `json:"attacker_id" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
}

// HandleAttack resolves a basic attack against a single target.
// @Summary Execute attack
// @Tags battle
// @Accept json
// @Produce json
// @Param battleID path string true "Battle ID"
// @Param request body attackRequest true "Attacker and target"
// @Success 200 {object} battle.AttackResult
// @Router /api/v1/battles/{battleID}/attack [post]
func (h *BattleHandler) HandleAttack(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	var req attackRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	result, err := h.service.ExecuteAttack(r.Context(), battleID, req.AttackerID, req.TargetID)
	if err != nil {
		respondServiceError(w, r, "execute attack", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type skillRequest struct {
	CasterID  string   `json:"caster_id" validate:"required"`
	SkillID   string   `json:"skill_id" validate:"required"`
	TargetIDs []string `json:"target_ids" validate:"required,min=1,dive,required"`
}

// HandleSkill resolves an active skill against its targets.
// @Summary Execute skill
// @Tags battle
// @Accept json
// @Produce json
// @Param battleID path string true "Battle ID"
// @Param request body skillRequest true "Caster, skill and targets"
// @Success 200 {array} battle.AttackResult
// @Router /api/v1/battles/{battleID}/skill [post]
func (h *BattleHandler) HandleSkill(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	var req skillRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	results, err := h.service.ExecuteSkill(r.Context(), battleID, req.CasterID, req.SkillID, req.TargetIDs)
	if err != nil {
		respondServiceError(w, r, "execute skill", err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

type healRequest struct {
	CasterID       string   `json:"caster_id" validate:"required"`
	TargetIDs      []string `json:"target_ids" validate:"required,min=1,dive,required"`
	ManaCost       int      `json:"mana_cost" validate:"gte=0"`
	HealMultiplier float64  `json:"heal_multiplier" validate:"gte=0"`
	PercentOfMaxHP bool     `json:"percent_of_max_hp"`
}

// HandleHeal resolves a heal against its targets.
// @Summary Execute heal
// @Tags battle
// @Accept json
// @Produce json
// @Param battleID path string true "Battle ID"
// @Param request body healRequest true "Caster, targets, and heal parameters"
// @Success 200 {array} battle.HealResult
// @Router /api/v1/battles/{battleID}/heal [post]
func (h *BattleHandler) HandleHeal(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	var req healRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	results, err := h.service.ExecuteHeal(r.Context(), battleID, req.CasterID, req.TargetIDs, req.ManaCost, req.HealMultiplier, req.PercentOfMaxHP)
	if err != nil {
		respondServiceError(w, r, "execute heal", err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// HandleAdvanceTurn moves the battle to the next actor's turn.
// @Summary Advance turn
// @Tags battle
// @Param battleID path string true "Battle ID"
// @Success 204
// @Router /api/v1/battles/{battleID}/advance-turn [post]
func (h *BattleHandler) HandleAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	if err := h.service.AdvanceTurn(r.Context(), battleID); err != nil {
		respondServiceError(w, r, "advance turn", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAIChooseAction asks the Battle Engine's AI to pick an enemy or
// boss actor's next action.
// @Summary AI choose action
// @Tags battle
// @Produce json
// @Param battleID path string true "Battle ID"
// @Param actorID path string true "Actor ID"
// @Success 200 {object} battle.Action
// @Router /api/v1/battles/{battleID}/actors/{actorID}/ai-action [get]
func (h *BattleHandler) HandleAIChooseAction(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	actorID := chi.URLParam(r, "actorID")
	action, err := h.service.AIChooseAction(r.Context(), battleID, actorID)
	if err != nil {
		respondServiceError(w, r, "choose AI action", err)
		return
	}

	respondJSON(w, http.StatusOK, action)
}

// HandleCheckEnd reports whether the battle has ended and, if so, which
// side won.
// @Summary Check battle end
// @Tags battle
// @Produce json
// @Param battleID path string true "Battle ID"
// @Success 200 {object} domain.BattleResult
// @Router /api/v1/battles/{battleID}/check-end [get]
func (h *BattleHandler) HandleCheckEnd(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	result, err := h.service.CheckEnd(r.Context(), battleID)
	if err != nil {
		respondServiceError(w, r, "check battle end", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleCalculateRewards computes the gold/exp, drop and star rewards
// for a finished battle.
// @Summary Calculate rewards
// @Tags battle
// @Produce json
// @Param battleID path string true "Battle ID"
// @Success 200 {object} domain.BattleRewards
// @Router /api/v1/battles/{battleID}/rewards [post]
func (h *BattleHandler) HandleCalculateRewards(w http.ResponseWriter, r *http.Request) {
	if _, ok := playerID(w, r); !ok {
		return
	}

	battleID := chi.URLParam(r, "battleID")
	rewards, err := h.service.CalculateRewards(r.Context(), battleID)
	if err != nil {
		respondServiceError(w, r, "calculate rewards", err)
		return
	}

	respondJSON(w, http.StatusOK, rewards)
}
