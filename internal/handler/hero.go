package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/hero"
)

type HeroHandler struct {
	service hero.Service
}

func NewHeroHandler(service hero.Service) *HeroHandler {
	return &HeroHandler{service: service}
}

// HandleList returns every hero the authenticated player owns.
// @Summary List heroes
// @Tags hero
// @Produce json
// @Success 200 {array} domain.Hero
// @Router /api/v1/heroes [get]
func (h *HeroHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	heroes, err := h.service.ListHeroes(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "list heroes", err)
		return
	}

	respondJSON(w, http.StatusOK, heroes)
}

// HandleGet returns a single owned hero.
// @Summary Get hero
// @Tags hero
// @Produce json
// @Param heroID path string true "Hero ID"
// @Success 200 {object} domain.Hero
// @Router /api/v1/heroes/{heroID} [get]
func (h *HeroHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	heroID := chi.URLParam(r, "heroID")
	result, err := h.service.GetHero(r.Context(), id, heroID)
	if err != nil {
		respondServiceError(w, r, "get hero", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type levelUpRequest struct {
	ExpAmount int `json:"exp_amount" validate:"required,gt=0"`
}

// HandleLevelUp awards exp to a hero and applies any level-ups that result.
// @Summary Level up hero
// @Tags hero
// @Accept json
// @Produce json
// @Param heroID path string true "Hero ID"
// @Param request body levelUpRequest true "Exp to award"
// @Success 200 {object} domain.Hero
// @Router /api/v1/heroes/{heroID}/level-up [post]
func (h *HeroHandler) HandleLevelUp(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req levelUpRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	heroID := chi.URLParam(r, "heroID")
	result, levelUpResult, err := h.service.LevelUp(r.Context(), id, heroID, req.ExpAmount)
	if err != nil {
		respondServiceError(w, r, "level up hero", err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Hero   *domain.Hero         `json:"hero"`
		Result domain.LevelUpResult `json:"result"`
	}{Hero: result, Result: levelUpResult})
}

// HandleAscend ascends a hero that meets the ascension requirements.
// @Summary Ascend hero
// @Tags hero
// @Produce json
// @Param heroID path string true "Hero ID"
// @Success 200 {object} domain.Hero
// @Router /api/v1/heroes/{heroID}/ascend [post]
func (h *HeroHandler) HandleAscend(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	heroID := chi.URLParam(r, "heroID")
	result, err := h.service.Ascend(r.Context(), id, heroID)
	if err != nil {
		respondServiceError(w, r, "ascend hero", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleAwaken awakens a hero that meets the awakening requirements.
// @Summary Awaken hero
// @Tags hero
// @Produce json
// @Param heroID path string true "Hero ID"
// @Success 200 {object} domain.Hero
// @Router /api/v1/heroes/{heroID}/awaken [post]
func (h *HeroHandler) HandleAwaken(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	heroID := chi.URLParam(r, "heroID")
	result, err := h.service.Awaken(r.Context(), id, heroID)
	if err != nil {
		respondServiceError(w, r, "awaken hero", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type equipRequest struct {
	Slot        domain.EquipmentSlot `json:"slot" validate:"required"`
	EquipmentID string               `json:"equipment_id" validate:"required"`
}

// HandleEquip equips an owned equipment item into a hero's slot.
// @Summary Equip item
// @Tags hero
// @Accept json
// @Produce json
// @Param heroID path string true "Hero ID"
// @Param request body equipRequest true "Slot and equipment id"
// @Success 200 {object} domain.Hero
// @Router /api/v1/heroes/{heroID}/equip [post]
func (h *HeroHandler) HandleEquip(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req equipRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	heroID := chi.URLParam(r, "heroID")
	result, err := h.service.Equip(r.Context(), id, heroID, req.Slot, req.EquipmentID)
	if err != nil {
		respondServiceError(w, r, "equip item", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type unequipRequest struct {
	Slot domain.EquipmentSlot `json:"slot" validate:"required"`
}

// HandleUnequip removes whatever is equipped in a hero's slot.
// @Summary Unequip item
// @Tags hero
// @Accept json
// @Produce json
// @Param heroID path string true "Hero ID"
// @Param request body unequipRequest true "Slot"
// @Success 200 {object} domain.Hero
// @Router /api/v1/heroes/{heroID}/unequip [post]
func (h *HeroHandler) HandleUnequip(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req unequipRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	heroID := chi.URLParam(r, "heroID")
	result, err := h.service.Unequip(r.Context(), id, heroID, req.Slot)
	if err != nil {
		respondServiceError(w, r, "unequip item", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
