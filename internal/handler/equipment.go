package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daicaxom/tactics-server/internal/equipment"
)

type EquipmentHandler struct {
	service equipment.Service
}

func NewEquipmentHandler(service equipment.Service) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// HandleList returns every equipment item the authenticated player owns.
// @Summary List equipment
// @Tags equipment
// @Produce json
// @Success 200 {array} domain.Equipment
// @Router /api/v1/equipment [get]
func (h *EquipmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListEquipment(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "list equipment", err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// HandleEnhance raises an equipment item's level by one.
// @Summary Enhance equipment
// @Tags equipment
// @Produce json
// @Param equipmentID path string true "Equipment ID"
// @Success 200 {object} domain.Equipment
// @Router /api/v1/equipment/{equipmentID}/enhance [post]
func (h *EquipmentHandler) HandleEnhance(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	equipmentID := chi.URLParam(r, "equipmentID")
	result, err := h.service.Enhance(r.Context(), id, equipmentID)
	if err != nil {
		respondServiceError(w, r, "enhance equipment", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type fuseRequest struct {
	InputIDs []string `json:"input_ids" validate:"required,min=2,dive,required"`
}

// HandleFuse fuses multiple equipment items into one item at the highest input rarity.
// @Summary Fuse equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body fuseRequest true "Input equipment ids"
// @Success 200 {object} domain.Equipment
// @Router /api/v1/equipment/fuse [post]
func (h *EquipmentHandler) HandleFuse(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req fuseRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	result, err := h.service.Fuse(r.Context(), id, req.InputIDs)
	if err != nil {
		respondServiceError(w, r, "fuse equipment", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
