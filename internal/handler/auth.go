package handler

import (
	"net/http"

	"github.com/daicaxom/tactics-server/internal/auth"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

// HandleRegister creates a new player account.
// @Summary Register a player
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration details"
// @Success 201 {object} domain.Player
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	player, err := h.service.Register(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		respondServiceError(w, r, "register player", err)
		return
	}

	respondJSON(w, http.StatusCreated, player)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// HandleLogin authenticates a player and issues a token pair.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	access, refresh, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, r, "login", err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{AccessToken: access, RefreshToken: refresh})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// HandleRefresh exchanges a refresh token for a new access token.
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body refreshRequest true "Refresh token"
// @Success 200 {object} refreshResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeAndValidate(r, w, &req) {
		return
	}

	access, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(w, r, "refresh token", err)
		return
	}

	respondJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}
