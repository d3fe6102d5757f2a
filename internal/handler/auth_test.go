package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daicaxom/tactics-server/internal/domain"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, username, password, displayName string) (*domain.Player, error) {
	args := m.Called(ctx, username, password, displayName)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) ValidateAccessToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func TestHandleRegister(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Register", mock.Anything, "ash", "secretpass", "Ash Ketchum").
		Return(&domain.Player{ID: "player-1", Username: "ash"}, nil)

	h := NewAuthHandler(svc)

	body := `{"username":"ash","password":"secretpass","display_name":"Ash Ketchum"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.HandleRegister(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "player-1")
	svc.AssertExpectations(t)
}

func TestHandleRegister_RejectsEmptyUsername(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc)

	body := `{"username":"","password":"secretpass","display_name":"Ash Ketchum"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.HandleRegister(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleLogin(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Login", mock.Anything, "ash", "secret").
		Return("access-token", "refresh-token", nil)

	h := NewAuthHandler(svc)

	body := `{"username":"ash","password":"secret"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.HandleLogin(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access-token")
	assert.Contains(t, w.Body.String(), "refresh-token")
}

func TestHandleRefresh(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Refresh", mock.Anything, "refresh-token").
		Return("new-access-token", nil)

	h := NewAuthHandler(svc)

	body := `{"refresh_token":"refresh-token"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.HandleRefresh(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access-token")
}
