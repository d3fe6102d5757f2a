package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/httpctx"
)

type mockHeroService struct {
	mock.Mock
}

func (m *mockHeroService) ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error) {
	args := m.Called(ctx, playerID)
	h, _ := args.Get(0).([]*domain.Hero)
	return h, args.Error(1)
}

func (m *mockHeroService) GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	args := m.Called(ctx, playerID, heroID)
	h, _ := args.Get(0).(*domain.Hero)
	return h, args.Error(1)
}

func (m *mockHeroService) LevelUp(ctx context.Context, playerID, heroID string, expAmount int) (*domain.Hero, domain.LevelUpResult, error) {
	args := m.Called(ctx, playerID, heroID, expAmount)
	h, _ := args.Get(0).(*domain.Hero)
	return h, args.Get(1).(domain.LevelUpResult), args.Error(2)
}

func (m *mockHeroService) Ascend(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	args := m.Called(ctx, playerID, heroID)
	h, _ := args.Get(0).(*domain.Hero)
	return h, args.Error(1)
}

func (m *mockHeroService) Awaken(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	args := m.Called(ctx, playerID, heroID)
	h, _ := args.Get(0).(*domain.Hero)
	return h, args.Error(1)
}

func (m *mockHeroService) Equip(ctx context.Context, playerID, heroID string, slot domain.EquipmentSlot, equipmentID string) (*domain.Hero, error) {
	args := m.Called(ctx, playerID, heroID, slot, equipmentID)
	h, _ := args.Get(0).(*domain.Hero)
	return h, args.Error(1)
}

func (m *mockHeroService) Unequip(ctx context.Context, playerID, heroID string, slot domain.EquipmentSlot) (*domain.Hero, error) {
	args := m.Called(ctx, playerID, heroID, slot)
	h, _ := args.Get(0).(*domain.Hero)
	return h, args.Error(1)
}

func withPlayer(req *http.Request, playerID string) *http.Request {
	return req.WithContext(httpctx.WithPlayerID(req.Context(), playerID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHeroHandleList(t *testing.T) {
	svc := &mockHeroService{}
	svc.On("ListHeroes", mock.Anything, "player-1").
		Return([]*domain.Hero{{TemplateID: "hero-a"}}, nil)

	h := NewHeroHandler(svc)

	req := withPlayer(httptest.NewRequest("GET", "/api/v1/heroes", nil), "player-1")
	w := httptest.NewRecorder()

	h.HandleList(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hero-a")
	svc.AssertExpectations(t)
}

func TestHeroHandleLevelUp(t *testing.T) {
	svc := &mockHeroService{}
	svc.On("LevelUp", mock.Anything, "player-1", "hero-1", 500).
		Return(&domain.Hero{TemplateID: "hero-a", Level: 3}, domain.LevelUpResult{LeveledUp: true, OldLevel: 2, NewLevel: 3}, nil)

	h := NewHeroHandler(svc)

	body := `{"exp_amount":500}`
	req := httptest.NewRequest("POST", "/api/v1/heroes/hero-1/level-up", bytes.NewBufferString(body))
	req = withPlayer(req, "player-1")
	req = withURLParam(req, "heroID", "hero-1")
	w := httptest.NewRecorder()

	h.HandleLevelUp(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"new_level":3`)
	svc.AssertExpectations(t)
}

func TestHeroHandleEquip(t *testing.T) {
	svc := &mockHeroService{}
	svc.On("Equip", mock.Anything, "player-1", "hero-1", domain.SlotWeapon, "equip-1").
		Return(&domain.Hero{TemplateID: "hero-a", WeaponID: strPtr("equip-1")}, nil)

	h := NewHeroHandler(svc)

	body := `{"slot":"weapon","equipment_id":"equip-1"}`
	req := httptest.NewRequest("POST", "/api/v1/heroes/hero-1/equip", bytes.NewBufferString(body))
	req = withPlayer(req, "player-1")
	req = withURLParam(req, "heroID", "hero-1")
	w := httptest.NewRecorder()

	h.HandleEquip(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }
