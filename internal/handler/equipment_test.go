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

type mockEquipmentService struct {
	mock.Mock
}

func (m *mockEquipmentService) ListEquipment(ctx context.Context, playerID string) ([]*domain.Equipment, error) {
	args := m.Called(ctx, playerID)
	e, _ := args.Get(0).([]*domain.Equipment)
	return e, args.Error(1)
}

func (m *mockEquipmentService) Enhance(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error) {
	args := m.Called(ctx, playerID, equipmentID)
	e, _ := args.Get(0).(*domain.Equipment)
	return e, args.Error(1)
}

func (m *mockEquipmentService) Fuse(ctx context.Context, playerID string, inputIDs []string) (*domain.Equipment, error) {
	args := m.Called(ctx, playerID, inputIDs)
	e, _ := args.Get(0).(*domain.Equipment)
	return e, args.Error(1)
}

func TestEquipmentHandleList(t *testing.T) {
	svc := &mockEquipmentService{}
	svc.On("ListEquipment", mock.Anything, "player-1").
		Return([]*domain.Equipment{{ID: "equip-1"}}, nil)

	h := NewEquipmentHandler(svc)

	req := withPlayer(httptest.NewRequest("GET", "/api/v1/equipment", nil), "player-1")
	w := httptest.NewRecorder()

	h.HandleList(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "equip-1")
	svc.AssertExpectations(t)
}

func TestEquipmentHandleEnhance(t *testing.T) {
	svc := &mockEquipmentService{}
	svc.On("Enhance", mock.Anything, "player-1", "equip-1").
		Return(&domain.Equipment{ID: "equip-1", Level: 2}, nil)

	h := NewEquipmentHandler(svc)

	req := httptest.NewRequest("POST", "/api/v1/equipment/equip-1/enhance", nil)
	req = withPlayer(req, "player-1")
	req = withURLParam(req, "equipmentID", "equip-1")
	w := httptest.NewRecorder()

	h.HandleEnhance(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"level":2`)
	svc.AssertExpectations(t)
}

func TestEquipmentHandleFuse(t *testing.T) {
	svc := &mockEquipmentService{}
	svc.On("Fuse", mock.Anything, "player-1", []string{"a", "b", "c"}).
		Return(&domain.Equipment{ID: "fused-1"}, nil)

	h := NewEquipmentHandler(svc)

	body := `{"input_ids":["a","b","c"]}`
	req := httptest.NewRequest("POST", "/api/v1/equipment/fuse", bytes.NewBufferString(body))
	req = withPlayer(req, "player-1")
	w := httptest.NewRecorder()

	h.HandleFuse(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fused-1")
	svc.AssertExpectations(t)
}
