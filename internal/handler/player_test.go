package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/httpctx"
)

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) GetProfile(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *mockPlayerService) CreditResources(ctx context.Context, playerID string, gold, gems, stamina int64) (domain.Resources, error) {
	args := m.Called(ctx, playerID, gold, gems, stamina)
	return args.Get(0).(domain.Resources), args.Error(1)
}

func (m *mockPlayerService) DebitResources(ctx context.Context, playerID string, gold, gems, stamina int64) (domain.Resources, error) {
	args := m.Called(ctx, playerID, gold, gems, stamina)
	return args.Get(0).(domain.Resources), args.Error(1)
}

func (m *mockPlayerService) RegenerateStamina(ctx context.Context, amount int64) (int, error) {
	args := m.Called(ctx, amount)
	return args.Int(0), args.Error(1)
}

func TestHandleGetProfile(t *testing.T) {
	t.Run("authenticated request returns profile", func(t *testing.T) {
		svc := &mockPlayerService{}
		svc.On("GetProfile", mock.Anything, "player-1").
			Return(&domain.Player{ID: "player-1", Username: "ash"}, nil)

		h := NewPlayerHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/player/profile", nil)
		req = req.WithContext(httpctx.WithPlayerID(req.Context(), "player-1"))
		w := httptest.NewRecorder()

		h.HandleGetProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ash")
		svc.AssertExpectations(t)
	})

	t.Run("missing player id is unauthorized", func(t *testing.T) {
		svc := &mockPlayerService{}
		h := NewPlayerHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/player/profile", nil)
		w := httptest.NewRecorder()

		h.HandleGetProfile(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})
}
