package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daicaxom/tactics-server/internal/domain"
)

type mockStoryService struct {
	mock.Mock
}

func (m *mockStoryService) GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*domain.StoryProgress)
	return p, args.Error(1)
}

func (m *mockStoryService) IsStageUnlocked(ctx context.Context, playerID, stageID string) (bool, error) {
	args := m.Called(ctx, playerID, stageID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStoryService) StartStage(ctx context.Context, playerID, stageID string) (domain.Stage, error) {
	args := m.Called(ctx, playerID, stageID)
	return args.Get(0).(domain.Stage), args.Error(1)
}

func TestStoryHandleGetProgress(t *testing.T) {
	svc := &mockStoryService{}
	svc.On("GetProgress", mock.Anything, "player-1").
		Return(&domain.StoryProgress{PlayerID: "player-1", ClearedStages: map[string]bool{"stage-1": true}}, nil)

	h := NewStoryHandler(svc)

	req := withPlayer(httptest.NewRequest("GET", "/api/v1/story/progress", nil), "player-1")
	w := httptest.NewRecorder()

	h.HandleGetProgress(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stage-1")
	svc.AssertExpectations(t)
}

func TestStoryHandleIsStageUnlocked(t *testing.T) {
	svc := &mockStoryService{}
	svc.On("IsStageUnlocked", mock.Anything, "player-1", "stage-2").Return(false, nil)

	h := NewStoryHandler(svc)

	req := httptest.NewRequest("GET", "/api/v1/story/stages/stage-2/unlocked", nil)
	req = withPlayer(req, "player-1")
	req = withURLParam(req, "stageID", "stage-2")
	w := httptest.NewRecorder()

	h.HandleIsStageUnlocked(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unlocked":false`)
	svc.AssertExpectations(t)
}

func TestStoryHandleStartStage(t *testing.T) {
	svc := &mockStoryService{}
	svc.On("StartStage", mock.Anything, "player-1", "stage-1").
		Return(domain.Stage{ID: "stage-1", Name: "Crossroads"}, nil)

	h := NewStoryHandler(svc)

	req := httptest.NewRequest("POST", "/api/v1/story/stages/stage-1/start", nil)
	req = withPlayer(req, "player-1")
	req = withURLParam(req, "stageID", "stage-1")
	w := httptest.NewRecorder()

	h.HandleStartStage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Crossroads")
	svc.AssertExpectations(t)
}
