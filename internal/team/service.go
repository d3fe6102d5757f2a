// Package team implements team composition management (spec.md 4.3):
// creating, updating, and deleting up-to-five-hero formations on the
// 3x3 battle grid, and computing their power (hero power, without
// equipment) including adjacency element-synergy bonuses.
package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// Service defines the team management operations.
type Service interface {
	ListTeams(ctx context.Context, playerID string) ([]*domain.Team, error)
	CreateTeam(ctx context.Context, playerID, name string, slots []domain.TeamSlot) (*domain.Team, error)
	UpdateTeam(ctx context.Context, playerID, teamID string, slots []domain.TeamSlot) (*domain.Team, error)
	DeleteTeam(ctx context.Context, playerID, teamID string) error
	TeamPower(ctx context.Context, playerID, teamID string) (int, error)
}

type service struct {
	teams    repository.Team
	heroes   repository.Hero
	eventBus event.Bus
}

// NewService wires the team repository, the hero repository team power
// and ownership checks read from, and the event bus.
func NewService(teams repository.Team, heroes repository.Hero, eventBus event.Bus) Service {
	return &service{teams: teams, heroes: heroes, eventBus: eventBus}
}

func (s *service) ListTeams(ctx context.Context, playerID string) ([]*domain.Team, error) {
	return s.teams.ListTeams(ctx, playerID)
}

// CreateTeam validates slot/hero-ownership invariants and the
// per-player team cap before persisting a new team. The first team a
// player creates becomes their default team.
func (s *service) CreateTeam(ctx context.Context, playerID, name string, slots []domain.TeamSlot) (*domain.Team, error) {
	count, err := s.teams.CountTeams(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("count teams: %w", err)
	}
	if count >= domain.MaxTeamsPerPlayer {
		return nil, domain.ErrTeamCapExceeded
	}

	if err := s.validateOwnership(ctx, playerID, slots); err != nil {
		return nil, err
	}

	team := &domain.Team{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Name:      name,
		Slots:     slots,
		IsDefault: count == 0,
	}
	if err := team.Validate(); err != nil {
		return nil, err
	}
	if err := s.teams.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("save team: %w", err)
	}
	return team, nil
}

// UpdateTeam replaces teamID's slots wholesale after validating the new
// composition, and publishes team.updated.
func (s *service) UpdateTeam(ctx context.Context, playerID, teamID string, slots []domain.TeamSlot) (*domain.Team, error) {
	team, err := s.teams.GetTeam(ctx, playerID, teamID)
	if err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}
	if err := s.validateOwnership(ctx, playerID, slots); err != nil {
		return nil, err
	}

	candidate := domain.Team{Slots: slots}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	team.Slots = slots

	if err := s.teams.UpdateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("save team: %w", err)
	}
	s.publish(ctx, domain.EventTypeTeamUpdated, domain.TeamUpdatedPayload{PlayerID: playerID, TeamID: teamID})
	return team, nil
}

// DeleteTeam removes teamID, refusing to delete the player's default
// team per ErrDefaultTeamUndeletable.
func (s *service) DeleteTeam(ctx context.Context, playerID, teamID string) error {
	team, err := s.teams.GetTeam(ctx, playerID, teamID)
	if err != nil {
		return fmt.Errorf("load team: %w", err)
	}
	if team.IsDefault {
		return domain.ErrDefaultTeamUndeletable
	}
	return s.teams.DeleteTeam(ctx, playerID, teamID)
}

// TeamPower sums each slotted hero's power plus the team's element
// adjacency synergy bonus.
func (s *service) TeamPower(ctx context.Context, playerID, teamID string) (int, error) {
	team, err := s.teams.GetTeam(ctx, playerID, teamID)
	if err != nil {
		return 0, fmt.Errorf("load team: %w", err)
	}

	heroByID := make(map[string]*domain.Hero, len(team.Slots))
	total := 0
	for _, slot := range team.Slots {
		h, err := s.heroes.GetHero(ctx, playerID, slot.HeroID)
		if err != nil {
			return 0, fmt.Errorf("load hero %s: %w", slot.HeroID, err)
		}
		heroByID[slot.HeroID] = h
		total += h.Power()
	}

	total += team.ElementSynergyPower(func(heroID string) (domain.Element, bool) {
		h, ok := heroByID[heroID]
		if !ok {
			return "", false
		}
		return h.Element, true
	})
	return total, nil
}

func (s *service) validateOwnership(ctx context.Context, playerID string, slots []domain.TeamSlot) error {
	for _, slot := range slots {
		if _, err := s.heroes.GetHero(ctx, playerID, slot.HeroID); err != nil {
			return fmt.Errorf("hero %s: %w", slot.HeroID, err)
		}
	}
	return nil
}

func (s *service) publish(ctx context.Context, eventType string, payload any) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.Type(eventType),
		Payload: payload,
	})
}
