package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
	"github.com/daicaxom/tactics-server/internal/session"
	"github.com/daicaxom/tactics-server/internal/utils"
)

// sessionExtras is the engine-owned state attached to each live battle in
// the Session Store: its seeded RNG (one per battle, reused across every
// action so draws never repeat a sequence) and the battle-scoped skill
// instances resolved at start_battle.
type sessionExtras struct {
	rng    RNG
	skills map[string][]*domain.ActiveSkill
}

// Service defines the battle operations spec.md 4.4 names: starting a
// stage encounter, resolving individual actions against the live battle
// held in the Session Store, advancing turns, and settling rewards once
// the battle ends.
type Service interface {
	StartBattle(ctx context.Context, playerID, stageID, teamID string) (*domain.Battle, error)
	ExecuteAttack(ctx context.Context, battleID, attackerID, targetID string) (AttackResult, error)
	ExecuteSkill(ctx context.Context, battleID, casterID, skillID string, targetIDs []string) ([]AttackResult, error)
	ExecuteHeal(ctx context.Context, battleID, casterID string, targetIDs []string, manaCost int, healMultiplier float64, percentOfMaxHP bool) ([]HealResult, error)
	AdvanceTurn(ctx context.Context, battleID string) error
	AIChooseAction(ctx context.Context, battleID, actorID string) (Action, error)
	CheckEnd(ctx context.Context, battleID string) (*domain.BattleResult, error)
	CalculateRewards(ctx context.Context, battleID string) (domain.BattleRewards, error)
}

type service struct {
	catalog  *catalog.Catalog
	sessions *session.Store
	heroes   repository.Hero
	teams    repository.Team
	stories  repository.Story
	eventBus event.Bus
}

// NewService wires the Battle Engine to the catalog, the Session Store
// holding live battles, the repositories rewards settle into, and the
// event bus battle lifecycle events publish on.
func NewService(cat *catalog.Catalog, sessions *session.Store, heroes repository.Hero, teams repository.Team, stories repository.Story, eventBus event.Bus) Service {
	return &service{catalog: cat, sessions: sessions, heroes: heroes, teams: teams, stories: stories, eventBus: eventBus}
}

// StartBattle resolves the stage's enemy and boss roster from the
// catalog, fields the heroes on the player's chosen team at their team
// grid positions, seeds a fresh per-battle RNG, and registers the battle
// in the Session Store.
func (s *service) StartBattle(ctx context.Context, playerID, stageID, teamID string) (*domain.Battle, error) {
	stage, err := s.catalog.Stage(stageID)
	if err != nil {
		return nil, fmt.Errorf("resolve stage: %w", err)
	}

	team, err := s.teams.GetTeam(ctx, playerID, teamID)
	if err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}

	heroes := make([]*domain.Hero, 0, len(team.Slots))
	for _, slot := range team.Slots {
		hero, err := s.heroes.GetHero(ctx, playerID, slot.HeroID)
		if err != nil {
			return nil, fmt.Errorf("load hero %s: %w", slot.HeroID, err)
		}
		hero.Position = slot.Position
		heroes = append(heroes, hero)
	}

	enemies := make([]*domain.Enemy, 0, len(stage.EnemyTemplateIDs))
	skills := make(map[string][]*domain.ActiveSkill)
	for _, templateID := range stage.EnemyTemplateIDs {
		enemy, skillInstances, err := s.instantiateEnemy(templateID)
		if err != nil {
			return nil, err
		}
		enemies = append(enemies, enemy)
		skills[enemy.ID] = skillInstances
	}

	var bosses []*domain.Boss
	if stage.BossTemplateID != nil {
		boss, skillInstances, err := s.instantiateBoss(*stage.BossTemplateID)
		if err != nil {
			return nil, err
		}
		bosses = append(bosses, boss)
		skills[boss.ID] = skillInstances
	}

	for _, h := range heroes {
		instances, err := s.heroSkillInstances(h)
		if err != nil {
			return nil, err
		}
		skills[h.ID] = instances
	}

	battle := domain.NewBattle(uuid.NewString(), playerID, stageID, heroes, enemies)
	battle.BossTeam = bosses

	rng := NewRNG(int64(utils.SecureRandomInt(1 << 62)))
	engine := NewEngine(battle, rng, skills)
	engine.Start()

	s.sessions.Put(battle)
	s.sessions.SetExtra(battle.ID, &sessionExtras{rng: rng, skills: skills})

	s.publish(ctx, domain.EventTypeBattleStarted, domain.BattleStartedPayload{
		BattleID:  battle.ID,
		PlayerID:  playerID,
		StageID:   stageID,
		Timestamp: time.Now().Unix(),
	})

	return battle, nil
}

func (s *service) instantiateEnemy(templateID string) (*domain.Enemy, []*domain.ActiveSkill, error) {
	template, err := s.catalog.EnemyTemplate(templateID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve enemy template: %w", err)
	}
	enemy := &domain.Enemy{
		Character:  domain.NewCharacter(uuid.NewString(), template.Name, template.Element, domain.GridPosition{}, template.BaseStats),
		Behavior:   template.Behavior,
		Difficulty: template.Difficulty,
		ExpReward:  template.ExpReward,
		GoldReward: template.GoldReward,
		DropTable:  template.DropTable,
	}
	enemy.SkillIDs = template.SkillIDs
	skills, err := s.activeSkillInstances(template.SkillIDs)
	return enemy, skills, err
}

func (s *service) instantiateBoss(templateID string) (*domain.Boss, []*domain.ActiveSkill, error) {
	template, err := s.catalog.EnemyTemplate(templateID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve boss template: %w", err)
	}
	base := domain.Enemy{
		Character:  domain.NewCharacter(uuid.NewString(), template.Name, template.Element, domain.GridPosition{}, template.BaseStats),
		Behavior:   template.Behavior,
		Difficulty: template.Difficulty,
		ExpReward:  template.ExpReward,
		GoldReward: template.GoldReward,
		DropTable:  template.DropTable,
	}
	base.SkillIDs = template.SkillIDs
	boss := domain.NewBoss(base, template.Title, template.Phases)
	boss.MythicalTier = template.MythicalTier
	skills, err := s.activeSkillInstances(template.SkillIDs)
	return &boss, skills, err
}

func (s *service) heroSkillInstances(h *domain.Hero) ([]*domain.ActiveSkill, error) {
	return s.activeSkillInstances(h.SkillIDs)
}

// activeSkillInstances resolves each id to a fresh ActiveSkill copy (a
// battle-scoped instance with its own cooldown state, independent of the
// immutable catalog template). Passive/ultimate-only templates are
// skipped; the engine only ever casts ActiveSkill.
func (s *service) activeSkillInstances(skillIDs []string) ([]*domain.ActiveSkill, error) {
	instances := make([]*domain.ActiveSkill, 0, len(skillIDs))
	for _, id := range skillIDs {
		template, err := s.catalog.SkillTemplate(id)
		if err != nil {
			return nil, fmt.Errorf("resolve skill template: %w", err)
		}
		if template.Active != nil {
			skill := *template.Active
			instances = append(instances, &skill)
		} else if template.Ultimate != nil {
			skill := template.Ultimate.ActiveSkill
			instances = append(instances, &skill)
		}
	}
	return instances, nil
}

func (s *service) ExecuteAttack(ctx context.Context, battleID, attackerID, targetID string) (AttackResult, error) {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return AttackResult{}, err
	}
	return engine.ExecuteAttack(attackerID, targetID, 1.0)
}

func (s *service) ExecuteSkill(ctx context.Context, battleID, casterID, skillID string, targetIDs []string) ([]AttackResult, error) {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return nil, err
	}
	skill := s.skillFor(battleID, casterID, skillID)
	if skill == nil {
		return nil, domain.ErrTemplateNotFound
	}
	return engine.ExecuteSkill(casterID, skillID, targetIDs, skill)
}

func (s *service) ExecuteHeal(ctx context.Context, battleID, casterID string, targetIDs []string, manaCost int, healMultiplier float64, percentOfMaxHP bool) ([]HealResult, error) {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return nil, err
	}
	return engine.ExecuteHeal(casterID, targetIDs, manaCost, healMultiplier, percentOfMaxHP)
}

func (s *service) AdvanceTurn(ctx context.Context, battleID string) error {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return err
	}
	engine.AdvanceTurn()
	return nil
}

func (s *service) AIChooseAction(ctx context.Context, battleID, actorID string) (Action, error) {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return Action{}, err
	}
	battle := engine.Battle
	actor := battle.CharacterByID(actorID)
	if actor == nil {
		return Action{}, domain.ErrInvalidAction
	}
	behavior := s.behaviorFor(battle, actorID)
	return engine.ChooseAction(actor, behavior), nil
}

func (s *service) behaviorFor(b *domain.Battle, actorID string) domain.BehaviorTag {
	for _, e := range b.EnemyTeam {
		if e.ID == actorID {
			return e.Behavior
		}
	}
	for _, boss := range b.BossTeam {
		if boss.ID == actorID {
			return boss.Behavior
		}
	}
	return domain.BehaviorBalanced
}

func (s *service) CheckEnd(ctx context.Context, battleID string) (*domain.BattleResult, error) {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return nil, err
	}
	result := engine.CheckEnd()
	if result != nil && !engine.Battle.IsEnded() {
		engine.EndBattle(*result)
		s.publish(ctx, domain.EventTypeBattleEnded, domain.BattleEndedPayload{
			BattleID:   battleID,
			PlayerID:   engine.Battle.PlayerID,
			StageID:    engine.Battle.StageID,
			Result:     *result,
			TurnsTaken: engine.Battle.TurnNumber,
			Timestamp:  time.Now().Unix(),
		})
	}
	return result, nil
}

// CalculateRewards settles a finished battle's rewards against story
// progress (crediting the stage's first-clear bonus only once) and
// removes it from the Session Store.
func (s *service) CalculateRewards(ctx context.Context, battleID string) (domain.BattleRewards, error) {
	lock := s.sessions.Lock(battleID)
	lock.Lock()
	defer lock.Unlock()

	engine, err := s.engineFor(battleID)
	if err != nil {
		return domain.BattleRewards{}, err
	}
	rewards := engine.CalculateRewards()

	if engine.Battle.State == domain.BattleStateVictory {
		tx, err := s.stories.BeginTx(ctx)
		if err != nil {
			return domain.BattleRewards{}, fmt.Errorf("begin story tx: %w", err)
		}
		defer repository.SafeRollback(ctx, tx)

		progress, err := tx.GetProgressForUpdate(ctx, engine.Battle.PlayerID)
		if err != nil {
			return domain.BattleRewards{}, fmt.Errorf("load story progress: %w", err)
		}
		rewards.FirstClear = progress.RecordClear(engine.Battle.StageID, rewards.Stars)
		if err := tx.UpdateProgress(ctx, progress); err != nil {
			return domain.BattleRewards{}, fmt.Errorf("save story progress: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return domain.BattleRewards{}, fmt.Errorf("commit story tx: %w", err)
		}

		s.publish(ctx, domain.EventTypeStageCleared, domain.StageClearedPayload{
			PlayerID:   engine.Battle.PlayerID,
			StageID:    engine.Battle.StageID,
			Stars:      rewards.Stars,
			FirstClear: rewards.FirstClear,
			Timestamp:  time.Now().Unix(),
		})
	}

	s.sessions.Remove(battleID)
	return rewards, nil
}

// engineFor rebuilds an Engine view over battleID's live state and its
// attached sessionExtras (the battle's one RNG, reused rather than
// reseeded, and its resolved skill instances).
func (s *service) engineFor(battleID string) (*Engine, error) {
	battle := s.sessions.Get(battleID)
	if battle == nil {
		return nil, domain.ErrBattleNotFound
	}
	raw, ok := s.sessions.Extra(battleID)
	if !ok {
		return nil, domain.ErrBattleNotFound
	}
	extras := raw.(*sessionExtras)
	return NewEngine(battle, extras.rng, extras.skills), nil
}

// skillFor finds caster's battle-scoped skill instance by id.
func (s *service) skillFor(battleID, casterID, skillID string) *domain.ActiveSkill {
	raw, ok := s.sessions.Extra(battleID)
	if !ok {
		return nil
	}
	extras := raw.(*sessionExtras)
	for _, skill := range extras.skills[casterID] {
		if skill.ID == skillID {
			return skill
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
