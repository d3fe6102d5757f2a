package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// TeamRepository implements repository.Team against PostgreSQL.
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository constructs a TeamRepository over db.
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var id, playerID, name string
	var isDefault bool
	var formationID *string
	var slotsJSON []byte
	if err := row.Scan(&id, &playerID, &name, &isDefault, &formationID, &slotsJSON); err != nil {
		return nil, err
	}
	team := &domain.Team{ID: id, PlayerID: playerID, Name: name, IsDefault: isDefault, FormationID: formationID}
	if err := json.Unmarshal(slotsJSON, &team.Slots); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return team, nil
}

const teamColumns = "id, player_id, name, is_default, formation_id, slots"

func (r *TeamRepository) CreateTeam(ctx context.Context, team *domain.Team) error {
	slotsJSON, err := json.Marshal(team.Slots)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO teams (id, player_id, name, is_default, formation_id, slots) VALUES ($1, $2, $3, $4, $5, $6)`,
		team.ID, team.PlayerID, team.Name, team.IsDefault, team.FormationID, slotsJSON)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetTeam(ctx context.Context, playerID, teamID string) (*domain.Team, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1 AND player_id = $2`, teamID, playerID)
	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

func (r *TeamRepository) ListTeams(ctx context.Context, playerID string) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE player_id = $1 ORDER BY id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, team *domain.Team) error {
	slotsJSON, err := json.Marshal(team.Slots)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx,
		`UPDATE teams SET name = $3, formation_id = $4, slots = $5 WHERE id = $1 AND player_id = $2`,
		team.ID, team.PlayerID, team.Name, team.FormationID, slotsJSON)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, playerID, teamID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1 AND player_id = $2`, teamID, playerID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (r *TeamRepository) CountTeams(ctx context.Context, playerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teams WHERE player_id = $1`, playerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return count, nil
}
