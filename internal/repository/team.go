package repository

import (
	"context"
	"errors"

	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/model"
)

// TeamRepository handles hackathon team data access
type TeamRepository struct {
	db database.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db database.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetByID retrieves a team by ID. Returns nil when the team does not exist.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*model.Team, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": qualifyID("hackathon_team", id)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := record(result)
	if !ok {
		return nil, errors.New("unexpected team result format")
	}
	return parseTeam(data), nil
}

// UpdateProfile applies the given profile fields to a team. Only name and
// logo_url are accepted; a nil value clears the field.
func (r *TeamRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	query := `UPDATE type::record($id) SET updated_at = time::now()`
	vars := map[string]interface{}{"id": qualifyID("hackathon_team", id)}

	if name, ok := updates["name"]; ok {
		query += ", name = $name"
		vars["name"] = name
	}
	if logoURL, ok := updates["logo_url"]; ok {
		query += ", logo_url = $logo_url"
		vars["logo_url"] = logoURL
	}

	return r.db.Execute(ctx, query, vars)
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *model.Team) (*model.Team, error) {
	query := `
		CREATE hackathon_team CONTENT {
			hackathon_id: $hackathon_id,
			name: $name,
			logo_url: $logo_url,
			member_ids: $member_ids,
			wins: $wins,
			created_by: $created_by,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"hackathon_id": team.HackathonID,
		"name":         team.Name,
		"logo_url":     team.LogoURL,
		"member_ids":   team.MemberIDs,
		"wins":         team.Wins,
		"created_by":   team.CreatedBy,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	data, ok := record(result)
	if !ok {
		return nil, errors.New("unexpected team result format")
	}
	return parseTeam(data), nil
}

// ListByHackathon retrieves all teams in a hackathon cycle
func (r *TeamRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]*model.Team, error) {
	query := `SELECT * FROM hackathon_team WHERE hackathon_id = $hackathon_id ORDER BY created_at ASC`
	vars := map[string]interface{}{"hackathon_id": hackathonID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := rows(results)
	teams := make([]*model.Team, 0, len(records))
	for _, data := range records {
		teams = append(teams, parseTeam(data))
	}
	return teams, nil
}

// DeleteByHackathon removes every team in a hackathon cycle
func (r *TeamRepository) DeleteByHackathon(ctx context.Context, hackathonID string) error {
	query := `DELETE hackathon_team WHERE hackathon_id = $hackathon_id`
	vars := map[string]interface{}{"hackathon_id": hackathonID}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

// qualifyID prefixes a bare record ID with its table when needed, so both
// "hackathon_team:abc" and "abc" resolve to the same record.
func qualifyID(table, id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == ':' {
			return id
		}
	}
	return table + ":" + id
}

func parseTeam(data map[string]interface{}) *model.Team {
	return &model.Team{
		ID:          extractRecordID(data["id"]),
		HackathonID: getString(data, "hackathon_id"),
		Name:        getStringPtr(data, "name"),
		LogoURL:     getStringPtr(data, "logo_url"),
		MemberIDs:   getStringSlice(data, "member_ids"),
		Wins:        getInt(data, "wins"),
		CreatedBy:   getString(data, "created_by"),
		CreatedAt:   timeOrZero(data, "created_at"),
		UpdatedAt:   timeOrZero(data, "updated_at"),
	}
}
