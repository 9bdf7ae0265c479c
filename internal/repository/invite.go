package repository

import (
	"context"

	"github.com/cursorboston/community-api/internal/database"
)

// InviteRepository handles team invite and join request data access
type InviteRepository struct {
	db database.Database
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db database.Database) *InviteRepository {
	return &InviteRepository{db: db}
}

// DeleteInvitesByTeam removes all pending invites for a team
func (r *InviteRepository) DeleteInvitesByTeam(ctx context.Context, teamID string) error {
	query := `DELETE hackathon_invite WHERE team_id = $team_id`
	vars := map[string]interface{}{"team_id": teamID}

	return r.db.Execute(ctx, query, vars)
}

// DeleteJoinRequestsByTeam removes all pending join requests for a team
func (r *InviteRepository) DeleteJoinRequestsByTeam(ctx context.Context, teamID string) error {
	query := `DELETE hackathon_join_request WHERE team_id = $team_id`
	vars := map[string]interface{}{"team_id": teamID}

	return r.db.Execute(ctx, query, vars)
}

// CountPendingByTeam counts pending invites and join requests for a team
func (r *InviteRepository) CountPendingByTeam(ctx context.Context, teamID string) (invites, requests int, err error) {
	query := `
		SELECT count() FROM hackathon_invite WHERE team_id = $team_id GROUP ALL;
		SELECT count() FROM hackathon_join_request WHERE team_id = $team_id GROUP ALL;
	`
	vars := map[string]interface{}{"team_id": teamID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 2 {
		invites = extractCount(statementResult(results[0]))
		requests = extractCount(statementResult(results[1]))
	}
	return invites, requests, nil
}
