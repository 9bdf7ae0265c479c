package repository

import (
	"context"
	"errors"

	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/model"
)

// AgentRepository handles agent data access
type AgentRepository struct {
	db database.Database
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db database.Database) *AgentRepository {
	return &AgentRepository{db: db}
}

// GetByClaimToken retrieves the pending, unexpired agent holding the given
// claim token. Returns nil when no such agent exists; expired or already
// claimed agents are indistinguishable from unknown tokens.
func (r *AgentRepository) GetByClaimToken(ctx context.Context, token string) (*model.Agent, error) {
	query := `
		SELECT * FROM agent
		WHERE claim_token = $token
			AND status = 'pending'
			AND claim_expires_at > time::now()
		LIMIT 1
	`
	vars := map[string]interface{}{"token": token}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseAgentResult(result)
}

// Claim atomically transitions the agent holding the token from pending to
// claimed. The WHERE clause repeats the claimability conditions so that of
// two concurrent attempts exactly one matches; the loser gets nil back.
func (r *AgentRepository) Claim(ctx context.Context, token string, owner model.Identity, apiKeyHash string) (*model.Agent, error) {
	query := `
		UPDATE agent SET
			status = 'claimed',
			owner_uid = $owner_uid,
			owner_email = $owner_email,
			owner_display_name = $owner_display_name,
			api_key_hash = $api_key_hash,
			claim_token = NONE,
			claimed_at = time::now()
		WHERE claim_token = $token
			AND status = 'pending'
			AND claim_expires_at > time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"token":              token,
		"owner_uid":          owner.UID,
		"owner_email":        owner.Email,
		"owner_display_name": owner.Name,
		"api_key_hash":       apiKeyHash,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseAgentResult(result)
}

// ListByOwner retrieves all agents claimed by the given user
func (r *AgentRepository) ListByOwner(ctx context.Context, ownerUID string) ([]*model.Agent, error) {
	query := `
		SELECT * FROM agent
		WHERE owner_uid = $owner_uid AND status = 'claimed'
		ORDER BY claimed_at DESC
	`
	vars := map[string]interface{}{"owner_uid": ownerUID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseAgentResults(results)
}

// ListPublicClaimed retrieves claimed agents that opted into the public
// directory, newest first.
func (r *AgentRepository) ListPublicClaimed(ctx context.Context) ([]*model.Agent, error) {
	query := `
		SELECT * FROM agent
		WHERE status = 'claimed' AND visibility.is_public = true
		ORDER BY created_at DESC
	`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseAgentResults(results)
}

// ExpireLapsed marks pending agents whose claim window has passed as
// expired, and returns how many were transitioned.
func (r *AgentRepository) ExpireLapsed(ctx context.Context) (int, error) {
	query := `
		UPDATE agent SET status = 'expired', claim_token = NONE
		WHERE status = 'pending' AND claim_expires_at <= time::now()
		RETURN AFTER
	`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return 0, err
	}

	return len(rows(results)), nil
}

// Upsert creates or replaces an agent under a fixed record ID. Used by the
// seeder so repeated runs stay idempotent.
func (r *AgentRepository) Upsert(ctx context.Context, id string, agent *model.Agent) error {
	query := `
		UPSERT type::thing('agent', $id) CONTENT {
			name: $name,
			description: $description,
			avatar_url: $avatar_url,
			status: $status,
			claim_token: $claim_token,
			claim_expires_at: <datetime> $claim_expires_at,
			visibility: $visibility,
			created_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"id":               id,
		"name":             agent.Name,
		"description":      agent.Description,
		"avatar_url":       agent.AvatarURL,
		"status":           string(agent.Status),
		"claim_token":      agent.ClaimToken,
		"claim_expires_at": agent.ClaimExpiresAt,
		"visibility": map[string]interface{}{
			"is_public":  agent.Visibility.IsPublic,
			"show_owner": agent.Visibility.ShowOwner,
		},
	}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

func parseAgentResult(result interface{}) (*model.Agent, error) {
	data, ok := record(result)
	if !ok {
		return nil, errors.New("unexpected agent result format")
	}
	return parseAgent(data), nil
}

func parseAgentResults(results []interface{}) ([]*model.Agent, error) {
	records := rows(results)
	agents := make([]*model.Agent, 0, len(records))
	for _, data := range records {
		agents = append(agents, parseAgent(data))
	}
	return agents, nil
}

func parseAgent(data map[string]interface{}) *model.Agent {
	agent := &model.Agent{
		ID:               extractRecordID(data["id"]),
		Name:             getString(data, "name"),
		Description:      getString(data, "description"),
		AvatarURL:        getStringPtr(data, "avatar_url"),
		Status:           model.AgentStatus(getString(data, "status")),
		ClaimToken:       getStringPtr(data, "claim_token"),
		ClaimExpiresAt:   getTime(data, "claim_expires_at"),
		OwnerUID:         getStringPtr(data, "owner_uid"),
		OwnerEmail:       getStringPtr(data, "owner_email"),
		OwnerDisplayName: getStringPtr(data, "owner_display_name"),
		APIKeyHash:       getString(data, "api_key_hash"),
		CreatedAt:        timeOrZero(data, "created_at"),
		ClaimedAt:        getTime(data, "claimed_at"),
		LastActiveAt:     getTime(data, "last_active_at"),
	}

	if vis := getMap(data, "visibility"); vis != nil {
		agent.Visibility = model.AgentVisibility{
			IsPublic:  getBool(vis, "is_public"),
			ShowOwner: getBool(vis, "show_owner"),
		}
	}

	return agent
}
