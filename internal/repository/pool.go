package repository

import (
	"context"

	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/model"
)

// PoolRepository handles hackathon matching pool data access
type PoolRepository struct {
	db database.Database
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db database.Database) *PoolRepository {
	return &PoolRepository{db: db}
}

// Upsert adds a user to the matching pool. The composite record ID makes
// joining twice a no-op rather than a duplicate entry.
func (r *PoolRepository) Upsert(ctx context.Context, entry *model.PoolEntry) error {
	query := `
		UPSERT type::thing('hackathon_pool', $id) CONTENT {
			user_id: $user_id,
			hackathon_id: $hackathon_id,
			display_name: $display_name,
			joined_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"id":           model.PoolEntryID(entry.UserID, entry.HackathonID),
		"user_id":      entry.UserID,
		"hackathon_id": entry.HackathonID,
		"display_name": entry.DisplayName,
	}

	return r.db.Execute(ctx, query, vars)
}

// ListByHackathon retrieves the pool for a hackathon cycle, oldest first
func (r *PoolRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]*model.PoolEntry, error) {
	query := `SELECT * FROM hackathon_pool WHERE hackathon_id = $hackathon_id ORDER BY joined_at ASC`
	vars := map[string]interface{}{"hackathon_id": hackathonID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := rows(results)
	entries := make([]*model.PoolEntry, 0, len(records))
	for _, data := range records {
		entries = append(entries, &model.PoolEntry{
			ID:          extractRecordID(data["id"]),
			UserID:      getString(data, "user_id"),
			HackathonID: getString(data, "hackathon_id"),
			DisplayName: getString(data, "display_name"),
			JoinedAt:    timeOrZero(data, "joined_at"),
		})
	}
	return entries, nil
}

// DeleteByHackathon clears the pool for a hackathon cycle
func (r *PoolRepository) DeleteByHackathon(ctx context.Context, hackathonID string) error {
	query := `DELETE hackathon_pool WHERE hackathon_id = $hackathon_id`
	vars := map[string]interface{}{"hackathon_id": hackathonID}

	return r.db.Execute(ctx, query, vars)
}
