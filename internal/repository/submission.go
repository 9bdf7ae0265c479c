package repository

import (
	"context"
	"errors"

	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/model"
)

// SubmissionRepository handles hackathon submission data access
type SubmissionRepository struct {
	db database.Database
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db database.Database) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create registers a team's project for a cycle
func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	query := `
		CREATE hackathon_submission CONTENT {
			hackathon_id: $hackathon_id,
			team_id: $team_id,
			repo_url: $repo_url,
			registered_by: $registered_by,
			registered_at: time::now(),
			submitted_at: $submitted_at,
			cutoff_at: <datetime> $cutoff_at
		}
	`
	vars := map[string]interface{}{
		"hackathon_id":  sub.HackathonID,
		"team_id":       sub.TeamID,
		"repo_url":      sub.RepoURL,
		"registered_by": sub.RegisteredBy,
		"submitted_at":  sub.SubmittedAt,
		"cutoff_at":     sub.CutoffAt,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	data, ok := record(result)
	if !ok {
		return nil, errors.New("unexpected submission result format")
	}
	return parseSubmission(data), nil
}

// ListByHackathon retrieves all submissions in a hackathon cycle
func (r *SubmissionRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]*model.Submission, error) {
	query := `SELECT * FROM hackathon_submission WHERE hackathon_id = $hackathon_id ORDER BY registered_at ASC`
	vars := map[string]interface{}{"hackathon_id": hackathonID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := rows(results)
	subs := make([]*model.Submission, 0, len(records))
	for _, data := range records {
		subs = append(subs, parseSubmission(data))
	}
	return subs, nil
}

// DeleteByHackathon removes every submission in a hackathon cycle
func (r *SubmissionRepository) DeleteByHackathon(ctx context.Context, hackathonID string) error {
	query := `DELETE hackathon_submission WHERE hackathon_id = $hackathon_id`
	vars := map[string]interface{}{"hackathon_id": hackathonID}

	return r.db.Execute(ctx, query, vars)
}

func parseSubmission(data map[string]interface{}) *model.Submission {
	return &model.Submission{
		ID:           extractRecordID(data["id"]),
		HackathonID:  getString(data, "hackathon_id"),
		TeamID:       getString(data, "team_id"),
		RepoURL:      getString(data, "repo_url"),
		RegisteredBy: getString(data, "registered_by"),
		RegisteredAt: timeOrZero(data, "registered_at"),
		SubmittedAt:  getTime(data, "submitted_at"),
		CutoffAt:     timeOrZero(data, "cutoff_at"),
	}
}
