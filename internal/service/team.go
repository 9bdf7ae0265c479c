package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cursorboston/community-api/internal/model"
)

// TeamRepository defines the data access interface for hackathon teams
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*model.Team, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error
}

// TeamService handles hackathon team operations
type TeamService struct {
	teams TeamRepository
}

// NewTeamService creates a new team service
func NewTeamService(teams TeamRepository) *TeamService {
	return &TeamService{teams: teams}
}

// ProfileUpdate carries the provided profile fields of a PATCH request.
// A key is present only when the caller sent the field as a string; an
// empty or whitespace-only value clears it.
type ProfileUpdate map[string]string

// profileFields are the team profile fields a member may edit.
var profileFields = map[string]bool{
	"name":     true,
	"logo_url": true,
}

// UpdateProfile applies a profile edit on behalf of callerUID. The caller
// must be on the team roster and the team must have at least one win;
// until then the profile stays at its defaults. Values are trimmed, and
// fields provided as empty strings are cleared. The access gates run
// before field validation, so a caller who cannot edit the team sees the
// team's status rather than a complaint about their payload.
func (s *TeamService) UpdateProfile(ctx context.Context, callerUID, teamID string, update ProfileUpdate) error {
	if teamID == "" {
		return ErrTeamIDRequired
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return ErrTeamNotFound
	}

	if !team.HasMember(callerUID) {
		return ErrNotTeamMember
	}
	if team.Wins < 1 {
		return ErrProfileLocked
	}

	updates := make(map[string]interface{})
	for field, value := range update {
		if !profileFields[field] {
			continue
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			updates[field] = nil
		} else {
			updates[field] = trimmed
		}
	}
	if len(updates) == 0 {
		return ErrNoProfileFields
	}

	if err := s.teams.UpdateProfile(ctx, teamID, updates); err != nil {
		return fmt.Errorf("failed to update team profile: %w", err)
	}
	return nil
}
