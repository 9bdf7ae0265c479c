package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cursorboston/community-api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockTeamRepo struct {
	getByIDFunc       func(ctx context.Context, id string) (*model.Team, error)
	updateProfileFunc func(ctx context.Context, id string, updates map[string]interface{}) error
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTeamRepo) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, updates)
	}
	return nil
}

func winningTeam(members ...string) *model.Team {
	return &model.Team{
		ID:          "hackathon_team:alpha",
		HackathonID: "virtual-2026-08",
		MemberIDs:   members,
		Wins:        1,
	}
}

// ============================================================================
// UpdateProfile Tests
// ============================================================================

func TestUpdateProfile_MissingTeamID(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{})

	err := svc.UpdateProfile(context.Background(), "user-1", "", ProfileUpdate{"name": "Crew"})
	if !errors.Is(err, ErrTeamIDRequired) {
		t.Errorf("expected ErrTeamIDRequired, got %v", err)
	}
}

func TestUpdateProfile_NoFields(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-1"), nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{})
	if !errors.Is(err, ErrNoProfileFields) {
		t.Errorf("expected ErrNoProfileFields, got %v", err)
	}
}

func TestUpdateProfile_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-1"), nil
		},
	})

	// Only unknown fields provided leaves nothing to update
	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{"wins": "99"})
	if !errors.Is(err, ErrNoProfileFields) {
		t.Errorf("expected ErrNoProfileFields, got %v", err)
	}
}

func TestUpdateProfile_TeamNotFound(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return nil, nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "missing", ProfileUpdate{"name": "Crew"})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestUpdateProfile_NoFields_MissingTeam(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return nil, nil
		},
	})

	// Team existence is checked before field presence
	err := svc.UpdateProfile(context.Background(), "user-1", "missing", ProfileUpdate{})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestUpdateProfile_NoFields_NotMember(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-2", "user-3"), nil
		},
	})

	// Membership is checked before field presence
	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{})
	if !errors.Is(err, ErrNotTeamMember) {
		t.Errorf("expected ErrNotTeamMember, got %v", err)
	}
}

func TestUpdateProfile_NotMember(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-2", "user-3"), nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{"name": "Crew"})
	if !errors.Is(err, ErrNotTeamMember) {
		t.Errorf("expected ErrNotTeamMember, got %v", err)
	}
}

func TestUpdateProfile_LockedWithoutWin(t *testing.T) {
	t.Parallel()
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			team := winningTeam("user-1")
			team.Wins = 0
			return team, nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{"name": "Crew"})
	if !errors.Is(err, ErrProfileLocked) {
		t.Errorf("expected ErrProfileLocked, got %v", err)
	}
}

func TestUpdateProfile_TrimsValues(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-1"), nil
		},
		updateProfileFunc: func(ctx context.Context, id string, updates map[string]interface{}) error {
			got = updates
			return nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{
		"name":     "  Night Shift  ",
		"logo_url": "https://example.com/logo.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["name"] != "Night Shift" {
		t.Errorf("expected trimmed name, got %v", got["name"])
	}
	if got["logo_url"] != "https://example.com/logo.png" {
		t.Errorf("unexpected logo_url: %v", got["logo_url"])
	}
}

func TestUpdateProfile_EmptyClearsField(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-1"), nil
		},
		updateProfileFunc: func(ctx context.Context, id string, updates map[string]interface{}) error {
			got = updates
			return nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{
		"name":     "   ",
		"logo_url": "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, ok := got["name"]
	if !ok || name != nil {
		t.Errorf("whitespace-only name should clear the field, got %v", name)
	}
	logo, ok := got["logo_url"]
	if !ok || logo != nil {
		t.Errorf("empty logo_url should clear the field, got %v", logo)
	}
}

func TestUpdateProfile_OmittedFieldUntouched(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	svc := NewTeamService(&mockTeamRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Team, error) {
			return winningTeam("user-1"), nil
		},
		updateProfileFunc: func(ctx context.Context, id string, updates map[string]interface{}) error {
			got = updates
			return nil
		},
	})

	err := svc.UpdateProfile(context.Background(), "user-1", "alpha", ProfileUpdate{
		"name": "Crew",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got["logo_url"]; ok {
		t.Error("omitted logo_url must not appear in updates")
	}
}
