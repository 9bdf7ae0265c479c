package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cursorboston/community-api/internal/metrics"
	"github.com/cursorboston/community-api/internal/model"
)

// Seeder repositories. The seeder owns the reset-and-reseed flow for one
// hackathon cycle, so it needs the delete operations alongside creation.

type SeederTeamRepository interface {
	Create(ctx context.Context, team *model.Team) (*model.Team, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]*model.Team, error)
	DeleteByHackathon(ctx context.Context, hackathonID string) error
}

type SeederPoolRepository interface {
	Upsert(ctx context.Context, entry *model.PoolEntry) error
	DeleteByHackathon(ctx context.Context, hackathonID string) error
}

type SeederSubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) (*model.Submission, error)
	DeleteByHackathon(ctx context.Context, hackathonID string) error
}

type SeederInviteRepository interface {
	DeleteInvitesByTeam(ctx context.Context, teamID string) error
	DeleteJoinRequestsByTeam(ctx context.Context, teamID string) error
}

type SeederUserRepository interface {
	Upsert(ctx context.Context, id string, user *model.User) error
}

type SeederAgentRepository interface {
	Upsert(ctx context.Context, id string, agent *model.Agent) error
}

// SeederService seeds mock hackathon data for the current virtual cycle.
// Existing teams, pool entries and submissions for the cycle are deleted
// first, so re-running never creates duplicates.
type SeederService struct {
	teams       SeederTeamRepository
	pool        SeederPoolRepository
	submissions SeederSubmissionRepository
	invites     SeederInviteRepository
	users       SeederUserRepository
	agents      SeederAgentRepository

	now func() time.Time
}

// NewSeederService creates a new seeder service
func NewSeederService(
	teams SeederTeamRepository,
	pool SeederPoolRepository,
	submissions SeederSubmissionRepository,
	invites SeederInviteRepository,
	users SeederUserRepository,
	agents SeederAgentRepository,
) *SeederService {
	return &SeederService{
		teams:       teams,
		pool:        pool,
		submissions: submissions,
		invites:     invites,
		users:       users,
		agents:      agents,
		now:         time.Now,
	}
}

// SeedResult summarizes one seed run.
type SeedResult struct {
	HackathonID  string `json:"hackathonId"`
	TeamsDeleted int    `json:"teamsDeleted"`
	Teams        int    `json:"teams"`
	Submissions  int    `json:"submissions"`
	PoolEntries  int    `json:"poolEntries"`
	Profiles     int    `json:"profiles"`
	Agents       int    `json:"agents"`
}

const (
	mockMemberPrefix  = "mock-member-"
	mockProfilePrefix = "mock-profile-"
	mockPoolUserID    = "mock-pool-user-1"
	mockAgentID       = "mock-agent-1"
)

type mockProfile struct {
	displayName string
	bio         string
	location    string
	company     string
	jobTitle    string
}

var mockMemberProfiles = []mockProfile{
	{"Alex Chen", "Building with Cursor in Boston.", "Boston, MA", "TechCo", "Software Engineer"},
	{"Sam Rivera", "Designer and developer.", "Cambridge, MA", "StartupXYZ", "Full Stack Dev"},
	{"Jordan Lee", "Hackathon enthusiast.", "Boston, MA", "DevShop", "Engineer"},
	{"Morgan Taylor", "AI and tooling.", "Somerville, MA", "AI Labs", "ML Engineer"},
	{"Casey Kim", "Cursor community member.", "Boston, MA", "Cursor Boston", "Developer"},
	{"Riley Davis", "Love building in the open.", "Cambridge, MA", "Open Source Co", "Engineer"},
	{"Jamie Park", "Product and code.", "Boston, MA", "ProductCo", "Product Engineer"},
	{"Quinn Adams", "Building the future with Cursor.", "Boston, MA", "FutureTech", "Software Dev"},
	{"Skyler Brown", "Community and code.", "Cambridge, MA", "Community Co", "Developer"},
	{"Drew Wilson", "Cursor Boston regular.", "Boston, MA", "Boston Dev", "Engineer"},
}

// Seed resets the current hackathon cycle and recreates the mock fixture:
// one full team, one team with an open slot, a solo participant in the
// matching pool, ten public member profiles and one pending claimable
// agent. A one-person team would never exist under the matching rules,
// which is why the solo participant goes to the pool instead.
func (s *SeederService) Seed(ctx context.Context) (*SeedResult, error) {
	hackathonID := model.CurrentHackathonID(s.now())
	result := &SeedResult{HackathonID: hackathonID}

	slog.Info("seeding hackathon fixture", slog.String("hackathon_id", hackathonID))

	if err := s.reset(ctx, hackathonID, result); err != nil {
		return nil, err
	}

	cutoffAt, err := model.MonthEndFromHackathonID(hackathonID)
	if err != nil {
		return nil, err
	}

	teams := []model.Team{
		{
			HackathonID: hackathonID,
			Name:        strPtr("Full Stack Crew"),
			MemberIDs:   []string{mockMemberPrefix + "1", mockMemberPrefix + "2", mockMemberPrefix + "3"},
			Wins:        1,
		},
		{
			HackathonID: hackathonID,
			Name:        strPtr("Open Slot Squad"),
			MemberIDs:   []string{mockMemberPrefix + "4", mockMemberPrefix + "5"},
			Wins:        1,
		},
	}

	for i := range teams {
		team := teams[i]
		team.CreatedBy = team.MemberIDs[0]

		created, err := s.teams.Create(ctx, &team)
		if err != nil {
			return nil, fmt.Errorf("failed to create team %q: %w", *team.Name, err)
		}
		result.Teams++

		slog.Info("seeded team",
			slog.String("name", *created.Name),
			slog.Bool("open_slot", !created.IsFull()),
		)

		// Teams with a recorded win get a matching successful submission
		if team.Wins > 0 {
			submittedAt := s.now()
			_, err := s.submissions.Create(ctx, &model.Submission{
				HackathonID:  hackathonID,
				TeamID:       created.ID,
				RepoURL:      "https://github.com/mock/hackathon-project",
				RegisteredBy: team.MemberIDs[0],
				SubmittedAt:  &submittedAt,
				CutoffAt:     cutoffAt,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create submission: %w", err)
			}
			result.Submissions++
		}
	}

	if err := s.seedPoolUser(ctx, hackathonID, result); err != nil {
		return nil, err
	}
	if err := s.seedProfiles(ctx, result); err != nil {
		return nil, err
	}
	if err := s.seedAgent(ctx, result); err != nil {
		return nil, err
	}

	metrics.SeedRunsTotal.Inc()
	slog.Info("seed complete",
		slog.String("hackathon_id", hackathonID),
		slog.Int("teams", result.Teams),
		slog.Int("submissions", result.Submissions),
		slog.Int("profiles", result.Profiles),
	)

	return result, nil
}

// reset deletes this cycle's submissions, invites, join requests, teams
// and pool entries, in dependency order.
func (s *SeederService) reset(ctx context.Context, hackathonID string, result *SeedResult) error {
	existing, err := s.teams.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return fmt.Errorf("failed to list existing teams: %w", err)
	}

	if err := s.submissions.DeleteByHackathon(ctx, hackathonID); err != nil {
		return fmt.Errorf("failed to delete submissions: %w", err)
	}

	for _, team := range existing {
		if err := s.invites.DeleteInvitesByTeam(ctx, team.ID); err != nil {
			return fmt.Errorf("failed to delete invites: %w", err)
		}
		if err := s.invites.DeleteJoinRequestsByTeam(ctx, team.ID); err != nil {
			return fmt.Errorf("failed to delete join requests: %w", err)
		}
	}

	if err := s.teams.DeleteByHackathon(ctx, hackathonID); err != nil {
		return fmt.Errorf("failed to delete teams: %w", err)
	}
	result.TeamsDeleted = len(existing)

	if err := s.pool.DeleteByHackathon(ctx, hackathonID); err != nil {
		return fmt.Errorf("failed to delete pool entries: %w", err)
	}

	return nil
}

func (s *SeederService) seedPoolUser(ctx context.Context, hackathonID string, result *SeedResult) error {
	poolUser := &model.User{
		DisplayName: "Jordan Lee",
		Discord:     &model.Discord{Username: "jordan_lee"},
		SocialLinks: &model.SocialLinks{GitHub: strPtr("jordanlee-dev")},
		Visibility:  model.UserVisibility{IsPublic: true},
	}
	if err := s.users.Upsert(ctx, mockPoolUserID, poolUser); err != nil {
		return fmt.Errorf("failed to create pool user: %w", err)
	}

	entry := &model.PoolEntry{
		UserID:      mockPoolUserID,
		HackathonID: hackathonID,
		DisplayName: poolUser.DisplayName,
	}
	if err := s.pool.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to add pool entry: %w", err)
	}
	result.PoolEntries++

	return nil
}

func (s *SeederService) seedProfiles(ctx context.Context, result *SeedResult) error {
	visibility := model.UserVisibility{
		IsPublic:           true,
		ShowBio:            true,
		ShowLocation:       true,
		ShowCompany:        true,
		ShowJobTitle:       true,
		ShowEventsAttended: true,
		ShowTalksGiven:     true,
		ShowMemberSince:    true,
	}

	for i, p := range mockMemberProfiles {
		uid := fmt.Sprintf("%s%d", mockProfilePrefix, i+1)
		user := &model.User{
			DisplayName: p.displayName,
			Bio:         p.bio,
			Location:    p.location,
			Company:     p.company,
			JobTitle:    p.jobTitle,
			Visibility:  visibility,
		}
		if err := s.users.Upsert(ctx, uid, user); err != nil {
			return fmt.Errorf("failed to create profile %q: %w", p.displayName, err)
		}
		result.Profiles++
	}

	return nil
}

// seedAgent creates one pending agent with a fresh claim token so the
// claim flow can be exercised locally. The token is logged once.
func (s *SeederService) seedAgent(ctx context.Context, result *SeedResult) error {
	token := uuid.New().String()
	expiresAt := s.now().Add(model.ClaimTokenTTL)

	agent := &model.Agent{
		Name:           "Cursor Concierge",
		Description:    "Answers questions about Cursor Boston events.",
		Status:         model.AgentStatusPending,
		ClaimToken:     &token,
		ClaimExpiresAt: &expiresAt,
		Visibility:     model.AgentVisibility{IsPublic: true, ShowOwner: true},
	}
	if err := s.agents.Upsert(ctx, mockAgentID, agent); err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	result.Agents++

	slog.Info("seeded claimable agent",
		slog.String("agent", agent.Name),
		slog.String("claim_token", token),
	)

	return nil
}

func strPtr(s string) *string {
	return &s
}
