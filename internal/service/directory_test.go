package service

import (
	"context"
	"testing"
	"time"

	"github.com/cursorboston/community-api/internal/model"
	"github.com/cursorboston/community-api/internal/repository"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserLister struct {
	listPublicFunc func(ctx context.Context) ([]*model.User, error)
	statsFunc      func(ctx context.Context) (*repository.VisibilityStats, error)
}

func (m *mockUserLister) ListPublic(ctx context.Context) ([]*model.User, error) {
	if m.listPublicFunc != nil {
		return m.listPublicFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserLister) CountVisibilityStats(ctx context.Context) (*repository.VisibilityStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &repository.VisibilityStats{}, nil
}

type mockAgentLister struct {
	listFunc func(ctx context.Context) ([]*model.Agent, error)
}

func (m *mockAgentLister) ListPublicClaimed(ctx context.Context) ([]*model.Agent, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func day(n int) time.Time {
	return time.Date(2026, 8, n, 12, 0, 0, 0, time.UTC)
}

func member(name string, createdAt time.Time) *model.PublicMember {
	return &model.PublicMember{
		UID:         "user:" + name,
		MemberType:  model.MemberTypeHuman,
		DisplayName: name,
		CreatedAt:   createdAt,
	}
}

func withTalks(m *model.PublicMember, talks int) *model.PublicMember {
	m.TalksGiven = &talks
	return m
}

// ============================================================================
// MergeByNewest Tests
// ============================================================================

func TestMergeByNewest(t *testing.T) {
	t.Parallel()

	humans := []*model.PublicMember{member("a", day(5)), member("b", day(3))}
	agents := []*model.PublicMember{member("c", day(4))}

	merged := MergeByNewest(humans, agents)
	if len(merged) != 3 {
		t.Fatalf("expected 3 members, got %d", len(merged))
	}

	want := []int{5, 4, 3}
	for i, m := range merged {
		if m.CreatedAt.Day() != want[i] {
			t.Errorf("position %d: expected day %d, got %d", i, want[i], m.CreatedAt.Day())
		}
	}
}

func TestMergeByNewest_OneEmpty(t *testing.T) {
	t.Parallel()

	humans := []*model.PublicMember{member("a", day(5))}
	merged := MergeByNewest(humans, nil)
	if len(merged) != 1 || merged[0].DisplayName != "a" {
		t.Errorf("unexpected merge result: %+v", merged)
	}

	merged = MergeByNewest(nil, humans)
	if len(merged) != 1 || merged[0].DisplayName != "a" {
		t.Errorf("unexpected merge result: %+v", merged)
	}
}

// ============================================================================
// ApplySort Tests
// ============================================================================

func TestApplySort_MostTalks_MissingCountsAsZero(t *testing.T) {
	t.Parallel()

	members := []*model.PublicMember{
		withTalks(member("a", day(1)), 3),
		member("b", day(2)), // no stats, sorts as zero
		withTalks(member("c", day(3)), 7),
	}

	ApplySort(members, model.SortMostTalks)

	want := []string{"c", "a", "b"}
	for i, m := range members {
		if m.DisplayName != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], m.DisplayName)
		}
	}
}

func TestApplySort_Name_CaseInsensitive(t *testing.T) {
	t.Parallel()

	members := []*model.PublicMember{
		member("charlie", day(1)),
		member("Alice", day(2)),
		member("bob", day(3)),
	}

	ApplySort(members, model.SortName)

	want := []string{"Alice", "bob", "charlie"}
	for i, m := range members {
		if m.DisplayName != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], m.DisplayName)
		}
	}
}

func TestApplySort_OldestReversesNewest(t *testing.T) {
	t.Parallel()

	members := []*model.PublicMember{member("a", day(5)), member("b", day(3))}

	ApplySort(members, model.SortOldest)
	if members[0].DisplayName != "b" {
		t.Errorf("expected oldest first, got %s", members[0].DisplayName)
	}

	ApplySort(members, model.SortNewest)
	if members[0].DisplayName != "a" {
		t.Errorf("expected newest first, got %s", members[0].DisplayName)
	}
}

// ============================================================================
// ApplyFilters Tests
// ============================================================================

func TestApplyFilters_Search(t *testing.T) {
	t.Parallel()

	boston := member("Alex", day(1))
	boston.Location = "Boston, MA"
	remote := member("Sam", day(2))
	remote.Location = "Remote"

	out := ApplyFilters([]*model.PublicMember{boston, remote}, model.MemberFilters{Search: "boston"})
	if len(out) != 1 || out[0].DisplayName != "Alex" {
		t.Errorf("expected only Alex, got %+v", out)
	}
}

func TestApplyFilters_MemberType(t *testing.T) {
	t.Parallel()

	human := member("Alex", day(1))
	bot := member("Helper", day(2))
	bot.MemberType = model.MemberTypeAgent

	out := ApplyFilters([]*model.PublicMember{human, bot}, model.MemberFilters{MemberType: "agent"})
	if len(out) != 1 || out[0].DisplayName != "Helper" {
		t.Errorf("expected only the agent, got %+v", out)
	}
}

func TestApplyFilters_SocialLinks(t *testing.T) {
	t.Parallel()

	github := "octocat"
	linked := member("Alex", day(1))
	linked.SocialLinks = &model.SocialLinks{GitHub: &github}

	empty := ""
	blank := member("Sam", day(2))
	blank.SocialLinks = &model.SocialLinks{GitHub: &empty}

	none := member("Pat", day(3))

	out := ApplyFilters([]*model.PublicMember{linked, blank, none}, model.MemberFilters{HasGitHub: true})
	if len(out) != 1 || out[0].DisplayName != "Alex" {
		t.Errorf("empty and missing links must not match, got %+v", out)
	}
}

func TestApplyFilters_HasDiscord(t *testing.T) {
	t.Parallel()

	withDiscord := member("Alex", day(1))
	withDiscord.Discord = &model.Discord{Username: "alex"}
	without := member("Sam", day(2))

	out := ApplyFilters([]*model.PublicMember{withDiscord, without}, model.MemberFilters{HasDiscord: true})
	if len(out) != 1 || out[0].DisplayName != "Alex" {
		t.Errorf("expected only Alex, got %+v", out)
	}
}

// ============================================================================
// ListMembers Tests
// ============================================================================

func TestListMembers_MergesHumansAndAgents(t *testing.T) {
	t.Parallel()

	users := &mockUserLister{
		listPublicFunc: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: "user:1", DisplayName: "Alex", CreatedAt: day(5), Visibility: model.UserVisibility{IsPublic: true}},
				{ID: "user:2", DisplayName: "Sam", CreatedAt: day(3), Visibility: model.UserVisibility{IsPublic: true}},
			}, nil
		},
	}
	ownerName := "Alex"
	agents := &mockAgentLister{
		listFunc: func(ctx context.Context) ([]*model.Agent, error) {
			return []*model.Agent{
				{
					ID:               "agent:1",
					Name:             "Helper",
					Status:           model.AgentStatusClaimed,
					CreatedAt:        day(4),
					OwnerDisplayName: &ownerName,
					Visibility:       model.AgentVisibility{IsPublic: true, ShowOwner: true},
				},
			}, nil
		},
	}

	svc := NewDirectoryService(users, agents)
	members, err := svc.ListMembers(context.Background(), model.MemberFilters{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	want := []string{"Alex", "Helper", "Sam"}
	for i, m := range members {
		if m.DisplayName != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], m.DisplayName)
		}
	}
	if members[1].MemberType != model.MemberTypeAgent {
		t.Errorf("expected agent in second position, got %s", members[1].MemberType)
	}
	if members[1].Owner == nil || members[1].Owner.DisplayName != "Alex" {
		t.Errorf("expected owner attribution, got %+v", members[1].Owner)
	}
}

func TestListMembers_VisibilityHidesFields(t *testing.T) {
	t.Parallel()

	users := &mockUserLister{
		listPublicFunc: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{
				{
					ID:          "user:1",
					DisplayName: "Alex",
					Bio:         "secret bio",
					Location:    "Boston, MA",
					TalksGiven:  4,
					CreatedAt:   day(1),
					Visibility: model.UserVisibility{
						IsPublic:     true,
						ShowLocation: true,
						// ShowBio and ShowTalksGiven stay off
					},
				},
			}, nil
		},
	}

	svc := NewDirectoryService(users, &mockAgentLister{})
	members, err := svc.ListMembers(context.Background(), model.MemberFilters{}, model.SortNewest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}

	m := members[0]
	if m.Bio != "" {
		t.Errorf("bio should be hidden, got %q", m.Bio)
	}
	if m.Location != "Boston, MA" {
		t.Errorf("location should be visible, got %q", m.Location)
	}
	if m.TalksGiven != nil {
		t.Errorf("talks should be absent, got %v", *m.TalksGiven)
	}
}

func TestListMembers_InvalidSort(t *testing.T) {
	t.Parallel()

	svc := NewDirectoryService(&mockUserLister{}, &mockAgentLister{})
	_, err := svc.ListMembers(context.Background(), model.MemberFilters{}, "by-karma")
	if err == nil {
		t.Fatal("expected error for invalid sort")
	}
}
