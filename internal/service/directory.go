package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cursorboston/community-api/internal/model"
	"github.com/cursorboston/community-api/internal/repository"
)

// UserLister defines the data access interface for public human profiles
type UserLister interface {
	ListPublic(ctx context.Context) ([]*model.User, error)
	CountVisibilityStats(ctx context.Context) (*repository.VisibilityStats, error)
}

// AgentLister defines the data access interface for public claimed agents
type AgentLister interface {
	ListPublicClaimed(ctx context.Context) ([]*model.Agent, error)
}

// DirectoryService merges humans and claimed agents into one member
// directory and applies filtering and sorting on the merged list.
type DirectoryService struct {
	users  UserLister
	agents AgentLister
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(users UserLister, agents AgentLister) *DirectoryService {
	return &DirectoryService{users: users, agents: agents}
}

// ListMembers returns the filtered, sorted member directory. An empty sort
// defaults to newest.
func (s *DirectoryService) ListMembers(ctx context.Context, filters model.MemberFilters, sortBy model.SortOption) ([]*model.PublicMember, error) {
	if sortBy == "" {
		sortBy = model.SortNewest
	}
	if !sortBy.IsValid() {
		return nil, ErrInvalidSort
	}

	users, err := s.users.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	agents, err := s.agents.ListPublicClaimed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	humans := make([]*model.PublicMember, 0, len(users))
	for _, u := range users {
		humans = append(humans, humanMember(u))
	}

	bots := make([]*model.PublicMember, 0, len(agents))
	for _, a := range agents {
		bots = append(bots, agentMember(a))
	}

	// Both source lists arrive newest-first; merging keeps that order so
	// the secondary sorts below start from a deterministic base.
	members := MergeByNewest(humans, bots)
	members = ApplyFilters(members, filters)
	ApplySort(members, sortBy)

	return members, nil
}

// Stats returns directory opt-in counts across all user records
func (s *DirectoryService) Stats(ctx context.Context) (*repository.VisibilityStats, error) {
	stats, err := s.users.CountVisibilityStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	return stats, nil
}

// humanMember projects a user profile onto the public member shape,
// honoring the per-field visibility opt-ins.
func humanMember(u *model.User) *model.PublicMember {
	m := &model.PublicMember{
		UID:         u.ID,
		MemberType:  model.MemberTypeHuman,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		SocialLinks: u.SocialLinks,
		CreatedAt:   u.CreatedAt,
	}

	if u.Visibility.ShowBio {
		m.Bio = u.Bio
	}
	if u.Visibility.ShowLocation {
		m.Location = u.Location
	}
	if u.Visibility.ShowCompany {
		m.Company = u.Company
	}
	if u.Visibility.ShowJobTitle {
		m.JobTitle = u.JobTitle
	}
	if u.Visibility.ShowDiscord {
		m.Discord = u.Discord
	}
	if u.Visibility.ShowEventsAttended {
		events := u.EventsAttended
		m.EventsAttended = &events
	}
	if u.Visibility.ShowTalksGiven {
		talks := u.TalksGiven
		m.TalksGiven = &talks
	}
	prs := u.PullRequests
	m.PullRequests = &prs

	return m
}

// agentMember normalizes a claimed agent onto the public member shape.
// Agents have no attendance stats; those fields stay absent and sort
// as zero.
func agentMember(a *model.Agent) *model.PublicMember {
	m := &model.PublicMember{
		UID:         a.ID,
		MemberType:  model.MemberTypeAgent,
		DisplayName: a.Name,
		PhotoURL:    a.AvatarURL,
		Bio:         a.Description,
		CreatedAt:   a.CreatedAt,
	}

	if a.Visibility.ShowOwner && a.OwnerDisplayName != nil {
		m.Owner = &model.MemberOwner{DisplayName: *a.OwnerDisplayName}
	}

	return m
}

// MergeByNewest merges two lists that are each ordered newest-first into
// one list with the same ordering.
func MergeByNewest(a, b []*model.PublicMember) []*model.PublicMember {
	merged := make([]*model.PublicMember, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].CreatedAt.After(b[j].CreatedAt) {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// ApplyFilters returns the members matching every active filter.
func ApplyFilters(members []*model.PublicMember, filters model.MemberFilters) []*model.PublicMember {
	out := make([]*model.PublicMember, 0, len(members))
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	for _, m := range members {
		if filters.MemberType != "" && string(m.MemberType) != filters.MemberType {
			continue
		}
		if filters.HasDiscord && m.Discord == nil {
			continue
		}
		if filters.HasLinkedIn && !hasLink(m.SocialLinks, func(l *model.SocialLinks) *string { return l.LinkedIn }) {
			continue
		}
		if filters.HasTwitter && !hasLink(m.SocialLinks, func(l *model.SocialLinks) *string { return l.Twitter }) {
			continue
		}
		if filters.HasGitHub && !hasLink(m.SocialLinks, func(l *model.SocialLinks) *string { return l.GitHub }) {
			continue
		}
		if filters.HasSubstack && !hasLink(m.SocialLinks, func(l *model.SocialLinks) *string { return l.Substack }) {
			continue
		}
		if filters.HasWebsite && !hasLink(m.SocialLinks, func(l *model.SocialLinks) *string { return l.Website }) {
			continue
		}
		if search != "" && !matchesSearch(m, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func hasLink(links *model.SocialLinks, pick func(*model.SocialLinks) *string) bool {
	if links == nil {
		return false
	}
	v := pick(links)
	return v != nil && *v != ""
}

func matchesSearch(m *model.PublicMember, search string) bool {
	for _, field := range []string{m.DisplayName, m.Bio, m.Location, m.Company, m.JobTitle} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// ApplySort orders members in place. Count sorts treat absent stats as
// zero; the name sort is case-insensitive ascending.
func ApplySort(members []*model.PublicMember, sortBy model.SortOption) {
	switch sortBy {
	case model.SortNewest:
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].CreatedAt.After(members[j].CreatedAt)
		})
	case model.SortOldest:
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		})
	case model.SortMostTalks:
		sort.SliceStable(members, func(i, j int) bool {
			return intOrZero(members[i].TalksGiven) > intOrZero(members[j].TalksGiven)
		})
	case model.SortMostEvents:
		sort.SliceStable(members, func(i, j int) bool {
			return intOrZero(members[i].EventsAttended) > intOrZero(members[j].EventsAttended)
		})
	case model.SortMostPRs:
		sort.SliceStable(members, func(i, j int) bool {
			return intOrZero(members[i].PullRequests) > intOrZero(members[j].PullRequests)
		})
	case model.SortName:
		sort.SliceStable(members, func(i, j int) bool {
			return strings.ToLower(members[i].DisplayName) < strings.ToLower(members[j].DisplayName)
		})
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
