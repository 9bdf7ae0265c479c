package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursorboston/community-api/internal/model"
	"github.com/cursorboston/community-api/internal/repository"
	"github.com/cursorboston/community-api/internal/service"
)

type stubUserLister struct {
	users []*model.User
	stats *repository.VisibilityStats
}

func (s *stubUserLister) ListPublic(ctx context.Context) ([]*model.User, error) {
	return s.users, nil
}

func (s *stubUserLister) CountVisibilityStats(ctx context.Context) (*repository.VisibilityStats, error) {
	return s.stats, nil
}

type stubAgentLister struct {
	agents []*model.Agent
}

func (s *stubAgentLister) ListPublicClaimed(ctx context.Context) ([]*model.Agent, error) {
	return s.agents, nil
}

func directoryFixture() *DirectoryHandler {
	created := func(day int) time.Time {
		return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	}

	users := &stubUserLister{
		users: []*model.User{
			{
				ID: "user:1", DisplayName: "Alex", TalksGiven: 3, CreatedAt: created(5),
				Visibility: model.UserVisibility{IsPublic: true, ShowTalksGiven: true},
			},
			{
				ID: "user:2", DisplayName: "Sam", TalksGiven: 7, CreatedAt: created(2),
				Visibility: model.UserVisibility{IsPublic: true, ShowTalksGiven: true},
			},
		},
		stats: &repository.VisibilityStats{Total: 12, WithVisibility: 8, Public: 5},
	}
	agents := &stubAgentLister{
		agents: []*model.Agent{
			{
				ID: "agent:1", Name: "Helper", Status: model.AgentStatusClaimed, CreatedAt: created(4),
				Visibility: model.AgentVisibility{IsPublic: true},
			},
		},
	}

	return NewDirectoryHandler(service.NewDirectoryService(users, agents))
}

func getMembers(t *testing.T, h *DirectoryHandler, query string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/members"+query, nil)
	rec := httptest.NewRecorder()
	h.ListMembers(rec, req)

	var body map[string]interface{}
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestListMembers_Default(t *testing.T) {
	t.Parallel()
	rec, body := getMembers(t, directoryFixture(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["count"])

	members := body["members"].([]interface{})
	require.Len(t, members, 3)
	// Newest first: Alex (5th), Helper (4th), Sam (2nd)
	assert.Equal(t, "Alex", members[0].(map[string]interface{})["displayName"])
	assert.Equal(t, "Helper", members[1].(map[string]interface{})["displayName"])
	assert.Equal(t, "agent", members[1].(map[string]interface{})["memberType"])
}

func TestListMembers_SortMostTalks(t *testing.T) {
	t.Parallel()
	rec, body := getMembers(t, directoryFixture(), "?sort=mostTalks")

	require.Equal(t, http.StatusOK, rec.Code)
	members := body["members"].([]interface{})
	require.Len(t, members, 3)
	// Sam 7, Alex 3, Helper has no stats and sorts last
	assert.Equal(t, "Sam", members[0].(map[string]interface{})["displayName"])
	assert.Equal(t, "Alex", members[1].(map[string]interface{})["displayName"])
	assert.Equal(t, "Helper", members[2].(map[string]interface{})["displayName"])
}

func TestListMembers_TypeFilter(t *testing.T) {
	t.Parallel()
	rec, body := getMembers(t, directoryFixture(), "?type=agent")

	require.Equal(t, http.StatusOK, rec.Code)
	members := body["members"].([]interface{})
	require.Len(t, members, 1)
	assert.Equal(t, "Helper", members[0].(map[string]interface{})["displayName"])
}

func TestListMembers_InvalidType(t *testing.T) {
	t.Parallel()
	rec, _ := getMembers(t, directoryFixture(), "?type=robot")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMembers_InvalidSort(t *testing.T) {
	t.Parallel()
	rec, _ := getMembers(t, directoryFixture(), "?sort=karma")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemberStats(t *testing.T) {
	t.Parallel()
	h := directoryFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/members/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(12), stats["total"])
	assert.Equal(t, float64(5), stats["public"])
}

func TestRobots(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	rec := httptest.NewRecorder()
	Robots(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Disallow: /api/")
	assert.Contains(t, rec.Body.String(), "Disallow: /hackathons/team/")
	assert.Contains(t, rec.Body.String(), "Disallow: /hackathons/pool/")
}
