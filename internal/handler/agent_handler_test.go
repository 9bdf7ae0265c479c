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

	"github.com/cursorboston/community-api/internal/middleware"
	"github.com/cursorboston/community-api/internal/model"
	"github.com/cursorboston/community-api/internal/service"
)

type stubAgentRepo struct {
	agent *model.Agent
}

func (s *stubAgentRepo) GetByClaimToken(ctx context.Context, token string) (*model.Agent, error) {
	if s.agent != nil && s.agent.ClaimToken != nil && *s.agent.ClaimToken == token {
		return s.agent, nil
	}
	return nil, nil
}

func (s *stubAgentRepo) Claim(ctx context.Context, token string, owner model.Identity, apiKeyHash string) (*model.Agent, error) {
	if s.agent == nil || s.agent.ClaimToken == nil || *s.agent.ClaimToken != token {
		return nil, nil
	}
	claimedAt := time.Now()
	s.agent.Status = model.AgentStatusClaimed
	s.agent.OwnerUID = &owner.UID
	s.agent.ClaimToken = nil
	s.agent.ClaimedAt = &claimedAt
	s.agent.APIKeyHash = apiKeyHash
	return s.agent, nil
}

func (s *stubAgentRepo) ListByOwner(ctx context.Context, ownerUID string) ([]*model.Agent, error) {
	if s.agent != nil && s.agent.OwnerUID != nil && *s.agent.OwnerUID == ownerUID {
		return []*model.Agent{s.agent}, nil
	}
	return nil, nil
}

func (s *stubAgentRepo) ExpireLapsed(ctx context.Context) (int, error) {
	return 0, nil
}

func pendingStubAgent(token string) *model.Agent {
	expires := time.Now().Add(24 * time.Hour)
	return &model.Agent{
		ID:             "agent:helper",
		Name:           "Helper Bot",
		Description:    "Answers questions.",
		Status:         model.AgentStatusPending,
		ClaimToken:     &token,
		ClaimExpiresAt: &expires,
	}
}

func claimRequest(method, token string, identity *model.Identity) *http.Request {
	req := httptest.NewRequest(method, "/api/agents/claim/"+token, nil)
	req.SetPathValue("token", token)
	if identity != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.IdentityKey, identity))
	}
	return req
}

func TestGetClaimInfo_UnknownToken_Indistinct(t *testing.T) {
	t.Parallel()
	h := NewAgentHandler(service.NewAgentService(&stubAgentRepo{}))

	rec := httptest.NewRecorder()
	h.GetClaimInfo(rec, claimRequest(http.MethodGet, "nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid or expired claim token", body["error"])
	assert.Contains(t, body["hint"], "7 days")
}

func TestGetClaimInfo_Anonymous(t *testing.T) {
	t.Parallel()
	h := NewAgentHandler(service.NewAgentService(&stubAgentRepo{agent: pendingStubAgent("tok-1")}))

	rec := httptest.NewRecorder()
	h.GetClaimInfo(rec, claimRequest(http.MethodGet, "tok-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["canClaim"])
	assert.Nil(t, body["user"])

	agent := body["agent"].(map[string]interface{})
	assert.Equal(t, "Helper Bot", agent["name"])
	assert.Equal(t, "pending", agent["status"])
}

func TestGetClaimInfo_Authenticated(t *testing.T) {
	t.Parallel()
	h := NewAgentHandler(service.NewAgentService(&stubAgentRepo{agent: pendingStubAgent("tok-1")}))

	viewer := &model.Identity{UID: "user-1", Email: "u@example.com", Name: "User One"}
	rec := httptest.NewRecorder()
	h.GetClaimInfo(rec, claimRequest(http.MethodGet, "tok-1", viewer))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["canClaim"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["uid"])
	assert.Equal(t, "u@example.com", user["email"])
}

func TestClaim_Success(t *testing.T) {
	t.Parallel()
	h := NewAgentHandler(service.NewAgentService(&stubAgentRepo{agent: pendingStubAgent("tok-1")}))

	owner := &model.Identity{UID: "user-1", Email: "u@example.com", Name: "User One"}
	rec := httptest.NewRecorder()
	h.Claim(rec, claimRequest(http.MethodPost, "tok-1", owner))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Agent claimed successfully!", body["message"])
	assert.NotEmpty(t, body["apiKey"])
	assert.Len(t, body["nextSteps"], 3)

	agent := body["agent"].(map[string]interface{})
	assert.Equal(t, "claimed", agent["status"])
	assert.Equal(t, "user-1", agent["owner"].(map[string]interface{})["uid"])
}

func TestClaim_SecondAttemptGets404(t *testing.T) {
	t.Parallel()
	h := NewAgentHandler(service.NewAgentService(&stubAgentRepo{agent: pendingStubAgent("tok-1")}))

	owner := &model.Identity{UID: "user-1", Email: "u@example.com", Name: "User One"}
	rec := httptest.NewRecorder()
	h.Claim(rec, claimRequest(http.MethodPost, "tok-1", owner))
	require.Equal(t, http.StatusOK, rec.Code)

	// Claimed agents are indistinguishable from unknown tokens
	rival := &model.Identity{UID: "user-2", Email: "r@example.com", Name: "Rival"}
	rec = httptest.NewRecorder()
	h.Claim(rec, claimRequest(http.MethodPost, "tok-1", rival))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired claim token", body["error"])
}

func TestListOwned(t *testing.T) {
	t.Parallel()

	repo := &stubAgentRepo{agent: pendingStubAgent("tok-1")}
	h := NewAgentHandler(service.NewAgentService(repo))

	owner := &model.Identity{UID: "user-1", Email: "u@example.com", Name: "User One"}
	rec := httptest.NewRecorder()
	h.Claim(rec, claimRequest(http.MethodPost, "tok-1", owner))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/agents/user", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.IdentityKey, owner))
	rec = httptest.NewRecorder()
	h.ListOwned(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	agents := body["agents"].([]interface{})
	require.Len(t, agents, 1)
	assert.Equal(t, "Helper Bot", agents[0].(map[string]interface{})["name"])
}
