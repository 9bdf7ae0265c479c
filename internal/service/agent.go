package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cursorboston/community-api/internal/metrics"
	"github.com/cursorboston/community-api/internal/model"
)

// AgentRepository defines the data access interface for agents
type AgentRepository interface {
	GetByClaimToken(ctx context.Context, token string) (*model.Agent, error)
	Claim(ctx context.Context, token string, owner model.Identity, apiKeyHash string) (*model.Agent, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]*model.Agent, error)
	ExpireLapsed(ctx context.Context) (int, error)
}

// AgentService handles the agent claim lifecycle
type AgentService struct {
	agents AgentRepository
}

// NewAgentService creates a new agent service
func NewAgentService(agents AgentRepository) *AgentService {
	return &AgentService{agents: agents}
}

// ClaimInfo describes a claimable agent for the claim page.
type ClaimInfo struct {
	Agent    *model.Agent
	CanClaim bool
}

// GetClaimInfo resolves a claim token to its pending agent. The viewer is
// nil for anonymous requests; they can see the agent but not claim it yet.
func (s *AgentService) GetClaimInfo(ctx context.Context, token string, viewer *model.Identity) (*ClaimInfo, error) {
	if token == "" {
		return nil, ErrClaimTokenRequired
	}

	agent, err := s.agents.GetByClaimToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve claim token: %w", err)
	}
	if agent == nil || !agent.IsClaimable(time.Now()) {
		return nil, ErrAgentNotClaimable
	}

	return &ClaimInfo{Agent: agent, CanClaim: viewer != nil}, nil
}

// Claim redeems a claim token for the authenticated owner. The repository
// performs the transition as a single conditional update, so concurrent
// claims of the same token resolve to exactly one winner. Returns the
// claimed agent and the plaintext API key, which is shown once and only a
// bcrypt hash of it is stored.
func (s *AgentService) Claim(ctx context.Context, token string, owner model.Identity) (*model.Agent, string, error) {
	if token == "" {
		return nil, "", ErrClaimTokenRequired
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate api key: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash api key: %w", err)
	}

	agent, err := s.agents.Claim(ctx, token, owner, string(hash))
	if err != nil {
		return nil, "", fmt.Errorf("failed to claim agent: %w", err)
	}
	if agent == nil {
		metrics.AgentClaimsTotal.WithLabelValues("rejected").Inc()
		return nil, "", ErrAgentNotClaimable
	}

	metrics.AgentClaimsTotal.WithLabelValues("claimed").Inc()
	return agent, apiKey, nil
}

// ListOwned returns the agents claimed by the given user
func (s *AgentService) ListOwned(ctx context.Context, ownerUID string) ([]*model.Agent, error) {
	agents, err := s.agents.ListByOwner(ctx, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

// ExpireLapsed transitions pending agents past their claim window to
// expired. Called periodically by the claim expiry job.
func (s *AgentService) ExpireLapsed(ctx context.Context) (int, error) {
	count, err := s.agents.ExpireLapsed(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to expire agents: %w", err)
	}
	if count > 0 {
		metrics.AgentClaimsExpired.Add(float64(count))
	}
	return count, nil
}

// apiKeyPrefix marks keys issued by this service so leaked keys are easy
// to attribute in scans.
const apiKeyPrefix = "cbagent_"

func generateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return apiKeyPrefix + hex.EncodeToString(buf), nil
}
