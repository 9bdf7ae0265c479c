package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cursorboston/community-api/internal/middleware"
	"github.com/cursorboston/community-api/internal/model"
	"github.com/cursorboston/community-api/internal/service"
)

const claimExpiredHint = "The agent may have already been claimed, or the claim link has expired (7 days)."

// AgentHandler handles agent claim endpoints
type AgentHandler struct {
	agents *service.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agents *service.AgentService) *AgentHandler {
	return &AgentHandler{agents: agents}
}

// GetClaimInfo handles GET /api/agents/claim/{token}.
// Works for anonymous viewers; canClaim reflects whether they are signed in.
func (h *AgentHandler) GetClaimInfo(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	viewer := middleware.GetIdentity(r.Context())

	info, err := h.agents.GetClaimInfo(r.Context(), token, viewer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClaimTokenRequired):
			writeClaimError(w, http.StatusBadRequest, "Claim token is required", "")
		case errors.Is(err, service.ErrAgentNotClaimable):
			writeClaimError(w, http.StatusNotFound, "Invalid or expired claim token", claimExpiredHint)
		default:
			slog.Error("failed to get claim info", slog.Any("error", err))
			writeClaimError(w, http.StatusInternalServerError, "Failed to get claim information", "")
		}
		return
	}

	message := "Please log in to claim this agent."
	var user interface{}
	if viewer != nil {
		message = fmt.Sprintf("You are logged in as %s. Click confirm to claim this agent.", viewer.Email)
		user = map[string]string{
			"uid":         viewer.UID,
			"email":       viewer.Email,
			"displayName": viewer.Name,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"agent": map[string]interface{}{
			"id":             info.Agent.ID,
			"name":           info.Agent.Name,
			"description":    info.Agent.Description,
			"status":         info.Agent.Status,
			"createdAt":      info.Agent.CreatedAt,
			"claimExpiresAt": info.Agent.ClaimExpiresAt,
		},
		"user":     user,
		"canClaim": info.CanClaim,
		"message":  message,
	})
}

// Claim handles POST /api/agents/claim/{token}. Requires authentication;
// the route is wrapped in the auth middleware.
func (h *AgentHandler) Claim(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	owner := middleware.GetIdentity(r.Context())
	if owner == nil {
		writeClaimError(w, http.StatusUnauthorized, "Authentication required", "Please log in to claim this agent")
		return
	}

	agent, apiKey, err := h.agents.Claim(r.Context(), token, *owner)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClaimTokenRequired):
			writeClaimError(w, http.StatusBadRequest, "Claim token is required", "")
		case errors.Is(err, service.ErrAgentNotClaimable):
			writeClaimError(w, http.StatusNotFound, "Invalid or expired claim token", claimExpiredHint)
		default:
			slog.Error("failed to claim agent", slog.Any("error", err))
			writeClaimError(w, http.StatusInternalServerError, "Failed to claim agent", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Agent claimed successfully!",
		"agent": map[string]interface{}{
			"id":          agent.ID,
			"name":        agent.Name,
			"description": agent.Description,
			"status":      agent.Status,
			"owner": map[string]string{
				"uid":         owner.UID,
				"email":       owner.Email,
				"displayName": owner.Name,
			},
			"claimedAt": agent.ClaimedAt,
		},
		"apiKey": apiKey,
		"nextSteps": []string{
			"Your agent is now linked to your account.",
			"Store the API key somewhere safe; it will not be shown again.",
			"You can view your agents in your profile settings.",
		},
	})
}

// ListOwned handles GET /api/agents/user
func (h *AgentHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetIdentity(r.Context())
	if owner == nil {
		writeClaimError(w, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	agents, err := h.agents.ListOwned(r.Context(), owner.UID)
	if err != nil {
		slog.Error("failed to list agents", slog.Any("error", err))
		writeClaimError(w, http.StatusInternalServerError, "Failed to fetch agents", "")
		return
	}

	out := make([]map[string]interface{}, 0, len(agents))
	for _, agent := range agents {
		out = append(out, ownedAgentResponse(agent))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"agents":  out,
	})
}

func ownedAgentResponse(agent *model.Agent) map[string]interface{} {
	return map[string]interface{}{
		"id":           agent.ID,
		"name":         agent.Name,
		"description":  agent.Description,
		"avatarUrl":    agent.AvatarURL,
		"status":       agent.Status,
		"claimedAt":    agent.ClaimedAt,
		"lastActiveAt": agent.LastActiveAt,
		"visibility": map[string]bool{
			"isPublic":  agent.Visibility.IsPublic,
			"showOwner": agent.Visibility.ShowOwner,
		},
	}
}
