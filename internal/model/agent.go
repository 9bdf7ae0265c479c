package model

import "time"

// AgentStatus is the lifecycle state of an agent account.
type AgentStatus string

const (
	AgentStatusPending AgentStatus = "pending"
	AgentStatusClaimed AgentStatus = "claimed"
	AgentStatusExpired AgentStatus = "expired"
)

// ClaimTokenTTL is how long a claim token stays redeemable after creation.
const ClaimTokenTTL = 7 * 24 * time.Hour

// AgentVisibility controls what an agent exposes on the public directory.
type AgentVisibility struct {
	IsPublic  bool `json:"is_public"`
	ShowOwner bool `json:"show_owner"`
}

// Agent represents an automated account that is pending or already linked
// to a human owner. Agents are registered out of band in pending state and
// transition to claimed exactly once, when a valid unexpired claim token is
// redeemed by an authenticated user.
type Agent struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`

	Status         AgentStatus `json:"status"`
	ClaimToken     *string     `json:"-"`
	ClaimExpiresAt *time.Time  `json:"claim_expires_at,omitempty"`

	// Owner fields, set on claim and immutable afterwards
	OwnerUID         *string `json:"owner_uid,omitempty"`
	OwnerEmail       *string `json:"owner_email,omitempty"`
	OwnerDisplayName *string `json:"owner_display_name,omitempty"`

	// APIKeyHash is the bcrypt hash of the key issued at claim time.
	// The plaintext key is returned once and never stored.
	APIKeyHash string `json:"-"`

	Visibility AgentVisibility `json:"visibility"`

	CreatedAt    time.Time  `json:"created_at"`
	ClaimedAt    *time.Time `json:"claimed_at,omitempty"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// IsClaimable reports whether the agent can still be claimed at the given
// instant: pending status with an unexpired token.
func (a *Agent) IsClaimable(now time.Time) bool {
	if a.Status != AgentStatusPending || a.ClaimToken == nil {
		return false
	}
	return a.ClaimExpiresAt != nil && now.Before(*a.ClaimExpiresAt)
}
