package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxTeamSize is the hard cap on members per hackathon team.
const MaxTeamSize = 3

// Team is a hackathon team within one virtual hackathon cycle.
type Team struct {
	ID          string   `json:"id"`
	HackathonID string   `json:"hackathon_id"`
	Name        *string  `json:"name,omitempty"`
	LogoURL     *string  `json:"logo_url,omitempty"`
	MemberIDs   []string `json:"member_ids"`
	Wins        int      `json:"wins"`
	CreatedBy   string   `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMember reports whether uid is on the team roster.
func (t *Team) HasMember(uid string) bool {
	for _, id := range t.MemberIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// IsFull reports whether the team has reached the member cap.
func (t *Team) IsFull() bool {
	return len(t.MemberIDs) >= MaxTeamSize
}

// PoolEntry is a solo participant waiting to be matched into a team.
// The record ID is the composite "<user_id>_<hackathon_id>" so joining
// the pool twice overwrites rather than duplicates.
type PoolEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	HackathonID string    `json:"hackathon_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

// PoolEntryID builds the composite record ID for a pool entry.
func PoolEntryID(userID, hackathonID string) string {
	return userID + "_" + hackathonID
}

// Submission is a team's registered project for one cycle. A team may
// register a repository early and submit once before the cutoff.
type Submission struct {
	ID           string     `json:"id"`
	HackathonID  string     `json:"hackathon_id"`
	TeamID       string     `json:"team_id"`
	RepoURL      string     `json:"repo_url"`
	RegisteredBy string     `json:"registered_by"`
	RegisteredAt time.Time  `json:"registered_at"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	CutoffAt     time.Time  `json:"cutoff_at"`
}

// Invite is a pending invitation from a team to a user.
type Invite struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	UserID    string    `json:"user_id"`
	InvitedBy string    `json:"invited_by"`
	CreatedAt time.Time `json:"created_at"`
}

// JoinRequest is a pending request from a user to join a team.
type JoinRequest struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentHackathonID derives the virtual hackathon cycle identifier for the
// given instant, one cycle per calendar month: "virtual-YYYY-MM".
func CurrentHackathonID(now time.Time) string {
	return fmt.Sprintf("virtual-%04d-%02d", now.Year(), int(now.Month()))
}

// MonthEndFromHackathonID returns the submission cutoff for a virtual cycle
// ID: the last instant of its calendar month, in UTC.
func MonthEndFromHackathonID(id string) (time.Time, error) {
	raw, ok := strings.CutPrefix(id, "virtual-")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid hackathon id %q", id)
	}

	start, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hackathon id %q: %w", id, err)
	}

	return start.AddDate(0, 1, 0).Add(-time.Millisecond), nil
}
