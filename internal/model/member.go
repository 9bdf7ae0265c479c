package model

import "time"

// MemberType distinguishes humans from claimed agents on the directory.
type MemberType string

const (
	MemberTypeHuman MemberType = "human"
	MemberTypeAgent MemberType = "agent"
)

// SocialLinks holds the optional profile links a member may expose.
type SocialLinks struct {
	Website  *string `json:"website,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Substack *string `json:"substack,omitempty"`
}

// Discord holds a member's Discord handle.
type Discord struct {
	Username string `json:"username"`
}

// UserVisibility is the per-field opt-in for a human profile. A profile is
// only listed on the directory at all when IsPublic is true.
type UserVisibility struct {
	IsPublic           bool `json:"is_public"`
	ShowEmail          bool `json:"show_email"`
	ShowBio            bool `json:"show_bio"`
	ShowLocation       bool `json:"show_location"`
	ShowCompany        bool `json:"show_company"`
	ShowJobTitle       bool `json:"show_job_title"`
	ShowDiscord        bool `json:"show_discord"`
	ShowEventsAttended bool `json:"show_events_attended"`
	ShowTalksGiven     bool `json:"show_talks_given"`
	ShowMemberSince    bool `json:"show_member_since"`
}

// User is a human community profile.
type User struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Bio         string  `json:"bio,omitempty"`
	Location    string  `json:"location,omitempty"`
	Company     string  `json:"company,omitempty"`
	JobTitle    string  `json:"job_title,omitempty"`

	Discord     *Discord     `json:"discord,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`

	Visibility UserVisibility `json:"visibility"`

	EventsAttended int `json:"events_attended"`
	TalksGiven     int `json:"talks_given"`
	PullRequests   int `json:"pull_requests"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberOwner is the owner attribution shown for an agent that opted in
// to displaying its owner.
type MemberOwner struct {
	DisplayName string `json:"displayName"`
}

// PublicMember is a single directory entry, either a human profile or a
// claimed public agent normalized into the same shape.
type PublicMember struct {
	UID         string     `json:"uid"`
	MemberType  MemberType `json:"memberType"`
	DisplayName string     `json:"displayName"`
	PhotoURL    *string    `json:"photoURL,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Location    string     `json:"location,omitempty"`
	Company     string     `json:"company,omitempty"`
	JobTitle    string     `json:"jobTitle,omitempty"`

	Discord     *Discord     `json:"discord,omitempty"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`

	// Stats may be absent for agents; absent counts sort as zero.
	EventsAttended *int `json:"eventsAttended,omitempty"`
	TalksGiven     *int `json:"talksGiven,omitempty"`
	PullRequests   *int `json:"prsMade,omitempty"`

	Owner *MemberOwner `json:"owner,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// MemberFilters narrows the directory listing. Zero value means no filtering.
type MemberFilters struct {
	// Search matches name, bio, location, company and job title,
	// case-insensitively.
	Search string

	HasDiscord  bool
	HasLinkedIn bool
	HasTwitter  bool
	HasGitHub   bool
	HasSubstack bool
	HasWebsite  bool

	// MemberType is "human", "agent" or empty for both.
	MemberType string
}

// SortOption selects the directory ordering.
type SortOption string

const (
	SortNewest     SortOption = "newest"
	SortOldest     SortOption = "oldest"
	SortMostTalks  SortOption = "mostTalks"
	SortMostEvents SortOption = "mostEvents"
	SortMostPRs    SortOption = "mostPRs"
	SortName       SortOption = "name"
)

// IsValid reports whether s is a recognized sort option.
func (s SortOption) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortMostTalks, SortMostEvents, SortMostPRs, SortName:
		return true
	}
	return false
}
