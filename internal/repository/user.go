package repository

import (
	"context"
	"errors"

	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/model"
)

// UserRepository handles human profile data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID. Returns nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::thing('user', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := record(result)
	if !ok {
		return nil, errors.New("unexpected user result format")
	}
	return parseUser(data), nil
}

// ListPublic retrieves users that opted into the public directory,
// newest first.
func (r *UserRepository) ListPublic(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT * FROM user
		WHERE visibility.is_public = true
		ORDER BY created_at DESC
	`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := rows(results)
	users := make([]*model.User, 0, len(records))
	for _, data := range records {
		users = append(users, parseUser(data))
	}
	return users, nil
}

// VisibilityStats summarizes directory opt-in across all user records.
type VisibilityStats struct {
	Total          int `json:"total"`
	WithVisibility int `json:"withVisibility"`
	Public         int `json:"public"`
}

// CountVisibilityStats counts all users, users with a visibility object,
// and users listed publicly.
func (r *UserRepository) CountVisibilityStats(ctx context.Context) (*VisibilityStats, error) {
	query := `
		SELECT count() FROM user GROUP ALL;
		SELECT count() FROM user WHERE visibility != NONE GROUP ALL;
		SELECT count() FROM user WHERE visibility.is_public = true GROUP ALL;
	`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	if len(results) != 3 {
		return nil, errors.New("unexpected stats result format")
	}

	return &VisibilityStats{
		Total:          extractCount(statementResult(results[0])),
		WithVisibility: extractCount(statementResult(results[1])),
		Public:         extractCount(statementResult(results[2])),
	}, nil
}

// Upsert creates or replaces a user profile under a fixed record ID. Used
// by the seeder so repeated runs stay idempotent.
func (r *UserRepository) Upsert(ctx context.Context, id string, user *model.User) error {
	query := `
		UPSERT type::thing('user', $id) CONTENT {
			display_name: $display_name,
			email: $email,
			photo_url: $photo_url,
			bio: $bio,
			location: $location,
			company: $company,
			job_title: $job_title,
			discord: $discord,
			social_links: $social_links,
			visibility: $visibility,
			events_attended: $events_attended,
			talks_given: $talks_given,
			pull_requests: $pull_requests,
			created_at: time::now(),
			updated_at: time::now()
		}
	`

	var discord map[string]interface{}
	if user.Discord != nil {
		discord = map[string]interface{}{"username": user.Discord.Username}
	}

	var socialLinks map[string]interface{}
	if user.SocialLinks != nil {
		socialLinks = map[string]interface{}{
			"website":  user.SocialLinks.Website,
			"linkedin": user.SocialLinks.LinkedIn,
			"twitter":  user.SocialLinks.Twitter,
			"github":   user.SocialLinks.GitHub,
			"substack": user.SocialLinks.Substack,
		}
	}

	vars := map[string]interface{}{
		"id":           id,
		"display_name": user.DisplayName,
		"email":        user.Email,
		"photo_url":    user.PhotoURL,
		"bio":          user.Bio,
		"location":     user.Location,
		"company":      user.Company,
		"job_title":    user.JobTitle,
		"discord":      discord,
		"social_links": socialLinks,
		"visibility": map[string]interface{}{
			"is_public":            user.Visibility.IsPublic,
			"show_email":           user.Visibility.ShowEmail,
			"show_bio":             user.Visibility.ShowBio,
			"show_location":        user.Visibility.ShowLocation,
			"show_company":         user.Visibility.ShowCompany,
			"show_job_title":       user.Visibility.ShowJobTitle,
			"show_discord":         user.Visibility.ShowDiscord,
			"show_events_attended": user.Visibility.ShowEventsAttended,
			"show_talks_given":     user.Visibility.ShowTalksGiven,
			"show_member_since":    user.Visibility.ShowMemberSince,
		},
		"events_attended": user.EventsAttended,
		"talks_given":     user.TalksGiven,
		"pull_requests":   user.PullRequests,
	}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

// statementResult unwraps one {status, result} entry of a Query response.
func statementResult(res interface{}) interface{} {
	if resp, ok := res.(map[string]interface{}); ok {
		return resp["result"]
	}
	return res
}

func parseUser(data map[string]interface{}) *model.User {
	user := &model.User{
		ID:             extractRecordID(data["id"]),
		DisplayName:    getString(data, "display_name"),
		Email:          getString(data, "email"),
		PhotoURL:       getStringPtr(data, "photo_url"),
		Bio:            getString(data, "bio"),
		Location:       getString(data, "location"),
		Company:        getString(data, "company"),
		JobTitle:       getString(data, "job_title"),
		EventsAttended: getInt(data, "events_attended"),
		TalksGiven:     getInt(data, "talks_given"),
		PullRequests:   getInt(data, "pull_requests"),
		CreatedAt:      timeOrZero(data, "created_at"),
		UpdatedAt:      timeOrZero(data, "updated_at"),
	}

	if discord := getMap(data, "discord"); discord != nil {
		if username := getString(discord, "username"); username != "" {
			user.Discord = &model.Discord{Username: username}
		}
	}

	if links := getMap(data, "social_links"); links != nil {
		user.SocialLinks = &model.SocialLinks{
			Website:  getStringPtr(links, "website"),
			LinkedIn: getStringPtr(links, "linkedin"),
			Twitter:  getStringPtr(links, "twitter"),
			GitHub:   getStringPtr(links, "github"),
			Substack: getStringPtr(links, "substack"),
		}
	}

	if vis := getMap(data, "visibility"); vis != nil {
		user.Visibility = model.UserVisibility{
			IsPublic:           getBool(vis, "is_public"),
			ShowEmail:          getBool(vis, "show_email"),
			ShowBio:            getBool(vis, "show_bio"),
			ShowLocation:       getBool(vis, "show_location"),
			ShowCompany:        getBool(vis, "show_company"),
			ShowJobTitle:       getBool(vis, "show_job_title"),
			ShowDiscord:        getBool(vis, "show_discord"),
			ShowEventsAttended: getBool(vis, "show_events_attended"),
			ShowTalksGiven:     getBool(vis, "show_talks_given"),
			ShowMemberSince:    getBool(vis, "show_member_since"),
		}
	}

	return user
}
