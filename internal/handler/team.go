package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cursorboston/community-api/internal/middleware"
	"github.com/cursorboston/community-api/internal/service"
)

// TeamHandler handles hackathon team endpoints
type TeamHandler struct {
	teams *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// UpdateProfile handles PATCH /api/hackathons/team/profile.
// Body: {teamId, name?, logoUrl?}. The raw body is decoded field by field:
// only string values are honored (empty string clears the field), and an
// omitted field or a non-string value leaves the field untouched.
func (h *TeamHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentity(r.Context())
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = nil
	}

	var teamID string
	if raw, ok := body["teamId"]; ok {
		_ = json.Unmarshal(raw, &teamID)
	}
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "teamId required")
		return
	}

	update := service.ProfileUpdate{}
	if s, ok := decodeString(body["name"]); ok {
		update["name"] = s
	}
	if s, ok := decodeString(body["logoUrl"]); ok {
		update["logo_url"] = s
	}

	err := h.teams.UpdateProfile(r.Context(), caller.UID, teamID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoProfileFields):
			writeError(w, http.StatusBadRequest, "Provide name and/or logoUrl")
		case errors.Is(err, service.ErrTeamNotFound):
			writeError(w, http.StatusNotFound, "Team not found")
		case errors.Is(err, service.ErrNotTeamMember):
			writeError(w, http.StatusForbidden, "You are not a member of this team")
		case errors.Is(err, service.ErrProfileLocked):
			writeError(w, http.StatusForbidden, "Team profile is unlocked after winning a hackathon (wins >= 1)")
		default:
			slog.Error("failed to update team profile", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodeString reports whether raw holds a JSON string and returns it.
// Absent fields, nulls and non-strings are not strings.
func decodeString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var p *string
	if err := json.Unmarshal(raw, &p); err != nil || p == nil {
		return "", false
	}
	return *p, true
}
