package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cursorboston/community-api/internal/model"
	"github.com/cursorboston/community-api/internal/service"
)

// DirectoryHandler handles the public member directory
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListMembers handles GET /api/members.
// Query parameters: q, type, sort, and the has_* social filters.
func (h *DirectoryHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := model.MemberFilters{
		Search:      q.Get("q"),
		MemberType:  q.Get("type"),
		HasDiscord:  q.Get("has_discord") == "true",
		HasLinkedIn: q.Get("has_linkedin") == "true",
		HasTwitter:  q.Get("has_twitter") == "true",
		HasGitHub:   q.Get("has_github") == "true",
		HasSubstack: q.Get("has_substack") == "true",
		HasWebsite:  q.Get("has_website") == "true",
	}

	if t := filters.MemberType; t != "" && t != string(model.MemberTypeHuman) && t != string(model.MemberTypeAgent) {
		writeError(w, http.StatusBadRequest, "Invalid member type")
		return
	}

	members, err := h.directory.ListMembers(r.Context(), filters, model.SortOption(q.Get("sort")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			writeError(w, http.StatusBadRequest, "Invalid sort option")
			return
		}
		slog.Error("failed to list members", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}

// Stats handles GET /api/admin/members/stats
func (h *DirectoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.directory.Stats(r.Context())
	if err != nil {
		slog.Error("failed to count members", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch member stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}
