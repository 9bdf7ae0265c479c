package handler

import (
	"log/slog"
	"net/http"

	"github.com/cursorboston/community-api/internal/service"
)

// AdminHandler handles admin-only maintenance endpoints
type AdminHandler struct {
	seeder *service.SeederService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(seeder *service.SeederService) *AdminHandler {
	return &AdminHandler{seeder: seeder}
}

// SeedHackathon handles POST /api/admin/seed/hackathon.
// Resets and reseeds the current cycle's mock data; safe to call repeatedly.
func (h *AdminHandler) SeedHackathon(w http.ResponseWriter, r *http.Request) {
	result, err := h.seeder.Seed(r.Context())
	if err != nil {
		slog.Error("seed failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to seed hackathon data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
