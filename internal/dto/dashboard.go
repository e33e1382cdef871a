package dto

import (
	"github.com/studiocrm/crm-api/internal/services"
)

// RepNoteDTO is a rep note with its timestamp formatted for display
type RepNoteDTO struct {
	Note      string `json:"note"`
	UpdatedAt string `json:"updated_at"`
}

// DashboardResponse is the full dashboard payload consumed by rendering
type DashboardResponse struct {
	Dashboard   services.DashboardStats     `json:"dashboard"`
	Leaderboard []services.LeaderboardEntry `json:"leaderboard"`
	RepNotes    map[string]RepNoteDTO       `json:"rep_notes"`
}

const repNoteTimeLayout = "2006-01-02 15:04"

// ToDashboardResponse converts the service payload for rendering.
func ToDashboardResponse(data *services.DashboardData) DashboardResponse {
	repNotes := make(map[string]RepNoteDTO, len(data.RepNotes))
	for rep, note := range data.RepNotes {
		repNotes[rep] = RepNoteDTO{
			Note:      note.Note,
			UpdatedAt: note.UpdatedAt.Format(repNoteTimeLayout),
		}
	}

	return DashboardResponse{
		Dashboard:   data.Dashboard,
		Leaderboard: data.Leaderboard,
		RepNotes:    repNotes,
	}
}
