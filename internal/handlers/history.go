package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

type SessionHistoryInput struct {
	ID   string `path:"id"`
	Diff bool   `query:"diff" doc:"Annotate each entry with the fields changed since the previous one"`
}

type HistoryEntry struct {
	models.SessionHistory
	Changed []string `json:"changed,omitempty"`
}

type SessionHistoryOutput struct {
	Body struct {
		Success bool           `json:"success"`
		Data    []HistoryEntry `json:"data"`
	}
}

// HandleHistory lists the snapshots of a session oldest-first. History
// outlives the session itself, so a deleted session still answers here as
// long as snapshots exist.
func (h *SessionHandler) HandleHistory(ctx context.Context, input *SessionHistoryInput) (*SessionHistoryOutput, error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Session not found")
	}

	var history []models.SessionHistory
	err := h.db.Where("session_id = ?", id).Order("created_at ASC, id ASC").Find(&history).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	if len(history) == 0 {
		var session models.VaccineSession
		if err := h.db.First(&session, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, huma.Error404NotFound("Session not found")
			}
			return nil, huma.Error500InternalServerError("Server error")
		}
	}

	entries := make([]HistoryEntry, 0, len(history))
	for i, snapshot := range history {
		entry := HistoryEntry{SessionHistory: snapshot}
		if input.Diff && i > 0 {
			entry.Changed = changedFields(history[i-1], snapshot)
		}
		entries = append(entries, entry)
	}

	res := &SessionHistoryOutput{}
	res.Body.Success = true
	res.Body.Data = entries
	return res, nil
}

func changedFields(prev, cur models.SessionHistory) []string {
	var changed []string
	if cur.PersonID != prev.PersonID {
		changed = append(changed, "person")
	}
	if cur.VaccineID != prev.VaccineID {
		changed = append(changed, "vaccine")
	}
	if cur.LocationID != prev.LocationID {
		changed = append(changed, "location")
	}
	if !cur.VaccinationDate.Equal(prev.VaccinationDate) {
		changed = append(changed, "vaccinationDate")
	}
	if cur.VaccinationTime != prev.VaccinationTime {
		changed = append(changed, "vaccinationTime")
	}
	if cur.DoseNumber != prev.DoseNumber {
		changed = append(changed, "doseNumber")
	}
	if cur.Status != prev.Status {
		changed = append(changed, "status")
	}
	if cur.Notes != prev.Notes {
		changed = append(changed, "notes")
	}
	return changed
}
