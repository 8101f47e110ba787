package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
	"github.com/immunitrack/vaccine-tracker-api/internal/notifier"
)

const duplicateSessionMessage = "Duplicate session: This person already has this dose scheduled or completed"

type SessionHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewSessionHandler(db *gorm.DB, n notifier.Notifier) *SessionHandler {
	return &SessionHandler{db: db, notifier: n}
}

type ListSessionsInput struct {
	Page     int    `query:"page" minimum:"1" doc:"Page number, defaults to 1"`
	Limit    int    `query:"limit" minimum:"1" maximum:"100" doc:"Items per page, defaults to 10"`
	Person   uint   `query:"person" doc:"Filter by person id"`
	Vaccine  uint   `query:"vaccine" doc:"Filter by vaccine id"`
	Location uint   `query:"location" doc:"Filter by location id"`
	Status   string `query:"status" enum:"scheduled,completed,cancelled,no-show"`
	Date     string `query:"date" doc:"Filter by calendar day, YYYY-MM-DD"`
}

func (h *SessionHandler) HandleList(ctx context.Context, input *ListSessionsInput) (*ListOutput[models.VaccineSession], error) {
	p := ListParams{Page: input.Page, Limit: input.Limit}
	p.normalize()

	query := h.db.Model(&models.VaccineSession{})
	if input.Person != 0 {
		query = query.Where("person_id = ?", input.Person)
	}
	if input.Vaccine != 0 {
		query = query.Where("vaccine_id = ?", input.Vaccine)
	}
	if input.Location != 0 {
		query = query.Where("location_id = ?", input.Location)
	}
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}
	if input.Date != "" {
		day, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid date filter, expected YYYY-MM-DD")
		}
		// Whole calendar day.
		query = query.Where("vaccination_date >= ? AND vaccination_date < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	var sessions []models.VaccineSession
	err := query.
		Preload("Person").Preload("Vaccine").Preload("Location").
		Order("vaccination_date DESC, vaccination_time ASC").
		Offset(p.offset()).Limit(p.Limit).
		Find(&sessions).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewListOutput(sessions, NewPagination(p.Page, p.Limit, total)), nil
}

type GetSessionInput struct {
	ID string `path:"id"`
}

func (h *SessionHandler) HandleGet(ctx context.Context, input *GetSessionInput) (*ItemOutput[models.VaccineSession], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Session not found")
	}

	var session models.VaccineSession
	err := h.db.Preload("Person").Preload("Vaccine").Preload("Location").First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Session not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(session), nil
}

type CreateSessionInput struct {
	Body struct {
		PersonID        uint      `json:"personId"`
		VaccineID       uint      `json:"vaccineId"`
		LocationID      uint      `json:"locationId"`
		VaccinationDate time.Time `json:"vaccinationDate"`
		VaccinationTime string    `json:"vaccinationTime" doc:"Time of day, e.g. 10:30"`
		DoseNumber      int       `json:"doseNumber" minimum:"1"`
		Status          string    `json:"status,omitempty" enum:"scheduled,completed,cancelled,no-show"`
		Notes           string    `json:"notes,omitempty" maxLength:"500"`
	}
}

// HandleCreate resolves all three references, checks the dose bound
// against the vaccine and inserts together with a history snapshot. The
// existence checks and the insert share a transaction but the store gives
// no serializable guarantee on postgres; a reference deleted concurrently
// can still slip through, which matches the behavior this API replaces.
func (h *SessionHandler) HandleCreate(ctx context.Context, input *CreateSessionInput) (*ItemOutput[models.VaccineSession], error) {
	var person models.Person
	if err := h.db.First(&person, input.Body.PersonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Person not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	var vaccine models.Vaccine
	if err := h.db.First(&vaccine, input.Body.VaccineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Vaccine not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	var location models.Location
	if err := h.db.First(&location, input.Body.LocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Location not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	if input.Body.DoseNumber > vaccine.DosesRequired {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("Dose number cannot exceed %d for this vaccine", vaccine.DosesRequired))
	}

	status := input.Body.Status
	if status == "" {
		status = models.StatusScheduled
	}

	session := models.VaccineSession{
		PersonID:   input.Body.PersonID,
		VaccineID:  input.Body.VaccineID,
		LocationID: input.Body.LocationID,
		SessionFields: models.SessionFields{
			VaccinationDate: input.Body.VaccinationDate,
			VaccinationTime: input.Body.VaccinationTime,
			DoseNumber:      input.Body.DoseNumber,
			Status:          status,
			Notes:           input.Body.Notes,
		},
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return tx.Create(h.snapshot(&session)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest(duplicateSessionMessage)
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	session.Person = person
	session.Vaccine = vaccine
	session.Location = location

	if h.notifier != nil {
		// Best effort; the notifier logs its own failures.
		h.notifier.NotifySession(session)
	}

	return NewItemOutput(session), nil
}

type UpdateSessionInput struct {
	ID   string `path:"id"`
	Body struct {
		PersonID        *uint      `json:"personId,omitempty"`
		VaccineID       *uint      `json:"vaccineId,omitempty"`
		LocationID      *uint      `json:"locationId,omitempty"`
		VaccinationDate *time.Time `json:"vaccinationDate,omitempty"`
		VaccinationTime *string    `json:"vaccinationTime,omitempty"`
		DoseNumber      *int       `json:"doseNumber,omitempty" minimum:"1"`
		Status          *string    `json:"status,omitempty" enum:"scheduled,completed,cancelled,no-show"`
		Notes           *string    `json:"notes,omitempty" maxLength:"500"`
	}
}

func (h *SessionHandler) HandleUpdate(ctx context.Context, input *UpdateSessionInput) (*ItemOutput[models.VaccineSession], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Session not found")
	}

	var session models.VaccineSession
	if err := h.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Session not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	// A session cannot be re-pointed at a record that does not exist.
	if input.Body.PersonID != nil && *input.Body.PersonID != session.PersonID {
		if err := h.db.First(&models.Person{}, *input.Body.PersonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, huma.Error404NotFound("Person not found")
			}
			return nil, huma.Error500InternalServerError("Server error")
		}
	}
	if input.Body.LocationID != nil && *input.Body.LocationID != session.LocationID {
		if err := h.db.First(&models.Location{}, *input.Body.LocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, huma.Error404NotFound("Location not found")
			}
			return nil, huma.Error500InternalServerError("Server error")
		}
	}

	// Re-check the dose bound whenever the vaccine or the dose changes,
	// against the effective vaccine.
	if input.Body.VaccineID != nil || input.Body.DoseNumber != nil {
		vaccineID := session.VaccineID
		if input.Body.VaccineID != nil {
			vaccineID = *input.Body.VaccineID
		}
		doseNumber := session.DoseNumber
		if input.Body.DoseNumber != nil {
			doseNumber = *input.Body.DoseNumber
		}

		var vaccine models.Vaccine
		if err := h.db.First(&vaccine, vaccineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, huma.Error404NotFound("Vaccine not found")
			}
			return nil, huma.Error500InternalServerError("Server error")
		}
		if doseNumber > vaccine.DosesRequired {
			return nil, huma.Error400BadRequest(
				fmt.Sprintf("Dose number cannot exceed %d for this vaccine", vaccine.DosesRequired))
		}
	}

	previousStatus := session.Status

	if input.Body.PersonID != nil {
		session.PersonID = *input.Body.PersonID
	}
	if input.Body.VaccineID != nil {
		session.VaccineID = *input.Body.VaccineID
	}
	if input.Body.LocationID != nil {
		session.LocationID = *input.Body.LocationID
	}
	if input.Body.VaccinationDate != nil {
		session.VaccinationDate = *input.Body.VaccinationDate
	}
	if input.Body.VaccinationTime != nil {
		session.VaccinationTime = *input.Body.VaccinationTime
	}
	if input.Body.DoseNumber != nil {
		session.DoseNumber = *input.Body.DoseNumber
	}
	if input.Body.Status != nil {
		session.Status = *input.Body.Status
	}
	if input.Body.Notes != nil {
		session.Notes = *input.Body.Notes
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return tx.Create(h.snapshot(&session)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest(duplicateSessionMessage)
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	err = h.db.Preload("Person").Preload("Vaccine").Preload("Location").First(&session, session.ID).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	if h.notifier != nil && session.Status != previousStatus {
		h.notifier.NotifySession(session)
	}

	return NewItemOutput(session), nil
}

type DeleteSessionInput struct {
	ID string `path:"id"`
}

// HandleDelete removes the session row for good; history snapshots are
// kept as the audit trail.
func (h *SessionHandler) HandleDelete(ctx context.Context, input *DeleteSessionInput) (*MessageOutput, error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Session not found")
	}

	var session models.VaccineSession
	if err := h.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Session not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	if err := h.db.Unscoped().Delete(&session).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewMessageOutput("Session deleted successfully"), nil
}

func (h *SessionHandler) snapshot(session *models.VaccineSession) *models.SessionHistory {
	return &models.SessionHistory{
		SessionID:     session.ID,
		PersonID:      session.PersonID,
		VaccineID:     session.VaccineID,
		LocationID:    session.LocationID,
		SessionFields: session.SessionFields,
	}
}
