package models

import (
	"time"

	"gorm.io/gorm"
)

// Session statuses. Scheduled and completed count as "active" for the
// one-session-per-dose uniqueness rule; cancelled and no-show do not
// block re-scheduling the same dose.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// SessionFields is embedded by both VaccineSession and SessionHistory so a
// history row is a plain snapshot of the mutable part of a session.
type SessionFields struct {
	VaccinationDate time.Time `json:"vaccinationDate"`
	VaccinationTime string    `json:"vaccinationTime" gorm:"size:10"`
	DoseNumber      int       `json:"doseNumber"`
	Status          string    `json:"status" gorm:"size:20;default:scheduled"`
	Notes           string    `json:"notes,omitempty" gorm:"size:500"`
}

// VaccineSession references Person, Vaccine and Location by id. The
// references are validated at the handler level; no database foreign keys
// are declared, so deleting a referenced record leaves the session row in
// place (dangling on purpose).
//
// The partial unique index over (person_id, vaccine_id, dose_number) for
// active statuses is created in the database package; GORM index tags
// cannot express it without also leaking into SessionHistory through the
// embedded struct.
type VaccineSession struct {
	gorm.Model
	PersonID      uint     `json:"personId"`
	Person        Person   `json:"person" gorm:"foreignKey:PersonID"`
	VaccineID     uint     `json:"vaccineId"`
	Vaccine       Vaccine  `json:"vaccine" gorm:"foreignKey:VaccineID"`
	LocationID    uint     `json:"locationId"`
	Location      Location `json:"location" gorm:"foreignKey:LocationID"`
	SessionFields `gorm:"embedded"`
}
