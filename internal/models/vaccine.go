package models

import (
	"gorm.io/gorm"
)

// Vaccine is soft-deleted: DELETE flips IsActive instead of removing the
// row, so historical sessions keep a resolvable reference.
type Vaccine struct {
	gorm.Model
	VaccineName   string  `json:"vaccineName" gorm:"uniqueIndex;size:100"`
	Manufacturer  string  `json:"manufacturer" gorm:"size:100"`
	Description   string  `json:"description" gorm:"size:500"`
	Price         float64 `json:"price"`
	DosesRequired int     `json:"dosesRequired"`
	IsActive      bool    `json:"isActive" gorm:"default:true"`
}
