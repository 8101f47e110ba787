package models

import (
	"gorm.io/gorm"
)

// SessionHistory is an append-only snapshot written in the same
// transaction as every session create and update.
type SessionHistory struct {
	gorm.Model
	SessionID     uint `json:"sessionId" gorm:"index"`
	PersonID      uint `json:"personId"`
	VaccineID     uint `json:"vaccineId"`
	LocationID    uint `json:"locationId"`
	SessionFields `gorm:"embedded"`
}
