package models

import (
	"time"

	"gorm.io/gorm"
)

type Person struct {
	gorm.Model
	FullName      string    `json:"fullName" gorm:"size:100"`
	Email         string    `json:"email" gorm:"uniqueIndex;size:255"`
	ContactNumber string    `json:"contactNumber" gorm:"size:20"`
	DOB           time.Time `json:"dob"`
	Gender        string    `json:"gender" gorm:"size:10"`
	Address       Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
}
