package models

import (
	"gorm.io/gorm"
)

type OperatingHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Location is soft-deleted, same as Vaccine.
type Location struct {
	gorm.Model
	LocationName   string         `json:"locationName" gorm:"uniqueIndex;size:100"`
	Address        Address        `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Capacity       int            `json:"capacity"`
	ContactNumber  string         `json:"contactNumber" gorm:"size:20"`
	OperatingHours OperatingHours `json:"operatingHours" gorm:"embedded;embeddedPrefix:hours_"`
	IsActive       bool           `json:"isActive" gorm:"default:true"`
}
