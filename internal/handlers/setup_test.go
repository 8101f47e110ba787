package handlers

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/database"
	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

// setupTestDB opens an in-memory database through database.Open so tests
// run against the same schema, error translation and partial unique index
// as production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	return db
}

func createTestPerson(t *testing.T, db *gorm.DB, name, email string) models.Person {
	t.Helper()
	person := models.Person{
		FullName:      name,
		Email:         email,
		ContactNumber: "+1234567890",
		DOB:           time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:        "Other",
		Address: models.Address{
			Street:  "1 Test St",
			City:    "Testville",
			State:   "TS",
			ZipCode: "00001",
			Country: "United States",
		},
	}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("failed to create test person: %v", err)
	}
	return person
}

func createTestVaccine(t *testing.T, db *gorm.DB, name string, doses int) models.Vaccine {
	t.Helper()
	vaccine := models.Vaccine{
		VaccineName:   name,
		Manufacturer:  "Test Labs",
		Description:   "test vaccine",
		Price:         10,
		DosesRequired: doses,
		IsActive:      true,
	}
	if err := db.Create(&vaccine).Error; err != nil {
		t.Fatalf("failed to create test vaccine: %v", err)
	}
	return vaccine
}

func createTestLocation(t *testing.T, db *gorm.DB, name string) models.Location {
	t.Helper()
	location := models.Location{
		LocationName:  name,
		Capacity:      10,
		ContactNumber: "+1234567800",
		Address: models.Address{
			Street:  "2 Clinic Rd",
			City:    "Testville",
			State:   "TS",
			ZipCode: "00002",
			Country: "United States",
		},
		OperatingHours: models.OperatingHours{Open: "08:00", Close: "17:00"},
		IsActive:       true,
	}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("failed to create test location: %v", err)
	}
	return location
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with status %d, got nil", want)
	}
	se, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected a status error, got %T: %v", err, err)
	}
	if se.GetStatus() != want {
		t.Fatalf("expected status %d, got %d (%v)", want, se.GetStatus(), err)
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func uintPtr(u uint) *uint { return &u }

func boolPtr(b bool) *bool { return &b }

func float64Ptr(f float64) *float64 { return &f }
