package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/config"
	"github.com/immunitrack/vaccine-tracker-api/internal/database"
	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

// Loads a small development data set. Wipes entity tables first, so never
// point it at a real database.
func main() {
	godotenv.Load()

	cfg := config.LoadConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	db := database.Connect(cfg, log)

	for _, model := range []interface{}{
		&models.SessionHistory{},
		&models.VaccineSession{},
		&models.Person{},
		&models.Vaccine{},
		&models.Location{},
		&models.APIKey{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			log.Fatalf("Failed to clear table: %v", err)
		}
	}
	log.Info("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := models.User{
		Username:     "admin",
		Email:        "admin@vaccinetracker.com",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Info("Admin user created")

	persons := []models.Person{
		{
			FullName:      "John Smith",
			Email:         "john.smith@email.com",
			ContactNumber: "+1234567890",
			DOB:           date(1985, 5, 15),
			Gender:        "Male",
			Address:       models.Address{Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001", Country: "United States"},
		},
		{
			FullName:      "Jane Doe",
			Email:         "jane.doe@email.com",
			ContactNumber: "+1234567891",
			DOB:           date(1990, 8, 22),
			Gender:        "Female",
			Address:       models.Address{Street: "456 Oak Ave", City: "Los Angeles", State: "CA", ZipCode: "90210", Country: "United States"},
		},
		{
			FullName:      "Michael Johnson",
			Email:         "michael.j@email.com",
			ContactNumber: "+1234567892",
			DOB:           date(1978, 12, 10),
			Gender:        "Male",
			Address:       models.Address{Street: "789 Pine Rd", City: "Chicago", State: "IL", ZipCode: "60601", Country: "United States"},
		},
	}
	if err := db.Create(&persons).Error; err != nil {
		log.Fatalf("Failed to create persons: %v", err)
	}
	log.Info("Sample persons created")

	vaccines := []models.Vaccine{
		{VaccineName: "COVID-19 Vaccine", Manufacturer: "Pfizer-BioNTech", Description: "mRNA vaccine for COVID-19 prevention, requires 2 doses", Price: 19.99, DosesRequired: 2, IsActive: true},
		{VaccineName: "Influenza Vaccine", Manufacturer: "Sanofi Pasteur", Description: "Seasonal flu vaccine, updated annually", Price: 25.50, DosesRequired: 1, IsActive: true},
		{VaccineName: "MMR Vaccine", Manufacturer: "Merck", Description: "Measles, Mumps, and Rubella combination vaccine", Price: 45.00, DosesRequired: 2, IsActive: true},
		{VaccineName: "HPV Vaccine", Manufacturer: "Merck", Description: "Human Papillomavirus vaccine, 3-dose series", Price: 234.00, DosesRequired: 3, IsActive: true},
	}
	if err := db.Create(&vaccines).Error; err != nil {
		log.Fatalf("Failed to create vaccines: %v", err)
	}
	log.Info("Sample vaccines created")

	locations := []models.Location{
		{
			LocationName:   "City Health Center",
			Address:        models.Address{Street: "123 Health St", City: "New York", State: "NY", ZipCode: "10002", Country: "United States"},
			Capacity:       50,
			ContactNumber:  "+1234567800",
			OperatingHours: models.OperatingHours{Open: "08:00", Close: "17:00"},
			IsActive:       true,
		},
		{
			LocationName:   "Community Hospital",
			Address:        models.Address{Street: "456 Medical Blvd", City: "Los Angeles", State: "CA", ZipCode: "90211", Country: "United States"},
			Capacity:       100,
			ContactNumber:  "+1234567801",
			OperatingHours: models.OperatingHours{Open: "07:00", Close: "19:00"},
			IsActive:       true,
		},
		{
			LocationName:   "Public Health Clinic",
			Address:        models.Address{Street: "789 Wellness Ave", City: "Chicago", State: "IL", ZipCode: "60602", Country: "United States"},
			Capacity:       30,
			ContactNumber:  "+1234567802",
			OperatingHours: models.OperatingHours{Open: "09:00", Close: "16:00"},
			IsActive:       true,
		},
	}
	if err := db.Create(&locations).Error; err != nil {
		log.Fatalf("Failed to create locations: %v", err)
	}
	log.Info("Sample locations created")

	sessions := []models.VaccineSession{
		{
			PersonID: persons[0].ID, VaccineID: vaccines[0].ID, LocationID: locations[0].ID,
			SessionFields: models.SessionFields{VaccinationDate: date(2023, 10, 15), VaccinationTime: "10:00", DoseNumber: 1, Status: models.StatusCompleted},
		},
		{
			PersonID: persons[0].ID, VaccineID: vaccines[0].ID, LocationID: locations[0].ID,
			SessionFields: models.SessionFields{VaccinationDate: date(2023, 11, 15), VaccinationTime: "10:00", DoseNumber: 2, Status: models.StatusScheduled},
		},
		{
			PersonID: persons[1].ID, VaccineID: vaccines[1].ID, LocationID: locations[1].ID,
			SessionFields: models.SessionFields{VaccinationDate: date(2023, 10, 20), VaccinationTime: "14:30", DoseNumber: 1, Status: models.StatusCompleted},
		},
		{
			PersonID: persons[2].ID, VaccineID: vaccines[2].ID, LocationID: locations[2].ID,
			SessionFields: models.SessionFields{VaccinationDate: date(2023, 10, 25), VaccinationTime: "11:15", DoseNumber: 1, Status: models.StatusScheduled},
		},
	}
	if err := db.Create(&sessions).Error; err != nil {
		log.Fatalf("Failed to create sessions: %v", err)
	}
	log.Info("Sample sessions created")

	apiKey := models.APIKey{
		UserID: admin.ID,
		Key:    uuid.NewString(),
		Name:   "development",
	}
	if err := db.Create(&apiKey).Error; err != nil {
		log.Fatalf("Failed to create API key: %v", err)
	}

	log.Info("Database seeded successfully")
	log.Infof("Admin login: admin@vaccinetracker.com / admin123")
	log.Infof("Development API key: %s", apiKey.Key)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
