package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/config"
	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

// One scheduled-or-completed session per (person, vaccine, dose). Created
// with raw SQL because a GORM index tag on the embedded SessionFields
// would duplicate the index onto session_histories.
const activeDoseIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_active_dose
ON vaccine_sessions (person_id, vaccine_id, dose_number)
WHERE status IN ('scheduled','completed')`

// Open connects through the given dialector, migrates the schema and
// installs the partial unique index. TranslateError lets handlers match
// uniqueness violations as gorm.ErrDuplicatedKey regardless of driver.
// Foreign key constraints are deliberately not created: references are
// checked in the session handlers, and deletes never cascade.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Person{},
		&models.Vaccine{},
		&models.Location{},
		&models.VaccineSession{},
		&models.SessionHistory{},
		&models.APIKey{},
	); err != nil {
		return nil, err
	}

	if err := db.Exec(activeDoseIndex).Error; err != nil {
		return nil, err
	}

	return db, nil
}

// Connect picks the dialect from config. sqlite is the default; postgres
// is selected with DATABASE_DRIVER=postgres and DATABASE_DSN.
func Connect(cfg *config.Config, log *zap.SugaredLogger) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabasePath)
	}

	db, err := Open(dialector)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}
