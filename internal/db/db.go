package db

import (
	"log"
	"time"

	"github.com/CocoPetControl/clinic-api/internal/config"
	"github.com/CocoPetControl/clinic-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// gen_random_uuid() precisa do pgcrypto em Postgres < 13.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Owner{},
		&models.Pet{},
		&models.MedicalRecord{},
		&models.Appointment{},
		&models.AppointmentVitals{},
		&models.AppointmentPrescription{},
		&models.AppointmentRecommendation{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE clinics
        SET timezone = 'America/New_York'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
