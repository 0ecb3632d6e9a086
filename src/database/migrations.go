package database

import (
	"gorm.io/gorm"

	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/src/model"
)

func RunMigrations(db *gorm.DB) {
	migrationLogger := logger.Default()
	migrationLogger.Info("Running migrations for tables...")

	err := Migrate(db)
	if err != nil {
		migrationLogger.Fatal(err, "Migrating database failed")
	}

	migrationLogger.Info("All tables created (or already exist).")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Certificate{},
		&model.Attestation{},
		&model.VerificationRecord{},
		&model.IssuerReputation{},
		&model.Institution{},
		&model.AuditLogEntry{},
	)
}
