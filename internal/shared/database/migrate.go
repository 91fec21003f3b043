package database

import (
	"fmt"

	"gorm.io/gorm"

	"studyhall/internal/bookings"
	"studyhall/internal/coordinator"
	"studyhall/internal/seats"
	"studyhall/internal/shifts"
	"studyhall/internal/verification"
	"studyhall/pkg/logger"
)

// MigrateRegistry creates the registry-side schema.
func MigrateRegistry(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&seats.Seat{},
		&shifts.Shift{},
	); err != nil {
		return fmt.Errorf("registry migration failed: %w", err)
	}
	logger.GetDefault().Info("registry schema migrated")
	return nil
}

// MigrateLedger creates the ledger-side schema and the booking uniqueness
// constraint that backs concurrent admission.
func MigrateLedger(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&bookings.Booking{},
		&coordinator.ReconciliationTask{},
		&verification.VerificationAudit{},
	); err != nil {
		return fmt.Errorf("ledger migration failed: %w", err)
	}
	if err := applyLedgerConstraints(db); err != nil {
		return err
	}
	logger.GetDefault().Info("ledger schema migrated")
	return nil
}
