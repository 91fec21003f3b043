package database

import (
	"fmt"

	"gorm.io/gorm"
)

// applyLedgerConstraints installs constraints AutoMigrate cannot express.
//
// The partial unique index is the authoritative guard for seat admission: at
// most one booking per (seat_id, shift_id) may sit in a non-terminal status.
// Application-level checks give friendly errors, the index wins races.
func applyLedgerConstraints(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_seat_shift
			ON bookings (seat_id, shift_id)
			WHERE status IN ('PENDING', 'PAYMENT_SUBMITTED', 'CONFIRMED')`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status)`,
		`CREATE INDEX IF NOT EXISTS idx_reconciliation_tasks_created_at
			ON reconciliation_tasks (created_at)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}
	return nil
}
