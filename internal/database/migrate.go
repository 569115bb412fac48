package database

import (
	"fmt"

	"hotelbooking/internal/repository"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		return installOverlapConstraint(db)
	}
	return nil
}

// installOverlapConstraint makes PostgreSQL itself reject two occupying
// bookings of one room with intersecting [check_in, check_out) ranges.
func installOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("create btree_gist: %w", err)
	}

	var exists int64
	if err := db.Raw(`SELECT COUNT(1) FROM pg_constraint WHERE conname = ?`, repository.OverlapConstraintName).Scan(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	stmt := fmt.Sprintf(`
ALTER TABLE bookings ADD CONSTRAINT %s
EXCLUDE USING gist (
	room_id WITH =,
	tstzrange(check_in, check_out, '[)') WITH &&
) WHERE (status IN ('confirmed', 'checked-in'))`, repository.OverlapConstraintName)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("add %s: %w", repository.OverlapConstraintName, err)
	}
	return nil
}
