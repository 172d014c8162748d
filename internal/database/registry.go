package database

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.BlogPost{},
		&models.Comment{},
	}
}

// Migrate applies the model schema plus the constraints struct tags cannot
// express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return err
	}
	return EnsureAdminIndex(db)
}

// EnsureAdminIndex creates a partial unique index admitting at most one row
// with the admin role, so two registrations that both read an empty users
// table cannot both commit as admin; the loser's insert fails and the
// repository retries it as a member. Both postgres and sqlite support
// partial indexes. Applied even where the rest of the schema is managed
// externally, because the first-account fallback relies on it.
func EnsureAdminIndex(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_single_admin ON users(role) WHERE role = 'admin'`,
	).Error
}
