package database

import (
	"github.com/hexanode/accounts/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models. The unique index on
// users.email created here is the source of truth for email uniqueness;
// registration relies on it to close the check-then-insert race.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserSettings{},
		&model.UserConnection{},
	)
}
