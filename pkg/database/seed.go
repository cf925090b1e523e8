package database

import (
	"github.com/hexanode/accounts/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdmin defines the default admin account created on first boot.
type DefaultAdmin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// GetDefaultAdmin returns the default admin account
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		FirstName: "Admin",
		LastName:  "Accounts",
		Email:     "admin@accounts.local",
		Password:  "Admin@1234", // Change this in production!
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the default admin account with defaulted settings
// if it does not exist yet.
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("email = ?", admin.Email).First(&existingUser)

	if result.Error == nil {
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
			Password:  string(hashedPassword),
			Language:  "Français",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		settings := model.UserSettings{
			UserID:             user.ID,
			EmailNotifications: true,
			PublicProfile:      true,
			Timezone:           "Europe/Paris",
			DateFormat:         "DD/MM/YYYY",
		}
		return tx.Create(&settings).Error
	})
}
