package service

import (
	"context"
	"testing"
	"time"

	"github.com/hexanode/accounts/internal/dto"
	apperrors "github.com/hexanode/accounts/internal/errors"
	"github.com/hexanode/accounts/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestHashAndCheckPassword(t *testing.T) {
	svc := &UserService{bcryptCost: bcrypt.MinCost}

	hashed, err := svc.hashPassword("Sup3r@Secret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r@Secret", hashed)

	assert.True(t, svc.checkPassword(hashed, "Sup3r@Secret"))
	assert.False(t, svc.checkPassword(hashed, "sup3r@secret"))
	assert.False(t, svc.checkPassword(hashed, ""))
}

func TestUpdatePasswordMismatch(t *testing.T) {
	svc := &UserService{}

	err := svc.UpdatePassword(context.Background(), 1, &dto.UpdatePasswordRequest{
		CurrentPassword: "Old@Pass1",
		NewPassword:     "New@Pass1",
		ConfirmPassword: "Different@Pass1",
	})

	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestUserToResponse(t *testing.T) {
	birthDate := time.Date(1993, 4, 12, 0, 0, 0, 0, time.UTC)
	user := &model.User{
		Model:     gorm.Model{ID: 42, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FirstName: "Marie",
		LastName:  "Curie",
		Email:     "marie@example.com",
		Password:  "$2a$12$should-never-leak",
		BirthDate: &birthDate,
		Language:  "Français",
		Settings: &model.UserSettings{
			EmailNotifications: true,
			PublicProfile:      true,
			Timezone:           "Europe/Paris",
			DateFormat:         "DD/MM/YYYY",
		},
	}

	res := userToResponse(user)

	assert.Equal(t, uint(42), res.ID)
	assert.Equal(t, "marie@example.com", res.Email)
	assert.Equal(t, "1993-04-12", res.BirthDate)
	require.NotNil(t, res.Settings)
	assert.True(t, res.Settings.EmailNotifications)
	assert.Equal(t, "Europe/Paris", res.Settings.Timezone)
}

func TestUserToResponseNoOptionalFields(t *testing.T) {
	user := &model.User{
		Model:     gorm.Model{ID: 7},
		FirstName: "Max",
		LastName:  "Planck",
		Email:     "max@example.com",
	}

	res := userToResponse(user)

	assert.Empty(t, res.BirthDate)
	assert.Nil(t, res.Settings)
}
