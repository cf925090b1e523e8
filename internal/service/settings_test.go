package service

import (
	"testing"

	"github.com/hexanode/accounts/internal/dto"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaultSettingsWithoutOverrides(t *testing.T) {
	s := DefaultSettings(nil)

	assert.False(t, s.TwoFactorEnabled)
	assert.True(t, s.EmailNotifications)
	assert.False(t, s.PrivateSession)
	assert.True(t, s.PublicProfile)
	assert.False(t, s.EmailSearchable)
	assert.False(t, s.DataSharing)
	assert.Equal(t, "Europe/Paris", s.Timezone)
	assert.Equal(t, "DD/MM/YYYY", s.DateFormat)
}

func TestDefaultSettingsExplicitFalseOverridesDefaultTrue(t *testing.T) {
	// An explicit false must win over a default of true.
	s := DefaultSettings(&dto.SettingsRequest{
		EmailNotifications: boolPtr(false),
		PublicProfile:      boolPtr(false),
	})

	assert.False(t, s.EmailNotifications)
	assert.False(t, s.PublicProfile)
	// Untouched fields keep their defaults.
	assert.False(t, s.TwoFactorEnabled)
	assert.Equal(t, "Europe/Paris", s.Timezone)
}

func TestDefaultSettingsPartialOverrides(t *testing.T) {
	s := DefaultSettings(&dto.SettingsRequest{
		TwoFactorEnabled: boolPtr(true),
		Timezone:         "America/Montreal",
	})

	assert.True(t, s.TwoFactorEnabled)
	assert.Equal(t, "America/Montreal", s.Timezone)
	assert.Equal(t, "DD/MM/YYYY", s.DateFormat)
	assert.True(t, s.EmailNotifications)
}
