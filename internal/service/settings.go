package service

import (
	"github.com/hexanode/accounts/internal/dto"
	"github.com/hexanode/accounts/internal/model"
)

// Preference defaults applied at account creation.
const (
	DefaultTimezone   = "Europe/Paris"
	DefaultDateFormat = "DD/MM/YYYY"
)

// DefaultSettings builds a fully-populated settings record from an optional
// override set. This is the single place defaults are applied; downstream
// code never sees a partially-defaulted record.
func DefaultSettings(req *dto.SettingsRequest) model.UserSettings {
	settings := model.UserSettings{
		TwoFactorEnabled:   false,
		EmailNotifications: true,
		PrivateSession:     false,
		PublicProfile:      true,
		EmailSearchable:    false,
		DataSharing:        false,
		Timezone:           DefaultTimezone,
		DateFormat:         DefaultDateFormat,
	}

	if req == nil {
		return settings
	}

	if req.TwoFactorEnabled != nil {
		settings.TwoFactorEnabled = *req.TwoFactorEnabled
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	if req.PrivateSession != nil {
		settings.PrivateSession = *req.PrivateSession
	}
	if req.PublicProfile != nil {
		settings.PublicProfile = *req.PublicProfile
	}
	if req.EmailSearchable != nil {
		settings.EmailSearchable = *req.EmailSearchable
	}
	if req.DataSharing != nil {
		settings.DataSharing = *req.DataSharing
	}
	if req.Timezone != "" {
		settings.Timezone = req.Timezone
	}
	if req.DateFormat != "" {
		settings.DateFormat = req.DateFormat
	}

	return settings
}

func settingsToResponse(s *model.UserSettings) *dto.SettingsResponse {
	if s == nil {
		return nil
	}
	return &dto.SettingsResponse{
		TwoFactorEnabled:   s.TwoFactorEnabled,
		EmailNotifications: s.EmailNotifications,
		PrivateSession:     s.PrivateSession,
		PublicProfile:      s.PublicProfile,
		EmailSearchable:    s.EmailSearchable,
		DataSharing:        s.DataSharing,
		Timezone:           s.Timezone,
		DateFormat:         s.DateFormat,
	}
}
