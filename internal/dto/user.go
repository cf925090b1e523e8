package dto

import "time"

type RegisterRequest struct {
	FirstName string           `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string           `json:"lastName" binding:"required,min=2,max=50"`
	Email     string           `json:"email" binding:"required,email"`
	Password  string           `json:"password" binding:"required,min=8,max=128,password"`
	Phone     string           `json:"phone" binding:"omitempty,min=6,max=20"`
	Bio       string           `json:"bio" binding:"omitempty,max=1000"`
	Location  string           `json:"location" binding:"omitempty,max=255"`
	Website   string           `json:"website" binding:"omitempty,url,max=255"`
	BirthDate string           `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Gender    string           `json:"gender" binding:"omitempty,oneof=male female other"`
	Language  string           `json:"language" binding:"omitempty,max=50"`
	Avatar    string           `json:"avatar" binding:"omitempty"`
	Settings  *SettingsRequest `json:"settings" binding:"omitempty"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName  string `json:"lastName" binding:"omitempty,min=2,max=50"`
	Phone     string `json:"phone" binding:"omitempty,min=6,max=20"`
	Bio       string `json:"bio" binding:"omitempty,max=1000"`
	Location  string `json:"location" binding:"omitempty,max=255"`
	Website   string `json:"website" binding:"omitempty,url,max=255"`
	BirthDate string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
	Language  string `json:"language" binding:"omitempty,max=50"`
	Avatar    string `json:"avatar" binding:"omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=128,password"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// SettingsRequest carries optional preference overrides. Pointers
// distinguish "not supplied" from an explicit false.
type SettingsRequest struct {
	TwoFactorEnabled   *bool  `json:"twoFactorEnabled"`
	EmailNotifications *bool  `json:"emailNotifications"`
	PrivateSession     *bool  `json:"privateSession"`
	PublicProfile      *bool  `json:"publicProfile"`
	EmailSearchable    *bool  `json:"emailSearchable"`
	DataSharing        *bool  `json:"dataSharing"`
	Timezone           string `json:"timezone" binding:"omitempty,max=64"`
	DateFormat         string `json:"dateFormat" binding:"omitempty,max=32"`
}

type SettingsResponse struct {
	TwoFactorEnabled   bool   `json:"twoFactorEnabled"`
	EmailNotifications bool   `json:"emailNotifications"`
	PrivateSession     bool   `json:"privateSession"`
	PublicProfile      bool   `json:"publicProfile"`
	EmailSearchable    bool   `json:"emailSearchable"`
	DataSharing        bool   `json:"dataSharing"`
	Timezone           string `json:"timezone"`
	DateFormat         string `json:"dateFormat"`
}

type ConnectionResponse struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	Device    string    `json:"device"`
	Location  string    `json:"location"`
	IPAddress string    `json:"ipAddress"`
	Browser   string    `json:"browser"`
	Status    string    `json:"status"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        uint              `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Bio       string            `json:"bio,omitempty"`
	Location  string            `json:"location,omitempty"`
	Website   string            `json:"website,omitempty"`
	BirthDate string            `json:"birthDate,omitempty"`
	Gender    string            `json:"gender,omitempty"`
	Language  string            `json:"language,omitempty"`
	Avatar    string            `json:"avatar,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Settings  *SettingsResponse `json:"settings,omitempty"`
}
