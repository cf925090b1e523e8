package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName string     `gorm:"column:first_name;not null"`
	LastName  string     `gorm:"column:last_name;not null"`
	Email     string     `gorm:"column:email;uniqueIndex:idx_users_email;not null"`
	Password  string     `gorm:"column:password;not null"`
	Phone     string     `gorm:"column:phone"`
	Bio       string     `gorm:"column:bio;type:text"`
	Location  string     `gorm:"column:location"`
	Website   string     `gorm:"column:website"`
	BirthDate *time.Time `gorm:"column:birth_date"`
	Gender    string     `gorm:"column:gender"`
	Language  string     `gorm:"column:language"`
	Avatar    string     `gorm:"column:avatar;type:text"`

	Settings    *UserSettings    `gorm:"foreignKey:UserID"`
	Connections []UserConnection `gorm:"foreignKey:UserID"`
}

// UserSettings holds per-account preferences, one row per user,
// created inside the registration transaction.
type UserSettings struct {
	gorm.Model
	UserID             uint   `gorm:"column:user_id;uniqueIndex:idx_user_settings_user_id;not null"`
	TwoFactorEnabled   bool   `gorm:"column:two_factor_enabled;not null"`
	EmailNotifications bool   `gorm:"column:email_notifications;not null"`
	PrivateSession     bool   `gorm:"column:private_session;not null"`
	PublicProfile      bool   `gorm:"column:public_profile;not null"`
	EmailSearchable    bool   `gorm:"column:email_searchable;not null"`
	DataSharing        bool   `gorm:"column:data_sharing;not null"`
	Timezone           string `gorm:"column:timezone;not null"`
	DateFormat         string `gorm:"column:date_format;not null"`
}

// UserConnection is an append-only login-history entry. Rows are never
// updated or deleted by the normal flow.
type UserConnection struct {
	ID             uint      `gorm:"primarykey"`
	UserID         uint      `gorm:"column:user_id;index:idx_user_connections_user_id;not null"`
	ConnectionDate time.Time `gorm:"column:connection_date;index:idx_user_connections_date;not null"`
	Device         string    `gorm:"column:device"`
	Location       string    `gorm:"column:location"`
	IPAddress      string    `gorm:"column:ip_address"`
	Browser        string    `gorm:"column:browser;type:text"`
	Status         string    `gorm:"column:status;not null"`
}
