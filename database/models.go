package database

import "time"

// Well-known settings keys.
const (
	SettingTurnstileEnabled   = "turnstile_enabled"
	SettingTurnstileSiteKey   = "turnstile_site_key"
	SettingTurnstileSecretKey = "turnstile_secret_key"
	SettingPrimaryDomain      = "primary_domain"
)

// Link maps a (path, domain) pair to a destination URL. The pair is unique;
// links are created and deleted, never updated in place.
type Link struct {
	ID          uint   `gorm:"primaryKey"`
	Path        string `gorm:"uniqueIndex:idx_paths_path_domain;not null"`
	Domain      string `gorm:"uniqueIndex:idx_paths_path_domain;not null"`
	RedirectURL string `gorm:"not null"`
}

// TableName keeps the table name of the original schema.
func (Link) TableName() string { return "paths" }

// Domain is a hostname for which short links may be created and resolved.
type Domain struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"column:domain;uniqueIndex;not null"`
	CreatedAt time.Time
}

// Setting is a single global key-value configuration entry.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// User is an admin account. The password is stored as a bcrypt hash and is
// never exposed to clients.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    time.Time
}
