package database

import "context"

// Store defines the interface for database operations.
type Store interface {
	// Links
	CreateLink(ctx context.Context, path, domain, redirectURL string) (*Link, error)
	GetLink(ctx context.Context, path, domain string) (*Link, error)
	ListLinks(ctx context.Context) ([]Link, error)
	DeleteLink(ctx context.Context, id uint) error

	// Domain registry
	CreateDomain(ctx context.Context, name string) (*Domain, error)
	DeleteDomain(ctx context.Context, id uint) error
	ListDomains(ctx context.Context) ([]Domain, error)
	DomainExists(ctx context.Context, name string) (bool, error)

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]string, error)

	// Users
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUserCredentials(ctx context.Context, id uint, username, passwordHash string) error
	ResetAdminUser(ctx context.Context) error
}
