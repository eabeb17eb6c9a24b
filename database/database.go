package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var _ Store = (*Client)(nil) // Ensure Client implements Store

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection, performs migrations and seeds the
// default admin account, settings and domain registry.
//
// TranslateError is enabled so that unique constraint violations surface as
// gorm.ErrDuplicatedKey. The constraints are the authoritative guard against
// duplicate links and domains; any existence check done before an insert is
// only a fast path for friendlier error messages.
func New(dbpath string, initialDomains []string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&Link{},
		&Domain{},
		&Setting{},
		&User{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	c := &Client{db: db}
	if err := c.seed(context.Background(), initialDomains); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return c, nil
}

// seed ensures the default admin account and the well-known settings rows
// exist. The domain registry is seeded from the legacy domain list only while
// the registry is still empty; once an admin manages domains through the API,
// the registry is authoritative.
func (c *Client) seed(ctx context.Context, initialDomains []string) error {
	if err := c.ensureAdminUser(ctx); err != nil {
		return err
	}

	for _, key := range []string{
		SettingTurnstileEnabled,
		SettingTurnstileSiteKey,
		SettingTurnstileSecretKey,
		SettingPrimaryDomain,
	} {
		value := ""
		if key == SettingTurnstileEnabled {
			value = "false"
		}
		setting := Setting{Key: key, Value: value}
		if err := c.db.WithContext(ctx).Where(Setting{Key: key}).FirstOrCreate(&setting).Error; err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}

	var count int64
	if err := c.db.WithContext(ctx).Model(&Domain{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count domains: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range initialDomains {
		if _, err := c.CreateDomain(ctx, name); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to seed domain %s: %w", name, err)
		}
	}

	return nil
}
