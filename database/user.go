package database

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default credentials for the seeded admin account.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserCredentials updates the username and/or password hash of a user.
// Empty arguments leave the corresponding column untouched.
func (c *Client) UpdateUserCredentials(ctx context.Context, id uint, username, passwordHash string) error {
	updates := make(map[string]any, 2)
	if username != "" {
		updates["username"] = username
	}
	if passwordHash != "" {
		updates["password_hash"] = passwordHash
	}
	if len(updates) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if err != gorm.ErrDuplicatedKey {
			log.Error("failed to update user credentials", "error", err)
		}
		return err
	}
	return nil
}

// ResetAdminUser restores the seeded admin account to its default
// credentials. Used as a lockout recovery via the reset-admin command.
func (c *Client) ResetAdminUser(ctx context.Context) error {
	hash, err := HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	var user User
	err = c.db.WithContext(ctx).Order("id").First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = User{Username: DefaultAdminUsername, PasswordHash: hash}
		return c.db.WithContext(ctx).Create(&user).Error
	}
	if err != nil {
		log.Error("failed to load admin user", "error", err)
		return err
	}

	return c.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"username":      DefaultAdminUsername,
		"password_hash": hash,
	}).Error
}

// ensureAdminUser seeds the default admin account on first run.
func (c *Client) ensureAdminUser(ctx context.Context) error {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}
	user := User{Username: DefaultAdminUsername, PasswordHash: hash}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Info("seeded default admin user", "username", DefaultAdminUsername)
	return nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
