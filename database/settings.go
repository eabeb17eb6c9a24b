package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSetting returns the value for a settings key, or an empty string if the
// key has never been written.
func (c *Client) GetSetting(ctx context.Context, key string) (string, error) {
	var setting Setting
	if err := c.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		log.Error("failed to get setting", "key", key, "error", err)
		return "", err
	}
	return setting.Value, nil
}

// SetSetting upserts a settings key, bumping its updated_at timestamp.
func (c *Client) SetSetting(ctx context.Context, key, value string) error {
	setting := Setting{Key: key, Value: value}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		log.Error("failed to set setting", "key", key, "error", err)
		return err
	}
	return nil
}

func (c *Client) AllSettings(ctx context.Context) (map[string]string, error) {
	var settings []Setting
	if err := c.db.WithContext(ctx).Find(&settings).Error; err != nil {
		log.Error("failed to list settings", "error", err)
		return nil, err
	}
	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}
