package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

func (c *Client) CreateLink(ctx context.Context, path, domain, redirectURL string) (*Link, error) {
	link := Link{
		Path:        path,
		Domain:      domain,
		RedirectURL: redirectURL,
	}
	if err := c.db.WithContext(ctx).Create(&link).Error; err != nil {
		if err != gorm.ErrDuplicatedKey {
			log.Error("failed to create link", "error", err)
		}
		return nil, err
	}
	return &link, nil
}

func (c *Client) GetLink(ctx context.Context, path, domain string) (*Link, error) {
	var link Link
	if err := c.db.WithContext(ctx).Where("path = ? AND domain = ?", path, domain).First(&link).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get link", "error", err)
		}
		return nil, err
	}
	return &link, nil
}

func (c *Client) ListLinks(ctx context.Context) ([]Link, error) {
	var links []Link
	if err := c.db.WithContext(ctx).Order("id").Find(&links).Error; err != nil {
		log.Error("failed to list links", "error", err)
		return nil, err
	}
	return links, nil
}

func (c *Client) DeleteLink(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&Link{}, id).Error; err != nil {
		log.Error("failed to delete link", "error", err)
		return err
	}
	return nil
}
