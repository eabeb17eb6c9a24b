package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

func (c *Client) CreateDomain(ctx context.Context, name string) (*Domain, error) {
	domain := Domain{Name: name}
	if err := c.db.WithContext(ctx).Create(&domain).Error; err != nil {
		if err != gorm.ErrDuplicatedKey {
			log.Error("failed to create domain", "error", err)
		}
		return nil, err
	}
	return &domain, nil
}

// DeleteDomain removes a domain from the registry. Links referencing the
// domain are left in place: they become unresolvable because the host check
// fails, but deleting a domain must not silently destroy link data.
func (c *Client) DeleteDomain(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&Domain{}, id).Error; err != nil {
		log.Error("failed to delete domain", "error", err)
		return err
	}
	return nil
}

func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	var domains []Domain
	if err := c.db.WithContext(ctx).Order("id").Find(&domains).Error; err != nil {
		log.Error("failed to list domains", "error", err)
		return nil, err
	}
	return domains, nil
}

func (c *Client) DomainExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Domain{}).Where("domain = ?", name).Count(&count).Error; err != nil {
		log.Error("failed to check domain", "error", err)
		return false, err
	}
	return count > 0, nil
}
