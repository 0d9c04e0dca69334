package app

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kitestore/shopfront/internal/content"
	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/pkg/common"
)

// checkSettings seeds the storefront settings rows on first start.
func (a *Application) checkSettings() {
	defaults := []domain.SysConfig{
		{Type: "storefront", Name: "base_url", Value: a.appConfig.Storefront.BaseURL, Remark: "Canonical storefront URL"},
		{Type: "storefront", Name: "currency", Value: a.appConfig.Storefront.Currency, Remark: "Feed currency suffix"},
		{Type: "storefront", Name: "brand", Value: a.appConfig.Storefront.Brand, Remark: "Feed brand constant"},
	}
	now := time.Now()
	for _, item := range defaults {
		var row domain.SysConfig
		err := a.gormDB.Where("type = ? and name = ?", item.Type, item.Name).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item.ID = common.UUIDint64()
			item.CreatedAt = now
			item.UpdatedAt = now
			if err := a.gormDB.Create(&item).Error; err != nil {
				zap.L().Error("failed to seed setting",
					zap.String("name", item.Name), zap.Error(err))
			}
		}
	}
}

// checkSections seeds a starter home page when the section table is empty:
// one hero block and one product grid, both active.
func (a *Application) checkSections() {
	var count int64
	if err := a.gormDB.Model(&domain.HomeSection{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	now := time.Now()
	seeds := []struct {
		sectionType string
		order       int
		payload     content.Payload
	}{
		{
			sectionType: domain.SectionHero,
			order:       10,
			payload: content.Payload{
				"title":    "Welcome",
				"subtitle": "Fresh picks every day",
				"ctaText":  "Shop now",
			},
		},
		{
			sectionType: domain.SectionProductGrid,
			order:       20,
			payload: content.Payload{
				"filterType": "hot",
				"limit":      8,
			},
		},
	}

	for _, seed := range seeds {
		text, err := content.Encode(seed.payload)
		if err != nil {
			zap.L().Error("failed to encode seed section", zap.Error(err))
			continue
		}
		section := domain.HomeSection{
			ID:        common.UUIDint64(),
			Type:      seed.sectionType,
			Order:     seed.order,
			IsActive:  true,
			Content:   text,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := a.gormDB.Create(&section).Error; err != nil {
			zap.L().Error("failed to seed section",
				zap.String("type", seed.sectionType), zap.Error(err))
		}
	}
	zap.L().Info("seeded starter home page sections")
}
