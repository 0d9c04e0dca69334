package domain

import "time"

// StoreItem is a catalog item as the storefront sees it. Item lifecycle is
// owned by inventory management; composition and the feed only read the
// price-relevant fields. Monetary values are decimal-as-string, empty means
// absent.
type StoreItem struct {
	ID            int64  `json:"id,string" form:"id"`
	Title         string `gorm:"size:200;index" json:"title" form:"title"`
	Description   string `gorm:"type:text" json:"description" form:"description"`
	Category      string `gorm:"size:100;index" json:"category" form:"category"`
	BasePrice     string `gorm:"size:32" json:"basePrice" form:"base_price"`
	DiscountPrice string `gorm:"size:32" json:"discountedPrice" form:"discounted_price"`
	IsHot         bool   `gorm:"index" json:"isHot" form:"is_hot"`
	HotPrice      string `gorm:"size:32" json:"hotPrice" form:"hot_price"`
	// HotAt records when IsHot last flipped on; hot grids sort by it descending.
	HotAt     *time.Time `json:"hotAt,omitempty"`
	Stock     int        `json:"stock" form:"stock"`
	Images    []string   `gorm:"serializer:json;type:text" json:"images"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName Specify table name
func (StoreItem) TableName() string {
	return "store_item"
}
