package domain

import "time"

// Known section type tags. The tag set is open: unknown tags still compose
// and are passed through to presentation untouched.
const (
	SectionHero        = "hero"
	SectionMarquee     = "marquee"
	SectionBanner      = "banner"
	SectionProductGrid = "product_grid"
)

// HomeSection is one ordered, typed, independently toggle-able content block
// composing the storefront home page. Content holds the free-form payload as
// canonical JSON text; older write paths may have stored a pre-structured
// value, which the content codec normalizes on read.
type HomeSection struct {
	ID        int64     `json:"id,string" form:"id"`
	Type      string    `gorm:"size:64;index" json:"type" form:"type"`
	Order     int       `gorm:"column:sort" json:"order" form:"order"`
	IsActive  bool      `gorm:"index" json:"isActive" form:"is_active"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName Specify table name
func (HomeSection) TableName() string {
	return "home_section"
}
