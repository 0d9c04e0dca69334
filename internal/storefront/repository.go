package storefront

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitestore/shopfront/internal/domain"
)

// SectionRepository handles persistence of home page sections.
type SectionRepository interface {
	// List returns every section, active and inactive, in storage order.
	List(ctx context.Context) ([]domain.HomeSection, error)

	// GetByID retrieves a section by ID, ErrNotFound if unknown
	GetByID(ctx context.Context, id int64) (*domain.HomeSection, error)

	// Create inserts a new section
	Create(ctx context.Context, section *domain.HomeSection) error

	// Update applies the given column values to one section row
	Update(ctx context.Context, id int64, fields map[string]interface{}) error

	// Delete removes a section permanently
	Delete(ctx context.Context, id int64) error
}

// ItemRepository supplies catalog items to product grids and the feed.
type ItemRepository interface {
	// List returns up to limit items in default catalog order
	List(ctx context.Context, limit int) ([]domain.StoreItem, error)

	// ListHot returns up to limit hot items, most recently flagged first
	ListHot(ctx context.Context, limit int) ([]domain.StoreItem, error)

	// All returns the full catalog snapshot in default order
	All(ctx context.Context) ([]domain.StoreItem, error)
}

// ItemAdminRepository handles the item administration write path.
type ItemAdminRepository interface {
	// GetByID retrieves an item by ID, ErrNotFound if unknown
	GetByID(ctx context.Context, id int64) (*domain.StoreItem, error)

	// Create inserts a new item
	Create(ctx context.Context, item *domain.StoreItem) error

	// Save persists all fields of an existing item
	Save(ctx context.Context, item *domain.StoreItem) error

	// Delete removes an item permanently
	Delete(ctx context.Context, id int64) error
}

// GormSectionRepository is the GORM implementation of SectionRepository
type GormSectionRepository struct {
	db *gorm.DB
}

func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

func (r *GormSectionRepository) List(ctx context.Context) ([]domain.HomeSection, error) {
	var rows []domain.HomeSection
	// Snowflake ids are monotonic, so id order is insertion order.
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *GormSectionRepository) GetByID(ctx context.Context, id int64) (*domain.HomeSection, error) {
	var section domain.HomeSection
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&section).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *GormSectionRepository) Create(ctx context.Context, section *domain.HomeSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *GormSectionRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.HomeSection{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *GormSectionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.HomeSection{}, id).Error
}

// GormItemRepository is the GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) List(ctx context.Context, limit int) ([]domain.StoreItem, error) {
	var rows []domain.StoreItem
	err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *GormItemRepository) ListHot(ctx context.Context, limit int) ([]domain.StoreItem, error) {
	var rows []domain.StoreItem
	// Postgres sorts NULLs first on DESC; legacy hot rows with no hot_at
	// must not outrank freshly flagged items.
	err := r.db.WithContext(ctx).
		Where("is_hot = ?", true).
		Order("hot_at DESC NULLS LAST").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *GormItemRepository) All(ctx context.Context) ([]domain.StoreItem, error) {
	var rows []domain.StoreItem
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *GormItemRepository) GetByID(ctx context.Context, id int64) (*domain.StoreItem, error) {
	var item domain.StoreItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) Create(ctx context.Context, item *domain.StoreItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormItemRepository) Save(ctx context.Context, item *domain.StoreItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.StoreItem{}, id).Error
}
