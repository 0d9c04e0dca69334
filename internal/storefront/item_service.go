package storefront

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/pkg/common"
)

// ItemInput carries the administrable fields of a catalog item.
type ItemInput struct {
	Title           string
	Description     string
	Category        string
	BasePrice       string
	DiscountedPrice string
	IsHot           bool
	HotPrice        string
	Stock           int
	Images          []string
}

// ItemService owns the item administration write path, including the hot
// timestamp invariant the "most recently flagged" grid ordering depends on.
type ItemService struct {
	repo ItemAdminRepository
}

func NewItemService(repo ItemAdminRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) Get(ctx context.Context, id int64) (*domain.StoreItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, input ItemInput) (*domain.StoreItem, error) {
	if err := validateItemInput(&input); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &domain.StoreItem{
		ID:            common.UUIDint64(),
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		BasePrice:     input.BasePrice,
		DiscountPrice: input.DiscountedPrice,
		IsHot:         input.IsHot,
		HotPrice:      input.HotPrice,
		Stock:         input.Stock,
		Images:        input.Images,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if item.IsHot {
		item.HotAt = &now
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "create item")
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, id int64, input ItemInput) (*domain.StoreItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateItemInput(&input); err != nil {
		return nil, err
	}

	now := time.Now()
	// The hot timestamp only moves on a cold-to-hot transition, so the
	// "most recently flagged" ordering survives unrelated edits.
	if input.IsHot && !item.IsHot {
		item.HotAt = &now
	} else if !input.IsHot {
		item.HotAt = nil
	}

	item.Title = input.Title
	item.Description = input.Description
	item.Category = input.Category
	item.BasePrice = input.BasePrice
	item.DiscountPrice = input.DiscountedPrice
	item.IsHot = input.IsHot
	item.HotPrice = input.HotPrice
	item.Stock = input.Stock
	item.Images = input.Images
	item.UpdatedAt = now

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, errors.Wrap(err, "update item")
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete item")
	}
	return nil
}

// validateItemInput trims the input and rejects price fields that cannot
// parse as decimals at the write boundary. Read paths still tolerate legacy
// junk.
func validateItemInput(input *ItemInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.BasePrice = strings.TrimSpace(input.BasePrice)
	input.DiscountedPrice = strings.TrimSpace(input.DiscountedPrice)
	input.HotPrice = strings.TrimSpace(input.HotPrice)

	if input.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if input.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if _, err := cast.ToFloat64E(input.BasePrice); err != nil {
		return &ValidationError{Field: "basePrice", Reason: "must be a decimal string"}
	}
	if input.DiscountedPrice != "" {
		if _, err := cast.ToFloat64E(input.DiscountedPrice); err != nil {
			return &ValidationError{Field: "discountedPrice", Reason: "must be a decimal string"}
		}
	}
	if input.HotPrice != "" {
		if _, err := cast.ToFloat64E(input.HotPrice); err != nil {
			return &ValidationError{Field: "hotPrice", Reason: "must be a decimal string"}
		}
	}
	return nil
}
