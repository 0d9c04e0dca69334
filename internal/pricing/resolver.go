// Package pricing computes the effective selling price of a catalog item.
// Both the storefront composer and the feed exporter resolve prices through
// this package; any divergence between the two surfaces is a defect.
package pricing

import (
	"fmt"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/kitestore/shopfront/internal/domain"
)

// Resolved is the transient outcome of pricing one item. DisplayPrice is the
// struck-through reference price; SalePrice is the price actually charged,
// nil when no promotion applies. Never persisted.
type Resolved struct {
	DisplayPrice string  `json:"displayPrice"`
	SalePrice    *string `json:"salePrice"`
}

// Resolve picks among base price, standing discount and time-limited hot
// price. A hot price always wins over a standing discount; a hot flag with
// no usable hot price falls back to the discount. DisplayPrice is always the
// base price, independent of the branch taken. The input is never mutated.
func Resolve(item *domain.StoreItem) Resolved {
	res := Resolved{DisplayPrice: formatAmount(baseAmount(item))}

	if item.IsHot {
		if v, ok := positiveAmount(item.HotPrice); ok {
			s := formatAmount(v)
			res.SalePrice = &s
			return res
		}
	}
	if v, ok := positiveAmount(item.DiscountPrice); ok {
		s := formatAmount(v)
		res.SalePrice = &s
	}
	return res
}

func baseAmount(item *domain.StoreItem) float64 {
	if item.BasePrice == "" {
		return 0
	}
	v, err := cast.ToFloat64E(item.BasePrice)
	if err != nil {
		// Absorbed: one bad row must not sink a page or a feed.
		zap.L().Warn("unparsable base price, defaulting to zero",
			zap.Int64("item_id", item.ID),
			zap.String("base_price", item.BasePrice))
		return 0
	}
	return v
}

func positiveAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
