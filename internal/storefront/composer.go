package storefront

import (
	"context"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kitestore/shopfront/internal/content"
	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/internal/pricing"
)

// DefaultGridLimit caps a product grid when its payload names no limit.
const DefaultGridLimit = 8

// gridConfig is the typed shape of a product_grid payload. Bad shapes
// degrade the grid, never the page; weak typing tolerates "8" for 8.
type gridConfig struct {
	FilterType string `mapstructure:"filterType"`
	Limit      int    `mapstructure:"limit"`
}

// ItemView is a catalog item with its resolved price attached.
type ItemView struct {
	domain.StoreItem
	Price pricing.Resolved `json:"price"`
}

// SectionView is one resolved content block of the home page.
type SectionView struct {
	ID       int64           `json:"id,string"`
	Type     string          `json:"type"`
	Order    int             `json:"order"`
	Degraded bool            `json:"degraded,omitempty"`
	Content  content.Payload `json:"content"`
	Items    []ItemView      `json:"items,omitempty"`
}

// Composer assembles the storefront home page from active sections. It reads
// a fresh snapshot on every call; there is deliberately no cache between an
// admin edit and the next preview load.
type Composer struct {
	sections  SectionRepository
	items     ItemRepository
	gridLimit int
}

func NewComposer(sections SectionRepository, items ItemRepository, gridLimit int) *Composer {
	if gridLimit <= 0 {
		gridLimit = DefaultGridLimit
	}
	return &Composer{sections: sections, items: items, gridLimit: gridLimit}
}

// ComposeActive selects and orders active sections, dispatches each by type
// and returns the resolved views in display order. A malformed payload
// degrades only its own section so later sections never shift position.
func (c *Composer) ComposeActive(ctx context.Context) ([]SectionView, error) {
	rows, err := c.sections.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "compose: list sections")
	}

	active := make([]domain.HomeSection, 0, len(rows))
	for _, row := range rows {
		if row.IsActive {
			active = append(active, row)
		}
	}
	// Stable sort over the insertion-ordered input: equal Order values keep
	// their original storage sequence, so ties are deterministic.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Order < active[j].Order
	})

	views := make([]SectionView, 0, len(active))
	for _, section := range active {
		view := SectionView{ID: section.ID, Type: section.Type, Order: section.Order}

		payload, err := content.Decode(section.Content)
		if err != nil {
			zap.L().Warn("section content unparsable, degrading",
				zap.Int64("section_id", section.ID),
				zap.String("type", section.Type))
			view.Degraded = true
			payload = content.Payload{}
		}
		view.Content = payload

		if section.Type == domain.SectionProductGrid && !view.Degraded {
			view.Items = c.gridItems(ctx, section.ID, payload)
		}
		views = append(views, view)
	}
	return views, nil
}

func (c *Composer) gridItems(ctx context.Context, sectionID int64, payload content.Payload) []ItemView {
	cfg := gridConfig{Limit: c.gridLimit}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err == nil {
		if err := decoder.Decode(payload); err != nil {
			zap.L().Warn("product grid config malformed, using defaults",
				zap.Int64("section_id", sectionID), zap.Error(err))
			cfg = gridConfig{Limit: c.gridLimit}
		}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = c.gridLimit
	}

	var (
		rows    []domain.StoreItem
		listErr error
	)
	if cfg.FilterType == "hot" {
		rows, listErr = c.items.ListHot(ctx, cfg.Limit)
	} else {
		rows, listErr = c.items.List(ctx, cfg.Limit)
	}
	if listErr != nil {
		// Degrade this grid only, the rest of the page still renders.
		zap.L().Warn("product grid item lookup failed",
			zap.Int64("section_id", sectionID), zap.Error(listErr))
		return nil
	}

	out := make([]ItemView, 0, len(rows))
	for i := range rows {
		out = append(out, ItemView{
			StoreItem: rows[i],
			Price:     pricing.Resolve(&rows[i]),
		})
	}
	return out
}
