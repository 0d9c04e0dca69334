package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitestore/shopfront/internal/domain"
)

func section(id int64, sectionType string, order int, active bool, contentText string) domain.HomeSection {
	return domain.HomeSection{
		ID:       id,
		Type:     sectionType,
		Order:    order,
		IsActive: active,
		Content:  contentText,
	}
}

func TestComposeActiveFiltersInactive(t *testing.T) {
	sections := &memSectionRepo{rows: []domain.HomeSection{
		section(1, "hero", 10, true, `{"title":"a"}`),
		section(2, "banner", 20, false, `{"title":"b"}`),
		section(3, "marquee", 30, true, `{"text":"c"}`),
	}}
	composer := NewComposer(sections, &memItemRepo{}, 0)

	views, err := composer.ComposeActive(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, int64(3), views[1].ID)
}

func TestComposeActiveStableOrder(t *testing.T) {
	// Colliding order values keep their insertion sequence, and repeated
	// calls produce the identical sequence.
	sections := &memSectionRepo{rows: []domain.HomeSection{
		section(11, "hero", 20, true, `{}`),
		section(12, "banner", 10, true, `{}`),
		section(13, "marquee", 20, true, `{}`),
		section(14, "banner", 20, true, `{}`),
	}}
	composer := NewComposer(sections, &memItemRepo{}, 0)

	first, err := composer.ComposeActive(context.Background())
	require.NoError(t, err)

	ids := func(views []SectionView) []int64 {
		out := make([]int64, len(views))
		for i, v := range views {
			out[i] = v.ID
		}
		return out
	}
	assert.Equal(t, []int64{12, 11, 13, 14}, ids(first))

	second, err := composer.ComposeActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ids(first), ids(second))
}

func TestComposeActiveDegradesMalformedSection(t *testing.T) {
	sections := &memSectionRepo{rows: []domain.HomeSection{
		section(1, "hero", 1, true, `{"title":"a"}`),
		section(2, "banner", 2, true, `{"title":"b"}`),
		section(3, "marquee", 3, true, `{"broken`),
		section(4, "banner", 4, true, `{"title":"d"}`),
		section(5, "hero", 5, true, `{"title":"e"}`),
	}}
	composer := NewComposer(sections, &memItemRepo{}, 0)

	views, err := composer.ComposeActive(context.Background())
	require.NoError(t, err)

	// All five still emitted, in original relative order, only the
	// malformed one degraded.
	require.Len(t, views, 5)
	for i, want := range []int64{1, 2, 3, 4, 5} {
		assert.Equal(t, want, views[i].ID)
	}
	assert.True(t, views[2].Degraded)
	assert.Equal(t, map[string]interface{}{}, views[2].Content)
	for _, i := range []int{0, 1, 3, 4} {
		assert.False(t, views[i].Degraded)
	}
}

func TestComposeProductGrid(t *testing.T) {
	now := time.Now()
	older := now.Add(-time.Hour)
	items := &memItemRepo{rows: []domain.StoreItem{
		{ID: 1, Title: "Plain", BasePrice: "100", Stock: 3},
		{ID: 2, Title: "Old hot", BasePrice: "200", IsHot: true, HotPrice: "150", HotAt: &older, Stock: 1},
		{ID: 3, Title: "New hot", BasePrice: "300", IsHot: true, HotPrice: "250", HotAt: &now, Stock: 0},
	}}

	t.Run("hot filter orders by most recently flagged", func(t *testing.T) {
		sections := &memSectionRepo{rows: []domain.HomeSection{
			section(1, "product_grid", 1, true, `{"filterType":"hot","limit":2}`),
		}}
		composer := NewComposer(sections, items, 0)

		views, err := composer.ComposeActive(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.Len(t, views[0].Items, 2)
		assert.Equal(t, int64(3), views[0].Items[0].ID)
		assert.Equal(t, int64(2), views[0].Items[1].ID)
		assert.Equal(t, 2, items.lastLimit)

		// Prices come from the shared resolver: hot price wins.
		require.NotNil(t, views[0].Items[0].Price.SalePrice)
		assert.Equal(t, "250.00", *views[0].Items[0].Price.SalePrice)
		assert.Equal(t, "300.00", views[0].Items[0].Price.DisplayPrice)
	})

	t.Run("legacy hot rows without a flag timestamp sort last", func(t *testing.T) {
		legacy := &memItemRepo{rows: []domain.StoreItem{
			{ID: 4, Title: "Legacy hot", BasePrice: "50", IsHot: true, HotPrice: "40"},
			{ID: 2, Title: "Old hot", BasePrice: "200", IsHot: true, HotPrice: "150", HotAt: &older},
			{ID: 3, Title: "New hot", BasePrice: "300", IsHot: true, HotPrice: "250", HotAt: &now},
		}}
		sections := &memSectionRepo{rows: []domain.HomeSection{
			section(1, "product_grid", 1, true, `{"filterType":"hot","limit":3}`),
		}}
		composer := NewComposer(sections, legacy, 0)

		views, err := composer.ComposeActive(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.Len(t, views[0].Items, 3)
		assert.Equal(t, int64(3), views[0].Items[0].ID)
		assert.Equal(t, int64(2), views[0].Items[1].ID)
		assert.Equal(t, int64(4), views[0].Items[2].ID)
	})

	t.Run("default ordering and default limit", func(t *testing.T) {
		sections := &memSectionRepo{rows: []domain.HomeSection{
			section(1, "product_grid", 1, true, `{}`),
		}}
		composer := NewComposer(sections, items, 3)

		views, err := composer.ComposeActive(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, 3, items.lastLimit)
		require.Len(t, views[0].Items, 3)
		assert.Equal(t, int64(1), views[0].Items[0].ID)
	})

	t.Run("malformed grid config degrades to defaults", func(t *testing.T) {
		sections := &memSectionRepo{rows: []domain.HomeSection{
			section(1, "product_grid", 1, true, `{"limit":{"nested":"junk"}}`),
		}}
		composer := NewComposer(sections, items, 2)

		views, err := composer.ComposeActive(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.False(t, views[0].Degraded)
		assert.Equal(t, 2, items.lastLimit)
	})

	t.Run("item lookup failure degrades the grid only", func(t *testing.T) {
		sections := &memSectionRepo{rows: []domain.HomeSection{
			section(1, "hero", 1, true, `{"title":"a"}`),
			section(2, "product_grid", 2, true, `{}`),
		}}
		broken := &memItemRepo{err: errors.New("db down")}
		composer := NewComposer(sections, broken, 0)

		views, err := composer.ComposeActive(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Empty(t, views[1].Items)
	})
}
