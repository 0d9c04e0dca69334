package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitestore/shopfront/internal/domain"
)

func testExporter() *Exporter {
	return NewExporter(Config{
		Title:       "Shop feed",
		Description: "Catalog export",
		BaseURL:     "https://shop.example",
		Currency:    "USD",
		Brand:       "Acme",
		Condition:   "new",
		TaxonomyID:  "166",
	})
}

func TestExportSchema(t *testing.T) {
	items := []domain.StoreItem{
		{
			ID:            101,
			Title:         "Mug",
			Description:   "A mug with <b>bold</b> & style",
			Category:      "kitchen",
			BasePrice:     "1000",
			DiscountPrice: "900",
			Stock:         10,
			Images:        []string{"/img/mug.png", "https://cdn.example/mug-side.png"},
		},
		{
			ID:        102,
			Title:     "Lamp",
			BasePrice: "2000",
			IsHot:     true,
			HotPrice:  "1500",
			Stock:     0,
		},
	}

	out, err := testExporter().Export(items)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">`)
	assert.Contains(t, doc, "<title>Shop feed</title>")

	// escaping keeps markup characters harmless
	assert.Contains(t, doc, "A mug with &lt;b&gt;bold&lt;/b&gt; &amp; style")
	assert.NotContains(t, doc, "<b>bold</b>")

	// link and image resolution
	assert.Contains(t, doc, "<g:link>https://shop.example/product/101</g:link>")
	assert.Contains(t, doc, "<g:image_link>https://shop.example/img/mug.png</g:image_link>")
	assert.Contains(t, doc, "<g:additional_image_link>https://cdn.example/mug-side.png</g:additional_image_link>")

	// availability by stock
	assert.Contains(t, doc, "<g:availability>in stock</g:availability>")
	assert.Contains(t, doc, "<g:availability>out of stock</g:availability>")

	// pricing through the shared resolver
	assert.Contains(t, doc, "<g:price>1000.00 USD</g:price>")
	assert.Contains(t, doc, "<g:sale_price>900.00 USD</g:sale_price>")
	assert.Contains(t, doc, "<g:price>2000.00 USD</g:price>")
	assert.Contains(t, doc, "<g:sale_price>1500.00 USD</g:sale_price>")

	// fixed constants
	assert.Contains(t, doc, "<g:brand>Acme</g:brand>")
	assert.Contains(t, doc, "<g:condition>new</g:condition>")
	assert.Contains(t, doc, "<g:google_product_category>166</g:google_product_category>")
	assert.Contains(t, doc, "<g:product_type>kitchen</g:product_type>")

	// input order preserved, no resort
	assert.Less(t, strings.Index(doc, "<g:id>101</g:id>"), strings.Index(doc, "<g:id>102</g:id>"))
}

func TestExportNoSalePriceElementWithoutPromotion(t *testing.T) {
	out, err := testExporter().Export([]domain.StoreItem{
		{ID: 1, Title: "Plain", BasePrice: "500", Stock: 1},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "g:sale_price")
}

func TestExportUnparsablePriceDoesNotAbort(t *testing.T) {
	out, err := testExporter().Export([]domain.StoreItem{
		{ID: 1, Title: "Broken", BasePrice: "n/a", Stock: 1},
		{ID: 2, Title: "Fine", BasePrice: "100", Stock: 1},
	})
	require.NoError(t, err)
	doc := string(out)

	// best-effort zero price for the broken item, the rest of the feed intact
	assert.Contains(t, doc, "<g:price>0.00 USD</g:price>")
	assert.Contains(t, doc, "<g:price>100.00 USD</g:price>")
	assert.Contains(t, doc, "<g:id>1</g:id>")
	assert.Contains(t, doc, "<g:id>2</g:id>")
}

func TestExportEmptyCatalog(t *testing.T) {
	out, err := testExporter().Export(nil)
	require.NoError(t, err)
	doc := string(out)
	assert.Contains(t, doc, "<channel>")
	assert.NotContains(t, doc, "<item>")
}
