// Package feed produces the fixed-schema XML catalog export consumed by the
// external advertising platform.
package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/internal/pricing"
)

// Config carries the feed constants and the base URL used to resolve
// root-relative links. Passed in explicitly so preview and production feeds
// cannot cross-contaminate.
type Config struct {
	Title       string
	Description string
	BaseURL     string
	Currency    string
	Brand       string
	Condition   string
	TaxonomyID  string
}

type Exporter struct {
	cfg Config
}

func NewExporter(cfg Config) *Exporter {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.Condition == "" {
		cfg.Condition = "new"
	}
	return &Exporter{cfg: cfg}
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	NSG     string     `xml:"xmlns:g,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	ID                    string   `xml:"g:id"`
	Title                 string   `xml:"g:title"`
	Description           string   `xml:"g:description"`
	Link                  string   `xml:"g:link"`
	ImageLink             string   `xml:"g:image_link,omitempty"`
	AdditionalImageLinks  []string `xml:"g:additional_image_link,omitempty"`
	Brand                 string   `xml:"g:brand"`
	Condition             string   `xml:"g:condition"`
	Availability          string   `xml:"g:availability"`
	Price                 string   `xml:"g:price"`
	SalePrice             string   `xml:"g:sale_price,omitempty"`
	ProductType           string   `xml:"g:product_type,omitempty"`
	GoogleProductCategory string   `xml:"g:google_product_category"`
}

// Export renders the items in input order, no resort. An item with an
// unparsable price is emitted with a zero price: a partial feed is
// preferable to no feed.
func (e *Exporter) Export(items []domain.StoreItem) ([]byte, error) {
	channel := rssChannel{
		Title:       e.cfg.Title,
		Link:        e.cfg.BaseURL,
		Description: e.cfg.Description,
		Items:       make([]rssItem, 0, len(items)),
	}
	for i := range items {
		channel.Items = append(channel.Items, e.exportItem(&items[i]))
	}

	doc := rssFeed{
		Version: "2.0",
		NSG:     "http://base.google.com/ns/1.0",
		Channel: channel,
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (e *Exporter) exportItem(item *domain.StoreItem) rssItem {
	price := pricing.Resolve(item)

	out := rssItem{
		ID:                    strconv.FormatInt(item.ID, 10),
		Title:                 item.Title,
		Description:           item.Description,
		Link:                  fmt.Sprintf("%s/product/%d", strings.TrimRight(e.cfg.BaseURL, "/"), item.ID),
		Brand:                 e.cfg.Brand,
		Condition:             e.cfg.Condition,
		Availability:          availability(item.Stock),
		Price:                 price.DisplayPrice + " " + e.cfg.Currency,
		ProductType:           item.Category,
		GoogleProductCategory: e.cfg.TaxonomyID,
	}
	if price.SalePrice != nil {
		out.SalePrice = *price.SalePrice + " " + e.cfg.Currency
	}
	if len(item.Images) > 0 {
		out.ImageLink = e.resolveLink(item.Images[0])
		for _, img := range item.Images[1:] {
			out.AdditionalImageLinks = append(out.AdditionalImageLinks, e.resolveLink(img))
		}
	}
	return out
}

// resolveLink passes absolute URLs through and resolves root-relative paths
// against the configured base URL.
func (e *Exporter) resolveLink(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimRight(e.cfg.BaseURL, "/") + "/" + strings.TrimLeft(u, "/")
}

func availability(stock int) string {
	if stock > 0 {
		return "in stock"
	}
	return "out of stock"
}
