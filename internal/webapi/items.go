package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/internal/storefront"
)

type itemPayload struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Description     string   `json:"description"`
	Category        string   `json:"category" validate:"omitempty,max=100"`
	BasePrice       string   `json:"basePrice" validate:"required"`
	DiscountedPrice string   `json:"discountedPrice"`
	IsHot           bool     `json:"isHot"`
	HotPrice        string   `json:"hotPrice"`
	Stock           int      `json:"stock" validate:"min=0"`
	Images          []string `json:"images"`
}

func (p *itemPayload) input() storefront.ItemInput {
	return storefront.ItemInput{
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		BasePrice:       p.BasePrice,
		DiscountedPrice: p.DiscountedPrice,
		IsHot:           p.IsHot,
		HotPrice:        p.HotPrice,
		Stock:           p.Stock,
		Images:          p.Images,
	}
}

// RegisterItemRoutes registers catalog item administration endpoints
func RegisterItemRoutes(e *echo.Echo) {
	e.GET("/items", ListItems)
	e.GET("/items/:id", GetItem)
	e.POST("/items", CreateItem)
	e.PUT("/items/:id", UpdateItem)
	e.DELETE("/items/:id", DeleteItem)
}

func ListItems(c echo.Context) error {
	page, perPage := parsePagination(c)

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"title":      "title",
		"category":   "category",
		"stock":      "stock",
		"created_at": "created_at",
	}
	sortCol, ok := allowed[sortField]
	if !ok {
		sortCol = "id"
	}

	db := getApp(c).DB().Model(&domain.StoreItem{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("title ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		db = db.Where("category = ?", category)
	}
	if c.QueryParam("hot") == "true" {
		db = db.Where("is_hot = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query items", err.Error())
	}

	var rows []domain.StoreItem
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * perPage).Limit(perPage).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query items", err.Error())
	}
	return paged(c, rows, total, page, perPage)
}

func GetItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}
	item, err := getApp(c).ItemService().Get(c.Request().Context(), id)
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func CreateItem(c echo.Context) error {
	var payload itemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Item failed validation", err.Error())
	}
	item, err := getApp(c).ItemService().Create(c.Request().Context(), payload.input())
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func UpdateItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}
	var payload itemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Item failed validation", err.Error())
	}
	item, err := getApp(c).ItemService().Update(c.Request().Context(), id, payload.input())
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func DeleteItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}
	if err := getApp(c).ItemService().Delete(c.Request().Context(), id); err != nil {
		return itemError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func itemError(c echo.Context, err error) error {
	var verr *storefront.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Item failed validation", verr.Field+": "+verr.Reason)
	case errors.Is(err, storefront.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Item operation failed", err.Error())
	}
}
