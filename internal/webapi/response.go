// Package webapi implements the HTTP surface: section administration, item
// administration, the composed home page and the merchant feed.
package webapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kitestore/shopfront/internal/webserver"
)

// ErrorResponse is the envelope for client and server errors. Successful
// responses carry their resource representation directly.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// ListResponse is the envelope for paginated collections.
type ListResponse struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"perPage"`
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message, Detail: detail})
}

func paged(c echo.Context, items interface{}, total int64, page, perPage int) error {
	return c.JSON(200, ListResponse{Items: items, Total: total, Page: page, PerPage: perPage})
}

func getApp(c echo.Context) webserver.AppContext {
	return webserver.GetAppContext(c)
}

func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parsePagination reads page/perPage query params with sane bounds.
func parsePagination(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	perPage, _ = strconv.Atoi(c.QueryParam("perPage"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 500 {
		perPage = 20
	}
	return page, perPage
}
