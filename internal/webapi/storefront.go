package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterStorefrontRoutes registers the public storefront endpoints
func RegisterStorefrontRoutes(e *echo.Echo) {
	e.GET("/home", Home)
	e.GET("/feed.xml", FeedXML)
	e.GET("/health", Health)
}

// Home returns the composed home page: active sections in display order,
// product grids hydrated with priced items. Assembled fresh per request.
func Home(c echo.Context) error {
	views, err := getApp(c).Composer().ComposeActive(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compose home page", err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// FeedXML streams the merchant feed, generated fresh per request.
func FeedXML(c echo.Context) error {
	app := getApp(c)
	items, err := app.Items().All(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load catalog", err.Error())
	}
	out, err := app.FeedExporter().Export(items)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to render feed", err.Error())
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", out)
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterRoutes wires the full HTTP surface onto the router.
func RegisterRoutes(e *echo.Echo) {
	RegisterSectionRoutes(e)
	RegisterItemRoutes(e)
	RegisterStorefrontRoutes(e)
}
