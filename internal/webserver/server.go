// Package webserver hosts the echo HTTP server and hands application
// services to handlers through the request context.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kitestore/shopfront/config"
	"github.com/kitestore/shopfront/internal/feed"
	"github.com/kitestore/shopfront/internal/storefront"
)

// appContextKey is the echo context key holding the AppContext.
const appContextKey = "shopfront_app"

// AppContext is the application surface exposed to HTTP handlers.
type AppContext interface {
	Config() *config.AppConfig
	DB() *gorm.DB
	SectionService() *storefront.SectionService
	Composer() *storefront.Composer
	FeedExporter() *feed.Exporter
	Items() storefront.ItemRepository
	ItemService() *storefront.ItemService
}

// GetAppContext returns the application context injected by the server
// middleware.
func GetAppContext(c echo.Context) AppContext {
	return c.Get(appContextKey).(AppContext)
}

// SetAppContext injects an application context, used by middleware and tests.
func SetAppContext(c echo.Context, app AppContext) {
	c.Set(appContextKey, app)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type WebServer struct {
	root *echo.Echo
}

func New(app AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New()}
	e.Use(middleware.Recover())
	e.Use(zapLogger)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			SetAppContext(c, app)
			return next(c)
		}
	})
	return &WebServer{root: e}
}

// Echo exposes the underlying router for route registration.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	zap.S().Infof("starting web server on %s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func zapLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		zap.L().Info("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)))
		return nil
	}
}
