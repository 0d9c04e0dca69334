package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kitestore/shopfront/config"
	"github.com/kitestore/shopfront/internal/app"
	"github.com/kitestore/shopfront/internal/webapi"
	"github.com/kitestore/shopfront/internal/webserver"
)

var (
	conffile = flag.String("c", "/etc/shopfront.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	server := webserver.New(application)
	webapi.RegisterRoutes(server.Echo())

	go func() {
		if err := server.Start(cfg.Web.Host, cfg.Web.Port); err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("web server shutdown: %v", err)
	}
}
