package app

import (
	evbus "github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/kitestore/shopfront/config"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Bus() evbus.Bus
}
