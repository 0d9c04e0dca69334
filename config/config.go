package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// StorefrontConfig carries the environment-dependent constants of the
// storefront render and the merchant feed. BaseURL is injected explicitly so
// preview and production environments cannot cross-contaminate.
type StorefrontConfig struct {
	BaseURL         string `yaml:"base_url"`
	Currency        string `yaml:"currency"`
	Brand           string `yaml:"brand"`
	Condition       string `yaml:"condition"`
	TaxonomyID      string `yaml:"taxonomy_id"`
	GridLimit       int    `yaml:"grid_limit"`
	FeedTitle       string `yaml:"feed_title"`
	FeedDescription string `yaml:"feed_description"`
}

type AppConfig struct {
	System     SystemConfig     `yaml:"system"`
	Web        WebConfig        `yaml:"web"`
	Database   DatabaseConfig   `yaml:"database"`
	Logger     LoggerConfig     `yaml:"logger"`
	Storefront StorefrontConfig `yaml:"storefront"`
}

var DefaultAppConfig = &AppConfig{
	System: SystemConfig{
		Appid:    "shopfront",
		Location: "Asia/Jakarta",
		Workdir:  "/var/shopfront",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DatabaseConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "shopfront",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/shopfront/shopfront.log",
	},
	Storefront: StorefrontConfig{
		BaseURL:         "http://127.0.0.1:1816",
		Currency:        "USD",
		Brand:           "Shopfront",
		Condition:       "new",
		TaxonomyID:      "166",
		GridLimit:       8,
		FeedTitle:       "Shopfront catalog",
		FeedDescription: "Product feed for advertising platforms",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

func setEnvInt(name string, f func(v int)) {
	setEnvValue(name, func(v string) {
		if i, err := strconv.Atoi(v); err == nil {
			f(i)
		}
	})
}

func setEnvBool(name string, f func(v bool)) {
	setEnvValue(name, func(v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			f(b)
		}
	})
}

// LoadConfig reads configuration from the given YAML file over the defaults,
// then applies SHOPFRONT_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("SHOPFRONT_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("SHOPFRONT_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBool("SHOPFRONT_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("SHOPFRONT_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt("SHOPFRONT_WEB_PORT", func(v int) { cfg.Web.Port = v })

	setEnvValue("SHOPFRONT_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt("SHOPFRONT_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("SHOPFRONT_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("SHOPFRONT_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("SHOPFRONT_DB_PASSWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBool("SHOPFRONT_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("SHOPFRONT_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBool("SHOPFRONT_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("SHOPFRONT_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	setEnvValue("SHOPFRONT_BASE_URL", func(v string) { cfg.Storefront.BaseURL = v })
	setEnvValue("SHOPFRONT_CURRENCY", func(v string) { cfg.Storefront.Currency = v })
	setEnvValue("SHOPFRONT_BRAND", func(v string) { cfg.Storefront.Brand = v })
	setEnvInt("SHOPFRONT_GRID_LIMIT", func(v int) { cfg.Storefront.GridLimit = v })

	return cfg
}
