package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/kitestore/shopfront/config"
	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/internal/feed"
	"github.com/kitestore/shopfront/internal/storefront"
	"github.com/kitestore/shopfront/internal/webserver"
	"github.com/kitestore/shopfront/pkg/common"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	bus       evbus.Bus
	sections  *storefront.SectionService
	composer  *storefront.Composer
	exporter  *feed.Exporter
	itemRepo  storefront.ItemRepository
	items     *storefront.ItemService
}

// Ensure Application implements all interfaces
var (
	_ DBProvider           = (*Application)(nil)
	_ ConfigProvider       = (*Application)(nil)
	_ BusProvider          = (*Application)(nil)
	_ webserver.AppContext = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Bus() evbus.Bus {
	return a.bus
}

func (a *Application) SectionService() *storefront.SectionService {
	return a.sections
}

func (a *Application) Composer() *storefront.Composer {
	return a.composer
}

func (a *Application) FeedExporter() *feed.Exporter {
	return a.exporter
}

func (a *Application) Items() storefront.ItemRepository {
	return a.itemRepo
}

func (a *Application) ItemService() *storefront.ItemService {
	return a.items
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.checkSettings()
	a.checkSections()

	// Event bus: section mutations feed the audit log
	a.bus = evbus.New()
	if err := a.bus.Subscribe(storefront.TopicSectionChanged, a.onSectionChanged); err != nil {
		zap.S().Errorf("failed to subscribe audit handler: %v", err)
	}

	sectionRepo := storefront.NewGormSectionRepository(a.gormDB)
	gormItems := storefront.NewGormItemRepository(a.gormDB)
	a.itemRepo = gormItems
	a.items = storefront.NewItemService(gormItems)
	a.sections = storefront.NewSectionService(sectionRepo, a.bus)
	a.composer = storefront.NewComposer(sectionRepo, a.itemRepo, cfg.Storefront.GridLimit)
	a.exporter = feed.NewExporter(feed.Config{
		Title:       cfg.Storefront.FeedTitle,
		Description: cfg.Storefront.FeedDescription,
		BaseURL:     cfg.Storefront.BaseURL,
		Currency:    cfg.Storefront.Currency,
		Brand:       cfg.Storefront.Brand,
		Condition:   cfg.Storefront.Condition,
		TaxonomyID:  cfg.Storefront.TaxonomyID,
	})
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// onSectionChanged persists an audit row for every section mutation.
func (a *Application) onSectionChanged(action string, sectionID int64, detail string) {
	entry := domain.SysAuditLog{
		ID:       common.UUIDint64(),
		Action:   "section." + action,
		TargetID: sectionID,
		Detail:   detail,
		OptTime:  time.Now(),
	}
	if err := a.gormDB.Create(&entry).Error; err != nil {
		zap.L().Warn("failed to write audit log",
			zap.String("action", entry.Action),
			zap.Int64("target_id", sectionID),
			zap.Error(err))
	}
}

// Release releases application resources
func (a *Application) Release() {
	_ = zap.L().Sync()
}
