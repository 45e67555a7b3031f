// Package app assembles the stores, caches and services shared by the HTTP
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"splitpay/internal/config"
	"splitpay/internal/handlers"
	"splitpay/internal/repositories"
	"splitpay/internal/repositories/cache"
	"splitpay/internal/services/paynow"
	"splitpay/internal/services/split"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

// App holds the wired dependencies. Close releases the connections it owns.
type App struct {
	Config     *config.Config
	Log        *logrus.Logger
	DB         *gorm.DB
	Cache      *cache.CacheService
	Recipients repositories.RecipientRepository
	Pairings   *repositories.PairingFileStore
	PayNow     paynow.Service
	Split      split.Service
}

// New connects the configured backends and builds the services.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis)
		a.Cache = cache.NewCacheService(client, cfg.Redis.ImageTTL)
		if err := a.Cache.HealthCheck(context.Background()); err != nil {
			log.WithError(err).Warn("Redis unreachable, continuing without cache")
			_ = a.Cache.Close()
			a.Cache = nil
		} else {
			log.Info("Redis connected")
		}
	}

	if err := a.openRecipients(); err != nil {
		a.Close()
		return nil, err
	}

	pairings, err := repositories.NewPairingFileStore(cfg.Storage.PairingsFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Pairings = pairings

	renderer, err := NewRenderer(cfg.PayNow)
	if err != nil {
		a.Close()
		return nil, err
	}

	var images paynow.ImageCache
	if a.Cache != nil {
		images = a.Cache
	}
	a.PayNow = paynow.NewService(ServiceConfig(cfg.PayNow), renderer, a.Recipients, images, nil, log)
	a.Split = split.NewService(log)
	return a, nil
}

func (a *App) openRecipients() error {
	switch a.Config.Storage.Backend {
	case BackendPostgres:
		db, err := repositories.OpenDB(a.Config.Database, a.Log)
		if err != nil {
			return err
		}
		a.DB = db
		var rc repositories.RecipientCache
		if a.Cache != nil {
			rc = a.Cache
		}
		a.Recipients = repositories.NewRecipientRepository(db, rc, a.Log)
	case BackendFile:
		store, err := repositories.NewRecipientFileStore(a.Config.Storage.RecipientsFile)
		if err != nil {
			return err
		}
		a.Recipients = store
	default:
		return fmt.Errorf("unknown storage backend %q", a.Config.Storage.Backend)
	}
	return nil
}

// HealthChecks reports the backends the server depends on.
func (a *App) HealthChecks() map[string]handlers.HealthChecker {
	checks := map[string]handlers.HealthChecker{}
	if a.DB != nil {
		db := a.DB
		checks["database"] = handlers.HealthCheckFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}
	if a.Cache != nil {
		checks["redis"] = a.Cache
	}
	return checks
}

// LogPoolStats logs connection pool usage every interval until ctx ends.
func (a *App) LogPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if a.DB != nil {
			if sqlDB, err := a.DB.DB(); err == nil {
				stats := sqlDB.Stats()
				a.Log.WithFields(logrus.Fields{
					"open":          stats.OpenConnections,
					"idle":          stats.Idle,
					"in_use":        stats.InUse,
					"wait_count":    stats.WaitCount,
					"wait_duration": stats.WaitDuration,
				}).Debug("DB stats")
			}
		}
		if a.Cache != nil {
			stats := a.Cache.GetStats(ctx)
			a.Log.WithFields(logrus.Fields{
				"hits":        stats.Hits,
				"misses":      stats.Misses,
				"total_conns": stats.TotalConns,
				"idle_conns":  stats.IdleConns,
			}).Debug("Redis stats")
		}
	}
}

// Close closes the database and redis connections.
func (a *App) Close() {
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Log.WithError(err).Warn("Failed to close database connection")
			}
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Log.WithError(err).Warn("Failed to close Redis connection")
		}
	}
}

// NewRenderer builds the QR renderer, loading the logo file if one is set.
func NewRenderer(cfg config.PayNowConfig) (*paynow.QRRenderer, error) {
	opts := paynow.RenderOptions{
		Version:         cfg.QRVersion,
		ErrorCorrection: cfg.ErrorCorrection,
		ModuleSize:      cfg.ModuleSize,
	}
	if cfg.LogoPath != "" {
		logo, err := os.ReadFile(cfg.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read logo: %w", err)
		}
		opts.Logo = logo
	}
	return paynow.NewQRRenderer(opts)
}

// ServiceConfig maps loaded configuration onto the PayNow service.
func ServiceConfig(cfg config.PayNowConfig) paynow.Config {
	return paynow.Config{
		RecipientPhone: cfg.RecipientPhone,
		RecipientName:  cfg.RecipientName,
		BrandColour:    cfg.BrandColour,
		AmountEditable: cfg.AmountEditable,
		ExpiryDate:     cfg.ExpiryDate,
	}
}
