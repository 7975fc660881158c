// Package app wires configuration, storage, clients, and services into a
// single application core shared by the server entrypoint and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marketscope/niss/internal/clients/gateway"
	"github.com/marketscope/niss/internal/common"
	"github.com/marketscope/niss/internal/interfaces"
	"github.com/marketscope/niss/internal/niss"
	"github.com/marketscope/niss/internal/services/screener"
	"github.com/marketscope/niss/internal/storage/badger"
)

// App holds all initialized services and clients.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Gateway     interfaces.MarketDataGateway
	Engine      *niss.Engine
	Screener    interfaces.ScreenerService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, the gateway client, the
// scoring engine, and the screener service. configPath may be empty, in
// which case NISS_CONFIG and then the binary directory are checked.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("NISS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "niss.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/niss.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative data path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	gatewayClient := gateway.NewClient(config.Gateway.APIKey,
		gateway.WithBaseURL(config.Gateway.BaseURL),
		gateway.WithLogger(logger),
		gateway.WithRateLimit(config.Gateway.RateLimit),
		gateway.WithTimeout(config.Gateway.GetTimeout()),
		gateway.WithCacheTTL(config.Gateway.GetQuoteTTL(), config.Gateway.GetNewsTTL()),
	)

	engine := niss.NewEngine(niss.WithWeights(niss.WeightsFromMap(config.Engine.Weights)))

	screenerService := screener.NewService(gatewayClient, store, engine, logger,
		screener.WithWorkers(config.Screener.Workers),
		screener.WithNewsLimit(config.Screener.NewsLimit),
	)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Str("gateway", config.Gateway.BaseURL).
		Msg("Application initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Storage:     store,
		Gateway:     gatewayClient,
		Engine:      engine,
		Screener:    screenerService,
		StartupTime: time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
