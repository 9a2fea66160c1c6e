package app

import (
	"fmt"
	"time"

	"github.com/sajid-itinnovator/stock-analyzer/internal/clients/agent"
	"github.com/sajid-itinnovator/stock-analyzer/internal/clients/feeds"
	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/services/advisor"
	"github.com/sajid-itinnovator/stock-analyzer/internal/services/credentials"
	"github.com/sajid-itinnovator/stock-analyzer/internal/services/history"
	"github.com/sajid-itinnovator/stock-analyzer/internal/services/news"
	"github.com/sajid-itinnovator/stock-analyzer/internal/services/profile"
	"github.com/sajid-itinnovator/stock-analyzer/internal/storage"
)

// App holds all initialized services, clients, and storage.
// It is the shared core behind cmd/stockai-server and the server tests.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	AgentClient       interfaces.AgentClient
	FeedClient        interfaces.FeedFetcher
	CredentialService interfaces.CredentialService
	AdvisorService    interfaces.AdvisorService
	HistoryService    interfaces.HistoryService
	NewsService       interfaces.NewsService
	ProfileService    interfaces.ProfileService
	StartupTime       time.Time
}

// NewApp loads configuration, connects storage and builds every service.
// configPath may be empty, in which case the default resolution logic is used.
// An unreachable primary store is not an error: the app starts in offline mode.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(common.ResolveConfigPaths(configPath)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager := storage.NewStorageManager(logger, config)

	agentClient := agent.NewClient(config.Agent.BaseURL,
		agent.WithLogger(logger),
		agent.WithTimeout(config.Agent.GetTimeout()),
		agent.WithRateLimit(config.Agent.RateLimit),
	)
	feedClient := feeds.NewClient(
		feeds.WithLogger(logger),
		feeds.WithTimeout(config.News.GetTimeout()),
	)

	a := New(config, logger, storageManager, agentClient, feedClient)

	logger.Info().
		Bool("primary_store", storageManager.Available()).
		Dur("elapsed", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// New assembles an App from already-built dependencies.
func New(config *common.Config, logger *common.Logger, storageManager interfaces.StorageManager,
	agentClient interfaces.AgentClient, feedClient interfaces.FeedFetcher) *App {
	credentialService := credentials.NewService(storageManager, logger)

	return &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		AgentClient:       agentClient,
		FeedClient:        feedClient,
		CredentialService: credentialService,
		AdvisorService:    advisor.NewService(credentialService, agentClient, logger),
		HistoryService:    history.NewService(storageManager, logger),
		NewsService:       news.NewService(feedClient, config.News, logger),
		ProfileService:    profile.NewService(storageManager, config.Demo.Name, logger),
		StartupTime:       time.Now(),
	}
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
	}
}
