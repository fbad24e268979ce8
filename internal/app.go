package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"catalog-service/internal/adapters/filestorage"
	"catalog-service/internal/adapters/imageurl"
	logger_adapter "catalog-service/internal/adapters/logger"
	"catalog-service/internal/adapters/memory"
	postgres_adapter "catalog-service/internal/adapters/postgres"
	rabbitmq_adapter "catalog-service/internal/adapters/rabbitmq"
	"catalog-service/internal/adapters/rest"
	"catalog-service/internal/configs"
	"catalog-service/internal/constants"
	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/query"
	"catalog-service/internal/core/usecase"
	fluentlogger "catalog-service/pkg/fluent_logger"
	"catalog-service/pkg/postgres"
	"catalog-service/pkg/rabbitmq/rabbitmq_common"
	"catalog-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	connManager  *rabbitmq_common.ConnectionManager
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	listingEventsListener port.EventListenerPort
}

// NewApp - composition root: здесь создаются и связываются все зависимости.
// envPath - необязательный путь к .env.
func NewApp(envPath ...string) (*App, error) {
	appConfig, err := configs.LoadConfig(envPath...)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 2. ИСТОЧНИК КАТАЛОГА ---
	// writers получают события об изменениях; память всегда последняя,
	// чтобы при ошибке БД сообщение ушло на ретрай до обновления выдачи
	var seed port.ListingSourcePort
	var writers []port.ListingWriterPort

	switch appConfig.Catalog.Source {
	case configs.CatalogSourcePostgres:
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		repository, err := postgres_adapter.NewListingRepository(dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres listing repository", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres listing repository: %w", err)
		}
		seed = repository
		writers = append(writers, repository)

	default:
		yamlSource, err := filestorage.NewYAMLSource(appConfig.Catalog.File, baseLogger.WithFields(port.Fields{"component": "yaml_source"}))
		if err != nil {
			appLogger.Error("Failed to open catalog file", err, port.Fields{"path": appConfig.Catalog.File})
			application.closeResources()
			return nil, fmt.Errorf("failed to open catalog file: %w", err)
		}
		seed = yamlSource
	}

	catalog := memory.NewCatalog()
	writers = append(writers, catalog)

	// --- 3. USE CASES ---
	engine := query.NewEngine(query.LinearMatcher{})

	loadCatalogUseCase := usecase.NewLoadCatalogUseCase(seed, catalog)
	findListingsUseCase := usecase.NewFindListingsUseCase(catalog, engine)
	getListingByIDUseCase := usecase.NewGetListingByIDUseCase(catalog)
	getFilterOptionsUseCase := usecase.NewGetFilterOptionsUseCase(catalog, engine)
	applyListingEventUseCase := usecase.NewApplyListingEventUseCase(writers...)

	agentDirectory := memory.NewAgentDirectory()
	findAgentsUseCase := usecase.NewFindAgentsUseCase(agentDirectory)
	getAgentFilterOptionsUseCase := usecase.NewGetAgentFilterOptionsUseCase(agentDirectory)

	appLogger.Info("All use cases initialized.", nil)

	loadCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)
	loaded, err := loadCatalogUseCase.Execute(loadCtx)
	if err != nil {
		appLogger.Error("Failed to load catalog", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	appLogger.Info("Catalog loaded", port.Fields{
		"source": appConfig.Catalog.Source, "listings": loaded, "catalog_version": catalog.Version(),
	})

	agentSource, err := filestorage.NewYAMLAgentSource(appConfig.Agents.File, baseLogger)
	if err != nil {
		appLogger.Error("Failed to open agents file", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to open agents file: %w", err)
	}
	agentsLoaded, err := usecase.NewLoadAgentsUseCase(agentSource, agentDirectory).Execute(loadCtx)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		appLogger.Warn("Agents file not found, agent directory is empty", port.Fields{"path": appConfig.Agents.File})
	case err != nil:
		appLogger.Error("Failed to load agent directory", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to load agent directory: %w", err)
	default:
		appLogger.Info("Agent directory loaded", port.Fields{"agents": agentsLoaded})
	}

	// --- 4. ВХОДЯЩИЕ АДАПТЕРЫ ---
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManager, err := rabbitmq_common.NewConnectionManager(
			rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger),
		)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		consumerCfg := rabbitmq_consumer.ConsumerConfig{
			Config:          rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			QueueName:       constants.QueueListingEvents,
			DurableQueue:    true,
			ExchangeName:    constants.ListingsExchange,
			ExchangeType:    constants.ListingsExchangeType,
			DurableExchange: true,
			RoutingKey:      constants.RoutingKeyListingEvents,
			// события по одному объявлению должны применяться по порядку
			PrefetchCount: 1,
			ConsumerTag:   constants.ConsumerTagListingEvents,

			EnableRetryMechanism: true,
			RetryExchange:        constants.RetryExchange,
			RetryQueue:           constants.RetryQueue,
			RetryTTL:             constants.RetryTTL,
			FinalDLXExchange:     constants.FinalDLXExchange,
			FinalDLQ:             constants.FinalDLQ,
			FinalDLQRoutingKey:   constants.FinalDLQRoutingKey,
			MaxRetries:           constants.MaxRetries,
		}
		listener, err := rabbitmq_adapter.NewListingEventsConsumerAdapter(consumerCfg, applyListingEventUseCase, baseLogger, connManager)
		if err != nil {
			appLogger.Error("Failed to create listing events listener", err, nil)
			application.closeResources()
			return nil, err
		}
		application.listingEventsListener = listener
		appLogger.Info("Listing Events Listener initialized.", nil)
	} else {
		appLogger.Warn("RabbitMQ is disabled, catalog will not receive listing updates", nil)
	}

	imageResolver := imageurl.NewResolver(appConfig.Images.Quality)
	listingsHandler := rest.NewListingsHandler(findListingsUseCase, getListingByIDUseCase, imageResolver)
	filterHandler := rest.NewFilterHandler(getFilterOptionsUseCase)
	agentsHandler := rest.NewAgentsHandler(findAgentsUseCase, getAgentFilterOptionsUseCase, imageResolver)
	healthHandler := rest.NewHealthHandler(catalog, agentDirectory)

	application.apiServer = rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.CORSAllowedOrigins,
		listingsHandler, filterHandler, agentsHandler, healthHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// Run запускает компоненты приложения и ждет сигнала на завершение
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 2)

	startListener := func(listener port.EventListenerPort) {
		defer wg.Done()
		name := listener.Name()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	if a.listingEventsListener != nil {
		wg.Add(1)
		go startListener(a.listingEventsListener)
	}

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	cancelApp()
	return runErr
}

// closeResources закрывает все, что успело открыться; безопасна при частичной инициализации
func (a *App) closeResources() {
	if a.listingEventsListener != nil {
		if err := a.listingEventsListener.Close(); err != nil {
			a.logger.Error("Error closing listing events listener", err, nil)
		}
	}

	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	level, ok := logger_adapter.ParseLevel(levelStr)
	if !ok {
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
	}
	return level
}
