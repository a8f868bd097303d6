package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/bank"
	bankhttpdelivery "github.com/osmosis-labs/limitswap/bank/delivery/http"
	bankusecase "github.com/osmosis-labs/limitswap/bank/usecase"
	"github.com/osmosis-labs/limitswap/clpool"
	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/events"
	"github.com/osmosis-labs/limitswap/ledger"
	limitorderhttpdelivery "github.com/osmosis-labs/limitswap/limitorder/delivery/http"
	"github.com/osmosis-labs/limitswap/limitorder/fillbot"
	limitorderrepository "github.com/osmosis-labs/limitswap/limitorder/repository"
	limitorderusecase "github.com/osmosis-labs/limitswap/limitorder/usecase"
	"github.com/osmosis-labs/limitswap/log"
	"github.com/osmosis-labs/limitswap/middleware"
	poolshttpdelivery "github.com/osmosis-labs/limitswap/pools/delivery/http"
	poolsusecase "github.com/osmosis-labs/limitswap/pools/usecase"
	systemhttpdelivery "github.com/osmosis-labs/limitswap/system/delivery/http"
	tokenshttpdelivery "github.com/osmosis-labs/limitswap/tokens/delivery/http"
	tokensusecase "github.com/osmosis-labs/limitswap/tokens/usecase"
)

const tracerName = "limitswap"

// LimitSwapServer serves the limit order engine over HTTP.
type LimitSwapServer interface {
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type limitSwapServer struct {
	e       *echo.Echo
	address string

	fillBot interface{ Run(ctx context.Context) }

	// closers are released on shutdown in reverse order
	closers []func() error

	logger log.Logger
}

var _ LimitSwapServer = &limitSwapServer{}

// GetLogger implements LimitSwapServer.
func (s *limitSwapServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements LimitSwapServer.
func (s *limitSwapServer) Shutdown(ctx context.Context) error {
	errs := []error{s.e.Shutdown(ctx)}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// Start implements LimitSwapServer. It blocks until the server stops.
func (s *limitSwapServer) Start(ctx context.Context) error {
	if s.fillBot != nil {
		go s.fillBot.Run(ctx)
	}

	s.logger.Info("Starting limit order engine server", zap.String("address", s.address))
	err := s.e.Start(s.address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// NewLimitSwapServer wires the stores, the ledger, the usecases and the HTTP handlers.
func NewLimitSwapServer(ctx context.Context, config domain.Config, logger log.Logger) (_ LimitSwapServer, err error) {
	server := &limitSwapServer{
		address: config.ServerAddress,
		logger:  logger,
	}

	// release what was opened if wiring fails midway
	defer func() {
		if err != nil {
			for i := len(server.closers) - 1; i >= 0; i-- {
				// nolint:errcheck // already failing
				server.closers[i]()
			}
		}
	}()

	// Setup echo server
	e := echo.New()
	e.HideBanner = true
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware(tracerName))
	server.e = e

	// State stores, all rolled back together by the ledger
	bankKeeper := bank.New()
	poolManager := clpool.NewManager(bankKeeper)

	var (
		orderRepository limitorderdomain.OrderRepository
		checkers        []systemhttpdelivery.HealthChecker
		sequencer       = ledger.New(logger, bankKeeper, poolManager)
	)

	storage := config.Storage
	if storage == nil {
		storage = DefaultConfig.Storage
	}
	switch storage.Type {
	case domain.StorageTypeMemory, "":
		memoryRepository := limitorderrepository.NewMemory()
		sequencer.Register(memoryRepository)
		orderRepository = memoryRepository
	case domain.StorageTypePebble:
		pebbleRepository, err := limitorderrepository.NewPebble(storage.Path, storage.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open order repository: %w", err)
		}
		server.closers = append(server.closers, pebbleRepository.Close)
		sequencer.Register(pebbleRepository)
		orderRepository = pebbleRepository
		checkers = append(checkers, pebbleRepository)
	default:
		return nil, fmt.Errorf("unsupported storage type (%s)", storage.Type)
	}

	// Event sinks
	eventsConfig := config.Events
	if eventsConfig == nil {
		eventsConfig = DefaultConfig.Events
	}

	memoryPublisher := events.NewMemoryPublisher(eventsConfig.BufferSize)
	sinks := []events.Sink{{Name: "memory", Publisher: memoryPublisher}}

	// the journal endpoint falls back to the in-memory buffer
	var journal limitorderdomain.EventJournal = memoryPublisher
	if eventsConfig.JournalPath != "" {
		sqliteJournal, err := events.NewJournal(eventsConfig.JournalPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, events.Sink{Name: "journal", Publisher: sqliteJournal})
		journal = sqliteJournal
	}

	if eventsConfig.Kafka != nil && len(eventsConfig.Kafka.Brokers) > 0 {
		sinks = append(sinks, events.Sink{Name: "kafka", Publisher: events.NewKafkaPublisher(eventsConfig.Kafka.Brokers, eventsConfig.Kafka.Topic)})
	}

	if eventsConfig.WebsocketEnabled {
		hub := events.NewHub(logger)
		sinks = append(sinks, events.Sink{Name: "websocket", Publisher: hub})
		events.NewWebsocketHandler(e, hub)
	}

	eventPublisher := events.NewMultiPublisher(logger, sinks...)
	server.closers = append(server.closers, eventPublisher.Close)

	// Usecases
	tokensUseCase := tokensusecase.NewTokensUsecase(map[string]domain.Token{})
	bankUseCase := bankusecase.NewBankUsecase(bankKeeper, sequencer, logger)
	poolsUseCase := poolsusecase.NewPoolsUsecase(poolManager, tokensUseCase, bankKeeper, sequencer, logger)

	engineAddress := config.EngineAddress
	if engineAddress == "" {
		engineAddress = DefaultConfig.EngineAddress
	}
	limitOrderUseCase := limitorderusecase.New(
		orderRepository,
		poolManager,
		clpool.TickMath{},
		bankKeeper,
		sequencer,
		eventPublisher,
		engineAddress,
		logger,
	)

	if config.GenesisFile != "" {
		if _, statErr := os.Stat(config.GenesisFile); statErr == nil {
			genesis, err := LoadGenesis(config.GenesisFile)
			if err != nil {
				return nil, err
			}

			loader := &genesisLoader{
				feeTiers:      poolManager,
				tokensUseCase: tokensUseCase,
				bankUseCase:   bankUseCase,
				poolsUseCase:  poolsUseCase,
				logger:        logger,
			}
			if err := loader.Apply(ctx, genesis); err != nil {
				return nil, fmt.Errorf("failed to apply genesis: %w", err)
			}
		} else {
			logger.Warn("genesis file not found, starting empty", zap.String("genesis_file", config.GenesisFile))
		}
	}

	if config.FillBot != nil && config.FillBot.Enabled {
		fillBotConfig, err := fillbot.NewConfig(*config.FillBot)
		if err != nil {
			return nil, err
		}
		server.fillBot = fillbot.New(limitOrderUseCase, poolsUseCase, bankUseCase, fillBotConfig, logger)
	}

	// HTTP handlers
	limitorderhttpdelivery.NewLimitOrderHandler(e, limitOrderUseCase, tokensUseCase, journal, logger)
	poolshttpdelivery.NewPoolsHandler(e, poolsUseCase)
	bankhttpdelivery.NewBankHandler(e, bankUseCase)
	tokenshttpdelivery.NewTokensHandler(e, tokensUseCase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, sequencer, checkers...)

	return server, nil
}
