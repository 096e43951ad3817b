package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hugohenrick/commerce-assistant/internal/adapter/api/controller"
	"github.com/hugohenrick/commerce-assistant/internal/adapter/api/route"
	"github.com/hugohenrick/commerce-assistant/internal/adapter/repository"
	"github.com/hugohenrick/commerce-assistant/internal/checkout"
	"github.com/hugohenrick/commerce-assistant/internal/dialogs"
	"github.com/hugohenrick/commerce-assistant/internal/infrastructure/database"
	"github.com/hugohenrick/commerce-assistant/pkg/auth"
	"github.com/hugohenrick/commerce-assistant/pkg/config"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/metrics"
	"github.com/hugohenrick/commerce-assistant/pkg/recognizer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App holds the application and its dependencies
type App struct {
	config             *config.Config
	router             *gin.Engine
	db                 *pgxpool.Pool
	engine             *dialog.Engine
	orchestrator       *checkout.Orchestrator
	messagesController *controller.MessagesController
	invokeController   *controller.InvokeController
	historyController  *controller.HistoryController
	authMiddleware     gin.HandlerFunc
	logger             logger.Logger
}

// NewApp wires the application: configuration, storage, the dialog engine
// and the checkout state machine. Everything is built here once and passed
// down explicitly; no package keeps ambient singletons.
func NewApp() (*App, error) {
	log := logger.NewLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	dbConfig := database.NewPostgresConfigFromEnv()
	db, err := database.NewPostgresPool(dbConfig)
	if err != nil {
		return nil, err
	}

	metrics.Init()

	// repositories
	conversationStore := repository.NewConversationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	historyRepo := repository.NewChatRepository(db)

	// channel authentication; disabled when no app password is configured
	var jwtService *auth.JWTService
	if cfg.AppPassword != "" {
		jwtService, err = auth.NewJWTService(cfg.AppID, cfg.AppPassword)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("APP_PASSWORD not set, channel authentication disabled")
	}

	// dialog engine: recognizers in priority order, intent routing table
	intentRouter := dialog.NewIntentRouter([]recognizer.Recognizer{
		recognizer.NewCommandRecognizer(),
		recognizer.NewGreetingRecognizer(),
		recognizer.NewSmileRecognizer(),
		recognizer.NewNLURecognizer(cfg.NLUEndpoint, log),
	}, dialogs.Confused, log)
	intentRouter.
		Match("Greeting", dialogs.Welcome).
		Match("ShowTopCategories", dialogs.Categories).
		Match("Explore", dialogs.Explore).
		Match("Next", dialogs.Next).
		Match("ShowProduct", dialogs.ShowProduct).
		Match("AddToCart", dialogs.AddToCart).
		Match("RemoveFromCart", dialogs.RemoveFromCart).
		Match("ShowCart", dialogs.ShowCart).
		Match("Checkout", dialogs.Checkout).
		Match("Reset", dialogs.Reset).
		Match("Smile", dialogs.SmileBack)

	registry := dialog.NewRegistry(log)
	connector := dialog.NewHTTPConnector(jwtService, log)
	engine := dialog.NewEngine(registry, intentRouter, conversationStore, connector, historyRepo, log)

	builderConfig := checkout.BuilderConfig{
		MerchantID: cfg.MerchantID,
		LiveMode:   cfg.LiveMode,
	}
	dialogs.Register(registry, dialogs.Deps{
		Catalog: catalogRepo,
		Builder: builderConfig,
		Engine:  engine,
		Logger:  log,
	})

	// checkout state machine
	var processor checkout.PaymentProcessor
	if cfg.LiveMode && cfg.ProcessorURL != "" {
		processor, err = checkout.NewGatewayProcessor(cfg.ProcessorURL, cfg.ProcessorCertFile, cfg.ProcessorCertPassword, log)
		if err != nil {
			return nil, err
		}
	} else {
		processor = checkout.NewTestProcessor(log)
	}

	calculator := checkout.NewCalculator(checkout.StaticRateService{}, log)
	correlator := checkout.NewCorrelator(conversationStore, log)
	orchestrator := checkout.NewOrchestrator(correlator, calculator, processor, conversationStore, engine, log)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	return &App{
		config:             cfg,
		router:             router,
		db:                 db,
		engine:             engine,
		orchestrator:       orchestrator,
		messagesController: controller.NewMessagesController(engine, log),
		invokeController:   controller.NewInvokeController(orchestrator, log),
		historyController:  controller.NewHistoryController(historyRepo, log),
		authMiddleware:     auth.Middleware(jwtService),
		logger:             log,
	}, nil
}

// SetupRoutes configures the application routes
func (a *App) SetupRoutes() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// static payment UI test harness
	a.router.Static("/web", a.config.StaticDir)

	route.SetupBotRoutes(&a.router.RouterGroup, a.authMiddleware, a.messagesController, a.invokeController, a.historyController)
}

// Start configures the routes and runs the HTTP server
func (a *App) Start() error {
	a.SetupRoutes()
	a.logger.Info("Starting server", "port", a.config.Port, "live_mode", a.config.LiveMode)
	return a.router.Run(":" + a.config.Port)
}

// Close releases the application resources
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
