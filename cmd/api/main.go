package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/woodcrrests/scratchcard_api/internal/cache"
	"github.com/woodcrrests/scratchcard_api/internal/config"
	"github.com/woodcrrests/scratchcard_api/internal/database"
	"github.com/woodcrrests/scratchcard_api/internal/handler"
	"github.com/woodcrrests/scratchcard_api/internal/middleware"
	"github.com/woodcrrests/scratchcard_api/internal/repository"
	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// main is the application entrypoint for the Woodcrrests scratchcard API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting scratchcard api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis. The login throttle fails open without it, so an
	// unavailable Redis degrades rather than blocks startup.
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed - login throttling disabled")
	} else {
		defer redisClient.Close()
		log.Info().Msg("redis connected successfully")
	}

	// 4. Initialize repositories
	traderRepo := repository.NewTraderRepository(db)
	productRepo := repository.NewProductRepository(db)
	cardRepo := repository.NewScratchCardRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 5. Initialize services
	authSvc := service.NewAuthService(userRepo, traderRepo, cfg.JWTSecret)
	traderSvc := service.NewTraderService(traderRepo)
	productSvc := service.NewProductService(productRepo, cfg.Upload.Dir)
	cardSvc := service.NewScratchCardService(traderRepo, productRepo, cardRepo)
	notifier := service.NewNotifier(traderRepo, cardRepo, service.NewSMTPMailer(&cfg.SMTP))

	// 6. Initialize handlers
	throttle := middleware.NewLoginThrottle(redisClient)
	handlers := &Handlers{
		Auth:         handler.NewAuthHandler(authSvc, throttle, cfg.Upload.Dir),
		Trader:       handler.NewTraderHandler(traderSvc),
		Product:      handler.NewProductHandler(productSvc, cfg.Upload.Dir),
		ScratchCard:  handler.NewScratchCardHandler(cardSvc),
		Notification: handler.NewNotificationHandler(notifier),
	}

	// 7. Initialize middleware
	authMw := middleware.NewAuthMiddleware(cfg.JWTSecret)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, authMw, cfg.Upload.Dir)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Auth         *handler.AuthHandler
	Trader       *handler.TraderHandler
	Product      *handler.ProductHandler
	ScratchCard  *handler.ScratchCardHandler
	Notification *handler.NotificationHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMiddleware *middleware.AuthMiddleware, uploadDir string) {
	router.GET("/", func(c *gin.Context) {
		utils.Success(c, 200, "Woodcrrests scratchcard API", nil)
	})

	// Uploaded entity images
	router.Static("/images", uploadDir)

	// Public routes
	router.POST("/auth/register", handlers.Auth.Register)
	router.POST("/auth/login", handlers.Auth.Login)
	router.GET("/validate_trader/:id", handlers.Auth.ValidateTrader)

	product := router.Group("/product")
	{
		product.GET("", handlers.Product.GetProducts)
		product.POST("", handlers.Product.CreateProduct)
		product.PATCH("/:id", handlers.Product.UpdateProduct)
		product.DELETE("/:id", handlers.Product.DeleteProduct)
	}

	// Protected routes
	router.POST("/email", authMiddleware.Handle(), handlers.Notification.SendRewardEmail)

	trader := router.Group("/trader")
	trader.Use(authMiddleware.Handle())
	{
		trader.GET("", handlers.Trader.GetTraders)
		trader.GET("/:id", handlers.Trader.GetTrader)
		trader.POST("", handlers.Trader.CreateTrader)
		trader.PATCH("/:id", handlers.Trader.UpdateTrader)
		trader.DELETE("", handlers.Trader.DeleteTraders)
	}

	card := router.Group("/scratchcard")
	card.Use(authMiddleware.Handle())
	{
		card.GET("", handlers.ScratchCard.GetCards)
		card.POST("", handlers.ScratchCard.AssignCard)
		card.GET("/:id", handlers.ScratchCard.GetPendingCards)
		card.GET("/mega/:id", handlers.ScratchCard.GetMegaPendingCards)
		card.PATCH("/:id", handlers.ScratchCard.UpdateCardStatus)
		card.DELETE("/:id", handlers.ScratchCard.DeleteCard)
		card.POST("/redeem/:id", handlers.ScratchCard.BulkRedeem)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
