package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/database"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/routes"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Deps overrides collaborators that SetupRouter would otherwise build from cfg.
type Deps struct {
	Storage storage.Storage
	Mailer  email.Provider
}

// Run подключается к базе и обслуживает HTTP до SIGINT/SIGTERM.
func Run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	ginRouter, container, err := SetupRouter(ctx, cfg, gormDB, Deps{})
	if err != nil {
		return err
	}
	defer container.Mailer.Close()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	// письма отправляются в фоне, дожидаемся их
	container.ContactService.Wait()
	logger.Info("Server stopped")
	return nil
}

// OpenDatabase connects with the configured driver.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        cfg.Server.Env == "development",
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")
	return gormDB, nil
}

// NewMailer builds the configured mail provider.
func NewMailer(cfg *config.Config) (email.Provider, error) {
	return email.NewProvider(cfg.Email.Backend, &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseSSL:    cfg.Email.UseSSL,
		Timeout:   time.Duration(cfg.Email.SendTimeout) * time.Second,
	})
}

func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, deps Deps) (*gin.Engine, *services.ServiceContainer, error) {
	storageInstance := deps.Storage
	if storageInstance == nil {
		var err error
		storageInstance, err = storage.NewStorage(ctx, storage.Config{
			Type:         cfg.Storage.Type,
			BasePath:     cfg.Storage.BasePath,
			BaseURL:      cfg.Storage.BaseURL,
			Bucket:       cfg.Storage.Bucket,
			Region:       cfg.Storage.Region,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			Endpoint:     cfg.Storage.Endpoint,
			UsePathStyle: cfg.Storage.UsePathStyle,
			SignedURLTTL: time.Duration(cfg.Storage.SignedURLTTL) * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. Инициализируем сервисы
	serviceContainer, err := initializeServices(cfg, storageInstance, deps.Mailer)
	if err != nil {
		return nil, nil, err
	}

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer, nil
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, mailer email.Provider) (*services.ServiceContainer, error) {
	if mailer == nil {
		var err error
		mailer, err = NewMailer(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mail provider: %w", err)
		}
	}
	logger.Info("Mail provider initialized", "backend", cfg.Email.Backend)

	var templates email.TemplateRenderer = email.NewTemplateManager()
	if err := templates.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	// --- Инициализация репозиториев ---
	contentService := services.NewContentService(
		repositories.NewResearchRepository(),
		repositories.NewPublicationRepository(),
		repositories.NewProjectRepository(),
		repositories.NewAwardRepository(),
		repositories.NewGalleryRepository(),
		repositories.NewProfileRepository(),
		repositories.NewStatsRepository(),
		storageInstance,
	)
	contactService := services.NewContactService(
		repositories.NewContactRepository(),
		validator.New(),
		mailer,
		templates,
		services.ContactConfig{
			OwnerName:   cfg.Site.OwnerName,
			OwnerEmail:  cfg.ContactRecipient(),
			SendTimeout: time.Duration(cfg.Email.SendTimeout) * time.Second,
		},
	)

	return &services.ServiceContainer{
		ContentService: contentService,
		ContactService: contactService,
		Mailer:         mailer,
	}, nil
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler()

	appHandlers := &handlers.AppHandlers{
		ContentHandler: handlers.NewContentHandler(baseHandler, container.ContentService),
		ContactHandler: handlers.NewContactHandler(baseHandler, container.ContactService, cfg.Server.ContactRateLimit),
		HealthHandler:  handlers.NewHealthHandler(baseHandler),
	}
	if _, ok := storageInstance.(*storage.LocalStorage); ok {
		appHandlers.MediaHandler = handlers.NewMediaHandler(baseHandler, storageInstance)
	}
	return appHandlers
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.BaseURLMiddleware(cfg.Server.PublicURL, cfg.Server.AllowedHosts))
	return router
}
