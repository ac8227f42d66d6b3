package main

import (
	"fmt"
	"net/http"

	"tailorshop/app/handler"
	"tailorshop/app/router"
	"tailorshop/internal/roster"
	"tailorshop/internal/service"
	"tailorshop/internal/validation"
	"tailorshop/pkg/config"
	"tailorshop/pkg/credential"
	"tailorshop/pkg/logger"
	"tailorshop/pkg/rosterapi"
	redisstore "tailorshop/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.InfoCtx(app.ctx, "Logging system has been closed")
		logger.Sync()
	})
	return nil
}

// initCredentialStorage selects where the bearer credential is read from
func (app *Application) initCredentialStorage() error {
	if !app.config.Redis.Enabled {
		logger.WarnCtx(app.ctx, "Redis not enabled, credentials are kept in process memory")
		storage := credential.NewMemoryStorage()
		if app.config.Credential.SeedToken != "" {
			storage.Set(app.config.Credential.TokenKey, app.config.Credential.SeedToken)
		}
		app.credStorage = storage
		return nil
	}

	client, err := redisstore.NewRedisClient(app.ctx, &app.config.Redis)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.credStorage = redisstore.NewCredentialStorage(client)
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	return nil
}

// initRosterClient initializes the credential resolver and the remote roster client
func (app *Application) initRosterClient() error {
	if app.config.Roster.BaseURL == "" {
		return fmt.Errorf("roster.base_url is required")
	}

	app.resolver = credential.NewDefaultResolver(
		app.credStorage,
		app.config.Credential.TokenKey,
		app.config.Credential.SessionKey,
		app.config.Credential.SessionFields,
	)
	app.rosterClient = rosterapi.NewClient(&app.config.Roster)

	logger.InfoCtx(app.ctx, "Roster service: %s, credential strategies: %v",
		app.config.Roster.BaseURL, app.resolver.Strategies())
	return nil
}

// initServices initializes service layer
func (app *Application) initServices() error {
	app.rosterService = service.NewRosterService(
		app.resolver,
		app.rosterClient,
		roster.NewStore(),
		validation.New(),
		app.config.Search.Debounce(),
	)
	app.registerCleanup(func() {
		app.rosterService.Close()
		logger.InfoCtx(app.ctx, "Search coordinator has been stopped")
	})
	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.rosterHandler = handler.NewRosterHandler(app.rosterService)
	app.garmentHandler = handler.NewGarmentHandler(app.rosterService)
	return nil
}

// initHTTPServer initializes HTTP server
func (app *Application) initHTTPServer() error {
	r := router.NewRouter(app.rosterHandler, app.garmentHandler, app.config.Server.AllowedOrigins)

	// Set Gin mode
	if app.config.Server.Mode != "" {
		gin.SetMode(app.config.Server.Mode)
	}

	app.ginEngine = gin.New()
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}

	return nil
}
