package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rameshkumar-V/Tamilmani/internal/admin"
	"github.com/Rameshkumar-V/Tamilmani/internal/auth"
	"github.com/Rameshkumar-V/Tamilmani/internal/config"
	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/Rameshkumar-V/Tamilmani/internal/handler"
	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/Rameshkumar-V/Tamilmani/internal/middleware"
	"github.com/Rameshkumar-V/Tamilmani/internal/service"
	"github.com/Rameshkumar-V/Tamilmani/internal/view"
	"github.com/Rameshkumar-V/Tamilmani/web"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.Driver, cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Upload Staging Area ---
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatal(err, "Failed to create upload staging directory")
	}

	// --- Session Management Setup ---
	sessionManager := scs.New()
	if cfg.DB.Driver == "mysql" {
		sessionManager.Store = mysqlstore.New(db.DB)
	} else {
		sessionManager.Store = sqlite3store.New(db.DB)
	}
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	// --- Authorization Setup ---
	log.Info("Initializing authorization...")
	enforcer, err := auth.NewEnforcer(cfg.DB.Driver, cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Authorization initialized and policies seeded.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	documentRepository := data.NewDocumentRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	contactRepository := data.NewContactRepository(db)
	pageInfoRepository := data.NewPageInfoRepository(db)
	contactInfoRepository := data.NewContactInfoRepository(db)
	profileAboutRepository := data.NewProfileAboutRepository(db)
	userRepository := data.NewUserRepository(db)

	documentService := service.NewDocumentService(documentRepository)
	siteService := service.NewSiteService(pageInfoRepository, contactInfoRepository, profileAboutRepository, categoryRepository, contactRepository)
	authService := service.NewAuthService(userRepository)

	// Seed the default back-office credential on an empty user table.
	if err := authService.SeedDefaultUser(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal(err, "Failed to seed default user")
	}

	resources := []admin.Resource{
		admin.NewDocumentResource(documentRepository, categoryRepository, cfg.Upload.Dir, log),
		admin.NewCategoryResource(categoryRepository),
		admin.NewContactResource(contactRepository),
		admin.NewPageInfoResource(pageInfoRepository),
		admin.NewContactInfoResource(contactInfoRepository),
		admin.NewProfileAboutResource(profileAboutRepository),
		admin.NewUserResource(userRepository),
	}

	siteHandler := handler.NewSiteHandler(siteService, documentService, viewService, log)
	authHandler := handler.NewAuthHandler(authService, sessionManager, viewService, log)
	adminHandler := handler.NewAdminHandler(resources, viewService, log)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(siteHandler, authHandler, adminHandler, authzMiddleware, errorMiddleware, sessionManager, web.StaticFS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "Could not start HTTP server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
