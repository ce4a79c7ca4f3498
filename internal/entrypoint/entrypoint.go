package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/auth"
	"github.com/openshelf/catalog/internal/config"
	"github.com/openshelf/catalog/internal/database"
	http_controllers "github.com/openshelf/catalog/internal/http"
	"github.com/openshelf/catalog/internal/rbac"
	"github.com/openshelf/catalog/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the sweeper)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Catalog v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Role/permission bootstrap is idempotent, safe on every start.
	if err := rbac.NewService(db.DB).Bootstrap(); err != nil {
		log.Fatalf("Failed to bootstrap groups and permissions: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL connection: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Sessions, cfg.Auth.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authService := auth.NewService(db.DB, cfg.Auth)

	sweeper := scheduler.NewSessionSweeper(db, cfg.Sessions.SweepSchedule)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start session sweeper: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		DB:             db,
		AuthService:    authService,
		SessionManager: sessionManager,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		sweeper.Stop()
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}
