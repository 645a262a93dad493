// Package app wires configuration, storage and HTTP routing into a server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gantt-go/app/config"
	"gantt-go/app/controllers"
	"gantt-go/app/routes"
	"gantt-go/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// OpenStore connects to the backend cfg.Driver names.
func OpenStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (services.Store, error) {
	if cfg.Driver == config.DriverNeo4j {
		driver, err := config.InitNeo4j(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return services.NewGraphStore(driver, ""), nil
	}

	db, err := config.InitDB(cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := services.AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return services.NewSQLStore(db), nil
}

// NewHandler builds the router serving the API and static assets.
func NewHandler(store services.Store, staticDir string, log *zap.SugaredLogger) http.Handler {
	ganttController := controllers.NewGanttController(store, log)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, ganttController, staticDir, log)
	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	store, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(store, cfg.StaticDir, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server is running", "addr", srv.Addr, "driver", cfg.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
