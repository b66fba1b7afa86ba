// README: Entry point; loads config, restores the snapshot, starts the HTTP server and saves on shutdown.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridelink/internal/config"
	httptransport "ridelink/internal/http"
	"ridelink/internal/infra"
	"ridelink/internal/modules/registry"
	"ridelink/internal/snapshot"
	"ridelink/pkg/logger"
)

func main() {
	cfg := config.Load()
	lg := logger.New(cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store snapshot.Store
	if cfg.PostgresDSN != "" {
		pool, err := infra.NewDB(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres init: %v", err)
		}
		defer pool.Close()
		store = snapshot.NewPostgresStore(pool)
	} else {
		store = snapshot.NewCSVStore(cfg.DataDir)
	}

	reg := registry.New(lg)
	if err := snapshot.Load(ctx, store, reg); err != nil {
		log.Fatalf("snapshot load: %v", err)
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httptransport.NewRouter(reg, lg),
	}

	go func() {
		lg.Info("listening", logger.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown", logger.Error(err))
	}
	if err := snapshot.Save(shutdownCtx, store, reg); err != nil {
		lg.Error("snapshot save", logger.Error(err))
	}
}
