package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngmaloney/anomaly-terminal/internal/config"
	"github.com/ngmaloney/anomaly-terminal/internal/demoservice"
	"github.com/ngmaloney/anomaly-terminal/internal/logger"
)

// Serves synthetic anomaly maps on the endpoint the terminal expects
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Stderr, "anomaly-demo", "info").Error("loading config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, "anomaly-demo", cfg.Log.Level)

	handler := demoservice.NewHandler(demoservice.Options{
		Seed:     cfg.Demo.Seed,
		FailDays: cfg.Demo.FailDays,
		Logger:   log,
	})

	s := &http.Server{
		Addr:              cfg.Demo.Address,
		Handler:           demoservice.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("demo service listening", "address", "http://"+cfg.Demo.Address, "fail_days", cfg.Demo.FailDays)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
