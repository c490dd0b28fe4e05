package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/osintlab/deepscope/internal/config"
	"github.com/osintlab/deepscope/internal/osint"
	"github.com/osintlab/deepscope/internal/report"
	"github.com/osintlab/deepscope/internal/session"
	"github.com/osintlab/deepscope/internal/web"
	ws "github.com/osintlab/deepscope/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run()

	client := osint.NewClient(cfg.BackendBaseURL)
	estimator := session.NewEstimator(cfg.ProgressTick, cfg.ProgressCeiling, cfg.ProgressHold, hub)
	controller := session.NewController(client, estimator, hub)
	subController := session.NewSubController(client, hub)

	renderer, err := report.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	server := web.NewServer(controller, subController, renderer, hub)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Routes(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("listening on %s, backend %s", cfg.ListenAddr, cfg.BackendBaseURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
