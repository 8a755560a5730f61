package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mtys/internal/db"
	"mtys/internal/importer"
	"mtys/internal/normalize"
	"mtys/internal/server"
	"mtys/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	norm := normalize.Default()

	logRepo := store.NewLogRepository(pool)
	requestRepo := store.NewRequestRepository(pool, norm, logRepo)
	muhtarRepo := store.NewMuhtarRepository(pool, norm)
	userRepo := store.NewUserRepository(pool)

	imports := importer.New(muhtarRepo, requestRepo, logger)

	srv, err := server.New(
		config,
		logger,
		norm,
		imports,
		requestRepo,
		muhtarRepo,
		logRepo,
		userRepo,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
