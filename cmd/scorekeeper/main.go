package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"scorekeeper/internal/app"
	"scorekeeper/internal/config"
	"scorekeeper/internal/db"
	"scorekeeper/internal/seed"
	"scorekeeper/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	cliApp := &cli.App{
		Name:  "scorekeeper",
		Usage: "disc golf courses, layouts and score cards",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: func(c *cli.Context) error { return serve(c.Context, log) },
			},
			{
				Name:   "migrate",
				Usage:  "apply pending SQL migrations",
				Action: func(c *cli.Context) error { return migrate(log) },
			},
			{
				Name:  "seed",
				Usage: "insert the sample course, layout, player and round",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Usage:   "password for the sample player",
						Value:   "scorekeeper",
						EnvVars: []string{"SEED_PASSWORD"},
					},
				},
				Action: func(c *cli.Context) error { return seedData(c.Context, c.String("password"), log) },
			},
		},
		Action: func(c *cli.Context) error { return serve(c.Context, log) },
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Critical("app: command failed", "err", err)
		os.Exit(1)
	}
}

func serve(parent context.Context, log logger.Logger) error {
	log.Info("app: starting")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		runErr = errors.Join(runErr, err)
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		runErr = errors.Join(runErr, err)
	}

	if runErr == nil {
		log.Info("app: stopped")
	}
	return runErr
}

func migrate(log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer db.Close(dbConn)

	if err := db.Migrate(dbConn); err != nil {
		return err
	}
	log.Info("db: migrations applied")
	return nil
}

func seedData(ctx context.Context, password string, log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer db.Close(dbConn)

	if err := db.Migrate(dbConn); err != nil {
		return err
	}

	result, err := seed.Run(ctx, cfg, dbConn, password, log)
	if err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			log.Info("seed: nothing to do", "reason", err.Error())
			return nil
		}
		return err
	}

	log.Info("seed: finished", "course_id", result.CourseID, "user_id", result.UserID)
	return nil
}
