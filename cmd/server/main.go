package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-print"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/config"
	"github.com/goliatone/go-auth-api/repository"
	"github.com/goliatone/go-auth-api/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath, os.LookupEnv)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.GetDebug() {
		level = slog.LevelDebug
	}
	logger := auth.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))).With("service", "go-auth-api")

	if cfg.GetDebug() {
		fmt.Println("======= CONFIG ======")
		fmt.Println(print.MaybePrettyJSON(cfg))
		fmt.Println("=====================")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(cfg.GetDatabaseDriver(), cfg.GetDatabaseDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	group, err := repository.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logger.Info("no new migrations")
	} else {
		logger.Info("migrated", "group", group.String())
	}

	srv := server.New(cfg, db,
		server.WithLogger(logger),
		server.WithAccessLog(true),
	)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", cfg.GetServerAddress())
		errc <- srv.App.Listen(cfg.GetServerAddress())
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return srv.App.ShutdownWithTimeout(10 * time.Second)
}
