package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/supakorn-kn/books-lib/apis"
	booksAPI "github.com/supakorn-kn/books-lib/apis/books"
	"github.com/supakorn-kn/books-lib/env"
	booksModel "github.com/supakorn-kn/books-lib/models/books"
	"github.com/supakorn-kn/books-lib/mongodb"
	"github.com/supakorn-kn/books-lib/objects"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Load .env failed", "error", err)
	}

	config, err := env.GetEnv()
	if err != nil {
		slog.Error("Read configuration failed", "error", err)
		os.Exit(1)
	}

	setupLogger(config.Log)

	if err := run(config); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(config env.LogConfig) {

	if config.Format == env.JSONLogFormat {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func run(config *env.Env) error {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := mongodb.InitConnection(connectCtx, config.MongoDB.URI, config.MongoDB.DB)
	if err != nil {
		return fmt.Errorf("connect MongoDB at %s: %w", mongodb.RedactURI(config.MongoDB.URI), err)
	}

	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := conn.Disconnect(disconnectCtx); err != nil {
			slog.Error("Disconnect MongoDB failed", "error", err)
		}
	}()

	slog.Info("Database connected", "uri", mongodb.RedactURI(config.MongoDB.URI), "db", config.MongoDB.DB)

	model, err := booksModel.NewBooksModel(connectCtx, conn)
	if err != nil {
		return fmt.Errorf("create books model: %w", err)
	}

	g := apis.NewEngine(config.Server.CORSAllowOrigins)
	apis.RegisterHealthAPI(g, conn)
	apis.RegisterCrudAPI[objects.Book](booksAPI.NewBooksAPI(model), g.Group("api/books"), "Book")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Server.Port),
		Handler:      g,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server started", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil

	case <-ctx.Done():
		slog.Info("Shutting down server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
