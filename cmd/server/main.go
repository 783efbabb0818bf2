package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/config"
	httpserver "github.com/shiftcrew/shiftcrew/internal/http"
	"github.com/shiftcrew/shiftcrew/internal/invoice"
	"github.com/shiftcrew/shiftcrew/internal/notify"
	"github.com/shiftcrew/shiftcrew/internal/rating"
	"github.com/shiftcrew/shiftcrew/internal/repository"
	"github.com/shiftcrew/shiftcrew/internal/schedule"
	"github.com/shiftcrew/shiftcrew/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer st.Close()

	notifier, err := notify.NewHTTPNotifier(cfg.NotifyURL, cfg.NotifyAPIKey, time.Duration(cfg.NotifyTimeoutSecs)*time.Second, logger)
	if err != nil {
		logger.Fatal("init notifier", zap.Error(err))
	}

	repo := repository.New(st)
	engine := rating.New(st.Pool(), repo.Assignments, logger)
	invoices := invoice.New(repo.Invoices)
	scheduler := schedule.New(repo, notifier, logger)

	server := httpserver.New(cfg, st, repo, engine, invoices, scheduler, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(mode string) (*zap.Logger, error) {
	switch strings.ToLower(mode) {
	case "dev", "development":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}
