package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	"yatube/internal/config"
	cachePort "yatube/internal/ports/cache"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func startServer(cctx *cli.Context) error {
	s, err := newSrv()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dbadapter.Migrate(s.db); err != nil {
		return err
	}
	config.Logger.Info("Database migrations completed")

	if err := s.loadCache(ctx); err != nil {
		return err
	}
	if err := s.loadStorage(); err != nil {
		return err
	}
	s.loadServices()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go flushOnSignal(ctx, s.cache, hup)

	if !s.settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := httpapi.Deps{
		Users:      s.userSvc,
		Feeds:      s.feedSvc,
		Posts:      s.postSvc,
		Groups:     s.groupSvc,
		Followers:  s.followerSvc,
		Cache:      s.cache,
		CacheTTL:   s.settings.CacheTTL,
		Storage:    s.storage,
		CookieName: s.settings.CookieName,
		MediaURL:   s.settings.MediaURL,
		Logger:     config.Logger,
	}
	if s.settings.StorageBackend == config.StorageLocal {
		deps.MediaRoot = s.settings.MediaRoot
	}

	router, err := httpapi.SetupRoutes(deps)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + s.settings.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Info("App is running", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// flushOnSignal clears the page cache every time sig fires, until ctx ends.
// It is the only way to flush a memory cache held by a running server.
func flushOnSignal(ctx context.Context, cache cachePort.PageCache, sig <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := cache.Clear(ctx); err != nil {
				config.Logger.Error("Page cache flush failed", zap.Error(err))
			}
		}
	}
}

func startMigrate(cctx *cli.Context) error {
	s, err := newSrv()
	if err != nil {
		return err
	}
	defer s.close()

	if err := dbadapter.Migrate(s.db); err != nil {
		return err
	}
	config.Logger.Info("Database migrations completed")
	return nil
}
