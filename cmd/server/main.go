package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/promomod/internal/admin"
	"github.com/JonMunkholm/promomod/internal/config"
	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/JonMunkholm/promomod/internal/logging"
	"github.com/JonMunkholm/promomod/internal/source"
	"github.com/JonMunkholm/promomod/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", config.MaskURL(cfg.Source.URL),
		"watch", cfg.Source.Watch,
		"cache_size", cfg.Cache.Size,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	opts := source.OptionsFromConfig(cfg)
	load := func(ctx context.Context) (*core.Store, error) {
		return source.Load(ctx, cfg.Source.URL, opts)
	}

	// The initial load is fatal: without tables there is nothing to serve.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Source.LoadTimeout)
	store, err := load(loadCtx)
	cancelLoad()
	if err != nil {
		slog.Error("failed to load tables", "error", err, "hint", core.FormatUserError(err))
		os.Exit(1)
	}

	provider := core.NewProvider(core.NewEngine(store, cfg.Cache.Size))
	reloader := admin.NewReloader(provider, load, cfg.Cache.Size, cfg.Source.LoadTimeout)

	slog.Info("tables registered",
		"count", core.TableCount(),
		"platforms", core.SupportedPlatforms(),
	)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if cfg.Source.Watch {
		startWatcher(jobCtx, cfg.Source.URL, reloader)
	}

	server := web.NewServer(provider, reloader, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// startWatcher reloads the tables when a local source changes. Remote
// sources are reloaded through the admin endpoint instead.
func startWatcher(ctx context.Context, raw string, reloader *admin.Reloader) {
	u, err := source.Parse(raw)
	if err != nil || !source.IsLocal(u) {
		slog.Warn("source watch requested but source is not local, skipping", "source", config.MaskURL(raw))
		return
	}

	w, err := admin.NewWatcher(source.LocalPath(u), reloader, admin.DefaultDebounce)
	if err != nil {
		slog.Error("failed to start source watcher", "error", err)
		return
	}

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("source watcher stopped", "error", err)
		}
	}()
}
