package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamvkosarev/karaoke-server/internal/config"
	"github.com/iamvkosarev/karaoke-server/internal/handler"
	"github.com/iamvkosarev/karaoke-server/internal/logger"
	"github.com/iamvkosarev/karaoke-server/internal/server"
	"github.com/iamvkosarev/karaoke-server/internal/service/songs"
)

type App struct {
	server *server.Server
	config *config.Config
}

func New(cfg *config.Config) *App {
	files := os.DirFS(cfg.Library.Root)
	songService := songs.NewSongService(files, cfg.Library.SongsDir)

	h := handler.New(songService, files, config.EnvFile)

	srv := server.New(cfg, h, logger.Get())

	return &App{
		server: srv,
		config: cfg,
	}
}

// Run serves until SIGINT or SIGTERM, then shuts the server down and
// releases the port. Failing to bind is returned immediately.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.serve(ctx)
}

func (a *App) serve(ctx context.Context) error {
	log := logger.Get()

	log.Info().Msgf("Starting server on port %s...", a.config.Server.Port)
	if err := a.server.Listen(); err != nil {
		return err
	}
	log.Info().Str("root", a.config.Library.Root).Msgf("Server running at %s", a.server.URL())

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.App.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Warn().Dur("timeout", a.config.App.ShutdownTimeout).Msg("transfers still running, closing connections")
		if err := a.server.Close(); err != nil {
			return fmt.Errorf("failed to close server: %w", err)
		}
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}
