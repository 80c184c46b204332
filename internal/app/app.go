package app

import (
	"context"
	"errors"
	"io"
	"mermaid_slot/internal/config"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	HTTP           bool   // JSON API вместо терминала
	EnvPath        string // .env, отсутствие файла не ошибка
	GameConfigPath string // пусто: встроенная конфигурация
	In             io.Reader
	Out            io.Writer
}

type App struct {
	ServiceProvider *ServiceProvider
	opts            Options
}

func NewApp(opts Options) *App {
	return &App{opts: opts}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider(s.opts.GameConfigPath, s.opts.Out)
}

// Run работает до выхода игрока или отмены ctx
func (s *App) Run(ctx context.Context) error {
	envErr := config.Load(s.opts.EnvPath)
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	logger := s.ServiceProvider.Logger()
	if envErr != nil {
		logger.Debug("env file not loaded", zap.String("path", s.opts.EnvPath), zap.Error(envErr))
	}

	if s.opts.HTTP {
		return s.runHTTP(ctx)
	}
	return s.runTerminal(ctx)
}

func (s *App) runHTTP(ctx context.Context) error {
	logger := s.ServiceProvider.Logger()
	server := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("address", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *App) runTerminal(ctx context.Context) error {
	lines := readLines(s.opts.In)

	username, ok := s.login(ctx, lines)
	if !ok {
		return nil
	}
	return s.play(ctx, username, lines)
}
