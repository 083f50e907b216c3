// internal/server/lifecycle.go

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"banksim/internal/config"
)

// Lifecycle 包裝 http.Server 的啟動與優雅關閉。
type Lifecycle struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewLifecycle constructs an http.Server around handler using cfg timeouts.
func NewLifecycle(logger *slog.Logger, cfg config.HTTPConfig, handler http.Handler) *Lifecycle {
	return &Lifecycle{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start 開始接受連線，直到 Shutdown 被呼叫。
func (l *Lifecycle) Start() error {
	l.logger.Info("starting http server", "addr", l.httpServer.Addr)
	if err := l.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully terminates all active connections.
func (l *Lifecycle) Shutdown(ctx context.Context) error {
	l.logger.Info("shutting down http server")
	return l.httpServer.Shutdown(ctx)
}
