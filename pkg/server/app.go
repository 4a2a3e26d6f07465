package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"MemeIQ/pkg/config"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	digestPub  applogger.Publisher
	client     *xhttp.Client

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		logger:     l,
		httpServer: srv,
		client:     xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		stop:       make(chan struct{}),
	}
}

// WithDigestPublisher ships the warn/error digest through pub once the app starts.
func (a *App) WithDigestPublisher(pub applogger.Publisher) *App {
	a.digestPub = pub
	return a
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if err := a.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return a.Stop(ctx)
}

// Start attaches the log digest, reports credentials, starts the HTTP server and
// the keep-warm heartbeat.
func (a *App) Start() error {
	if a.digestPub != nil {
		a.logger.AttachDigest(&applogger.DigestConfig{
			Interval:  a.cfg.Log.Digest.Interval,
			MaxUnique: a.cfg.Log.Digest.MaxUnique,
			Topic:     a.cfg.Log.Digest.Topic,
			Publisher: a.digestPub,
		})
	}

	for _, c := range a.cfg.Credentials() {
		if c.Configured {
			a.logger.Info("credential configured", applogger.String("env", c.Env))
		} else {
			a.logger.Warn("credential missing", applogger.String("env", c.Env))
		}
	}

	if a.cfg.Events.Enabled {
		a.logger.Info("analysis events enabled",
			applogger.String("topic", a.cfg.Events.Topic),
			applogger.Strings("brokers", a.cfg.Events.Brokers),
		)
	}

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	if iv := a.cfg.KeepWarm.Interval; iv > 0 {
		a.wg.Add(1)
		go a.keepWarm(iv)
	}

	a.logger.Info("memeiq started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("addr", a.httpServer.Addr()),
	)
	return nil
}

// keepWarm pings the keep-warm endpoint so upstream connections and caches stay hot.
func (a *App) keepWarm(interval time.Duration) {
	defer a.wg.Done()
	t := time.NewTicker(interval)
	defer t.Stop()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/keep-warm", a.cfg.Server.Port)
	for {
		select {
		case <-a.stop:
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			var out struct {
				OK bool `json:"ok"`
			}
			err := a.client.GetJSON(ctx, &xhttp.RequestOptions{URL: url}, &out)
			cancel()
			if err != nil || !out.OK {
				a.logger.Warn("keep-warm ping failed", applogger.Error(err))
				continue
			}
			a.logger.Debug("keep-warm ping ok")
		}
	}
}

// Stop halts the heartbeat, drains the HTTP server and flushes the log digest.
// Provider resources are released by the DI cleanup afterwards.
func (a *App) Stop(ctx context.Context) error {
	a.logger.Info("shutting down...")

	close(a.stop)
	a.wg.Wait()

	var firstErr error
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	a.logger.Close()
	a.logger.Info("shutdown complete")
	return firstErr
}
