package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// App owns a service's components and drives them through startup and
// shutdown. C is the service's config type.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer

	onStart []Hook
	onReady []Hook
}

// NewApp applies defaults to cfg, validates it and sets up logging. A logger
// passed with WithLogger also becomes the global logger, so component
// loggers derived later share its output.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	if o.logger != nil {
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(&base.Logging)
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(logger.GetGlobalLogger()),
		Logger:          logger.GetGlobalLogger(),
		Summary:         NewSummary(base.Name, base.Version),
		gracefulTimeout: defaultGracefulTimeout,
		summaryOut:      os.Stdout,
	}
	if o.gracefulTimeout > 0 {
		app.gracefulTimeout = o.gracefulTimeout
	}
	if o.summaryOut != nil {
		app.summaryOut = o.summaryOut
	}
	return app, nil
}

// RegisterComponent adds c to the registry. Components start in
// registration order and stop in reverse.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck returns an error naming every component that is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		entry := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			entry += "(" + h.Message + ")"
		}
		bad = append(bad, entry)
	}
	if len(bad) == 0 {
		return nil
	}
	return fmt.Errorf("unhealthy components: %s", strings.Join(bad, ", "))
}

// Run starts everything, blocks until SIGINT, SIGTERM or ctx is done, then
// shuts down. A startup failure still stops the components that started.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return errors.Join(err, a.stop())
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, "onStart", a.onStart); err != nil {
		return err
	}

	// An unreachable model sidecar should not keep the server down; it is
	// reported here and on /health.
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.WithError(err).Warn("Ready check reported issues")
	}

	if err := runHooks(ctx, "onReady", a.onReady); err != nil {
		return err
	}

	a.Summary.SetStartupDuration(time.Since(began))
	a.DisplaySummary(ctx)
	return nil
}

// DisplaySummary collects the registry state and prints the summary.
func (a *App[C]) DisplaySummary(ctx context.Context) {
	a.Summary.Collect(ctx, a.Components)
	a.Summary.Write(a.summaryOut)
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation and returns
// the signal, or nil for cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// stop stops components in reverse order within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.WithError(err).Error("Shutdown completed with errors")
		return err
	}
	a.Logger.Info("Application shutdown complete")
	return nil
}
