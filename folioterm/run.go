package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/folioterm/internal/config"
	"rhystmorgan/folioterm/internal/logging"
	"rhystmorgan/folioterm/internal/telemetry"
	"rhystmorgan/folioterm/internal/transport"
	"rhystmorgan/folioterm/internal/views"
)

const release = "1.0.0"

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	baseLogger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	logger := baseLogger.Sugar()

	sentryEnabled, err := telemetry.InitSentry(cfg.SentryDSN, release, cfg.Debug)
	if err != nil {
		logger.Warnf("Sentry disabled: %v", err)
	}
	if sentryEnabled {
		defer telemetry.FlushSentry(2 * time.Second)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	metrics := telemetry.NewMetrics()
	if cfg.MetricsAddr != "" {
		if _, err := metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	t, err := buildTransport(cfg, logger)
	if err != nil {
		return err
	}

	app := views.NewAppModel(ctx, t, views.ContactFormOptions{
		Config:        cfg.ToFormConfig(),
		ReducedMotion: cfg.ReducedMotion,
		Logger:        logger,
		Observer:      telemetry.NewObserver(metrics, telemetry.NewReporter(sentryEnabled, logger)),
	})
	defer app.Shutdown()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run contact form: %w", err)
	}
	return nil
}

// applyFlags overlays explicitly set flags onto cfg
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("simulate") && simulate {
		cfg.Endpoint = ""
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}

	return cfg.Validate()
}

func buildTransport(cfg *config.Config, logger *zap.SugaredLogger) (transport.Transport, error) {
	if cfg.UsesSimulatedTransport() {
		logger.Infof("No endpoint configured, simulating delivery (success rate %.2f)", cfg.SimulateSuccessRate)
		return transport.NewSimulated(cfg.SimulateSuccessRate, cfg.SimulateLatency, logger), nil
	}

	client, err := transport.NewClient(cfg.ToTransportConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transport: %w", err)
	}
	return client, nil
}
