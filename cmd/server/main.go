package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"vitalguard/internal/ai"
	"vitalguard/internal/api"
	"vitalguard/internal/config"
	"vitalguard/internal/generator"
	"vitalguard/internal/logging"
	"vitalguard/internal/metrics"
	"vitalguard/internal/monitor"
	"vitalguard/internal/render"
)

const mqttPublishTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logger
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, "vitalguard")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("configuration rejected", zap.Error(err))
	}

	// Root context, cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Reading source
	source, err := generator.New(cfg.Monitor.Generator, cfg.Monitor.Seed, nil)
	if err != nil {
		logger.Fatal("failed to build generator", zap.Error(err))
	}

	// Classifier
	strategy, err := ai.NewStrategy(cfg.Monitor.Strategy, cfg.Rules)
	if err != nil {
		logger.Fatal("failed to build classifier", zap.Error(err))
	}
	analyzer := ai.NewAnalyzer(strategy, metricsRegistry)

	// Render surfaces
	latest := render.NewLatest()
	renderers := render.Fanout{latest, render.NewLogRenderer(logger)}

	var mqttClient mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = render.ConnectMQTT(ctx, render.MQTTOptions{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, render.DefaultRetryPolicy(), logger)
		if err != nil {
			logger.Fatal("mqtt unavailable", zap.Error(err))
		}
		renderers = append(renderers, render.NewMQTTRenderer(
			mqttClient,
			cfg.MQTT.Topic,
			cfg.MQTT.QoS,
			mqttPublishTimeout,
			metricsRegistry,
		))
	}

	// Session
	session, err := monitor.NewSession(monitor.Options{
		Source:            source,
		HistoryCapacity:   cfg.Monitor.HistoryCapacity,
		Analyzer:          analyzer,
		Renderer:          renderers,
		Patient:           cfg.Patient,
		Enabled:           cfg.Monitor.StartEnabled,
		HeartRateBaseline: cfg.Monitor.HeartRateBaseline,
		Logger:            logger,
		Metrics:           metricsRegistry,
	})
	if err != nil {
		logger.Fatal("failed to start session", zap.Error(err))
	}

	// Tick loop
	scheduler := monitor.NewScheduler(session, cfg.Monitor.TickInterval.Std(), logger)
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		scheduler.Start(ctx)
	}()

	// API
	handler := api.NewHandler(session, latest, cfg.Monitor.Strategy, cfg.Rules, metricsRegistry, logger)
	server := api.NewServer(handler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening",
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown error", zap.Error(err))
	}

	<-schedulerDone
	session.Close()

	if mqttClient != nil {
		mqttClient.Disconnect(250)
	}
	logger.Info("vitalguard stopped")
}

// loadConfig reads VITALGUARD_CONFIG when set, the environment otherwise.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("VITALGUARD_CONFIG"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv(), nil
}
