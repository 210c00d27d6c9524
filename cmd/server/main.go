package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/corazzon/st-naversearch/internal/config"
	"github.com/corazzon/st-naversearch/internal/handler"
	"github.com/corazzon/st-naversearch/pkg/cache"
	"github.com/corazzon/st-naversearch/pkg/insight"
	"github.com/corazzon/st-naversearch/pkg/logger"
	"github.com/corazzon/st-naversearch/pkg/naver"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "", "Configuration file path (optional)")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		stdlog.Fatalf("Server failed: %v", err)
	}
}

func (app *Application) Run() error {
	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	if app.debug {
		logCfg.Level = "debug"
	}
	appLog := logger.New(logCfg)
	logger.SetLogger(appLog)
	logger.SetGlobalLogger(appLog)
	log := appLog.WithField("component", "server")

	// Credentials are resolved once at startup; data endpoints answer
	// 503 until the process restarts with a configured pair.
	creds := config.ResolveFrom(cfg.Naver.EnvFile)
	if creds.Configured() {
		log.WithField("client_id", logger.MaskSecret(creds.ClientID)).Info("Naver API credentials loaded")
	} else {
		log.Warn("Naver API credentials not configured, data endpoints will return 503")
	}

	results := cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	client := naver.New(naver.ClientConfig{
		BaseURL:      cfg.Naver.BaseURL,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Timeout:      time.Duration(cfg.Naver.TimeoutSeconds) * time.Second,
		Display:      cfg.Naver.Display,
	}, results)
	reports := insight.New(client, cfg.Fetch.Workers)

	srv := fiber.New(fiber.Config{
		AppName:               "st-naversearch",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
	})
	srv.Use(recover.New())
	handler.New(reports, results, func() config.Credentials { return creds }).Register(srv)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()
	log.WithFields(map[string]interface{}{
		"addr":    addr,
		"workers": cfg.Fetch.Workers,
		"ttl_s":   cfg.Cache.TTLSeconds,
	}).Info("Server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	if err := srv.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
