package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiPkg "github.com/timeliner-io/timeliner/internal/api"
	"github.com/timeliner-io/timeliner/internal/assist"
	"github.com/timeliner-io/timeliner/internal/audit"
	"github.com/timeliner-io/timeliner/internal/config"
	"github.com/timeliner-io/timeliner/internal/kb"
	"github.com/timeliner-io/timeliner/internal/logbuf"
	"github.com/timeliner-io/timeliner/internal/pager"
	"github.com/timeliner-io/timeliner/internal/provider"
	"github.com/timeliner-io/timeliner/internal/session"
	"github.com/timeliner-io/timeliner/internal/store"
	"github.com/timeliner-io/timeliner/internal/sweep"
)

func main() {
	configPath := flag.String("config", "", "Path to config JSON file")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	// Set up logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logBuf := logbuf.New(2000)
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logbuf.NewHandler(jsonHandler, logBuf))

	// Load config (file or env)
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("timelinerd starting", "state_dir", cfg.Storage.StateDir)

	// 1. Storage
	retention := time.Duration(cfg.Storage.RetentionDays) * 24 * time.Hour
	incidents := store.NewIncidents(cfg.Storage.StateDir, retention, logger.With("component", "incidents"))
	teams := store.NewTeams(cfg.Storage.StateDir, logger.With("component", "teams"))
	sessions := session.New(cfg.Storage.StateDir)

	// 2. Assist service, if a provider is configured
	var assistSvc *assist.Service
	if pcfg, ok := cfg.Providers["default"]; ok {
		var prov provider.Provider
		switch pcfg.Type {
		case "anthropic":
			var opts []provider.AnthropicOption
			if pcfg.BaseURL != "" {
				opts = append(opts, provider.WithAnthropicBaseURL(pcfg.BaseURL))
			}
			if pcfg.Model != "" {
				opts = append(opts, provider.WithAnthropicModel(pcfg.Model))
			}
			prov = provider.NewAnthropic(pcfg.APIKey, opts...)
		default: // "openai" or empty
			var opts []provider.OpenAIOption
			if pcfg.BaseURL != "" {
				opts = append(opts, provider.WithBaseURL(pcfg.BaseURL))
			}
			if pcfg.Model != "" {
				opts = append(opts, provider.WithModel(pcfg.Model))
			}
			prov = provider.NewOpenAI(pcfg.APIKey, opts...)
		}
		assistSvc = assist.New(prov, logger.With("component", "assist"))
		logger.Info("provider initialized", "type", prov.Name(), "model", pcfg.Model)
	} else {
		logger.Info("no provider configured, assist endpoints disabled")
	}

	// 3. Pager backends
	var pagers []pager.Pager
	if cfg.Pager.Slack != nil {
		p, err := pager.NewSlack(cfg.Pager.Slack.BotToken, cfg.Pager.Slack.Channel)
		if err != nil {
			logger.Error("failed to init slack pager", "error", err)
			os.Exit(1)
		}
		pagers = append(pagers, p)
		logger.Info("pager initialized", "backend", "slack", "channel", cfg.Pager.Slack.Channel)
	}
	if cfg.Pager.Telegram != nil {
		p, err := pager.NewTelegram(cfg.Pager.Telegram.Token, cfg.Pager.Telegram.ChatID)
		if err != nil {
			logger.Error("failed to init telegram pager", "error", err)
			os.Exit(1)
		}
		pagers = append(pagers, p)
		logger.Info("pager initialized", "backend", "telegram")
	}
	var multiPager pager.Pager
	if len(pagers) > 0 {
		multiPager = pager.NewMulti(logger.With("component", "pager"), pagers...)
	}

	// 4. Audit log
	var auditStore *audit.Store
	if cfg.Audit.Path != "" {
		auditStore, err = audit.Open(cfg.Audit.Path)
		if err != nil {
			logger.Error("failed to open audit store", "path", cfg.Audit.Path, "error", err)
			os.Exit(1)
		}
		defer auditStore.Close()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Retention sweep
	runner, err := sweep.New(incidents, cfg.Storage.SweepSchedule, logger.With("component", "sweep"))
	if err != nil {
		logger.Error("failed to init sweep runner", "schedule", cfg.Storage.SweepSchedule, "error", err)
		os.Exit(1)
	}
	go safeGo(logger, "sweep", func() { runner.Start(ctx) })

	// 6. API server
	srv := apiPkg.NewServer(apiPkg.Deps{
		Incidents: incidents,
		Teams:     teams,
		Session:   sessions,
		Assist:    assistSvc,
		Fetcher:   kb.NewFetcher(),
		Pager:     multiPager,
		Audit:     auditStore,
		Logs:      logBuf,
	}, apiPkg.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		Key:  cfg.Server.Key,
	}, logger.With("component", "api"))

	go safeGo(logger, "api-server", func() { srv.Start(ctx) })
	logger.Info("api server started", "port", cfg.Server.Port)

	// 7. Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)
	cancel()
	logger.Info("timelinerd stopped")
}

// safeGo runs fn with panic recovery.
func safeGo(logger *slog.Logger, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("goroutine panicked", "name", name, "panic", fmt.Sprintf("%v", r))
		}
	}()
	fn()
}
