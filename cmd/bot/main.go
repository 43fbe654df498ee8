package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"SignalScout/internal/collector"
	"SignalScout/internal/config"
	"SignalScout/internal/model"
	"SignalScout/internal/notifier"
	"SignalScout/internal/scanner"
	"SignalScout/internal/scheduler"
	"SignalScout/internal/server"
	"SignalScout/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalScout starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Open store and seed defaults
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	defaults := model.BudgetState{
		AnnualBudget:       cfg.Budget.AnnualBudget,
		MonthlyMaxBudget:   cfg.Budget.MonthlyMaxBudget,
		MaxPositionSize:    cfg.Budget.MaxPositionSize,
		MinCombo20:         cfg.Budget.MinCombo20,
		MinCombo50:         cfg.Budget.MinCombo50,
		MinSignalStrength:  cfg.Budget.MinSignalStrength,
		EmailNotifications: cfg.EmailEnabled(),
	}
	if err := st.EnsureSeedData(defaults, time.Now()); err != nil {
		log.Fatalf("[FATAL] seed data: %v", err)
	}

	// Build the provider chain in priority order; keyless providers are
	// skipped entirely.
	fetchers := []collector.Fetcher{collector.NewYahooFetcher(cfg.Proxy)}
	if cfg.Providers.AlphaVantageKey != "" {
		fetchers = append(fetchers, collector.NewAlphaVantageFetcher(cfg.Providers.AlphaVantageKey, cfg.Proxy))
	}
	if cfg.Providers.TwelveDataKey != "" {
		fetchers = append(fetchers, collector.NewTwelveDataFetcher(cfg.Providers.TwelveDataKey, cfg.Proxy))
	}
	chain := collector.NewChain(fetchers...)
	for _, f := range fetchers {
		log.Printf("[INFO] data provider: %s", f.Name())
	}

	// Email notifier (optional)
	var emailNotifier scanner.Notifier
	if cfg.EmailEnabled() {
		emailNotifier = notifier.NewEmailNotifier(
			cfg.Email.Host, cfg.Email.Port,
			cfg.Email.User, cfg.Email.Pass,
			cfg.Email.From, cfg.Email.To,
		)
		log.Printf("[INFO] email notifications enabled: %s", cfg.Email.To)
	} else {
		log.Println("[INFO] email notifications disabled")
	}

	sc := scanner.New(chain, st, st, st, emailNotifier)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, sc)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// HTTP API
	srv := server.New(cfg.HTTP.Addr, st, sc, cfg.HTTP.ScanSecret)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] SignalScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] SignalScout stopped")
}
