package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"ledgerly/internal/advisor"
	"ledgerly/internal/amqp"
	"ledgerly/internal/config"
	"ledgerly/internal/core"
	"ledgerly/internal/kvmem"
	"ledgerly/internal/log"
	"ledgerly/internal/services"
	"ledgerly/internal/storage"
	"ledgerly/internal/store"
	"ledgerly/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{Level: parseLevel(cfg.LogLevel)})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Choose data backend (default: sqlite).
	var kv store.KV
	switch cfg.DataBackend {
	case "memory":
		kv = kvmem.New()
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	default:
		if err := storage.RunMigrations(cfg.SQLiteDBPath); err != nil {
			logger.Error("Failed to run migrations", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		kv = repo
		logger.Info("Initialized SQLite backend", "backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
	}

	st, err := store.Open(ctx, kv, logger)
	if err != nil {
		logger.Error("Failed to open store", log.FieldError, err)
		os.Exit(1)
	}
	defer st.Close()

	currency := st.Currency()
	if currency == "" {
		currency = cfg.DefaultCurrency
	}

	// AMQP publishing is optional; without a URL mutations stay local-only.
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		worker.NewEventPublisher(client, logger).Attach(st)
		logger.Info("AMQP change-event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ledger := services.NewLedgerService(st, logger)
	categories := services.NewCategoryService(st, logger)

	var summarizer advisor.Summarizer
	if cfg.OpenAIAPIKey != "" {
		summarizer = advisor.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		logger.Info("AI advisor enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("AI advisor disabled - no OPENAI_API_KEY provided")
	}
	adv := advisor.New(summarizer, cfg.AdvisorTimeout, logger)

	printDashboard(ctx, logger, ledger, categories, adv, currency)
}

func printDashboard(ctx context.Context, logger *log.Logger, ledger *services.LedgerService, categories *services.CategoryService, adv *advisor.Service, currency string) {
	stats, err := ledger.Stats(core.FilterAll, core.CategoryAll)
	if err != nil {
		logger.Error("Failed to compute dashboard stats", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Dashboard totals",
		"currency", currency,
		"income", stats.TotalIncome,
		"expense", stats.TotalExpense,
		"balance", stats.NetBalance)

	dist, err := ledger.ExpenseDistribution(core.FilterAll, core.CategoryAll)
	if err != nil {
		logger.Error("Failed to compute expense distribution", log.FieldError, err)
		os.Exit(1)
	}
	for _, ca := range dist {
		logger.Info("Expense category", log.FieldCategoryName, ca.Name, log.FieldAmount, ca.Amount)
	}

	trend := ledger.Trend()
	logger.Info("Spending trend",
		"days", len(trend),
		"from", trend[0].Date.String(),
		"to", trend[len(trend)-1].Date.String())

	logger.Info("Registered categories", log.FieldCount, len(categories.List()))

	logger.Info("Advisor", "insights", adv.Insights(ctx, ledger.Snapshot()))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
