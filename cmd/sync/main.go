// Command sync pulls the Kalshi catalog (series, events, markets) into
// PostgreSQL. One pass by default; set sync.interval in the config to keep
// it running.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/config"
	"github.com/rickgao/kalshi-sync/internal/logging"
	"github.com/rickgao/kalshi-sync/internal/service"
	"github.com/rickgao/kalshi-sync/internal/store"
	"github.com/rickgao/kalshi-sync/internal/sync"
	"github.com/rickgao/kalshi-sync/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/sync.yaml", "path to config file")
	resourcesFlag := flag.String("resources", "", "comma-separated resources to sync (default: series,events,markets)")
	once := flag.Bool("once", false, "run a single pass even if sync.interval is configured")
	flag.Parse()

	// Pull secrets referenced by ${VAR} in the config file from .env, if present.
	godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Directory, cfg.Log.Filename, cfg.Log.MaxAgeDays)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup logging:", err)
		os.Exit(1)
	}
	logger = logger.With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	logger.Info("starting kalshi sync",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"host", cfg.API.Host,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig.String())
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	client, err := api.NewClient(
		cfg.API.Host,
		cfg.API.KeyID,
		cfg.API.PrivateKeyPath,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		logger.Error("failed to build API client", "error", err)
		os.Exit(1)
	}
	if !client.AuthEnabled() {
		logger.Warn("API credentials missing; authenticated operations will fail")
	}

	runner := sync.NewRunner(
		sync.Deps{
			Series:      service.NewSeriesService(client, logger),
			Events:      service.NewEventsService(client, logger),
			Markets:     service.NewMarketsService(client, logger),
			SeriesRepo:  store.NewSeriesRepo(pool, logger),
			EventsRepo:  store.NewEventRepo(pool, logger),
			MarketsRepo: store.NewMarketRepo(pool, logger),
		},
		sync.Config{
			PageLimit:      cfg.Sync.PageLimit,
			PageDelay:      cfg.Sync.PageDelay,
			MaxPages:       cfg.Sync.MaxPages,
			Status:         cfg.Sync.Status,
			MaxRetries:     cfg.Sync.MaxRetries,
			RetryBaseDelay: cfg.Sync.RetryBaseDelay,
		},
		logger,
	)

	resources := splitResources(*resourcesFlag)

	exitCode := 0
	for {
		summaries := runner.Run(ctx, resources)
		printSummary(os.Stdout, summaries)
		for _, s := range summaries {
			if s.Err != nil {
				exitCode = 1
			}
		}

		if *once || cfg.Sync.Interval <= 0 || ctx.Err() != nil {
			break
		}

		logger.Info("sleeping until next pass", "interval", cfg.Sync.Interval)
		select {
		case <-ctx.Done():
		case <-time.After(cfg.Sync.Interval):
			continue
		}
		break
	}

	os.Exit(exitCode)
}

func splitResources(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var resources []string
	for _, part := range strings.Split(flagValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			resources = append(resources, part)
		}
	}
	return resources
}

func printSummary(w io.Writer, summaries []sync.Summary) {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}
		rows = append(rows, []string{
			s.Resource,
			strconv.Itoa(s.Pages),
			strconv.Itoa(s.Fetched),
			strconv.Itoa(s.Saved),
			s.Duration.Round(time.Millisecond).String(),
			errText,
		})
	}

	table := tablewriter.NewTable(w)
	table.Header([]string{"Resource", "Pages", "Fetched", "Saved", "Duration", "Error"})
	table.Bulk(rows)
	table.Render()
}
