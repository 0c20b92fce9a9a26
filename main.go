package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/MICROWAVE-web/EncarParsing/config"
	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/scraper/encar"
	"github.com/MICROWAVE-web/EncarParsing/services"
	"github.com/MICROWAVE-web/EncarParsing/storage"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogFile)

	logger.Info("=== Encar crawl worker starting ===")
	logger.Info("Config — years: %d..%d | page size: %d | repeat budget: %d | pause: %v",
		cfg.StartYear, cfg.MinYear, cfg.PageSize, cfg.RepeatBudget, cfg.RequestPause)

	store := storage.NewJSONStore(cfg.ResultsFile, logger)

	sink, err := openSink(cfg, logger)
	if err != nil {
		logger.Error("Failed to open record sink: %v", err)
		os.Exit(1)
	}
	defer sink.Close()

	insightSvc := services.NewInsightService(logger)

	cycle := 0
	for {
		cycle++
		logger.Info("%s", strings.Repeat("=", 60))
		logger.Info("Crawl cycle #%d starting", cycle)
		logger.Info("%s", strings.Repeat("=", 60))

		start := time.Now()
		stats := runCycle(cfg, logger, store, sink)
		logger.Info("Cycle #%d finished in %.2f seconds — pages: %d, new: %d, repeats: %d, total collected: %d",
			cycle, time.Since(start).Seconds(),
			stats.PagesFetched, stats.NewIDs, stats.Repeats, stats.Total)

		if records, err := sink.FetchAll(); err != nil {
			logger.Error("Failed to fetch records for insights: %v", err)
		} else {
			insightSvc.Print(insightSvc.Generate(records))
		}

		if cfg.RunOnce {
			break
		}

		logger.Info("Pausing %v before next cycle...", cfg.CyclePause)
		time.Sleep(cfg.CyclePause)
	}
}

// runCycle builds a fresh session from the cookie bundle and performs one
// full sweep. A missing bundle skips the cycle; the collector that refreshes
// cookies runs outside this process.
func runCycle(cfg *config.Config, logger *utils.Logger,
	store storage.ResultStore, sink storage.RecordSink) models.CrawlStats {

	bundle, err := encar.LoadCookieBundle(cfg.CookiesFile)
	if err != nil {
		if errors.Is(err, encar.ErrNoCookies) {
			logger.Error("Cookie bundle unavailable, nothing to do this cycle: %v", err)
		} else {
			logger.Error("Failed to load cookie bundle: %v", err)
		}
		return models.CrawlStats{}
	}
	logger.Info("Using saved cookies (%d), headers (%d)", len(bundle.Cookies), len(bundle.Headers))

	client := encar.NewSession(bundle, cfg.RequestTimeout)
	crawler := encar.New(cfg, logger, client, store, sink)
	return crawler.Run()
}

func openSink(cfg *config.Config, logger *utils.Logger) (storage.RecordSink, error) {
	if cfg.SinkBackend == config.SinkPostgres {
		logger.Info("Record sink: PostgreSQL (%s:%s/%s)", cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		return storage.NewPostgresSink(cfg.DSN(), logger)
	}
	logger.Info("Record sink: SQLite (%s)", cfg.SQLitePath)
	return storage.NewSQLiteSink(cfg.SQLitePath, logger)
}
