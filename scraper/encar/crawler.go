package encar

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MICROWAVE-web/EncarParsing/config"
	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/services"
	"github.com/MICROWAVE-web/EncarParsing/storage"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

// Crawler drives the per-year, per-offset sweep: fetch a page, dedup the
// identifiers, forward every record to the sink and decide when a year is
// done. One outstanding request at a time, paced by the throttle.
type Crawler struct {
	cfg      *config.Config
	logger   *utils.Logger
	fetcher  *Fetcher
	store    storage.ResultStore
	sink     storage.RecordSink
	throttle *utils.Throttle

	set *models.CollectedSet
}

// New creates a ready-to-use Crawler over an authenticated session.
func New(cfg *config.Config, logger *utils.Logger, client *resty.Client,
	store storage.ResultStore, sink storage.RecordSink) *Crawler {
	return &Crawler{
		cfg:      cfg,
		logger:   logger,
		fetcher:  NewFetcher(client, cfg.BaseAPIURL, cfg.PageSize, logger),
		store:    store,
		sink:     sink,
		throttle: utils.NewThrottle(cfg.RequestPause),
	}
}

// Run performs one full sweep over the configured year range, newest year
// first. Previously collected identifiers are loaded up front so restarts
// never re-add known listings. The set is persisted after every page that
// added at least one new identifier and once more at the end, so a crash
// loses at most the unsaved tail of a single page.
func (c *Crawler) Run() models.CrawlStats {
	var stats models.CrawlStats

	c.set = c.store.Load()

	for year := c.cfg.StartYear; year >= c.cfg.MinYear; year-- {
		yearRange := YearRange(year)
		c.logger.Info("=== Processing range %s ===", yearRange)

		c.crawlYear(yearRange, &stats)
		c.throttle.Wait()
	}

	if err := c.store.Save(c.set); err != nil {
		c.logger.Error("[crawler] Final save failed: %v", err)
	}

	stats.Total = c.set.Len()
	return stats
}

// crawlYear paginates one year range until an empty page, a fetch failure or
// repeat saturation. The repeat budget only ever decreases: a later page with
// new identifiers does not restore it.
func (c *Crawler) crawlYear(yearRange string, stats *models.CrawlStats) {
	offset := 0
	budget := c.cfg.RepeatBudget

	for {
		cars, err := c.fetcher.FetchPage(yearRange, offset)
		if err != nil {
			c.logger.Warn("[crawler] Skipping rest of range %s after failure at offset %d", yearRange, offset)
			stats.YearsAborted++
			return
		}
		stats.PagesFetched++

		if len(cars) == 0 {
			c.logger.Info("[crawler] No more data for range %s (offset %d), moving to next year", yearRange, offset)
			return
		}

		collectedAt := time.Now()
		newCount, repeatCount := 0, 0
		records := make([]*models.CarRecord, 0, len(cars))

		for i := range cars {
			car := &cars[i]
			if key, stored, ok := services.NormalizeID(car.ID); ok {
				if c.set.Add(key, stored) {
					newCount++
				} else {
					repeatCount++
				}
			}
			// The sink gets every fetched record, repeats included, so it
			// always reflects the latest observed attributes.
			records = append(records, car.Record(collectedAt))
		}

		if saved, err := c.sink.UpsertBatch(records, collectedAt); err != nil {
			c.logger.Error("[crawler] Record sink error (%s, offset %d): %v", yearRange, offset, err)
		} else {
			stats.SinkRows += saved
			c.logger.Debug("[crawler] Upserted %d records", saved)
		}

		stats.NewIDs += newCount
		stats.Repeats += repeatCount
		c.logger.Info("[crawler] New: %d, repeats: %d (total %d)", newCount, repeatCount, c.set.Len())

		if newCount > 0 {
			if err := c.store.Save(c.set); err != nil {
				c.logger.Warn("[crawler] Save failed, keeping set in memory: %v", err)
			}
		} else {
			budget--
		}

		if budget < 0 {
			c.logger.Info("[crawler] Repeat saturation for range %s (offset %d), moving to next year", yearRange, offset)
			return
		}

		offset += c.cfg.PageSize
		c.throttle.Wait()
	}
}
