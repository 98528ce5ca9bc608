package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"listlens/internal/config"
	"listlens/internal/metrics"
	"listlens/internal/model"
	"listlens/internal/pipeline"
	"listlens/internal/store/filestore"
	"listlens/internal/store/runstore"
	"listlens/internal/xclient"
)

// Deps bundles what a scrape run needs. DB may be nil when run history is
// not wanted (e.g. one-off CLI runs against a local file).
type Deps struct {
	Client  xclient.Client
	Cleaner *pipeline.Cleaner
	DB      *runstore.DB
	Log     zerolog.Logger
	Cfg     config.Config
}

// RunScrapeOnce performs one full run: fetch the raw timeline, persist it to
// the bronze dir, clean it, persist the cleaned batch to the gold dir, and
// record the run. The cleaned batch is returned for direct consumers.
func RunScrapeOnce(ctx context.Context, d Deps, fileName string) (model.CleanedData, error) {
	start := time.Now()
	metrics.CleanRuns.Inc()

	raw, err := d.Client.FetchListTimeline(ctx, d.Cfg.List.ID)
	if err != nil {
		metrics.CleanErrors.Inc()
		return model.CleanedData{}, err
	}

	paths, err := filestore.EnsureDirs(d.Cfg.Storage.BronzeDir, d.Cfg.Storage.GoldDir, fileName)
	if err != nil {
		metrics.CleanErrors.Inc()
		return model.CleanedData{}, err
	}
	if err := filestore.SaveJSON(paths.Bronze, raw); err != nil {
		metrics.CleanErrors.Inc()
		return model.CleanedData{}, err
	}

	data, stats, err := d.Cleaner.Clean(raw)
	if err != nil {
		metrics.CleanErrors.Inc()
		return model.CleanedData{}, err
	}
	if err := filestore.SaveJSON(paths.Gold, data); err != nil {
		metrics.CleanErrors.Inc()
		return model.CleanedData{}, err
	}
	if d.DB != nil {
		if _, err := d.DB.SaveRun(ctx, d.Cfg.List.ID, data); err != nil {
			metrics.CleanErrors.Inc()
			return model.CleanedData{}, err
		}
	}

	metrics.PostsKept.Add(float64(stats.Kept))
	metrics.IncDropped(string(pipeline.DropModule), stats.DroppedModule)
	metrics.IncDropped(string(pipeline.DropNoTweet), stats.DroppedNoTweet)
	metrics.IncDropped(string(pipeline.DropEmptyContent), stats.DroppedEmpty)
	metrics.ObserveCleanDuration(start)

	d.Log.Info().
		Str("list_id", d.Cfg.List.ID).
		Int("entries", stats.Entries).
		Int("kept", stats.Kept).
		Int("dropped_module", stats.DroppedModule).
		Int("dropped_no_tweet", stats.DroppedNoTweet).
		Int("dropped_empty", stats.DroppedEmpty).
		Str("bronze", paths.Bronze).
		Str("gold", paths.Gold).
		Msg("scrape run complete")
	return data, nil
}

// RunScrapeLoop runs RunScrapeOnce on a ticker until ctx is cancelled.
func RunScrapeLoop(ctx context.Context, d Deps, fileName string, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	// run immediately
	if _, err := RunScrapeOnce(ctx, d, fileName); err != nil {
		d.Log.Error().Err(err).Msg("scrape run failed")
	}
	for {
		select {
		case <-ctx.Done():
			d.Log.Info().Msg("scrape loop stopped")
			return ctx.Err()
		case <-t.C:
			if _, err := RunScrapeOnce(ctx, d, fileName); err != nil {
				d.Log.Error().Err(err).Msg("scrape run failed")
			}
		}
	}
}
