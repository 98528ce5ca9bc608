package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"listlens/internal/config"
	"listlens/internal/model"
	"listlens/internal/pipeline"
	"listlens/internal/store/runstore"
)

type fakeClient struct {
	raw map[string]any
	err error
}

func (f *fakeClient) FetchListTimeline(ctx context.Context, listID string) (map[string]any, error) {
	return f.raw, f.err
}

func tweetEntry(text, screenName string) map[string]any {
	return map[string]any{
		"content": map[string]any{
			"entryType": "TimelineTimelineItem",
			"itemContent": map[string]any{
				"tweet_results": map[string]any{
					"result": map[string]any{
						"legacy": map[string]any{
							"full_text":  text,
							"created_at": "Mon Sep 01 10:15:00 +0000 2025",
							"lang":       "en",
						},
						"core": map[string]any{
							"user_results": map[string]any{
								"result": map[string]any{
									"legacy": map[string]any{"screen_name": screenName},
								},
							},
						},
					},
				},
			},
		},
	}
}

func rawTimeline(entries ...map[string]any) map[string]any {
	list := make([]any, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}
	return map[string]any{
		"data": map[string]any{
			"list": map[string]any{
				"tweets_timeline": map[string]any{
					"timeline": map[string]any{
						"instructions": []any{
							map[string]any{"type": "TimelineAddEntries", "entries": list},
						},
					},
				},
			},
		},
	}
}

func testDeps(t *testing.T, client *fakeClient) Deps {
	t.Helper()
	root := t.TempDir()
	db, err := runstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Default()
	cfg.List.ID = "42"
	cfg.Storage.BronzeDir = filepath.Join(root, "bronze")
	cfg.Storage.GoldDir = filepath.Join(root, "gold")

	cleaner := pipeline.New(model.ModeRich, cfg.List.BaseURL)
	cleaner.Now = func() time.Time { return time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC) }

	return Deps{Client: client, Cleaner: cleaner, DB: db, Log: zerolog.Nop(), Cfg: cfg}
}

func TestRunScrapeOnce(t *testing.T) {
	client := &fakeClient{raw: rawTimeline(
		tweetEntry("Cloud security launch day", "mara"),
		tweetEntry("Automation all the way down", "jo"),
	)}
	d := testDeps(t, client)

	data, err := RunScrapeOnce(context.Background(), d, "x-data.json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(data.Posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(data.Posts))
	}

	for _, path := range []string{
		filepath.Join(d.Cfg.Storage.BronzeDir, "x-data.json"),
		filepath.Join(d.Cfg.Storage.GoldDir, "x-data.json"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("artifact %s: %v", path, err)
		}
	}

	run, err := d.DB.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if run.ListID != "42" || run.TotalPosts != 2 {
		t.Fatalf("run = %+v", run)
	}
}

func TestRunScrapeOnceFetchError(t *testing.T) {
	d := testDeps(t, &fakeClient{err: errors.New("api down")})
	if _, err := RunScrapeOnce(context.Background(), d, "x-data.json"); err == nil {
		t.Fatal("expected fetch error")
	}
	if _, err := d.DB.Latest(context.Background()); !errors.Is(err, runstore.ErrNoRuns) {
		t.Fatalf("failed run should not be stored: %v", err)
	}
}

func TestRunScrapeOnceNilDB(t *testing.T) {
	client := &fakeClient{raw: rawTimeline(tweetEntry("hello", "mara"))}
	d := testDeps(t, client)
	d.DB = nil
	if _, err := RunScrapeOnce(context.Background(), d, "x-data.json"); err != nil {
		t.Fatalf("run without db: %v", err)
	}
}

func TestRunScrapeLoopStopsOnCancel(t *testing.T) {
	client := &fakeClient{raw: rawTimeline(tweetEntry("hello", "mara"))}
	d := testDeps(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunScrapeLoop(ctx, d, "x-data.json", time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
