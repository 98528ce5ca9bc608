package runstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"listlens/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func cleanedBatch(cleanedAt string, posts ...string) model.CleanedData {
	data := model.CleanedData{Mode: model.ModeRich, CleanedAt: cleanedAt}
	for _, content := range posts {
		data.Posts = append(data.Posts, model.Post{Content: content})
	}
	return data
}

func TestSaveAndLatest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Latest(ctx); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("empty store: err = %v, want ErrNoRuns", err)
	}

	if _, err := db.SaveRun(ctx, "42", cleanedBatch("2025-09-01T10:00:00Z", "old")); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, err := db.SaveRun(ctx, "42", cleanedBatch("2025-09-02T10:00:00Z", "new", "newer"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.TotalPosts != 2 {
		t.Fatalf("saved = %+v", saved)
	}

	latest, err := db.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != saved.ID || latest.ListID != "42" || latest.Mode != model.ModeRich {
		t.Fatalf("latest = %+v", latest)
	}
	var data model.CleanedData
	if err := json.Unmarshal(latest.Payload, &data); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if len(data.Posts) != 2 || data.Posts[0].Content != "new" {
		t.Fatalf("payload posts = %+v", data.Posts)
	}
}

func TestListNewestFirstWithoutPayload(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, ts := range []string{"2025-09-01T10:00:00Z", "2025-09-02T10:00:00Z", "2025-09-03T10:00:00Z"} {
		if _, err := db.SaveRun(ctx, "42", cleanedBatch(ts, "p")); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	runs, err := db.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if !runs[0].CleanedAt.After(runs[1].CleanedAt) {
		t.Fatalf("runs not newest first: %v, %v", runs[0].CleanedAt, runs[1].CleanedAt)
	}
	if runs[0].Payload != nil {
		t.Fatal("list should not carry payloads")
	}
}

func TestSaveRunBadTimestampFallsBack(t *testing.T) {
	db := openTestDB(t)
	saved, err := db.SaveRun(context.Background(), "42", cleanedBatch("not a timestamp", "p"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CleanedAt.IsZero() {
		t.Fatal("cleanedAt should fall back to now")
	}
}
