package pipeline

import (
	"errors"
	"fmt"
	"time"

	"listlens/internal/analytics"
	"listlens/internal/model"
	"listlens/internal/rawjson"
)

// ErrMalformedPayload means the payload's timeline instructions path is
// absent. Payload-level malformation fails the whole run; per-entry
// malformation never does.
var ErrMalformedPayload = errors.New("timeline instructions path missing")

// Stats counts what happened to each entry during one run.
type Stats struct {
	Entries        int
	Parsed         int
	DroppedNoTweet int
	DroppedModule  int
	DroppedEmpty   int
	Kept           int
}

// Cleaner turns one raw list-timeline payload into a CleanedData value.
// A Cleaner owns no per-run state, so separate runs may execute
// concurrently on the same instance.
type Cleaner struct {
	Mode    model.Mode
	BaseURL string
	// Now supplies the normalization time; tests pin it.
	Now func() time.Time
}

// New returns a Cleaner for the given mode and platform base URL.
func New(mode model.Mode, baseURL string) *Cleaner {
	return &Cleaner{Mode: mode, BaseURL: baseURL, Now: time.Now}
}

// CleanJSON decodes a raw payload document and cleans it. An invalid JSON
// document is a whole-run failure.
func (c *Cleaner) CleanJSON(b []byte) (model.CleanedData, Stats, error) {
	raw, err := rawjson.Decode(b)
	if err != nil {
		return model.CleanedData{}, Stats{}, fmt.Errorf("decode payload: %w", err)
	}
	return c.Clean(raw)
}

// Clean runs the full pipeline: extract each entry, filter non-posts and
// empty content, aggregate analytics, and (in simplified mode) group by
// author. cleanedAt is assigned once, at the end of the run.
func (c *Cleaner) Clean(raw map[string]any) (model.CleanedData, Stats, error) {
	now := c.now()
	entries, err := timelineEntries(raw)
	if err != nil {
		return model.CleanedData{}, Stats{}, err
	}

	stats := Stats{Entries: len(entries)}
	parsed := make([]model.Post, 0, len(entries))
	for _, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			stats.DroppedNoTweet++
			continue
		}
		post, reason := ExtractPost(entry, now)
		switch reason {
		case DropNoTweet:
			stats.DroppedNoTweet++
			continue
		case DropModule:
			stats.DroppedModule++
			continue
		}
		parsed = append(parsed, *post)
	}
	stats.Parsed = len(parsed)

	kept := make([]model.Post, 0, len(parsed))
	for _, p := range parsed {
		if len(p.Content) == 0 {
			stats.DroppedEmpty++
			continue
		}
		kept = append(kept, p)
	}
	stats.Kept = len(kept)

	data := model.CleanedData{
		Mode:      c.Mode,
		Posts:     kept,
		CleanedAt: now.UTC().Format(time.RFC3339),
		Analytics: analytics.Aggregate(parsed, kept),
	}
	if c.Mode == model.ModeSimplified {
		data.Grouped = Group(kept, c.BaseURL)
	}
	return data, stats, nil
}

func (c *Cleaner) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// timelineEntries resolves the instructions path of a list timeline payload
// and returns the first instruction's entries. A missing instructions list
// is fatal; an instruction without entries is just an empty batch.
func timelineEntries(raw map[string]any) ([]any, error) {
	instructions := rawjson.List(raw, "data", "list", "tweets_timeline", "timeline", "instructions")
	if instructions == nil {
		return nil, ErrMalformedPayload
	}
	if len(instructions) == 0 {
		return nil, nil
	}
	first, ok := instructions[0].(map[string]any)
	if !ok {
		return nil, nil
	}
	return rawjson.List(first, "entries"), nil
}
