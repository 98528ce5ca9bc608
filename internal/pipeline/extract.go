package pipeline

import (
	"time"

	"listlens/internal/model"
	"listlens/internal/rawjson"
)

// DropReason classifies why a timeline entry produced no post. Dropping is
// filtering, not an error.
type DropReason string

const (
	DropNone         DropReason = ""
	DropNoTweet      DropReason = "no_tweet"
	DropModule       DropReason = "module"
	DropEmptyContent DropReason = "empty_content"
)

// moduleEntryType marks grouped timeline modules (who-to-follow blocks and
// similar) that are not individual posts.
const moduleEntryType = "TimelineTimelineModule"

// ExtractPost normalizes one timeline entry. It returns (nil, reason) for
// entries that carry no tweet-result payload or are module groupings. Every
// nested read falls back to a default; field absence never fails the entry.
// Empty content is not checked here: the caller filters on it so that
// pre-filter entity counts stay observable.
func ExtractPost(entry map[string]any, now time.Time) (*model.Post, DropReason) {
	tweet := rawjson.Map(entry, "content", "itemContent", "tweet_results", "result")
	if tweet == nil {
		return nil, DropNoTweet
	}
	if rawjson.String(entry, "", "content", "entryType") == moduleEntryType {
		return nil, DropModule
	}

	legacy := rawjson.Map(tweet, "legacy")
	user := rawjson.Map(tweet, "core", "user_results", "result")
	entities := rawjson.Map(legacy, "entities")

	post := model.Post{
		Content:     rawjson.String(legacy, "", "full_text"),
		Owner:       ExtractProfile(user, now),
		PublishDate: normalizeTime(rawjson.String(legacy, "", "created_at"), now),
		Metrics: model.PostMetrics{
			Likes:    rawjson.Int(legacy, 0, "favorite_count"),
			Retweets: rawjson.Int(legacy, 0, "retweet_count"),
			Replies:  rawjson.Int(legacy, 0, "reply_count"),
			Quotes:   rawjson.Int(legacy, 0, "quote_count"),
			Views:    rawjson.OptionalInt(tweet, "views", "count"),
		},
		URLs:           extractURLs(entities),
		MentionedUsers: extractMentions(entities),
		Hashtags:       extractHashtags(entities),
		IsReply:        rawjson.String(legacy, "", "in_reply_to_status_id_str") != "",
		IsRetweet:      rawjson.Has(legacy, "retweeted_status_result"),
		Language:       rawjson.String(legacy, "unknown", "lang"),
	}
	return &post, DropNone
}

func extractURLs(entities map[string]any) []model.URLEntity {
	items := rawjson.List(entities, "urls")
	out := make([]model.URLEntity, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.URLEntity{
			URL:         rawjson.String(m, "", "url"),
			ExpandedURL: rawjson.String(m, "", "expanded_url"),
			DisplayURL:  rawjson.String(m, "", "display_url"),
		})
	}
	return out
}

func extractHashtags(entities map[string]any) []string {
	items := rawjson.List(entities, "hashtags")
	out := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if text := rawjson.String(m, "", "text"); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func extractMentions(entities map[string]any) []string {
	items := rawjson.List(entities, "user_mentions")
	out := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name := rawjson.String(m, "", "screen_name"); name != "" {
			out = append(out, name)
		}
	}
	return out
}
