package report

import (
	"strings"
	"testing"
	"time"

	"listlens/internal/model"
)

func batch() model.CleanedData {
	posts := []model.Post{
		{
			Content:     "Cloud security launch day #infosec",
			Owner:       model.UserProfile{ScreenName: "mara", Description: "Founder building cloud security tooling"},
			PublishDate: "2025-09-01T10:15:00Z",
			Metrics:     model.PostMetrics{Likes: 10, Retweets: 5, Replies: 2, Quotes: 1},
			Hashtags:    []string{"infosec"},
		},
		{
			Content:     "Agreed, automation is the only way this scales",
			Owner:       model.UserProfile{ScreenName: "jo", Description: "tinkerer"},
			PublishDate: "2025-09-01T10:40:00Z",
			Metrics:     model.PostMetrics{Likes: 3, Replies: 1},
		},
		{
			Content:     "Another #infosec thread",
			Owner:       model.UserProfile{ScreenName: "mara", Description: "Founder building cloud security tooling"},
			PublishDate: "2025-09-01T12:05:00Z",
			Metrics:     model.PostMetrics{Likes: 1},
			Hashtags:    []string{"infosec"},
		},
	}
	return model.CleanedData{
		Mode:      model.ModeRich,
		Posts:     posts,
		CleanedAt: "2025-09-02T12:00:00Z",
		Analytics: model.Analytics{
			TopHashtags:    []model.TagCount{{Tag: "infosec", Count: 2}},
			EngagementRate: 11,
		},
	}
}

func TestBuildListAnalysisMetadata(t *testing.T) {
	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	a := BuildListAnalysis(batch(), "https://x.com/i/lists/42", "42", now)

	md := a.Metadata
	if md.ListURL != "https://x.com/i/lists/42" || md.ListID != "42" {
		t.Fatalf("metadata = %+v", md)
	}
	if md.TotalPosts != 3 || md.UniqueContributors != 2 {
		t.Fatalf("totals = %+v", md)
	}
	if md.TimeRange.Start != "2025-09-01T10:15:00Z" || md.TimeRange.End != "2025-09-01T12:05:00Z" {
		t.Fatalf("timeRange = %+v", md.TimeRange)
	}
	if md.ProcessedAt != "2025-09-02T12:00:00Z" {
		t.Fatalf("processedAt = %q", md.ProcessedAt)
	}
}

func TestBuildListAnalysisThemesAndTrends(t *testing.T) {
	a := BuildListAnalysis(batch(), "https://x.com/i/lists/42", "42", time.Now())

	if len(a.KeyThemes) != 1 {
		t.Fatalf("keyThemes = %+v", a.KeyThemes)
	}
	theme := a.KeyThemes[0]
	if theme.Name != "infosec" || theme.PostCount != 2 || len(theme.NotablePosts) != 2 {
		t.Fatalf("theme = %+v", theme)
	}

	if len(a.TrendingTopics) != 1 {
		t.Fatalf("trendingTopics = %+v", a.TrendingTopics)
	}
	trend := a.TrendingTopics[0]
	if trend.Topic != "infosec" || trend.Frequency != 2 || len(trend.RelatedPosts) != 2 {
		t.Fatalf("trend = %+v", trend)
	}
}

func TestBuildListAnalysisHighlights(t *testing.T) {
	a := BuildListAnalysis(batch(), "https://x.com/i/lists/42", "42", time.Now())

	if len(a.Highlights) != 3 {
		t.Fatalf("highlights = %+v", a.Highlights)
	}
	// highest engagement first: 10 + 10 + 6 + 2 = 28
	top := a.Highlights[0]
	if top.Author != "mara" || top.Significance != "Engagement score 28" {
		t.Fatalf("top highlight = %+v", top)
	}
}

func TestBuildListAnalysisEngagement(t *testing.T) {
	a := BuildListAnalysis(batch(), "https://x.com/i/lists/42", "42", time.Now())

	ea := a.EngagementAnalysis
	if ea.OverallEngagementRate != 11 {
		t.Fatalf("rate = %v", ea.OverallEngagementRate)
	}
	if len(ea.TopContributors) != 2 {
		t.Fatalf("contributors = %+v", ea.TopContributors)
	}
	mara := ea.TopContributors[0]
	if mara.Username != "mara" || mara.PostCount != 2 || mara.TotalEngagement != 29 {
		t.Fatalf("mara = %+v", mara)
	}
	if mara.OutreachSuggestion == "" {
		t.Fatal("lead contributor should carry an outreach suggestion")
	}
	jo := ea.TopContributors[1]
	if jo.OutreachSuggestion != "" {
		t.Fatalf("non-lead contributor got suggestion %q", jo.OutreachSuggestion)
	}

	if ea.PeakActivity.PostCount != 2 || !strings.HasPrefix(ea.PeakActivity.Timeframe, "10:00") {
		t.Fatalf("peakActivity = %+v", ea.PeakActivity)
	}
}

func TestBuildListAnalysisEmptyBatch(t *testing.T) {
	a := BuildListAnalysis(model.CleanedData{Mode: model.ModeRich}, "https://x.com/i/lists/42", "42", time.Now())
	if a.Metadata.TotalPosts != 0 || len(a.Highlights) != 0 {
		t.Fatalf("analysis = %+v", a)
	}
	if a.EngagementAnalysis.PeakActivity.Timeframe != "" {
		t.Fatalf("peakActivity = %+v", a.EngagementAnalysis.PeakActivity)
	}
}
