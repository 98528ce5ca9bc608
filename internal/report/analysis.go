// Package report builds the dashboard analysis document and the newsletter
// digest from a cleaned batch. Field names are a fixed contract with the
// dashboard frontend.
package report

import (
	"fmt"
	"sort"
	"time"

	"listlens/internal/analytics"
	"listlens/internal/leads"
	"listlens/internal/model"
)

// ListAnalysis is the dashboard document for one list.
type ListAnalysis struct {
	Metadata           ListMetadata       `json:"metadata"`
	KeyThemes          []KeyTheme         `json:"keyThemes"`
	TrendingTopics     []TrendingTopic    `json:"trendingTopics"`
	Highlights         []Highlight        `json:"highlights"`
	EngagementAnalysis EngagementAnalysis `json:"engagementAnalysis"`
}

type ListMetadata struct {
	ListURL            string    `json:"listUrl"`
	ListID             string    `json:"listId"`
	TotalPosts         int       `json:"totalPosts"`
	TimeRange          TimeRange `json:"timeRange"`
	UniqueContributors int       `json:"uniqueContributors"`
	ProcessedAt        string    `json:"processedAt"`
}

type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DisplayPost is the reduced post shape the dashboard renders.
type DisplayPost struct {
	Content     string      `json:"content"`
	Author      string      `json:"author"`
	PublishDate string      `json:"publishDate"`
	Engagement  *Engagement `json:"engagement,omitempty"`
}

type Engagement struct {
	Likes    int `json:"likes"`
	Retweets int `json:"retweets"`
}

type KeyTheme struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	PostCount    int           `json:"postCount"`
	NotablePosts []DisplayPost `json:"notablePosts"`
}

type TrendingTopic struct {
	Topic        string        `json:"topic"`
	Frequency    int           `json:"frequency"`
	Context      string        `json:"context"`
	RelatedPosts []DisplayPost `json:"relatedPosts"`
}

type Highlight struct {
	DisplayPost
	Significance string `json:"significance"`
}

type TopContributor struct {
	Username           string        `json:"username"`
	PostCount          int           `json:"postCount"`
	TotalEngagement    int           `json:"totalEngagement"`
	OutreachSuggestion string        `json:"outreachSuggestion,omitempty"`
	Interests          []string      `json:"interests,omitempty"`
	RecentPosts        []DisplayPost `json:"recentPosts,omitempty"`
}

type PeakActivity struct {
	Timeframe string `json:"timeframe"`
	PostCount int    `json:"postCount"`
}

type EngagementAnalysis struct {
	TopContributors       []TopContributor `json:"topContributors"`
	PeakActivity          PeakActivity     `json:"peakActivity"`
	OverallEngagementRate float64          `json:"overallEngagementRate"`
}

const (
	maxThemes          = 5
	maxHighlights      = 5
	maxContributors    = 5
	notablePostLimit   = 3
	relatedPostLimit   = 2
	contributorRecency = 3
)

// BuildListAnalysis derives the dashboard document from one cleaned batch.
func BuildListAnalysis(data model.CleanedData, listURL, listID string, now time.Time) ListAnalysis {
	posts := data.Posts
	return ListAnalysis{
		Metadata:           buildMetadata(posts, listURL, listID, now),
		KeyThemes:          buildThemes(posts, data.Analytics.TopHashtags),
		TrendingTopics:     buildTrends(posts, data.Analytics.TopHashtags),
		Highlights:         buildHighlights(posts),
		EngagementAnalysis: buildEngagement(posts, data.Analytics.EngagementRate),
	}
}

func buildMetadata(posts []model.Post, listURL, listID string, now time.Time) ListMetadata {
	contributors := make(map[string]struct{})
	var start, end string
	for _, p := range posts {
		contributors[p.Owner.ScreenName] = struct{}{}
		if start == "" || p.PublishDate < start {
			start = p.PublishDate
		}
		if p.PublishDate > end {
			end = p.PublishDate
		}
	}
	return ListMetadata{
		ListURL:            listURL,
		ListID:             listID,
		TotalPosts:         len(posts),
		TimeRange:          TimeRange{Start: start, End: end},
		UniqueContributors: len(contributors),
		ProcessedAt:        now.UTC().Format(time.RFC3339),
	}
}

func displayPost(p model.Post) DisplayPost {
	return DisplayPost{
		Content:     p.Content,
		Author:      p.Owner.ScreenName,
		PublishDate: p.PublishDate,
		Engagement:  &Engagement{Likes: p.Metrics.Likes, Retweets: p.Metrics.Retweets},
	}
}

func postsWithTag(posts []model.Post, tag string, limit int) []DisplayPost {
	out := make([]DisplayPost, 0, limit)
	for _, p := range posts {
		for _, h := range p.Hashtags {
			if h == tag {
				out = append(out, displayPost(p))
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func buildThemes(posts []model.Post, tags []model.TagCount) []KeyTheme {
	out := make([]KeyTheme, 0, maxThemes)
	for _, tc := range tags {
		if len(out) == maxThemes {
			break
		}
		out = append(out, KeyTheme{
			Name:         tc.Tag,
			Description:  fmt.Sprintf("Posts tagged #%s", tc.Tag),
			PostCount:    tc.Count,
			NotablePosts: postsWithTag(posts, tc.Tag, notablePostLimit),
		})
	}
	return out
}

func buildTrends(posts []model.Post, tags []model.TagCount) []TrendingTopic {
	out := make([]TrendingTopic, 0, len(tags))
	for _, tc := range tags {
		out = append(out, TrendingTopic{
			Topic:        tc.Tag,
			Frequency:    tc.Count,
			Context:      fmt.Sprintf("#%s appeared %d times across the list", tc.Tag, tc.Count),
			RelatedPosts: postsWithTag(posts, tc.Tag, relatedPostLimit),
		})
	}
	return out
}

func buildHighlights(posts []model.Post) []Highlight {
	ranked := make([]model.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return model.EngagementScore(ranked[i]) > model.EngagementScore(ranked[j])
	})
	if len(ranked) > maxHighlights {
		ranked = ranked[:maxHighlights]
	}
	out := make([]Highlight, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, Highlight{
			DisplayPost:  displayPost(p),
			Significance: fmt.Sprintf("Engagement score %d", model.EngagementScore(p)),
		})
	}
	return out
}

func buildEngagement(posts []model.Post, rate float64) EngagementAnalysis {
	byAuthor := make(map[string][]model.Post)
	order := make([]string, 0)
	for _, p := range posts {
		key := p.Owner.ScreenName
		if _, ok := byAuthor[key]; !ok {
			order = append(order, key)
		}
		byAuthor[key] = append(byAuthor[key], p)
	}

	contributors := make([]TopContributor, 0, len(order))
	for _, key := range order {
		authorPosts := byAuthor[key]
		total := 0
		for _, p := range authorPosts {
			total += model.EngagementScore(p)
		}
		recent := authorPosts
		if len(recent) > contributorRecency {
			recent = recent[:contributorRecency]
		}
		display := make([]DisplayPost, 0, len(recent))
		for _, p := range recent {
			display = append(display, displayPost(p))
		}
		tc := TopContributor{
			Username:        key,
			PostCount:       len(authorPosts),
			TotalEngagement: total,
			Interests:       leads.Interests(authorPosts),
			RecentPosts:     display,
		}
		if leads.IsPotentialLead(authorPosts[0].Owner, authorPosts) {
			tc.OutreachSuggestion = leads.SuggestApproach(authorPosts[0].Owner, authorPosts)
		}
		contributors = append(contributors, tc)
	}
	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].TotalEngagement > contributors[j].TotalEngagement
	})
	if len(contributors) > maxContributors {
		contributors = contributors[:maxContributors]
	}

	peak := PeakActivity{}
	if hour, count, ok := analytics.PeakHour(analytics.HourlyPostCounts(posts)); ok {
		peak = PeakActivity{
			Timeframe: fmt.Sprintf("%s–%s UTC", hour.Format("15:04"), hour.Add(time.Hour).Format("15:04")),
			PostCount: count,
		}
	}

	return EngagementAnalysis{
		TopContributors:       contributors,
		PeakActivity:          peak,
		OverallEngagementRate: rate,
	}
}
