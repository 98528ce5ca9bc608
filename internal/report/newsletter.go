package report

import (
	"fmt"

	"listlens/internal/leads"
	"listlens/internal/model"
)

// Newsletter is a digest of one cleaned batch: key topics, potential leads,
// and hashtag trends with example posts.
type Newsletter struct {
	Summary        string       `json:"summary"`
	KeyTopics      []KeyTopic   `json:"keyTopics"`
	PotentialLeads []leads.Lead `json:"potentialLeads"`
	Trends         []Trend      `json:"trends"`
}

type KeyTopic struct {
	Topic     string       `json:"topic"`
	Posts     []model.Post `json:"posts"`
	Relevance int          `json:"relevance"`
}

type Trend struct {
	Trend     string       `json:"trend"`
	Frequency int          `json:"frequency"`
	Examples  []model.Post `json:"examples"`
}

const (
	maxKeyTopics     = 5
	topicPostLimit   = 3
	trendExamplesMax = 2
)

// BuildNewsletter assembles the digest from a cleaned batch.
func BuildNewsletter(data model.CleanedData) Newsletter {
	topics := make([]KeyTopic, 0, maxKeyTopics)
	for _, tc := range data.Analytics.TopHashtags {
		if len(topics) == maxKeyTopics {
			break
		}
		topics = append(topics, KeyTopic{
			Topic:     tc.Tag,
			Posts:     rawPostsWithTag(data.Posts, tc.Tag, topicPostLimit),
			Relevance: tc.Count,
		})
	}

	trends := make([]Trend, 0, len(data.Analytics.TopHashtags))
	for _, tc := range data.Analytics.TopHashtags {
		trends = append(trends, Trend{
			Trend:     tc.Tag,
			Frequency: tc.Count,
			Examples:  rawPostsWithTag(data.Posts, tc.Tag, trendExamplesMax),
		})
	}

	return Newsletter{
		Summary:        fmt.Sprintf("Analysis of %d posts from the monitored list", len(data.Posts)),
		KeyTopics:      topics,
		PotentialLeads: leads.Rank(data.Posts),
		Trends:         trends,
	}
}

func rawPostsWithTag(posts []model.Post, tag string, limit int) []model.Post {
	out := make([]model.Post, 0, limit)
	for _, p := range posts {
		for _, h := range p.Hashtags {
			if h == tag {
				out = append(out, p)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}
